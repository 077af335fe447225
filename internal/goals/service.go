package goals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/perfval/perfval-backend/pkg/db/models"
	"github.com/perfval/perfval-backend/pkg/enums"
	pkgerrors "github.com/perfval/perfval-backend/pkg/errors"
	"github.com/perfval/perfval-backend/pkg/pagination"
)

// Service exposes business rules for goal tracking. All operations except
// ListByEmployee are scoped to the calling user.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) (*GoalPageDTO, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*GoalDTO, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateGoalRequest) (*GoalDTO, error)
	Update(ctx context.Context, userID, id uuid.UUID, req UpdateGoalRequest) (*GoalDTO, error)
	UpdateProgress(ctx context.Context, userID, id uuid.UUID, req UpdateProgressRequest) (*GoalDTO, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByTargetType(ctx context.Context, userID uuid.UUID, targetType string) ([]GoalDTO, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, params pagination.Params) (*GoalPageDTO, error)
}

type repository interface {
	Create(ctx context.Context, goal *models.Goal) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error)
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.Goal, int64, error)
	ListByTargetType(ctx context.Context, userID uuid.UUID, targetType enums.GoalTargetType) ([]models.Goal, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, params pagination.Params) ([]models.Goal, int64, error)
	Update(ctx context.Context, userID, id uuid.UUID, updates map[string]any) (*models.Goal, error)
	SoftDelete(ctx context.Context, userID, id uuid.UUID) error
}

type employeeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
}

type service struct {
	repo      repository
	employees employeeFinder
	now       func() time.Time
}

// ServiceParams collects the goals service dependencies.
type ServiceParams struct {
	Repo      repository
	Employees employeeFinder
	Now       func() time.Time
}

// NewService builds a goals service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("goal repository is required")
	}
	if params.Employees == nil {
		return nil, fmt.Errorf("employee finder is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, employees: params.Employees, now: now}, nil
}

// List fetches the page from storage and then drops rows whose derived
// status does not match the filter. The total still counts the storage-level
// match set, so a status-filtered page can report more totals than rows.
func (s *service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) (*GoalPageDTO, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid goal status")
	}
	if filter.TargetType != "" && !filter.TargetType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target type")
	}
	filter.Pagination = filter.Pagination.Normalize()

	records, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list goals")
	}

	now := s.now()
	dtos := fromModels(records, now)
	if filter.Status != "" {
		filtered := dtos[:0]
		for _, dto := range dtos {
			if dto.Status == filter.Status {
				filtered = append(filtered, dto)
			}
		}
		dtos = filtered
	}

	return &GoalPageDTO{
		Goals:       dtos,
		TotalPages:  pagination.TotalPages(total, filter.Pagination.Limit),
		CurrentPage: filter.Pagination.Page,
		Total:       total,
	}, nil
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*GoalDTO, error) {
	goal, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(goal, s.now()), nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateGoalRequest) (*GoalDTO, error) {
	targetType, err := enums.ParseGoalTargetType(req.TargetType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target type")
	}
	if err := s.requireEmployee(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		TargetType:  targetType,
		DueDate:     req.DueDate,
		UserID:      userID,
		EmployeeID:  req.EmployeeID,
		IsActive:    true,
	}
	if req.Progress != nil {
		goal.Progress = *req.Progress
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create goal")
	}
	return s.Get(ctx, userID, goal.ID)
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, req UpdateGoalRequest) (*GoalDTO, error) {
	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.TargetType != nil {
		targetType, err := enums.ParseGoalTargetType(*req.TargetType)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target type")
		}
		updates["target_type"] = targetType
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.Progress != nil {
		updates["progress"] = *req.Progress
	}
	if req.EmployeeID != nil {
		if err := s.requireEmployee(ctx, *req.EmployeeID); err != nil {
			return nil, err
		}
		updates["employee_id"] = *req.EmployeeID
	}

	goal, err := s.repo.Update(ctx, userID, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "goal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update goal")
	}
	return FromModel(goal, s.now()), nil
}

func (s *service) UpdateProgress(ctx context.Context, userID, id uuid.UUID, req UpdateProgressRequest) (*GoalDTO, error) {
	if req.Progress == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "progress is required")
	}
	goal, err := s.repo.Update(ctx, userID, id, map[string]any{"progress": *req.Progress})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "goal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update goal progress")
	}
	return FromModel(goal, s.now()), nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "goal not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete goal")
	}
	return nil
}

func (s *service) ListByTargetType(ctx context.Context, userID uuid.UUID, targetType string) ([]GoalDTO, error) {
	parsed, err := enums.ParseGoalTargetType(targetType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target type")
	}
	records, err := s.repo.ListByTargetType(ctx, userID, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list goals by type")
	}
	return fromModels(records, s.now()), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID uuid.UUID, params pagination.Params) (*GoalPageDTO, error) {
	params = params.Normalize()
	records, total, err := s.repo.ListByEmployee(ctx, employeeID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list goals by employee")
	}
	return &GoalPageDTO{
		Goals:       fromModels(records, s.now()),
		TotalPages:  pagination.TotalPages(total, params.Limit),
		CurrentPage: params.Page,
		Total:       total,
	}, nil
}

func (s *service) load(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "goal id is required")
	}
	goal, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "goal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load goal")
	}
	return goal, nil
}

func (s *service) requireEmployee(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "assigned employee is required")
	}
	if _, err := s.employees.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "assigned employee not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load assigned employee")
	}
	return nil
}
