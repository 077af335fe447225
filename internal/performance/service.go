package performance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/perfval/perfval-backend/pkg/db/models"
	"github.com/perfval/perfval-backend/pkg/enums"
	pkgerrors "github.com/perfval/perfval-backend/pkg/errors"
	"github.com/perfval/perfval-backend/pkg/pagination"
	"github.com/perfval/perfval-backend/pkg/types"
)

// Service exposes business rules for performance evaluations.
type Service interface {
	List(ctx context.Context, filter ListFilter) (*EvaluationPageDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*EvaluationDTO, error)
	Create(ctx context.Context, req CreateEvaluationRequest) (*EvaluationDTO, error)
	Update(ctx context.Context, id uuid.UUID, req CreateEvaluationRequest) (*EvaluationDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*EvaluationDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]EvaluationDTO, error)
	ListByEvaluator(ctx context.Context, evaluatorID uuid.UUID) ([]EvaluationDTO, error)
}

type repository interface {
	Create(ctx context.Context, evaluation *models.PerformanceEvaluation) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.PerformanceEvaluation, error)
	List(ctx context.Context, filter ListFilter) ([]models.PerformanceEvaluation, int64, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.PerformanceEvaluation, error)
	ListByEvaluator(ctx context.Context, evaluatorID uuid.UUID) ([]models.PerformanceEvaluation, error)
	Save(ctx context.Context, evaluation *models.PerformanceEvaluation) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type employeeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
}

type service struct {
	repo      repository
	employees employeeFinder
	now       func() time.Time
}

// ServiceParams collects the performance service dependencies.
type ServiceParams struct {
	Repo      repository
	Employees employeeFinder
	Now       func() time.Time
}

// NewService builds a performance service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("performance repository is required")
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

// List applies the name search over the fetched page; the total counts the
// storage-level match set.
func (s *service) List(ctx context.Context, filter ListFilter) (*EvaluationPageDTO, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid evaluation status")
	}
	filter.Pagination = filter.Pagination.Normalize()

	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list evaluations")
	}

	dtos := fromModels(records)
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		filtered := dtos[:0]
		for _, dto := range dtos {
			if matchesName(dto.Employee, search) || matchesName(dto.Evaluator, search) {
				filtered = append(filtered, dto)
			}
		}
		dtos = filtered
	}

	return &EvaluationPageDTO{
		Performances: dtos,
		TotalPages:   pagination.TotalPages(total, filter.Pagination.Limit),
		CurrentPage:  filter.Pagination.Page,
		Total:        total,
	}, nil
}

func matchesName(summary *EmployeeSummaryDTO, search string) bool {
	if summary == nil {
		return false
	}
	name := strings.ToLower(summary.FirstName + " " + summary.LastName)
	return strings.Contains(name, search)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*EvaluationDTO, error) {
	evaluation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(evaluation), nil
}

func (s *service) Create(ctx context.Context, req CreateEvaluationRequest) (*EvaluationDTO, error) {
	if err := s.checkParticipants(ctx, req.EmployeeID, req.EvaluatorID); err != nil {
		return nil, err
	}
	if !req.EvaluationPeriod.StartDate.Before(req.EvaluationPeriod.EndDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start date must be before end date")
	}

	evaluation, err := s.buildModel(req)
	if err != nil {
		return nil, err
	}
	evaluation.Status = enums.EvaluationStatusDraft

	if err := s.repo.Create(ctx, evaluation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create evaluation")
	}
	return s.Get(ctx, evaluation.ID)
}

// Update replaces the evaluation content. The workflow state is untouched;
// transitions go through UpdateStatus.
func (s *service) Update(ctx context.Context, id uuid.UUID, req CreateEvaluationRequest) (*EvaluationDTO, error) {
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkParticipants(ctx, req.EmployeeID, req.EvaluatorID); err != nil {
		return nil, err
	}
	if !req.EvaluationPeriod.StartDate.Before(req.EvaluationPeriod.EndDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start date must be before end date")
	}

	replacement, err := s.buildModel(req)
	if err != nil {
		return nil, err
	}
	replacement.ID = existing.ID
	replacement.Status = existing.Status
	replacement.CreatedAt = existing.CreatedAt

	if err := s.repo.Save(ctx, replacement); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update evaluation")
	}
	return s.Get(ctx, id)
}

// UpdateStatus enforces the draft -> submitted -> approved | rejected
// workflow. Approved and rejected are terminal.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*EvaluationDTO, error) {
	next, err := enums.ParseEvaluationStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid evaluation status")
	}

	evaluation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !evaluation.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("cannot transition evaluation from %s to %s", evaluation.Status, next))
	}

	if err := s.repo.UpdateStatus(ctx, id, next.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "evaluation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update evaluation status")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "evaluation not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete evaluation")
	}
	return nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]EvaluationDTO, error) {
	records, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list evaluations by employee")
	}
	return fromModels(records), nil
}

func (s *service) ListByEvaluator(ctx context.Context, evaluatorID uuid.UUID) ([]EvaluationDTO, error) {
	records, err := s.repo.ListByEvaluator(ctx, evaluatorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list evaluations by evaluator")
	}
	return fromModels(records), nil
}

// checkParticipants verifies both employees exist, fetching them
// concurrently.
func (s *service) checkParticipants(ctx context.Context, employeeID, evaluatorID uuid.UUID) error {
	if employeeID == uuid.Nil || evaluatorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "employee and evaluator are required")
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, id := range []uuid.UUID{employeeID, evaluatorID} {
		id := id
		group.Go(func() error {
			_, err := s.employees.FindByID(groupCtx, id)
			return err
		})
	}
	if err := group.Wait(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "employee or evaluator not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load evaluation participants")
	}
	return nil
}

func (s *service) buildModel(req CreateEvaluationRequest) (*models.PerformanceEvaluation, error) {
	subGoals := make([]types.SubGoal, 0, len(req.Goals))
	for _, g := range req.Goals {
		status := enums.SubGoalStatusPending
		if g.Status != "" {
			parsed, err := enums.ParseSubGoalStatus(g.Status)
			if err != nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid goal status")
			}
			status = parsed
		}
		subGoals = append(subGoals, types.SubGoal{
			Description: strings.TrimSpace(g.Description),
			TargetDate:  g.TargetDate,
			Status:      status,
		})
	}

	evaluationDate := s.now()
	if req.EvaluationDate != nil {
		evaluationDate = *req.EvaluationDate
	}

	return &models.PerformanceEvaluation{
		EmployeeID:            req.EmployeeID,
		EvaluatorID:           req.EvaluatorID,
		PeriodStart:           req.EvaluationPeriod.StartDate,
		PeriodEnd:             req.EvaluationPeriod.EndDate,
		EvaluationDate:        evaluationDate,
		OverallRating:         req.OverallRating,
		TechnicalRating:       req.Categories.TechnicalSkills.Rating,
		TechnicalComments:     req.Categories.TechnicalSkills.Comments,
		CommunicationRating:   req.Categories.Communication.Rating,
		CommunicationComments: req.Categories.Communication.Comments,
		TeamworkRating:        req.Categories.Teamwork.Rating,
		TeamworkComments:      req.Categories.Teamwork.Comments,
		LeadershipRating:      req.Categories.Leadership.Rating,
		LeadershipComments:    req.Categories.Leadership.Comments,
		ProductivityRating:    req.Categories.Productivity.Rating,
		ProductivityComments:  req.Categories.Productivity.Comments,
		Strengths:             pq.StringArray(trimAll(req.Strengths)),
		AreasForImprovement:   pq.StringArray(trimAll(req.AreasForImprovement)),
		SubGoals:              subGoals,
		Comments:              req.Comments,
	}, nil
}

func trimAll(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			trimmed = append(trimmed, v)
		}
	}
	return trimmed
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.PerformanceEvaluation, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "evaluation id is required")
	}
	evaluation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "evaluation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load evaluation")
	}
	return evaluation, nil
}
