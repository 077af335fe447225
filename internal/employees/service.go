package employees

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/perfval/perfval-backend/pkg/db"
	"github.com/perfval/perfval-backend/pkg/db/models"
	pkgerrors "github.com/perfval/perfval-backend/pkg/errors"
	"github.com/perfval/perfval-backend/pkg/pagination"
)

// Service exposes business rules for employee management.
type Service interface {
	List(ctx context.Context, filter ListFilter) (*EmployeePageDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*EmployeeDTO, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDepartment(ctx context.Context, department string) ([]EmployeeDTO, error)
}

type repository interface {
	Create(ctx context.Context, employee *models.Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	List(ctx context.Context, filter ListFilter) ([]models.Employee, int64, error)
	ListByDepartment(ctx context.Context, department string) ([]models.Employee, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Employee, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService builds an employees service with the required dependencies.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("employee repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (*EmployeePageDTO, error) {
	filter.Pagination = filter.Pagination.Normalize()
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list employees")
	}
	return &EmployeePageDTO{
		Employees:   fromModels(records),
		TotalPages:  pagination.TotalPages(total, filter.Pagination.Limit),
		CurrentPage: filter.Pagination.Page,
		Total:       total,
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*EmployeeDTO, error) {
	employee, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(employee), nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeDTO, error) {
	employee := &models.Employee{
		EmployeeCode: strings.TrimSpace(req.EmployeeID),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Department:   strings.TrimSpace(req.Department),
		Position:     strings.TrimSpace(req.Position),
		Salary:       req.Salary,
		HireDate:     req.HireDate,
		ManagerID:    req.ManagerID,
		IsActive:     true,
	}

	if req.ManagerID != nil {
		if _, err := s.load(ctx, *req.ManagerID); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "manager not found")
		}
	}

	if err := s.repo.Create(ctx, employee); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "employee with this ID or email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create employee")
	}
	return s.Get(ctx, employee.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeDTO, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.EmployeeID != nil {
		updates["employee_code"] = strings.TrimSpace(*req.EmployeeID)
	}
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Department != nil {
		updates["department"] = strings.TrimSpace(*req.Department)
	}
	if req.Position != nil {
		updates["position"] = strings.TrimSpace(*req.Position)
	}
	if req.Salary != nil {
		updates["salary"] = *req.Salary
	}
	if req.HireDate != nil {
		updates["hire_date"] = *req.HireDate
	}
	if req.ManagerID != nil {
		if _, err := s.load(ctx, *req.ManagerID); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "manager not found")
		}
		updates["manager_id"] = *req.ManagerID
	}

	employee, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "employee with this ID or email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update employee")
	}
	return FromModel(employee), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete employee")
	}
	return nil
}

func (s *service) ListByDepartment(ctx context.Context, department string) ([]EmployeeDTO, error) {
	records, err := s.repo.ListByDepartment(ctx, strings.TrimSpace(department))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list employees by department")
	}
	return fromModels(records), nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee id is required")
	}
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load employee")
	}
	return employee, nil
}
