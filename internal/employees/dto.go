package employees

import (
	"time"

	"github.com/google/uuid"

	"github.com/perfval/perfval-backend/pkg/db/models"
	"github.com/perfval/perfval-backend/pkg/pagination"
)

// EmployeeDTO is the transport shape of an employee record.
type EmployeeDTO struct {
	ID         uuid.UUID          `json:"id"`
	EmployeeID string             `json:"employeeId"`
	FirstName  string             `json:"firstName"`
	LastName   string             `json:"lastName"`
	FullName   string             `json:"fullName"`
	Email      string             `json:"email"`
	Department string             `json:"department"`
	Position   string             `json:"position"`
	Salary     *float64           `json:"salary,omitempty"`
	HireDate   time.Time          `json:"hireDate"`
	Manager    *ManagerSummaryDTO `json:"manager,omitempty"`
	IsActive   bool               `json:"isActive"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// ManagerSummaryDTO is the trimmed manager projection embedded in responses.
type ManagerSummaryDTO struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID string    `json:"employeeId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
}

// EmployeePageDTO is the list response shape.
type EmployeePageDTO struct {
	Employees   []EmployeeDTO `json:"employees"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Total       int64         `json:"total"`
}

// ListFilter narrows the employee listing.
type ListFilter struct {
	Department string
	Search     string
	Pagination pagination.Params
}

// CreateEmployeeRequest carries the fields for a new employee.
type CreateEmployeeRequest struct {
	EmployeeID string     `json:"employeeId" validate:"required"`
	FirstName  string     `json:"firstName" validate:"required"`
	LastName   string     `json:"lastName" validate:"required"`
	Email      string     `json:"email" validate:"required,email"`
	Department string     `json:"department" validate:"required"`
	Position   string     `json:"position" validate:"required"`
	Salary     *float64   `json:"salary" validate:"omitempty,gte=0"`
	HireDate   time.Time  `json:"hireDate" validate:"required"`
	ManagerID  *uuid.UUID `json:"manager"`
}

// UpdateEmployeeRequest mirrors the create payload; all fields optional.
type UpdateEmployeeRequest struct {
	EmployeeID *string    `json:"employeeId" validate:"omitempty,min=1"`
	FirstName  *string    `json:"firstName" validate:"omitempty,min=1"`
	LastName   *string    `json:"lastName" validate:"omitempty,min=1"`
	Email      *string    `json:"email" validate:"omitempty,email"`
	Department *string    `json:"department" validate:"omitempty,min=1"`
	Position   *string    `json:"position" validate:"omitempty,min=1"`
	Salary     *float64   `json:"salary" validate:"omitempty,gte=0"`
	HireDate   *time.Time `json:"hireDate"`
	ManagerID  *uuid.UUID `json:"manager"`
}

// FromModel converts a persisted employee into its transport shape.
func FromModel(e *models.Employee) *EmployeeDTO {
	if e == nil {
		return nil
	}
	dto := &EmployeeDTO{
		ID:         e.ID,
		EmployeeID: e.EmployeeCode,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		FullName:   e.FullName(),
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		Salary:     e.Salary,
		HireDate:   e.HireDate,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if e.Manager != nil {
		dto.Manager = &ManagerSummaryDTO{
			ID:         e.Manager.ID,
			EmployeeID: e.Manager.EmployeeCode,
			FirstName:  e.Manager.FirstName,
			LastName:   e.Manager.LastName,
		}
	}
	return dto
}

func fromModels(records []models.Employee) []EmployeeDTO {
	dtos := make([]EmployeeDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *FromModel(&records[i]))
	}
	return dtos
}
