package goals

import (
	"time"

	"github.com/google/uuid"

	"github.com/perfval/perfval-backend/internal/derived"
	"github.com/perfval/perfval-backend/pkg/db/models"
	"github.com/perfval/perfval-backend/pkg/enums"
	"github.com/perfval/perfval-backend/pkg/pagination"
)

// GoalDTO is the transport shape of a goal. Status is derived from progress
// and due date when the DTO is built, never read from storage.
type GoalDTO struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Description *string              `json:"description,omitempty"`
	TargetType  enums.GoalTargetType `json:"targetType"`
	DueDate     time.Time            `json:"dueDate"`
	Progress    int                  `json:"progress"`
	Status      enums.GoalStatus     `json:"status"`
	Employee    *AssignedEmployeeDTO `json:"assignedEmployee,omitempty"`
	IsActive    bool                 `json:"isActive"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// AssignedEmployeeDTO is the trimmed employee projection embedded in goals.
type AssignedEmployeeDTO struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID string    `json:"employeeId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Department string    `json:"department"`
}

// GoalPageDTO is the list response shape.
type GoalPageDTO struct {
	Goals       []GoalDTO `json:"goals"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	Total       int64     `json:"total"`
}

// ListFilter narrows the owner-scoped goal listing. Status filters on the
// derived value and is applied after the page is fetched.
type ListFilter struct {
	TargetType enums.GoalTargetType
	Status     enums.GoalStatus
	EmployeeID uuid.UUID
	Search     string
	Pagination pagination.Params
}

// CreateGoalRequest carries the fields for a new goal.
type CreateGoalRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=1000"`
	TargetType  string    `json:"targetType" validate:"required,oneof=quarterly annual"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	Progress    *int      `json:"progress" validate:"omitempty,gte=0,lte=100"`
	EmployeeID  uuid.UUID `json:"assignedEmployee" validate:"required"`
}

// UpdateGoalRequest mirrors the create payload; all fields optional.
type UpdateGoalRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	TargetType  *string    `json:"targetType" validate:"omitempty,oneof=quarterly annual"`
	DueDate     *time.Time `json:"dueDate"`
	Progress    *int       `json:"progress" validate:"omitempty,gte=0,lte=100"`
	EmployeeID  *uuid.UUID `json:"assignedEmployee"`
}

// UpdateProgressRequest is the PATCH body for progress-only updates.
type UpdateProgressRequest struct {
	Progress *int `json:"progress" validate:"required,gte=0,lte=100"`
}

// FromModel converts a persisted goal into its transport shape, deriving the
// status against the provided clock.
func FromModel(g *models.Goal, now time.Time) *GoalDTO {
	if g == nil {
		return nil
	}
	dto := &GoalDTO{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		TargetType:  g.TargetType,
		DueDate:     g.DueDate,
		Progress:    g.Progress,
		Status:      derived.GoalStatus(g.Progress, g.DueDate, now),
		IsActive:    g.IsActive,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
	if g.Employee != nil {
		dto.Employee = &AssignedEmployeeDTO{
			ID:         g.Employee.ID,
			EmployeeID: g.Employee.EmployeeCode,
			FirstName:  g.Employee.FirstName,
			LastName:   g.Employee.LastName,
			Department: g.Employee.Department,
		}
	}
	return dto
}

func fromModels(records []models.Goal, now time.Time) []GoalDTO {
	dtos := make([]GoalDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *FromModel(&records[i], now))
	}
	return dtos
}
