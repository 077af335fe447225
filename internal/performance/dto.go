package performance

import (
	"time"

	"github.com/google/uuid"

	"github.com/perfval/perfval-backend/internal/derived"
	"github.com/perfval/perfval-backend/pkg/db/models"
	"github.com/perfval/perfval-backend/pkg/enums"
	"github.com/perfval/perfval-backend/pkg/pagination"
	"github.com/perfval/perfval-backend/pkg/types"
)

// EvaluationDTO is the transport shape of a performance evaluation. The
// average category rating is derived when the DTO is built.
type EvaluationDTO struct {
	ID                    uuid.UUID              `json:"id"`
	Employee              *EmployeeSummaryDTO    `json:"employee,omitempty"`
	Evaluator             *EmployeeSummaryDTO    `json:"evaluator,omitempty"`
	EvaluationPeriod      PeriodDTO              `json:"evaluationPeriod"`
	EvaluationDate        time.Time              `json:"evaluationDate"`
	OverallRating         int                    `json:"overallRating"`
	Categories            CategoriesDTO          `json:"categories"`
	AverageCategoryRating float64                `json:"averageCategoryRating"`
	Strengths             []string               `json:"strengths"`
	AreasForImprovement   []string               `json:"areasForImprovement"`
	Goals                 []types.SubGoal        `json:"goals"`
	Comments              *string                `json:"comments,omitempty"`
	Status                enums.EvaluationStatus `json:"status"`
	CreatedAt             time.Time              `json:"createdAt"`
	UpdatedAt             time.Time              `json:"updatedAt"`
}

// EmployeeSummaryDTO is the trimmed employee projection embedded in
// evaluation responses.
type EmployeeSummaryDTO struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID string    `json:"employeeId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Department string    `json:"department,omitempty"`
}

// PeriodDTO is the evaluation window.
type PeriodDTO struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// CategoryDTO pairs a rating with its free-text commentary.
type CategoryDTO struct {
	Rating   int     `json:"rating"`
	Comments *string `json:"comments,omitempty"`
}

// CategoriesDTO groups the five rated categories.
type CategoriesDTO struct {
	TechnicalSkills CategoryDTO `json:"technicalSkills"`
	Communication   CategoryDTO `json:"communication"`
	Teamwork        CategoryDTO `json:"teamwork"`
	Leadership      CategoryDTO `json:"leadership"`
	Productivity    CategoryDTO `json:"productivity"`
}

// EvaluationPageDTO is the list response shape.
type EvaluationPageDTO struct {
	Performances []EvaluationDTO `json:"performances"`
	TotalPages   int             `json:"totalPages"`
	CurrentPage  int             `json:"currentPage"`
	Total        int64           `json:"total"`
}

// ListFilter narrows the evaluation listing. Search matches employee and
// evaluator names and is applied in memory over the fetched page.
type ListFilter struct {
	EmployeeID  uuid.UUID
	EvaluatorID uuid.UUID
	Status      enums.EvaluationStatus
	Search      string
	Pagination  pagination.Params
}

// CategoryRequest carries one rated category on create and update.
type CategoryRequest struct {
	Rating   int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comments *string `json:"comments" validate:"omitempty,max=1000"`
}

// CategoriesRequest groups the five rated categories on create and update.
type CategoriesRequest struct {
	TechnicalSkills CategoryRequest `json:"technicalSkills" validate:"required"`
	Communication   CategoryRequest `json:"communication" validate:"required"`
	Teamwork        CategoryRequest `json:"teamwork" validate:"required"`
	Leadership      CategoryRequest `json:"leadership" validate:"required"`
	Productivity    CategoryRequest `json:"productivity" validate:"required"`
}

// PeriodRequest is the evaluation window on create and update. The start
// must precede the end; the service enforces it.
type PeriodRequest struct {
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

// CreateEvaluationRequest carries the fields for a new evaluation.
type CreateEvaluationRequest struct {
	EmployeeID          uuid.UUID         `json:"employee" validate:"required"`
	EvaluatorID         uuid.UUID         `json:"evaluator" validate:"required"`
	EvaluationPeriod    PeriodRequest     `json:"evaluationPeriod" validate:"required"`
	EvaluationDate      *time.Time        `json:"evaluationDate"`
	OverallRating       int               `json:"overallRating" validate:"required,gte=1,lte=5"`
	Categories          CategoriesRequest `json:"categories" validate:"required"`
	Strengths           []string          `json:"strengths" validate:"omitempty,dive,max=500"`
	AreasForImprovement []string          `json:"areasForImprovement" validate:"omitempty,dive,max=500"`
	Goals               []SubGoalRequest  `json:"goals" validate:"omitempty,dive"`
	Comments            *string           `json:"comments" validate:"omitempty,max=2000"`
}

// SubGoalRequest is one embedded follow-up goal.
type SubGoalRequest struct {
	Description string     `json:"description" validate:"required,max=500"`
	TargetDate  *time.Time `json:"targetDate"`
	Status      string     `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

// UpdateStatusRequest is the PATCH body for workflow transitions.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft submitted approved rejected"`
}

// FromModel converts a persisted evaluation into its transport shape.
func FromModel(e *models.PerformanceEvaluation) *EvaluationDTO {
	if e == nil {
		return nil
	}
	dto := &EvaluationDTO{
		ID: e.ID,
		EvaluationPeriod: PeriodDTO{
			StartDate: e.PeriodStart,
			EndDate:   e.PeriodEnd,
		},
		EvaluationDate: e.EvaluationDate,
		OverallRating:  e.OverallRating,
		Categories: CategoriesDTO{
			TechnicalSkills: CategoryDTO{Rating: e.TechnicalRating, Comments: e.TechnicalComments},
			Communication:   CategoryDTO{Rating: e.CommunicationRating, Comments: e.CommunicationComments},
			Teamwork:        CategoryDTO{Rating: e.TeamworkRating, Comments: e.TeamworkComments},
			Leadership:      CategoryDTO{Rating: e.LeadershipRating, Comments: e.LeadershipComments},
			Productivity:    CategoryDTO{Rating: e.ProductivityRating, Comments: e.ProductivityComments},
		},
		AverageCategoryRating: derived.AverageCategoryRating(derived.CategoryRatings{
			Technical:     e.TechnicalRating,
			Communication: e.CommunicationRating,
			Teamwork:      e.TeamworkRating,
			Leadership:    e.LeadershipRating,
			Productivity:  e.ProductivityRating,
		}),
		Strengths:           append([]string{}, e.Strengths...),
		AreasForImprovement: append([]string{}, e.AreasForImprovement...),
		Goals:               append([]types.SubGoal{}, e.SubGoals...),
		Comments:            e.Comments,
		Status:              e.Status,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
	if e.Employee != nil {
		dto.Employee = &EmployeeSummaryDTO{
			ID:         e.Employee.ID,
			EmployeeID: e.Employee.EmployeeCode,
			FirstName:  e.Employee.FirstName,
			LastName:   e.Employee.LastName,
			Department: e.Employee.Department,
		}
	}
	if e.Evaluator != nil {
		dto.Evaluator = &EmployeeSummaryDTO{
			ID:         e.Evaluator.ID,
			EmployeeID: e.Evaluator.EmployeeCode,
			FirstName:  e.Evaluator.FirstName,
			LastName:   e.Evaluator.LastName,
		}
	}
	return dto
}

func fromModels(records []models.PerformanceEvaluation) []EvaluationDTO {
	dtos := make([]EvaluationDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *FromModel(&records[i]))
	}
	return dtos
}
