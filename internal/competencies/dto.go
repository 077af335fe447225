package competencies

import (
	"time"

	"github.com/google/uuid"

	"github.com/perfval/perfval-backend/internal/derived"
	"github.com/perfval/perfval-backend/pkg/db/models"
	"github.com/perfval/perfval-backend/pkg/enums"
	"github.com/perfval/perfval-backend/pkg/pagination"
)

// CompetencyDTO is the transport shape of a skill assessment. Gap and
// progress percentage are derived when the DTO is built.
type CompetencyDTO struct {
	ID                 uuid.UUID                `json:"id"`
	Employee           *EmployeeSummaryDTO      `json:"employee,omitempty"`
	AssessedBy         *AssessorSummaryDTO      `json:"assessedBy,omitempty"`
	SkillName          string                   `json:"skillName"`
	Category           enums.CompetencyCategory `json:"category"`
	CurrentLevel       int                      `json:"currentLevel"`
	TargetLevel        int                      `json:"targetLevel"`
	Gap                int                      `json:"gap"`
	ProgressPercentage int                      `json:"progressPercentage"`
	AssessmentDate     time.Time                `json:"assessmentDate"`
	NextReviewDate     time.Time                `json:"nextReviewDate"`
	Description        *string                  `json:"description,omitempty"`
	Evidence           *string                  `json:"evidence,omitempty"`
	DevelopmentPlan    *string                  `json:"developmentPlan,omitempty"`
	Status             enums.CompetencyStatus   `json:"status"`
	IsActive           bool                     `json:"isActive"`
	CreatedAt          time.Time                `json:"createdAt"`
	UpdatedAt          time.Time                `json:"updatedAt"`
}

// EmployeeSummaryDTO is the trimmed employee projection embedded in
// competency responses.
type EmployeeSummaryDTO struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID string    `json:"employeeId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
}

// AssessorSummaryDTO is the trimmed user projection for the assessor.
type AssessorSummaryDTO struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// CompetencyPageDTO is the list response shape.
type CompetencyPageDTO struct {
	Competencies []CompetencyDTO `json:"competencies"`
	Pagination   pagination.Meta `json:"pagination"`
}

// EmployeeCompetenciesDTO pairs an employee's competencies with their
// summary statistics.
type EmployeeCompetenciesDTO struct {
	Competencies []CompetencyDTO `json:"competencies"`
	Summary      SummaryDTO      `json:"summary"`
}

// SummaryDTO is the per-employee aggregate block.
type SummaryDTO struct {
	TotalSkills              int     `json:"totalSkills"`
	AverageCurrentLevel      float64 `json:"averageCurrentLevel"`
	AverageTargetLevel       float64 `json:"averageTargetLevel"`
	SkillsNeedingImprovement int     `json:"skillsNeedingImprovement"`
	OverallProgress          int     `json:"overallProgress"`
}

// StatsDTO is the overview report.
type StatsDTO struct {
	TotalCompetencies        int            `json:"totalCompetencies"`
	AverageCurrentLevel      float64        `json:"averageCurrentLevel"`
	AverageTargetLevel       float64        `json:"averageTargetLevel"`
	SkillsNeedingImprovement int            `json:"skillsNeedingImprovement"`
	OverallProgress          int            `json:"overallProgress"`
	CategoryBreakdown        map[string]int `json:"categoryBreakdown"`
	StatusBreakdown          map[string]int `json:"statusBreakdown"`
}

// ListFilter narrows the competency listing.
type ListFilter struct {
	EmployeeID uuid.UUID
	Category   enums.CompetencyCategory
	Status     enums.CompetencyStatus
	Search     string
	SortBy     string
	SortOrder  string
	Pagination pagination.Params
}

// StatsFilter narrows the overview report. Department is ignored when an
// employee id is given, matching the original precedence.
type StatsFilter struct {
	EmployeeID uuid.UUID
	Department string
}

// CreateCompetencyRequest carries the fields for a new assessment.
type CreateCompetencyRequest struct {
	EmployeeID      uuid.UUID  `json:"employee" validate:"required"`
	SkillName       string     `json:"skillName" validate:"required,max=100"`
	Category        string     `json:"category" validate:"required"`
	CurrentLevel    int        `json:"currentLevel" validate:"required,gte=1,lte=5"`
	TargetLevel     int        `json:"targetLevel" validate:"required,gte=1,lte=5,gtefield=CurrentLevel"`
	AssessmentDate  *time.Time `json:"assessmentDate"`
	NextReviewDate  *time.Time `json:"nextReviewDate"`
	Description     *string    `json:"description" validate:"omitempty,max=500"`
	Evidence        *string    `json:"evidence" validate:"omitempty,max=1000"`
	DevelopmentPlan *string    `json:"developmentPlan" validate:"omitempty,max=1000"`
	Status          *string    `json:"status"`
}

// UpdateCompetencyRequest mirrors the create payload; all fields optional.
type UpdateCompetencyRequest struct {
	SkillName       *string    `json:"skillName" validate:"omitempty,min=1,max=100"`
	Category        *string    `json:"category"`
	CurrentLevel    *int       `json:"currentLevel" validate:"omitempty,gte=1,lte=5"`
	TargetLevel     *int       `json:"targetLevel" validate:"omitempty,gte=1,lte=5"`
	AssessmentDate  *time.Time `json:"assessmentDate"`
	NextReviewDate  *time.Time `json:"nextReviewDate"`
	Description     *string    `json:"description" validate:"omitempty,max=500"`
	Evidence        *string    `json:"evidence" validate:"omitempty,max=1000"`
	DevelopmentPlan *string    `json:"developmentPlan" validate:"omitempty,max=1000"`
	Status          *string    `json:"status"`
}

// FromModel converts a persisted competency into its transport shape.
func FromModel(c *models.Competency) *CompetencyDTO {
	if c == nil {
		return nil
	}
	dto := &CompetencyDTO{
		ID:                 c.ID,
		SkillName:          c.SkillName,
		Category:           c.Category,
		CurrentLevel:       c.CurrentLevel,
		TargetLevel:        c.TargetLevel,
		Gap:                derived.CompetencyGap(c.CurrentLevel, c.TargetLevel),
		ProgressPercentage: derived.CompetencyProgressPct(c.CurrentLevel, c.TargetLevel),
		AssessmentDate:     c.AssessmentDate,
		NextReviewDate:     c.NextReviewDate,
		Description:        c.Description,
		Evidence:           c.Evidence,
		DevelopmentPlan:    c.DevelopmentPlan,
		Status:             c.Status,
		IsActive:           c.IsActive,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
	if c.Employee != nil {
		dto.Employee = &EmployeeSummaryDTO{
			ID:         c.Employee.ID,
			EmployeeID: c.Employee.EmployeeCode,
			FirstName:  c.Employee.FirstName,
			LastName:   c.Employee.LastName,
			Department: c.Employee.Department,
			Position:   c.Employee.Position,
		}
	}
	if c.Assessor != nil {
		dto.AssessedBy = &AssessorSummaryDTO{
			ID:        c.Assessor.ID,
			FirstName: c.Assessor.FirstName,
			LastName:  c.Assessor.LastName,
		}
	}
	return dto
}

func fromModels(records []models.Competency) []CompetencyDTO {
	dtos := make([]CompetencyDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *FromModel(&records[i]))
	}
	return dtos
}
