package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/perfval/perfval-backend/pkg/enums"
)

// Competency tracks a single skill assessment for an employee.
type Competency struct {
	ID              uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID      uuid.UUID                `gorm:"column:employee_id;type:uuid;not null;index"`
	Employee        *Employee                `gorm:"foreignKey:EmployeeID"`
	AssessedBy      uuid.UUID                `gorm:"column:assessed_by;type:uuid;not null"`
	Assessor        *User                    `gorm:"foreignKey:AssessedBy"`
	SkillName       string                   `gorm:"column:skill_name;not null"`
	Category        enums.CompetencyCategory `gorm:"column:category;not null;index"`
	CurrentLevel    int                      `gorm:"column:current_level;not null"`
	TargetLevel     int                      `gorm:"column:target_level;not null"`
	AssessmentDate  time.Time                `gorm:"column:assessment_date;not null"`
	NextReviewDate  time.Time                `gorm:"column:next_review_date;not null"`
	Description     *string                  `gorm:"column:description"`
	Evidence        *string                  `gorm:"column:evidence"`
	DevelopmentPlan *string                  `gorm:"column:development_plan"`
	Status          enums.CompetencyStatus   `gorm:"column:status;not null;default:'Developing'"`
	IsActive        bool                     `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
