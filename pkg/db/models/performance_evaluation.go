package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/perfval/perfval-backend/pkg/enums"
	"github.com/perfval/perfval-backend/pkg/types"
)

// PerformanceEvaluation captures a review of one employee by another for a
// given period. Evaluations are hard-deleted; there is no active flag.
type PerformanceEvaluation struct {
	ID                    uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID            uuid.UUID              `gorm:"column:employee_id;type:uuid;not null;index"`
	Employee              *Employee              `gorm:"foreignKey:EmployeeID"`
	EvaluatorID           uuid.UUID              `gorm:"column:evaluator_id;type:uuid;not null;index"`
	Evaluator             *Employee              `gorm:"foreignKey:EvaluatorID"`
	PeriodStart           time.Time              `gorm:"column:period_start;not null"`
	PeriodEnd             time.Time              `gorm:"column:period_end;not null"`
	EvaluationDate        time.Time              `gorm:"column:evaluation_date;not null"`
	OverallRating         int                    `gorm:"column:overall_rating;not null"`
	TechnicalRating       int                    `gorm:"column:technical_rating;not null"`
	TechnicalComments     *string                `gorm:"column:technical_comments"`
	CommunicationRating   int                    `gorm:"column:communication_rating;not null"`
	CommunicationComments *string                `gorm:"column:communication_comments"`
	TeamworkRating        int                    `gorm:"column:teamwork_rating;not null"`
	TeamworkComments      *string                `gorm:"column:teamwork_comments"`
	LeadershipRating      int                    `gorm:"column:leadership_rating;not null"`
	LeadershipComments    *string                `gorm:"column:leadership_comments"`
	ProductivityRating    int                    `gorm:"column:productivity_rating;not null"`
	ProductivityComments  *string                `gorm:"column:productivity_comments"`
	Strengths             pq.StringArray         `gorm:"column:strengths;type:text[];default:'{}'"`
	AreasForImprovement   pq.StringArray         `gorm:"column:areas_for_improvement;type:text[];default:'{}'"`
	SubGoals              []types.SubGoal        `gorm:"column:sub_goals;type:jsonb;serializer:json"`
	Comments              *string                `gorm:"column:comments"`
	Status                enums.EvaluationStatus `gorm:"column:status;not null;default:'draft'"`
	CreatedAt             time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
