package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/perfval/perfval-backend/pkg/enums"
)

// Goal is an objective owned by a user and assigned to an employee. Its
// status is never stored; it is derived from progress and due date at the
// response boundary.
type Goal struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	Title       string               `gorm:"column:title;not null"`
	Description *string              `gorm:"column:description"`
	TargetType  enums.GoalTargetType `gorm:"column:target_type;not null"`
	DueDate     time.Time            `gorm:"column:due_date;not null"`
	Progress    int                  `gorm:"column:progress;not null;default:0"`
	UserID      uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	EmployeeID  uuid.UUID            `gorm:"column:employee_id;type:uuid;not null;index"`
	Employee    *Employee            `gorm:"foreignKey:EmployeeID"`
	IsActive    bool                 `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
