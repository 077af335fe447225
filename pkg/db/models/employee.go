package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee represents a staff member tracked by the review system.
type Employee struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeCode string     `gorm:"column:employee_code;not null;uniqueIndex"`
	FirstName    string     `gorm:"column:first_name;not null"`
	LastName     string     `gorm:"column:last_name;not null"`
	Email        string     `gorm:"column:email;not null;uniqueIndex"`
	Department   string     `gorm:"column:department;not null;index"`
	Position     string     `gorm:"column:position;not null"`
	Salary       *float64   `gorm:"column:salary;type:numeric(12,2)"`
	HireDate     time.Time  `gorm:"column:hire_date;not null"`
	ManagerID    *uuid.UUID `gorm:"column:manager_id;type:uuid"`
	Manager      *Employee  `gorm:"foreignKey:ManagerID"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// FullName joins the first and last name with a single space.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
