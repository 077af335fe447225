package employees

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/perfval/perfval-backend/pkg/db/models"
)

// Repository encapsulates employee persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an employees repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new employee.
func (r *Repository) Create(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

// FindByID loads an employee regardless of the active flag.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).
		Preload("Manager").
		First(&employee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// List returns a page of active employees matching the filter, plus the
// total match count before pagination.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Employee, int64, error) {
	params := filter.Pagination.Normalize()

	query := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("is_active = ?", true)

	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			`LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(first_name || ' ' || last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(employee_code) LIKE ?`,
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.Employee
	if err := query.
		Preload("Manager").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByDepartment returns all active employees in a department, unpaginated.
func (r *Repository) ListByDepartment(ctx context.Context, department string) ([]models.Employee, error) {
	var records []models.Employee
	if err := r.db.WithContext(ctx).
		Preload("Manager").
		Where("department = ? AND is_active = ?", department, true).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Update applies the column updates and returns the fresh row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Employee, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Employee{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// SoftDelete flips the active flag off.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("id = ?", id).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
