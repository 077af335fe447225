package competencies

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/perfval/perfval-backend/pkg/db/models"
)

// sortColumns whitelists the sortBy parameter. Anything else falls back to
// the assessment date.
var sortColumns = map[string]string{
	"assessmentDate": "assessment_date",
	"nextReviewDate": "next_review_date",
	"skillName":      "skill_name",
	"currentLevel":   "current_level",
	"targetLevel":    "target_level",
	"createdAt":      "created_at",
}

// Repository encapsulates competency persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a competencies repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new competency.
func (r *Repository) Create(ctx context.Context, competency *models.Competency) error {
	return r.db.WithContext(ctx).Create(competency).Error
}

// FindByID loads a competency regardless of the active flag.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Competency, error) {
	var competency models.Competency
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Assessor").
		First(&competency, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &competency, nil
}

// List returns a page of active competencies matching the filter, plus the
// total match count before pagination.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Competency, int64, error) {
	params := filter.Pagination.Normalize()

	query := r.db.WithContext(ctx).
		Model(&models.Competency{}).
		Where("is_active = ?", true)

	if filter.EmployeeID != uuid.Nil {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(skill_name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.Competency
	if err := query.
		Preload("Employee").
		Preload("Assessor").
		Order(orderClause(filter.SortBy, filter.SortOrder)).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByEmployee returns all active competencies of an employee, optionally
// narrowed by category and status, newest assessment first.
func (r *Repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, filter ListFilter) ([]models.Competency, error) {
	query := r.db.WithContext(ctx).
		Where("employee_id = ? AND is_active = ?", employeeID, true)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var records []models.Competency
	if err := query.
		Preload("Assessor").
		Order("assessment_date DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListForStats returns the active competencies feeding the overview report.
// A department filter resolves to the employees of that department.
func (r *Repository) ListForStats(ctx context.Context, filter StatsFilter) ([]models.Competency, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Competency{}).
		Where("is_active = ?", true)

	if filter.EmployeeID != uuid.Nil {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	} else if filter.Department != "" {
		sub := r.db.Model(&models.Employee{}).
			Select("id").
			Where("department = ?", filter.Department)
		query = query.Where("employee_id IN (?)", sub)
	}

	var records []models.Competency
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save persists the full competency row.
func (r *Repository) Save(ctx context.Context, competency *models.Competency) error {
	return r.db.WithContext(ctx).Save(competency).Error
}

// SoftDelete flips the active flag off.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Competency{}).
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

func orderClause(sortBy, sortOrder string) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "assessment_date"
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}
