package goals

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/perfval/perfval-backend/pkg/db/models"
	"github.com/perfval/perfval-backend/pkg/enums"
	"github.com/perfval/perfval-backend/pkg/pagination"
)

// Repository encapsulates goal persistence. Every lookup that takes a userID
// is scoped to that owner; callers never see another user's goals.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a goals repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new goal.
func (r *Repository) Create(ctx context.Context, goal *models.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

// FindByID loads a goal owned by the given user, active or not. Lookups by
// id must still resolve after a soft delete; only lists hide inactive rows.
func (r *Repository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("user_id = ?", userID).
		First(&goal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// List returns a page of the user's active goals matching the filter, plus
// the total match count before pagination. The derived-status filter is not
// applied here; it runs in memory at the service layer.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.Goal, int64, error) {
	params := filter.Pagination.Normalize()

	query := r.db.WithContext(ctx).
		Model(&models.Goal{}).
		Where("user_id = ? AND is_active = ?", userID, true)

	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}
	if filter.EmployeeID != uuid.Nil {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.Goal
	if err := query.
		Preload("Employee").
		Order("due_date ASC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByTargetType returns all of the user's active goals with the given
// horizon, unpaginated, soonest due first.
func (r *Repository) ListByTargetType(ctx context.Context, userID uuid.UUID, targetType enums.GoalTargetType) ([]models.Goal, error) {
	var records []models.Goal
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("user_id = ? AND target_type = ? AND is_active = ?", userID, targetType, true).
		Order("due_date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListByEmployee returns a page of active goals assigned to an employee,
// across owners, plus the total match count.
func (r *Repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, params pagination.Params) ([]models.Goal, int64, error) {
	normalized := params.Normalize()

	query := r.db.WithContext(ctx).
		Model(&models.Goal{}).
		Where("employee_id = ? AND is_active = ?", employeeID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.Goal
	if err := query.
		Preload("Employee").
		Order("due_date ASC").
		Offset(normalized.Offset()).
		Limit(normalized.Limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Update applies the column updates to the user's active goal and returns
// the fresh row.
func (r *Repository) Update(ctx context.Context, userID, id uuid.UUID, updates map[string]any) (*models.Goal, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Goal{}).
			Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, userID, id)
}

// SoftDelete flips the active flag off for the user's goal.
func (r *Repository) SoftDelete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Goal{}).
		Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
