package performance

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/perfval/perfval-backend/pkg/db/models"
)

// Repository encapsulates evaluation persistence. Evaluations are
// hard-deleted; there is no active flag to scope on.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a performance repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new evaluation.
func (r *Repository) Create(ctx context.Context, evaluation *models.PerformanceEvaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

// FindByID loads an evaluation with both employee projections.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PerformanceEvaluation, error) {
	var evaluation models.PerformanceEvaluation
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Evaluator").
		First(&evaluation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &evaluation, nil
}

// List returns a page of evaluations matching the filter, newest evaluation
// date first, plus the total match count before pagination. The free-text
// search is not applied here; it runs in memory at the service layer.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.PerformanceEvaluation, int64, error) {
	params := filter.Pagination.Normalize()

	query := r.db.WithContext(ctx).Model(&models.PerformanceEvaluation{})
	if filter.EmployeeID != uuid.Nil {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.EvaluatorID != uuid.Nil {
		query = query.Where("evaluator_id = ?", filter.EvaluatorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.PerformanceEvaluation
	if err := query.
		Preload("Employee").
		Preload("Evaluator").
		Order("evaluation_date DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByEmployee returns all evaluations of an employee, unpaginated,
// newest first.
func (r *Repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.PerformanceEvaluation, error) {
	var records []models.PerformanceEvaluation
	if err := r.db.WithContext(ctx).
		Preload("Evaluator").
		Where("employee_id = ?", employeeID).
		Order("evaluation_date DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListByEvaluator returns all evaluations written by an evaluator,
// unpaginated, newest first.
func (r *Repository) ListByEvaluator(ctx context.Context, evaluatorID uuid.UUID) ([]models.PerformanceEvaluation, error) {
	var records []models.PerformanceEvaluation
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("evaluator_id = ?", evaluatorID).
		Order("evaluation_date DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save persists the full evaluation row.
func (r *Repository) Save(ctx context.Context, evaluation *models.PerformanceEvaluation) error {
	return r.db.WithContext(ctx).Save(evaluation).Error
}

// UpdateStatus writes the workflow state only.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.PerformanceEvaluation{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the evaluation permanently.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PerformanceEvaluation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
