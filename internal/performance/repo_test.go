package performance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/perfval/perfval-backend/pkg/db/models"
	"github.com/perfval/perfval-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:performance_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Employee{}, &models.PerformanceEvaluation{}); err != nil {
		t.Fatalf("migrate evaluations: %v", err)
	}
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, code string) models.Employee {
	t.Helper()
	emp := models.Employee{
		EmployeeCode: code,
		FirstName:    "Test",
		LastName:     code,
		Email:        code + "@corp.test",
		Department:   "Engineering",
		Position:     "Engineer",
		HireDate:     time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
	}
	if err := db.Create(&emp).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return emp
}

func seedEvaluation(t *testing.T, db *gorm.DB, evaluation models.PerformanceEvaluation) models.PerformanceEvaluation {
	t.Helper()
	if evaluation.OverallRating == 0 {
		evaluation.OverallRating = 3
		evaluation.TechnicalRating = 3
		evaluation.CommunicationRating = 3
		evaluation.TeamworkRating = 3
		evaluation.LeadershipRating = 3
		evaluation.ProductivityRating = 3
	}
	if evaluation.PeriodStart.IsZero() {
		evaluation.PeriodStart = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		evaluation.PeriodEnd = time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	}
	if evaluation.Status == "" {
		evaluation.Status = enums.EvaluationStatusDraft
	}
	if err := db.Create(&evaluation).Error; err != nil {
		t.Fatalf("seed evaluation: %v", err)
	}
	return evaluation
}

func TestListFiltersAndOrders(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	employee := seedEmployee(t, db, "ENG-001")
	other := seedEmployee(t, db, "ENG-002")
	evaluator := seedEmployee(t, db, "MGR-001")
	date := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	seedEvaluation(t, db, models.PerformanceEvaluation{
		EmployeeID: employee.ID, EvaluatorID: evaluator.ID,
		EvaluationDate: date, Status: enums.EvaluationStatusDraft,
	})
	seedEvaluation(t, db, models.PerformanceEvaluation{
		EmployeeID: employee.ID, EvaluatorID: evaluator.ID,
		EvaluationDate: date.AddDate(0, 1, 0), Status: enums.EvaluationStatusSubmitted,
	})
	seedEvaluation(t, db, models.PerformanceEvaluation{
		EmployeeID: other.ID, EvaluatorID: evaluator.ID,
		EvaluationDate: date.AddDate(0, 2, 0), Status: enums.EvaluationStatusDraft,
	})

	records, total, err := repo.List(ctx, ListFilter{EmployeeID: employee.ID})
	if err != nil {
		t.Fatalf("list by employee: %v", err)
	}
	if total != 2 || len(records) != 2 {
		t.Fatalf("expected 2 rows for employee, got total=%d len=%d", total, len(records))
	}
	if !records[0].EvaluationDate.After(records[1].EvaluationDate) {
		t.Fatalf("expected newest evaluation first")
	}
	if records[0].Employee == nil || records[0].Evaluator == nil {
		t.Fatalf("expected participants preloaded")
	}

	records, total, err = repo.List(ctx, ListFilter{Status: enums.EvaluationStatusSubmitted})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if total != 1 || records[0].Status != enums.EvaluationStatusSubmitted {
		t.Fatalf("expected one submitted evaluation, got total=%d", total)
	}

	byEvaluator, err := repo.ListByEvaluator(ctx, evaluator.ID)
	if err != nil {
		t.Fatalf("list by evaluator: %v", err)
	}
	if len(byEvaluator) != 3 {
		t.Fatalf("expected 3 evaluations by evaluator, got %d", len(byEvaluator))
	}
}

func TestUpdateStatusAndHardDelete(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	employee := seedEmployee(t, db, "ENG-010")
	evaluator := seedEmployee(t, db, "MGR-010")
	evaluation := seedEvaluation(t, db, models.PerformanceEvaluation{
		EmployeeID:     employee.ID,
		EvaluatorID:    evaluator.ID,
		EvaluationDate: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
	})

	if err := repo.UpdateStatus(ctx, evaluation.ID, "submitted"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	loaded, err := repo.FindByID(ctx, evaluation.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if loaded.Status != enums.EvaluationStatusSubmitted {
		t.Fatalf("status not persisted, got %s", loaded.Status)
	}

	if err := repo.UpdateStatus(ctx, uuid.New(), "submitted"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found for missing row, got %v", err)
	}

	if err := repo.Delete(ctx, evaluation.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, evaluation.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected hard-deleted row gone, got %v", err)
	}
	if err := repo.Delete(ctx, evaluation.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
