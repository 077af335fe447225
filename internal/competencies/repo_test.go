package competencies

import (
	"context"
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
	dsn := "file:competencies_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Employee{}, &models.Competency{}); err != nil {
		t.Fatalf("migrate competencies: %v", err)
	}
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, department string) models.Employee {
	t.Helper()
	code := uuid.NewString()[:8]
	emp := models.Employee{
		EmployeeCode: code,
		FirstName:    "Test",
		LastName:     code,
		Email:        code + "@corp.test",
		Department:   department,
		Position:     "Engineer",
		HireDate:     time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
	}
	if err := db.Create(&emp).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return emp
}

func seedCompetency(t *testing.T, db *gorm.DB, competency models.Competency) models.Competency {
	t.Helper()
	if competency.AssessedBy == uuid.Nil {
		competency.AssessedBy = uuid.New()
	}
	if competency.Category == "" {
		competency.Category = enums.CompetencyCategoryTechnical
	}
	if competency.Status == "" {
		competency.Status = enums.CompetencyStatusDeveloping
	}
	if competency.AssessmentDate.IsZero() {
		competency.AssessmentDate = time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
		competency.NextReviewDate = competency.AssessmentDate.AddDate(0, 6, 0)
	}
	if err := db.Create(&competency).Error; err != nil {
		t.Fatalf("seed competency %s: %v", competency.SkillName, err)
	}
	return competency
}

func TestListSortWhitelistAndSearch(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	emp := seedEmployee(t, db, "Engineering")
	desc := "Distributed systems design"
	seedCompetency(t, db, models.Competency{EmployeeID: emp.ID, SkillName: "Go", CurrentLevel: 2, TargetLevel: 4, IsActive: true, Description: &desc})
	seedCompetency(t, db, models.Competency{EmployeeID: emp.ID, SkillName: "Kubernetes", CurrentLevel: 4, TargetLevel: 5, IsActive: true})
	seedCompetency(t, db, models.Competency{EmployeeID: emp.ID, SkillName: "Retired skill", CurrentLevel: 1, TargetLevel: 2, IsActive: false})

	records, total, err := repo.List(ctx, ListFilter{SortBy: "skillName", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Fatalf("inactive rows must be excluded, got total=%d", total)
	}
	if records[0].SkillName != "Go" || records[1].SkillName != "Kubernetes" {
		t.Fatalf("expected alphabetical order, got %s, %s", records[0].SkillName, records[1].SkillName)
	}

	records, _, err = repo.List(ctx, ListFilter{SortBy: "currentLevel", SortOrder: "desc"})
	if err != nil {
		t.Fatalf("list sorted: %v", err)
	}
	if records[0].SkillName != "Kubernetes" {
		t.Fatalf("expected highest level first, got %s", records[0].SkillName)
	}

	// An unlisted sort column falls back to the assessment date.
	if _, _, err := repo.List(ctx, ListFilter{SortBy: "id; DROP TABLE competencies"}); err != nil {
		t.Fatalf("unknown sort column must not fail: %v", err)
	}

	records, total, err = repo.List(ctx, ListFilter{Search: "distributed"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 1 || records[0].SkillName != "Go" {
		t.Fatalf("description search should match Go, got total=%d", total)
	}
}

func TestListForStatsDepartmentFilter(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	engineer := seedEmployee(t, db, "Engineering")
	analyst := seedEmployee(t, db, "Finance")
	seedCompetency(t, db, models.Competency{EmployeeID: engineer.ID, SkillName: "Go", CurrentLevel: 3, TargetLevel: 4, IsActive: true})
	seedCompetency(t, db, models.Competency{EmployeeID: engineer.ID, SkillName: "SQL", CurrentLevel: 3, TargetLevel: 4, IsActive: true})
	seedCompetency(t, db, models.Competency{EmployeeID: analyst.ID, SkillName: "Excel", CurrentLevel: 5, TargetLevel: 5, IsActive: true})

	records, err := repo.ListForStats(ctx, StatsFilter{Department: "Engineering"})
	if err != nil {
		t.Fatalf("stats by department: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 engineering competencies, got %d", len(records))
	}

	// Employee filter takes precedence over department.
	records, err = repo.ListForStats(ctx, StatsFilter{EmployeeID: analyst.ID, Department: "Engineering"})
	if err != nil {
		t.Fatalf("stats by employee: %v", err)
	}
	if len(records) != 1 || records[0].SkillName != "Excel" {
		t.Fatalf("employee filter must win, got %d rows", len(records))
	}

	records, err = repo.ListForStats(ctx, StatsFilter{})
	if err != nil {
		t.Fatalf("stats all: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected all active competencies, got %d", len(records))
	}
}
