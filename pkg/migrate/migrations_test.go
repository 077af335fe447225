package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/perfval/perfval-backend/pkg/migrate"
)

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()

	path, err := migrate.CreateSQLMigration(dir, "Add Review Cadence!")
	if err != nil {
		t.Fatalf("CreateSQLMigration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_review_cadence.sql") {
		t.Fatalf("unexpected filename %q", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("generated migration fails validation: %v", err)
	}

	if _, err := migrate.CreateSQLMigration(dir, "!!!"); err == nil {
		t.Fatalf("expected error for name with no usable characters")
	}
}

func TestValidateDirRejectsReversedSections(t *testing.T) {
	dir := t.TempDir()
	bad := "-- +goose Down\nDROP TABLE x;\n-- +goose Up\nCREATE TABLE x (id int);\n"
	if err := os.WriteFile(filepath.Join(dir, "20250301000001_bad.sql"), []byte(bad), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	err := migrate.ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "Down section before Up") {
		t.Fatalf("expected section-order error, got %v", err)
	}
}

func TestInitMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no init migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE employees",
		"CREATE TABLE users",
		"CREATE TABLE goals",
		"CREATE TABLE performance_evaluations",
		"CREATE TABLE competencies",
		"CHECK (progress BETWEEN 0 AND 100)",
		"CHECK (overall_rating BETWEEN 1 AND 5)",
		"CHECK (period_start < period_end)",
		"CREATE UNIQUE INDEX idx_employees_employee_code",
		"CREATE UNIQUE INDEX idx_users_email",
		"DROP TABLE IF EXISTS competencies",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
