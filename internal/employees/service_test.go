package employees

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/perfval/perfval-backend/pkg/db/models"
	pkgerrors "github.com/perfval/perfval-backend/pkg/errors"
	"github.com/perfval/perfval-backend/pkg/pagination"
)

type duplicateErr struct{}

func (duplicateErr) Error() string {
	return "duplicate key value violates unique constraint"
}

type fakeRepo struct {
	byID      map[uuid.UUID]*models.Employee
	createErr error
	created   *models.Employee
	deleted   []uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[uuid.UUID]*models.Employee{}}
}

func (f *fakeRepo) Create(_ context.Context, employee *models.Employee) error {
	if f.createErr != nil {
		return f.createErr
	}
	employee.ID = uuid.New()
	f.created = employee
	f.byID[employee.ID] = employee
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return emp, nil
}

func (f *fakeRepo) List(_ context.Context, _ ListFilter) ([]models.Employee, int64, error) {
	records := make([]models.Employee, 0, len(f.byID))
	for _, emp := range f.byID {
		records = append(records, *emp)
	}
	return records, int64(len(records)), nil
}

func (f *fakeRepo) ListByDepartment(_ context.Context, department string) ([]models.Employee, error) {
	var records []models.Employee
	for _, emp := range f.byID {
		if emp.Department == department {
			records = append(records, *emp)
		}
	}
	return records, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) (*models.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if pos, ok := updates["position"].(string); ok {
		emp.Position = pos
	}
	if email, ok := updates["email"].(string); ok {
		emp.Email = email
	}
	return emp, nil
}

func (f *fakeRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.deleted = append(f.deleted, id)
	delete(f.byID, id)
	return nil
}

func validCreateRequest() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		EmployeeID: " ENG-001 ",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "Ada@Corp.Test",
		Department: "Engineering",
		Position:   "Staff Engineer",
		HireDate:   time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateNormalizesFields(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.created.EmployeeCode != "ENG-001" {
		t.Fatalf("expected trimmed code, got %q", repo.created.EmployeeCode)
	}
	if repo.created.Email != "ada@corp.test" {
		t.Fatalf("expected lowercased email, got %q", repo.created.Email)
	}
	if !repo.created.IsActive {
		t.Fatalf("new employees must be active")
	}
	if dto.FullName != "Ada Lovelace" {
		t.Fatalf("unexpected full name %q", dto.FullName)
	}
}

func TestCreateRejectsUnknownManager(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(newFakeRepo())

	req := validCreateRequest()
	missing := uuid.New()
	req.ManagerID = &missing

	_, err := svc.Create(context.Background(), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "manager not found" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestCreateMapsUniqueViolationToConflict(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.createErr = duplicateErr{}
	svc, _ := NewService(repo)

	_, err := svc.Create(context.Background(), validCreateRequest())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestGetMapsMissingToNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(newFakeRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = svc.Get(context.Background(), uuid.Nil)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for nil id, got %v", err)
	}
}

func TestUpdateValidatesManagerAndNormalizes(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc, _ := NewService(repo)

	dto, err := svc.Create(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	email := " NEW@Corp.Test "
	updated, err := svc.Update(context.Background(), dto.ID, UpdateEmployeeRequest{Email: &email})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Email != "new@corp.test" {
		t.Fatalf("expected normalized email, got %q", updated.Email)
	}

	missing := uuid.New()
	_, err = svc.Update(context.Background(), dto.ID, UpdateEmployeeRequest{ManagerID: &missing})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for unknown manager, got %v", err)
	}
}

func TestDeleteMapsMissingToNotFound(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc, _ := NewService(repo)

	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	dto, err := svc.Create(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), dto.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != dto.ID {
		t.Fatalf("expected soft delete recorded")
	}
}

func TestListWrapsPageMetadata(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc, _ := NewService(repo)
	for i := 0; i < 3; i++ {
		req := validCreateRequest()
		req.EmployeeID = req.EmployeeID + string(rune('A'+i))
		if _, err := svc.Create(context.Background(), req); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	page, err := svc.List(context.Background(), ListFilter{
		Pagination: pagination.Params{Page: 1, Limit: 2},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || page.CurrentPage != 1 || page.TotalPages != 2 {
		t.Fatalf("unexpected page meta: %+v", page)
	}
}
