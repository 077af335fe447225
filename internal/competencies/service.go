package competencies

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/perfval/perfval-backend/internal/derived"
	"github.com/perfval/perfval-backend/internal/report"
	"github.com/perfval/perfval-backend/pkg/db/models"
	"github.com/perfval/perfval-backend/pkg/enums"
	pkgerrors "github.com/perfval/perfval-backend/pkg/errors"
	"github.com/perfval/perfval-backend/pkg/pagination"
)

// Service exposes business rules for skill assessments.
type Service interface {
	List(ctx context.Context, filter ListFilter) (*CompetencyPageDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CompetencyDTO, error)
	Create(ctx context.Context, assessedBy uuid.UUID, req CreateCompetencyRequest) (*CompetencyDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCompetencyRequest) (*CompetencyDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, filter ListFilter) (*EmployeeCompetenciesDTO, error)
	Stats(ctx context.Context, filter StatsFilter) (*StatsDTO, error)
}

type repository interface {
	Create(ctx context.Context, competency *models.Competency) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Competency, error)
	List(ctx context.Context, filter ListFilter) ([]models.Competency, int64, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, filter ListFilter) ([]models.Competency, error)
	ListForStats(ctx context.Context, filter StatsFilter) ([]models.Competency, error)
	Save(ctx context.Context, competency *models.Competency) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type employeeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
}

type service struct {
	repo      repository
	employees employeeFinder
	now       func() time.Time
}

// ServiceParams collects the competencies service dependencies.
type ServiceParams struct {
	Repo      repository
	Employees employeeFinder
	Now       func() time.Time
}

// NewService builds a competencies service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("competency repository is required")
	}
	if params.Employees == nil {
		return nil, fmt.Errorf("employee finder is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, employees: params.Employees, now: now}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (*CompetencyPageDTO, error) {
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid competency category")
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid competency status")
	}
	filter.Pagination = filter.Pagination.Normalize()

	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list competencies")
	}
	return &CompetencyPageDTO{
		Competencies: fromModels(records),
		Pagination:   pagination.NewMeta(filter.Pagination, total),
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CompetencyDTO, error) {
	competency, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(competency), nil
}

func (s *service) Create(ctx context.Context, assessedBy uuid.UUID, req CreateCompetencyRequest) (*CompetencyDTO, error) {
	if assessedBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "assessor is required")
	}
	category, err := enums.ParseCompetencyCategory(req.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid competency category")
	}
	if _, err := s.employees.FindByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load employee")
	}

	assessmentDate := s.now()
	if req.AssessmentDate != nil {
		assessmentDate = *req.AssessmentDate
	}
	reviewDate := derived.NextReviewDate(assessmentDate)
	if req.NextReviewDate != nil {
		reviewDate = *req.NextReviewDate
	}

	status := enums.CompetencyStatusDeveloping
	if req.Status != nil {
		parsed, err := enums.ParseCompetencyStatus(*req.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid competency status")
		}
		status = parsed
	}

	competency := &models.Competency{
		EmployeeID:      req.EmployeeID,
		AssessedBy:      assessedBy,
		SkillName:       strings.TrimSpace(req.SkillName),
		Category:        category,
		CurrentLevel:    req.CurrentLevel,
		TargetLevel:     req.TargetLevel,
		AssessmentDate:  assessmentDate,
		NextReviewDate:  reviewDate,
		Description:     req.Description,
		Evidence:        req.Evidence,
		DevelopmentPlan: req.DevelopmentPlan,
		Status:          status,
		IsActive:        true,
	}

	if err := s.repo.Create(ctx, competency); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create competency")
	}
	return s.Get(ctx, competency.ID)
}

// Update applies the provided fields. The review date is recomputed only
// when the assessment date changes without an explicit review date.
func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateCompetencyRequest) (*CompetencyDTO, error) {
	competency, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SkillName != nil {
		competency.SkillName = strings.TrimSpace(*req.SkillName)
	}
	if req.Category != nil {
		category, err := enums.ParseCompetencyCategory(*req.Category)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid competency category")
		}
		competency.Category = category
	}
	if req.CurrentLevel != nil {
		competency.CurrentLevel = *req.CurrentLevel
	}
	if req.TargetLevel != nil {
		competency.TargetLevel = *req.TargetLevel
	}
	if competency.TargetLevel < competency.CurrentLevel {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target level must not be below current level")
	}
	if req.AssessmentDate != nil {
		competency.AssessmentDate = *req.AssessmentDate
		if req.NextReviewDate == nil {
			competency.NextReviewDate = derived.NextReviewDate(*req.AssessmentDate)
		}
	}
	if req.NextReviewDate != nil {
		competency.NextReviewDate = *req.NextReviewDate
	}
	if req.Description != nil {
		competency.Description = req.Description
	}
	if req.Evidence != nil {
		competency.Evidence = req.Evidence
	}
	if req.DevelopmentPlan != nil {
		competency.DevelopmentPlan = req.DevelopmentPlan
	}
	if req.Status != nil {
		status, err := enums.ParseCompetencyStatus(*req.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid competency status")
		}
		competency.Status = status
	}

	if err := s.repo.Save(ctx, competency); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update competency")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "competency not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete competency")
	}
	return nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID uuid.UUID, filter ListFilter) (*EmployeeCompetenciesDTO, error) {
	if employeeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee id is required")
	}
	records, err := s.repo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list employee competencies")
	}

	meanCurrent := report.Mean(records, func(c models.Competency) float64 { return float64(c.CurrentLevel) })
	meanTarget := report.Mean(records, func(c models.Competency) float64 { return float64(c.TargetLevel) })

	return &EmployeeCompetenciesDTO{
		Competencies: fromModels(records),
		Summary: SummaryDTO{
			TotalSkills:         report.Count(records),
			AverageCurrentLevel: round1(meanCurrent),
			AverageTargetLevel:  round1(meanTarget),
			SkillsNeedingImprovement: report.CountWhere(records, func(c models.Competency) bool {
				return c.CurrentLevel < c.TargetLevel
			}),
			OverallProgress: overallProgress(meanCurrent, meanTarget),
		},
	}, nil
}

func (s *service) Stats(ctx context.Context, filter StatsFilter) (*StatsDTO, error) {
	records, err := s.repo.ListForStats(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load competency stats")
	}

	stats := &StatsDTO{
		CategoryBreakdown: map[string]int{},
		StatusBreakdown:   map[string]int{},
	}
	if len(records) == 0 {
		return stats, nil
	}

	meanCurrent := report.Mean(records, func(c models.Competency) float64 { return float64(c.CurrentLevel) })
	meanTarget := report.Mean(records, func(c models.Competency) float64 { return float64(c.TargetLevel) })

	stats.TotalCompetencies = report.Count(records)
	stats.AverageCurrentLevel = round1(meanCurrent)
	stats.AverageTargetLevel = round1(meanTarget)
	stats.SkillsNeedingImprovement = report.CountWhere(records, func(c models.Competency) bool {
		return c.CurrentLevel < c.TargetLevel
	})
	stats.OverallProgress = overallProgress(meanCurrent, meanTarget)
	for category, n := range report.Frequencies(records, func(c models.Competency) string { return c.Category.String() }) {
		stats.CategoryBreakdown[category] = n
	}
	for status, n := range report.Frequencies(records, func(c models.Competency) string { return c.Status.String() }) {
		stats.StatusBreakdown[status] = n
	}
	return stats, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Competency, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "competency id is required")
	}
	competency, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "competency not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load competency")
	}
	return competency, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func overallProgress(meanCurrent, meanTarget float64) int {
	if meanTarget <= 0 {
		return 0
	}
	return int(math.Round(meanCurrent / meanTarget * 100))
}
