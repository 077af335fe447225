package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/perfval/perfval-backend/api/responses"
	"github.com/perfval/perfval-backend/api/validators"
	"github.com/perfval/perfval-backend/internal/competencies"
	"github.com/perfval/perfval-backend/pkg/enums"
	pkgerrors "github.com/perfval/perfval-backend/pkg/errors"
	"github.com/perfval/perfval-backend/pkg/logger"
)

// ListCompetencies returns a page of skill assessments.
func ListCompetencies(svc competencies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := competencies.ListFilter{
			Category:   enums.CompetencyCategory(validators.QueryString(r, "category")),
			Status:     enums.CompetencyStatus(validators.QueryString(r, "status")),
			Search:     validators.QueryString(r, "search"),
			SortBy:     validators.QueryString(r, "sortBy"),
			SortOrder:  validators.QueryString(r, "sortOrder"),
			Pagination: params,
		}
		if raw := validators.QueryString(r, "employee"); raw != "" {
			employeeID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid employee id"))
				return
			}
			filter.EmployeeID = employeeID
		}

		page, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// GetCompetency returns one assessment by id, active or not.
func GetCompetency(svc competencies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		competency, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, competency)
	}
}

// CreateCompetency records a new assessment attributed to the caller.
func CreateCompetency(svc competencies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload competencies.CreateCompetencyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		competency, err := svc.Create(r.Context(), userID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, competency)
	}
}

// UpdateCompetency changes an existing assessment.
func UpdateCompetency(svc competencies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload competencies.UpdateCompetencyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		competency, err := svc.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, competency)
	}
}

// DeleteCompetency deactivates an assessment.
func DeleteCompetency(svc competencies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, "Competency deleted successfully")
	}
}

// ListCompetenciesByEmployee returns an employee's assessments with summary
// statistics.
func ListCompetenciesByEmployee(svc competencies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID, err := pathID(r, "employeeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListByEmployee(r.Context(), employeeID, competencies.ListFilter{
			Category: enums.CompetencyCategory(validators.QueryString(r, "category")),
			Status:   enums.CompetencyStatus(validators.QueryString(r, "status")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CompetencyStats returns the aggregate overview, optionally filtered by
// employee or department.
func CompetencyStats(svc competencies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := competencies.StatsFilter{
			Department: validators.QueryString(r, "department"),
		}
		if raw := validators.QueryString(r, "employee"); raw != "" {
			employeeID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid employee id"))
				return
			}
			filter.EmployeeID = employeeID
		}

		stats, err := svc.Stats(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}
