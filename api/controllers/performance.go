package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/perfval/perfval-backend/api/responses"
	"github.com/perfval/perfval-backend/api/validators"
	"github.com/perfval/perfval-backend/internal/performance"
	"github.com/perfval/perfval-backend/pkg/enums"
	pkgerrors "github.com/perfval/perfval-backend/pkg/errors"
	"github.com/perfval/perfval-backend/pkg/logger"
)

// ListEvaluations returns a page of performance evaluations.
func ListEvaluations(svc performance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := performance.ListFilter{
			Status:     enums.EvaluationStatus(validators.QueryString(r, "status")),
			Search:     validators.QueryString(r, "search"),
			Pagination: params,
		}
		for key, target := range map[string]*uuid.UUID{
			"employee":  &filter.EmployeeID,
			"evaluator": &filter.EvaluatorID,
		} {
			raw := validators.QueryString(r, key)
			if raw == "" {
				continue
			}
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+key+" id"))
				return
			}
			*target = id
		}

		page, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// GetEvaluation returns one evaluation by id.
func GetEvaluation(svc performance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		evaluation, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, evaluation)
	}
}

// CreateEvaluation records a new evaluation in draft state.
func CreateEvaluation(svc performance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload performance.CreateEvaluationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		evaluation, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, evaluation)
	}
}

// UpdateEvaluation replaces the content of an evaluation.
func UpdateEvaluation(svc performance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload performance.CreateEvaluationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		evaluation, err := svc.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, evaluation)
	}
}

// UpdateEvaluationStatus moves an evaluation through its workflow.
func UpdateEvaluationStatus(svc performance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload performance.UpdateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		evaluation, err := svc.UpdateStatus(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, evaluation)
	}
}

// DeleteEvaluation removes an evaluation permanently.
func DeleteEvaluation(svc performance.Service, logg *logger.Logger) http.HandlerFunc {
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

		responses.WriteMessage(w, "Performance evaluation deleted successfully")
	}
}

// ListEvaluationsByEmployee returns all evaluations of one employee.
func ListEvaluationsByEmployee(svc performance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID, err := pathID(r, "employeeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.ListByEmployee(r.Context(), employeeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, records)
	}
}

// ListEvaluationsByEvaluator returns all evaluations written by one
// evaluator.
func ListEvaluationsByEvaluator(svc performance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		evaluatorID, err := pathID(r, "evaluatorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.ListByEvaluator(r.Context(), evaluatorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, records)
	}
}
