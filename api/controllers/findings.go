package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/inspectai/inspectai-backend/api/responses"
	"github.com/inspectai/inspectai-backend/api/validators"
	"github.com/inspectai/inspectai-backend/internal/findings"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
	"github.com/inspectai/inspectai-backend/pkg/logger"
	"github.com/inspectai/inspectai-backend/pkg/types"
)

// FindingsList requires an inspectionId query parameter; filters are
// optional severity/category values.
func FindingsList(svc findings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inspectionID, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("inspectionId")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Missing required field: inspectionId"))
			return
		}

		filters, err := findings.ParseListFilters(r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListByInspection(r.Context(), userID, inspectionID, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"findings": items})
	}
}

func FindingCreate(svc findings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload findings.CreateFindingInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), userID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

func FindingGet(svc findings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), userID, pathUUID(r, "findingId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

func FindingUpdate(svc findings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload findings.UpdateFindingInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), userID, pathUUID(r, "findingId"), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

func FindingDelete(svc findings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, pathUUID(r, "findingId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.SuccessBody{Success: true})
	}
}

// FindingSimilar returns the ranked mock list, truncated by ?limit.
func FindingSimilar(svc findings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 5, 1, 50)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.Similar(r.Context(), userID, pathUUID(r, "findingId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(items) > limit {
			items = items[:limit]
		}

		responses.WriteSuccess(w, map[string]any{"similarFindings": items})
	}
}
