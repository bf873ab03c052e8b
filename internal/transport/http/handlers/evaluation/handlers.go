package evaluationhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"assessment/internal/domain/evaluation"
	"assessment/internal/transport/http/api"
	"assessment/internal/transport/http/middleware"
	"assessment/internal/transport/http/shared"
)

type Handler struct {
	Service *evaluation.Service
}

func NewHandler(service *evaluation.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAccount).Post("/evaluations", h.handleSubmit)
	r.With(middleware.RequireAccount).Get("/evaluations", h.handleGet)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload evaluation.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	// The assessor is always the authenticated caller; the payload's
	// assessorId is advisory and must match when present.
	account, _ := middleware.GetAccount(r.Context())
	if payload.AssessorID == 0 {
		payload.AssessorID = account.EmployeeCode
	} else if payload.AssessorID != account.EmployeeCode {
		api.Fail(w, http.StatusForbidden, "assessor_mismatch", "assessorId does not match the authenticated employee", requestID)
		return
	}

	v := shared.NewValidator()
	v.Positive("employeeId", payload.EmployeeID, "employeeId is required")
	v.Positive("formId", payload.FormID, "formId is required")
	v.Positive("assessorId", payload.AssessorID, "assessorId is required")
	if v.Reject(w, requestID) {
		return
	}

	result, err := h.Service.Submit(r.Context(), payload)
	if err != nil {
		failSubmit(w, err, requestID)
		return
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	formID, err1 := strconv.ParseInt(r.URL.Query().Get("formId"), 10, 64)
	employeeID, err2 := strconv.ParseInt(r.URL.Query().Get("employeeId"), 10, 64)
	if err1 != nil || err2 != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "formId and employeeId query parameters are required", requestID)
		return
	}

	assessment, err := h.Service.Get(r.Context(), formID, employeeID)
	if err != nil {
		failSubmit(w, err, requestID)
		return
	}
	api.Success(w, assessment, requestID)
}

func failSubmit(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, evaluation.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", err.Error(), requestID)
	case errors.Is(err, evaluation.ErrAssessorNotFound):
		api.Fail(w, http.StatusNotFound, "assessor_not_found", err.Error(), requestID)
	case errors.Is(err, evaluation.ErrFormNotFound):
		api.Fail(w, http.StatusNotFound, "form_not_found", err.Error(), requestID)
	case errors.Is(err, evaluation.ErrQuestionNotFound):
		api.Fail(w, http.StatusNotFound, "question_not_found", err.Error(), requestID)
	case errors.Is(err, evaluation.ErrAssessmentNotFound):
		api.Fail(w, http.StatusNotFound, "assessment_not_found", err.Error(), requestID)
	case errors.Is(err, evaluation.ErrPermissionDenied):
		api.Fail(w, http.StatusForbidden, "permission_denied", err.Error(), requestID)
	case errors.Is(err, evaluation.ErrScoreOutOfRange):
		api.Fail(w, http.StatusBadRequest, "score_out_of_range", err.Error(), requestID)
	case errors.Is(err, evaluation.ErrEmptyBatch):
		api.Fail(w, http.StatusBadRequest, "empty_batch", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "evaluation_failed", "failed to process evaluation", requestID)
	}
}
