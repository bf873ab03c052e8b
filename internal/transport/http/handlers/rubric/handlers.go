package rubrichandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"assessment/internal/domain/rubric"
	"assessment/internal/transport/http/api"
	"assessment/internal/transport/http/middleware"
	"assessment/internal/transport/http/shared"
)

type Handler struct {
	Service *rubric.Service
}

func NewHandler(service *rubric.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAccount).Get("/criteria", h.handleListCriteria)
	r.With(middleware.RequireRole("MANAGER")).Post("/criteria", h.handleCreateCriteria)
	r.With(middleware.RequireRole("MANAGER")).Delete("/criteria/{criteriaID}", h.handleDeleteCriteria)
	r.With(middleware.RequireRole("MANAGER")).Post("/questions", h.handleCreateQuestion)
	r.With(middleware.RequireRole("MANAGER")).Delete("/questions/{questionID}", h.handleDeleteQuestion)
	r.With(middleware.RequireAccount).Get("/cycles", h.handleListCycles)
	r.With(middleware.RequireRole("MANAGER")).Post("/cycles", h.handleCreateCycle)
	r.With(middleware.RequireRole("MANAGER")).Put("/cycles/{cycleID}/status", h.handleUpdateCycleStatus)
	r.With(middleware.RequireAccount).Get("/forms", h.handleListForms)
	r.With(middleware.RequireAccount).Get("/forms/{formID}", h.handleGetForm)
	r.With(middleware.RequireRole("MANAGER")).Post("/forms", h.handleCreateForm)
	r.With(middleware.RequireRole("MANAGER")).Delete("/forms/{formID}", h.handleDeleteForm)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) handleListCriteria(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	criteria, err := h.Service.ListCriteria(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "criteria_list_failed", "failed to list criteria", requestID)
		return
	}
	api.Success(w, criteria, requestID)
}

func (h *Handler) handleCreateCriteria(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "criteria name is required")
	if v.Reject(w, requestID) {
		return
	}

	id, err := h.Service.CreateCriteria(r.Context(), payload.Name)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "criteria_create_failed", "failed to create criteria", requestID)
		return
	}
	api.Created(w, map[string]int64{"id": id}, requestID)
}

func (h *Handler) handleDeleteCriteria(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "criteriaID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid criteria id", requestID)
		return
	}

	switch err := h.Service.DeleteCriteria(r.Context(), id); {
	case errors.Is(err, rubric.ErrCriteriaNotFound):
		api.Fail(w, http.StatusNotFound, "criteria_not_found", err.Error(), requestID)
	case errors.Is(err, rubric.ErrCriteriaInUse):
		api.Fail(w, http.StatusConflict, "criteria_in_use", err.Error(), requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "criteria_delete_failed", "failed to delete criteria", requestID)
	default:
		api.Success(w, nil, requestID)
	}
}

func (h *Handler) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		Name       string `json:"name"`
		MaxScore   int64  `json:"maxScore"`
		CriteriaID int64  `json:"criteriaId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "question name is required")
	v.Positive("maxScore", payload.MaxScore, "maxScore must be positive")
	v.Positive("criteriaId", payload.CriteriaID, "criteriaId is required")
	if v.Reject(w, requestID) {
		return
	}

	id, err := h.Service.CreateQuestion(r.Context(), payload.Name, payload.MaxScore, payload.CriteriaID)
	switch {
	case errors.Is(err, rubric.ErrInvalidMaxScore):
		api.Fail(w, http.StatusBadRequest, "invalid_max_score", err.Error(), requestID)
	case errors.Is(err, rubric.ErrCriteriaNotFound):
		api.Fail(w, http.StatusNotFound, "criteria_not_found", err.Error(), requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "question_create_failed", "failed to create question", requestID)
	default:
		api.Created(w, map[string]int64{"id": id}, requestID)
	}
}

func (h *Handler) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "questionID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid question id", requestID)
		return
	}

	switch err := h.Service.DeleteQuestion(r.Context(), id); {
	case errors.Is(err, rubric.ErrQuestionNotFound):
		api.Fail(w, http.StatusNotFound, "question_not_found", err.Error(), requestID)
	case errors.Is(err, rubric.ErrQuestionAnswered):
		api.Fail(w, http.StatusConflict, "question_has_answers", err.Error(), requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "question_delete_failed", "failed to delete question", requestID)
	default:
		api.Success(w, nil, requestID)
	}
}

func (h *Handler) handleListCycles(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	cycles, err := h.Service.ListCycles(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_list_failed", "failed to list cycles", requestID)
		return
	}
	api.Success(w, cycles, requestID)
}

func (h *Handler) handleCreateCycle(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		DepartmentID int64  `json:"departmentId"`
		StartDate    string `json:"startDate"`
		EndDate      string `json:"endDate"`
		Status       string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("startDate", payload.StartDate, "startDate is required")
	v.Required("endDate", payload.EndDate, "endDate is required")
	startDate, startOK := v.Date("startDate", payload.StartDate)
	endDate, endOK := v.Date("endDate", payload.EndDate)
	if v.Reject(w, requestID) || !startOK || !endOK {
		return
	}

	id, err := h.Service.CreateCycle(r.Context(), rubric.Cycle{
		DepartmentID: payload.DepartmentID,
		StartDate:    startDate,
		EndDate:      endDate,
		Status:       payload.Status,
	})
	switch {
	case errors.Is(err, rubric.ErrInvalidCycleDates):
		api.Fail(w, http.StatusBadRequest, "invalid_cycle_dates", err.Error(), requestID)
	case errors.Is(err, rubric.ErrInvalidCycleStatus):
		api.Fail(w, http.StatusBadRequest, "invalid_cycle_status", err.Error(), requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "cycle_create_failed", "failed to create cycle", requestID)
	default:
		api.Created(w, map[string]int64{"id": id}, requestID)
	}
}

func (h *Handler) handleUpdateCycleStatus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "cycleID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid cycle id", requestID)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	switch err := h.Service.UpdateCycleStatus(r.Context(), id, payload.Status); {
	case errors.Is(err, rubric.ErrInvalidCycleStatus):
		api.Fail(w, http.StatusBadRequest, "invalid_cycle_status", err.Error(), requestID)
	case errors.Is(err, rubric.ErrCycleNotFound):
		api.Fail(w, http.StatusNotFound, "cycle_not_found", err.Error(), requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "cycle_update_failed", "failed to update cycle status", requestID)
	default:
		api.Success(w, nil, requestID)
	}
}

func (h *Handler) handleListForms(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	forms, err := h.Service.ListForms(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "form_list_failed", "failed to list forms", requestID)
		return
	}
	api.Success(w, forms, requestID)
}

func (h *Handler) handleGetForm(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "formID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid form id", requestID)
		return
	}

	form, err := h.Service.FormByID(r.Context(), id)
	if errors.Is(err, rubric.ErrFormNotFound) {
		api.Fail(w, http.StatusNotFound, "form_not_found", err.Error(), requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "form_get_failed", "failed to load form", requestID)
		return
	}
	api.Success(w, form, requestID)
}

func (h *Handler) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		Name        string  `json:"name"`
		CycleID     int64   `json:"cycleId"`
		CriteriaIDs []int64 `json:"criteriaIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "form name is required")
	v.Positive("cycleId", payload.CycleID, "cycleId is required")
	if len(payload.CriteriaIDs) == 0 {
		v.Add("criteriaIds", "at least one criteria is required")
	}
	if v.Reject(w, requestID) {
		return
	}

	id, err := h.Service.CreateForm(r.Context(), payload.Name, payload.CycleID, payload.CriteriaIDs)
	switch {
	case errors.Is(err, rubric.ErrFormWithoutCrit):
		api.Fail(w, http.StatusBadRequest, "form_without_criteria", err.Error(), requestID)
	case errors.Is(err, rubric.ErrCycleNotFound):
		api.Fail(w, http.StatusNotFound, "cycle_not_found", err.Error(), requestID)
	case errors.Is(err, rubric.ErrCriteriaNotFound):
		api.Fail(w, http.StatusNotFound, "criteria_not_found", err.Error(), requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "form_create_failed", "failed to create form", requestID)
	default:
		api.Created(w, map[string]int64{"id": id}, requestID)
	}
}

func (h *Handler) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := pathID(r, "formID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid form id", requestID)
		return
	}

	switch err := h.Service.DeleteForm(r.Context(), id); {
	case errors.Is(err, rubric.ErrFormNotFound):
		api.Fail(w, http.StatusNotFound, "form_not_found", err.Error(), requestID)
	case errors.Is(err, rubric.ErrFormHasAssessments):
		api.Fail(w, http.StatusConflict, "form_has_assessments", err.Error(), requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "form_delete_failed", "failed to delete form", requestID)
	default:
		api.Success(w, nil, requestID)
	}
}
