package statisticshandler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"assessment/internal/domain/statistics"
	"assessment/internal/transport/http/api"
	"assessment/internal/transport/http/middleware"
)

type Handler struct {
	Service *statistics.Service
}

func NewHandler(service *statistics.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAccount).Get("/statistics/overview", h.handleOverview)
	r.With(middleware.RequireAccount).Get("/statistics/top-employees", h.handleTopEmployees)
	r.With(middleware.RequireAccount).Get("/statistics/criteria-totals", h.handleCriteriaTotals)
	r.With(middleware.RequireAccount).Get("/statistics/evaluated-employees", h.handleEvaluatedEmployees)
	r.With(middleware.RequireAccount).Get("/statistics/employees/{employeeCode}/criteria", h.handleEmployeeCriteria)
	r.With(middleware.RequireAccount).Get("/statistics/history", h.handleHistory)
	r.With(middleware.RequireAccount).Get("/statistics/cycles/{cycleID}", h.handleCycleStats)
	r.With(middleware.RequireRole("MANAGER")).Get("/statistics/report", h.handleReport)
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	overview, err := h.Service.Overview(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "statistics_failed", "failed to compute overview", requestID)
		return
	}
	api.Success(w, overview, requestID)
}

func (h *Handler) handleTopEmployees(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	top, err := h.Service.TopEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "statistics_failed", "failed to rank employees", requestID)
		return
	}
	api.Success(w, top, requestID)
}

func (h *Handler) handleCriteriaTotals(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	cycleID, err := strconv.ParseInt(r.URL.Query().Get("cycleId"), 10, 64)
	if err != nil || cycleID <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "cycleId is required", requestID)
		return
	}

	totals, err := h.Service.CriteriaTotalsForCycle(r.Context(), cycleID)
	if errors.Is(err, statistics.ErrCycleNotFound) {
		api.Fail(w, http.StatusNotFound, "cycle_not_found", err.Error(), requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "statistics_failed", "failed to aggregate criteria totals", requestID)
		return
	}
	api.Success(w, totals, requestID)
}

func (h *Handler) handleEvaluatedEmployees(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employees, err := h.Service.EvaluatedEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "statistics_failed", "failed to list evaluated employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleEmployeeCriteria(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	code, err := strconv.ParseInt(chi.URLParam(r, "employeeCode"), 10, 64)
	if err != nil || code <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid employee code", requestID)
		return
	}

	totals, err := h.Service.CriteriaTotalsForEmployee(r.Context(), code)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "statistics_failed", "failed to aggregate employee criteria", requestID)
		return
	}
	api.Success(w, totals, requestID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var filter statistics.HistoryFilter
	if raw := r.URL.Query().Get("employeeId"); raw != "" {
		code, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid employeeId", requestID)
			return
		}
		filter.EmployeeCode = code
	}
	if raw := r.URL.Query().Get("cycleId"); raw != "" {
		cycleID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid cycleId", requestID)
			return
		}
		filter.CycleID = cycleID
	}

	entries, err := h.Service.History(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "statistics_failed", "failed to load history", requestID)
		return
	}
	api.Success(w, entries, requestID)
}

func (h *Handler) handleCycleStats(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	cycleID, err := strconv.ParseInt(chi.URLParam(r, "cycleID"), 10, 64)
	if err != nil || cycleID <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid cycle id", requestID)
		return
	}

	stats, err := h.Service.CycleStats(r.Context(), cycleID)
	if errors.Is(err, statistics.ErrCycleNotFound) {
		api.Fail(w, http.StatusNotFound, "cycle_not_found", err.Error(), requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "statistics_failed", "failed to compute cycle stats", requestID)
		return
	}
	api.Success(w, stats, requestID)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	report, err := h.Service.OverviewReportPDF(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render report", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="evaluation-statistics.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(report)
}
