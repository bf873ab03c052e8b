package directoryhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"assessment/internal/domain/directory"
	"assessment/internal/transport/http/api"
	"assessment/internal/transport/http/middleware"
	"assessment/internal/transport/http/shared"
)

type Handler struct {
	Service *directory.Service
}

func NewHandler(service *directory.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAccount).Get("/departments", h.handleListDepartments)
	r.With(middleware.RequireRole("MANAGER")).Post("/departments", h.handleCreateDepartment)
	r.With(middleware.RequireRole("MANAGER")).Delete("/departments/{departmentID}", h.handleDeleteDepartment)
	r.With(middleware.RequireAccount).Get("/employees", h.handleListEmployees)
	r.With(middleware.RequireAccount).Get("/employees/{employeeCode}", h.handleGetEmployee)
	r.With(middleware.RequireRole("MANAGER")).Post("/employees", h.handleOnboard)
	r.With(middleware.RequireRole("MANAGER")).Delete("/employees/{employeeCode}", h.handleDeleteEmployee)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	departments, err := h.Service.ListDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_list_failed", "failed to list departments", requestID)
		return
	}
	api.Success(w, departments, requestID)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		Name        string `json:"name"`
		ManagerCode string `json:"managerCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "department name is required")
	if v.Reject(w, requestID) {
		return
	}

	id, err := h.Service.CreateDepartment(r.Context(), payload.Name, payload.ManagerCode)
	if errors.Is(err, directory.ErrDepartmentNameExists) {
		api.Fail(w, http.StatusConflict, "department_name_exists", err.Error(), requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_create_failed", "failed to create department", requestID)
		return
	}
	api.Created(w, map[string]int64{"id": id}, requestID)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "departmentID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid department id", requestID)
		return
	}

	switch err := h.Service.DeleteDepartment(r.Context(), id); {
	case errors.Is(err, directory.ErrDepartmentNotFound):
		api.Fail(w, http.StatusNotFound, "department_not_found", err.Error(), requestID)
	case errors.Is(err, directory.ErrDepartmentHasStaff):
		api.Fail(w, http.StatusConflict, "department_has_employees", err.Error(), requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "department_delete_failed", "failed to delete department", requestID)
	default:
		api.Success(w, nil, requestID)
	}
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var departmentID int64
	if raw := r.URL.Query().Get("departmentId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid department id", requestID)
			return
		}
		departmentID = parsed
	}

	employees, err := h.Service.ListEmployees(r.Context(), departmentID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	code, err := strconv.ParseInt(chi.URLParam(r, "employeeCode"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid employee code", requestID)
		return
	}

	employee, err := h.Service.EmployeeByCode(r.Context(), code)
	if errors.Is(err, directory.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", err.Error(), requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", requestID)
		return
	}
	api.Success(w, employee, requestID)
}

func (h *Handler) handleOnboard(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		FullName     string `json:"fullName"`
		Position     string `json:"position"`
		Division     string `json:"division"`
		StartDate    string `json:"startDate"`
		DepartmentID int64  `json:"departmentId"`
		Username     string `json:"username"`
		Password     string `json:"password"`
		Role         string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("fullName", payload.FullName, "full name is required")
	v.Required("username", payload.Username, "username is required")
	v.Required("password", payload.Password, "password is required")
	v.Required("role", payload.Role, "role is required")
	v.Positive("departmentId", payload.DepartmentID, "departmentId is required")
	var startDate *time.Time
	if payload.StartDate != "" {
		if parsed, ok := v.Date("startDate", payload.StartDate); ok {
			startDate = &parsed
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	code, err := h.Service.Onboard(r.Context(), directory.NewEmployee{
		FullName:     payload.FullName,
		Position:     payload.Position,
		Division:     payload.Division,
		StartDate:    startDate,
		DepartmentID: payload.DepartmentID,
		Username:     payload.Username,
		Password:     payload.Password,
		Role:         payload.Role,
	})
	switch {
	case errors.Is(err, directory.ErrInvalidRole):
		api.Fail(w, http.StatusBadRequest, "invalid_role", err.Error(), requestID)
	case errors.Is(err, directory.ErrUsernameExists):
		api.Fail(w, http.StatusConflict, "username_exists", err.Error(), requestID)
	case errors.Is(err, directory.ErrDepartmentNotFound):
		api.Fail(w, http.StatusNotFound, "department_not_found", err.Error(), requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to onboard employee", requestID)
	default:
		api.Created(w, map[string]int64{"code": code}, requestID)
	}
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	code, err := strconv.ParseInt(chi.URLParam(r, "employeeCode"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid employee code", requestID)
		return
	}

	switch err := h.Service.DeleteEmployee(r.Context(), code); {
	case errors.Is(err, directory.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", err.Error(), requestID)
	case errors.Is(err, directory.ErrEmployeeHasAssessment):
		api.Fail(w, http.StatusConflict, "employee_has_assessments", err.Error(), requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", requestID)
	default:
		api.Success(w, nil, requestID)
	}
}
