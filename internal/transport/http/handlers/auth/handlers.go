package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"assessment/internal/auth"
	"assessment/internal/domain/directory"
	"assessment/internal/transport/http/api"
	"assessment/internal/transport/http/middleware"
	"assessment/internal/transport/http/shared"
)

type Handler struct {
	Directory *directory.Service
	JWTSecret string
	TokenTTL  time.Duration
}

func NewHandler(dir *directory.Service, jwtSecret string, tokenTTL time.Duration) *Handler {
	return &Handler{Directory: dir, JWTSecret: jwtSecret, TokenTTL: tokenTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("username", payload.Username, "username is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, requestID) {
		return
	}

	account, err := h.Directory.AccountByUsername(r.Context(), payload.Username)
	if errors.Is(err, directory.ErrAccountNotFound) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to load account", requestID)
		return
	}
	if account.Status != "ACTIVE" {
		api.Fail(w, http.StatusForbidden, "account_inactive", "account is not active", requestID)
		return
	}
	if err := auth.CheckPassword(account.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", requestID)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		AccountID:    account.ID,
		EmployeeCode: account.EmployeeCode,
		Username:     account.Username,
		Role:         account.Role,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to issue token", requestID)
		return
	}

	api.Success(w, map[string]any{
		"token":        token,
		"role":         account.Role,
		"employeeCode": account.EmployeeCode,
	}, requestID)
}
