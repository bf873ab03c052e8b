package middleware

import (
	"context"
	"net/http"
	"strings"

	"assessment/internal/auth"
	"assessment/internal/transport/http/api"
)

type ctxKey string

const ctxKeyAccount ctxKey = "account"

// AccountContext is the authenticated caller attached to the request.
type AccountContext struct {
	AccountID    int64
	EmployeeCode int64
	Username     string
	Role         string
}

// Auth parses a bearer token when present. Routes decide themselves
// whether an authenticated caller is required via RequireAccount.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(header, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAccount, AccountContext{
				AccountID:    claims.AccountID,
				EmployeeCode: claims.EmployeeCode,
				Username:     claims.Username,
				Role:         claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetAccount(ctx context.Context) (AccountContext, bool) {
	account, ok := ctx.Value(ctxKeyAccount).(AccountContext)
	return account, ok
}

// RequireAccount rejects unauthenticated requests.
func RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetAccount(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects callers whose account role is not in the allowed
// set. Role checks here gate administration endpoints only; who may score
// whom is resolved per submission by the evaluation engine.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := map[string]bool{}
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := GetAccount(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}
			if !allowed[account.Role] {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient role", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
