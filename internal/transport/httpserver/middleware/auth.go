package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	identitydomain "swipe-go/internal/domain/identity"
	"swipe-go/pkg/logger"
)

type TokenVerifier interface {
	Verify(token string) (int64, error)
}

type PrincipalResolver interface {
	Resolve(ctx context.Context, userID int64) (identitydomain.Principal, error)
}

type TokenAuth struct {
	tokens   TokenVerifier
	resolver PrincipalResolver
	log      logger.Logger
}

type contextKey int

const principalKey contextKey = iota

func NewTokenAuth(tokens TokenVerifier, resolver PrincipalResolver, log logger.Logger) *TokenAuth {
	return &TokenAuth{tokens: tokens, resolver: resolver, log: log}
}

// Middleware rejects requests without a valid token for an active user.
func (a *TokenAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := authToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w, "Authentication credentials were not provided.")
			return
		}

		userID, err := a.tokens.Verify(token)
		if err != nil {
			unauthorized(w, "Invalid token.")
			return
		}

		principal, err := a.resolver.Resolve(r.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, identitydomain.ErrUserInactive):
				a.log.BusinessError("auth: inactive user", err, "user_id", userID)
				unauthorized(w, "User inactive or deleted.")
			case errors.Is(err, identitydomain.ErrUserNotFound):
				a.log.BusinessError("auth: unknown user", err, "user_id", userID)
				unauthorized(w, "Invalid token.")
			default:
				a.log.InternalError("auth: resolve principal failed", err, "user_id", userID)
				writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// authToken accepts both "Token <t>" and "Bearer <t>".
func authToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Token") && !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Token")
	writeError(w, http.StatusUnauthorized, "not_authenticated", message)
}

func WithPrincipal(ctx context.Context, principal identitydomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

func PrincipalFromContext(ctx context.Context) (identitydomain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(identitydomain.Principal)
	if !ok || !principal.IsAuthenticated() {
		return identitydomain.Anonymous(), false
	}
	return principal, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
