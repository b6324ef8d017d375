package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Rajeswari195/kayak/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// Optional extracts a bearer token if present and attaches its Principal to
// the request context, but lets anonymous requests through. The review
// listing and clickstream tracking routes use this; search routes carry no
// auth middleware at all.
func Optional(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := svc.Verify(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := withPrincipal(r.Context(), &Principal{UserID: claims.UserID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Required rejects the request with 401 unless it carries a valid bearer
// token.
func Required(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, apperr.Unauthorized(apperr.CodeTokenMissing, "missing bearer token"))
				return
			}

			claims, err := svc.Verify(token)
			if err != nil {
				writeAuthError(w, tokenError(err))
				return
			}

			ctx := withPrincipal(r.Context(), &Principal{UserID: claims.UserID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin requests with 403. It must run after
// Required.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := FromContext(r.Context())
		if p == nil {
			writeAuthError(w, apperr.Unauthorized(apperr.CodeTokenMissing, "missing bearer token"))
			return
		}
		if !p.IsAdmin() {
			writeAuthError(w, apperr.ForbiddenErr("admin role required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// tokenError maps a Verify failure to token_expired or token_invalid per
// spec.md §4.1.
func tokenError(err error) *apperr.Error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperr.Unauthorized(apperr.CodeTokenExpired, "token has expired")
	}
	return apperr.Unauthorized(apperr.CodeTokenInvalid, "invalid token")
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeAuthError(w http.ResponseWriter, err *apperr.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]any{
		"success":   false,
		"errorCode": err.Code,
		"message":   err.Message,
	})
}
