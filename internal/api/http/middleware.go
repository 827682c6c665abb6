package http

import (
	"net/http"
	"strings"
	"time"

	"schoollib-backend/internal/logger"
	"schoollib-backend/internal/security"

	"github.com/google/uuid"
)

// RequestLogger tags every request with a correlation id and logs the
// method, path and duration on completion.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		ctx := ContextWithRequestID(r.Context(), requestID)
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		logger.DebugContext(ctx, "Request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// AuthMiddleware validates the bearer token issued by the identity
// provider and places the resulting actor on the request context.
// Handlers never see an unauthenticated request.
func AuthMiddleware(tokenManager security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token", Kind: "unauthorized"})
				return
			}

			claims, err := tokenManager.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Kind: "unauthorized"})
				return
			}

			ctx := ContextWithActor(r.Context(), claims.Actor())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireLibrarian guards the librarian/admin-only operations.
func requireLibrarian(w http.ResponseWriter, r *http.Request) bool {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Kind: "unauthorized"})
		return false
	}
	if !actor.Role.CanManageCirculation() {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "librarian or admin role required", Kind: "forbidden"})
		return false
	}
	return true
}
