package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"movie-api/internal/usecase"
	"movie-api/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to a user id and session token.
type Authenticator interface {
	Authenticate(ctx context.Context, bearer string) (int64, string, error)
}

// AuthSession requires a valid "Authorization: Bearer <jwt>" header backed by a live session.
func AuthSession(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseAuthenticationFailed(w, "Missing authorization token")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseAuthenticationFailed(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			userID, session, err := auth.Authenticate(r.Context(), strings.TrimSpace(token))
			if err != nil {
				if errors.Is(err, usecase.ErrAuthenticationFailed) {
					logger.Warn("Rejected bearer token", zap.Error(err), zap.String("path", r.URL.Path))
					utils.ResponseAuthenticationFailed(w, "Could not validate credentials")
					return
				}
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID)
			ctx = utils.SetTokenContext(ctx, session)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
