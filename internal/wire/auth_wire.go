package wire

import (
	"movie-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, deps routeDeps) {
	r.With(deps.rateLimit).Post("/signup", authHandler.Signup)
	r.With(deps.rateLimit).Post("/login", authHandler.Login)

	r.With(deps.requireAuth).Post("/logout", authHandler.Logout)
}
