package wire

import (
	"movie-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, deps routeDeps) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.GetUsers)
		r.Get("/{id}", userHandler.GetUser)
		r.Get("/name/{username}", userHandler.GetUserByUsername)

		r.Group(func(r chi.Router) {
			r.Use(deps.requireAuth)
			r.Get("/me", userHandler.GetProfile)
			r.Put("/{id}", userHandler.UpdateUser)    // self only
			r.Delete("/{id}", userHandler.DeleteUser) // self only
		})
	})
}
