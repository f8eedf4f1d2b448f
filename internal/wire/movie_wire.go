package wire

import (
	"movie-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireMovie mounts movie routes relative to /movies.
func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, deps routeDeps) {
	r.Get("/", movieHandler.GetMovies)
	r.Get("/{id}", movieHandler.GetMovieByID)
	r.Get("/genre/{genre}", movieHandler.GetMoviesByGenre)
	r.Get("/title/{title}", movieHandler.GetMoviesByTitle)
	r.Get("/user/{userID}", movieHandler.GetUserMovies)

	r.Group(func(r chi.Router) {
		r.Use(deps.requireAuth)
		r.Post("/", movieHandler.CreateMovie)
		r.Put("/{id}", movieHandler.UpdateMovie)    // owner only
		r.Delete("/{id}", movieHandler.DeleteMovie) // owner only
	})
}
