package wire

import (
	"movie-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRating(r chi.Router, ratingHandler *adaptor.RatingHandler, deps routeDeps) {
	r.Route("/ratings", func(r chi.Router) {
		r.Get("/", ratingHandler.GetRatings)
		r.Get("/{id}", ratingHandler.GetRating)
		r.Get("/movie/{movieID}", ratingHandler.GetMovieRatings)
		r.Get("/user/{userID}", ratingHandler.GetUserRatings)
		r.Get("/average_rating/{movieID}", ratingHandler.GetAverageRating)

		r.Group(func(r chi.Router) {
			r.Use(deps.requireAuth)
			r.Post("/{id}", ratingHandler.RateMovie)      // id is the movie
			r.Put("/{id}", ratingHandler.UpdateRating)    // owner only
			r.Delete("/{id}", ratingHandler.DeleteRating) // owner only
		})
	})
}
