package wire

import (
	"movie-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireComment(r chi.Router, commentHandler *adaptor.CommentHandler, deps routeDeps) {
	r.Route("/comments", func(r chi.Router) {
		r.Get("/", commentHandler.GetComments)
		r.Get("/{id}", commentHandler.GetComment)
		r.Get("/{id}/replies", commentHandler.GetReplies)
		r.Get("/movie/{movieID}", commentHandler.GetMovieComments)
		r.Get("/user/{userID}", commentHandler.GetUserComments)

		r.Group(func(r chi.Router) {
			r.Use(deps.requireAuth)
			r.Post("/{id}", commentHandler.CreateComment) // id is the movie
			r.Post("/{id}/reply", commentHandler.ReplyTo)
			r.Put("/{id}", commentHandler.UpdateComment)    // author only
			r.Delete("/{id}", commentHandler.DeleteComment) // author only
		})
	})
}
