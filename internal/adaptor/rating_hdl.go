package adaptor

import (
	"net/http"

	"movie-api/internal/dto/request"
	"movie-api/internal/usecase"
	"movie-api/pkg/utils"

	"go.uber.org/zap"
)

type RatingHandler struct {
	service usecase.RatingService
	log     *zap.Logger
}

func NewRatingHandler(service usecase.RatingService, log *zap.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log.With(zap.String("handler", "rating")),
	}
}

// GetRatings handles GET /movies/ratings
func (h *RatingHandler) GetRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.GetRatings(r.Context(), pageFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get ratings")
		return
	}
	utils.ResponseSuccess(w, "Ratings retrieved successfully", ratings)
}

// GetRating handles GET /movies/ratings/{id}
func (h *RatingHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rating, err := h.service.GetRating(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get rating")
		return
	}
	utils.ResponseSuccess(w, "Rating retrieved successfully", rating)
}

// GetMovieRatings handles GET /movies/ratings/movie/{movieID}
func (h *RatingHandler) GetMovieRatings(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(w, r, "movieID")
	if !ok {
		return
	}

	ratings, err := h.service.GetMovieRatings(r.Context(), movieID, pageFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie ratings")
		return
	}
	utils.ResponseSuccess(w, "Ratings retrieved successfully", ratings)
}

// GetUserRatings handles GET /movies/ratings/user/{userID}
func (h *RatingHandler) GetUserRatings(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	ratings, err := h.service.GetUserRatings(r.Context(), userID, pageFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get user ratings")
		return
	}
	utils.ResponseSuccess(w, "Ratings retrieved successfully", ratings)
}

// GetAverageRating handles GET /movies/ratings/average_rating/{movieID}
func (h *RatingHandler) GetAverageRating(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(w, r, "movieID")
	if !ok {
		return
	}

	avg, err := h.service.GetAverageRating(r.Context(), movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "get average rating")
		return
	}
	utils.ResponseSuccess(w, "Successful", avg)
}

// RateMovie handles POST /movies/ratings/{id}, where id names the movie
func (h *RatingHandler) RateMovie(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	movieID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.RatingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rating, err := h.service.RateMovie(r.Context(), userID, movieID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "rate movie")
		return
	}
	utils.ResponseCreated(w, "Movie rated successfully", rating)
}

// UpdateRating handles PUT /movies/ratings/{id}
func (h *RatingHandler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.RatingUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rating, err := h.service.UpdateRating(r.Context(), id, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update rating")
		return
	}
	utils.ResponseSuccess(w, "Rating updated successfully", rating)
}

// DeleteRating handles DELETE /movies/ratings/{id}
func (h *RatingHandler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteRating(r.Context(), id, userID); err != nil {
		handleServiceError(w, h.log, err, "delete rating")
		return
	}
	utils.ResponseSuccess(w, "Rating deleted successfully", nil)
}
