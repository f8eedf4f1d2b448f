package adaptor

import (
	"net/http"

	"movie-api/internal/dto/request"
	"movie-api/internal/usecase"
	"movie-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetMovies(r.Context(), pageFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}
	utils.ResponseSuccess(w, "Movies retrieved successfully", movies)
}

// GetMovieByID handles GET /movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	movie, err := h.service.GetMovie(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie by ID")
		return
	}
	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// GetMoviesByGenre handles GET /movies/genre/{genre}
func (h *MovieHandler) GetMoviesByGenre(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetMoviesByGenre(r.Context(), chi.URLParam(r, "genre"), pageFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get movies by genre")
		return
	}
	utils.ResponseSuccess(w, "Movies retrieved successfully", movies)
}

// GetMoviesByTitle handles GET /movies/title/{title}
func (h *MovieHandler) GetMoviesByTitle(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetMoviesByTitle(r.Context(), chi.URLParam(r, "title"), pageFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get movies by title")
		return
	}
	utils.ResponseSuccess(w, "Movies retrieved successfully", movies)
}

// GetUserMovies handles GET /movies/user/{userID}
func (h *MovieHandler) GetUserMovies(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	movies, err := h.service.GetUserMovies(r.Context(), userID, pageFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get user movies")
		return
	}
	utils.ResponseSuccess(w, "Movies retrieved successfully", movies)
}

// CreateMovie handles POST /movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.MovieRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}
	utils.ResponseCreated(w, "Movie created successfully", movie)
}

// UpdateMovie handles PUT /movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.MovieUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), id, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update movie")
		return
	}
	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteMovie(r.Context(), id, userID); err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}
	utils.ResponseSuccess(w, "Movie deleted successfully", nil)
}
