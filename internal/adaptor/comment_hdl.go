package adaptor

import (
	"net/http"

	"movie-api/internal/dto/request"
	"movie-api/internal/usecase"
	"movie-api/pkg/utils"

	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// GetComments handles GET /movies/comments
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.GetComments(r.Context(), pageFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get comments")
		return
	}
	utils.ResponseSuccess(w, "Comments retrieved successfully", comments)
}

// GetComment handles GET /movies/comments/{id}
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	comment, err := h.service.GetComment(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get comment")
		return
	}
	utils.ResponseSuccess(w, "Comment retrieved successfully", comment)
}

// GetReplies handles GET /movies/comments/{id}/replies
func (h *CommentHandler) GetReplies(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	replies, err := h.service.GetReplies(r.Context(), id, pageFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get replies")
		return
	}
	utils.ResponseSuccess(w, "Replies retrieved successfully", replies)
}

// GetMovieComments handles GET /movies/comments/movie/{movieID}
func (h *CommentHandler) GetMovieComments(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(w, r, "movieID")
	if !ok {
		return
	}

	comments, err := h.service.GetMovieComments(r.Context(), movieID, pageFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie comments")
		return
	}
	utils.ResponseSuccess(w, "Comments retrieved successfully", comments)
}

// GetUserComments handles GET /movies/comments/user/{userID}
func (h *CommentHandler) GetUserComments(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	comments, err := h.service.GetUserComments(r.Context(), userID, pageFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get user comments")
		return
	}
	utils.ResponseSuccess(w, "Comments retrieved successfully", comments)
}

// CreateComment handles POST /movies/comments/{id}, where id names the movie
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	movieID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.CreateComment(r.Context(), userID, movieID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create comment")
		return
	}
	utils.ResponseCreated(w, "Comment created successfully", comment)
}

// ReplyTo handles POST /movies/comments/{id}/reply
func (h *CommentHandler) ReplyTo(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	parentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reply, err := h.service.ReplyTo(r.Context(), userID, parentID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "reply to comment")
		return
	}
	utils.ResponseCreated(w, "Reply created successfully", reply)
}

// UpdateComment handles PUT /movies/comments/{id}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.CommentUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), id, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update comment")
		return
	}
	utils.ResponseSuccess(w, "Comment updated successfully", comment)
}

// DeleteComment handles DELETE /movies/comments/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(r.Context(), id, userID); err != nil {
		handleServiceError(w, h.log, err, "delete comment")
		return
	}
	utils.ResponseSuccess(w, "Comment deleted successfully", nil)
}
