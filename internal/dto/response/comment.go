package response

import (
	"time"

	"movie-api/internal/data/entity"
	"movie-api/pkg/utils"
)

type CommentResponse struct {
	ID          int64     `json:"id"`
	Comment     string    `json:"comment"`
	CommentHTML string    `json:"comment_html"`
	UserID      int64     `json:"user_id"`
	MovieID     int64     `json:"movie_id"`
	ParentID    *int64    `json:"parent_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommentThreadResponse is a comment with its author and direct reply count.
type CommentThreadResponse struct {
	CommentResponse
	Author  AuthorResponse `json:"author"`
	Replies int64          `json:"replies"`
}

func CommentToResponse(comment *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:          comment.ID,
		Comment:     comment.Comment,
		CommentHTML: utils.RenderMarkdown(comment.Comment),
		UserID:      comment.UserID,
		MovieID:     comment.MovieID,
		ParentID:    comment.ParentID,
		CreatedAt:   comment.CreatedAt,
	}
}

func CommentsToResponse(comments []*entity.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentToResponse(c))
	}
	return out
}

func ThreadToResponse(thread *entity.CommentThread) CommentThreadResponse {
	return CommentThreadResponse{
		CommentResponse: CommentToResponse(&thread.Comment),
		Author:          AuthorToResponse(&thread.Author),
		Replies:         thread.Replies,
	}
}

func ThreadsToResponse(threads []*entity.CommentThread) []CommentThreadResponse {
	out := make([]CommentThreadResponse, 0, len(threads))
	for _, t := range threads {
		out = append(out, ThreadToResponse(t))
	}
	return out
}
