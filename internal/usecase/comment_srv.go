package usecase

import (
	"context"
	"fmt"

	"movie-api/internal/data/entity"
	"movie-api/internal/data/repository"
	"movie-api/internal/dto/request"
	"movie-api/internal/dto/response"

	"go.uber.org/zap"
)

type CommentService interface {
	GetComments(ctx context.Context, page request.PageRequest) (*response.PageResponse[response.CommentThreadResponse], error)
	GetComment(ctx context.Context, id int64) (*response.CommentThreadResponse, error)
	GetMovieComments(ctx context.Context, movieID int64, page request.PageRequest) (*response.PageResponse[response.CommentThreadResponse], error)
	GetReplies(ctx context.Context, parentID int64, page request.PageRequest) (*response.PageResponse[response.CommentResponse], error)
	GetUserComments(ctx context.Context, userID int64, page request.PageRequest) (*response.PageResponse[response.CommentResponse], error)

	CreateComment(ctx context.Context, userID, movieID int64, req *request.CommentRequest) (*response.CommentResponse, error)
	ReplyTo(ctx context.Context, userID, parentID int64, req *request.CommentRequest) (*response.CommentResponse, error)
	UpdateComment(ctx context.Context, id, userID int64, req *request.CommentUpdateRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, id, userID int64) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) GetComments(ctx context.Context, page request.PageRequest) (*response.PageResponse[response.CommentThreadResponse], error) {
	threads, err := s.repo.Comment.FindThreads(ctx, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return response.NewPageResponse(response.ThreadsToResponse(threads), page.Skip(), page.Take()), nil
}

func (s *commentService) GetComment(ctx context.Context, id int64) (*response.CommentThreadResponse, error) {
	thread, err := s.repo.Comment.FindThreadByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find comment %d: %w", id, err)
	}
	if thread == nil {
		return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	resp := response.ThreadToResponse(thread)
	return &resp, nil
}

func (s *commentService) GetMovieComments(ctx context.Context, movieID int64, page request.PageRequest) (*response.PageResponse[response.CommentThreadResponse], error) {
	if _, err := findMovie(ctx, s.repo.Movie, movieID); err != nil {
		return nil, err
	}

	threads, err := s.repo.Comment.FindThreadsByMovieID(ctx, movieID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list movie comments: %w", err)
	}
	return response.NewPageResponse(response.ThreadsToResponse(threads), page.Skip(), page.Take()), nil
}

func (s *commentService) GetReplies(ctx context.Context, parentID int64, page request.PageRequest) (*response.PageResponse[response.CommentResponse], error) {
	if _, err := s.findComment(ctx, parentID); err != nil {
		return nil, err
	}

	replies, err := s.repo.Comment.FindReplies(ctx, parentID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	return response.NewPageResponse(response.CommentsToResponse(replies), page.Skip(), page.Take()), nil
}

func (s *commentService) GetUserComments(ctx context.Context, userID int64, page request.PageRequest) (*response.PageResponse[response.CommentResponse], error) {
	comments, err := s.repo.Comment.FindByUserID(ctx, userID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list user comments: %w", err)
	}
	return response.NewPageResponse(response.CommentsToResponse(comments), page.Skip(), page.Take()), nil
}

func (s *commentService) CreateComment(ctx context.Context, userID, movieID int64, req *request.CommentRequest) (*response.CommentResponse, error) {
	if err := validate(s.log, req); err != nil {
		return nil, err
	}

	if _, err := findMovie(ctx, s.repo.Movie, movieID); err != nil {
		return nil, err
	}

	comment, err := s.repo.Comment.Create(ctx, &entity.Comment{
		Comment: req.Comment,
		UserID:  userID,
		MovieID: movieID,
	})
	if err != nil {
		return nil, storeError(err, "create comment")
	}

	s.log.Info("Comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("movie_id", movieID),
		zap.Int64("user_id", userID))

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) ReplyTo(ctx context.Context, userID, parentID int64, req *request.CommentRequest) (*response.CommentResponse, error) {
	if err := validate(s.log, req); err != nil {
		return nil, err
	}

	parent, err := s.findComment(ctx, parentID)
	if err != nil {
		s.log.Warn("Reply to missing comment", zap.Int64("parent_id", parentID))
		return nil, err
	}

	reply, err := s.repo.Comment.Create(ctx, &entity.Comment{
		Comment:  req.Comment,
		UserID:   userID,
		MovieID:  parent.MovieID,
		ParentID: &parent.ID,
	})
	if err != nil {
		return nil, storeError(err, "create reply")
	}

	s.log.Info("Reply created",
		zap.Int64("comment_id", reply.ID),
		zap.Int64("parent_id", parentID),
		zap.Int64("user_id", userID))

	resp := response.CommentToResponse(reply)
	return &resp, nil
}

func (s *commentService) UpdateComment(ctx context.Context, id, userID int64, req *request.CommentUpdateRequest) (*response.CommentResponse, error) {
	if err := validate(s.log, req); err != nil {
		return nil, err
	}

	comment, err := s.findComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(comment.UserID, userID, "update comment"); err != nil {
		s.log.Warn("Attempted to edit another user's comment",
			zap.Int64("comment_id", id),
			zap.Int64("user_id", userID))
		return nil, err
	}

	patch := entity.CommentPatch{Comment: req.Comment}
	if patch.IsEmpty() {
		resp := response.CommentToResponse(comment)
		return &resp, nil
	}

	patch.Apply(comment)
	updated, err := s.repo.Comment.Update(ctx, comment)
	if err != nil {
		return nil, storeError(err, "update comment")
	}

	resp := response.CommentToResponse(updated)
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, id, userID int64) error {
	comment, err := s.findComment(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(comment.UserID, userID, "delete comment"); err != nil {
		s.log.Warn("Attempted to delete another user's comment",
			zap.Int64("comment_id", id),
			zap.Int64("user_id", userID))
		return err
	}

	if err := s.repo.Comment.Delete(ctx, id); err != nil {
		return storeError(err, "delete comment")
	}

	s.log.Info("Comment deleted", zap.Int64("comment_id", id))
	return nil
}

func (s *commentService) findComment(ctx context.Context, id int64) (*entity.Comment, error) {
	comment, err := s.repo.Comment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find comment %d: %w", id, err)
	}
	if comment == nil {
		return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	return comment, nil
}
