package usecase

import (
	"context"
	"errors"
	"fmt"

	"movie-api/internal/data/entity"
	"movie-api/internal/data/repository"
	"movie-api/internal/dto/request"
	"movie-api/internal/dto/response"

	"go.uber.org/zap"
)

type RatingService interface {
	GetRatings(ctx context.Context, page request.PageRequest) (*response.PageResponse[response.RatingResponse], error)
	GetRating(ctx context.Context, id int64) (*response.RatingResponse, error)
	GetMovieRatings(ctx context.Context, movieID int64, page request.PageRequest) (*response.PageResponse[response.RatingResponse], error)
	GetUserRatings(ctx context.Context, userID int64, page request.PageRequest) (*response.PageResponse[response.RatingResponse], error)
	GetAverageRating(ctx context.Context, movieID int64) (*response.AverageRatingResponse, error)

	RateMovie(ctx context.Context, userID, movieID int64, req *request.RatingRequest) (*response.RatingResponse, error)
	UpdateRating(ctx context.Context, id, userID int64, req *request.RatingUpdateRequest) (*response.RatingResponse, error)
	DeleteRating(ctx context.Context, id, userID int64) error
}

type ratingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRatingService(repo *repository.Repository, log *zap.Logger) RatingService {
	return &ratingService{
		repo: repo,
		log:  log.With(zap.String("service", "rating")),
	}
}

func (s *ratingService) GetRatings(ctx context.Context, page request.PageRequest) (*response.PageResponse[response.RatingResponse], error) {
	ratings, err := s.repo.Rating.FindAll(ctx, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return response.NewPageResponse(response.RatingsToResponse(ratings), page.Skip(), page.Take()), nil
}

func (s *ratingService) GetRating(ctx context.Context, id int64) (*response.RatingResponse, error) {
	rating, err := s.findRating(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.RatingToResponse(rating)
	return &resp, nil
}

func (s *ratingService) GetMovieRatings(ctx context.Context, movieID int64, page request.PageRequest) (*response.PageResponse[response.RatingResponse], error) {
	if _, err := findMovie(ctx, s.repo.Movie, movieID); err != nil {
		return nil, err
	}

	ratings, err := s.repo.Rating.FindByMovieID(ctx, movieID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list movie ratings: %w", err)
	}
	return response.NewPageResponse(response.RatingsToResponse(ratings), page.Skip(), page.Take()), nil
}

func (s *ratingService) GetUserRatings(ctx context.Context, userID int64, page request.PageRequest) (*response.PageResponse[response.RatingResponse], error) {
	ratings, err := s.repo.Rating.FindByUserID(ctx, userID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list user ratings: %w", err)
	}
	return response.NewPageResponse(response.RatingsToResponse(ratings), page.Skip(), page.Take()), nil
}

func (s *ratingService) GetAverageRating(ctx context.Context, movieID int64) (*response.AverageRatingResponse, error) {
	movie, err := findMovie(ctx, s.repo.Movie, movieID)
	if err != nil {
		return nil, err
	}

	values, err := s.repo.Rating.FindAllValuesByMovieID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("load rating values: %w", err)
	}

	return &response.AverageRatingResponse{
		MovieID:    movie.ID,
		MovieTitle: movie.Title,
		OwnerID:    movie.UserID,
		AvgRating:  AverageRating(values),
	}, nil
}

func (s *ratingService) RateMovie(ctx context.Context, userID, movieID int64, req *request.RatingRequest) (*response.RatingResponse, error) {
	if err := validate(s.log, req); err != nil {
		return nil, err
	}

	if _, err := findMovie(ctx, s.repo.Movie, movieID); err != nil {
		return nil, err
	}

	existing, err := s.repo.Rating.FindByUserAndMovie(ctx, userID, movieID)
	if err != nil {
		return nil, fmt.Errorf("check existing rating: %w", err)
	}
	if existing != nil {
		s.log.Warn("User is trying to rate a movie again",
			zap.Int64("user_id", userID),
			zap.Int64("movie_id", movieID))
		return nil, fmt.Errorf("movie already rated, update the existing rating instead: %w", ErrConflict)
	}

	rating, err := s.repo.Rating.Create(ctx, &entity.Rating{
		RatingValue: req.RatingValue,
		UserID:      userID,
		MovieID:     movieID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("movie already rated, update the existing rating instead: %w", ErrConflict)
		}
		return nil, storeError(err, "create rating")
	}

	s.log.Info("Movie rated",
		zap.Int64("rating_id", rating.ID),
		zap.Int64("movie_id", movieID),
		zap.Int("rating", rating.RatingValue))

	resp := response.RatingToResponse(rating)
	return &resp, nil
}

func (s *ratingService) UpdateRating(ctx context.Context, id, userID int64, req *request.RatingUpdateRequest) (*response.RatingResponse, error) {
	if err := validate(s.log, req); err != nil {
		return nil, err
	}

	rating, err := s.findRating(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(rating.UserID, userID, "update rating"); err != nil {
		return nil, err
	}

	patch := entity.RatingPatch{RatingValue: req.RatingValue}
	if patch.IsEmpty() {
		resp := response.RatingToResponse(rating)
		return &resp, nil
	}

	patch.Apply(rating)
	updated, err := s.repo.Rating.Update(ctx, rating)
	if err != nil {
		return nil, storeError(err, "update rating")
	}

	resp := response.RatingToResponse(updated)
	return &resp, nil
}

func (s *ratingService) DeleteRating(ctx context.Context, id, userID int64) error {
	rating, err := s.findRating(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(rating.UserID, userID, "delete rating"); err != nil {
		return err
	}

	if err := s.repo.Rating.Delete(ctx, id); err != nil {
		return storeError(err, "delete rating")
	}

	s.log.Info("Rating deleted", zap.Int64("rating_id", id))
	return nil
}

func (s *ratingService) findRating(ctx context.Context, id int64) (*entity.Rating, error) {
	rating, err := s.repo.Rating.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find rating %d: %w", id, err)
	}
	if rating == nil {
		return nil, fmt.Errorf("rating %d: %w", id, ErrNotFound)
	}
	return rating, nil
}
