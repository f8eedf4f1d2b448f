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

type MovieService interface {
	GetMovies(ctx context.Context, page request.PageRequest) (*response.PageResponse[response.MovieResponse], error)
	GetMovie(ctx context.Context, id int64) (*response.MovieDetailResponse, error)
	GetMoviesByGenre(ctx context.Context, genre string, page request.PageRequest) (*response.PageResponse[response.MovieResponse], error)
	GetMoviesByTitle(ctx context.Context, title string, page request.PageRequest) (*response.PageResponse[response.MovieResponse], error)
	GetUserMovies(ctx context.Context, userID int64, page request.PageRequest) (*response.PageResponse[response.MovieResponse], error)

	CreateMovie(ctx context.Context, userID int64, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, id, userID int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, id, userID int64) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, page request.PageRequest) (*response.PageResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindAll(ctx, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return response.NewPageResponse(response.MoviesToResponse(movies), page.Skip(), page.Take()), nil
}

func (s *movieService) GetMovie(ctx context.Context, id int64) (*response.MovieDetailResponse, error) {
	movie, err := findMovie(ctx, s.repo.Movie, id)
	if err != nil {
		s.log.Warn("Movie not found", zap.Int64("movie_id", id), zap.Error(err))
		return nil, err
	}

	owner, err := s.repo.User.FindByID(ctx, movie.UserID)
	if err != nil {
		return nil, fmt.Errorf("find owner: %w", err)
	}

	resp := response.MovieToDetailResponse(movie, owner)
	return &resp, nil
}

func (s *movieService) GetMoviesByGenre(ctx context.Context, genre string, page request.PageRequest) (*response.PageResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindByGenre(ctx, genre, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list movies by genre: %w", err)
	}
	if len(movies) == 0 {
		s.log.Info("No movies found for genre", zap.String("genre", genre))
		return nil, fmt.Errorf("no movies found for genre %q: %w", genre, ErrNotFound)
	}
	return response.NewPageResponse(response.MoviesToResponse(movies), page.Skip(), page.Take()), nil
}

func (s *movieService) GetMoviesByTitle(ctx context.Context, title string, page request.PageRequest) (*response.PageResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindByTitle(ctx, title, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list movies by title: %w", err)
	}
	if len(movies) == 0 {
		s.log.Info("No movies found with title", zap.String("title", title))
		return nil, fmt.Errorf("no movies found with title %q: %w", title, ErrNotFound)
	}
	return response.NewPageResponse(response.MoviesToResponse(movies), page.Skip(), page.Take()), nil
}

func (s *movieService) GetUserMovies(ctx context.Context, userID int64, page request.PageRequest) (*response.PageResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindByUserID(ctx, userID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list user movies: %w", err)
	}
	return response.NewPageResponse(response.MoviesToResponse(movies), page.Skip(), page.Take()), nil
}

func (s *movieService) CreateMovie(ctx context.Context, userID int64, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := validate(s.log, req); err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.Create(ctx, &entity.Movie{
		Title:       req.Title,
		Genre:       req.Genre,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
		UserID:      userID,
	})
	if err != nil {
		return nil, storeError(err, "create movie")
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.Int64("user_id", userID),
		zap.String("title", movie.Title))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, id, userID int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if err := validate(s.log, req); err != nil {
		return nil, err
	}

	movie, err := findMovie(ctx, s.repo.Movie, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(movie.UserID, userID, "update movie"); err != nil {
		s.log.Warn("Attempted to update another user's movie",
			zap.Int64("movie_id", id),
			zap.Int64("user_id", userID))
		return nil, err
	}

	patch := entity.MoviePatch{
		Title:       req.Title,
		Genre:       req.Genre,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
	}
	if patch.IsEmpty() {
		resp := response.MovieToResponse(movie)
		return &resp, nil
	}

	patch.Apply(movie)
	updated, err := s.repo.Movie.Update(ctx, movie)
	if err != nil {
		return nil, storeError(err, "update movie")
	}

	s.log.Info("Movie updated", zap.Int64("movie_id", id))
	resp := response.MovieToResponse(updated)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, id, userID int64) error {
	movie, err := findMovie(ctx, s.repo.Movie, id)
	if err != nil {
		return err
	}
	if err := authorize(movie.UserID, userID, "delete movie"); err != nil {
		s.log.Warn("Attempted to delete another user's movie",
			zap.Int64("movie_id", id),
			zap.Int64("user_id", userID))
		return err
	}

	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		return storeError(err, "delete movie")
	}

	s.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}

func findMovie(ctx context.Context, movies repository.MovieRepository, id int64) (*entity.Movie, error) {
	movie, err := movies.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie %d: %w", id, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", id, ErrNotFound)
	}
	return movie, nil
}
