package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-api/internal/data/entity"
	"movie-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	// CRUD Movie
	Create(ctx context.Context, movie *entity.Movie) (*entity.Movie, error)
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) (*entity.Movie, error)
	Delete(ctx context.Context, id int64) error
	FindAll(ctx context.Context, offset, limit int) ([]*entity.Movie, error)

	// Lookups
	FindByTitle(ctx context.Context, title string, offset, limit int) ([]*entity.Movie, error)
	FindByGenre(ctx context.Context, genre string, offset, limit int) ([]*entity.Movie, error)
	FindByUserID(ctx context.Context, userID int64, offset, limit int) ([]*entity.Movie, error)
}

const movieColumns = `id, title, genre, description, release_year, user_id, created_at`

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genre,
		&movie.Description,
		&movie.ReleaseYear,
		&movie.UserID,
		&movie.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	query := `
		INSERT INTO movies (title, genre, description, release_year, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + movieColumns

	created, err := scanMovie(r.db.QueryRow(ctx, query,
		movie.Title,
		movie.Genre,
		movie.Description,
		movie.ReleaseYear,
		movie.UserID,
	))
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
			zap.Int64("user_id", movie.UserID),
		)
		return nil, fmt.Errorf("failed to create movie: %w", translate(err))
	}

	return created, nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, offset, limit int) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY id LIMIT $1 OFFSET $2`
	return r.findMany(ctx, "find all movies", query, limit, offset)
}

func (r *movieRepository) FindByTitle(ctx context.Context, title string, offset, limit int) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE title = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.findMany(ctx, "find movies by title", query, title, limit, offset)
}

func (r *movieRepository) FindByGenre(ctx context.Context, genre string, offset, limit int) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE genre = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.findMany(ctx, "find movies by genre", query, genre, limit, offset)
}

func (r *movieRepository) FindByUserID(ctx context.Context, userID int64, offset, limit int) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.findMany(ctx, "find movies by user", query, userID, limit, offset)
}

func (r *movieRepository) findMany(ctx context.Context, operation, query string, args ...any) ([]*entity.Movie, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.Any("args", args),
		)
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer rows.Close()

	movies := make([]*entity.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Movies found",
		zap.String("operation", operation),
		zap.Int("count", len(movies)),
	)

	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	query := `
		UPDATE movies
		SET title = $2, genre = $3, description = $4, release_year = $5
		WHERE id = $1
		RETURNING ` + movieColumns

	updated, err := scanMovie(r.db.QueryRow(ctx, query,
		movie.ID,
		movie.Title,
		movie.Genre,
		movie.Description,
		movie.ReleaseYear,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update movie %d: %w", movie.ID, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	return updated, nil
}

func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete movie %d: %w", id, ErrNotFound)
	}

	r.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}
