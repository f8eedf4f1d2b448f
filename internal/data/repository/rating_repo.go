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

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) (*entity.Rating, error)
	FindByID(ctx context.Context, id int64) (*entity.Rating, error)
	FindAll(ctx context.Context, offset, limit int) ([]*entity.Rating, error)
	FindByMovieID(ctx context.Context, movieID int64, offset, limit int) ([]*entity.Rating, error)
	FindByUserID(ctx context.Context, userID int64, offset, limit int) ([]*entity.Rating, error)
	FindByUserAndMovie(ctx context.Context, userID, movieID int64) (*entity.Rating, error)
	Update(ctx context.Context, rating *entity.Rating) (*entity.Rating, error)
	Delete(ctx context.Context, id int64) error

	// FindAllValuesByMovieID returns every rating value for the movie, unpaged.
	FindAllValuesByMovieID(ctx context.Context, movieID int64) ([]int, error)
}

const ratingColumns = `id, rating_value, user_id, movie_id, created_at`

type ratingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRatingRepository(db database.PgxIface, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

func scanRating(row pgx.Row) (*entity.Rating, error) {
	var rating entity.Rating
	err := row.Scan(
		&rating.ID,
		&rating.RatingValue,
		&rating.UserID,
		&rating.MovieID,
		&rating.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) (*entity.Rating, error) {
	query := `
		INSERT INTO ratings (rating_value, user_id, movie_id)
		VALUES ($1, $2, $3)
		RETURNING ` + ratingColumns

	created, err := scanRating(r.db.QueryRow(ctx, query,
		rating.RatingValue,
		rating.UserID,
		rating.MovieID,
	))
	if err != nil {
		r.log.Error("Failed to create rating",
			zap.Error(err),
			zap.Int64("user_id", rating.UserID),
			zap.Int64("movie_id", rating.MovieID),
		)
		return nil, fmt.Errorf("create rating for movie %d by user %d: %w",
			rating.MovieID, rating.UserID, translate(err))
	}

	return created, nil
}

func (r *ratingRepository) FindByID(ctx context.Context, id int64) (*entity.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE id = $1`

	rating, err := scanRating(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rating by ID",
			zap.Error(err),
			zap.Int64("rating_id", id),
		)
		return nil, fmt.Errorf("find rating by ID %d: %w", id, err)
	}

	return rating, nil
}

func (r *ratingRepository) FindAll(ctx context.Context, offset, limit int) ([]*entity.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings ORDER BY id LIMIT $1 OFFSET $2`
	return r.findMany(ctx, "find all ratings", query, limit, offset)
}

func (r *ratingRepository) FindByMovieID(ctx context.Context, movieID int64, offset, limit int) ([]*entity.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE movie_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.findMany(ctx, "find ratings by movie", query, movieID, limit, offset)
}

func (r *ratingRepository) FindByUserID(ctx context.Context, userID int64, offset, limit int) ([]*entity.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.findMany(ctx, "find ratings by user", query, userID, limit, offset)
}

func (r *ratingRepository) findMany(ctx context.Context, operation, query string, args ...any) ([]*entity.Rating, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+operation, zap.Error(err), zap.Any("args", args))
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer rows.Close()

	ratings := make([]*entity.Rating, 0)
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			r.log.Error("Failed to scan rating row", zap.Error(err))
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	return ratings, nil
}

func (r *ratingRepository) FindByUserAndMovie(ctx context.Context, userID, movieID int64) (*entity.Rating, error) {
	query := `
		SELECT ` + ratingColumns + `
		FROM ratings
		WHERE user_id = $1 AND movie_id = $2
		LIMIT 1
	`

	rating, err := scanRating(r.db.QueryRow(ctx, query, userID, movieID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rating by user and movie",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find rating by user %d and movie %d: %w", userID, movieID, err)
	}

	return rating, nil
}

func (r *ratingRepository) FindAllValuesByMovieID(ctx context.Context, movieID int64) ([]int, error) {
	query := `SELECT rating_value FROM ratings WHERE movie_id = $1`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to load rating values",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("load rating values for movie %d: %w", movieID, err)
	}

	values, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		r.log.Error("Failed to scan rating values", zap.Error(err))
		return nil, fmt.Errorf("scan rating values for movie %d: %w", movieID, err)
	}

	return values, nil
}

func (r *ratingRepository) Update(ctx context.Context, rating *entity.Rating) (*entity.Rating, error) {
	query := `
		UPDATE ratings
		SET rating_value = $2
		WHERE id = $1
		RETURNING ` + ratingColumns

	updated, err := scanRating(r.db.QueryRow(ctx, query, rating.ID, rating.RatingValue))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update rating %d: %w", rating.ID, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update rating",
			zap.Error(err),
			zap.Int64("rating_id", rating.ID),
		)
		return nil, fmt.Errorf("update rating %d: %w", rating.ID, err)
	}

	return updated, nil
}

func (r *ratingRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM ratings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete rating",
			zap.Error(err),
			zap.Int64("rating_id", id),
		)
		return fmt.Errorf("delete rating %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete rating %d: %w", id, ErrNotFound)
	}

	r.log.Info("Rating deleted", zap.Int64("rating_id", id))
	return nil
}
