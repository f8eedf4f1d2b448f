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

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error)
	FindByID(ctx context.Context, id int64) (*entity.Comment, error)
	FindByUserID(ctx context.Context, userID int64, offset, limit int) ([]*entity.Comment, error)
	FindReplies(ctx context.Context, parentID int64, offset, limit int) ([]*entity.Comment, error)
	Update(ctx context.Context, comment *entity.Comment) (*entity.Comment, error)
	Delete(ctx context.Context, id int64) error

	// Thread queries join the author and count direct replies.
	FindThreads(ctx context.Context, offset, limit int) ([]*entity.CommentThread, error)
	FindThreadsByMovieID(ctx context.Context, movieID int64, offset, limit int) ([]*entity.CommentThread, error)
	FindThreadByID(ctx context.Context, id int64) (*entity.CommentThread, error)
}

const commentColumns = `id, comment, user_id, movie_id, parent_id, created_at`

// threadSelect counts only direct children: replies of replies are attributed
// to their own parent.
const threadSelect = `
	SELECT c.id, c.comment, c.user_id, c.movie_id, c.parent_id, c.created_at,
	       u.id, u.username, u.email,
	       COALESCE(rc.reply_count, 0) AS replies
	FROM comments c
	JOIN users u ON u.id = c.user_id
	LEFT JOIN (
		SELECT parent_id, COUNT(id) AS reply_count
		FROM comments
		WHERE parent_id IS NOT NULL
		GROUP BY parent_id
	) rc ON rc.parent_id = c.id
`

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

func scanComment(row pgx.Row) (*entity.Comment, error) {
	var comment entity.Comment
	err := row.Scan(
		&comment.ID,
		&comment.Comment,
		&comment.UserID,
		&comment.MovieID,
		&comment.ParentID,
		&comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func scanThread(row pgx.Row) (*entity.CommentThread, error) {
	var thread entity.CommentThread
	err := row.Scan(
		&thread.ID,
		&thread.Comment.Comment,
		&thread.UserID,
		&thread.MovieID,
		&thread.ParentID,
		&thread.CreatedAt,
		&thread.Author.ID,
		&thread.Author.Username,
		&thread.Author.Email,
		&thread.Replies,
	)
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	query := `
		INSERT INTO comments (comment, user_id, movie_id, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + commentColumns

	created, err := scanComment(r.db.QueryRow(ctx, query,
		comment.Comment,
		comment.UserID,
		comment.MovieID,
		comment.ParentID,
	))
	if err != nil {
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.Int64("user_id", comment.UserID),
			zap.Int64("movie_id", comment.MovieID),
			zap.Int64p("parent_id", comment.ParentID),
		)
		return nil, fmt.Errorf("create comment on movie %d: %w", comment.MovieID, translate(err))
	}

	return created, nil
}

func (r *commentRepository) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanComment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment by ID",
			zap.Error(err),
			zap.Int64("comment_id", id),
		)
		return nil, fmt.Errorf("find comment by ID %d: %w", id, err)
	}

	return comment, nil
}

func (r *commentRepository) FindByUserID(ctx context.Context, userID int64, offset, limit int) ([]*entity.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.findMany(ctx, "find comments by user", query, userID, limit, offset)
}

func (r *commentRepository) FindReplies(ctx context.Context, parentID int64, offset, limit int) ([]*entity.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE parent_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.findMany(ctx, "find replies", query, parentID, limit, offset)
}

func (r *commentRepository) findMany(ctx context.Context, operation, query string, args ...any) ([]*entity.Comment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+operation, zap.Error(err), zap.Any("args", args))
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer rows.Close()

	comments := make([]*entity.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) FindThreads(ctx context.Context, offset, limit int) ([]*entity.CommentThread, error) {
	query := threadSelect + ` ORDER BY c.id LIMIT $1 OFFSET $2`
	return r.findThreads(ctx, "find comment threads", query, limit, offset)
}

func (r *commentRepository) FindThreadsByMovieID(ctx context.Context, movieID int64, offset, limit int) ([]*entity.CommentThread, error) {
	query := threadSelect + ` WHERE c.movie_id = $1 ORDER BY c.id LIMIT $2 OFFSET $3`
	return r.findThreads(ctx, "find comment threads by movie", query, movieID, limit, offset)
}

func (r *commentRepository) FindThreadByID(ctx context.Context, id int64) (*entity.CommentThread, error) {
	query := threadSelect + ` WHERE c.id = $1`

	thread, err := scanThread(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment thread",
			zap.Error(err),
			zap.Int64("comment_id", id),
		)
		return nil, fmt.Errorf("find comment thread %d: %w", id, err)
	}

	return thread, nil
}

func (r *commentRepository) findThreads(ctx context.Context, operation, query string, args ...any) ([]*entity.CommentThread, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+operation, zap.Error(err), zap.Any("args", args))
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer rows.Close()

	threads := make([]*entity.CommentThread, 0)
	for rows.Next() {
		thread, err := scanThread(rows)
		if err != nil {
			r.log.Error("Failed to scan comment thread row", zap.Error(err))
			return nil, fmt.Errorf("scan comment thread row: %w", err)
		}
		threads = append(threads, thread)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate comment thread rows: %w", err)
	}

	return threads, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	query := `
		UPDATE comments
		SET comment = $2
		WHERE id = $1
		RETURNING ` + commentColumns

	updated, err := scanComment(r.db.QueryRow(ctx, query, comment.ID, comment.Comment))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update comment %d: %w", comment.ID, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update comment",
			zap.Error(err),
			zap.Int64("comment_id", comment.ID),
		)
		return nil, fmt.Errorf("update comment %d: %w", comment.ID, err)
	}

	return updated, nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM comments WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete comment",
			zap.Error(err),
			zap.Int64("comment_id", id),
		)
		return fmt.Errorf("delete comment %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete comment %d: %w", id, ErrNotFound)
	}

	r.log.Info("Comment deleted", zap.Int64("comment_id", id))
	return nil
}
