package usecase

import (
	"errors"
	"fmt"

	"movie-api/internal/data/repository"
	"movie-api/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("already exists")
	ErrUnauthorized         = errors.New("not authorized")
	ErrAuthenticationFailed = errors.New("incorrect username or password")
	ErrValidation           = errors.New("validation failed")
	ErrInvalidInput         = errors.New("invalid input")
)

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validate(log *zap.Logger, req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		log.Warn("Validation failed", zap.Any("errors", errs))
		return &ValidationError{Fields: errs}
	}
	return nil
}

// storeError converts repository sentinels into service errors.
func storeError(err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%s: %w", what, ErrConflict)
	case errors.Is(err, repository.ErrReference):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
