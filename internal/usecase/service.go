package usecase

import (
	"movie-api/internal/data/repository"
	"movie-api/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Movie   MovieService
	Rating  RatingService
	Comment CommentService
}

func NewService(repo *repository.Repository, tokens *utils.TokenManager, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, tokens, log),
		User:    NewUserService(repo.User, repo.Session, log),
		Movie:   NewMovieService(repo, log),
		Rating:  NewRatingService(repo, log),
		Comment: NewCommentService(repo, log),
	}
}
