package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-api/internal/data/entity"
	"movie-api/internal/data/repository"
	"movie-api/internal/dto/request"
	"movie-api/internal/dto/response"
	"movie-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientInfo describes where a login came from.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.TokenResponse, error)
	Logout(ctx context.Context, sessionToken string) error

	// Authenticate resolves a bearer token to its user and live session token.
	Authenticate(ctx context.Context, bearer string) (int64, string, error)
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	repo   *repository.Repository // user + session
	tokens *utils.TokenManager
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, tokens *utils.TokenManager, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.UserResponse, error) {
	if err := validate(s.log, req); err != nil {
		return nil, err
	}

	// Both values are checked against both columns so a login credential
	// always resolves to a single account.
	for _, credential := range []string{req.Email, req.Username} {
		existing, err := s.repo.User.FindByEmailOrUsername(ctx, credential)
		if err != nil {
			s.log.Error("Failed to check existing user", zap.Error(err), zap.String("credential", credential))
			return nil, fmt.Errorf("check existing user: %w", err)
		}
		if existing != nil {
			s.log.Warn("Attempted signup with existing user", zap.String("credential", credential))
			return nil, fmt.Errorf("user already registered: %w", ErrConflict)
		}
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.User.Create(ctx, &entity.User{
		Email:        req.Email,
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		return nil, storeError(err, "create user")
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.TokenResponse, error) {
	if err := validate(s.log, req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByEmailOrUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("credential", req.Username))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login attempt with incorrect credentials", zap.String("credential", req.Username))
		return nil, ErrAuthenticationFailed
	}

	now := time.Now()
	session := &entity.Session{
		BaseUUID: entity.BaseUUID{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     uuid.New(),
		UserAgent: optional(client.UserAgent),
		IPAddress: optional(client.IPAddress),
		ExpiresAt: now.Add(s.tokens.Expiry()),
	}

	accessToken, expiresAt, err := s.tokens.Issue(user.ID, user.Username, session.Token.String(), now)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("issue token: %w", err)
	}
	session.ExpiresAt = expiresAt

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, storeError(err, "create session")
	}

	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	return &response.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionToken string) error {
	token, err := uuid.Parse(sessionToken)
	if err != nil {
		s.log.Warn("Invalid session token", zap.Error(err))
		return fmt.Errorf("session token: %w", ErrInvalidInput)
	}

	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		return storeError(err, "revoke session")
	}

	s.log.Info("User logged out", zap.String("session", sessionToken))
	return nil
}

func (s *authService) Authenticate(ctx context.Context, bearer string) (int64, string, error) {
	claims, err := s.tokens.Parse(bearer)
	if err != nil {
		return 0, "", fmt.Errorf("%v: %w", err, ErrAuthenticationFailed)
	}

	userID, err := claims.UserID()
	if err != nil {
		return 0, "", fmt.Errorf("%v: %w", err, ErrAuthenticationFailed)
	}

	token, err := uuid.Parse(claims.ID)
	if err != nil {
		return 0, "", fmt.Errorf("session id: %w", ErrAuthenticationFailed)
	}

	session, err := s.repo.Session.FindValidSession(ctx, token)
	if err != nil {
		s.log.Error("Failed to load session", zap.Error(err))
		return 0, "", fmt.Errorf("load session: %w", err)
	}
	if session == nil || session.UserID != userID {
		return 0, "", fmt.Errorf("session revoked or expired: %w", ErrAuthenticationFailed)
	}

	return userID, claims.ID, nil
}

func (s *authService) CleanExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("clean sessions: %w", err)
	}
	if n > 0 {
		s.log.Info("Expired sessions removed", zap.Int64("count", n))
	}
	return n, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

