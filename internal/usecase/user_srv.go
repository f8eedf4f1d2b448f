package usecase

import (
	"context"
	"fmt"

	"movie-api/internal/data/entity"
	"movie-api/internal/data/repository"
	"movie-api/internal/dto/request"
	"movie-api/internal/dto/response"
	"movie-api/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetUsers(ctx context.Context, page request.PageRequest) (*response.PageResponse[response.UserResponse], error)
	GetUser(ctx context.Context, id int64) (*response.UserResponse, error)
	GetUserByUsername(ctx context.Context, username string) (*response.UserResponse, error)
	GetProfile(ctx context.Context, userID int64) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, id, currentUserID int64, req *request.UserUpdateRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, id, currentUserID int64) error
}

type userService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	log         *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		log:         log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetUsers(ctx context.Context, page request.PageRequest) (*response.PageResponse[response.UserResponse], error) {
	users, err := us.userRepo.FindAll(ctx, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return response.NewPageResponse(response.UsersToResponse(users), page.Skip(), page.Take()), nil
}

func (us *userService) GetUser(ctx context.Context, id int64) (*response.UserResponse, error) {
	user, err := us.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetUserByUsername(ctx context.Context, username string) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetProfile(ctx context.Context, userID int64) (*response.UserResponse, error) {
	return us.GetUser(ctx, userID)
}

func (us *userService) UpdateUser(ctx context.Context, id, currentUserID int64, req *request.UserUpdateRequest) (*response.UserResponse, error) {
	if err := validate(us.log, req); err != nil {
		return nil, err
	}

	user, err := us.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(user.ID, currentUserID, "update user"); err != nil {
		us.log.Warn("Attempted to update another user",
			zap.Int64("user_id", currentUserID),
			zap.Int64("target_id", id))
		return nil, err
	}

	patch := entity.UserPatch{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
	}
	if err := us.ensureAvailable(ctx, user.ID, patch.Email, patch.Username); err != nil {
		return nil, err
	}
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			us.log.Error("Failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hashed
	}

	if patch.IsEmpty() {
		resp := response.UserToResponse(user)
		return &resp, nil
	}

	patch.Apply(user)
	updated, err := us.userRepo.Update(ctx, user)
	if err != nil {
		return nil, storeError(err, "update user")
	}

	// A new password invalidates every token issued under the old one.
	if patch.PasswordHash != nil {
		if err := us.sessionRepo.RevokeAllUserSessions(ctx, updated.ID); err != nil {
			return nil, fmt.Errorf("revoke sessions: %w", err)
		}
		us.log.Info("User sessions revoked after password change", zap.Int64("user_id", updated.ID))
	}

	us.log.Info("User updated", zap.Int64("user_id", updated.ID))
	resp := response.UserToResponse(updated)
	return &resp, nil
}

func (us *userService) DeleteUser(ctx context.Context, id, currentUserID int64) error {
	user, err := us.findUser(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(user.ID, currentUserID, "delete user"); err != nil {
		us.log.Warn("Attempted to delete another user",
			zap.Int64("user_id", currentUserID),
			zap.Int64("target_id", id))
		return err
	}

	if err := us.userRepo.Delete(ctx, id); err != nil {
		return storeError(err, "delete user")
	}

	us.log.Info("User deleted", zap.Int64("user_id", id))
	return nil
}

func (us *userService) findUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, nil
}

// ensureAvailable rejects an email or username already held by another account.
func (us *userService) ensureAvailable(ctx context.Context, selfID int64, values ...*string) error {
	for _, v := range values {
		if v == nil {
			continue
		}
		other, err := us.userRepo.FindByEmailOrUsername(ctx, *v)
		if err != nil {
			return fmt.Errorf("check credential: %w", err)
		}
		if other != nil && other.ID != selfID {
			return fmt.Errorf("%q is taken: %w", *v, ErrConflict)
		}
	}
	return nil
}
