package service

import (
	"context"
	"errors"
	"time"

	"github.com/geeta-ai/geeta-be/repository"
	"github.com/geeta-ai/geeta-be/types"
	"github.com/geeta-ai/geeta-be/utils"
	"github.com/google/uuid"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooShort   = errors.New("password must be at least 4 characters")
)

type UserService interface {
	Register(ctx context.Context, req *types.RegisterRequest) error
	Login(ctx context.Context, req *types.LoginRequest) (*types.User, error)
}

type userService struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Register(ctx context.Context, req *types.RegisterRequest) error {
	if len(req.Password) < 4 {
		return ErrPasswordTooShort
	}
	existing, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUsernameTaken
	}
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	return s.userRepo.CreateUser(ctx, &types.User{
		ID:       uuid.New().String(),
		Username: req.Username,
		Password: hashed,
		CreateAt: now,
		UpdateAt: now,
	})
}

func (s *userService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now().Unix()); err != nil {
		return nil, err
	}
	return user, nil
}
