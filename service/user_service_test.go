package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geeta-ai/geeta-be/service"
	"github.com/geeta-ai/geeta-be/types"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*types.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*types.User)}
}

func (r *memUserRepo) CreateUser(ctx context.Context, user *types.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.Username] = &copied
	return nil
}

func (r *memUserRepo) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) UpdateLastLogin(ctx context.Context, id string, lastLogin int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			user.LastLogin = lastLogin
		}
	}
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	users := service.NewUserService(newMemUserRepo())
	ctx := context.Background()

	err := users.Register(ctx, &types.RegisterRequest{Username: "alice", Password: "pass123"})
	require.NoError(t, err)

	user, err := users.Login(ctx, &types.LoginRequest{Username: "alice", Password: "pass123"})
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "pass123", user.Password, "password must be stored hashed")
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	users := service.NewUserService(newMemUserRepo())

	err := users.Register(context.Background(), &types.RegisterRequest{Username: "bob", Password: "abc"})
	require.ErrorIs(t, err, service.ErrPasswordTooShort)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	users := service.NewUserService(newMemUserRepo())
	ctx := context.Background()

	require.NoError(t, users.Register(ctx, &types.RegisterRequest{Username: "alice", Password: "pass123"}))

	err := users.Register(ctx, &types.RegisterRequest{Username: "alice", Password: "other456"})
	require.ErrorIs(t, err, service.ErrUsernameTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	users := service.NewUserService(newMemUserRepo())
	ctx := context.Background()

	require.NoError(t, users.Register(ctx, &types.RegisterRequest{Username: "alice", Password: "pass123"}))

	_, err := users.Login(ctx, &types.LoginRequest{Username: "alice", Password: "wrong"})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	users := service.NewUserService(newMemUserRepo())

	_, err := users.Login(context.Background(), &types.LoginRequest{Username: "ghost", Password: "pass123"})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}
