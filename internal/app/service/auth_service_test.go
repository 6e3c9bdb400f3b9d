package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common/security"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
)

func newTestAuthService() (*AuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	tokenAuth := security.NewTokenAuth([]byte("test-secret"), time.Hour)
	return NewAuthService(userRepo, tokenAuth, nil), userRepo
}

func TestSignup(t *testing.T) {
	svc, _ := newTestAuthService()

	resp, err := svc.Signup(context.Background(), SignupRequest{
		Username: "alice",
		Email:    "alice@uwaterloo.ca",
		Password: "supersecret",
		Identity: "student",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, model.RoleStudent, resp.User.Role)
	assert.Empty(t, resp.User.HashedPassword)
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	cases := []struct {
		name string
		req  SignupRequest
		want error
	}{
		{
			name: "missing email",
			req:  SignupRequest{Username: "alice", Password: "supersecret", Identity: "student"},
			want: common.ErrBadRequest,
		},
		{
			name: "short username",
			req:  SignupRequest{Username: "al", Email: "a@b.ca", Password: "supersecret", Identity: "student"},
			want: common.ErrValidation,
		},
		{
			name: "short password",
			req:  SignupRequest{Username: "alice", Email: "a@b.ca", Password: "short", Identity: "student"},
			want: common.ErrValidation,
		},
		{
			name: "unknown identity",
			req:  SignupRequest{Username: "alice", Email: "a@b.ca", Password: "supersecret", Identity: "admin"},
			want: common.ErrValidation,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	req := SignupRequest{Username: "alice", Email: "alice@uwaterloo.ca", Password: "supersecret", Identity: "student"}
	_, err := svc.Signup(ctx, req)
	require.NoError(t, err)

	req.Email = "other@uwaterloo.ca"
	_, err = svc.Signup(ctx, req)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupRequest{
		Username: "bob",
		Email:    "bob@uwaterloo.ca",
		Password: "supersecret",
		Identity: "professor",
	})
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		resp, err := svc.Login(ctx, LoginRequest{Username: "bob", Password: "supersecret"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, model.RoleProfessor, resp.User.Role)
	})

	t.Run("by email", func(t *testing.T) {
		resp, err := svc.Login(ctx, LoginRequest{Username: "bob@uwaterloo.ca", Password: "supersecret"})
		require.NoError(t, err)
		assert.Equal(t, "bob", resp.User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Username: "bob", Password: "wrongpassword"})
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Username: "nobody", Password: "supersecret"})
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})
}

func TestCurrentUserStripsPassword(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Signup(ctx, SignupRequest{
		Username: "carol",
		Email:    "carol@uwaterloo.ca",
		Password: "supersecret",
		Identity: "student",
	})
	require.NoError(t, err)

	// The stored row keeps the hash, the API view must not.
	stored := repo.users[resp.User.ID]
	assert.NotEmpty(t, stored.HashedPassword)

	user, err := svc.CurrentUser(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Empty(t, user.HashedPassword)
}
