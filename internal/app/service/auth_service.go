package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common/security"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/repository"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/platform/redisstore"
)

type AuthService struct {
	userRepo  repository.UserRepository
	tokenAuth *security.TokenAuth
	denylist  *redisstore.TokenDenylist
}

func NewAuthService(userRepo repository.UserRepository, tokenAuth *security.TokenAuth, denylist *redisstore.TokenDenylist) *AuthService {
	return &AuthService{userRepo: userRepo, tokenAuth: tokenAuth, denylist: denylist}
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Identity string `json:"identity"` // "student" or "professor"
}

type LoginRequest struct {
	Username string `json:"username"` // username or email
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        *model.User `json:"user"`
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", common.ErrBadRequest)
	}
	if len(req.Username) < 3 {
		return nil, fmt.Errorf("username must be at least 3 characters: %w", common.ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", common.ErrValidation)
	}
	role, err := model.ParseRole(req.Identity)
	if err != nil {
		return nil, fmt.Errorf("identity must be student or professor: %w", common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Role:           role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokenAuth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{AccessToken: token, TokenType: "bearer", User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil && errors.Is(err, common.ErrNotFound) {
		user, err = s.userRepo.FindByEmail(ctx, req.Username)
	}
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := s.tokenAuth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{AccessToken: token, TokenType: "bearer", User: user}, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// Logout denylists the token until it would have expired anyway. A nil
// denylist (redis disabled) makes logout a no-op.
func (s *AuthService) Logout(ctx context.Context, jti string, expiry time.Time) error {
	if s.denylist == nil {
		return nil
	}
	return s.denylist.Revoke(ctx, jti, expiry)
}
