package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/reelrateapp/reelrate-server/internal/auth"
	"github.com/reelrateapp/reelrate-server/internal/domain"
	"github.com/reelrateapp/reelrate-server/internal/store"
)

// AuthService handles user registration, login and token verification.
type AuthService struct {
	store  store.Store
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(st store.Store, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{store: st, tokens: tokens, logger: logger}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=1024"`
}

// AuthResponse contains the access token and the authenticated user.
type AuthResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
}

// Register creates a new user account and logs it in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	salt, err := auth.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	digest, err := auth.Hash(req.Password, salt)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.AddUser(ctx, &domain.User{
		Email:    req.Email,
		Password: digest,
		Salt:     salt,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)

	return s.issueToken(user)
}

// Login authenticates a user and returns an access token.
// Unknown email, wrong password and deleted account all produce the same
// unauthorized outcome; the caller cannot tell whether the email exists.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	user, err := s.store.AuthenticateUser(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrUnauthorized.WithMessage("invalid email or password")
		}
		return nil, fmt.Errorf("authenticate user: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return s.issueToken(user)
}

// VerifyAccessToken resolves a bearer token to its active user.
// A soft-deleted user fails verification even with a valid token.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, store.ErrUnauthorized.WithCause(err)
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrUnauthorized.WithMessage("user no longer exists")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user account (logical delete).
func (s *AuthService) DeleteUser(ctx context.Context, id int64) bool {
	return s.store.DeleteUser(ctx, id)
}

// GetUser returns an active user by id.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *AuthService) issueToken(user *domain.User) (*AuthResponse, error) {
	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokens.AccessTokenDuration() / time.Second),
	}, nil
}
