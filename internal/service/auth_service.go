package service

import (
	"context"
	"log/slog"

	"splitzy/internal/auth"
	"splitzy/internal/models"
)

// AuthService wraps signup and login, issuing JWTs for sessions.
type AuthService struct {
	authenticator *auth.PasswordAuthenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator *auth.PasswordAuthenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Signup registers a new account and returns the user with a session token.
func (s *AuthService) Signup(ctx context.Context, username, email, phone, password string) (*models.User, string, error) {
	user, err := s.authenticator.Signup(ctx, username, email, phone, password)
	if err != nil {
		slog.Warn("Signup failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("User registered", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// Login authenticates by email or phone and returns the user with a session
// token.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*models.User, string, error) {
	user, err := s.authenticator.Login(ctx, identifier, password)
	if err != nil {
		slog.Warn("Login failed", "identifier", identifier, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}
