package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"splitzy/internal/apperr"
	"splitzy/internal/models"
)

// UserStorage defines the user persistence operations the authenticator needs.
// This keeps the authenticator independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// PasswordAuthenticator implements password-based signup and login using
// bcrypt. Login accepts either an email address or a phone number.
type PasswordAuthenticator struct {
	storage UserStorage
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{storage: storage}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return apperr.Validation("Password must be at least 8 characters")
	}
	return nil
}

// Signup creates a new user account with a hashed password. Username, email
// and phone must all be unused.
func (a *PasswordAuthenticator) Signup(ctx context.Context, username, email, phone, password string) (*models.User, error) {
	if username == "" || email == "" || phone == "" {
		return nil, apperr.Validation("Username, email and phone are required")
	}
	if err := a.ValidateCredential(password); err != nil {
		return nil, err
	}

	if existing, err := a.storage.GetUserByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperr.Validation("User is already registered with this email")
	}
	if existing, err := a.storage.GetUserByPhone(ctx, phone); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperr.Validation("User is already registered with this number")
	}
	if existing, err := a.storage.GetUserByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperr.Validation("User is already registered with this username")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now().Unix(),
	}
	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies the identifier (email or phone) and password, returning the
// user if valid.
func (a *PasswordAuthenticator) Login(ctx context.Context, identifier, password string) (*models.User, error) {
	user, err := a.storage.GetUserByEmail(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = a.storage.GetUserByPhone(ctx, identifier)
		if err != nil {
			return nil, err
		}
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	return user, nil
}
