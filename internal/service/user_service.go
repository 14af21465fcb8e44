package service

import (
	"context"
	"log/slog"

	"splitzy/internal/apperr"
	"splitzy/internal/models"
	"splitzy/internal/storage"
)

// UserService implements user profile operations.
type UserService struct {
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return getUser(ctx, s.store, userID)
}

// UpdateUser changes the mutable profile fields (username and phone). Email
// and ID are immutable.
func (s *UserService) UpdateUser(ctx context.Context, userID, username, phone string) (*models.User, error) {
	user, err := getUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	if username != "" && username != user.Username {
		existing, err := s.store.GetUserByUsername(ctx, username)
		if err != nil {
			return nil, apperr.Store(err)
		}
		if existing != nil {
			return nil, apperr.Validation("User is already registered with this username")
		}
		user.Username = username
	}
	if phone != "" && phone != user.Phone {
		existing, err := s.store.GetUserByPhone(ctx, phone)
		if err != nil {
			return nil, apperr.Store(err)
		}
		if existing != nil {
			return nil, apperr.Validation("User is already registered with this number")
		}
		user.Phone = phone
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, storeErr(err)
	}

	slog.Info("User updated", "user_id", userID)
	return user, nil
}

// DeleteUser removes an account. Deletion is blocked while the user carries a
// non-zero net balance in any of their groups; expense history referencing
// the user is preserved either way.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := getUser(ctx, s.store, userID); err != nil {
		return err
	}

	groups, err := s.store.ListGroupsByUser(ctx, userID)
	if err != nil {
		return apperr.Store(err)
	}
	for _, g := range groups {
		outstanding, err := hasOutstandingBalance(ctx, s.store, g.ID, userID)
		if err != nil {
			return err
		}
		if outstanding {
			return apperr.Validation("Cannot remove user with unsettled balances.")
		}
	}

	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return storeErr(err)
	}

	slog.Info("User deleted", "user_id", userID)
	return nil
}

// ResolveIDs maps email addresses to user IDs, in input order. Any unknown
// email fails the whole request so the caller can correct it.
func (s *UserService) ResolveIDs(ctx context.Context, emails []string) ([]string, error) {
	if len(emails) == 0 {
		return nil, apperr.Validation("At least one email is required.")
	}

	users, err := s.store.GetUsersByEmails(ctx, emails)
	if err != nil {
		return nil, apperr.Store(err)
	}

	ids := make([]string, len(emails))
	for i, email := range emails {
		user, ok := users[email]
		if !ok {
			return nil, apperr.NotFound("User not found: " + email)
		}
		ids[i] = user.ID
	}
	return ids, nil
}
