package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"splitzy/internal/models"
)

const userColumns = "id, username, email, phone, password_hash, created_at"

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Phone, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user, generating ID and CreatedAt if unset.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.Phone, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to create user: %w", err))
	}
	return nil
}

// GetUser retrieves a user by ID. Returns (nil, nil) if not found.
func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email. Returns (nil, nil) if not found.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetUserByPhone retrieves a user by phone number. Returns (nil, nil) if not found.
func (s *SQLiteStore) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE phone = ?", phone))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by phone: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username. Returns (nil, nil) if not found.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// GetUsersByIDs retrieves multiple users keyed by ID. Missing IDs are omitted.
func (s *SQLiteStore) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User)
	err := s.queryUsersIn(ctx, "id", ids, func(u *models.User) {
		users[u.ID] = u
	})
	return users, err
}

// GetUsersByEmails retrieves multiple users keyed by email. Missing emails are
// omitted.
func (s *SQLiteStore) GetUsersByEmails(ctx context.Context, emails []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User)
	err := s.queryUsersIn(ctx, "email", emails, func(u *models.User) {
		users[u.Email] = u
	})
	return users, err
}

func (s *SQLiteStore) queryUsersIn(ctx context.Context, column string, keys []string, collect func(*models.User)) error {
	if len(keys) == 0 {
		return nil
	}

	placeholders := strings.Repeat(", ?", len(keys))[2:]
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+column+" IN ("+placeholders+")", args...)
	if err != nil {
		return fmt.Errorf("failed to query users by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Phone, &user.PasswordHash, &user.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan user: %w", err)
		}
		collect(user)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate users: %w", err)
	}
	return nil
}

// UpdateUser updates the mutable fields of a user (username and phone).
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE users SET username = ?, phone = ? WHERE id = ?",
		user.Username, user.Phone, user.ID,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to update user: %w", err))
	}
	return nil
}

// DeleteUser removes a user row. Group memberships cascade; expense and
// settlement history keeps referencing the ID.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return classify(fmt.Errorf("failed to delete user: %w", err))
	}
	return nil
}
