package models

// User represents a registered user account.
// Identity is immutable once created; other entities reference users by ID only.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the display name (unique).
	Username string

	// Email is the user's email address (unique). Used for login and for
	// resolving invitees to user IDs when adding group members.
	Email string

	// Phone is the user's phone number (unique). Login works by email or phone.
	Phone string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
