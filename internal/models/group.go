package models

// Group represents a set of users who share expenses.
// The group owns its member list; expenses and settlements belong to exactly
// one group.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Trip", "Roommates").
	Name string

	// Members is the list of current member user IDs.
	// A member with a non-zero net balance cannot be removed.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
