// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"splitzy/internal/models"
)

// Store defines the interface for persistence operations. This abstraction
// allows swapping storage backends (SQLite, PostgreSQL, etc.) without changing
// the service layer.
//
// Get* methods return (nil, nil) when the entity does not exist; translating
// that into a not-found error is the service layer's job. Mutating methods
// that write several rows (expense + splits) do so in a single transaction.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUsersByIDs returns a map of user ID to user; missing IDs are omitted.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	// GetUsersByEmails returns a map of email to user; missing emails are omitted.
	GetUsersByEmails(ctx context.Context, emails []string) (map[string]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error

	// Groups
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	ListGroupsByUser(ctx context.Context, userID string) ([]*models.Group, error)
	AddGroupMember(ctx context.Context, groupID, userID string) error
	RemoveGroupMember(ctx context.Context, groupID, userID string) error

	// Expenses. Create and Update persist the expense together with its splits
	// atomically; Delete cascades to splits.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)
	ListExpensesByPayer(ctx context.Context, groupID, userID string) ([]*models.Expense, error)
	GetSplits(ctx context.Context, expenseID string) ([]models.Split, error)

	// Settlements
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, id string) (*models.Settlement, error)
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)
	ListSettlementsPaidBy(ctx context.Context, groupID, userID string) ([]*models.Settlement, error)
	ListSettlementsPaidTo(ctx context.Context, groupID, userID string) ([]*models.Settlement, error)
	DeleteSettlement(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
