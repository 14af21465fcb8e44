package models

import "splitzy/internal/money"

// SplitType selects the policy used to divide an expense among participants.
type SplitType string

const (
	// SplitEqual divides the amount evenly, leftover paise going to the first
	// participants in input order.
	SplitEqual SplitType = "EQUAL"

	// SplitExact uses caller-provided rupee amounts that must sum to the total.
	SplitExact SplitType = "EXACT"

	// SplitPercentage uses caller-provided percentages that must sum to 100.
	SplitPercentage SplitType = "PERCENTAGE"
)

// Valid reports whether t is a known split type.
func (t SplitType) Valid() bool {
	switch t {
	case SplitEqual, SplitExact, SplitPercentage:
		return true
	}
	return false
}

// Expense represents a shared cost paid by one group member.
// An expense is created atomically with its splits; editing recomputes and
// replaces the splits, deleting cascades to them.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is the human-readable label (e.g., "Dinner", "Cab").
	Description string

	// Amount is the total expense amount.
	Amount money.Money

	// PaidBy is the user ID of the member who paid.
	PaidBy string

	// SplitType is the policy the splits were computed with.
	SplitType SplitType

	// Splits are the per-participant shares. Invariant: they sum to Amount
	// exactly.
	Splits []Split

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Split is one participant's share of an expense.
type Split struct {
	// ExpenseID is the expense this split belongs to.
	ExpenseID string

	// UserID is the participant who owes this share.
	UserID string

	// Amount is the participant's share.
	Amount money.Money
}
