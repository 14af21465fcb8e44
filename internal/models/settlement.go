package models

import "splitzy/internal/money"

// Settlement represents a direct payment between two group members that
// reduces what PaidBy owes PaidTo. Settlements are immutable once recorded;
// balance correction happens purely at read time when balances are recomputed.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// PaidBy is the user who paid (debtor settling up).
	PaidBy string

	// PaidTo is the user who received payment (creditor being paid).
	PaidTo string

	// Amount is the payment amount. Always positive.
	Amount money.Money

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}
