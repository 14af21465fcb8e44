// Package service implements the business rules on top of storage.Store:
// membership validation, split computation, balance reconciliation, and the
// dues checks that guard destructive operations.
package service

import (
	"context"
	"fmt"

	"splitzy/internal/apperr"
	"splitzy/internal/models"
	"splitzy/internal/splitter"
	"splitzy/internal/storage"
)

// getGroup loads a group or returns a not-found error.
func getGroup(ctx context.Context, store storage.Store, groupID string) (*models.Group, error) {
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if group == nil {
		return nil, apperr.NotFound("Group not found")
	}
	return group, nil
}

// getUser loads a user or returns a not-found error.
func getUser(ctx context.Context, store storage.Store, userID string) (*models.User, error) {
	user, err := store.GetUser(ctx, userID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

// memberSet builds a lookup of the group's current members.
func memberSet(group *models.Group) map[string]bool {
	members := make(map[string]bool, len(group.Members))
	for _, m := range group.Members {
		members[m] = true
	}
	return members
}

// computeGroupBalances loads the group's expenses and settlements and nets
// them into pairwise balances. Balances are always derived like this, never
// read from a stored total.
func computeGroupBalances(ctx context.Context, store storage.Store, groupID string) ([]splitter.Balance, error) {
	expenses, err := store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	settlements, err := store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, apperr.Store(err)
	}

	forBalance := make([]splitter.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		shares := make([]splitter.Share, len(e.Splits))
		for j, s := range e.Splits {
			shares[j] = splitter.Share{UserID: s.UserID, Amount: s.Amount}
		}
		forBalance[i] = splitter.ExpenseForBalance{PaidBy: e.PaidBy, Splits: shares}
	}

	settlementsForBalance := make([]splitter.SettlementForBalance, len(settlements))
	for i, s := range settlements {
		settlementsForBalance[i] = splitter.SettlementForBalance{
			PaidBy: s.PaidBy,
			PaidTo: s.PaidTo,
			Amount: s.Amount,
		}
	}

	return splitter.ComputeBalances(forBalance, settlementsForBalance), nil
}

// hasOutstandingBalance reports whether the user appears in any non-zero
// balance of the group.
func hasOutstandingBalance(ctx context.Context, store storage.Store, groupID, userID string) (bool, error) {
	balances, err := computeGroupBalances(ctx, store, groupID)
	if err != nil {
		return false, err
	}
	return len(splitter.FilterByUser(balances, userID)) > 0, nil
}

// renderBalance builds the display string the client shows for a balance,
// e.g. "Aarush owes Parth ₹150.00". Unknown users (deleted accounts) fall
// back to their ID.
func renderBalance(b splitter.Balance, users map[string]*models.User) string {
	name := func(id string) string {
		if u, ok := users[id]; ok {
			return u.Username
		}
		return id
	}
	return fmt.Sprintf("%s owes %s %s", name(b.Debtor), name(b.Creditor), b.Amount)
}
