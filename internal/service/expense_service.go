package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"splitzy/internal/apperr"
	"splitzy/internal/models"
	"splitzy/internal/money"
	"splitzy/internal/splitter"
	"splitzy/internal/storage"
)

// filterByPayerOnly preserves the product behavior that a member's expense
// list ("My Expenses") contains only expenses they paid for, not expenses
// they merely participated in. Kept as a named policy rather than silently
// generalized.
const filterByPayerOnly = true

// ExpenseInput carries the caller-provided fields for creating or editing an
// expense. Values holds exact rupee amounts for EXACT splits and percentages
// for PERCENTAGE splits.
type ExpenseInput struct {
	Description  string
	Amount       money.Money
	PaidBy       string
	Participants []string
	SplitType    models.SplitType
	Values       []decimal.Decimal
}

// GroupBalance is one net pairwise balance with the rendered string the
// client displays.
type GroupBalance struct {
	Debtor   string
	Creditor string
	Amount   money.Money
	Display  string
}

// ExpenseService implements the expense ledger and the balance views.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// validateForGroup checks the input against the group's current membership
// and computes the splits. Nothing is persisted here.
func (s *ExpenseService) validateForGroup(ctx context.Context, groupID string, in ExpenseInput) ([]splitter.Share, error) {
	if !in.SplitType.Valid() {
		return nil, apperr.Validationf("Unknown split type: %s", in.SplitType)
	}

	group, err := getGroup(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	members := memberSet(group)

	if in.PaidBy == "" {
		return nil, apperr.Validation("Payer is required.")
	}
	if !members[in.PaidBy] {
		return nil, apperr.Validation("Payer is not a member of the group.")
	}
	for _, p := range in.Participants {
		if !members[p] {
			return nil, apperr.Validationf("Participant %s is not a member of the group.", p)
		}
	}

	return splitter.Compute(in.Amount, in.Participants, in.SplitType, in.Values)
}

// AddExpense validates the input, computes the splits, and persists the
// expense with its splits atomically.
func (s *ExpenseService) AddExpense(ctx context.Context, groupID string, in ExpenseInput) (*models.Expense, error) {
	shares, err := s.validateForGroup(ctx, groupID, in)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     groupID,
		Description: in.Description,
		Amount:      in.Amount,
		PaidBy:      in.PaidBy,
		SplitType:   in.SplitType,
		Splits:      sharesToSplits(shares),
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, storeErr(err)
	}

	slog.Info("Expense added",
		"group_id", groupID,
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"split_type", expense.SplitType,
		"participants", len(shares),
	)
	return expense, nil
}

// EditExpense re-validates and recomputes splits from scratch using the same
// rules as creation, then replaces the stored expense and splits atomically.
func (s *ExpenseService) EditExpense(ctx context.Context, groupID, expenseID string, in ExpenseInput) (*models.Expense, error) {
	existing, err := s.getGroupExpense(ctx, groupID, expenseID)
	if err != nil {
		return nil, err
	}

	shares, err := s.validateForGroup(ctx, groupID, in)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ID:          existing.ID,
		GroupID:     groupID,
		Description: in.Description,
		Amount:      in.Amount,
		PaidBy:      in.PaidBy,
		SplitType:   in.SplitType,
		Splits:      sharesToSplits(shares),
		CreatedAt:   existing.CreatedAt,
	}
	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, storeErr(err)
	}

	slog.Info("Expense edited", "group_id", groupID, "expense_id", expenseID)
	return expense, nil
}

// DeleteExpense removes an expense and its splits.
func (s *ExpenseService) DeleteExpense(ctx context.Context, groupID, expenseID string) error {
	if _, err := s.getGroupExpense(ctx, groupID, expenseID); err != nil {
		return err
	}
	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return storeErr(err)
	}

	slog.Info("Expense deleted", "group_id", groupID, "expense_id", expenseID)
	return nil
}

// ListByGroup returns all expenses of the group, newest first.
func (s *ExpenseService) ListByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	if _, err := getGroup(ctx, s.store, groupID); err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return expenses, nil
}

// ListByUser returns the group's expenses associated with the user. Under the
// filterByPayerOnly policy that means expenses the user paid for.
func (s *ExpenseService) ListByUser(ctx context.Context, groupID, userID string) ([]*models.Expense, error) {
	if _, err := getGroup(ctx, s.store, groupID); err != nil {
		return nil, err
	}
	if _, err := getUser(ctx, s.store, userID); err != nil {
		return nil, err
	}

	if filterByPayerOnly {
		expenses, err := s.store.ListExpensesByPayer(ctx, groupID, userID)
		if err != nil {
			return nil, apperr.Store(err)
		}
		return expenses, nil
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	var involved []*models.Expense
	for _, e := range expenses {
		for _, sp := range e.Splits {
			if sp.UserID == userID {
				involved = append(involved, e)
				break
			}
		}
	}
	return involved, nil
}

// SplitDetail is a split with the participant's username resolved for
// display. Username falls back to the ID for deleted accounts.
type SplitDetail struct {
	UserID   string
	Username string
	Amount   money.Money
}

// GetSplits returns the splits of an expense with usernames resolved.
func (s *ExpenseService) GetSplits(ctx context.Context, groupID, expenseID string) ([]SplitDetail, error) {
	if _, err := s.getGroupExpense(ctx, groupID, expenseID); err != nil {
		return nil, err
	}
	splits, err := s.store.GetSplits(ctx, expenseID)
	if err != nil {
		return nil, apperr.Store(err)
	}

	ids := make([]string, len(splits))
	for i, sp := range splits {
		ids[i] = sp.UserID
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Store(err)
	}

	details := make([]SplitDetail, len(splits))
	for i, sp := range splits {
		d := SplitDetail{UserID: sp.UserID, Username: sp.UserID, Amount: sp.Amount}
		if u, ok := users[sp.UserID]; ok {
			d.Username = u.Username
		}
		details[i] = d
	}
	return details, nil
}

// GetBalances nets all expenses and settlements of the group into pairwise
// balances, rendered with usernames.
func (s *ExpenseService) GetBalances(ctx context.Context, groupID string) ([]GroupBalance, error) {
	if _, err := getGroup(ctx, s.store, groupID); err != nil {
		return nil, err
	}
	balances, err := computeGroupBalances(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, balances)
}

// GetUserBalance returns the group balances that involve the given user.
func (s *ExpenseService) GetUserBalance(ctx context.Context, groupID, userID string) ([]GroupBalance, error) {
	if _, err := getGroup(ctx, s.store, groupID); err != nil {
		return nil, err
	}
	if _, err := getUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	balances, err := computeGroupBalances(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, splitter.FilterByUser(balances, userID))
}

// GetBalanceBetween returns the net balance between two users in the group:
// at most one entry, or none when the pair is square.
func (s *ExpenseService) GetBalanceBetween(ctx context.Context, groupID, userA, userB string) ([]GroupBalance, error) {
	if _, err := getGroup(ctx, s.store, groupID); err != nil {
		return nil, err
	}
	if _, err := getUser(ctx, s.store, userA); err != nil {
		return nil, err
	}
	if _, err := getUser(ctx, s.store, userB); err != nil {
		return nil, err
	}
	balances, err := computeGroupBalances(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, splitter.FilterBetween(balances, userA, userB))
}

func (s *ExpenseService) render(ctx context.Context, balances []splitter.Balance) ([]GroupBalance, error) {
	ids := make([]string, 0, len(balances)*2)
	for _, b := range balances {
		ids = append(ids, b.Debtor, b.Creditor)
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Store(err)
	}

	out := make([]GroupBalance, len(balances))
	for i, b := range balances {
		out[i] = GroupBalance{
			Debtor:   b.Debtor,
			Creditor: b.Creditor,
			Amount:   b.Amount,
			Display:  renderBalance(b, users),
		}
	}
	return out, nil
}

// getGroupExpense loads an expense and checks it belongs to the group.
func (s *ExpenseService) getGroupExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error) {
	if _, err := getGroup(ctx, s.store, groupID); err != nil {
		return nil, err
	}
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if expense == nil || expense.GroupID != groupID {
		return nil, apperr.NotFound("Expense not found")
	}
	return expense, nil
}

func sharesToSplits(shares []splitter.Share) []models.Split {
	splits := make([]models.Split, len(shares))
	for i, sh := range shares {
		splits[i] = models.Split{UserID: sh.UserID, Amount: sh.Amount}
	}
	return splits
}

// storeErr keeps conflict classifications from the store and wraps everything
// else as an opaque storage failure.
func storeErr(err error) error {
	if apperr.KindOf(err) == apperr.KindConflict {
		return err
	}
	return apperr.Store(err)
}
