package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitzy/internal/models"
	"splitzy/internal/money"
)

// CreateExpense persists an expense together with its splits in one
// transaction. A partially written expense is never observable.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	for i := range expense.Splits {
		expense.Splits[i].ExpenseID = expense.ID
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount_paise, paid_by, split_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount.Paise(),
		expense.PaidBy, string(expense.SplitType), expense.CreatedAt,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to insert expense: %w", err))
	}

	if err := insertSplits(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// UpdateExpense rewrites an expense and replaces its splits atomically.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	for i := range expense.Splits {
		expense.Splits[i].ExpenseID = expense.ID
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE expenses SET description = ?, amount_paise = ?, paid_by = ?, split_type = ?
		 WHERE id = ?`,
		expense.Description, expense.Amount.Paise(), expense.PaidBy,
		string(expense.SplitType), expense.ID,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to update expense: %w", err))
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM expense_splits WHERE expense_id = ?", expense.ID); err != nil {
		return classify(fmt.Errorf("failed to clear prior splits: %w", err))
	}

	if err := insertSplits(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

func insertSplits(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	for _, split := range expense.Splits {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, user_id, amount_paise) VALUES (?, ?, ?)",
			split.ExpenseID, split.UserID, split.Amount.Paise(),
		)
		if err != nil {
			return classify(fmt.Errorf("failed to insert split: %w", err))
		}
	}
	return nil
}

// DeleteExpense removes an expense; its splits cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return classify(fmt.Errorf("failed to delete expense: %w", err))
	}
	return nil
}

// GetExpense retrieves an expense with its splits. Returns (nil, nil) if not
// found.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var amountPaise int64
	var splitType string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, description, amount_paise, paid_by, split_type, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.GroupID, &expense.Description, &amountPaise,
		&expense.PaidBy, &splitType, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Amount = money.FromPaise(amountPaise)
	expense.SplitType = models.SplitType(splitType)

	expense.Splits, err = s.GetSplits(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpensesByGroup retrieves all expenses of a group, newest first, each
// with its splits.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT id, group_id, description, amount_paise, paid_by, split_type, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID)
}

// ListExpensesByPayer retrieves the group's expenses paid by the given user,
// newest first.
func (s *SQLiteStore) ListExpensesByPayer(ctx context.Context, groupID, userID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT id, group_id, description, amount_paise, paid_by, split_type, created_at
		 FROM expenses WHERE group_id = ? AND paid_by = ? ORDER BY created_at DESC, id`,
		groupID, userID)
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...any) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var amountPaise int64
		var splitType string
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Description,
			&amountPaise, &expense.PaidBy, &splitType, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Amount = money.FromPaise(amountPaise)
		expense.SplitType = models.SplitType(splitType)
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		splits, err := s.GetSplits(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
		expense.Splits = splits
	}
	return expenses, nil
}

// GetSplits retrieves the splits of an expense in a stable order.
func (s *SQLiteStore) GetSplits(ctx context.Context, expenseID string) ([]models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_id, user_id, amount_paise FROM expense_splits WHERE expense_id = ? ORDER BY user_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []models.Split
	for rows.Next() {
		var split models.Split
		var amountPaise int64
		if err := rows.Scan(&split.ExpenseID, &split.UserID, &amountPaise); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		split.Amount = money.FromPaise(amountPaise)
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}
