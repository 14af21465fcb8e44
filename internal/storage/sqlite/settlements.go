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

// CreateSettlement persists a new settlement.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, paid_by, paid_to, amount_paise, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.GroupID, settlement.PaidBy, settlement.PaidTo,
		settlement.Amount.Paise(), settlement.CreatedAt,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to insert settlement: %w", err))
	}
	return nil
}

// GetSettlement retrieves a settlement by ID. Returns (nil, nil) if not found.
func (s *SQLiteStore) GetSettlement(ctx context.Context, id string) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var amountPaise int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, paid_by, paid_to, amount_paise, created_at
		 FROM settlements WHERE id = ?`,
		id,
	).Scan(&settlement.ID, &settlement.GroupID, &settlement.PaidBy,
		&settlement.PaidTo, &amountPaise, &settlement.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	settlement.Amount = money.FromPaise(amountPaise)
	return settlement, nil
}

// ListSettlementsByGroup retrieves all settlements for a group, newest first.
func (s *SQLiteStore) ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		`SELECT id, group_id, paid_by, paid_to, amount_paise, created_at
		 FROM settlements WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID)
}

// ListSettlementsPaidBy retrieves the group's settlements paid by the given user.
func (s *SQLiteStore) ListSettlementsPaidBy(ctx context.Context, groupID, userID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		`SELECT id, group_id, paid_by, paid_to, amount_paise, created_at
		 FROM settlements WHERE group_id = ? AND paid_by = ? ORDER BY created_at DESC, id`,
		groupID, userID)
}

// ListSettlementsPaidTo retrieves the group's settlements received by the given user.
func (s *SQLiteStore) ListSettlementsPaidTo(ctx context.Context, groupID, userID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		`SELECT id, group_id, paid_by, paid_to, amount_paise, created_at
		 FROM settlements WHERE group_id = ? AND paid_to = ? ORDER BY created_at DESC, id`,
		groupID, userID)
}

func (s *SQLiteStore) listSettlements(ctx context.Context, query string, args ...any) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var amountPaise int64
		if err := rows.Scan(&settlement.ID, &settlement.GroupID, &settlement.PaidBy,
			&settlement.PaidTo, &amountPaise, &settlement.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlement.Amount = money.FromPaise(amountPaise)
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}

// DeleteSettlement removes a settlement by ID.
func (s *SQLiteStore) DeleteSettlement(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM settlements WHERE id = ?", id)
	if err != nil {
		return classify(fmt.Errorf("failed to delete settlement: %w", err))
	}
	return nil
}
