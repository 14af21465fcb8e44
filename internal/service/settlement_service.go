package service

import (
	"context"
	"log/slog"

	"splitzy/internal/apperr"
	"splitzy/internal/models"
	"splitzy/internal/money"
	"splitzy/internal/storage"
)

// SettlementService records and lists payments between group members.
// Settlements are immutable: they can be created, listed and deleted, never
// edited. Balances absorb them at read time.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage
// backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// Create records a payment from paidBy to paidTo. Partial settlements are
// allowed; the amount is not checked against the outstanding balance, which
// is corrected purely by recomputation on the next balance read.
func (s *SettlementService) Create(ctx context.Context, groupID, paidBy, paidTo string, amount money.Money) (*models.Settlement, error) {
	if paidBy == paidTo {
		return nil, apperr.Validation("Payer and Payee cannot be the same user")
	}
	if !amount.IsPositive() {
		return nil, apperr.Validation("Settlement amount must be positive")
	}

	group, err := getGroup(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	payer, err := s.store.GetUser(ctx, paidBy)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if payer == nil {
		return nil, apperr.NotFound("Payer not found")
	}
	payee, err := s.store.GetUser(ctx, paidTo)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if payee == nil {
		return nil, apperr.NotFound("Payee not found")
	}

	members := memberSet(group)
	if !members[paidBy] || !members[paidTo] {
		return nil, apperr.Validation("Both parties must be members of the group")
	}

	settlement := &models.Settlement{
		GroupID: groupID,
		PaidBy:  paidBy,
		PaidTo:  paidTo,
		Amount:  amount,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, storeErr(err)
	}

	slog.Info("Settlement recorded",
		"group_id", groupID,
		"settlement_id", settlement.ID,
		"paid_by", paidBy,
		"paid_to", paidTo,
		"amount", amount,
	)
	return settlement, nil
}

// ListByGroup returns all settlements of the group, newest first.
func (s *SettlementService) ListByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	if _, err := getGroup(ctx, s.store, groupID); err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return settlements, nil
}

// ListPaidBy returns the group's settlements paid by the given user.
func (s *SettlementService) ListPaidBy(ctx context.Context, groupID, userID string) ([]*models.Settlement, error) {
	if _, err := getGroup(ctx, s.store, groupID); err != nil {
		return nil, err
	}
	if user, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, apperr.Store(err)
	} else if user == nil {
		return nil, apperr.NotFound("Payer not found")
	}

	settlements, err := s.store.ListSettlementsPaidBy(ctx, groupID, userID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return settlements, nil
}

// ListPaidTo returns the group's settlements received by the given user.
func (s *SettlementService) ListPaidTo(ctx context.Context, groupID, userID string) ([]*models.Settlement, error) {
	if _, err := getGroup(ctx, s.store, groupID); err != nil {
		return nil, err
	}
	if user, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, apperr.Store(err)
	} else if user == nil {
		return nil, apperr.NotFound("Payee not found")
	}

	settlements, err := s.store.ListSettlementsPaidTo(ctx, groupID, userID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return settlements, nil
}

// Delete removes a settlement (the undo for a mistakenly recorded payment).
func (s *SettlementService) Delete(ctx context.Context, groupID, settlementID string) error {
	if _, err := getGroup(ctx, s.store, groupID); err != nil {
		return err
	}
	settlement, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return apperr.Store(err)
	}
	if settlement == nil || settlement.GroupID != groupID {
		return apperr.NotFound("Settlement not found")
	}

	if err := s.store.DeleteSettlement(ctx, settlementID); err != nil {
		return storeErr(err)
	}

	slog.Info("Settlement deleted", "group_id", groupID, "settlement_id", settlementID)
	return nil
}
