// Package splitter implements the split policy engine and the balance
// reconciliation engine. Both are pure: they know nothing about storage or
// group membership, which the service layer checks before calling in.
package splitter

import (
	"sort"

	"github.com/shopspring/decimal"

	"splitzy/internal/apperr"
	"splitzy/internal/models"
	"splitzy/internal/money"
)

// percentEpsilon absorbs representation noise in percentage inputs: 33.33 three
// times sums to 99.99, which must still count as 100.
var percentEpsilon = decimal.RequireFromString("0.01")

// Share is one participant's computed portion of an expense.
type Share struct {
	UserID string
	Amount money.Money
}

// Compute divides amount among participants according to the split type.
// values carries exact rupee amounts for EXACT and percentages for PERCENTAGE;
// it must be empty for EQUAL. The returned shares always sum to amount exactly.
func Compute(amount money.Money, participants []string, splitType models.SplitType, values []decimal.Decimal) ([]Share, error) {
	if !amount.IsPositive() {
		return nil, apperr.Validation("Expense amount must be positive.")
	}
	if len(participants) == 0 {
		return nil, apperr.Validation("At least one participant is required.")
	}
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if seen[p] {
			return nil, apperr.Validation("Duplicate participant in split.")
		}
		seen[p] = true
	}

	switch splitType {
	case models.SplitEqual:
		return computeEqual(amount, participants), nil
	case models.SplitExact:
		return computeExact(amount, participants, values)
	case models.SplitPercentage:
		return computePercentage(amount, participants, values)
	default:
		return nil, apperr.Validationf("Unknown split type: %s", splitType)
	}
}

// computeEqual gives everyone the floor share and hands the leftover paise,
// one each, to the first r participants in input order.
func computeEqual(amount money.Money, participants []string) []Share {
	base, remainder := amount.Split(len(participants))
	shares := make([]Share, len(participants))
	for i, p := range participants {
		s := base
		if int64(i) < remainder {
			s = s.Add(money.FromPaise(1))
		}
		shares[i] = Share{UserID: p, Amount: s}
	}
	return shares
}

func computeExact(amount money.Money, participants []string, values []decimal.Decimal) ([]Share, error) {
	if len(values) != len(participants) {
		return nil, apperr.Validation("Participants and exact amount count mismatch.")
	}

	shares := make([]Share, len(participants))
	var total money.Money
	for i, v := range values {
		m, err := money.FromRupees(v)
		if err != nil {
			return nil, apperr.Validationf("Exact amount for %s is finer than one paisa.", participants[i])
		}
		if m.IsNegative() {
			return nil, apperr.Validationf("Exact amount for %s is negative.", participants[i])
		}
		shares[i] = Share{UserID: participants[i], Amount: m}
		total = total.Add(m)
	}

	if total != amount {
		return nil, apperr.Validation("Exact amounts do not sum to total expense.")
	}
	return shares, nil
}

func computePercentage(amount money.Money, participants []string, values []decimal.Decimal) ([]Share, error) {
	if len(values) != len(participants) {
		return nil, apperr.Validation("Participants and percentages count mismatch.")
	}

	total := decimal.Zero
	for i, v := range values {
		if v.IsNegative() {
			return nil, apperr.Validationf("Percentage for %s is negative.", participants[i])
		}
		total = total.Add(v)
	}
	if total.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(percentEpsilon) {
		return nil, apperr.Validation("Percentages must sum to 100.")
	}

	shares := make([]Share, len(participants))
	var allotted money.Money
	for i, v := range values {
		s := amount.Percent(v)
		shares[i] = Share{UserID: participants[i], Amount: s}
		allotted = allotted.Add(s)
	}

	// Flooring (and the epsilon) leave a few paise unallotted, or a few too
	// many when the sum sits above 100; reconcile so shares reconstruct the
	// amount exactly.
	distributeRemainder(shares, amount.Sub(allotted).Paise())
	return shares, nil
}

// distributeRemainder reconciles leftover paise deterministically. A positive
// remainder is spread EQUAL-style: an even portion to all, one extra paisa to
// the first few in input order. A negative remainder means the floors
// over-allotted (the percentage sum sat above 100 inside the epsilon); the
// correction comes out of the largest shares so no share ever goes below zero.
func distributeRemainder(shares []Share, remainder int64) {
	if remainder == 0 || len(shares) == 0 {
		return
	}

	if remainder > 0 {
		n := int64(len(shares))
		each, extra := remainder/n, remainder%n
		for i := range shares {
			adj := each
			if int64(i) < extra {
				adj++
			}
			shares[i].Amount = shares[i].Amount.Add(money.FromPaise(adj))
		}
		return
	}

	needed := -remainder
	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return shares[order[a]].Amount > shares[order[b]].Amount
	})
	for _, i := range order {
		if needed == 0 {
			break
		}
		take := shares[i].Amount.Paise()
		if take > needed {
			take = needed
		}
		shares[i].Amount = shares[i].Amount.Sub(money.FromPaise(take))
		needed -= take
	}
}
