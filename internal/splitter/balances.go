package splitter

import (
	"sort"

	"splitzy/internal/money"
)

// ExpenseForBalance carries the minimal expense information needed for
// balance computation.
type ExpenseForBalance struct {
	PaidBy string
	Splits []Share
}

// SettlementForBalance carries the minimal settlement information needed for
// balance computation.
type SettlementForBalance struct {
	PaidBy string
	PaidTo string
	Amount money.Money
}

// Balance is the net amount one member owes another after netting
// opposite-direction debts. Amount is always positive.
type Balance struct {
	Debtor   string
	Creditor string
	Amount   money.Money
}

// ComputeBalances aggregates all expenses and settlements of a group into net
// pairwise balances.
//
// For every split where the participant is not the payer, the participant owes
// the payer that share. Every settlement reduces what its payer owes its
// receiver. Opposite-direction debts between the same pair net into a single
// signed value; zero-net pairs are dropped. Accumulation is integer addition,
// so the result is independent of input order; the output is sorted by
// (debtor, creditor) so it is also deterministic to iterate.
func ComputeBalances(expenses []ExpenseForBalance, settlements []SettlementForBalance) []Balance {
	// owed[debtor][creditor] = accumulated amount
	owed := make(map[string]map[string]money.Money)
	accrue := func(debtor, creditor string, amount money.Money) {
		if owed[debtor] == nil {
			owed[debtor] = make(map[string]money.Money)
		}
		owed[debtor][creditor] = owed[debtor][creditor].Add(amount)
	}

	for _, e := range expenses {
		for _, s := range e.Splits {
			if s.UserID != e.PaidBy {
				accrue(s.UserID, e.PaidBy, s.Amount)
			}
		}
	}
	for _, s := range settlements {
		accrue(s.PaidBy, s.PaidTo, s.Amount.Neg())
	}

	var balances []Balance
	for debtor, row := range owed {
		for creditor, amount := range row {
			// Visit each unordered pair once, from the lexically smaller side,
			// and net the reverse direction into it.
			if debtor > creditor {
				if _, ok := owed[creditor][debtor]; ok {
					continue
				}
			} else if reverse, ok := owed[creditor][debtor]; ok {
				amount = amount.Sub(reverse)
			}

			switch {
			case amount.IsPositive():
				balances = append(balances, Balance{Debtor: debtor, Creditor: creditor, Amount: amount})
			case amount.IsNegative():
				balances = append(balances, Balance{Debtor: creditor, Creditor: debtor, Amount: amount.Neg()})
			}
		}
	}

	sort.Slice(balances, func(i, j int) bool {
		if balances[i].Debtor != balances[j].Debtor {
			return balances[i].Debtor < balances[j].Debtor
		}
		return balances[i].Creditor < balances[j].Creditor
	})
	return balances
}

// FilterByUser keeps only balances that involve the given user.
func FilterByUser(balances []Balance, userID string) []Balance {
	var out []Balance
	for _, b := range balances {
		if b.Debtor == userID || b.Creditor == userID {
			out = append(out, b)
		}
	}
	return out
}

// FilterBetween keeps only the balance between the two given users. At most
// one balance survives, since pairs are netted into a single direction.
func FilterBetween(balances []Balance, userA, userB string) []Balance {
	var out []Balance
	for _, b := range balances {
		if (b.Debtor == userA && b.Creditor == userB) || (b.Debtor == userB && b.Creditor == userA) {
			out = append(out, b)
		}
	}
	return out
}
