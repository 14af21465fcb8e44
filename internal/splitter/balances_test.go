package splitter

import (
	"reflect"
	"testing"

	"splitzy/internal/money"
)

func share(user string, paise int64) Share {
	return Share{UserID: user, Amount: money.FromPaise(paise)}
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name        string
		expenses    []ExpenseForBalance
		settlements []SettlementForBalance
		want        []Balance
	}{
		{
			name: "single expense two people",
			expenses: []ExpenseForBalance{
				{PaidBy: "alice", Splits: []Share{share("alice", 5000), share("bob", 5000)}},
			},
			want: []Balance{
				{Debtor: "bob", Creditor: "alice", Amount: money.FromPaise(5000)},
			},
		},
		{
			name: "payer share never becomes a debt",
			expenses: []ExpenseForBalance{
				{PaidBy: "alice", Splits: []Share{share("alice", 10000)}},
			},
			want: nil,
		},
		{
			name: "settlement clears the debt exactly",
			expenses: []ExpenseForBalance{
				{PaidBy: "alice", Splits: []Share{share("alice", 5000), share("bob", 5000)}},
			},
			settlements: []SettlementForBalance{
				{PaidBy: "bob", PaidTo: "alice", Amount: money.FromPaise(5000)},
			},
			want: nil,
		},
		{
			name: "partial settlement leaves the remainder",
			expenses: []ExpenseForBalance{
				{PaidBy: "parth", Splits: []Share{share("parth", 15000), share("aarush", 15000)}},
			},
			settlements: []SettlementForBalance{
				{PaidBy: "aarush", PaidTo: "parth", Amount: money.FromPaise(10000)},
			},
			want: []Balance{
				{Debtor: "aarush", Creditor: "parth", Amount: money.FromPaise(5000)},
			},
		},
		{
			name: "opposite debts net into one direction",
			expenses: []ExpenseForBalance{
				{PaidBy: "alice", Splits: []Share{share("alice", 5000), share("bob", 5000)}},
				{PaidBy: "bob", Splits: []Share{share("bob", 1000), share("alice", 2000)}},
			},
			want: []Balance{
				{Debtor: "bob", Creditor: "alice", Amount: money.FromPaise(3000)},
			},
		},
		{
			name: "overpayment flips the direction",
			expenses: []ExpenseForBalance{
				{PaidBy: "alice", Splits: []Share{share("alice", 5000), share("bob", 5000)}},
			},
			settlements: []SettlementForBalance{
				{PaidBy: "bob", PaidTo: "alice", Amount: money.FromPaise(8000)},
			},
			want: []Balance{
				{Debtor: "alice", Creditor: "bob", Amount: money.FromPaise(3000)},
			},
		},
		{
			name: "three members sorted output",
			expenses: []ExpenseForBalance{
				{PaidBy: "parth", Splits: []Share{
					share("parth", 40000), share("vicky", 40000), share("aarush", 40000),
				}},
			},
			want: []Balance{
				{Debtor: "aarush", Creditor: "parth", Amount: money.FromPaise(40000)},
				{Debtor: "vicky", Creditor: "parth", Amount: money.FromPaise(40000)},
			},
		},
		{
			name: "no records",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBalances(tt.expenses, tt.settlements)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ComputeBalances() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Balances must not depend on the order records are processed in.
func TestComputeBalancesOrderIndependent(t *testing.T) {
	expenses := []ExpenseForBalance{
		{PaidBy: "a", Splits: []Share{share("a", 3334), share("b", 3333), share("c", 3333)}},
		{PaidBy: "b", Splits: []Share{share("b", 2500), share("c", 2500)}},
		{PaidBy: "c", Splits: []Share{share("a", 1200), share("c", 800)}},
	}
	settlements := []SettlementForBalance{
		{PaidBy: "b", PaidTo: "a", Amount: money.FromPaise(1000)},
		{PaidBy: "c", PaidTo: "a", Amount: money.FromPaise(2000)},
	}

	want := ComputeBalances(expenses, settlements)

	reversedExpenses := []ExpenseForBalance{expenses[2], expenses[1], expenses[0]}
	reversedSettlements := []SettlementForBalance{settlements[1], settlements[0]}
	got := ComputeBalances(reversedExpenses, reversedSettlements)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("reordered input changed balances:\n got %+v\nwant %+v", got, want)
	}
}

func TestFilterByUser(t *testing.T) {
	balances := []Balance{
		{Debtor: "a", Creditor: "b", Amount: money.FromPaise(100)},
		{Debtor: "b", Creditor: "c", Amount: money.FromPaise(200)},
		{Debtor: "c", Creditor: "d", Amount: money.FromPaise(300)},
	}

	got := FilterByUser(balances, "b")
	if len(got) != 2 {
		t.Fatalf("FilterByUser returned %d balances, want 2", len(got))
	}
	if got[0].Creditor != "b" || got[1].Debtor != "b" {
		t.Errorf("unexpected balances: %+v", got)
	}

	if out := FilterByUser(balances, "nobody"); out != nil {
		t.Errorf("expected nil for uninvolved user, got %+v", out)
	}
}

func TestFilterBetween(t *testing.T) {
	balances := []Balance{
		{Debtor: "a", Creditor: "b", Amount: money.FromPaise(100)},
		{Debtor: "b", Creditor: "c", Amount: money.FromPaise(200)},
	}

	got := FilterBetween(balances, "b", "a")
	if len(got) != 1 || got[0].Debtor != "a" || got[0].Creditor != "b" {
		t.Fatalf("FilterBetween(b, a) = %+v, want the a->b balance", got)
	}

	if out := FilterBetween(balances, "a", "c"); out != nil {
		t.Errorf("expected nil for unrelated pair, got %+v", out)
	}
}
