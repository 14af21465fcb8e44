package splitter

import (
	"testing"

	"github.com/shopspring/decimal"

	"splitzy/internal/apperr"
	"splitzy/internal/models"
	"splitzy/internal/money"
)

func dec(t *testing.T, strs ...string) []decimal.Decimal {
	t.Helper()
	out := make([]decimal.Decimal, len(strs))
	for i, s := range strs {
		d, err := decimal.NewFromString(s)
		if err != nil {
			t.Fatalf("bad decimal %q: %v", s, err)
		}
		out[i] = d
	}
	return out
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		amount       int64 // paise
		participants []string
		splitType    models.SplitType
		values       []string
		wantErr      bool
		wantKind     apperr.Kind
		validateFunc func(t *testing.T, shares []Share)
	}{
		{
			name:         "equal split even",
			amount:       10000,
			participants: []string{"a", "b"},
			splitType:    models.SplitEqual,
			validateFunc: func(t *testing.T, shares []Share) {
				for _, s := range shares {
					if s.Amount.Paise() != 5000 {
						t.Errorf("%s share = %d, want 5000", s.UserID, s.Amount.Paise())
					}
				}
			},
		},
		{
			name:         "equal split 100 by 3 gives extra paisa to first",
			amount:       10000,
			participants: []string{"a", "b", "c"},
			splitType:    models.SplitEqual,
			validateFunc: func(t *testing.T, shares []Share) {
				want := []int64{3334, 3333, 3333}
				for i, s := range shares {
					if s.Amount.Paise() != want[i] {
						t.Errorf("share[%d] = %d, want %d", i, s.Amount.Paise(), want[i])
					}
				}
			},
		},
		{
			name:         "equal split remainder follows input order not user id",
			amount:       10001,
			participants: []string{"zed", "amy"},
			splitType:    models.SplitEqual,
			validateFunc: func(t *testing.T, shares []Share) {
				if shares[0].UserID != "zed" || shares[0].Amount.Paise() != 5001 {
					t.Errorf("first share = %s:%d, want zed:5001", shares[0].UserID, shares[0].Amount.Paise())
				}
				if shares[1].Amount.Paise() != 5000 {
					t.Errorf("second share = %d, want 5000", shares[1].Amount.Paise())
				}
			},
		},
		{
			name:         "exact split happy path",
			amount:       10000,
			participants: []string{"a", "b"},
			splitType:    models.SplitExact,
			values:       []string{"60", "40"},
			validateFunc: func(t *testing.T, shares []Share) {
				if shares[0].Amount.Paise() != 6000 || shares[1].Amount.Paise() != 4000 {
					t.Errorf("shares = %d,%d, want 6000,4000", shares[0].Amount.Paise(), shares[1].Amount.Paise())
				}
			},
		},
		{
			name:         "exact split sum mismatch",
			amount:       10000,
			participants: []string{"a", "b"},
			splitType:    models.SplitExact,
			values:       []string{"60", "39"},
			wantErr:      true,
			wantKind:     apperr.KindValidation,
		},
		{
			name:         "exact split count mismatch",
			amount:       10000,
			participants: []string{"a", "b", "c"},
			splitType:    models.SplitExact,
			values:       []string{"60", "40"},
			wantErr:      true,
			wantKind:     apperr.KindValidation,
		},
		{
			name:         "percentage split happy path",
			amount:       20000,
			participants: []string{"a", "b", "c", "d"},
			splitType:    models.SplitPercentage,
			values:       []string{"40", "30", "20", "10"},
			validateFunc: func(t *testing.T, shares []Share) {
				want := []int64{8000, 6000, 4000, 2000}
				for i, s := range shares {
					if s.Amount.Paise() != want[i] {
						t.Errorf("share[%d] = %d, want %d", i, s.Amount.Paise(), want[i])
					}
				}
			},
		},
		{
			name:         "percentage thirds within epsilon",
			amount:       10000,
			participants: []string{"a", "b", "c"},
			splitType:    models.SplitPercentage,
			values:       []string{"33.33", "33.33", "33.34"},
			validateFunc: func(t *testing.T, shares []Share) {
				// floors: 3333+3333+3334 = 10000, nothing left over
				want := []int64{3333, 3333, 3334}
				for i, s := range shares {
					if s.Amount.Paise() != want[i] {
						t.Errorf("share[%d] = %d, want %d", i, s.Amount.Paise(), want[i])
					}
				}
			},
		},
		{
			name:         "percentage 99.99 sum accepted, remainder distributed",
			amount:       10000,
			participants: []string{"a", "b", "c"},
			splitType:    models.SplitPercentage,
			values:       []string{"33.33", "33.33", "33.33"},
			validateFunc: func(t *testing.T, shares []Share) {
				// floors: 3333 each = 9999; extra paisa goes to the first
				want := []int64{3334, 3333, 3333}
				for i, s := range shares {
					if s.Amount.Paise() != want[i] {
						t.Errorf("share[%d] = %d, want %d", i, s.Amount.Paise(), want[i])
					}
				}
			},
		},
		{
			name:         "percentage sum just over 100 keeps zero share non-negative",
			amount:       10000,
			participants: []string{"a", "b"},
			splitType:    models.SplitPercentage,
			values:       []string{"0", "100.01"},
			validateFunc: func(t *testing.T, shares []Share) {
				// floors: 0 + 10001 over-allot by one paisa; the correction
				// must come from b, not push a negative.
				want := []int64{0, 10000}
				for i, s := range shares {
					if s.Amount.IsNegative() {
						t.Errorf("share[%d] = %d, negative share", i, s.Amount.Paise())
					}
					if s.Amount.Paise() != want[i] {
						t.Errorf("share[%d] = %d, want %d", i, s.Amount.Paise(), want[i])
					}
				}
			},
		},
		{
			name:         "percentage sum just over 100 trims the largest share",
			amount:       10000,
			participants: []string{"a", "b", "c"},
			splitType:    models.SplitPercentage,
			values:       []string{"33.34", "33.34", "33.33"},
			validateFunc: func(t *testing.T, shares []Share) {
				// floors: 3334+3334+3333 = 10001; the extra paisa comes off
				// the first of the largest shares.
				want := []int64{3333, 3334, 3333}
				for i, s := range shares {
					if s.Amount.Paise() != want[i] {
						t.Errorf("share[%d] = %d, want %d", i, s.Amount.Paise(), want[i])
					}
				}
			},
		},
		{
			name:         "percentage sum not 100",
			amount:       10000,
			participants: []string{"a", "b"},
			splitType:    models.SplitPercentage,
			values:       []string{"70", "20"},
			wantErr:      true,
			wantKind:     apperr.KindValidation,
		},
		{
			name:         "percentage count mismatch",
			amount:       10000,
			participants: []string{"a", "b"},
			splitType:    models.SplitPercentage,
			values:       []string{"100"},
			wantErr:      true,
			wantKind:     apperr.KindValidation,
		},
		{
			name:         "no participants",
			amount:       10000,
			participants: nil,
			splitType:    models.SplitEqual,
			wantErr:      true,
			wantKind:     apperr.KindValidation,
		},
		{
			name:         "duplicate participants",
			amount:       10000,
			participants: []string{"a", "a"},
			splitType:    models.SplitEqual,
			wantErr:      true,
			wantKind:     apperr.KindValidation,
		},
		{
			name:         "zero amount",
			amount:       0,
			participants: []string{"a"},
			splitType:    models.SplitEqual,
			wantErr:      true,
			wantKind:     apperr.KindValidation,
		},
		{
			name:         "unknown split type",
			amount:       10000,
			participants: []string{"a"},
			splitType:    models.SplitType("HALFSIES"),
			wantErr:      true,
			wantKind:     apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var values []decimal.Decimal
			if tt.values != nil {
				values = dec(t, tt.values...)
			}

			shares, err := Compute(money.FromPaise(tt.amount), tt.participants, tt.splitType, values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Compute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if got := apperr.KindOf(err); got != tt.wantKind {
					t.Errorf("error kind = %v, want %v", got, tt.wantKind)
				}
				return
			}

			// Shares must always reconstruct the amount exactly.
			var sum money.Money
			for _, s := range shares {
				sum = sum.Add(s.Amount)
			}
			if sum.Paise() != tt.amount {
				t.Errorf("splits sum to %d, want %d", sum.Paise(), tt.amount)
			}

			if tt.validateFunc != nil {
				tt.validateFunc(t, shares)
			}
		})
	}
}

// Equal shares may differ by at most one paisa between any two participants.
func TestComputeEqualMaxSpread(t *testing.T) {
	participants := []string{"a", "b", "c", "d", "e", "f", "g"}
	for _, amount := range []int64{1, 99, 700, 10001, 999999} {
		shares, err := Compute(money.FromPaise(amount), participants, models.SplitEqual, nil)
		if err != nil {
			t.Fatalf("Compute(%d) failed: %v", amount, err)
		}
		min, max := shares[0].Amount, shares[0].Amount
		for _, s := range shares {
			if s.Amount < min {
				min = s.Amount
			}
			if s.Amount > max {
				max = s.Amount
			}
		}
		if max.Sub(min).Paise() > 1 {
			t.Errorf("amount %d: share spread %d paise, want at most 1", amount, max.Sub(min).Paise())
		}
	}
}
