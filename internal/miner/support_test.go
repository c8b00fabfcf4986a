package miner

import (
	"errors"
	"math"
	"testing"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatTolerance
}

func TestSupport_BasketScenario(t *testing.T) {
	transactions := basketTransactions()

	tests := []struct {
		name string
		set  Itemset
		want float64
	}{
		{"milk and bread", NewItemset("milk", "bread"), 2.0 / 5.0},
		{"milk", NewItemset("milk"), 3.0 / 5.0},
		{"bread", NewItemset("bread"), 4.0 / 5.0},
		{"never co-occur", NewItemset("milk", "beer"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Support(transactions, tt.set)
			if err != nil {
				t.Fatalf("Support(%s) failed: %v", tt.set, err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("Support(%s) = %v, want %v", tt.set, got, tt.want)
			}
		})
	}
}

func TestSupport_MonotoneUnderSubsets(t *testing.T) {
	transactions := basketTransactions()

	// For A a subset of B, support(A) >= support(B).
	nested := [][2]Itemset{
		{NewItemset("milk"), NewItemset("milk", "bread")},
		{NewItemset("bread"), NewItemset("bread", "diaper")},
		{NewItemset("bread", "diaper"), NewItemset("bread", "diaper", "beer")},
		{NewItemset("beer"), NewItemset("beer", "milk")},
	}

	for _, pair := range nested {
		sub, super := pair[0], pair[1]
		subSupport, err := Support(transactions, sub)
		if err != nil {
			t.Fatalf("Support(%s) failed: %v", sub, err)
		}
		superSupport, err := Support(transactions, super)
		if err != nil {
			t.Fatalf("Support(%s) failed: %v", super, err)
		}
		if subSupport < superSupport {
			t.Errorf("monotonicity violated: support(%s)=%v < support(%s)=%v",
				sub, subSupport, super, superSupport)
		}
	}
}

func TestSupport_EmptyTransactionListFailsFast(t *testing.T) {
	_, err := Support(nil, NewItemset("milk"))
	if !errors.Is(err, ErrNoTransactions) {
		t.Errorf("Support() error = %v, want ErrNoTransactions", err)
	}

	_, err = Support([]Transaction{}, NewItemset("milk"))
	if !errors.Is(err, ErrNoTransactions) {
		t.Errorf("Support() error = %v, want ErrNoTransactions", err)
	}
}

func TestSupport_EmptyTransactionsNeverMatch(t *testing.T) {
	transactions := Preprocess([]string{"", "milk bread"})

	got, err := Support(transactions, NewItemset("milk"))
	if err != nil {
		t.Fatalf("Support() failed: %v", err)
	}
	if !almostEqual(got, 0.5) {
		t.Errorf("Support({milk}) = %v, want 0.5", got)
	}
}
