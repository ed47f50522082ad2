package core

import (
	"reflect"
	"testing"
)

func TestAggregateByCard(t *testing.T) {
	rows := []Transaction{
		{CardNumber: "*1111", OperationAmount: -100, Cashback: 5},
		{CardNumber: "", OperationAmount: -50},
	}
	got := AggregateByCard(rows)
	want := []CardSummary{
		{LastDigits: "*1111", TotalSpent: -100, Cashback: 5},
		{LastDigits: UnknownCard, TotalSpent: -50, Cashback: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestAggregateByCardExcludesNonNegative(t *testing.T) {
	rows := []Transaction{
		{CardNumber: "*2245", OperationAmount: -120.5, Cashback: 1},
		{CardNumber: "*2245", OperationAmount: 5000}, // income, ignored
		{CardNumber: "*2245", OperationAmount: 0},    // zero is not spend
		{CardNumber: "*2245", OperationAmount: -79.5, Cashback: 2},
	}
	got := AggregateByCard(rows)
	if len(got) != 1 {
		t.Fatalf("expected a single group, got %d", len(got))
	}
	if got[0].TotalSpent != -200 || got[0].Cashback != 3 {
		t.Fatalf("bad sums: %+v", got[0])
	}
}

func TestAggregateByCardSumProperty(t *testing.T) {
	rows := []Transaction{
		{CardNumber: "*5433", OperationAmount: -8700.27, Cashback: 138},
		{CardNumber: "*2245", OperationAmount: -15166.97, Cashback: 326},
		{CardNumber: "", OperationAmount: -22145.37, Cashback: 5},
		{CardNumber: "*2245", OperationAmount: 300},
	}

	var wantNegative float64
	for _, row := range rows {
		if row.OperationAmount < 0 {
			wantNegative += row.OperationAmount
		}
	}

	got := AggregateByCard(rows)
	var total float64
	for _, card := range got {
		total += card.TotalSpent
	}
	if total != wantNegative {
		t.Fatalf("group totals %v do not add up to input spend %v", total, wantNegative)
	}

	// Lexicographic group order is a documented contract.
	order := []string{"*2245", "*5433", UnknownCard}
	for i, card := range got {
		if card.LastDigits != order[i] {
			t.Fatalf("group %d = %q, want %q", i, card.LastDigits, order[i])
		}
	}
}

func TestAggregateByCardEmpty(t *testing.T) {
	if got := AggregateByCard(nil); len(got) != 0 {
		t.Fatalf("expected no groups, got %+v", got)
	}
}
