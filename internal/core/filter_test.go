package core

import (
	"errors"
	"testing"
)

func sampleRows() []Transaction {
	return []Transaction{
		{OperationDate: "01.06.2023 08:00:00", Category: "Рестораны", OperationAmount: -500},
		{OperationDate: "15.07.2023 12:00:00", Category: "Рестораны", OperationAmount: -300},
		{OperationDate: "25.07.2023 18:00:00", Category: "Кино", OperationAmount: -200},
		{OperationDate: "10.08.2023 10:00:00", Category: "Рестораны", OperationAmount: -150},
		{OperationDate: "20.09.2023 09:00:00", Category: "Рестораны", OperationAmount: -100},
	}
}

func TestSpendingByCategory(t *testing.T) {
	got, err := SpendingByCategory(sampleRows(), "Рестораны", "20.08.2023")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Window is [20.05.2023, 20.08.2023]: the 20.09 row is out, the rest match.
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	wantDates := []string{"01.06.2023 08:00:00", "15.07.2023 12:00:00", "10.08.2023 10:00:00"}
	for i, row := range got {
		if row.Category != "Рестораны" {
			t.Fatalf("row %d category = %q", i, row.Category)
		}
		if row.OperationDate != wantDates[i] {
			t.Fatalf("row %d date = %q, want %q (source order must be preserved)", i, row.OperationDate, wantDates[i])
		}
	}
}

func TestSpendingByCategoryOtherCategory(t *testing.T) {
	got, err := SpendingByCategory(sampleRows(), "Кино", "20.08.2023")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].OperationAmount != -200 {
		t.Fatalf("expected only the cinema row, got %+v", got)
	}
}

func TestSpendingByCategoryWindowBoundsInclusive(t *testing.T) {
	rows := []Transaction{
		{OperationDate: "20.05.2023 00:00:00", Category: "Кино"}, // exactly window start
		{OperationDate: "19.05.2023 23:59:59", Category: "Кино"}, // one second before
		{OperationDate: "20.08.2023 00:00:00", Category: "Кино"}, // exactly reference date
	}
	got, err := SpendingByCategory(rows, "Кино", "20.08.2023")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected the two boundary-inclusive rows, got %d", len(got))
	}
}

func TestSpendingByCategoryDefaultDate(t *testing.T) {
	// With the reference date omitted the window ends now; 2023 data is long gone.
	got, err := SpendingByCategory(sampleRows(), "Рестораны", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no rows for stale data, got %d", len(got))
	}
}

func TestSpendingByCategoryInvalidDate(t *testing.T) {
	for _, date := range []string{"2023-08-20", "20/08/2023", "garbage", "20.08.23"} {
		_, err := SpendingByCategory(sampleRows(), "Рестораны", date)
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Fatalf("date %q: expected ErrInvalidDateFormat, got %v", date, err)
		}
	}
}

func TestSpendingByCategoryCaseSensitive(t *testing.T) {
	got, err := SpendingByCategory(sampleRows(), "рестораны", "20.08.2023")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("category match must be case-sensitive, got %d rows", len(got))
	}
}

func TestSpendingByCategoryBadRowDate(t *testing.T) {
	rows := []Transaction{{OperationDate: "15.07.2023", Category: "Кино"}}
	if _, err := SpendingByCategory(rows, "Кино", "20.08.2023"); err == nil {
		t.Fatal("expected error for operation date without time component")
	}
}
