package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	// OperationDateLayout is the exact layout of the operation timestamp column.
	// Rows are always parsed with this layout; a mismatch is an error, never a
	// fallback.
	OperationDateLayout = "02.01.2006 15:04:05"

	// ReferenceDateLayout is the layout accepted for user-supplied reference dates.
	ReferenceDateLayout = "02.01.2006"

	// UnknownCard replaces a missing card number before grouping.
	UnknownCard = "Unknown"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format, expected dd.mm.yyyy")
)

type (
	// Transaction is one normalized row of the operations table.
	Transaction struct {
		OperationDate      string
		PaymentDate        string
		CardNumber         string
		Status             string
		OperationAmount    float64
		OperationCurrency  string
		PaymentAmount      float64
		PaymentCurrency    string
		Cashback           float64
		Category           string
		MCC                string
		Description        string
		Bonuses            float64
		InvestmentRounding float64
		RoundedAmount      float64
	}

	// Record is the external projection of a Transaction: the full field set
	// under the english snake_case keys used by every outward-facing view.
	// Fields absent from a serialized record decode to zero values.
	Record struct {
		OperationDate      string  `json:"operation_date"`
		PaymentDate        string  `json:"payment_date"`
		CardNumber         string  `json:"card_number"`
		Status             string  `json:"status"`
		OperationAmount    float64 `json:"operation_amount"`
		OperationCurrency  string  `json:"operation_currency"`
		PaymentAmount      float64 `json:"payment_amount"`
		PaymentCurrency    string  `json:"payment_currency"`
		Cashback           float64 `json:"cashback"`
		Category           string  `json:"category"`
		MCC                string  `json:"mcc"`
		Description        string  `json:"description"`
		Bonuses            float64 `json:"bonuses"`
		InvestmentRounding float64 `json:"investment_rounding"`
		RoundedAmount      float64 `json:"rounded_amount"`
	}
)

// Record projects the transaction to its external shape.
func (t Transaction) Record() Record {
	return Record{
		OperationDate:      t.OperationDate,
		PaymentDate:        t.PaymentDate,
		CardNumber:         t.CardNumber,
		Status:             t.Status,
		OperationAmount:    t.OperationAmount,
		OperationCurrency:  t.OperationCurrency,
		PaymentAmount:      t.PaymentAmount,
		PaymentCurrency:    t.PaymentCurrency,
		Cashback:           t.Cashback,
		Category:           t.Category,
		MCC:                t.MCC,
		Description:        t.Description,
		Bonuses:            t.Bonuses,
		InvestmentRounding: t.InvestmentRounding,
		RoundedAmount:      t.RoundedAmount,
	}
}

// Transaction converts an external record back to the internal row shape.
func (r Record) Transaction() Transaction {
	return Transaction{
		OperationDate:      r.OperationDate,
		PaymentDate:        r.PaymentDate,
		CardNumber:         r.CardNumber,
		Status:             r.Status,
		OperationAmount:    r.OperationAmount,
		OperationCurrency:  r.OperationCurrency,
		PaymentAmount:      r.PaymentAmount,
		PaymentCurrency:    r.PaymentCurrency,
		Cashback:           r.Cashback,
		Category:           r.Category,
		MCC:                r.MCC,
		Description:        r.Description,
		Bonuses:            r.Bonuses,
		InvestmentRounding: r.InvestmentRounding,
		RoundedAmount:      r.RoundedAmount,
	}
}

// Records projects a slice of rows, preserving order.
func Records(rows []Transaction) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Record())
	}
	return out
}

// MarshalRecords serializes the table as an indented JSON array of records.
// This is the projection boundary: internal rows leave the core only in this
// shape.
func MarshalRecords(rows []Transaction) ([]byte, error) {
	data, err := json.MarshalIndent(Records(rows), "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal records: %w", err)
	}
	return data, nil
}

// ParseOperationDate parses an operation timestamp with the exact column layout.
func ParseOperationDate(s string) (time.Time, error) {
	ts, err := time.Parse(OperationDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse operation date %q: %w", s, err)
	}
	return ts, nil
}
