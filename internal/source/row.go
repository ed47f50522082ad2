package source

import (
	"fmt"
	"strconv"
	"strings"

	"moneta/internal/core"
)

// FromStringRow builds a Transaction from per-column string values. get must
// return "" for a column the row does not carry; empty numeric cells count as
// zero.
func FromStringRow(get func(col string) string) (core.Transaction, error) {
	t := core.Transaction{
		OperationDate:     get("operation_date"),
		PaymentDate:       get("payment_date"),
		CardNumber:        get("card_number"),
		Status:            get("status"),
		OperationCurrency: get("operation_currency"),
		PaymentCurrency:   get("payment_currency"),
		Category:          get("category"),
		MCC:               get("mcc"),
		Description:       get("description"),
	}

	numeric := []struct {
		col string
		dst *float64
	}{
		{"operation_amount", &t.OperationAmount},
		{"payment_amount", &t.PaymentAmount},
		{"cashback", &t.Cashback},
		{"bonuses", &t.Bonuses},
		{"investment_rounding", &t.InvestmentRounding},
		{"rounded_amount", &t.RoundedAmount},
	}
	for _, n := range numeric {
		v, err := parseAmount(get(n.col))
		if err != nil {
			return core.Transaction{}, fmt.Errorf("column %s: %w", n.col, err)
		}
		*n.dst = v
	}
	return t, nil
}

// parseAmount accepts both dot and comma decimal separators and ignores
// thousands spacing as exported by banking spreadsheets.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return v, nil
}
