// Package source defines where the operations table comes from.
package source

import (
	"context"

	"moneta/internal/core"
)

// Columns is the canonical header set of the operations table, in column order.
// Every adapter maps its input onto these names.
var Columns = []string{
	"operation_date",
	"payment_date",
	"card_number",
	"status",
	"operation_amount",
	"operation_currency",
	"payment_amount",
	"payment_currency",
	"cashback",
	"category",
	"mcc",
	"description",
	"bonuses",
	"investment_rounding",
	"rounded_amount",
}

// OperationSource loads the full operations table, preserving row order.
type OperationSource interface {
	Load(ctx context.Context) ([]core.Transaction, error)
}
