package core

import "sort"

// DefaultTopN is the dashboard's top-transactions list size.
const DefaultTopN = 5

// TopTransaction is the reduced dashboard view of one transaction. The date and
// amount intentionally come from the payment-side columns, not the operation
// ones.
type TopTransaction struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// TopTransactions returns the n rows with the largest operation amount in
// descending order. Ties keep the original row order. When fewer than n rows
// exist, all of them are returned.
func TopTransactions(rows []Transaction, n int) []TopTransaction {
	if n <= 0 {
		return []TopTransaction{}
	}

	sorted := make([]Transaction, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OperationAmount > sorted[j].OperationAmount
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]TopTransaction, 0, n)
	for _, row := range sorted[:n] {
		out = append(out, TopTransaction{
			Date:        row.PaymentDate,
			Amount:      row.PaymentAmount,
			Category:    row.Category,
			Description: row.Description,
		})
	}
	return out
}
