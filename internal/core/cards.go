package core

import "sort"

// CardSummary aggregates spending and cashback for one card.
type CardSummary struct {
	LastDigits string  `json:"last_digits"`
	TotalSpent float64 `json:"total_spent"`
	Cashback   float64 `json:"cashback"`
}

// AggregateByCard groups spend rows by card number, summing the operation
// amount and cashback per card. Only rows with a negative operation amount
// participate; missing card numbers are normalized to UnknownCard first, and a
// missing cashback counts as zero. Totals keep their sign.
//
// Groups are emitted in lexicographic order of the card identifier, so the
// output is deterministic for a given input.
func AggregateByCard(rows []Transaction) []CardSummary {
	totals := make(map[string]*CardSummary)
	for _, row := range rows {
		if row.OperationAmount >= 0 {
			continue
		}
		card := row.CardNumber
		if card == "" {
			card = UnknownCard
		}
		sum, ok := totals[card]
		if !ok {
			sum = &CardSummary{LastDigits: card}
			totals[card] = sum
		}
		sum.TotalSpent += row.OperationAmount
		sum.Cashback += row.Cashback
	}

	cards := make([]string, 0, len(totals))
	for card := range totals {
		cards = append(cards, card)
	}
	sort.Strings(cards)

	out := make([]CardSummary, 0, len(cards))
	for _, card := range cards {
		out = append(out, *totals[card])
	}
	return out
}
