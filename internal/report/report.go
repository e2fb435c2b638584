// Package report computes aggregate views over transaction lists for display:
// total volume per currency and counts per status bucket. Prices stay strings
// on the wire; aggregation parses them as decimals and treats unparsable
// values as zero while the verbatim string is preserved on the record.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/emagn/escrow-client/internal/escrow"
	"github.com/emagn/escrow-client/internal/workflow"
)

// SumPrices totals the prices of the given transactions. Entries that do not
// parse as a number contribute zero; the function never fails.
func SumPrices(transactions []escrow.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range transactions {
		total = total.Add(parsePrice(txn.Price))
	}
	return total
}

func parsePrice(raw string) decimal.Decimal {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return price
}

// CurrencyTotal is the summed volume for one currency code.
type CurrencyTotal struct {
	Currency string
	Total    decimal.Decimal
}

// StatusCount is the number of transactions carrying one status label.
type StatusCount struct {
	Label string
	Class workflow.Class
	Count int
}

// Summary is an aggregate view over a transaction list.
type Summary struct {
	Transactions int
	ByCurrency   []CurrencyTotal
	ByStatus     []StatusCount
}

// Summarize builds a Summary. Transactions with a missing status are grouped
// under the unknown label; currencies are sorted alphabetically and statuses
// by descending count.
func Summarize(transactions []escrow.Transaction) Summary {
	currencyTotals := make(map[string]decimal.Decimal)
	statusCounts := make(map[string]int)

	for _, txn := range transactions {
		currency := txn.Currency
		if currency == "" {
			currency = "?"
		}
		currencyTotals[currency] = currencyTotals[currency].Add(parsePrice(txn.Price))

		label := workflow.DisplayLabel(txn.Status.Get())
		statusCounts[label]++
	}

	summary := Summary{Transactions: len(transactions)}

	for currency, total := range currencyTotals {
		summary.ByCurrency = append(summary.ByCurrency, CurrencyTotal{Currency: currency, Total: total})
	}
	sort.Slice(summary.ByCurrency, func(i, j int) bool {
		return summary.ByCurrency[i].Currency < summary.ByCurrency[j].Currency
	})

	for label, count := range statusCounts {
		summary.ByStatus = append(summary.ByStatus, StatusCount{
			Label: label,
			Class: workflow.ColorClass(label),
			Count: count,
		})
	}
	sort.Slice(summary.ByStatus, func(i, j int) bool {
		if summary.ByStatus[i].Count != summary.ByStatus[j].Count {
			return summary.ByStatus[i].Count > summary.ByStatus[j].Count
		}
		return summary.ByStatus[i].Label < summary.ByStatus[j].Label
	})

	return summary
}
