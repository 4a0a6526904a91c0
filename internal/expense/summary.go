package expense

import "github.com/shopspring/decimal"

// Total sums every amount in the ledger.
func Total(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	return total
}

// Breakdown returns per-category totals in Categories order, leaving out
// categories whose total is not positive.
func Breakdown(expenses []Expense) []CategoryTotal {
	sums := make(map[Category]decimal.Decimal, len(Categories))
	for _, e := range expenses {
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}

	out := make([]CategoryTotal, 0, len(Categories))

	for _, c := range Categories {
		total, ok := sums[c]
		if !ok || !total.IsPositive() {
			continue
		}

		out = append(out, CategoryTotal{Category: c, Total: total})
	}

	return out
}

// Summarize computes every derived view at once.
func Summarize(expenses []Expense) Summary {
	return Summary{
		Count:      len(expenses),
		Total:      Total(expenses),
		ByCategory: Breakdown(expenses),
	}
}
