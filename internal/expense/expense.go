package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is one of the fixed expense categories.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryBills         Category = "Bills"
	CategoryOther         Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryBills,
	CategoryOther,
}

// DefaultCategory is preselected by the add forms.
const DefaultCategory = CategoryFood

// Valid reports whether c belongs to Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}

// Expense is a single ledger entry. Entries are never edited after creation.
type Expense struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Category    Category
	Date        time.Time // Calendar date at UTC midnight
}

// CategoryTotal is the sum of amounts recorded under one category.
type CategoryTotal struct {
	Category Category
	Total    decimal.Decimal
}

// Summary holds the derived values shown next to the ledger.
type Summary struct {
	Count      int
	Total      decimal.Decimal
	ByCategory []CategoryTotal
}

// DateOf returns the UTC calendar date of t.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const (
	maxAmountScale         = 8
	maxAmountIntegerDigits = 15
)

var amountLimit = decimal.New(1, maxAmountIntegerDigits)

// ValidAmount reports whether d is a non-negative amount below 10^15 with
// at most eight decimal places.
func ValidAmount(d decimal.Decimal) bool {
	if d.IsNegative() {
		return false
	}

	// LessThan rescales by the exponent difference.
	if exp := d.Exponent(); exp < -maxAmountScale || exp > maxAmountIntegerDigits {
		return false
	}

	return d.LessThan(amountLimit)
}

// AmountText renders d with the scale it was entered with, so "4.50" stays
// 4.50 rather than 4.5.
func AmountText(d decimal.Decimal) string {
	if d.Exponent() < 0 {
		return d.StringFixed(-d.Exponent())
	}

	return d.String()
}
