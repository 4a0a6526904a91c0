package view

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dbTimeout = 5 * time.Second

var (
	printer = message.NewPrinter(language.English)

	// Integer parts below this fit an int64 and get digit grouping.
	groupLimit = decimal.New(1, 18)
)

// FormatAmount renders an amount currency-style with two decimals, e.g. $1,234.50.
func FormatAmount(d decimal.Decimal) string {
	r := d.Round(2)

	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Neg()
	}

	whole, frac, _ := strings.Cut(r.StringFixed(2), ".")
	if r.LessThan(groupLimit) {
		whole = printer.Sprintf("%d", r.IntPart())
	}

	return sign + "$" + whole + "." + frac
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for storage operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
