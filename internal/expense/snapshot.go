package expense

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// record is the persisted shape of an Expense.
type record struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Category    Category    `json:"category"`
	Date        string      `json:"date"`
}

// EncodeSnapshot serializes the ledger, newest-first, as a JSON array.
func EncodeSnapshot(expenses []Expense) (string, error) {
	records := make([]record, len(expenses))
	for i, e := range expenses {
		records[i] = record{
			ID:          e.ID,
			Description: e.Description,
			Amount:      json.Number(AmountText(e.Amount)),
			Category:    e.Category,
			Date:        e.Date.Format(time.DateOnly),
		}
	}

	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}

	return string(b), nil
}

// DecodeSnapshot parses a snapshot written by EncodeSnapshot. Every failure
// wraps ErrMalformedSnapshot.
func DecodeSnapshot(data string) ([]Expense, error) {
	var records []record
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	expenses := make([]Expense, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", ErrMalformedSnapshot, i)
		}

		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformedSnapshot, r.ID)
		}

		seen[r.ID] = struct{}{}

		amount, err := decimal.NewFromString(r.Amount.String())
		if err != nil || !ValidAmount(amount) {
			return nil, fmt.Errorf("%w: record %q has invalid amount %q", ErrMalformedSnapshot, r.ID, r.Amount)
		}

		if !r.Category.Valid() {
			return nil, fmt.Errorf("%w: record %q has unknown category %q", ErrMalformedSnapshot, r.ID, r.Category)
		}

		date, err := time.Parse(time.DateOnly, r.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: record %q has invalid date %q", ErrMalformedSnapshot, r.ID, r.Date)
		}

		expenses = append(expenses, Expense{
			ID:          r.ID,
			Description: r.Description,
			Amount:      amount,
			Category:    r.Category,
			Date:        date,
		})
	}

	return expenses, nil
}
