package view

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/expense/store"
)

func newTestLedger(t *testing.T) (LedgerModel, *expense.Service) {
	t.Helper()

	svc := expense.NewService(store.NewMemory())
	require.NoError(t, svc.Load(context.Background()))

	return NewLedgerModel(svc), svc
}

// run feeds msg to the model and then every message its commands produce.
func run(t *testing.T, m LedgerModel, msg tea.Msg) LedgerModel {
	t.Helper()

	for msg != nil {
		next, cmd := m.Update(msg)
		m = next.(LedgerModel)

		msg = nil
		if cmd != nil {
			msg = cmd()
		}
	}

	return m
}

func TestLedger_EmptyState(t *testing.T) {
	m, _ := newTestLedger(t)

	out := m.View()
	assert.Contains(t, out, "Expense Tracker")
	assert.Contains(t, out, "Total Expenses")
	assert.Contains(t, out, "$0.00")
	assert.Contains(t, out, emptyLedgerText)
	assert.NotContains(t, out, "By Category")
}

func TestLedger_SummaryAndList(t *testing.T) {
	m, svc := newTestLedger(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, expense.AddParams{Description: "Coffee", Amount: "4.50", Category: expense.CategoryFood})
	require.NoError(t, err)
	_, err = svc.Add(ctx, expense.AddParams{Description: "Bus", Amount: "2.00", Category: expense.CategoryTransport})
	require.NoError(t, err)

	m = run(t, m, LedgerChangedMsg{Expenses: svc.List()})

	out := m.View()
	assert.Contains(t, out, "$6.50")
	assert.Contains(t, out, "By Category")
	assert.Contains(t, out, "$4.50")
	assert.Contains(t, out, "$2.00")
	assert.Contains(t, out, "Coffee")
	assert.Contains(t, out, "Bus")
	assert.NotContains(t, out, emptyLedgerText)
}

func TestLedger_DeleteSelected(t *testing.T) {
	m, svc := newTestLedger(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, expense.AddParams{Description: "Coffee", Amount: "4.50", Category: expense.CategoryFood})
	require.NoError(t, err)
	_, err = svc.Add(ctx, expense.AddParams{Description: "Bus", Amount: "2.00", Category: expense.CategoryTransport})
	require.NoError(t, err)

	m = run(t, m, LedgerChangedMsg{Expenses: svc.List()})
	m = run(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})

	list := svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Coffee", list[0].Description)
	assert.Len(t, m.expenses, 1)

	m = run(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	assert.Empty(t, svc.List())
	assert.Contains(t, m.View(), emptyLedgerText)

	// Nothing left to delete.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	assert.Nil(t, cmd)
}

func TestLedger_SubmitClearsInputsKeepsCategory(t *testing.T) {
	m, svc := newTestLedger(t)

	m.fields.description = "Bus"
	m.fields.amount = "2.00"
	m.fields.category = expense.CategoryTransport

	m = run(t, m, m.submitCmd()())

	require.Len(t, svc.List(), 1)
	assert.Equal(t, "Bus", svc.List()[0].Description)
	assert.Equal(t, "", m.fields.description)
	assert.Equal(t, "", m.fields.amount)
	assert.Equal(t, expense.CategoryTransport, m.fields.category)
	assert.Equal(t, ledgerStateBrowse, m.state)
	assert.Contains(t, m.View(), "Bus")
}

func TestLedger_SubmitMissingInputKeepsForm(t *testing.T) {
	m, svc := newTestLedger(t)

	m.fields.description = ""
	m.fields.amount = "3"

	next, _ := m.Update(m.submitCmd()())
	m = next.(LedgerModel)

	assert.Empty(t, svc.List())
	assert.Equal(t, ledgerStateAdding, m.state)
	assert.NotNil(t, m.form)
	assert.Equal(t, "3", m.fields.amount)
	assert.Empty(t, m.status)
}

func TestLedger_OpenAndCancelForm(t *testing.T) {
	m, _ := newTestLedger(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = next.(LedgerModel)
	require.Equal(t, ledgerStateAdding, m.state)
	assert.Contains(t, m.View(), "Add Expense")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(LedgerModel)
	assert.Equal(t, ledgerStateBrowse, m.state)
	assert.Nil(t, m.form)
}

func TestLedger_Quit(t *testing.T) {
	m, _ := newTestLedger(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestFormatAmount(t *testing.T) {
	tests := map[string]string{
		"0":                    "$0.00",
		"4.5":                  "$4.50",
		"2.00":                 "$2.00",
		"1.005":                "$1.01",
		"19.99":                "$19.99",
		"1234.5":               "$1,234.50",
		"999999999999999.999":  "$1,000,000,000,000,000.00",
		"9007199254740993.01":  "$9,007,199,254,740,993.01",
		"123456789012345678.9": "$123,456,789,012,345,678.90",
	}

	for in, want := range tests {
		assert.Equal(t, want, FormatAmount(decimal.RequireFromString(in)), in)
	}
}
