package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

type CommonModel struct {
	Width  int
	Height int
}

// LedgerChangedMsg carries the ledger after a change made anywhere in the
// process.
type LedgerChangedMsg struct {
	Expenses []expense.Expense
}

// Notify adapts a tea.Program to an expense.Listener.
func Notify(p *tea.Program) expense.Listener {
	return func(expenses []expense.Expense) {
		p.Send(LedgerChangedMsg{Expenses: expenses})
	}
}
