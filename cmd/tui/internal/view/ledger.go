package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

const emptyLedgerText = "No expenses yet. Add your first expense above."

type ledgerState int

const (
	ledgerStateBrowse ledgerState = iota
	ledgerStateAdding
)

// addFields backs the add form. It lives behind a pointer so the huh
// bindings survive the model being copied on every Update.
type addFields struct {
	description string
	amount      string
	category    expense.Category
}

type LedgerModel struct {
	CommonModel
	svc *expense.Service

	state    ledgerState
	table    table.Model
	form     *huh.Form
	fields   *addFields
	expenses []expense.Expense
	status   string
}

func NewLedgerModel(svc *expense.Service) LedgerModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Category", Width: 14},
		{Title: "Amount", Width: 12},
		{Title: "Description", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := LedgerModel{
		svc:    svc,
		table:  t,
		fields: &addFields{category: expense.DefaultCategory},
	}
	m.setExpenses(svc.List())

	return m
}

func (m LedgerModel) Title() string { return "Expense Tracker" }

func (m LedgerModel) ShortHelp() string {
	if m.state == ledgerStateAdding {
		return "Enter/Tab: navigate form | Esc: cancel"
	}

	return "a: add | d: delete | ↑/↓: select | q: quit"
}

func (m LedgerModel) Init() tea.Cmd {
	return nil
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LedgerChangedMsg:
		m.setExpenses(msg.Expenses)
		return m, nil

	case addResultMsg:
		return m.handleAddResult(msg)

	case deleteResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.setExpenses(m.svc.List())

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-16, 3))

		return m, nil
	}

	switch m.state {
	case ledgerStateBrowse:
		return m.updateBrowse(msg)
	case ledgerStateAdding:
		return m.updateAdding(msg)
	}

	return m, nil
}

func (m LedgerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "a":
			return m.openForm()
		case "d", "x", "delete":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LedgerModel) openForm() (tea.Model, tea.Cmd) {
	options := make([]huh.Option[expense.Category], len(expense.Categories))
	for i, c := range expense.Categories {
		options[i] = huh.NewOption(string(c), c)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.fields.description),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.fields.amount),

			huh.NewSelect[expense.Category]().
				Key("category").
				Title("Category").
				Options(options...).
				Value(&m.fields.category),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = ledgerStateAdding
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m LedgerModel) closeForm() LedgerModel {
	m.state = ledgerStateBrowse
	m.form = nil
	m.table.Focus()

	return m
}

func (m LedgerModel) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m.closeForm(), nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		return m.closeForm(), nil
	case huh.StateCompleted:
		m = m.closeForm()
		return m, m.submitCmd()
	}

	return m, cmd
}

func (m LedgerModel) handleAddResult(msg addResultMsg) (tea.Model, tea.Cmd) {
	if expense.IsInputError(msg.err) {
		// Missing or unusable input: keep what was typed and let the user
		// fix it.
		return m.openForm()
	}

	if msg.err != nil {
		m.status = fmt.Sprintf("Error saving: %v", msg.err)
	}

	m.fields.description = ""
	m.fields.amount = ""
	m.setExpenses(m.svc.List())

	return m.closeForm(), nil
}

func (m LedgerModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render(m.Title())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(title),
		m.summaryView(),
		"",
		m.listView(),
	)

	if m.state == ledgerStateAdding && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render("Add Expense\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	help := lipgloss.NewStyle().Faint(true).Render(m.ShortHelp())

	return lipgloss.NewStyle().Padding(1).Render(content + "\n\n" + help)
}

func (m LedgerModel) summaryView() string {
	total := fmt.Sprintf("Total Expenses  %s", activeStyle(FormatAmount(expense.Total(m.expenses))))

	breakdown := expense.Breakdown(m.expenses)
	if len(breakdown) == 0 {
		return total
	}

	var b strings.Builder

	b.WriteString(total)
	b.WriteString("\n\nBy Category\n")

	for _, ct := range breakdown {
		fmt.Fprintf(&b, "  %-14s %s\n", ct.Category, FormatAmount(ct.Total))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(strings.TrimRight(b.String(), "\n"))
}

func (m LedgerModel) listView() string {
	heading := lipgloss.NewStyle().Bold(true).Render("Recent Expenses")

	if len(m.expenses) == 0 {
		return heading + "\n\n" + lipgloss.NewStyle().Faint(true).Render(emptyLedgerText)
	}

	return heading + "\n" + lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *LedgerModel) setExpenses(expenses []expense.Expense) {
	m.expenses = expenses

	rows := make([]table.Row, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, table.Row{
			FormatDate(e.Date),
			string(e.Category),
			FormatAmount(e.Amount),
			e.Description,
		})
	}

	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// Messages

type addResultMsg struct {
	err error
}

func (m LedgerModel) submitCmd() tea.Cmd {
	params := expense.AddParams{
		Description: m.fields.description,
		Amount:      m.fields.amount,
		Category:    m.fields.category,
	}
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := svc.Add(ctx, params)

		return addResultMsg{err: err}
	}
}

type deleteResultMsg struct {
	err error
}

func (m LedgerModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return nil
	}

	id := m.expenses[idx].ID
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return deleteResultMsg{err: svc.Delete(ctx, id)}
	}
}
