package view

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sentra-hq/sentra-cms/internal/billing"
	"github.com/sentra-hq/sentra-cms/internal/sync"
)

type InvoicesModel struct {
	CommonModel
	store *sync.Store

	table    table.Model
	invoices []*billing.Invoice
}

func NewInvoicesModel(store *sync.Store) InvoicesModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Client", Width: 20},
		{Title: "Package", Width: 16},
		{Title: "Amount", Width: 10},
		{Title: "Paid", Width: 10},
		{Title: "Due", Width: 10},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	return InvoicesModel{store: store, table: t}
}

func (m InvoicesModel) Init() tea.Cmd {
	return func() tea.Msg { return RefreshMsg{} }
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		m.refreshTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *InvoicesModel) refreshTable() {
	m.invoices = m.store.Invoices()

	rows := make([]table.Row, 0, len(m.invoices))
	for _, inv := range m.invoices {
		clientName := ""
		if c := m.store.ClientByID(inv.ClientID); c != nil {
			clientName = c.Name
		}

		rows = append(rows, table.Row{
			FormatDate(inv.CreatedAt),
			clientName,
			inv.PackageName,
			FormatAmount(inv.Amount),
			FormatAmount(inv.Paid),
			FormatAmount(inv.Due),
			string(inv.Status),
		})
	}
	m.table.SetRows(rows)
}

func (m InvoicesModel) View() string {
	if m.store.Loading(sync.CollectionInvoices) && len(m.invoices) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			tableView,
			lipgloss.NewStyle().Faint(true).Render("(Esc to back)"),
		),
	)
}
