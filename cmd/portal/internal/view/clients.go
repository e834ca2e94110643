package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sentra-hq/sentra-cms/internal/client"
	"github.com/sentra-hq/sentra-cms/internal/sync"
)

type ClientsModel struct {
	CommonModel
	store *sync.Store

	table   table.Model
	clients []*client.Client
	status  string
}

func NewClientsModel(store *sync.Store) ClientsModel {
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Business", Width: 20},
		{Title: "Status", Width: 10},
		{Title: "Sales", Width: 10},
		{Title: "Collected", Width: 10},
		{Title: "Balance", Width: 10},
		{Title: "Tags", Width: 24},
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

	return ClientsModel{store: store, table: t}
}

func (m ClientsModel) Init() tea.Cmd {
	return func() tea.Msg { return RefreshMsg{} }
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		m.refreshTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "enter":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.clients) {
				selected := m.clients[idx]
				m.store.SelectClient(selected.ID)
				m.status = fmt.Sprintf("Selected %s; links will follow this client.", selected.Name)
			}
			return m, nil
		case "x":
			m.store.ClearSelectedClient()
			m.status = "Selection cleared."
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ClientsModel) refreshTable() {
	m.clients = m.store.Clients()

	rows := make([]table.Row, 0, len(m.clients))
	for _, c := range m.clients {
		rows = append(rows, table.Row{
			c.Name,
			c.BusinessName,
			string(c.Status),
			FormatAmount(c.TotalSales),
			FormatAmount(c.TotalCollection),
			FormatAmount(c.Balance),
			strings.Join(c.Tags, ", "),
		})
	}
	m.table.SetRows(rows)
}

func (m ClientsModel) View() string {
	if m.store.Loading(sync.CollectionClients) && len(m.clients) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Loading clients...")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		tableView,
		lipgloss.NewStyle().Faint(true).Render("(Enter to select, x to clear selection, Esc to back)"),
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
