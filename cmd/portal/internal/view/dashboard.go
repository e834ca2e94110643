package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sentra-hq/sentra-cms/internal/sync"
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(1, 3).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	cardTitleStyle = lipgloss.NewStyle().Faint(true)
	cardValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

type DashboardModel struct {
	CommonModel
	store *sync.Store
}

func NewDashboardModel(store *sync.Store) DashboardModel {
	return DashboardModel{store: store}
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, found := msg.(tea.KeyMsg); found {
		if keyMsg.String() == "esc" {
			return m, Back
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Sales", FormatAmount(m.store.TotalSales())),
		card("Collected", FormatAmount(m.store.TotalCollection())),
		card("Outstanding", FormatAmount(m.store.TotalBalance())),
		card("Unread", fmt.Sprintf("%d", m.store.UnreadMessagesCount())),
	)

	footer := fmt.Sprintf("%d clients loaded", len(m.store.Clients()))
	if m.store.Loading(sync.CollectionClients) {
		footer = "refreshing..."
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(
		"Dashboard\n\n" + cards + "\n\n" +
			lipgloss.NewStyle().Faint(true).Render(footer+"\n\n(Esc to back)"),
	)
}

func card(title, value string) string {
	return cardStyle.Render(
		cardTitleStyle.Render(title) + "\n" + cardValueStyle.Render(value),
	)
}
