package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/chat"
	"github.com/sentra-hq/sentra-cms/internal/sync"
)

type ChatsModel struct {
	CommonModel
	store *sync.Store

	table  table.Model
	chats  []*chat.Chat
	status string
}

func NewChatsModel(store *sync.Store) ChatsModel {
	columns := []table.Column{
		{Title: "Client", Width: 24},
		{Title: "Unread", Width: 8},
		{Title: "Last Message", Width: 18},
		{Title: "Preview", Width: 44},
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

	return ChatsModel{store: store, table: t}
}

func (m ChatsModel) Init() tea.Cmd {
	return func() tea.Msg { return RefreshMsg{} }
}

func (m ChatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		m.refreshTable()
		return m, nil

	case markReadMsg:
		if msg.result.OK {
			m.status = "Marked read."
		} else {
			m.status = fmt.Sprintf("Error: %s", msg.result.Reason)
		}
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
			if idx >= 0 && idx < len(m.chats) {
				return m, m.markReadCmd(m.chats[idx])
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ChatsModel) refreshTable() {
	m.chats = m.store.Chats()

	rows := make([]table.Row, 0, len(m.chats))
	for _, c := range m.chats {
		clientName := c.ClientID.String()
		if owner := m.store.ClientByID(c.ClientID); owner != nil {
			clientName = owner.Name
		}

		lastAt := ""
		if c.LastMessageAt != nil {
			lastAt = FormatDate(*c.LastMessageAt)
		}

		preview := ""
		if n := len(c.Messages); n > 0 {
			preview = c.Messages[n-1].Content
		}

		rows = append(rows, table.Row{
			clientName,
			fmt.Sprintf("%d", c.UnreadCount),
			lastAt,
			preview,
		})
	}
	m.table.SetRows(rows)
}

func (m ChatsModel) View() string {
	if m.store.Loading(sync.CollectionChats) && len(m.chats) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Loading chats...")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		tableView,
		lipgloss.NewStyle().Faint(true).Render("(Enter to mark read, Esc to back)"),
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type markReadMsg struct {
	result sync.Result[uuid.UUID]
}

func (m ChatsModel) markReadCmd(c *chat.Chat) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return markReadMsg{result: m.store.MarkChatRead(ctx, c.ID)}
	}
}
