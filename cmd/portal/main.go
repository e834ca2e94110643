package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/sentra-hq/sentra-cms/cmd/portal/internal/view"
	"github.com/sentra-hq/sentra-cms/internal/config"
	"github.com/sentra-hq/sentra-cms/internal/sync"
	"github.com/sentra-hq/sentra-cms/internal/sync/remote"
)

type View int

const (
	ViewLogin     View = 0
	ViewMenu      View = 1
	ViewDashboard View = 2
	ViewClients   View = 3
	ViewInvoices  View = 4
	ViewChats     View = 5
)

type model struct {
	store  *sync.Store
	poller *sync.Poller

	currentView View

	loginView     view.LoginModel
	dashboardView view.DashboardModel
	clientsView   view.ClientsModel
	invoicesView  view.InvoicesModel
	chatsView     view.ChatsModel
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	api := remote.New(cfg.Portal.APIBaseURL, nil)
	store := sync.NewStore(api.Sources(), slog.Default())
	poller := sync.NewPoller(cfg.Portal.PollInterval, store.Refresh)

	return model{
		store:       store,
		poller:      poller,
		currentView: ViewLogin,
		loginView:   view.NewLoginModel(store),
	}
}

// redrawMsg keeps the visible tables in step with the polling store.
type redrawMsg time.Time

func redrawTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return redrawMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case view.LoggedInMsg:
		m.poller.Start()
		m.currentView = ViewMenu

		// Prime the store so the first screens are not empty.
		go m.store.Refresh(context.Background())

		return m, redrawTick()

	case redrawMsg:
		if m.currentView == ViewLogin {
			return m, nil
		}

		var forwarded tea.Cmd
		m, forwarded = m.forward(view.RefreshMsg{})

		return m, tea.Batch(forwarded, redrawTick())

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil

	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				m.poller.Stop()
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.store)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewClients
				m.clientsView = view.NewClientsModel(m.store)

				return m, m.clientsView.Init()
			case "3":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.store)

				return m, m.invoicesView.Init()
			case "4":
				m.currentView = ViewChats
				m.chatsView = view.NewChatsModel(m.store)

				return m, m.chatsView.Init()
			}
		}
	}

	m, cmd = m.forward(msg)

	return m, cmd
}

func (m model) forward(msg tea.Msg) (model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewClients:
		var newModel tea.Model
		newModel, cmd = m.clientsView.Update(msg)
		m.clientsView = newModel.(view.ClientsModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewChats:
		var newModel tea.Model
		newModel, cmd = m.chatsView.Update(msg)
		m.chatsView = newModel.(view.ChatsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		name := "there"
		if u := m.store.CurrentUser(); u != nil {
			name = u.Name
		}

		return lipgloss.NewStyle().Padding(2).Render(
			"Sentra CMS Portal — hi, " + name + "\n\n" +
				"1. Dashboard\n" +
				"2. Clients\n" +
				"3. Invoices\n" +
				"4. Chats\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewClients:
		return m.clientsView.View()
	case ViewInvoices:
		return m.invoicesView.View()
	case ViewChats:
		return m.chatsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run portal", "error", err)
		os.Exit(1)
	}
}
