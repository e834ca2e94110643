package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sentra-hq/sentra-cms/internal/sync"
	"github.com/sentra-hq/sentra-cms/internal/user"
)

// LoggedInMsg is emitted once the store holds an authenticated session.
type LoggedInMsg struct {
	User *user.User
}

type LoginModel struct {
	CommonModel
	store *sync.Store

	form     *huh.Form
	email    string
	password string

	submitting bool
	errMsg     string
}

func NewLoginModel(store *sync.Store) LoginModel {
	m := LoginModel{store: store}
	m.form = m.newForm()

	return m
}

func (m *LoginModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.email).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("email cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case loginDoneMsg:
		m.submitting = false
		if !msg.result.OK {
			m.errMsg = msg.result.Reason
			m.form = m.newForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return LoggedInMsg{User: msg.result.Record} }
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, found := form.(*huh.Form); found {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.submitting = true
	m.errMsg = ""

	return m, m.loginCmd()
}

func (m LoginModel) View() string {
	if m.submitting {
		return lipgloss.NewStyle().Padding(2).Render("Signing in...")
	}

	content := "Sentra CMS\n\n" + m.form.View()
	if m.errMsg != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.errMsg)
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

type loginDoneMsg struct {
	result sync.Result[*user.User]
}

func (m LoginModel) loginCmd() tea.Cmd {
	email, password := m.email, m.password

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return loginDoneMsg{result: m.store.Login(ctx, email, password)}
	}
}
