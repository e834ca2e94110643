package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// RefreshMsg tells the active view to re-read the store. The root model
// broadcasts it on every poll interval and after manual refreshes.
type RefreshMsg struct{}
