package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"vedetta/internal/adapters/tui/views"
	"vedetta/internal/ports"
)

// App is the main TUI application model
type App struct {
	history *views.HistoryModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(store ports.HistoryStore, discussionPrefix string) *App {
	return &App{
		history: views.NewHistoryModel(store, discussionPrefix),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.history.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = msg.Width
		a.height = msg.Height
		a.history.SetSize(msg.Width, msg.Height)
		return a, nil
	}

	_, cmd := a.history.Update(msg)
	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	return a.history.View()
}
