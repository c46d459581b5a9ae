package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vedetta/internal/adapters/tui/styles"
	"vedetta/internal/domain"
	"vedetta/internal/ports"
)

// HistoryKeyMap defines key bindings for the history view
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Mode   key.Binding
	Fold   key.Binding
	Copy   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

var HistoryKeys = HistoryKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Mode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "rate mode"),
	),
	Fold: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fold talk pages"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy title"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// HistoryModel is the model for the aggregated history view
type HistoryModel struct {
	store            ports.HistoryStore
	discussionPrefix string

	activities []domain.PageActivity
	cursor     int
	mode       domain.RateMode
	fold       bool

	width      int
	height     int
	message    string
	messageErr bool
}

// NewHistoryModel creates a new history model
func NewHistoryModel(store ports.HistoryStore, discussionPrefix string) *HistoryModel {
	return &HistoryModel{
		store:            store,
		discussionPrefix: discussionPrefix,
	}
}

// Init initializes the history view
func (m *HistoryModel) Init() tea.Cmd {
	return m.loadActivities
}

func (m *HistoryModel) loadActivities() tea.Msg {
	activities, err := m.store.Aggregate(ports.AggregateOptions{
		Mode:             m.mode,
		FoldDiscussion:   m.fold,
		DiscussionPrefix: m.discussionPrefix,
		Now:              time.Now(),
	})
	if err != nil {
		return errMsg{err}
	}
	return activitiesLoadedMsg{activities}
}

type activitiesLoadedMsg struct {
	activities []domain.PageActivity
}

type errMsg struct {
	err error
}

// Update handles messages for the history view
func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case activitiesLoadedMsg:
		m.activities = msg.activities
		if m.cursor >= len(m.activities) {
			m.cursor = len(m.activities) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case errMsg:
		m.message = msg.err.Error()
		m.messageErr = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, HistoryKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, HistoryKeys.Down):
			if m.cursor < len(m.activities)-1 {
				m.cursor++
			}
		case key.Matches(msg, HistoryKeys.Mode):
			if m.mode == domain.RateSinceFirstOpen {
				m.mode = domain.RateFirstToLast
			} else {
				m.mode = domain.RateSinceFirstOpen
			}
			return m, m.loadActivities
		case key.Matches(msg, HistoryKeys.Fold):
			m.fold = !m.fold
			return m, m.loadActivities
		case key.Matches(msg, HistoryKeys.Copy):
			if a := m.selected(); a != nil {
				clipboard.WriteAll(string(a.Name))
				m.message = fmt.Sprintf("Copied %s", a.Name)
				m.messageErr = false
			}
		case key.Matches(msg, HistoryKeys.Reload):
			return m, m.loadActivities
		case key.Matches(msg, HistoryKeys.Quit):
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *HistoryModel) selected() *domain.PageActivity {
	if m.cursor >= 0 && m.cursor < len(m.activities) {
		return &m.activities[m.cursor]
	}
	return nil
}

// View renders the history view
func (m *HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Vedetta"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("Open history | rate: %s, talk folding: %s",
		m.mode, onOff(m.fold))))
	b.WriteString("\n\n")

	if len(m.activities) == 0 {
		b.WriteString(styles.HelpDesc.Render("No pages opened yet."))
		b.WriteString("\n")
	} else {
		b.WriteString(styles.ColumnHeader.Render(fmt.Sprintf("%-40s %6s  %-11s %-11s %9s", "page", "opens", "first", "last", "per day")))
		b.WriteString("\n")
		for i, a := range m.activities {
			b.WriteString(m.renderRow(a, i == m.cursor))
			b.WriteString("\n")
		}
	}

	if m.message != "" {
		b.WriteString("\n")
		if m.messageErr {
			b.WriteString(styles.ErrorMsg.Render(m.message))
		} else {
			b.WriteString(styles.Success.Render(m.message))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *HistoryModel) renderRow(a domain.PageActivity, selected bool) string {
	name := string(a.Name)
	if len(name) > 40 {
		name = name[:37] + "..."
	}
	text := fmt.Sprintf("%-40s %6d  %-11s %-11s %9.3f",
		name, a.Occurrences,
		a.First.Format("2006-01-02"), a.Last.Format("2006-01-02"),
		a.TimesPerDay)

	if selected {
		return styles.RowSelected.Render(text)
	}

	var style lipgloss.Style
	switch {
	case strings.HasPrefix(string(a.Name), m.discussionPrefix):
		style = styles.RowDiscussion
	case a.TimesPerDay >= 1:
		style = styles.RateHot
	default:
		style = styles.RowPage
	}
	return style.Render(text)
}

func (m *HistoryModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"m", "rate mode"},
		{"f", "fold talk"},
		{"c", "copy title"},
		{"r", "reload"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}

// SetSize updates the view dimensions
func (m *HistoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
