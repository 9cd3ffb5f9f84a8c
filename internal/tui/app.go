package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/albumview/internal/deferred"
	"github.com/mmcdole/albumview/internal/domain"
	"github.com/mmcdole/albumview/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// ChromeHeight is the footer line below the record panel
const ChromeHeight = 1

// albumFetcher is the part of the fetcher the model uses (consumer-defined interface)
type albumFetcher interface {
	FetchAlbumList() *deferred.Deferred[domain.Payload]
}

// Model is the main Bubble Tea model. It owns the display record and
// replaces it wholesale when the album list arrives.
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	fetcher albumFetcher
	logger  *slog.Logger

	// Data
	record  domain.DisplayRecord
	Loading bool

	// UI Components
	RecordView *components.RecordView
	Alert      components.AlertModal
	pending    []AlertMsg // alerts waiting behind the visible one

	// Dimensions
	Width  int
	Height int

	SpinnerFrame int
}

// NewModel creates the model holding the placeholder record
func NewModel(fetcher albumFetcher, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	record := domain.PlaceholderRecord()
	view := components.NewRecordView("Albums")
	view.SetRecord(record)

	return Model{
		State:      StateBrowsing,
		fetcher:    fetcher,
		logger:     logger,
		record:     record,
		Loading:    true,
		RecordView: view,
		Alert:      components.NewAlertModal(),
	}
}

// Record returns the record currently held
func (m Model) Record() domain.DisplayRecord {
	return m.record
}

// Init subscribes to the album list. Bubble Tea calls it once per program.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		SubscribeCmd(m.fetcher.FetchAlbumList()),
		TickCmd(100*time.Millisecond),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		if !m.Loading {
			return m, nil
		}
		m.SpinnerFrame++
		return m, TickCmd(100 * time.Millisecond)

	case AlbumsLoadedMsg:
		m.Loading = false
		m.logger.Info("album list received", "payload", msg.Payload)
		m.record = domain.RecordFromPayload(msg.Payload)
		m.RecordView.SetRecord(m.record)
		return m, nil

	case FetchFailedMsg:
		// The notifier has already shown the failure; the record stays as is.
		m.Loading = false
		return m, nil

	case AlertMsg:
		m.State = StateBrowsing
		if m.Alert.IsVisible() {
			m.pending = append(m.pending, msg)
			return m, nil
		}
		m.Alert.Show(msg.Text, msg.Ack)
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An alert takes every key until dismissed
	if m.Alert.IsVisible() {
		if msg.Type == tea.KeyCtrlC {
			m.Alert.Dismiss()
			return m, tea.Quit
		}
		if key.Matches(msg, Keys.Dismiss) {
			m.Alert.Dismiss()
			m.showNextAlert()
		}
		return m, nil
	}

	// Any key closes help
	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	// Filter typing owns the keyboard
	if m.RecordView.IsFilterTyping() {
		return m, m.RecordView.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Filter):
		if !m.RecordView.IsFiltering() {
			m.RecordView.ToggleFilter()
			return m, nil
		}
	}

	return m, m.RecordView.Update(msg)
}

// showNextAlert pops the next queued alert, if any
func (m *Model) showNextAlert() {
	if len(m.pending) == 0 {
		return
	}
	next := m.pending[0]
	m.pending = m.pending[1:]
	m.Alert.Show(next.Text, next.Ack)
}

// updateLayout sizes components to the window
func (m *Model) updateLayout() {
	contentHeight := m.Height - ChromeHeight
	if contentHeight < components.BorderHeight+1 {
		contentHeight = components.BorderHeight + 1
	}
	m.RecordView.SetSize(m.Width, contentHeight)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	// An alert is drawn over everything, help included
	if m.Alert.IsVisible() {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Alert.View())
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.RecordView.View(),
		m.renderFooter(),
	)
}
