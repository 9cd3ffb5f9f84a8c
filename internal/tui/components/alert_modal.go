package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/albumview/internal/tui/styles"
)

// AlertModal is a blocking notification that must be acknowledged.
// Closing it releases whoever is waiting on the ack channel.
type AlertModal struct {
	visible bool
	text    string
	ack     chan struct{}
}

// NewAlertModal creates a hidden alert modal
func NewAlertModal() AlertModal {
	return AlertModal{}
}

// Show displays text. ack, if non-nil, is closed when the alert is dismissed.
func (m *AlertModal) Show(text string, ack chan struct{}) {
	m.visible = true
	m.text = text
	m.ack = ack
}

// Dismiss hides the alert and acknowledges it
func (m *AlertModal) Dismiss() {
	if m.ack != nil {
		close(m.ack)
		m.ack = nil
	}
	m.visible = false
	m.text = ""
}

// IsVisible returns whether the alert is shown
func (m AlertModal) IsVisible() bool {
	return m.visible
}

// Text returns the message being shown
func (m AlertModal) Text() string {
	return m.text
}

// View renders the alert
func (m AlertModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 44

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Red).
		Bold(true).
		Width(modalWidth).
		Background(styles.SlateDark)

	textStyle := lipgloss.NewStyle().
		Foreground(styles.White).
		Width(modalWidth).
		Background(styles.SlateDark)

	hintStyle := lipgloss.NewStyle().
		Foreground(styles.DimGray).
		Width(modalWidth).
		Align(lipgloss.Right).
		Background(styles.SlateDark)

	spacer := lipgloss.NewStyle().
		Width(modalWidth).
		Background(styles.SlateDark).
		Render("")

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Request failed"),
		spacer,
		textStyle.Render(m.text),
		spacer,
		hintStyle.Render("[Enter] OK"),
	)

	return styles.AlertStyle.Render(content)
}
