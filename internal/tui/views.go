package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/albumview/internal/tui/styles"
)

// renderFooter renders the status line below the record
func (m Model) renderFooter() string {
	var left string
	if m.Loading {
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Fetching albums...")
	} else if sel, ok := m.RecordView.Selected(); ok {
		left = styles.DimStyle.Render(styles.Truncate(sel.Key, m.Width/2))
	}

	right := styles.KeyStyle.Render("/") + styles.DimStyle.Render(" filter  ") +
		styles.KeyStyle.Render("?") + styles.DimStyle.Render(" help")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen from the key bindings
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Keys") + "\n\n")
	for _, binding := range Keys.HelpBindings() {
		h := binding.Help()
		b.WriteString("  " + styles.KeyStyle.Render(fmt.Sprintf("%-8s", h.Key)) + "  " + h.Desc + "\n")
	}
	b.WriteString("\n" + styles.DimStyle.Render("Press any key to return..."))

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.AlertStyle.BorderForeground(styles.Accent).Render(b.String()))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}
