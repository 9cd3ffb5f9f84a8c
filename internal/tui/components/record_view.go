package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/albumview/internal/domain"
	"github.com/mmcdole/albumview/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

const (
	// BorderHeight is the rows taken by the top and bottom border
	BorderHeight = 2
	// headerLines is the title line plus the position line
	headerLines = 2
)

// RecordView is a scrollable, filterable list of a record's rows
type RecordView struct {
	title  string
	rows   []domain.Row
	width  int
	height int

	cursor     int
	offset     int
	maxVisible int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filteredIdx  []int // indices into rows
}

// NewRecordView creates an empty record view
func NewRecordView(title string) *RecordView {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.AccentStyle

	return &RecordView{
		title:       title,
		filterInput: ti,
	}
}

// SetRecord replaces the rows shown. Cursor and filter are reset.
func (v *RecordView) SetRecord(rec domain.DisplayRecord) {
	v.rows = rec.Rows()
	v.cursor = 0
	v.offset = 0
	if v.filterActive {
		v.applyFilter()
	}
}

// SetSize sets the outer size of the view
func (v *RecordView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.recalcMaxVisible()
	v.ensureVisible()
}

// Rows returns the visible rows after filtering
func (v *RecordView) Rows() []domain.Row {
	if v.filteredIdx == nil {
		return v.rows
	}
	out := make([]domain.Row, len(v.filteredIdx))
	for i, idx := range v.filteredIdx {
		out[i] = v.rows[idx]
	}
	return out
}

// Selected returns the row under the cursor
func (v *RecordView) Selected() (domain.Row, bool) {
	rows := v.Rows()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return domain.Row{}, false
	}
	return rows[v.cursor], true
}

// ToggleFilter activates the filter input
func (v *RecordView) ToggleFilter() {
	v.filterActive = true
	v.filterInput.Focus()
	v.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (v *RecordView) IsFiltering() bool {
	return v.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (v *RecordView) IsFilterTyping() bool {
	return v.filterActive && v.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all rows
func (v *RecordView) ClearFilter() {
	v.filterActive = false
	v.filteredIdx = nil
	v.filterInput.SetValue("")
	v.filterInput.Blur()
	v.recalcMaxVisible()
}

// Update handles navigation and filter input
func (v *RecordView) Update(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)
	km := RecordViewKeys

	// Typing mode
	if v.IsFilterTyping() {
		if isKey {
			switch {
			case key.Matches(keyMsg, km.Escape):
				v.ClearFilter()
				return nil
			case key.Matches(keyMsg, km.Enter):
				// Accept filter, blur input to allow navigation
				v.filterInput.Blur()
				return nil
			case key.Matches(keyMsg, km.Backspace):
				if v.filterInput.Value() == "" {
					v.ClearFilter()
					return nil
				}
			}
		}

		var cmd tea.Cmd
		v.filterInput, cmd = v.filterInput.Update(msg)
		v.applyFilter()
		return cmd
	}

	if !isKey {
		return nil
	}

	if v.filterActive {
		switch {
		case key.Matches(keyMsg, km.Escape):
			v.ClearFilter()
			return nil
		case key.Matches(keyMsg, km.Filter):
			v.filterInput.Focus()
			return nil
		}
	}

	count := len(v.Rows())
	if count == 0 {
		return nil
	}

	switch {
	case key.Matches(keyMsg, km.Down):
		if v.cursor < count-1 {
			v.cursor++
		}
	case key.Matches(keyMsg, km.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(keyMsg, km.Home):
		v.cursor = 0
	case key.Matches(keyMsg, km.End):
		v.cursor = count - 1
	case key.Matches(keyMsg, km.HalfDown):
		v.cursor = min(v.cursor+max(v.maxVisible/2, 1), count-1)
	case key.Matches(keyMsg, km.HalfUp):
		v.cursor = max(v.cursor-max(v.maxVisible/2, 1), 0)
	}
	v.ensureVisible()
	return nil
}

// View renders the record panel
func (v *RecordView) View() string {
	innerWidth := v.width - 4 // border + horizontal padding
	if innerWidth < 10 {
		innerWidth = 10
	}

	rows := v.Rows()

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(v.title))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(v.position(len(rows))))
	b.WriteString("\n")

	if v.filterActive {
		b.WriteString(v.filterInput.View())
		b.WriteString("\n")
	}

	if len(rows) == 0 {
		b.WriteString(styles.DimStyle.Render("(no fields)"))
	}

	end := min(v.offset+v.maxVisible, len(rows))
	for i := v.offset; i < end; i++ {
		b.WriteString(styles.RenderRow(rows[i].Key, rows[i].Value, i == v.cursor, innerWidth))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	style := styles.RecordStyle.Width(innerWidth + 2)
	if v.height > BorderHeight {
		style = style.Height(v.height - BorderHeight)
	}
	return style.Render(lipgloss.NewStyle().MaxWidth(innerWidth).Render(b.String()))
}

func (v *RecordView) position(count int) string {
	if count == 0 {
		return "0 fields"
	}
	label := "fields"
	if count == 1 {
		label = "field"
	}
	if v.filteredIdx != nil {
		return fmt.Sprintf("%d/%d %s · %d matching", v.cursor+1, count, label, len(v.filteredIdx))
	}
	return fmt.Sprintf("%d/%d %s", v.cursor+1, count, label)
}

func (v *RecordView) applyFilter() {
	query := v.filterInput.Value()
	if query == "" {
		v.filteredIdx = nil
		return
	}

	lines := make([]string, len(v.rows))
	for i, r := range v.rows {
		lines[i] = strings.ToLower(r.String())
	}

	matches := fuzzy.Find(strings.ToLower(query), lines)

	v.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		v.filteredIdx[i] = match.Index
	}

	// Reset cursor to first match
	v.cursor = 0
	v.offset = 0
}

func (v *RecordView) recalcMaxVisible() {
	v.maxVisible = v.height - BorderHeight - headerLines
	if v.filterActive {
		v.maxVisible--
	}
	if v.maxVisible < 1 {
		v.maxVisible = 1
	}
}

func (v *RecordView) ensureVisible() {
	if v.maxVisible <= 0 {
		return
	}
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+v.maxVisible {
		v.offset = v.cursor - v.maxVisible + 1
	}
}
