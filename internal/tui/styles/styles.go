package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Accent     = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Red        = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)

// Panel styles
var (
	RecordStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)
)

// Modal styles
var (
	AlertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Padding(1, 2).
			Background(SlateDark)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Accent)
)

// SpinnerFrames are the braille frames of the loading spinner
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Filter styles
var (
	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true)
)

// Truncate truncates a string to the given display width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// RenderRow renders one key/value row, filling width with a uniform
// background when selected.
func RenderRow(key, value string, selected bool, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(Accent)
	valStyle := lipgloss.NewStyle().Foreground(LightGray)
	if selected {
		keyStyle = keyStyle.Background(SlateLight).Bold(true)
		valStyle = valStyle.Foreground(White).Background(SlateLight)
	}

	keyText := key + ": "
	valText := Truncate(value, width-lipgloss.Width(keyText)-2)

	result := keyStyle.Render(keyText) + valStyle.Render(valText)

	// Add padding to fill width (subtract 2 for left/right margin)
	padding := width - lipgloss.Width(keyText) - lipgloss.Width(valText) - 2
	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(SlateLight)
	}
	if padding > 0 {
		result += marginStyle.Render(spaces(padding))
	}

	margin := marginStyle.Render(" ")
	return margin + result + margin
}
