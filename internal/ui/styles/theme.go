package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary lipgloss.Color
	Accent  lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// UI element colors
	Border    lipgloss.Color
	Selection lipgloss.Color

	// Task row colors
	TaskText     lipgloss.Color
	MarkerBorder lipgloss.Color
	Divider      lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "tokyo-night",

	Background:    lipgloss.Color("#1a1b26"),
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary: lipgloss.Color("#7aa2f7"),
	Accent:  lipgloss.Color("#7dcfff"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),

	Border:    lipgloss.Color("#3b4261"),
	Selection: lipgloss.Color("#33467c"),

	TaskText:     lipgloss.Color("#c0caf5"),
	MarkerBorder: lipgloss.Color("#565f89"),
	Divider:      lipgloss.Color("#3b4261"),
}

// Ignite is a light theme with green completion markers
var Ignite = Theme{
	Name: "ignite",

	Background:    lipgloss.Color("#FFFFFF"),
	Foreground:    lipgloss.Color("#3D3D4D"),
	ForegroundDim: lipgloss.Color("#B2B2B2"),

	Primary: lipgloss.Color("#8257E5"),
	Accent:  lipgloss.Color("#8257E5"),

	Success: lipgloss.Color("#1DB863"),
	Warning: lipgloss.Color("#E1B600"),
	Error:   lipgloss.Color("#E83F5B"),

	Border:    lipgloss.Color("#EBEBEB"),
	Selection: lipgloss.Color("#EBEBEB"),

	TaskText:     lipgloss.Color("#666666"),
	MarkerBorder: lipgloss.Color("#B2B2B2"),
	Divider:      lipgloss.Color("#C4C4C4"),
}

// Themes lists the available themes by name
var Themes = map[string]Theme{
	TokyoNight.Name: TokyoNight,
	Ignite.Name:     Ignite,
}

// Current holds the active theme
var Current = TokyoNight

// SetTheme makes the named theme current. Unknown names keep the current theme
// and report false.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if ok {
		Current = t
	}
	return ok
}

// MaxWidth is the maximum content width for the app (classic terminal width)
const MaxWidth = 80

// ContentWidth returns the actual content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView wraps content and centers it horizontally if terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// CenterOffset returns the left padding CenterView adds for a terminal width
func CenterOffset(terminalWidth int) int {
	if terminalWidth <= MaxWidth {
		return 0
	}
	return (terminalWidth - MaxWidth) / 2
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	// Title bar
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Rows
	Row         lipgloss.Style
	RowSelected lipgloss.Style

	// Task row parts
	Marker       lipgloss.Style
	MarkerDone   lipgloss.Style
	TaskText     lipgloss.Style
	TaskTextDone lipgloss.Style
	TaskInput    lipgloss.Style
	Cursor       lipgloss.Style
	Icon         lipgloss.Style
	IconDanger   lipgloss.Style
	Divider      lipgloss.Style

	// Dialogs
	Dialog        lipgloss.Style
	Button        lipgloss.Style
	ButtonPrimary lipgloss.Style

	// Help text
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusWarn  lipgloss.Style
	StatusError lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Row: lipgloss.NewStyle().
			Padding(0, 1),

		RowSelected: lipgloss.NewStyle().
			Background(t.Selection).
			Padding(0, 1),

		Marker: lipgloss.NewStyle().
			Foreground(t.MarkerBorder),

		MarkerDone: lipgloss.NewStyle().
			Foreground(t.Success).
			Bold(true),

		TaskText: lipgloss.NewStyle().
			Foreground(t.TaskText),

		TaskTextDone: lipgloss.NewStyle().
			Foreground(t.Success).
			Strikethrough(true),

		TaskInput: lipgloss.NewStyle().
			Foreground(t.Foreground),

		Cursor: lipgloss.NewStyle().
			Foreground(t.Accent),

		Icon: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		IconDanger: lipgloss.NewStyle().
			Foreground(t.Error),

		Divider: lipgloss.NewStyle().
			Foreground(t.Divider),

		Dialog: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),

		StatusWarn: lipgloss.NewStyle().
			Foreground(t.Warning).
			Padding(0, 1),

		StatusError: lipgloss.NewStyle().
			Foreground(t.Error).
			Padding(0, 1),
	}
}
