package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Catppuccin Mocha accents used across gi's terminal output.
var (
	ColorBlue   = lipgloss.Color("#89b4fa")
	ColorGreen  = lipgloss.Color("#a6e3a1")
	ColorYellow = lipgloss.Color("#f9e2af")
	ColorRed    = lipgloss.Color("#f38ba8")
	ColorMauve  = lipgloss.Color("#cba6f7")
	ColorDim    = lipgloss.Color("#6c7086")
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	WarnStyle    = lipgloss.NewStyle().Foreground(ColorYellow)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorRed)
	AccentStyle  = lipgloss.NewStyle().Foreground(ColorMauve)
	DimStyle     = lipgloss.NewStyle().Foreground(ColorDim)
)

// ColorEnabled reports whether styled output should be used when writing
// to w. Styling is disabled when NO_COLOR is set or when w is not a
// terminal (pipes, files, CI logs).
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
