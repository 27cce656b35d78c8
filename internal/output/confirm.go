package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ConfirmStyle defines the type of confirmation prompt
type ConfirmStyle int

const (
	// StyleDefault is a neutral confirmation
	StyleDefault ConfirmStyle = iota
	// StyleDestructive is for potentially dangerous operations
	StyleDestructive
	// StyleInfo is for informational confirmations
	StyleInfo
)

// ConfirmOptions configures the confirm prompt behavior
type ConfirmOptions struct {
	// Style changes the visual appearance based on action type
	Style ConfirmStyle
	// Default sets whether Y or N is the default (true = Y, false = N)
	Default bool
	// HideHint hides the [y/N] hint
	HideHint bool
}

// Confirm prompts the user for confirmation with styled output.
// Returns true if the user confirmed, false otherwise.
func Confirm(prompt string) bool {
	return ConfirmWithOptions(prompt, ConfirmOptions{})
}

// ConfirmWithOptions prompts with custom options.
func ConfirmWithOptions(prompt string, opts ConfirmOptions) bool {
	return ConfirmWriter(os.Stdout, os.Stdin, prompt, opts)
}

// ConfirmDestructive prompts with warning styling and defaults to N.
// Used before overwriting files the user did not ask to replace.
func ConfirmDestructive(prompt string) bool {
	return ConfirmWithOptions(prompt, ConfirmOptions{
		Style:   StyleDestructive,
		Default: false,
	})
}

// ConfirmWriter prompts using the given writer and reader.
func ConfirmWriter(w io.Writer, r io.Reader, prompt string, opts ConfirmOptions) bool {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == ""
	}

	var icon string
	var iconStyle lipgloss.Style
	promptStyle := lipgloss.NewStyle()

	switch opts.Style {
	case StyleDestructive:
		icon = "⚠"
		iconStyle = WarnStyle.Bold(true)
		promptStyle = WarnStyle
	case StyleInfo:
		icon = "?"
		iconStyle = TitleStyle
	default:
		icon = "?"
		iconStyle = AccentStyle.Bold(true)
	}

	var hint string
	if !opts.HideHint {
		if opts.Default {
			hint = "[Y/n]"
		} else {
			hint = "[y/N]"
		}
	}

	if useColor {
		fmt.Fprintf(w, "%s %s %s ",
			iconStyle.Render(icon),
			promptStyle.Render(prompt),
			DimStyle.Render(hint),
		)
	} else {
		fmt.Fprintf(w, "%s %s %s ", icon, prompt, hint)
	}

	reader := bufio.NewReader(r)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))

	if answer == "" {
		return opts.Default
	}

	return answer == "y" || answer == "yes"
}
