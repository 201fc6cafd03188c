// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Page lines
	FilePath  lipgloss.Style
	URL       lipgloss.Style
	Written   lipgloss.Style
	Unchanged lipgloss.Style

	// Summary
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table
	TableHeader   lipgloss.Style
	TableBorder   lipgloss.Style
	TableCell     lipgloss.Style
	TableErrorRow lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		FilePath:  lipgloss.NewStyle().Bold(true),
		URL:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Written:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Unchanged: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")).Padding(0, 1),
		TableBorder:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableCell:     lipgloss.NewStyle().Padding(0, 1),
		TableErrorRow: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	cell := plain.Padding(0, 1)
	return &Styles{
		Error:         plain,
		Warning:       plain,
		FilePath:      plain,
		URL:           plain,
		Written:       plain,
		Unchanged:     plain,
		SummaryTitle:  plain,
		SummaryValue:  plain,
		Success:       plain,
		Failure:       plain,
		TableHeader:   cell,
		TableBorder:   plain,
		TableCell:     cell,
		TableErrorRow: cell,
		Dim:           plain,
		Bold:          plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
