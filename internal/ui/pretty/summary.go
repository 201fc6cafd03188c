package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdsite/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordPage            = "page"
	wordPages           = "pages"
)

func pages(n int) string {
	if n == 1 {
		return wordPage
	}
	return wordPages
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 pages built (3 written, 9 unchanged), 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No pages found") + "\n"
	}

	line := fmt.Sprintf("%d %s built", stats.FilesProcessed, pages(stats.FilesProcessed))
	if stats.FilesErrored == 0 {
		line = s.Success.Render(line)
	}
	line += s.Dim.Render(fmt.Sprintf(" (%d written, %d unchanged)", stats.FilesWritten, stats.FilesUnchanged))

	if stats.FilesErrored > 0 {
		line += ", " + s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored))
	}

	return line + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value string) {
		builder.WriteString("  " + label + strings.Repeat(" ", max(1, 18-len(label))) + value + "\n")
	}

	row("Sources found:", s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)))
	row("Pages built:", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesWritten > 0 {
		row("Pages written:", s.Success.Render(strconv.Itoa(stats.FilesWritten)))
	}
	if stats.FilesUnchanged > 0 {
		row("Unchanged:", s.Dim.Render(strconv.Itoa(stats.FilesUnchanged)))
	}
	if stats.FilesErrored > 0 {
		row("Failed:", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	row("Headings:", s.SummaryValue.Render(strconv.Itoa(stats.Headings)))

	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Build finished with errors"))
	} else {
		builder.WriteString(s.Success.Render("Build succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
