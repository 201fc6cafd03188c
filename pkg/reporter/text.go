package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/gomdsite/internal/ui/pretty"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// pathColumnReserve is the width kept free for the label and error text.
const pathColumnReserve = 40

// TextReporter writes one line per written or failed page and a summary.
type TextReporter struct {
	opts      Options
	styles    *pretty.Styles
	bw        *bufio.Writer
	termWidth int
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:      opts,
		styles:    pretty.NewStyles(colorEnabled),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
		termWidth: getTerminalWidth(opts.Writer),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, report *Report) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report == nil || report.Result == nil || len(report.Result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(emptyStats()))
		}
		return 0, nil
	}

	maxPath := max(r.termWidth-pathColumnReserve, pathColumnReserve)

	for _, file := range report.Result.Files {
		if file.Error == nil && file.Result != nil && !file.Result.Written && !r.opts.Verbose {
			continue
		}
		path := pretty.TruncatePath(displayPath(file.Source.Path, r.opts.WorkingDir), maxPath)
		fmt.Fprint(r.bw, r.styles.FormatPageLine(file, path))
	}

	for _, artifact := range report.Artifacts {
		if !artifact.Written && !r.opts.Verbose {
			continue
		}
		fmt.Fprintf(r.bw, "  %s  %s\n", r.styles.Written.Render("wrote    "), r.styles.URL.Render(artifact.Path))
	}

	if r.opts.ShowSummary {
		line := r.styles.FormatSummaryOneLine(report.Result.Stats)
		if report.DryRun {
			line = r.styles.Dim.Render("dry run: ") + line
		}
		fmt.Fprint(r.bw, line)
	}

	return failures(report), nil
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
