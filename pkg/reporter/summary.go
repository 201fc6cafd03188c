package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdsite/internal/ui/pretty"
)

// SummaryReporter prints a per-category table instead of page lines.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, report *Report) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report == nil || report.Result == nil || report.Result.Stats.FilesDiscovered == 0 {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(emptyStats()))
		return 0, nil
	}

	stats := report.Result.Stats
	fmt.Fprint(r.bw, r.styles.FormatCategoryTable(stats, r.opts.Categories))

	written := 0
	for _, artifact := range report.Artifacts {
		if artifact.Written {
			written++
		}
	}
	if len(report.Artifacts) > 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render(
			fmt.Sprintf("%d site files, %d written", len(report.Artifacts), written)))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(stats))
	}

	return failures(report), nil
}
