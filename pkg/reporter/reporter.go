// Package reporter prints the outcome of a site build.
package reporter

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/gomdsite/pkg/runner"
	"github.com/yaklabco/gomdsite/pkg/site"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown format")

// Report is everything a build produced.
type Report struct {
	Result *runner.Result

	// Artifacts are the site-wide files written after the pages.
	Artifacts []site.WriteResult

	DryRun bool
}

// Reporter formats and writes build results.
type Reporter interface {
	// Report writes formatted output for report. It returns the number of
	// pages that failed and any write error.
	Report(ctx context.Context, report *Report) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// displayPath makes path relative to workDir when that is shorter.
func displayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || len(rel) >= len(path) {
		return path
	}
	return filepath.ToSlash(rel)
}

func failures(report *Report) int {
	if report == nil || report.Result == nil {
		return 0
	}
	return report.Result.Stats.FilesErrored
}
