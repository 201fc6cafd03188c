package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	Format Format

	// Color controls colorized output: "auto" (default), "always" or "never".
	Color string

	// ShowSummary displays aggregate statistics after the page lines.
	ShowSummary bool

	// Verbose also lists pages that were already up to date.
	Verbose bool

	// WorkingDir is the directory source paths are shown relative to.
	// If empty, paths are kept as-is.
	WorkingDir string

	// Categories orders the rows of the summary table.
	Categories []string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
	}
}
