package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gomdsite/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version   string         `json:"version"`
	DryRun    bool           `json:"dry_run"`
	Pages     []JSONPage     `json:"pages"`
	Artifacts []JSONArtifact `json:"artifacts"`
	Summary   runner.Stats   `json:"summary"`
}

// JSONPage is the outcome of one source.
type JSONPage struct {
	Source   string `json:"source"`
	Category string `json:"category"`
	URL      string `json:"url,omitempty"`
	Output   string `json:"output,omitempty"`
	Title    string `json:"title,omitempty"`
	Date     string `json:"date,omitempty"`
	Headings int    `json:"headings"`
	Bytes    int    `json:"bytes"`
	Written  bool   `json:"written"`
	Error    string `json:"error,omitempty"`
}

// JSONArtifact is one site-wide file.
type JSONArtifact struct {
	Path    string `json:"path"`
	Bytes   int    `json:"bytes"`
	Written bool   `json:"written"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, report *Report) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(r.buildOutput(report)); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return failures(report), nil
}

func (r *JSONReporter) buildOutput(report *Report) *JSONOutput {
	output := &JSONOutput{
		Version:   jsonSchemaVersion,
		Pages:     make([]JSONPage, 0),
		Artifacts: make([]JSONArtifact, 0),
		Summary:   emptyStats(),
	}

	if report == nil {
		return output
	}
	output.DryRun = report.DryRun

	for _, artifact := range report.Artifacts {
		output.Artifacts = append(output.Artifacts, JSONArtifact{
			Path:    artifact.Path,
			Bytes:   artifact.Bytes,
			Written: artifact.Written,
		})
	}

	if report.Result == nil {
		return output
	}
	output.Summary = report.Result.Stats

	for _, file := range report.Result.Files {
		page := JSONPage{
			Source:   displayPath(file.Source.Path, r.opts.WorkingDir),
			Category: file.Source.Category,
		}
		if file.Error != nil {
			page.Error = file.Error.Error()
		}
		if res := file.Result; res != nil {
			page.URL = res.Post.URL
			page.Output = displayPath(res.OutputPath, r.opts.WorkingDir)
			page.Title = res.Post.Title
			page.Date = res.Post.Date
			page.Headings = len(res.Entries)
			page.Bytes = res.Bytes
			page.Written = res.Written
		}
		output.Pages = append(output.Pages, page)
	}

	return output
}

func emptyStats() runner.Stats {
	return runner.Stats{ByCategory: map[string]runner.CategoryStats{}}
}
