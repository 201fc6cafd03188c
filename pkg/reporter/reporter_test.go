package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdsite/pkg/build"
	"github.com/yaklabco/gomdsite/pkg/reporter"
	"github.com/yaklabco/gomdsite/pkg/runner"
	"github.com/yaklabco/gomdsite/pkg/site"
	"github.com/yaklabco/gomdsite/pkg/toc"
)

func sampleReport() *reporter.Report {
	written := runner.FileOutcome{
		Source: build.Source{Path: "/site/posts/repo/a.md", Category: "repo", Rel: "a.md"},
		Result: &build.Result{
			OutputPath: "/site/public/posts/repo/a.html",
			Post:       site.Post{Title: "A & B", Date: "2024-01-01", URL: "posts/repo/a.html"},
			Entries:    []toc.Entry{{Level: 1, Text: "A", ID: "heading-1"}},
			Bytes:      120,
			Written:    true,
		},
	}
	unchanged := runner.FileOutcome{
		Source: build.Source{Path: "/site/posts/repo/b.md", Category: "repo", Rel: "b.md"},
		Result: &build.Result{Post: site.Post{URL: "posts/repo/b.html"}, Bytes: 80},
	}
	failed := runner.FileOutcome{
		Source: build.Source{Path: "/site/posts/WorkNotes/c.md", Category: "WorkNotes", Rel: "c.md"},
		Error:  errors.New("write failure: disk full"),
	}

	return &reporter.Report{
		Result: &runner.Result{
			Files: []runner.FileOutcome{failed, written, unchanged},
			Stats: runner.Stats{
				FilesDiscovered: 3,
				FilesProcessed:  2,
				FilesWritten:    1,
				FilesUnchanged:  1,
				FilesErrored:    1,
				Headings:        1,
				Bytes:           200,
				ByCategory: map[string]runner.CategoryStats{
					"repo":      {Pages: 2, Written: 1},
					"WorkNotes": {Errored: 1},
				},
			},
		},
		Artifacts: []site.WriteResult{
			{Path: site.PathPostsJS, Bytes: 10, Written: true},
			{Path: site.PathPostsJSON, Bytes: 12},
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "json", want: reporter.FormatJSON},
		{input: "summary", want: reporter.FormatSummary},
		{input: "sarif", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(testCase.input)
			if testCase.wantErr {
				require.ErrorIs(t, err, reporter.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	for _, format := range []reporter.Format{"", reporter.FormatText, reporter.FormatJSON, reporter.FormatSummary} {
		rep, err := reporter.New(reporter.Options{Writer: &buf, Format: format})
		require.NoError(t, err)
		assert.NotNil(t, rep)
	}

	_, err := reporter.New(reporter.Options{Writer: &buf, Format: "xml"})
	require.ErrorIs(t, err, reporter.ErrUnknownFormat)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  "/site",
	})

	failed, err := rep.Report(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	out := buf.String()
	assert.Contains(t, out, "  failed     posts/WorkNotes/c.md: write failure: disk full\n")
	assert.Contains(t, out, "  wrote      posts/repo/a.html\n")
	assert.NotContains(t, out, "posts/repo/b.html", "unchanged pages are quiet")
	assert.Contains(t, out, "  wrote      data/posts-data.js\n")
	assert.NotContains(t, out, "posts.json")
	assert.Contains(t, out, "2 pages built (1 written, 1 unchanged), 1 failed\n")
}

func TestTextReporter_VerboseAndDryRun(t *testing.T) {
	t.Parallel()

	report := sampleReport()
	report.DryRun = true

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true, Verbose: true})

	_, err := rep.Report(context.Background(), report)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "  unchanged  posts/repo/b.html\n")
	assert.Contains(t, out, "/site/posts/WorkNotes/c.md")
	assert.Contains(t, out, "dry run: 2 pages built")
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	failed, err := rep.Report(context.Background(), &reporter.Report{Result: &runner.Result{}})
	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Equal(t, "No pages found\n", buf.String())
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, WorkingDir: "/site"})

	failed, err := rep.Report(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.Contains(t, buf.String(), `"title": "A & B"`, "HTML characters are not escaped")

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1", output.Version)
	require.Len(t, output.Pages, 3)
	assert.Equal(t, reporter.JSONPage{
		Source:   "posts/WorkNotes/c.md",
		Category: "WorkNotes",
		Error:    "write failure: disk full",
	}, output.Pages[0])
	assert.Equal(t, reporter.JSONPage{
		Source:   "posts/repo/a.md",
		Category: "repo",
		URL:      "posts/repo/a.html",
		Output:   "public/posts/repo/a.html",
		Title:    "A & B",
		Date:     "2024-01-01",
		Headings: 1,
		Bytes:    120,
		Written:  true,
	}, output.Pages[1])
	assert.Len(t, output.Artifacts, 2)
	assert.Equal(t, 1, output.Summary.FilesErrored)
	assert.Equal(t, runner.CategoryStats{Pages: 2, Written: 1}, output.Summary.ByCategory["repo"])
}

func TestJSONReporter_Nil(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := reporter.NewJSONReporter(reporter.Options{Writer: &buf}).Report(context.Background(), nil)
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Empty(t, output.Pages)
	assert.NotNil(t, output.Pages)
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewSummaryReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		Categories:  []string{"repo", "WorkNotes"},
	})

	failed, err := rep.Report(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	out := buf.String()
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "2 site files, 1 written")
	assert.Contains(t, out, "Build finished with errors")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("repo")), bytes.Index(buf.Bytes(), []byte("WorkNotes")))
}
