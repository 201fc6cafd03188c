package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdsite/internal/ui/pretty"
	"github.com/yaklabco/gomdsite/pkg/build"
	"github.com/yaklabco/gomdsite/pkg/runner"
	"github.com/yaklabco/gomdsite/pkg/site"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name: "nothing found",
			want: "No pages found\n",
		},
		{
			name:  "single page",
			stats: runner.Stats{FilesDiscovered: 1, FilesProcessed: 1, FilesWritten: 1},
			want:  "1 page built (1 written, 0 unchanged)\n",
		},
		{
			name: "with failures",
			stats: runner.Stats{
				FilesDiscovered: 12, FilesProcessed: 11, FilesWritten: 3, FilesUnchanged: 8, FilesErrored: 1,
			},
			want: "11 pages built (3 written, 8 unchanged), 1 failed\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, styles.FormatSummaryOneLine(testCase.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	out := styles.FormatSummary(runner.Stats{
		FilesDiscovered: 4, FilesProcessed: 3, FilesWritten: 2, FilesUnchanged: 1, FilesErrored: 1, Headings: 9,
	})

	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "  Sources found:    4\n")
	assert.Contains(t, out, "  Pages written:    2\n")
	assert.Contains(t, out, "  Failed:           1\n")
	assert.Contains(t, out, "  Headings:         9\n")
	assert.Contains(t, out, "Build finished with errors")

	clean := styles.FormatSummary(runner.Stats{FilesDiscovered: 1, FilesProcessed: 1, FilesUnchanged: 1})
	assert.NotContains(t, clean, "Failed:")
	assert.NotContains(t, clean, "Pages written:")
	assert.Contains(t, clean, "Build succeeded")
}

func TestFormatPageLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	post := site.Post{URL: "posts/repo/a.html"}

	assert.Equal(t, "  wrote      posts/repo/a.html\n", styles.FormatPageLine(runner.FileOutcome{
		Result: &build.Result{Post: post, Written: true},
	}, "a.md"))

	assert.Equal(t, "  unchanged  posts/repo/a.html\n", styles.FormatPageLine(runner.FileOutcome{
		Result: &build.Result{Post: post},
	}, "a.md"))

	assert.Equal(t, "  failed     a.md: boom\n", styles.FormatPageLine(runner.FileOutcome{
		Error: errors.New("boom"),
	}, "a.md"))

	assert.Empty(t, styles.FormatPageLine(runner.FileOutcome{}, "a.md"))
}

func TestTruncatePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short.md", pretty.TruncatePath("short.md", 20))
	assert.Equal(t, "…o/日本語.md", pretty.TruncatePath("posts/repo/日本語.md", 9))
	assert.Equal(t, "abc", pretty.TruncatePath("abc", 0))
}

func TestFormatCategoryTable(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	out := styles.FormatCategoryTable(runner.Stats{
		FilesProcessed: 4,
		FilesWritten:   3,
		FilesErrored:   1,
		ByCategory: map[string]runner.CategoryStats{
			"repo":      {Pages: 2, Written: 2},
			"WorkNotes": {Pages: 1, Written: 1, Errored: 1},
			"":          {Pages: 1},
			"zzz":       {Pages: 0},
		},
	}, []string{"WorkNotes", "JpnLearning", "repo"})

	for _, want := range []string{"CATEGORY", "PAGES", "WRITTEN", "FAILED", "total", pretty.RootCategory} {
		assert.Contains(t, out, want)
	}

	workNotes := strings.Index(out, "WorkNotes")
	repo := strings.Index(out, "repo")
	root := strings.Index(out, pretty.RootCategory)
	zzz := strings.Index(out, "zzz")
	total := strings.Index(out, "total")

	assert.Less(t, workNotes, repo, "configured order first")
	assert.Less(t, repo, root, "unlisted categories follow")
	assert.Less(t, root, zzz, "unlisted categories are sorted")
	assert.Less(t, zzz, total, "totals last")
	assert.NotContains(t, out, "JpnLearning", "categories without pages are omitted")
}
