package runner

import (
	"github.com/yaklabco/gomdsite/pkg/build"
	"github.com/yaklabco/gomdsite/pkg/site"
)

// FileOutcome is the result of building one source.
type FileOutcome struct {
	Source build.Source

	// Result is nil when Error is set.
	Result *build.Result

	Error error
}

// CategoryStats counts pages of one category directory.
type CategoryStats struct {
	Pages   int `json:"pages"`
	Written int `json:"written"`
	Errored int `json:"errored"`
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int `json:"files_discovered"`
	FilesProcessed  int `json:"files_processed"`
	FilesWritten    int `json:"files_written"`
	FilesUnchanged  int `json:"files_unchanged"`
	FilesErrored    int `json:"files_errored"`

	// Headings is the number of TOC entries across all pages.
	Headings int `json:"headings"`

	// Bytes is the total size of the rendered pages.
	Bytes int `json:"bytes"`

	ByCategory map[string]CategoryStats `json:"by_category"`
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered source, ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any source failed to build.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Posts returns the index entries of every page that built, in file order.
func (r *Result) Posts() []site.Post {
	if r == nil {
		return nil
	}
	posts := make([]site.Post, 0, len(r.Files))
	for _, outcome := range r.Files {
		if outcome.Result != nil {
			posts = append(posts, outcome.Result.Post)
		}
	}
	return posts
}

func newStats() Stats {
	return Stats{ByCategory: make(map[string]CategoryStats)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	category := r.Stats.ByCategory[outcome.Source.Category]
	defer func() { r.Stats.ByCategory[outcome.Source.Category] = category }()

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		category.Errored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	category.Pages++

	if outcome.Result.Written {
		r.Stats.FilesWritten++
		category.Written++
	} else {
		r.Stats.FilesUnchanged++
	}

	r.Stats.Headings += len(outcome.Result.Entries)
	r.Stats.Bytes += outcome.Result.Bytes
}
