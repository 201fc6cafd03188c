// Package runner builds every page of a site with a bounded worker pool.
package runner

import (
	"runtime"

	"github.com/yaklabco/gomdsite/pkg/config"
)

// Options controls a site build.
type Options struct {
	// Config is the resolved configuration. Source, PagesDir and Ignore
	// drive discovery.
	Config *config.Config

	// Categories restricts the build to these category directories.
	// Empty means every directory under the pages root.
	Categories []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the worker count. 0 or negative falls back to Config.Jobs,
	// then runtime.NumCPU().
	Jobs int
}

// SourceExtensions are the file extensions treated as posts.
func SourceExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveJobs(files int) int {
	jobs := o.Jobs
	if jobs <= 0 && o.Config != nil {
		jobs = o.Config.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return min(jobs, files)
}

func (o Options) wantsCategory(dir string) bool {
	if len(o.Categories) == 0 {
		return true
	}
	for _, want := range o.Categories {
		if want == dir {
			return true
		}
	}
	return false
}
