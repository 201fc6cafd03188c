package build

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/gomdsite/internal/logging"
	"github.com/yaklabco/gomdsite/pkg/config"
	"github.com/yaklabco/gomdsite/pkg/frontmatter"
	"github.com/yaklabco/gomdsite/pkg/fsutil"
	"github.com/yaklabco/gomdsite/pkg/site"
	"github.com/yaklabco/gomdsite/pkg/toc"
)

// Pipeline error types for categorization.
var (
	// ErrRenderFailure indicates the page could not be rendered.
	ErrRenderFailure = errors.New("render failure")

	// ErrWriteFailure indicates the page could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// Source identifies one markdown file of the site.
type Source struct {
	// Path is the file path on disk.
	Path string

	// Category is the directory under the pages root the file lives in.
	Category string

	// Rel is the slash-separated path below the category directory.
	Rel string
}

// Name is the file name without its extension.
func (s Source) Name() string {
	base := path.Base(s.Rel)
	return strings.TrimSuffix(base, path.Ext(base))
}

// URL is the site-relative URL of the page generated from s.
func (s Source) URL(pagesDir string) string {
	rel := strings.TrimSuffix(s.Rel, path.Ext(s.Rel)) + ".html"
	return path.Join(pagesDir, s.Category, rel)
}

// Result contains the outcome of processing one source.
type Result struct {
	Source Source

	// OutputPath is where the page was, or in dry-run mode would be, written.
	OutputPath string

	// Post is the index entry for the page.
	Post site.Post

	Entries []toc.Entry

	// Bytes is the size of the rendered page.
	Bytes int

	// Written is false when the page on disk was already up to date or
	// nothing was written because of a dry run.
	Written bool
}

// Pipeline renders and writes single pages. It is safe for concurrent use.
type Pipeline struct {
	cfg   *config.Config
	pages *site.Renderer
	now   func() time.Time
}

// NewPipeline creates a pipeline for cfg rendering pages with pages.
func NewPipeline(cfg *config.Config, pages *site.Renderer) *Pipeline {
	return &Pipeline{cfg: cfg, pages: pages, now: time.Now}
}

// WithClock replaces the clock used for posts without a date.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// ProcessFile reads src, renders its page and writes it below the output root.
func (p *Pipeline) ProcessFile(ctx context.Context, src Source) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("process %s: %w", src.Path, ctx.Err())
	default:
	}

	logger := logging.FromContext(ctx)

	content, _, err := fsutil.ReadFile(ctx, src.Path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	url := src.URL(p.cfg.PagesDir)

	rendered := Render(content, p.RenderOptions(url))
	if !rendered.Document.HasFrontMatter() {
		logger.Debug("no front matter, using defaults", logging.FieldPath, src.Path)
	}
	post := PostFromDocument(rendered, src, url, p.now())

	page, err := p.Page(rendered, post)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailure, src.Path, err)
	}

	result := &Result{
		Source:     src,
		OutputPath: filepath.Join(p.cfg.Output, filepath.FromSlash(url)),
		Post:       post,
		Entries:    rendered.Entries,
		Bytes:      len(page),
	}

	if !p.cfg.DryRun {
		written, err := fsutil.WriteAtomicIfChanged(ctx, result.OutputPath, []byte(page), fsutil.DefaultFileMode)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrWriteFailure, result.OutputPath, err)
		}
		result.Written = written
	}

	logger.Debug("page rendered",
		logging.FieldPath, src.Path,
		logging.FieldOutput, result.OutputPath,
		logging.FieldHeadings, len(rendered.Entries),
		logging.FieldWritten, result.Written,
	)

	return result, nil
}

// RenderOptions returns the render settings for a page published at url.
func (p *Pipeline) RenderOptions(url string) RenderOptions {
	return RenderOptions{
		FrontMatter:    frontmatter.Mode(p.cfg.FrontMatter),
		AssetPrefix:    site.Prefix(url),
		DetectLanguage: p.cfg.DetectCodeLanguage,
		Sanitize:       p.cfg.Sanitize,
		TOCTitle:       p.cfg.TOCTitle,
	}
}

// Page wraps a rendered document in the site's page template.
func (p *Pipeline) Page(rendered *Rendered, post site.Post) (string, error) {
	return p.pages.RenderPage(site.PageData{
		Post:      post,
		Content:   rendered.HTML,
		TOC:       rendered.TOC,
		SiteTitle: p.cfg.SiteTitle,
		Author:    p.cfg.Author,
		Language:  p.cfg.Language,
		BaseURL:   p.cfg.BaseURL,
		Nav:       p.cfg.Categories,
	})
}

// Now returns the pipeline clock's current time.
func (p *Pipeline) Now() time.Time {
	return p.now()
}

// PostFromDocument builds the index entry of a rendered source, filling
// fields the front matter leaves out: the title from the file name, the date
// from now, and the excerpt from the description or the first paragraph.
func PostFromDocument(rendered *Rendered, src Source, url string, now time.Time) site.Post {
	meta := rendered.Document.Metadata

	post := site.Post{
		Title:          meta.Get("title"),
		Date:           meta.Get("date"),
		Excerpt:        meta.Get("excerpt"),
		URL:            url,
		Tags:           meta.Strings("tags"),
		Cover:          meta.Get("cover"),
		Category:       src.Category,
		ReadingMinutes: rendered.Summary.ReadingMinutes,
	}

	if !meta.Has("title") {
		post.Title = src.Name()
	}
	if !meta.Has("date") {
		post.Date = now.Format(time.DateOnly)
	}
	switch {
	case meta.Has("excerpt"):
	case meta.Has("description"):
		post.Excerpt = meta.Get("description")
	default:
		post.Excerpt = rendered.Summary.Text
	}

	return post
}
