// Package build turns one markdown source into a rendered page: front matter
// split, markdown render, optional sanitizing, heading anchors, and the page
// template.
package build

import (
	"github.com/yaklabco/gomdsite/pkg/excerpt"
	"github.com/yaklabco/gomdsite/pkg/frontmatter"
	"github.com/yaklabco/gomdsite/pkg/markdown"
	"github.com/yaklabco/gomdsite/pkg/sanitize"
	"github.com/yaklabco/gomdsite/pkg/toc"
)

// RenderOptions configures Render.
type RenderOptions struct {
	FrontMatter frontmatter.Mode

	// AssetPrefix is prepended to relative image sources.
	AssetPrefix string

	DetectLanguage bool
	Sanitize       bool

	// TOCTitle is the sidebar heading. Empty uses toc.DefaultTitle.
	TOCTitle string
}

// Rendered is the result of rendering one document.
type Rendered struct {
	Document frontmatter.Document

	// HTML is the body fragment with heading ids assigned.
	HTML string

	// Entries is the heading outline in document order.
	Entries []toc.Entry

	// TOC is the rendered sidebar, or "" when there are no headings.
	TOC string

	Summary excerpt.Summary
}

// Render converts raw post source to HTML. It never fails: content that does
// not parse degrades to literal text.
func Render(raw []byte, opts RenderOptions) *Rendered {
	mode := opts.FrontMatter
	if !mode.IsValid() {
		mode = frontmatter.ModeSimple
	}

	doc := frontmatter.SplitMode(string(raw), mode)

	fragment := markdown.Render(doc.Body, markdown.Options{
		AssetPrefix:    opts.AssetPrefix,
		DetectLanguage: opts.DetectLanguage,
	})
	if opts.Sanitize {
		fragment = sanitize.HTML(fragment)
	}

	withIDs, entries := toc.Build(fragment)

	return &Rendered{
		Document: doc,
		HTML:     withIDs,
		Entries:  entries,
		TOC:      toc.RenderSidebar(entries, opts.TOCTitle),
		Summary:  excerpt.Extract([]byte(doc.Body), 0),
	}
}
