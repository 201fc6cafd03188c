package site

import (
	"embed"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/flosch/pongo2/v6"

	"github.com/yaklabco/gomdsite/pkg/config"
)

//go:embed templates
var embedded embed.FS

const (
	pageTemplate = "page.html"
	tocScript    = "toc.js"
)

// PageData is everything the page template renders besides the post itself.
type PageData struct {
	Post Post

	// Content is the rendered body fragment.
	Content string

	// TOC is the rendered sidebar, or "".
	TOC string

	SiteTitle string
	Author    string
	Language  string
	BaseURL   string

	// Nav lists the categories linked from the header.
	Nav []config.Category
}

// Renderer executes the page template. Templates found in an override
// directory shadow the embedded defaults of the same name.
type Renderer struct {
	page   *pongo2.Template
	script []byte
}

// NewRenderer loads the page template, preferring templateDir when set.
func NewRenderer(templateDir string) (*Renderer, error) {
	builtin, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("%w: embedded templates: %w", ErrTemplate, err)
	}

	var loaders []pongo2.TemplateLoader
	if templateDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(templateDir)
		if err != nil {
			return nil, fmt.Errorf("%w: template dir %s: %w", ErrTemplate, templateDir, err)
		}
		loaders = append(loaders, loader)
	}
	loaders = append(loaders, pongo2.NewFSLoader(builtin))

	set := pongo2.NewSet("gomdsite", loaders...)

	page, err := set.FromFile(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", ErrTemplate, pageTemplate, err)
	}

	script, err := fs.ReadFile(builtin, tocScript)
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", ErrTemplate, tocScript, err)
	}

	return &Renderer{page: page, script: script}, nil
}

// RenderPage renders the complete HTML document for one post. Asset links
// are made relative to the page's own location.
func (r *Renderer) RenderPage(data PageData) (string, error) {
	post := data.Post
	prefix := Prefix(post.URL)

	title := post.Title
	if title == "" {
		title = "Untitled"
	}

	nav := make([]map[string]string, 0, len(data.Nav))
	for _, cat := range data.Nav {
		label := cat.Title
		if label == "" {
			label = cat.Dir
		}
		nav = append(nav, map[string]string{
			"href":  prefix + cat.Slug() + ".html",
			"title": label,
		})
	}

	canonical := ""
	if data.BaseURL != "" {
		canonical = joinURL(data.BaseURL, post.URL)
	}

	year := ""
	if parsed, ok := ParseDate(post.Date); ok {
		year = strconv.Itoa(parsed.Year())
	}

	out, err := r.page.Execute(pongo2.Context{
		"title":           title,
		"date":            post.Date,
		"display_date":    DisplayDate(post.Date),
		"excerpt":         post.Excerpt,
		"tags":            post.Tags,
		"cover":           post.Cover,
		"reading_minutes": post.ReadingMinutes,
		"url":             post.URL,
		"canonical_url":   canonical,
		"content":         data.Content,
		"toc":             data.TOC,
		"prefix":          prefix,
		"site_title":      data.SiteTitle,
		"author":          data.Author,
		"language":        data.Language,
		"nav":             nav,
		"year":            year,
	})
	if err != nil {
		return "", fmt.Errorf("%w: render %s: %w", ErrTemplate, post.URL, err)
	}

	return out, nil
}

// TOCScript returns the sidebar behaviour script shipped with the pages.
func (r *Renderer) TOCScript() []byte {
	return r.script
}
