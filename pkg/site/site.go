// Package site turns rendered posts into the files of a static blog: HTML
// pages, the posts-data.js index, posts.json, an RSS feed and a sitemap.
package site

import (
	"errors"
	"strings"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrTemplate indicates a page template failed to load or execute.
	ErrTemplate = errors.New("template error")
)

// Post is one entry of the site index. The JSON shape is what the blog's
// front-end scripts consume.
type Post struct {
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Excerpt string   `json:"excerpt"`
	URL     string   `json:"url"`
	Tags    []string `json:"tags"`
	Cover   string   `json:"cover"`

	// Category is the source directory the post was found in.
	Category string `json:"-"`

	// ReadingMinutes is the estimated reading time of the body.
	ReadingMinutes int `json:"-"`
}

// Depth is the number of directories between the output root and the page
// at url.
func Depth(url string) int {
	return strings.Count(strings.TrimPrefix(url, "/"), "/")
}

// Prefix returns the relative path from the page at url back to the output
// root, e.g. "../../" for "posts/repo/a.html".
func Prefix(url string) string {
	return strings.Repeat("../", Depth(url))
}

// dateLayouts are tried in order by ParseDate.
//
//nolint:gochecknoglobals // read-only
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006/01/02",
	"2006-1-2",
}

// ParseDate parses a front matter date.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// DisplayDate renders value as YYYY年MM月DD日. Unparseable dates are
// returned unchanged.
func DisplayDate(value string) string {
	parsed, ok := ParseDate(value)
	if !ok {
		return value
	}
	return parsed.Format("2006年01月02日")
}

// joinURL joins a base URL and a site-relative path with exactly one slash.
func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
