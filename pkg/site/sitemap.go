package site

import (
	"encoding/xml"
	"fmt"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap renders sitemap.xml listing the site root and every post.
func Sitemap(posts []Post, baseURL string) ([]byte, error) {
	sorted := append([]Post(nil), posts...)
	SortPosts(sorted)

	set := urlSet{XMLNS: sitemapNamespace, URLs: make([]sitemapURL, 0, len(sorted)+1)}
	set.URLs = append(set.URLs, sitemapURL{Loc: joinURL(baseURL, "")})

	for _, post := range sorted {
		entry := sitemapURL{Loc: joinURL(baseURL, post.URL)}
		if modified, ok := ParseDate(post.Date); ok {
			entry.LastMod = modified.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, entry)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}

	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// Robots renders robots.txt pointing crawlers at the sitemap.
func Robots(baseURL string) []byte {
	return []byte("User-agent: *\nAllow: /\n\nSitemap: " + joinURL(baseURL, "sitemap.xml") + "\n")
}
