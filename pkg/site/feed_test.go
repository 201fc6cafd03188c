package site_test

import (
	"encoding/xml"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdsite/pkg/site"
)

func TestFeed(t *testing.T) {
	t.Parallel()

	out, err := site.Feed(samplePosts(), site.FeedOptions{
		BaseURL:  "https://example.com/blog/",
		Title:    "Blog",
		Language: "zh-CN",
	})
	require.NoError(t, err)

	feed := string(out)
	assert.True(t, strings.HasPrefix(feed, xml.Header))
	assert.Contains(t, feed, `<rss version="2.0">`)
	assert.Contains(t, feed, "<link>https://example.com/blog/posts/repo/a.html</link>")
	assert.Contains(t, feed, "<description>Blog</description>")
	assert.Contains(t, feed, "<category>go</category>")
	assert.Contains(t, feed, "<lastBuildDate>Wed, 01 May 2024 00:00:00 +0000</lastBuildDate>")

	guid := uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://example.com/blog/posts/repo/a.html")).String()
	assert.Contains(t, feed, `<guid isPermaLink="false">`+guid+`</guid>`)
	assert.Equal(t, guid, site.PostGUID("https://example.com/blog/posts/repo/a.html"))

	assert.Less(t, strings.Index(feed, "a-new"), strings.Index(feed, "<title>old</title>"))
}

func TestFeed_Limit(t *testing.T) {
	t.Parallel()

	posts := make([]site.Post, 0, 120)
	for i := range 120 {
		posts = append(posts, site.Post{
			Title: fmt.Sprintf("p%03d", i),
			Date:  "2024-01-01",
			URL:   fmt.Sprintf("posts/repo/p%03d.html", i),
		})
	}

	out, err := site.Feed(posts, site.FeedOptions{BaseURL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, site.DefaultFeedLimit, strings.Count(string(out), "<item>"))

	out, err = site.Feed(posts, site.FeedOptions{BaseURL: "https://example.com", Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(out), "<item>"))
}

func TestSitemapAndRobots(t *testing.T) {
	t.Parallel()

	out, err := site.Sitemap(samplePosts()[:2], "https://example.com")
	require.NoError(t, err)

	sitemap := string(out)
	assert.Contains(t, sitemap, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, sitemap, "<loc>https://example.com/</loc>")
	assert.Contains(t, sitemap, "<loc>https://example.com/posts/repo/b.html</loc>")
	assert.Contains(t, sitemap, "<lastmod>2024-05-01</lastmod>")

	assert.Equal(t, "User-agent: *\nAllow: /\n\nSitemap: https://example.com/sitemap.xml\n",
		string(site.Robots("https://example.com/")))
}
