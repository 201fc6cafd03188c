package site

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultFeedLimit is the number of newest posts included in feed.xml.
const DefaultFeedLimit = 100

// FeedOptions configures the RSS feed.
type FeedOptions struct {
	BaseURL     string
	Title       string
	Description string
	Language    string

	// Limit caps the item count. 0 means DefaultFeedLimit.
	Limit int
}

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        rssGUID  `xml:"guid"`
	PubDate     string   `xml:"pubDate,omitempty"`
	Description string   `xml:"description,omitempty"`
	Categories  []string `xml:"category"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// PostGUID returns the stable feed identifier of the post at link.
func PostGUID(link string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)).String()
}

// Feed renders an RSS 2.0 document of the newest posts. The build date is
// taken from the newest post so an unchanged site yields identical bytes.
func Feed(posts []Post, opts FeedOptions) ([]byte, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	sorted := append([]Post(nil), posts...)
	SortPosts(sorted)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	channel := rssChannel{
		Title:       opts.Title,
		Link:        joinURL(opts.BaseURL, ""),
		Description: opts.Description,
		Language:    opts.Language,
		Items:       make([]rssItem, 0, len(sorted)),
	}
	if channel.Description == "" {
		channel.Description = opts.Title
	}

	for _, post := range sorted {
		link := joinURL(opts.BaseURL, post.URL)
		item := rssItem{
			Title:       post.Title,
			Link:        link,
			GUID:        rssGUID{Value: PostGUID(link)},
			Description: post.Excerpt,
			Categories:  post.Tags,
		}
		if published, ok := ParseDate(post.Date); ok {
			item.PubDate = published.Format(time.RFC1123Z)
			if channel.LastBuildDate == "" {
				channel.LastBuildDate = item.PubDate
			}
		}
		channel.Items = append(channel.Items, item)
	}

	out, err := xml.MarshalIndent(rss{Version: "2.0", Channel: channel}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode feed: %w", err)
	}

	return append([]byte(xml.Header), append(out, '\n')...), nil
}
