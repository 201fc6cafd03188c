package site

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gomdsite/pkg/config"
)

// DefaultLatestCount is the default of the generated getLatestPosts helper.
const DefaultLatestCount = 10

// Group is one category of the index.
type Group struct {
	Var   string   `json:"var"`
	Slugs []string `json:"slugs"`
	Posts []Post   `json:"posts"`
}

// Index holds the indexed posts grouped by category, newest first.
type Index struct {
	Groups []Group `json:"categories"`
}

// NewIndex groups posts by the configured categories. Posts from
// directories without a category are left out of the index.
func NewIndex(posts []Post, categories []config.Category) *Index {
	index := &Index{Groups: make([]Group, 0, len(categories))}

	for _, cat := range categories {
		group := Group{Var: cat.Var, Slugs: cat.Slugs, Posts: []Post{}}
		if group.Slugs == nil {
			group.Slugs = []string{cat.Slug()}
		}
		for _, post := range posts {
			if post.Category == cat.Dir {
				group.Posts = append(group.Posts, normalizePost(post))
			}
		}
		SortPosts(group.Posts)
		index.Groups = append(index.Groups, group)
	}

	return index
}

// normalizePost makes sure slices marshal as [] rather than null.
func normalizePost(post Post) Post {
	if post.Tags == nil {
		post.Tags = []string{}
	}
	return post
}

// SortPosts orders posts by date, newest first. Posts with equal dates are
// ordered by title and unparseable dates sort last.
func SortPosts(posts []Post) {
	slices.SortStableFunc(posts, func(a, b Post) int {
		ta, okA := ParseDate(a.Date)
		tb, okB := ParseDate(b.Date)
		switch {
		case okA && !okB:
			return -1
		case !okA && okB:
			return 1
		case okA && okB && !ta.Equal(tb):
			return tb.Compare(ta)
		}
		return cmp.Compare(a.Title, b.Title)
	})
}

// All returns every indexed post, newest first.
func (i *Index) All() []Post {
	var all []Post
	for _, group := range i.Groups {
		all = append(all, group.Posts...)
	}
	SortPosts(all)
	return all
}

// JSON renders the index as posts.json.
func (i *Index) JSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, i, "  "); err != nil {
		return nil, fmt.Errorf("encode posts.json: %w", err)
	}
	return buf.Bytes(), nil
}

// JS renders posts-data.js: one const array per category plus the
// getAllPostsData, getLatestPosts and getPostsByCategory helpers the
// front-end calls.
func (i *Index) JS() ([]byte, error) {
	var b bytes.Buffer

	b.WriteString("// 博客文章数据管理\n")
	b.WriteString("// 这个文件由 gomdsite 自动生成，请勿手动编辑\n")

	for _, group := range i.Groups {
		fmt.Fprintf(&b, "\nconst %s = ", group.Var)
		if err := encodeJSON(&b, group.Posts, "    "); err != nil {
			return nil, fmt.Errorf("encode %s: %w", group.Var, err)
		}
		b.Truncate(b.Len() - 1)
		b.WriteString(";\n")
	}

	b.WriteString("\nfunction getAllPostsData() {\n")
	b.WriteString("    const posts = [];\n")
	for _, group := range i.Groups {
		fmt.Fprintf(&b, "    posts.push(...%s);\n", group.Var)
	}
	b.WriteString("    return posts.sort((a, b) => new Date(b.date) - new Date(a.date));\n")
	b.WriteString("}\n")

	fmt.Fprintf(&b, "\nfunction getLatestPosts(count = %d) {\n", DefaultLatestCount)
	b.WriteString("    return getAllPostsData().slice(0, count);\n")
	b.WriteString("}\n")

	b.WriteString("\nfunction getPostsByCategory(category) {\n")
	b.WriteString("    switch(category) {\n")
	for _, group := range i.Groups {
		for _, slug := range group.Slugs {
			fmt.Fprintf(&b, "        case '%s':\n", slug)
		}
		fmt.Fprintf(&b, "            return %s;\n", group.Var)
	}
	b.WriteString("        default:\n")
	b.WriteString("            return getAllPostsData();\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	exports := make([]string, 0, len(i.Groups)+3)
	for _, group := range i.Groups {
		exports = append(exports, group.Var)
	}
	exports = append(exports, "getAllPostsData", "getLatestPosts", "getPostsByCategory")

	b.WriteString("\nif (typeof module !== 'undefined' && module.exports) {\n")
	b.WriteString("    module.exports = {\n")
	b.WriteString("        " + strings.Join(exports, ",\n        ") + "\n")
	b.WriteString("    };\n")
	b.WriteString("}\n")

	return b.Bytes(), nil
}

// encodeJSON writes v indented, without escaping HTML characters, followed
// by a newline.
func encodeJSON(buf *bytes.Buffer, v any, indent string) error {
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	return encoder.Encode(v)
}
