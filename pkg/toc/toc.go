// Package toc assigns heading anchors in rendered HTML and builds the
// table-of-contents outline.
package toc

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"
)

// DefaultTitle is the sidebar heading used when none is configured.
const DefaultTitle = "目录"

// Entry is one heading in document order.
type Entry struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// Build scans src for h1-h6 elements. Every heading advances a counter;
// headings without an id get id="heading-<n>" injected, headings with one
// keep it. The returned HTML is src with the injected ids and is otherwise
// byte-for-byte unchanged.
func Build(src string) (string, []Entry) {
	if !strings.Contains(src, "<h") && !strings.Contains(src, "<H") {
		return src, nil
	}

	tokenizer := nethtml.NewTokenizer(strings.NewReader(src))

	var (
		out     strings.Builder
		entries []Entry
		counter int
		current *Entry
		text    strings.Builder
	)
	out.Grow(len(src) + 64)

	for {
		tokenType := tokenizer.Next()
		if tokenType == nethtml.ErrorToken {
			if err := tokenizer.Err(); !errors.Is(err, io.EOF) {
				out.Write(tokenizer.Raw())
			}
			break
		}

		// TagName lowercases the buffer in place, so copy first.
		raw := append([]byte(nil), tokenizer.Raw()...)

		switch tokenType {
		case nethtml.StartTagToken:
			name, hasAttr := tokenizer.TagName()
			level := headingLevel(name)
			if level == 0 || current != nil {
				break
			}

			counter++
			id, present := existingID(tokenizer, hasAttr)
			if id == "" {
				id = fmt.Sprintf("heading-%d", counter)
				if present {
					raw = replaceEmptyID(raw, id)
				} else {
					raw = injectID(raw, id)
				}
			}
			current = &Entry{Level: level, ID: id}
			text.Reset()

		case nethtml.EndTagToken:
			name, _ := tokenizer.TagName()
			if current != nil && headingLevel(name) == current.Level {
				current.Text = collapseSpace(text.String())
				entries = append(entries, *current)
				current = nil
			}

		case nethtml.TextToken:
			if current != nil {
				text.Write(tokenizer.Text())
			}
		}

		out.Write(raw)
	}

	return out.String(), entries
}

func headingLevel(name []byte) int {
	if len(name) != 2 || (name[0] != 'h' && name[0] != 'H') {
		return 0
	}
	if name[1] < '1' || name[1] > '6' {
		return 0
	}
	return int(name[1] - '0')
}

// existingID returns the first id attribute and whether one was present.
func existingID(tokenizer *nethtml.Tokenizer, more bool) (string, bool) {
	for more {
		var key, val []byte
		key, val, more = tokenizer.TagAttr()
		if string(key) == "id" {
			return string(val), true
		}
	}
	return "", false
}

//nolint:gochecknoglobals // compiled once
var emptyIDPattern = regexp.MustCompile(`(?i)\sid(?:\s*=\s*(?:""|''))?([\s/>])`)

// replaceEmptyID swaps a blank id attribute for id so the tag keeps one.
func replaceEmptyID(raw []byte, id string) []byte {
	loc := emptyIDPattern.FindSubmatchIndex(raw)
	if loc == nil {
		return injectID(raw, id)
	}
	attr := []byte(` id="` + html.EscapeString(id) + `"`)
	out := make([]byte, 0, len(raw)+len(attr))
	out = append(out, raw[:loc[0]]...)
	out = append(out, attr...)
	return append(out, raw[loc[2]:]...)
}

func injectID(raw []byte, id string) []byte {
	attr := []byte(` id="` + html.EscapeString(id) + `"`)
	cut := len(raw) - 1
	if bytes.HasSuffix(raw, []byte("/>")) {
		cut = len(raw) - 2
	}
	if cut < 0 {
		return raw
	}
	out := make([]byte, 0, len(raw)+len(attr))
	out = append(out, raw[:cut]...)
	out = append(out, attr...)
	return append(out, raw[cut:]...)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RenderSidebar renders the collapsible sidebar. It returns "" when there are
// no entries.
func RenderSidebar(entries []Entry, title string) string {
	if len(entries) == 0 {
		return ""
	}
	if title == "" {
		title = DefaultTitle
	}

	var b strings.Builder
	b.WriteString("<div class=\"table-of-contents\">\n")
	b.WriteString("  <div class=\"toc-header\">\n")
	b.WriteString("    <h3 class=\"toc-title\">" + html.EscapeString(title) + "</h3>\n")
	b.WriteString("    <button class=\"toc-toggle\" aria-label=\"折叠目录\">−</button>\n")
	b.WriteString("  </div>\n")
	b.WriteString("  <nav class=\"toc-nav\">\n")
	b.WriteString("    <ul class=\"toc-list\">\n")
	for _, entry := range entries {
		fmt.Fprintf(&b, "      <li class=\"toc-item toc-h%d\">\n", entry.Level)
		fmt.Fprintf(&b, "        <a href=\"#%s\" class=\"toc-link\">%s</a>\n",
			html.EscapeString(entry.ID), html.EscapeString(entry.Text))
		b.WriteString("      </li>\n")
	}
	b.WriteString("    </ul>\n")
	b.WriteString("  </nav>\n")
	b.WriteString("</div>\n")

	return b.String()
}
