// Package excerpt derives a plain-text summary and reading statistics from a
// markdown body by walking its goldmark syntax tree.
package excerpt

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

const (
	// DefaultMaxRunes caps the summary length.
	DefaultMaxRunes = 160

	// WordsPerMinute is the reading speed used for ReadingMinutes. CJK
	// characters count as one word each.
	WordsPerMinute = 300
)

// Summary describes a post body.
type Summary struct {
	// Text is the first non-empty paragraph as plain text.
	Text string

	// Words counts whitespace-separated words plus CJK characters, outside
	// code blocks.
	Words int

	// ReadingMinutes is at least 1 for any non-empty body.
	ReadingMinutes int
}

//nolint:gochecknoglobals // goldmark instances are safe for concurrent use
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Extract parses body and summarizes it. maxRunes <= 0 uses DefaultMaxRunes.
func Extract(body []byte, maxRunes int) Summary {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxRunes
	}

	doc := markdown.Parser().Parse(text.NewReader(body))

	var (
		summary Summary
		first   string
	)

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if first == "" {
				first = plainText(n, body)
			}
		case *ast.Text:
			summary.Words += countWords(n.Segment.Value(body))
		}
		return ast.WalkContinue, nil
	})

	summary.Text = truncate(first, maxRunes)
	if summary.Words > 0 {
		summary.ReadingMinutes = (summary.Words + WordsPerMinute - 1) / WordsPerMinute
	}

	return summary
}

// plainText concatenates the text under node. Images contribute nothing and
// soft line breaks become spaces.
func plainText(node ast.Node, source []byte) string {
	var b strings.Builder

	_ = ast.Walk(node, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := child.(type) {
		case *ast.Image:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			b.Write(n.Segment.Value(source))
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(n.Value)
		case *ast.AutoLink:
			b.Write(n.Label(source))
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(b.String()), " ")
}

func countWords(segment []byte) int {
	count := 0
	inWord := false

	for len(segment) > 0 {
		r, size := utf8.DecodeRune(segment)
		segment = segment[size:]

		switch {
		case isCJK(r):
			count++
			inWord = false
		case unicode.IsSpace(r) || unicode.IsPunct(r):
			inWord = false
		default:
			if !inWord {
				count++
				inWord = true
			}
		}
	}

	return count
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:maxRunes])) + "…"
}
