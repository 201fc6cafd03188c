// Package markdown renders the blog's markdown dialect to an HTML fragment.
//
// Rendering is a fixed sequence of whole-text rewrite stages rather than a
// parse tree. Finished output that later stages must not touch (code blocks,
// images, tables and block elements) is swapped for inert placeholders and
// restored at the end. Content that does not match a construct is passed
// through as literal text; Render never fails.
package markdown

import (
	"regexp"
	"strings"
)

// renderState is the per-call bookkeeping threaded through the stages.
type renderState struct {
	opts    Options
	regions *regions
}

func newRenderState(opts Options) *renderState {
	return &renderState{opts: opts, regions: newRegions()}
}

// Render converts a markdown body to HTML.
func Render(body string, opts Options) string {
	state := newRenderState(opts)

	text := scrubPlaceholders(normalizeNewlines(body))
	text = state.protectCodeFences(text)
	text = renderTildes(text)
	text = state.renderImages(text)
	text = state.renderTables(text)
	text = renderHeadings(text)
	text = renderRules(text)
	text = renderSpans(text)
	text = renderTaskLists(text)
	text = renderBlockquotes(text)
	text = renderLists(text)
	text = state.renderParagraphs(text)

	return state.restoreAll(text)
}

// restoreAll releases placeholders innermost-last: block elements, then
// tables, then images, then code.
func (s *renderState) restoreAll(text string) string {
	for _, tag := range []string{tagBlock, tagTable, tagImage, tagCode} {
		text = s.regions.restore(text, tag)
	}
	return text
}

//nolint:gochecknoglobals // compiled once
var blockStartPattern = regexp.MustCompile(
	`^(?i)<(h[1-6]|p|pre|ul|ol|dl|figure|table|blockquote|hr|div|section|article|aside|nav|header|footer|details|iframe|video|audio|script|style)\b`)

// renderParagraphs wraps loose text in <p>, then turns the newlines left
// inside each chunk into <br>. Block elements are protected first so their
// internal newlines survive. Chunks are joined with a plain newline.
func (s *renderState) renderParagraphs(text string) string {
	chunks := strings.Split(text, "\n\n")
	out := make([]string, 0, len(chunks))

	for _, chunk := range chunks {
		chunk = strings.Trim(chunk, "\n")
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		if !s.startsWithBlock(chunk) && !containsTag(chunk, tagCode) {
			chunk = "<p>" + strings.TrimSpace(chunk) + "</p>"
		}

		chunk = s.regions.protectBlocks(chunk)
		chunk = strings.ReplaceAll(chunk, "\n", "<br>")
		out = append(out, chunk)
	}

	return strings.Join(out, "\n")
}

func (s *renderState) startsWithBlock(chunk string) bool {
	chunk = strings.TrimLeft(chunk, " \t\n")
	if original, ok := s.regions.lookup(chunk); ok {
		if strings.HasPrefix(chunk, placeholderOpen+tagTable) || strings.HasPrefix(chunk, placeholderOpen+tagCode) {
			return true
		}
		return s.startsWithBlock(original)
	}
	return blockStartPattern.MatchString(chunk)
}

func normalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
