package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // compiled once
var (
	strikePattern    = regexp.MustCompile(`~~(.+?)~~`)
	subscriptPattern = regexp.MustCompile(`~([^~\s]+)~`)

	imageCaptionPattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)[ \t]*\n?[ \t]*\*([^*\s][^*\n]*)\*`)
	imagePattern        = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)
	schemePattern       = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

	headingPatterns = func() [6]*regexp.Regexp {
		var out [6]*regexp.Regexp
		for level := 6; level >= 1; level-- {
			out[6-level] = regexp.MustCompile(fmt.Sprintf(`(?m)^#{%d}[ \t\x{3000}]+(.*)$`, level))
		}
		return out
	}()

	rulePattern = regexp.MustCompile(`(?m)^(?:-{3,}|\*{3,}|_{3,})[ \t]*$`)

	boldStarPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnderscorePattern = regexp.MustCompile(`__(.+?)__`)
	markPattern           = regexp.MustCompile(`==(.+?)==`)
	supPattern            = regexp.MustCompile(`\^([^\^\s\[\]]+)\^`)
	codeSpanPattern       = regexp.MustCompile("`([^`\\n]+)`")
	kbdPattern            = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	footnoteDefPattern    = regexp.MustCompile(`(?m)^\[\^([^\]]+)\]:[ \t]*(.+)$`)
	footnoteRefPattern    = regexp.MustCompile(`\[\^([^\]]+)\]`)
	linkPattern           = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

	attrEscaper = strings.NewReplacer(`"`, "&quot;", "<", "&lt;", ">", "&gt;")
)

// RenderInline applies the span-level rules to a single fragment such as a
// table cell. Block constructs are not recognised.
func RenderInline(text string, opts Options) string {
	state := newRenderState(opts)
	return state.restoreAll(state.renderInline(scrubPlaceholders(text)))
}

// renderInline is the span pass shared by RenderInline and table cells.
// Placeholders already in text are left for the caller to restore.
func (s *renderState) renderInline(text string) string {
	text = renderTildes(text)
	text = s.renderImages(text)
	return renderSpans(text)
}

// renderTildes turns ~~x~~ into <del> and ~x~ into <sub>, then escapes every
// tilde that is left so later stages never see one.
func renderTildes(text string) string {
	if !strings.Contains(text, "~") {
		return text
	}
	text = strikePattern.ReplaceAllString(text, "<del>$1</del>")
	text = subscriptPattern.ReplaceAllString(text, "<sub>$1</sub>")
	return strings.ReplaceAll(text, "~", "&#126;")
}

// renderImages converts images, with or without a trailing *caption*, and
// protects the result so emphasis rules never touch src or alt.
func (s *renderState) renderImages(text string) string {
	if !strings.Contains(text, "![") {
		return text
	}

	text = imageCaptionPattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := imageCaptionPattern.FindStringSubmatch(match)
		img := imageTag(s.opts.AssetPrefix, sub[2], sub[1])
		figure := `<figure class="image-figure">` + img +
			`<figcaption class="image-caption">` + strings.TrimSpace(sub[3]) + `</figcaption></figure>`
		return s.regions.add(tagImage, figure)
	})

	return imagePattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := imagePattern.FindStringSubmatch(match)
		return s.regions.add(tagImage, imageTag(s.opts.AssetPrefix, sub[2], sub[1]))
	})
}

func imageTag(prefix, src, alt string) string {
	return `<img src="` + attrEscaper.Replace(ResolveAsset(prefix, src)) +
		`" alt="` + attrEscaper.Replace(alt) + `" />`
}

// ResolveAsset prepends prefix to src when src is a site-relative path.
// Absolute URLs, scheme URLs, root paths, explicit ./ or ../ paths and
// fragments are returned unchanged.
func ResolveAsset(prefix, src string) string {
	if prefix == "" || src == "" {
		return src
	}
	switch {
	case strings.HasPrefix(src, "/"),
		strings.HasPrefix(src, "./"),
		strings.HasPrefix(src, "../"),
		strings.HasPrefix(src, "#"),
		schemePattern.MatchString(src):
		return src
	}
	return prefix + src
}

// renderHeadings handles ATX headings from level six down so a shorter marker
// never claims a longer one.
func renderHeadings(text string) string {
	if !strings.Contains(text, "#") {
		return text
	}
	for idx, pattern := range headingPatterns {
		level := 6 - idx
		text = pattern.ReplaceAllStringFunc(text, func(match string) string {
			content := pattern.FindStringSubmatch(match)[1]
			content = strings.TrimRight(content, " \t\u3000")
			return fmt.Sprintf("<h%d>%s</h%d>", level, content, level)
		})
	}
	return text
}

func renderRules(text string) string {
	return rulePattern.ReplaceAllString(text, "<hr>")
}

// renderSpans runs the span rules in their fixed order.
func renderSpans(text string) string {
	text = boldStarPattern.ReplaceAllString(text, "<strong>$1</strong>")
	text = boldUnderscorePattern.ReplaceAllString(text, "<strong>$1</strong>")
	text = renderEmphasis(text, '*')
	text = renderEmphasis(text, '_')
	text = markPattern.ReplaceAllString(text, "<mark>$1</mark>")
	text = supPattern.ReplaceAllString(text, "<sup>$1</sup>")
	text = codeSpanPattern.ReplaceAllString(text, "<code>$1</code>")
	text = kbdPattern.ReplaceAllString(text, "<kbd>$1</kbd>")
	text = footnoteDefPattern.ReplaceAllString(text,
		`<div class="footnote" id="fn-$1"><sup>$1</sup> $2 <a href="#fnref-$1">↩</a></div>`)
	text = footnoteRefPattern.ReplaceAllString(text, `<sup><a href="#fn-$1" id="fnref-$1">$1</a></sup>`)
	text = linkPattern.ReplaceAllString(text, `<a href="$2">$1</a>`)
	return text
}

// renderEmphasis wraps single-delimiter spans in <em>. A delimiter that is
// part of a doubled run never opens or closes, the opener must be followed by
// a non-space, and underscores never match inside a word.
func renderEmphasis(text string, delim byte) string {
	if strings.IndexByte(text, delim) < 0 {
		return text
	}

	var out strings.Builder
	out.Grow(len(text))

	for i := 0; i < len(text); i++ {
		if text[i] != delim || !canOpen(text, i, delim) {
			out.WriteByte(text[i])
			continue
		}

		end := findEmphasisClose(text, i+1, delim)
		if end < 0 {
			out.WriteByte(text[i])
			continue
		}

		out.WriteString("<em>")
		out.WriteString(text[i+1 : end])
		out.WriteString("</em>")
		i = end
	}

	return out.String()
}

func canOpen(text string, i int, delim byte) bool {
	if i > 0 && text[i-1] == delim {
		return false
	}
	if i+1 >= len(text) {
		return false
	}
	next := text[i+1]
	if next == delim || isSpace(next) {
		return false
	}
	if delim == '_' && i > 0 && isWordByte(text[i-1]) {
		return false
	}
	return true
}

func findEmphasisClose(text string, from int, delim byte) int {
	for k := from; k < len(text); k++ {
		switch text[k] {
		case '\n':
			return -1
		case delim:
			if k+1 < len(text) && text[k+1] == delim {
				return -1
			}
			if isSpace(text[k-1]) {
				return -1
			}
			if delim == '_' && k+1 < len(text) && isWordByte(text[k+1]) {
				return -1
			}
			return k
		}
	}
	return -1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// preserveSpaces turns runs of two or more spaces into the same number of
// non-breaking spaces.
func preserveSpaces(text string) string {
	if !strings.Contains(text, "  ") {
		return text
	}
	var out strings.Builder
	for i := 0; i < len(text); {
		if text[i] != ' ' {
			out.WriteByte(text[i])
			i++
			continue
		}
		j := i
		for j < len(text) && text[j] == ' ' {
			j++
		}
		if j-i >= 2 {
			out.WriteString(strings.Repeat("&nbsp;", j-i))
		} else {
			out.WriteByte(' ')
		}
		i = j
	}
	return out.String()
}
