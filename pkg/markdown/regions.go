package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholder delimiters are private-use code points. Input is scrubbed of
// them before rendering, so a placeholder cannot collide with document text.
const (
	placeholderOpen  = "\uE000"
	placeholderClose = "\uE001"
)

// Region tags. Letters only so no rewrite stage can match inside a placeholder.
const (
	tagCode  = "CODE"
	tagImage = "IMAGE"
	tagTable = "TABLE"
	tagBlock = "BLOCK"
)

//nolint:gochecknoglobals // compiled once
var placeholderPattern = regexp.MustCompile(placeholderOpen + `([A-Z]+)([0-9]+)` + placeholderClose)

// regions records verbatim spans that were swapped out for placeholders.
// A regions value belongs to a single render call.
type regions struct {
	byTag map[string][]string
}

func newRegions() *regions {
	return &regions{byTag: make(map[string][]string)}
}

// add stores original under tag and returns its placeholder.
func (r *regions) add(tag, original string) string {
	idx := len(r.byTag[tag])
	r.byTag[tag] = append(r.byTag[tag], original)
	return placeholderOpen + tag + strconv.Itoa(idx) + placeholderClose
}

// protect replaces every match of pattern with a placeholder.
func (r *regions) protect(text, tag string, pattern *regexp.Regexp) string {
	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		return r.add(tag, match)
	})
}

// restore substitutes the originals back for every placeholder carrying tag.
// Placeholders of other tags are left alone.
func (r *regions) restore(text, tag string) string {
	if !strings.Contains(text, placeholderOpen) {
		return text
	}
	stored := r.byTag[tag]
	if len(stored) == 0 {
		return text
	}

	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := placeholderPattern.FindStringSubmatch(match)
		if sub[1] != tag {
			return match
		}
		idx, err := strconv.Atoi(sub[2])
		if err != nil || idx >= len(stored) {
			return match
		}
		return stored[idx]
	})
}

// lookup returns the original text for a placeholder at the start of text.
func (r *regions) lookup(text string) (string, bool) {
	if !strings.HasPrefix(text, placeholderOpen) {
		return "", false
	}
	loc := placeholderPattern.FindStringSubmatchIndex(text)
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	tag := text[loc[2]:loc[3]]
	idx, err := strconv.Atoi(text[loc[4]:loc[5]])
	if err != nil || idx >= len(r.byTag[tag]) {
		return "", false
	}
	return r.byTag[tag][idx], true
}

// containsTag reports whether text holds a placeholder carrying tag.
func containsTag(text, tag string) bool {
	return strings.Contains(text, placeholderOpen+tag)
}

// scrubPlaceholders replaces stray delimiter runes in untrusted input.
func scrubPlaceholders(text string) string {
	if !strings.ContainsAny(text, placeholderOpen+placeholderClose) {
		return text
	}
	return strings.NewReplacer(placeholderOpen, "\uFFFD", placeholderClose, "\uFFFD").Replace(text)
}

//nolint:gochecknoglobals // compiled once
var (
	blockOpenPattern = regexp.MustCompile(`(?i)<(h[1-6]|pre|ul|ol|blockquote|figure|div|table|hr)\b[^>]*>`)
	anyTagPattern    = regexp.MustCompile(`<(/?)([A-Za-z][A-Za-z0-9]*)\b[^>]*>`)
)

// protectBlocks swaps every finished block element for a placeholder. The
// matching close tag is found by counting nested tags of the same name.
// An element without a close tag is left in place.
func (r *regions) protectBlocks(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}

	var out strings.Builder
	pos := 0
	for pos < len(text) {
		loc := blockOpenPattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		openEnd := pos + loc[1]
		name := strings.ToLower(text[pos+loc[2] : pos+loc[3]])

		end := openEnd
		if name != "hr" {
			end = findClose(text, openEnd, name)
			if end < 0 {
				out.WriteString(text[pos:openEnd])
				pos = openEnd
				continue
			}
		}

		out.WriteString(text[pos:start])
		out.WriteString(r.add(tagBlock, text[start:end]))
		pos = end
	}
	out.WriteString(text[pos:])

	return out.String()
}

// findClose returns the offset just past the close tag balancing an already
// opened element called name, or -1.
func findClose(text string, from int, name string) int {
	depth := 1
	for _, loc := range anyTagPattern.FindAllStringSubmatchIndex(text[from:], -1) {
		if !strings.EqualFold(text[from+loc[4]:from+loc[5]], name) {
			continue
		}
		if loc[3] > loc[2] {
			depth--
			if depth == 0 {
				return from + loc[1]
			}
			continue
		}
		if !strings.HasSuffix(text[from+loc[0]:from+loc[1]], "/>") {
			depth++
		}
	}
	return -1
}
