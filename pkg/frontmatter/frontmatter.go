// Package frontmatter splits a post into its metadata block and markdown body.
//
// The default parser is a deliberately small key: value reader. Values in
// brackets become string lists. Anything that does not look like front matter
// is treated as body, so splitting never fails.
package frontmatter

import (
	"regexp"
	"strings"
)

// Mode selects how the metadata block is decoded.
type Mode string

const (
	// ModeSimple decodes one key: value pair per line.
	ModeSimple Mode = "simple"

	// ModeYAML decodes the block as YAML, falling back to ModeSimple on error.
	ModeYAML Mode = "yaml"
)

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	return m == ModeSimple || m == ModeYAML
}

// Value is a metadata value: either a scalar string or a list of strings.
type Value struct {
	Text   string
	Items  []string
	IsList bool
}

// Scalar returns a scalar value.
func Scalar(text string) Value {
	return Value{Text: text}
}

// List returns a list value.
func List(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{Items: items, IsList: true}
}

// String returns the scalar text, or the list items joined by ", ".
func (v Value) String() string {
	if v.IsList {
		return strings.Join(v.Items, ", ")
	}
	return v.Text
}

// Metadata maps front-matter keys to their values.
type Metadata map[string]Value

// Get returns the string form of key, or "" when absent.
func (m Metadata) Get(key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	return v.String()
}

// Strings returns key as a list. A non-empty scalar becomes a one-item list.
func (m Metadata) Strings(key string) []string {
	v, ok := m[key]
	if !ok {
		return []string{}
	}
	if v.IsList {
		out := make([]string, len(v.Items))
		copy(out, v.Items)
		return out
	}
	if v.Text == "" {
		return []string{}
	}
	return []string{v.Text}
}

// Has reports whether key is present with a non-empty value.
func (m Metadata) Has(key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	if v.IsList {
		return len(v.Items) > 0
	}
	return v.Text != ""
}

// Document is a post split into metadata and body.
type Document struct {
	Metadata Metadata
	Body     string

	// Raw is the metadata block without delimiters. Empty when absent.
	Raw string
}

// HasFrontMatter reports whether the source carried a metadata block.
func (d Document) HasFrontMatter() bool {
	return d.Raw != "" || len(d.Metadata) > 0
}

//nolint:gochecknoglobals // compiled once
var blockPattern = regexp.MustCompile(`^---[ \t]*\n([\s\S]*?)\n---[ \t]*\n([\s\S]*)$`)

// Split separates src into metadata and body using the simple parser.
func Split(src string) Document {
	return SplitMode(src, ModeSimple)
}

// SplitMode separates src into metadata and body, decoding the block with mode.
// Input without a complete front-matter block is returned whole as body.
func SplitMode(src string, mode Mode) Document {
	src = normalizeNewlines(src)

	match := blockPattern.FindStringSubmatch(src)
	if match == nil {
		return Document{Metadata: Metadata{}, Body: src}
	}

	raw, body := match[1], match[2]

	if mode == ModeYAML {
		if meta, err := ParseYAML(raw); err == nil {
			return Document{Metadata: meta, Body: body, Raw: raw}
		}
	}

	return Document{Metadata: Parse(raw), Body: body, Raw: raw}
}

// Parse reads key: value lines. Lines without a colon, or starting with one,
// are ignored. Later keys overwrite earlier ones.
func Parse(block string) Metadata {
	meta := Metadata{}

	for _, line := range strings.Split(block, "\n") {
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:idx])
		if key == "" {
			continue
		}
		value := strings.TrimSpace(line[idx+1:])

		if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
			meta[key] = List(parseList(value[1 : len(value)-1])...)
			continue
		}

		meta[key] = Scalar(unquote(value))
	}

	return meta
}

func parseList(inner string) []string {
	if strings.TrimSpace(inner) == "" {
		return []string{}
	}

	parts := strings.Split(inner, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		item = strings.NewReplacer(`"`, "", `'`, "").Replace(item)
		items = append(items, item)
	}
	return items
}

// unquote strips one matching pair of straight quotes.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if (first == '"' || first == '\'') && first == last {
		return value[1 : len(value)-1]
	}
	return value
}

func normalizeNewlines(src string) string {
	if !strings.Contains(src, "\r") {
		return src
	}
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return strings.ReplaceAll(src, "\r", "\n")
}
