// Package langdetect guesses the language of a fenced code block that was
// written without an info string, so the page can still label it.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// LangText is returned when no language could be determined.
const LangText = "text"

//nolint:gochecknoglobals // read-only candidate set
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// hint is a cheap content check that beats the classifier on short snippets.
type hint struct {
	lang  string
	match func(code []byte, text string) bool
}

//nolint:gochecknoglobals // ordered most specific first
var hints = []hint{
	{"go", func(code []byte, _ string) bool {
		return bytes.HasPrefix(code, []byte("package "))
	}},
	{"python", func(_ []byte, text string) bool {
		if strings.Contains(text, "def ") && strings.Contains(text, "):") {
			return true
		}
		if strings.Contains(text, "__name__") {
			return true
		}
		return strings.HasPrefix(text, "import ") && !strings.Contains(text, "import (") ||
			strings.HasPrefix(text, "from ") && strings.Contains(text, " import ")
	}},
	{"html", func(code []byte, _ string) bool {
		lower := bytes.ToLower(code)
		for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
			if bytes.Contains(lower, []byte(marker)) {
				return true
			}
		}
		return false
	}},
	{"json", func(code []byte, _ string) bool {
		return (code[0] == '{' || code[0] == '[') && bytes.ContainsRune(code, '"')
	}},
	{"dockerfile", func(code []byte, text string) bool {
		return bytes.HasPrefix(code, []byte("FROM ")) ||
			strings.Contains(text, "WORKDIR ") && strings.Contains(text, "COPY ")
	}},
	{"sql", func(_ []byte, text string) bool {
		upper := strings.ToUpper(text)
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, verb) {
				return true
			}
		}
		return false
	}},
	{"rust", func(_ []byte, text string) bool {
		return strings.Contains(text, "fn main()") || strings.Contains(text, "println!") ||
			strings.Contains(text, "let mut ")
	}},
	{"javascript", func(_ []byte, text string) bool {
		return strings.Contains(text, "=>") || strings.Contains(text, "console.log") ||
			strings.Contains(text, "const ") || strings.Contains(text, "let ")
	}},
	{"yaml", func(code []byte, _ string) bool {
		return looksLikeYAML(code)
	}},
}

// Detect returns a lowercase fence tag for code, or LangText.
// A shebang wins, then the content hints, then the go-enry classifier when it
// reports a safe result.
func Detect(code []byte) string {
	trimmed := bytes.TrimSpace(code)
	if len(trimmed) == 0 {
		return LangText
	}

	if lang, safe := enry.GetLanguageByShebang(trimmed); safe {
		return Normalize(lang)
	}

	text := string(trimmed)
	for _, h := range hints {
		if h.match(trimmed, text) {
			return h.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(trimmed, classifierCandidates); safe && lang != "" {
		return Normalize(lang)
	}

	return LangText
}

// Normalize maps a language name or alias ("sh", "golang", "yml") to the
// fence tag used in class names. Unknown names are lowercased.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return LangText
	}
	if lang, ok := enry.GetLanguageByAlias(name); ok {
		name = lang
	}
	if name == "Shell" {
		return "bash"
	}
	return strings.ToLower(name)
}

// looksLikeYAML counts key: value pairs and root list items.
func looksLikeYAML(code []byte) bool {
	count := 0
	for _, line := range bytes.Split(code, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({") && line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}
