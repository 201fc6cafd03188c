package markdown

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // compiled once
var (
	fencePattern = regexp.MustCompile("([ \\t]*)```(\\w[\\w+#.-]*)?[ \\t]*\\n([\\s\\S]*?)```")

	codeEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
)

// protectCodeFences renders fenced code blocks and swaps them for
// placeholders. The fence's own indentation is removed from its content and
// kept in front of the placeholder, so a fence inside a list item stays part
// of that item. An unterminated fence does not match and stays literal.
func (s *renderState) protectCodeFences(text string) string {
	if !strings.Contains(text, "```") {
		return text
	}

	return fencePattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := fencePattern.FindStringSubmatch(match)
		indent, lang := sub[1], sub[2]
		code := trimCode(dedent(sub[3], indentWidth(indent)))

		if lang == "" {
			lang = s.opts.detect(code)
		}

		return indent + s.regions.add(tagCode, codeBlockHTML(lang, code))
	})
}

func codeBlockHTML(lang, code string) string {
	var b strings.Builder
	b.WriteString(`<div class="code-block-container">`)
	if lang != "" {
		b.WriteString(`<div class="code-lang">`)
		b.WriteString(codeEscaper.Replace(lang))
		b.WriteString(`</div><pre><code class="language-`)
		b.WriteString(codeEscaper.Replace(lang))
		b.WriteString(`">`)
	} else {
		b.WriteString(`<pre><code>`)
	}
	b.WriteString(codeEscaper.Replace(code))
	b.WriteString(`</code></pre></div>`)
	return b.String()
}

// trimCode drops surrounding blank lines and trailing whitespace. Leading
// indentation on the first line is kept.
func trimCode(code string) string {
	code = strings.TrimRight(code, " \t\n")
	for {
		nl := strings.IndexByte(code, '\n')
		if nl < 0 || strings.TrimSpace(code[:nl]) != "" {
			return code
		}
		code = code[nl+1:]
	}
}

// dedent removes up to width columns of leading whitespace from every line.
func dedent(code string, width int) string {
	if width == 0 {
		return code
	}
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lines[i] = stripWidth(line, width)
	}
	return strings.Join(lines, "\n")
}
