package markdown

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // compiled once
var quoteLinePattern = regexp.MustCompile(`^[ \t]*>(.*)$`)

// renderBlockquotes merges runs of quote lines into one blockquote. Blank
// lines between quote lines separate paragraphs inside the quote.
func renderBlockquotes(text string) string {
	if !strings.Contains(text, ">") {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		if !quoteLinePattern.MatchString(lines[i]) {
			out = append(out, lines[i])
			continue
		}

		var body []string
		next := i
		for next < len(lines) {
			if sub := quoteLinePattern.FindStringSubmatch(lines[next]); sub != nil {
				body = append(body, quoteContent(sub[1]))
				next++
				continue
			}
			if strings.TrimSpace(lines[next]) != "" {
				break
			}
			k := next
			for k < len(lines) && strings.TrimSpace(lines[k]) == "" {
				k++
			}
			if k >= len(lines) || !quoteLinePattern.MatchString(lines[k]) {
				break
			}
			body = append(body, "")
			next = k
		}

		out = append(out, "<blockquote>"+joinQuoteParagraphs(body)+"</blockquote>")
		i = next - 1
	}

	return strings.Join(out, "\n")
}

// quoteContent trims a quote line and drops one nested marker.
func quoteContent(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, ">") {
		content = strings.TrimSpace(content[1:])
	}
	return content
}

func joinQuoteParagraphs(lines []string) string {
	var (
		paragraphs []string
		current    []string
	)
	for _, line := range lines {
		if line == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, strings.Join(current, "<br>"))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, "<br>"))
	}
	return strings.Join(paragraphs, "<br><br>")
}
