package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	indentUnit = 4
	tabWidth   = 4

	kindUnordered = "ul"
	kindOrdered   = "ol"
)

//nolint:gochecknoglobals // compiled once
var (
	unorderedItemPattern = regexp.MustCompile(`^([ \t]*)[-*+][ \t]+(.+)$`)
	orderedItemPattern   = regexp.MustCompile(`^([ \t]*)\d+\.[ \t]+(.+)$`)
	itemMarkerPattern    = regexp.MustCompile(`^<(ul|ol)-li data-indent="(\d+)">(.*)</(?:ul|ol)-li>$`)
	taskItemPattern      = regexp.MustCompile(`^[ \t]*[-*+][ \t]+\[([xX ])\][ \t]+(.+)$`)
)

// listItem is one list line plus any continuation content it absorbed.
type listItem struct {
	kind   string
	width  int
	indent int
	text   string
}

func parseListItem(line string) (listItem, bool) {
	kind := kindUnordered
	sub := unorderedItemPattern.FindStringSubmatch(line)
	if sub == nil {
		kind = kindOrdered
		if sub = orderedItemPattern.FindStringSubmatch(line); sub == nil {
			return listItem{}, false
		}
	}
	width := indentWidth(sub[1])
	return listItem{kind: kind, width: width, indent: width / indentUnit, text: sub[2]}, true
}

// indentWidth measures leading whitespace, counting a tab as four columns.
func indentWidth(prefix string) int {
	width := 0
	for _, r := range prefix {
		switch r {
		case ' ':
			width++
		case '\t':
			width += tabWidth
		default:
			return width
		}
	}
	return width
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// stripWidth removes up to width columns of leading whitespace.
func stripWidth(line string, width int) string {
	consumed := 0
	for i, r := range line {
		if consumed >= width {
			return line[i:]
		}
		switch r {
		case ' ':
			consumed++
		case '\t':
			consumed += tabWidth
		default:
			return line[i:]
		}
	}
	return ""
}

// renderLists converts list lines to nested HTML. The first pass emits one
// <ul-li>/<ol-li> marker per item; the second assembles nesting from the
// recorded indent levels.
func renderLists(text string) string {
	return assembleLists(markListItems(text))
}

func markListItems(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		item, ok := parseListItem(lines[i])
		if !ok {
			out = append(out, lines[i])
			continue
		}

		parts := []string{preserveSpaces(item.text)}
		contWidth := item.width + indentUnit

		next := i + 1
		for next < len(lines) {
			line := lines[next]

			if strings.TrimSpace(line) == "" {
				k := next + 1
				for k < len(lines) && strings.TrimSpace(lines[k]) == "" {
					k++
				}
				if k >= len(lines) {
					break
				}
				if _, isItem := parseListItem(lines[k]); !isItem && indentWidth(leadingWhitespace(lines[k])) < contWidth {
					break
				}
				next = k
				continue
			}

			if _, isItem := parseListItem(line); isItem {
				break
			}
			if indentWidth(leadingWhitespace(line)) < contWidth {
				break
			}

			parts = append(parts, preserveSpaces(stripWidth(line, contWidth)))
			next++
		}

		content := renderListItemTables(strings.Join(parts, "<br>"))
		out = append(out, "<"+item.kind+`-li data-indent="`+strconv.Itoa(item.indent)+`">`+content+"</"+item.kind+"-li>")
		i = next - 1
	}

	return strings.Join(out, "\n")
}

// listFrame is one open list. indent is the source indent of its latest
// item; the frame's depth in the stack is its nesting level.
type listFrame struct {
	kind   string
	indent int
}

// assembleLists replaces each run of consecutive item markers with nested
// lists. Any deeper indent opens exactly one nested list, so a jump of two
// levels nests once, and a later item between the parent's indent and the
// child's stays a sibling in the child list. A change of list kind at the
// same level closes one list and opens the other.
func assembleLists(text string) string {
	if !strings.Contains(text, "-li data-indent=") {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	var (
		run   strings.Builder
		stack []listFrame
	)
	flush := func() {
		if len(stack) == 0 {
			return
		}
		for len(stack) > 0 {
			run.WriteString("</li></" + stack[len(stack)-1].kind + ">")
			stack = stack[:len(stack)-1]
		}
		out = append(out, run.String())
		run.Reset()
	}

	for _, line := range lines {
		sub := itemMarkerPattern.FindStringSubmatch(line)
		if sub == nil {
			flush()
			out = append(out, line)
			continue
		}

		kind, content := sub[1], sub[3]
		indent, _ := strconv.Atoi(sub[2])

		if len(stack) == 0 {
			run.WriteString("<" + kind + "><li>" + content)
			stack = append(stack, listFrame{kind: kind, indent: indent})
			continue
		}

		for len(stack) > 1 && indent <= stack[len(stack)-2].indent {
			run.WriteString("</li></" + stack[len(stack)-1].kind + ">")
			stack = stack[:len(stack)-1]
		}

		top := &stack[len(stack)-1]
		switch {
		case indent > top.indent:
			run.WriteString("<" + kind + "><li>" + content)
			stack = append(stack, listFrame{kind: kind, indent: indent})
		case top.kind != kind:
			run.WriteString("</li></" + top.kind + "><" + kind + "><li>" + content)
			top.kind, top.indent = kind, indent
		default:
			run.WriteString("</li><li>" + content)
			top.indent = indent
		}
	}
	flush()

	return strings.Join(out, "\n")
}

// renderTaskLists converts checkbox items and groups consecutive ones into a
// single task list.
func renderTaskLists(text string) string {
	if !strings.Contains(text, "[") {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	var group []string

	flush := func() {
		if len(group) == 0 {
			return
		}
		out = append(out, `<ul class="task-list">`+strings.Join(group, "")+`</ul>`)
		group = group[:0]
	}

	for _, line := range lines {
		sub := taskItemPattern.FindStringSubmatch(line)
		if sub == nil {
			flush()
			out = append(out, line)
			continue
		}
		checked := ""
		if sub[1] != " " {
			checked = " checked"
		}
		group = append(group, `<li class="task-list-item"><input type="checkbox" disabled`+checked+`> `+
			preserveSpaces(sub[2])+`</li>`)
	}
	flush()

	return strings.Join(out, "\n")
}
