package markdown

import (
	"regexp"
	"strings"
)

// Alignment is a table column alignment.
type Alignment string

// Column alignments.
const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// minListTableRows is header, separator and at least one data row.
const minListTableRows = 3

//nolint:gochecknoglobals // compiled once
var (
	tableRowPattern       = regexp.MustCompile(`^\|.+\|[ \t]*$`)
	tableSeparatorPattern = regexp.MustCompile(`^\|[-\s|:]+\|[ \t]*$`)
	tableCaptionPattern   = regexp.MustCompile(`^\*\*([^*]+)\*\*[ \t]*$`)
)

// tableModel is a parsed pipe table.
type tableModel struct {
	caption string
	header  []string
	align   []Alignment
	rows    [][]string
}

func (t *tableModel) alignment(col int) Alignment {
	if col < len(t.align) {
		return t.align[col]
	}
	return AlignLeft
}

func isTableRow(line string) bool {
	return tableRowPattern.MatchString(line)
}

func isTableSeparator(line string) bool {
	if !tableSeparatorPattern.MatchString(line) {
		return false
	}
	return strings.ContainsAny(line, "-:")
}

// splitCells drops the artifacts of the leading and trailing pipes.
func splitCells(line string) []string {
	parts := strings.Split(strings.TrimRight(line, " \t"), "|")
	if len(parts) < 2 {
		return nil
	}
	cells := parts[1 : len(parts)-1]
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// ParseAlignment derives a column alignment from a separator cell.
func ParseAlignment(cell string) Alignment {
	cell = strings.TrimSpace(cell)
	leading := strings.HasPrefix(cell, ":")
	trailing := strings.HasSuffix(cell, ":")
	switch {
	case leading && trailing && len(cell) > 1:
		return AlignCenter
	case trailing:
		return AlignRight
	default:
		return AlignLeft
	}
}

// parseTable builds a model from a header, separator and data lines.
func parseTable(header, separator string, data []string) *tableModel {
	model := &tableModel{header: splitCells(header)}
	for _, cell := range splitCells(separator) {
		model.align = append(model.align, ParseAlignment(cell))
	}
	for _, line := range data {
		model.rows = append(model.rows, splitCells(line))
	}
	return model
}

// renderTables finds top-level pipe tables, renders them and protects the
// output. Lines that do not form a complete table are left untouched.
func (s *renderState) renderTables(text string) string {
	if !strings.Contains(text, "|") {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		caption, start := "", i
		if sub := tableCaptionPattern.FindStringSubmatch(lines[i]); sub != nil {
			next := i + 1
			for next < len(lines) && strings.TrimSpace(lines[next]) == "" {
				next++
			}
			if next+1 < len(lines) && isTableRow(lines[next]) && isTableSeparator(lines[next+1]) {
				caption, start = sub[1], next
			}
		}

		if start+1 >= len(lines) || !isTableRow(lines[start]) || !isTableSeparator(lines[start+1]) {
			out = append(out, lines[i])
			continue
		}

		end := start + 2
		for end < len(lines) && isTableRow(lines[end]) {
			end++
		}

		model := parseTable(lines[start], lines[start+1], lines[start+2:end])
		model.caption = caption
		for r := range model.header {
			model.header[r] = s.renderInline(model.header[r])
		}
		for _, row := range model.rows {
			for c := range row {
				row[c] = s.renderInline(row[c])
			}
		}
		if model.caption != "" {
			model.caption = s.renderInline(model.caption)
		}

		out = append(out, "", s.regions.add(tagTable, tableHTML(model, true)), "")
		i = end - 1
	}

	return strings.Join(out, "\n")
}

// renderListItemTables re-renders tables inside a list item whose rows were
// already joined with <br>. Cells are already inline-rendered.
func renderListItemTables(content string) string {
	if !strings.Contains(content, "|") || !strings.Contains(content, "<br>") {
		return content
	}

	segments := strings.Split(content, "<br>")
	plain := make([]string, len(segments))
	for i, seg := range segments {
		plain[i] = strings.TrimSpace(strings.ReplaceAll(seg, "&nbsp;", " "))
	}

	out := make([]string, 0, len(segments))
	for i := 0; i < len(segments); i++ {
		if i+1 >= len(segments) || !isTableRow(plain[i]) || !isTableSeparator(plain[i+1]) {
			out = append(out, segments[i])
			continue
		}

		end := i + 2
		for end < len(segments) && isTableRow(plain[end]) {
			end++
		}
		if end-i < minListTableRows {
			out = append(out, segments[i])
			continue
		}

		out = append(out, tableHTML(parseTable(plain[i], plain[i+1], plain[i+2:end]), false))
		i = end - 1
	}

	return strings.Join(out, "<br>")
}

// tableHTML renders a model. Pretty output is indented across lines; compact
// output stays on one line so it can live inside a list item.
func tableHTML(model *tableModel, pretty bool) string {
	var b strings.Builder
	line := func(indent int, s string) {
		if pretty {
			b.WriteString(strings.Repeat("  ", indent))
			b.WriteString(s)
			b.WriteByte('\n')
			return
		}
		b.WriteString(s)
	}

	base := 0
	if model.caption != "" {
		line(0, `<figure class="table-figure">`)
		line(1, `<figcaption class="table-caption">`+model.caption+`</figcaption>`)
		base = 1
	}

	line(base, `<table class="markdown-table">`)
	line(base+1, `<thead>`)
	line(base+2, `<tr>`)
	for col, cell := range model.header {
		line(base+3, `<th style="text-align: `+string(model.alignment(col))+`">`+cell+`</th>`)
	}
	line(base+2, `</tr>`)
	line(base+1, `</thead>`)
	line(base+1, `<tbody>`)
	for _, row := range model.rows {
		line(base+2, `<tr>`)
		for col, cell := range row {
			line(base+3, `<td style="text-align: `+string(model.alignment(col))+`">`+cell+`</td>`)
		}
		line(base+2, `</tr>`)
	}
	line(base+1, `</tbody>`)
	line(base, `</table>`)
	if model.caption != "" {
		line(0, `</figure>`)
	}

	return strings.TrimSuffix(b.String(), "\n")
}
