package pretty

import (
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/gomdsite/pkg/runner"
)

// RootCategory labels pages that sit directly in the pages root.
const RootCategory = "(root)"

// FormatCategoryTable renders per-category page counts with a totals row.
// Categories are listed in order when given; any others follow sorted by name.
func (s *Styles) FormatCategoryTable(stats runner.Stats, order []string) string {
	names := categoryOrder(stats.ByCategory, order)

	rows := make([][]string, 0, len(names)+1)
	errored := make(map[int]bool)

	for _, name := range names {
		counts := stats.ByCategory[name]
		label := name
		if label == "" {
			label = RootCategory
		}
		if counts.Errored > 0 {
			errored[len(rows)] = true
		}
		rows = append(rows, []string{
			label,
			strconv.Itoa(counts.Pages),
			strconv.Itoa(counts.Written),
			strconv.Itoa(counts.Errored),
		})
	}

	totalRow := len(rows)
	rows = append(rows, []string{
		"total",
		strconv.Itoa(stats.FilesProcessed),
		strconv.Itoa(stats.FilesWritten),
		strconv.Itoa(stats.FilesErrored),
	})

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.TableBorder).
		Headers("CATEGORY", "PAGES", "WRITTEN", "FAILED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := s.TableCell
			switch {
			case row == table.HeaderRow:
				return s.TableHeader
			case errored[row]:
				style = s.TableErrorRow
			case row == totalRow:
				style = s.TableCell.Bold(true)
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	return tbl.String() + "\n"
}

func categoryOrder(counts map[string]runner.CategoryStats, order []string) []string {
	names := make([]string, 0, len(counts))
	seen := make(map[string]bool, len(counts))

	for _, name := range order {
		if _, ok := counts[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}

	var rest []string
	for name := range counts {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(names, rest...)
}
