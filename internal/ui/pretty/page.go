package pretty

import (
	"fmt"

	"github.com/yaklabco/gomdsite/pkg/runner"
)

// Page line labels, padded to a common width.
const (
	labelWrote     = "wrote    "
	labelUnchanged = "unchanged"
	labelFailed    = "failed   "
)

// FormatPageLine formats one build outcome. path is the display path of the
// source, already shortened by the caller.
func (s *Styles) FormatPageLine(outcome runner.FileOutcome, path string) string {
	switch {
	case outcome.Error != nil:
		return fmt.Sprintf("  %s  %s: %s\n",
			s.Error.Render(labelFailed),
			s.FilePath.Render(path),
			s.Error.Render(outcome.Error.Error()),
		)
	case outcome.Result == nil:
		return ""
	case outcome.Result.Written:
		return fmt.Sprintf("  %s  %s\n", s.Written.Render(labelWrote), s.URL.Render(outcome.Result.Post.URL))
	default:
		return fmt.Sprintf("  %s  %s\n", s.Unchanged.Render(labelUnchanged), s.Dim.Render(outcome.Result.Post.URL))
	}
}

// TruncatePath shortens path from the left to at most maxLen runes.
func TruncatePath(path string, maxLen int) string {
	runes := []rune(path)
	if maxLen <= 1 || len(runes) <= maxLen {
		return path
	}
	return "…" + string(runes[len(runes)-(maxLen-1):])
}
