package frontmatter

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// ErrNotMapping is returned when a YAML block does not decode to a mapping.
var ErrNotMapping = errors.New("front matter is not a mapping")

// ParseYAML decodes block as YAML. Scalars are stringified and sequences become
// string lists. Nested mappings are flattened to their YAML-ish string form.
func ParseYAML(block string) (Metadata, error) {
	var raw map[string]any

	// adrg/frontmatter expects delimiters; re-wrap the extracted block.
	src := "---\n" + block + "\n---\n"
	if _, err := frontmatter.Parse(strings.NewReader(src), &raw); err != nil {
		return nil, fmt.Errorf("decode yaml front matter: %w", err)
	}
	if raw == nil {
		if strings.TrimSpace(block) == "" {
			return Metadata{}, nil
		}
		return nil, ErrNotMapping
	}

	meta := make(Metadata, len(raw))
	for key, value := range raw {
		meta[key] = convert(value)
	}
	return meta, nil
}

func convert(value any) Value {
	switch typed := value.(type) {
	case []any:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, stringify(item))
		}
		return List(items...)
	case []string:
		return List(typed...)
	default:
		return Scalar(stringify(value))
	}
}

func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case time.Time:
		if typed.Hour() == 0 && typed.Minute() == 0 && typed.Second() == 0 && typed.Nanosecond() == 0 {
			return typed.Format(time.DateOnly)
		}
		return typed.Format(time.RFC3339)
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for k := range typed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+stringify(typed[k]))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(typed)
	}
}
