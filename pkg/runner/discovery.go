package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/gomdsite/pkg/build"
)

// ErrNoConfig is returned when Options carries no configuration.
var ErrNoConfig = errors.New("runner: no configuration")

// Discover lists the posts under <Source>/<PagesDir>. Each top-level
// directory is a category; markdown files placed directly in the pages root
// belong to the empty category. Hidden entries and Ignore matches are
// skipped. The result is sorted by path.
func Discover(ctx context.Context, opts Options) ([]build.Source, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, ErrNoConfig
	}

	root, err := filepath.Abs(filepath.Join(cfg.Source, cfg.PagesDir))
	if err != nil {
		return nil, fmt.Errorf("resolve pages root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat pages root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("pages root %s: not a directory", root)
	}

	seen := make(map[string]struct{})
	var sources []build.Source

	err = walkTree(ctx, root, root, root, opts, func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		if src, ok := SourceFor(root, path); ok && opts.wantsCategory(src.Category) {
			sources = append(sources, src)
		}
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })

	return sources, nil
}

// SourceFor splits path below the pages root into category and
// category-relative path. It reports false when path is not below root.
func SourceFor(root, path string) (build.Source, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return build.Source{}, false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return build.Source{}, false
	}

	category, rest, nested := strings.Cut(rel, "/")
	if !nested {
		category, rest = "", rel
	}

	return build.Source{Path: path, Category: category, Rel: rest}, true
}

// walkTree walks real and calls visit for every matching file. Paths handed
// to visit keep their logical location below root even when a directory
// symlink was followed.
func walkTree(ctx context.Context, root, logical, real string, opts Options, visit func(string)) error {
	err := filepath.WalkDir(real, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		suffix, _ := filepath.Rel(real, path)
		logicalPath := filepath.Join(logical, suffix)
		relPath, relErr := filepath.Rel(root, logicalPath)
		if relErr != nil {
			relPath = logicalPath
		}

		if entry.IsDir() {
			if path != real && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != real && matchesAny(relPath, opts.ignore()) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			targetInfo, statErr := os.Stat(target)
			if statErr != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if targetInfo.IsDir() {
				if !opts.FollowSymlinks || matchesAny(relPath, opts.ignore()) {
					return nil
				}
				// Walk the target; WalkDir does not descend into a symlink root.
				return walkTree(ctx, root, logicalPath, target, opts, visit)
			}
		}

		if hasSourceExtension(path) && !matchesAny(relPath, opts.ignore()) {
			visit(logicalPath)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", real, err)
	}
	return nil
}

func (o Options) ignore() []string {
	if o.Config == nil {
		return nil
	}
	return o.Config.Ignore
}

func hasSourceExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range SourceExtensions() {
		if ext == want {
			return true
		}
	}
	return false
}

func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash path against a glob. "*.md" also matches the
// base name, and "**" spans directories: "drafts/**", "**/tmp" and
// "a/**/b.md" are supported.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchDoubleStar(path, pattern)
	}

	if matched, err := filepath.Match(pattern, path); err == nil && matched {
		return true
	}
	matched, err := filepath.Match(pattern, filepath.Base(path))
	return err == nil && matched
}

func matchDoubleStar(path, pattern string) bool {
	head, tail, _ := strings.Cut(pattern, "**")
	head = strings.TrimSuffix(head, "/")
	tail = strings.TrimPrefix(tail, "/")

	if head != "" && path != head && !strings.HasPrefix(path, head+"/") {
		return false
	}
	if tail == "" {
		return true
	}

	rest := strings.TrimPrefix(strings.TrimPrefix(path, head), "/")
	segments := strings.Split(rest, "/")
	for i := range segments {
		candidate := strings.Join(segments[i:], "/")
		if matchGlob(candidate, tail) {
			return true
		}
	}
	return false
}
