package configloader

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yaklabco/gomdsite/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "categories[1].var").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins every error, or returns nil when the result is valid. Each
// joined error is a *ValidationError.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for i := range r.Errors {
		errs = append(errs, &r.Errors[i])
	}
	return errors.Join(errs...)
}

//nolint:gochecknoglobals // compiled once
var (
	jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	slugPattern  = regexp.MustCompile(`^[\w-]+$`)
)

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.FrontMatter != "" && !cfg.FrontMatter.IsValid() {
		result.fail("front_matter", cfg.FrontMatter, "invalid mode %q; must be one of: simple, yaml", cfg.FrontMatter)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, summary", cfg.Format)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.PagesDir == "" {
		result.fail("pages_dir", cfg.PagesDir, "pages_dir must not be empty")
	} else if filepath.IsAbs(cfg.PagesDir) || escapes(cfg.PagesDir) {
		result.fail("pages_dir", cfg.PagesDir, "pages_dir must be a relative path inside the site")
	}

	validateBaseURL(cfg, result)
	validateCategories(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateBaseURL(cfg *config.Config, result *ValidationResult) {
	if cfg.BaseURL == "" {
		result.warn("base_url", "", "not set; feed.xml, sitemap.xml and robots.txt are skipped")
		return
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		result.fail("base_url", cfg.BaseURL, "base_url must be an absolute http(s) URL")
	}
}

func validateCategories(cfg *config.Config, result *ValidationResult) {
	dirs := make(map[string]bool, len(cfg.Categories))
	vars := make(map[string]bool, len(cfg.Categories))
	slugs := make(map[string]bool)

	for i, cat := range cfg.Categories {
		field := fmt.Sprintf("categories[%d]", i)

		switch {
		case cat.Dir == "":
			result.fail(field+".dir", cat.Dir, "dir must not be empty")
		case strings.ContainsAny(cat.Dir, `/\`) || cat.Dir == "." || cat.Dir == "..":
			result.fail(field+".dir", cat.Dir, "dir must be a single directory name")
		case dirs[cat.Dir]:
			result.fail(field+".dir", cat.Dir, "duplicate category dir %q", cat.Dir)
		}
		dirs[cat.Dir] = true

		switch {
		case !jsIdentifier.MatchString(cat.Var):
			result.fail(field+".var", cat.Var, "var %q is not a JavaScript identifier", cat.Var)
		case vars[cat.Var]:
			result.fail(field+".var", cat.Var, "duplicate index variable %q", cat.Var)
		}
		vars[cat.Var] = true

		for j, slug := range cat.Slugs {
			slugField := fmt.Sprintf("%s.slugs[%d]", field, j)
			switch {
			case !slugPattern.MatchString(slug):
				result.fail(slugField, slug, "slug %q may only contain letters, digits, '_' and '-'", slug)
			case slugs[slug]:
				result.fail(slugField, slug, "slug %q is used by more than one category", slug)
			}
			slugs[slug] = true
		}
	}

	if len(cfg.Categories) == 0 {
		result.warn("categories", nil, "no categories configured; posts-data.js will be empty")
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

func escapes(rel string) bool {
	clean := filepath.ToSlash(filepath.Clean(rel))
	return clean == ".." || strings.HasPrefix(clean, "../")
}
