package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdsite/pkg/config"
)

// envVarPrefix is the prefix for all gomdsite environment variables.
const envVarPrefix = "GOMDSITE_"

// envBinding ties one environment variable to a config field.
type envBinding struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringField(get func(*config.Config) *string) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		*get(cfg) = value
		return nil
	}
}

func boolField(get func(*config.Config) *bool) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		*get(cfg) = b
		return nil
	}
}

// envBindings maps variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envBindings = map[string]envBinding{
	"SOURCE":       {"Site root holding the pages directory", stringField(func(c *config.Config) *string { return &c.Source })},
	"OUTPUT":       {"Output root", stringField(func(c *config.Config) *string { return &c.Output })},
	"PAGES_DIR":    {"Pages directory below source and output", stringField(func(c *config.Config) *string { return &c.PagesDir })},
	"BASE_URL":     {"Absolute site URL for feed and sitemap", stringField(func(c *config.Config) *string { return &c.BaseURL })},
	"SITE_TITLE":   {"Site title", stringField(func(c *config.Config) *string { return &c.SiteTitle })},
	"AUTHOR":       {"Author name", stringField(func(c *config.Config) *string { return &c.Author })},
	"LANGUAGE":     {"Page language tag", stringField(func(c *config.Config) *string { return &c.Language })},
	"TOC_TITLE":    {"Table of contents heading", stringField(func(c *config.Config) *string { return &c.TOCTitle })},
	"TEMPLATE_DIR": {"Directory overriding the page templates", stringField(func(c *config.Config) *string { return &c.TemplateDir })},
	"FRONT_MATTER": {"Front matter parser: simple or yaml", func(cfg *config.Config, value string) error {
		cfg.FrontMatter = config.FrontMatterMode(value)
		return nil
	}},
	"FORMAT": {"Report format: text, json or summary", func(cfg *config.Config, value string) error {
		cfg.Format = config.OutputFormat(value)
		return nil
	}},
	"DETECT_CODE_LANGUAGE": {"Label unlabelled code fences: true or false",
		boolField(func(c *config.Config) *bool { return &c.DetectCodeLanguage })},
	"SANITIZE": {"Sanitize rendered HTML: true or false", boolField(func(c *config.Config) *bool { return &c.Sanitize })},
	"DRY_RUN":  {"Render without writing: true or false", boolField(func(c *config.Config) *bool { return &c.DryRun })},
	"JOBS": {"Number of parallel workers (0 = auto)", func(cfg *config.Config, value string) error {
		jobs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		cfg.Jobs = jobs
		return nil
	}},
	"IGNORE": {"Comma-separated ignore globs", func(cfg *config.Config, value string) error {
		cfg.Ignore = parseSliceValue(value)
		return nil
	}},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMDSITE_ (e.g., GOMDSITE_BASE_URL).
// Unset and empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range sortedEnvSuffixes() {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if err := envBindings[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envBindings))
	for suffix, binding := range envBindings {
		vars[envVarPrefix+suffix] = binding.description
	}
	return vars
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envBindings))
	for suffix := range envBindings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}
