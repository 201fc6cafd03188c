// Package config defines the site configuration for gomdsite.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import "slices"

// OutputFormat specifies how build results are reported.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// FrontMatterMode selects how the metadata block of a post is parsed.
type FrontMatterMode string

const (
	// FrontMatterSimple is the line-oriented key: value parser.
	FrontMatterSimple FrontMatterMode = "simple"
	// FrontMatterYAML decodes the block as YAML and falls back to simple.
	FrontMatterYAML FrontMatterMode = "yaml"
)

// IsValid returns true if the mode is known.
func (m FrontMatterMode) IsValid() bool {
	return m == FrontMatterSimple || m == FrontMatterYAML
}

// Category maps a directory under the pages root to an index array.
type Category struct {
	// Dir is the directory name under PagesDir.
	Dir string `yaml:"dir"`

	// Var is the JavaScript variable holding this category in posts-data.js.
	Var string `yaml:"var"`

	// Slugs are the names getPostsByCategory accepts for this category.
	// The first slug also names the category's listing page.
	Slugs []string `yaml:"slugs,omitempty"`

	// Title is the navigation label.
	Title string `yaml:"title,omitempty"`
}

// Slug returns the primary slug, or Dir when none is configured.
func (c Category) Slug() string {
	if len(c.Slugs) > 0 {
		return c.Slugs[0]
	}
	return c.Dir
}

// Config is the root configuration structure for gomdsite.
type Config struct {
	// Source is the site root that holds PagesDir.
	Source string `yaml:"source"`

	// Output is the root pages and artifacts are written to.
	Output string `yaml:"output"`

	// PagesDir is the directory, relative to both Source and Output, holding
	// one sub-directory per category.
	PagesDir string `yaml:"pages_dir"`

	// Categories lists the indexed categories in index order.
	Categories []Category `yaml:"categories"`

	// BaseURL is the absolute site URL. Feed and sitemap need it.
	BaseURL string `yaml:"base_url"`

	SiteTitle string `yaml:"site_title"`
	Author    string `yaml:"author"`
	Language  string `yaml:"language"`

	// TOCTitle is the sidebar heading.
	TOCTitle string `yaml:"toc_title"`

	FrontMatter FrontMatterMode `yaml:"front_matter"`

	// DetectCodeLanguage labels fences that have no info string.
	DetectCodeLanguage bool `yaml:"detect_code_language"`

	// Sanitize runs rendered content through the HTML policy.
	Sanitize bool `yaml:"sanitize"`

	// Jobs is the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs"`

	// Ignore contains glob patterns, relative to PagesDir, for sources to skip.
	Ignore []string `yaml:"ignore"`

	// TemplateDir overrides the embedded page templates when set.
	TemplateDir string `yaml:"template_dir"`

	// CLI-level options (not persisted to config files).

	// DryRun renders everything but writes nothing.
	DryRun bool `yaml:"-"`

	// Format specifies the report format.
	Format OutputFormat `yaml:"-"`
}

// DefaultCategories returns the stock category layout.
func DefaultCategories() []Category {
	return []Category{
		{Dir: "WorkNotes", Var: "workNotesData", Slugs: []string{"work-notes"}, Title: "工作杂记"},
		{Dir: "repo", Var: "repoData", Slugs: []string{"repo"}, Title: "repo"},
		{Dir: "JpnLearning", Var: "japaneseData", Slugs: []string{"japanese", "japanese-learning"}, Title: "日语学习记录"},
	}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Source:      ".",
		Output:      ".",
		PagesDir:    "posts",
		Categories:  DefaultCategories(),
		SiteTitle:   "電波圏外",
		Language:    "zh-CN",
		TOCTitle:    "目录",
		FrontMatter: FrontMatterSimple,
		Format:      FormatText,
		Jobs:        0, // 0 means use GOMAXPROCS
	}
}

// CategoryByDir returns the category configured for dir.
func (c *Config) CategoryByDir(dir string) (Category, bool) {
	idx := slices.IndexFunc(c.Categories, func(cat Category) bool { return cat.Dir == dir })
	if idx < 0 {
		return Category{}, false
	}
	return c.Categories[idx], true
}
