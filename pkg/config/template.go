package config

import "fmt"

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value instead of the
	// commented starter file.
	Full bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return generateFullTemplate()
	}
	return []byte(minimalTemplate), nil
}

const minimalTemplate = `# gomdsite configuration

# Site root holding the pages directory, and where output goes.
# source: .
# output: .
# pages_dir: posts

# Absolute site URL; feed.xml and sitemap.xml are only written when set.
# base_url: https://example.github.io/blog

# site_title: 電波圏外
# language: zh-CN

# Front matter parser: simple or yaml
front_matter: simple

# Label fenced code without an info string using language detection
# detect_code_language: false

# Run rendered HTML through the sanitizer
# sanitize: false

# Number of parallel workers (0 = auto)
# jobs: 0

# Source patterns to skip (glob patterns)
# ignore:
#   - "drafts/**"

# Directory with page.html overriding the built-in template
# template_dir: templates

# Indexed categories, in order
# categories:
#   - dir: WorkNotes
#     var: workNotesData
#     slugs: [work-notes]
#     title: 工作杂记
`

func generateFullTemplate() ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = []string{"drafts/**"}

	body, err := cfg.ToYAMLWithHeader(DefaultTemplateHeader())
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	return body, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomdsite configuration - Full Template
# Every setting is listed with its default value.`
}
