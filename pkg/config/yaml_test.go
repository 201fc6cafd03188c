package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdsite/pkg/config"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.Equal(t, "posts", cfg.PagesDir)
	assert.Equal(t, config.FrontMatterSimple, cfg.FrontMatter)
	assert.Equal(t, config.FormatText, cfg.Format)
	require.Len(t, cfg.Categories, 3)
	assert.Equal(t, "workNotesData", cfg.Categories[0].Var)
	assert.Equal(t, "work-notes", cfg.Categories[0].Slug())
}

func TestCategoryByDir(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	cat, ok := cfg.CategoryByDir("repo")
	require.True(t, ok)
	assert.Equal(t, "repoData", cat.Var)

	_, ok = cfg.CategoryByDir("missing")
	assert.False(t, ok)
}

func TestCategorySlugFallsBackToDir(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "notes", config.Category{Dir: "notes"}.Slug())
}

func TestOutputFormatIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FormatSummary.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Ignore = []string{"drafts/**"}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Categories[0].Slugs[0] = "changed"
		clone.Categories[1].Var = "changed"

		assert.Equal(t, "drafts/**", original.Ignore[0])
		assert.Equal(t, "work-notes", original.Categories[0].Slugs[0])
		assert.Equal(t, "repoData", original.Categories[1].Var)
	})

	t.Run("copies CLI-only fields", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{DryRun: true, Format: config.FormatJSON}
		clone := original.Clone()

		assert.True(t, clone.DryRun)
		assert.Equal(t, config.FormatJSON, clone.Format)
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.BaseURL = "https://example.com/blog"
	original.Sanitize = true
	original.DryRun = true

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url: https://example.com/blog")
	assert.NotContains(t, string(data), "dryrun")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, original.BaseURL, parsed.BaseURL)
	assert.True(t, parsed.Sanitize)
	assert.False(t, parsed.DryRun)
	assert.Equal(t, original.Categories, parsed.Categories)
}

func TestFromYAMLInvalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("jobs: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# header\n\n"))
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	minimal, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(minimal), "front_matter: simple")

	parsed, err := config.FromYAML(minimal)
	require.NoError(t, err)
	assert.Equal(t, config.FrontMatterSimple, parsed.FrontMatter)

	full, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)

	parsed, err = config.FromYAML(full)
	require.NoError(t, err)
	assert.Equal(t, "posts", parsed.PagesDir)
	assert.Equal(t, []string{"drafts/**"}, parsed.Ignore)
}
