package configloader

import "github.com/yaklabco/gomdsite/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Booleans: only true overrides, so a layer cannot switch a feature off
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	for _, pair := range []struct {
		dst *string
		src string
	}{
		{&result.Source, override.Source},
		{&result.Output, override.Output},
		{&result.PagesDir, override.PagesDir},
		{&result.BaseURL, override.BaseURL},
		{&result.SiteTitle, override.SiteTitle},
		{&result.Author, override.Author},
		{&result.Language, override.Language},
		{&result.TOCTitle, override.TOCTitle},
		{&result.TemplateDir, override.TemplateDir},
	} {
		if pair.src != "" {
			*pair.dst = pair.src
		}
	}

	if override.FrontMatter != "" {
		result.FrontMatter = override.FrontMatter
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.DetectCodeLanguage {
		result.DetectCodeLanguage = true
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.DryRun {
		result.DryRun = true
	}

	if override.Categories != nil {
		result.Categories = override.Clone().Categories
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
