// Package configloader resolves the effective configuration from defaults,
// config files, environment variables and command-line flags.
package configloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdsite/internal/logging"
	"github.com/yaklabco/gomdsite/pkg/config"
)

// ErrInvalidConfig marks configuration that could not be parsed or did not
// validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOMDSITE_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gomdsite.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gomdsite/config.yml)
//  6. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	if opts.ExplicitPath != "" {
		paths.Explicit = opts.ExplicitPath
	}

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		path    string
		enabled bool
	}{
		{paths.User, !opts.IgnoreUserConfig},
		{paths.Project, !opts.IgnoreProjectConfig},
		{paths.Explicit, true},
	}

	for _, layer := range layers {
		if layer.path == "" || !layer.enabled {
			continue
		}
		fileCfg, warnings, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, err
		}
		result.Warnings = append(result.Warnings, warnings...)
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("config loaded", logging.FieldConfig, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	if !filepath.IsAbs(cfg.Source) {
		cfg.Source = filepath.Join(workDir, cfg.Source)
	}
	if !filepath.IsAbs(cfg.Output) {
		cfg.Output = filepath.Join(workDir, cfg.Output)
	}
	if cfg.TemplateDir != "" && !filepath.IsAbs(cfg.TemplateDir) {
		cfg.TemplateDir = filepath.Join(workDir, cfg.TemplateDir)
	}

	validation := Validate(cfg)
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}
	if !validation.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, validation.Err())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file. Relative paths in
// the file are resolved against the file's directory. Unknown keys are
// returned as warnings.
func loadConfigFile(path string) (*config.Config, []string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	dir := filepath.Dir(path)
	for _, field := range []*string{&cfg.Source, &cfg.Output, &cfg.TemplateDir} {
		if *field != "" && !filepath.IsAbs(*field) {
			*field = filepath.Join(dir, *field)
		}
	}

	return cfg, decodeWarnings(path, content), nil
}

// decodeWarnings reports keys in content that match no configuration field.
func decodeWarnings(path string, content []byte) []string {
	var known config.Config
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	var typeErr *yaml.TypeError
	if err := decoder.Decode(&known); errors.As(err, &typeErr) {
		warnings := make([]string, 0, len(typeErr.Errors))
		for _, msg := range typeErr.Errors {
			warnings = append(warnings, path+": "+msg)
		}
		return warnings
	}
	return nil
}
