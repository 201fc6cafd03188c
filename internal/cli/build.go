package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdsite/internal/configloader"
	"github.com/yaklabco/gomdsite/internal/logging"
	"github.com/yaklabco/gomdsite/pkg/build"
	"github.com/yaklabco/gomdsite/pkg/config"
	"github.com/yaklabco/gomdsite/pkg/reporter"
	"github.com/yaklabco/gomdsite/pkg/runner"
	"github.com/yaklabco/gomdsite/pkg/site"
)

type buildFlags struct {
	format         string
	frontMatter    string
	categories     []string
	ignore         []string
	verbose        bool
	followSymlinks bool
}

func newBuildCommand() *cobra.Command {
	var cfg config.Config
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every post and write the site",
		Long:  buildLongDescription,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, &cfg, flags)
		},
	}

	addBuildFlags(cmd, &cfg, flags)

	return cmd
}

const buildLongDescription = `Render every post below <source>/<pages_dir> and write the site.

Each directory below the pages root is a category. A post at
posts/WorkNotes/go.md is written to <output>/posts/WorkNotes/go.html.
Afterwards the site index (data/posts-data.js, data/posts.json) is
rewritten, and feed.xml, sitemap.xml and robots.txt are written when
base_url is set. Files whose content did not change are left untouched.

Examples:
  gomdsite build                          # Build the site in the current directory
  gomdsite build --source blog --output public
  gomdsite build --dry-run --verbose      # Render everything, write nothing
  gomdsite build --category WorkNotes     # Rebuild one category's pages
  gomdsite build --format json            # Machine-readable report`

func addBuildFlags(cmd *cobra.Command, cfg *config.Config, flags *buildFlags) {
	cmd.Flags().StringVar(&cfg.Source, "source", "", "site root holding the pages directory")
	cmd.Flags().StringVar(&cfg.Output, "output", "", "output root")
	cmd.Flags().StringVar(&cfg.PagesDir, "pages-dir", "", "pages directory below source and output")
	cmd.Flags().StringVar(&cfg.BaseURL, "base-url", "", "absolute site URL for feed and sitemap")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&cfg.Sanitize, "sanitize", false, "sanitize rendered HTML")
	cmd.Flags().BoolVar(&cfg.DetectCodeLanguage, "detect-lang", false, "label code fences that have no language")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "render everything but write nothing")
	cmd.Flags().StringVar(&flags.format, "format", "text", "report format: text, json, summary")
	cmd.Flags().StringVar(&flags.frontMatter, "front-matter", "", "front matter parser: simple, yaml")
	cmd.Flags().StringSliceVar(&flags.categories, "category", nil,
		"only build these category directories (skips the site index)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns, relative to the pages directory, to skip")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list unchanged pages too")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
}

func runBuild(cmd *cobra.Command, cfg *config.Config, flags *buildFlags) error {
	start := time.Now()
	logger := logging.Default()

	// Only set values that were explicitly provided via CLI flags.
	if cmd.Flags().Changed("format") {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("front-matter") {
		cfg.FrontMatter = config.FrontMatterMode(flags.frontMatter)
	}
	cfg.Ignore = flags.ignore

	ctx := logging.WithLogger(commandContext(cmd), logger)

	loadResult, workDir, err := loadConfig(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	finalCfg := loadResult.Config

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", configloader.ErrInvalidConfig, err)
	}

	logger.Debug("configuration loaded",
		logging.FieldSource, finalCfg.Source,
		logging.FieldOutput, finalCfg.Output,
		logging.FieldPagesDir, finalCfg.PagesDir,
		logging.FieldFrontMatter, finalCfg.FrontMatter,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	pages, err := site.NewRenderer(finalCfg.TemplateDir)
	if err != nil {
		return err
	}

	siteRunner := runner.New(build.NewPipeline(finalCfg, pages))

	result, err := siteRunner.Run(ctx, runner.Options{
		Config:         finalCfg,
		Categories:     flags.categories,
		FollowSymlinks: flags.followSymlinks,
	})
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	var artifacts []site.WriteResult
	if len(flags.categories) == 0 {
		artifacts, err = writeSiteArtifacts(ctx, finalCfg, pages, result)
		if err != nil {
			return err
		}
	} else {
		logger.Info("category filter set; site index left as is", logging.FieldCategory, flags.categories)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		Verbose:     flags.verbose,
		WorkingDir:  workDir,
		Categories:  categoryDirs(finalCfg),
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, &reporter.Report{
		Result:    result,
		Artifacts: artifacts,
		DryRun:    finalCfg.DryRun,
	}); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("build finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldDuration, time.Since(start),
	)

	if result.HasFailures() {
		return ErrBuildFailed
	}

	return nil
}

// writeSiteArtifacts renders and writes the site index, feed and sitemap for
// every page that built.
func writeSiteArtifacts(
	ctx context.Context, cfg *config.Config, pages *site.Renderer, result *runner.Result,
) ([]site.WriteResult, error) {
	logger := logging.FromContext(ctx)

	artifacts, err := site.Artifacts(result.Posts(), site.ArtifactOptions{
		Categories:  cfg.Categories,
		BaseURL:     cfg.BaseURL,
		SiteTitle:   cfg.SiteTitle,
		Description: cfg.SiteTitle,
		Language:    cfg.Language,
		TOCScript:   pages.TOCScript(),
	})
	if err != nil {
		return nil, fmt.Errorf("render site artifacts: %w", err)
	}

	written, err := site.WriteArtifacts(ctx, cfg.Output, artifacts, cfg.DryRun)
	if err != nil {
		return nil, fmt.Errorf("%w: site artifacts: %w", build.ErrWriteFailure, err)
	}

	for _, artifact := range written {
		logger.Debug("artifact",
			logging.FieldArtifact, artifact.Path,
			logging.FieldBytes, artifact.Bytes,
			logging.FieldWritten, artifact.Written,
		)
	}

	return written, nil
}

// loadConfig resolves the configuration for a command, honoring the global
// --config flag. cliCfg may be nil.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, string, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfig, loadResult.LoadedFrom)
	}

	return loadResult, workDir, nil
}

func categoryDirs(cfg *config.Config) []string {
	dirs := make([]string, 0, len(cfg.Categories))
	for _, cat := range cfg.Categories {
		dirs = append(dirs, cat.Dir)
	}
	return dirs
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
