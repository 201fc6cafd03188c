package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdsite/internal/logging"
	"github.com/yaklabco/gomdsite/pkg/build"
	"github.com/yaklabco/gomdsite/pkg/fsutil"
	"github.com/yaklabco/gomdsite/pkg/runner"
	"github.com/yaklabco/gomdsite/pkg/site"
	"github.com/yaklabco/gomdsite/pkg/toc"
)

type renderFlags struct {
	toc  bool
	page bool
	json bool
}

// renderOutput is the --json shape of a rendered document.
type renderOutput struct {
	Metadata site.Post   `json:"metadata"`
	HTML     string      `json:"html"`
	TOC      []toc.Entry `json:"toc"`
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render one markdown file to stdout",
		Long: `Render one markdown file and print the result to stdout.

By default only the HTML fragment is printed. Use "-" to read from stdin.
A file inside the configured pages directory is rendered with the asset
prefix of its published location.

Examples:
  gomdsite render posts/repo/intro.md           # Fragment only
  gomdsite render --toc posts/repo/intro.md     # Sidebar, then fragment
  gomdsite render --page posts/repo/intro.md    # Complete HTML page
  gomdsite render --json - < draft.md           # Metadata, HTML and outline`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.toc, "toc", false, "print the table of contents sidebar before the fragment")
	cmd.Flags().BoolVar(&flags.page, "page", false, "print the complete page instead of the fragment")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print metadata, fragment and outline as JSON")
	cmd.MarkFlagsMutuallyExclusive("page", "json")

	return cmd
}

func runRender(cmd *cobra.Command, input string, flags *renderFlags) error {
	ctx := logging.WithLogger(commandContext(cmd), logging.Default())

	loadResult, _, err := loadConfig(ctx, cmd, nil)
	if err != nil {
		return err
	}
	cfg := loadResult.Config

	var content []byte
	if input == "-" {
		content, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	} else {
		content, _, err = fsutil.ReadFile(ctx, input)
		if err != nil {
			return err
		}
	}

	src, inSite := sourceForInput(cfg.Source, cfg.PagesDir, input)
	url := src.URL("")
	if inSite {
		url = src.URL(cfg.PagesDir)
	}

	pages, err := site.NewRenderer(cfg.TemplateDir)
	if err != nil {
		return err
	}
	pipeline := build.NewPipeline(cfg, pages)

	rendered := build.Render(content, pipeline.RenderOptions(url))
	post := build.PostFromDocument(rendered, src, url, pipeline.Now())

	logging.FromContext(ctx).Debug("rendered",
		logging.FieldPath, input,
		logging.FieldURL, url,
		logging.FieldHeadings, len(rendered.Entries),
	)

	out := cmd.OutOrStdout()

	switch {
	case flags.json:
		encoder := json.NewEncoder(out)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "  ")
		entries := rendered.Entries
		if entries == nil {
			entries = []toc.Entry{}
		}
		if err := encoder.Encode(renderOutput{Metadata: post, HTML: rendered.HTML, TOC: entries}); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil

	case flags.page:
		page, err := pipeline.Page(rendered, post)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", build.ErrRenderFailure, input, err)
		}
		_, err = io.WriteString(out, page)
		return err

	default:
		if flags.toc && rendered.TOC != "" {
			if _, err := io.WriteString(out, rendered.TOC); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(out, rendered.HTML)
		return err
	}
}

// sourceForInput places input below the pages root when it lives there, so
// the page gets its published URL. Anything else renders as a root-level page.
func sourceForInput(sourceRoot, pagesDir, input string) (build.Source, bool) {
	if input == "-" {
		return build.Source{Path: input, Rel: "stdin.md"}, false
	}
	if abs, err := filepath.Abs(input); err == nil {
		if src, ok := runner.SourceFor(filepath.Join(sourceRoot, pagesDir), abs); ok {
			return src, true
		}
	}
	return build.Source{Path: input, Rel: filepath.Base(input)}, false
}
