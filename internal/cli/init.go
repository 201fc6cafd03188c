package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdsite/internal/logging"
	"github.com/yaklabco/gomdsite/pkg/config"
	"github.com/yaklabco/gomdsite/pkg/fsutil"
)

// defaultConfigFile is the file init writes when --output is not given.
const defaultConfigFile = ".gomdsite.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a gomdsite configuration file",
		Long: `Create a new .gomdsite.yml configuration file in the current directory.

The starter file documents every setting and leaves most of them commented
out, so the defaults apply until you change them.

Examples:
  gomdsite init                       Create a commented .gomdsite.yml
  gomdsite init --full                Write every setting with its default value
  gomdsite init --output site.yml     Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every setting with its default value")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.Default()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'gomdsite build' to render the site")

	return nil
}
