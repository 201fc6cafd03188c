package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdsite/internal/configloader"
	"github.com/yaklabco/gomdsite/internal/logging"
	"github.com/yaklabco/gomdsite/internal/ui/pretty"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration as YAML",
		Long: `Print the configuration gomdsite would build with, after merging the
user config, project config, --config file and GOMDSITE_* variables.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: runConfigShow,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and report problems",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  runConfigValidate,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "env",
		Short: "List the supported environment variables",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeEnvVars(cmd.OutOrStdout(), configloader.ListEnvVars(), colorStyles(cmd))
		},
	})

	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	ctx := logging.WithLogger(commandContext(cmd), logging.Default())

	loadResult, _, err := loadConfig(ctx, cmd, nil)
	if err != nil {
		return err
	}

	header := "# Effective gomdsite configuration"
	if len(loadResult.LoadedFrom) > 0 {
		header += "\n# Loaded from: " + strings.Join(loadResult.LoadedFrom, ", ")
	}

	content, err := loadResult.Config.ToYAMLWithHeader(header)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(content)
	return err
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	ctx := logging.WithLogger(commandContext(cmd), logging.Default())

	loadResult, _, err := loadConfig(ctx, cmd, nil)
	if err != nil {
		return err
	}

	styles := colorStyles(cmd)
	out := cmd.OutOrStdout()

	sources := "defaults only"
	if len(loadResult.LoadedFrom) > 0 {
		sources = strings.Join(loadResult.LoadedFrom, ", ")
	}
	fmt.Fprintf(out, "%s %s\n", styles.Success.Render("Configuration is valid:"), styles.Dim.Render(sources))
	if n := len(loadResult.Warnings); n > 0 {
		fmt.Fprintf(out, "%s\n", styles.Warning.Render(fmt.Sprintf("%d warning(s) logged", n)))
	}

	return nil
}

func writeEnvVars(out io.Writer, vars map[string]string, styles *pretty.Styles) error {
	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		width = max(width, len(name))
	}
	sort.Strings(names)

	for _, name := range names {
		padded := name + strings.Repeat(" ", width-len(name))
		if _, err := fmt.Fprintf(out, "%s  %s\n", styles.Bold.Render(padded), vars[name]); err != nil {
			return err
		}
	}
	return nil
}

func colorStyles(cmd *cobra.Command) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
}
