package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdsite/internal/cli"
	"github.com/yaklabco/gomdsite/internal/configloader"
	"github.com/yaklabco/gomdsite/pkg/build"
	"github.com/yaklabco/gomdsite/pkg/fsutil"
	"github.com/yaklabco/gomdsite/pkg/site"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test-version", Commit: "test-commit", Date: "test-date"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "gomdsite", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"build", "render", "init", "config", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
}

func TestBuildCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	buildCmd, _, err := cmd.Find([]string{"build"})
	require.NoError(t, err)

	for _, name := range []string{
		"source", "output", "pages-dir", "base-url", "jobs", "sanitize", "detect-lang",
		"dry-run", "format", "front-matter", "category", "ignore", "verbose", "follow-symlinks",
	} {
		assert.NotNil(t, buildCmd.Flags().Lookup(name), "flag %q", name)
	}

	format := buildCmd.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())

	output := stdout.String()
	assert.Contains(t, output, "test-version")
	assert.Contains(t, output, "test-commit")
	assert.Contains(t, output, "test-date")
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"build", "--help"})

	require.NoError(t, cmd.Execute())

	output := stdout.String()
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "gomdsite build")
	assert.Contains(t, output, "--dry-run")
	assert.Contains(t, output, "Global Flags:")
	assert.Contains(t, output, "--color string")
}

func TestUsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown command", args: []string{"publish"}},
		{name: "unknown flag", args: []string{"build", "--no-such-flag"}},
		{name: "bad format", args: []string{"build", "--format", "sarif"}},
		{name: "render without file", args: []string{"render"}},
		{name: "build with args", args: []string{"build", "posts"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(testCase.args)

			err := cmd.Execute()
			require.ErrorIs(t, err, cli.ErrUsage)
			assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "build failed", err: cli.ErrBuildFailed, want: cli.ExitBuildFailures},
		{name: "usage", err: fmt.Errorf("%w: bad", cli.ErrUsage), want: cli.ExitInvalidUsage},
		{
			name: "invalid config",
			err:  fmt.Errorf("load configuration: %w", fmt.Errorf("%w: x", configloader.ErrInvalidConfig)),
			want: cli.ExitConfigError,
		},
		{name: "template", err: fmt.Errorf("%w: page.html", site.ErrTemplate), want: cli.ExitConfigError},
		{name: "not found", err: fmt.Errorf("read: %w", fsutil.ErrNotFound), want: cli.ExitIOError},
		{name: "os not exist", err: fmt.Errorf("stat: %w", os.ErrNotExist), want: cli.ExitIOError},
		{name: "write failure", err: fmt.Errorf("%w: feed.xml", build.ErrWriteFailure), want: cli.ExitIOError},
		{name: "cancelled", err: context.Canceled, want: cli.ExitInternalError},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, cli.ExitCode(testCase.err))
		})
	}
}
