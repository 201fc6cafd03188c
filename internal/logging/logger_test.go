package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdsite/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug", "debug", log.DebugLevel},
		{"info", "info", log.InfoLevel},
		{"warn", "warn", log.WarnLevel},
		{"warning alias", "warning", log.WarnLevel},
		{"error", "error", log.ErrorLevel},
		{"unknown is info", "verbose", log.InfoLevel},
		{"empty is info", "", log.InfoLevel},
		{"mixed case", " DeBuG ", log.DebugLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, logging.ParseLevel(testCase.level))
			assert.Equal(t, testCase.expected, logging.New(testCase.level).GetLevel())
		})
	}
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown", logging.FieldPath, "posts/a.md")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "path=posts/a.md")
}

func TestContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "debug")

	//nolint:staticcheck // nil context is handled
	assert.Same(t, logging.Default(), logging.FromContext(nil))
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))

	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))

	ctx = logging.WithFields(ctx, logging.FieldCategory, "repo")
	logging.FromContext(ctx).Debug("rendered")
	assert.Contains(t, buf.String(), "category=repo")
}

func TestSetDefault(t *testing.T) {
	// Not parallel: swaps the process-wide logger.
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	replacement := logging.New("info")
	logging.SetDefault(replacement)
	require.Same(t, replacement, logging.Default())

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}
