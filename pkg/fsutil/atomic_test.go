package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdsite/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "posts", "repo", "deep", "a.html")

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("<p>x</p>"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<p>x</p>", string(got))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())
	})

	t.Run("overwrites and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "a.html")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("cancelled context writes nothing", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		path := filepath.Join(t.TempDir(), "a.html")

		require.ErrorIs(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0), context.Canceled)
		assert.NoFileExists(t, path)
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "posts.json")

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("[]"), 0)
	require.NoError(t, err)
	assert.True(t, written, "missing file is written")

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("[]"), 0)
	require.NoError(t, err)
	assert.False(t, written, "identical content is skipped")

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("[1]"), 0)
	require.NoError(t, err)
	assert.True(t, written, "changed content is written")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(got))
}
