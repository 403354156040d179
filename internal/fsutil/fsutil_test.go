package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAbsent(t *testing.T) {
	t.Run("removes an existing tree", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "case")
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "Buildconf"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "env_run.xml"), []byte("<xml/>"), 0o644))

		require.NoError(t, EnsureAbsent(dir))

		_, err := os.Stat(dir)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing path is not an error", func(t *testing.T) {
		assert.NoError(t, EnsureAbsent(filepath.Join(t.TempDir(), "never-created")))
	})

	t.Run("panics on empty path", func(t *testing.T) {
		assert.Panics(t, func() { _ = EnsureAbsent("") })
	})
}

func TestFindFilesByPrefix(t *testing.T) {
	root := t.TempDir()
	hist := filepath.Join(root, "atm", "hist")
	require.NoError(t, os.MkdirAll(hist, 0o755))

	names := []string{
		"myrun.cam.h0.2010-02.nc",
		"myrun.cam.h0.2010-01.nc",
		"myrun.cam.h1.2010-01.nc",
		"myrun.clm2.h0.2010-01.nc",
		"notes.txt",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(hist, n), nil, 0o644))
	}

	got, err := FindFilesByPrefix(root, "myrun.cam.h0.", ".nc")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Lexical order doubles as chronological order for history files.
	assert.Equal(t, filepath.Join(hist, "myrun.cam.h0.2010-01.nc"), got[0])
	assert.Equal(t, filepath.Join(hist, "myrun.cam.h0.2010-02.nc"), got[1])
}
