package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lawcorpus/lexscan"
	"github.com/lawcorpus/lexscan/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults when the file does not exist", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		require.Len(t, cfg.Catalogs, 3)
		assert.Equal(t, "textbooks", cfg.Catalogs[0].Name)
		assert.Equal(t, "https://texts.lawcorpus.org", cfg.Resolve.BaseOrigin)
		assert.Equal(t, 8, cfg.Fetch.Concurrency)
		assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout())
		assert.Equal(t, "window", cfg.Chunk.Strategy)
		assert.NotEmpty(t, cfg.History.Path)
	})

	t.Run("fills absent fields with defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "lexscan.yaml")
		partial := []byte("fetch:\n  concurrency: 2\nsnippet:\n  max: 5\n")
		require.NoError(t, os.WriteFile(path, partial, 0644))

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Fetch.Concurrency)
		assert.Equal(t, 5, cfg.Snippet.Max)
		// Untouched fields fall back to defaults.
		assert.Equal(t, 10, cfg.Fetch.TimeoutSecs)
		assert.Equal(t, 160, cfg.Snippet.Window)
		assert.Equal(t, 2000, cfg.Chunk.Window)
		assert.Len(t, cfg.Catalogs, 3)
	})

	t.Run("returns an error for malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "lexscan.yaml")
		require.NoError(t, os.WriteFile(path, []byte("catalogs: [unclosed"), 0644))

		_, err := config.Load(path)

		require.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	t.Parallel()

	t.Run("round-trips through Load", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "lexscan.yaml")
		cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		cfg.Fetch.RPS = 1.5
		cfg.Index.Dir = "custom-index"

		require.NoError(t, config.Save(path, cfg))

		loaded, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 1.5, loaded.Fetch.RPS)
		assert.Equal(t, "custom-index", loaded.Index.Dir)
		assert.Equal(t, cfg.Catalogs, loaded.Catalogs)
	})
}

func TestLoadDefault(t *testing.T) {
	// Overrides HOME, so this test must not run in parallel.

	t.Run("writes defaults on first run", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		cfg, path, err := config.LoadDefault()

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "lexscan", "config.yaml"), path)
		assert.FileExists(t, path)
		require.Len(t, cfg.Catalogs, 3)

		// A second load reads the written file rather than regenerating it.
		again, againPath, err := config.LoadDefault()
		require.NoError(t, err)
		assert.Equal(t, path, againPath)
		assert.Equal(t, cfg.Catalogs, again.Catalogs)
	})
}

func TestParseCatalogs(t *testing.T) {
	t.Parallel()

	t.Run("converts entries into domain catalogs", func(t *testing.T) {
		t.Parallel()

		catalogs, err := config.ParseCatalogs([]config.CatalogConfig{
			{Name: "laws", URL: "https://texts.lawcorpus.org/catalogs/laws.json", Kind: "law"},
			{Name: "rules", URL: "https://texts.lawcorpus.org/catalogs/rules.json", Kind: "rule"},
		})

		require.NoError(t, err)
		require.Len(t, catalogs, 2)
		assert.Equal(t, lexscan.KindLaw, catalogs[0].Kind)
		assert.Equal(t, "rules", catalogs[1].Name)
	})

	t.Run("rejects an unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := config.ParseCatalogs([]config.CatalogConfig{
			{Name: "cases", URL: "https://texts.lawcorpus.org/catalogs/cases.json", Kind: "case"},
		})

		require.Error(t, err)
		assert.Equal(t, lexscan.EINVALID, lexscan.ErrorCode(err))
	})

	t.Run("rejects a missing url", func(t *testing.T) {
		t.Parallel()

		_, err := config.ParseCatalogs([]config.CatalogConfig{
			{Name: "laws", Kind: "law"},
		})

		require.Error(t, err)
		assert.Equal(t, lexscan.EINVALID, lexscan.ErrorCode(err))
	})
}
