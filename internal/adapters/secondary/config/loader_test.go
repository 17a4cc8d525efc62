package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOMLLoader_LoadGlobal(t *testing.T) {
	ctx := context.Background()

	t.Run("creates config on first run", func(t *testing.T) {
		globalPath := filepath.Join(t.TempDir(), "nested", "config.toml")
		loader := NewTOMLLoaderWithPath(globalPath)

		config, err := loader.LoadGlobal(ctx)
		require.NoError(t, err)
		require.NotNil(t, config)

		_, err = os.Stat(globalPath)
		assert.NoError(t, err)

		assert.Equal(t, "localhost", config.Server.Host)
		assert.Equal(t, DefaultPort, config.Server.Port)
		assert.Equal(t, DefaultTheme, config.Theme.Name)
		assert.Equal(t, []string{DefaultOutputDir}, config.Output.PreferredDirs)
		assert.Equal(t, "ANTHROPIC_API_KEY", config.Generator.APIKeyEnv)
		assert.NoError(t, config.Validate())
	})

	t.Run("loads existing config", func(t *testing.T) {
		globalPath := filepath.Join(t.TempDir(), "config.toml")
		content := `
[output]
preferred_dirs = ["/srv/decks"]
fallback_dir = "decks"

[theme]
name = "tech_modern"

[generator]
model = "claude-test"
temperature = 0.2

[server]
host = "0.0.0.0"
port = 9000

[export]
preview = true
`
		require.NoError(t, os.WriteFile(globalPath, []byte(content), 0o600))

		config, err := NewTOMLLoaderWithPath(globalPath).LoadGlobal(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"/srv/decks"}, config.Output.PreferredDirs)
		assert.Equal(t, "decks", config.Output.FallbackDir)
		assert.Equal(t, "tech_modern", config.Theme.Name)
		assert.Equal(t, "claude-test", config.Generator.Model)
		assert.InDelta(t, 0.2, config.Generator.Temperature, 1e-9)
		assert.Equal(t, 9000, config.Server.Port)
		assert.True(t, config.Export.Preview)
	})

	t.Run("invalid TOML", func(t *testing.T) {
		globalPath := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(globalPath, []byte("[server\nport = "), 0o600))

		_, err := NewTOMLLoaderWithPath(globalPath).LoadGlobal(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing TOML")
	})

	t.Run("unknown keys", func(t *testing.T) {
		globalPath := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(globalPath, []byte("[browser]\nauto_open = true\n"), 0o600))

		_, err := NewTOMLLoaderWithPath(globalPath).LoadGlobal(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown keys")
	})
}

func TestTOMLLoader_LoadLocal(t *testing.T) {
	ctx := context.Background()
	loader := NewTOMLLoaderWithPath(filepath.Join(t.TempDir(), "config.toml"))

	t.Run("missing local config is not an error", func(t *testing.T) {
		config, err := loader.LoadLocal(ctx, t.TempDir())
		assert.NoError(t, err)
		assert.Nil(t, config)
	})

	t.Run("partial local config", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "slidecraft.toml"), []byte("[template]\npath = \"brand.pptx\"\n"), 0o600))

		config, err := loader.LoadLocal(ctx, dir)
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, "brand.pptx", config.Template.Path)
		assert.Empty(t, config.Theme.Name)
	})
}

func TestTOMLLoader_LoadFile(t *testing.T) {
	ctx := context.Background()
	loader := NewTOMLLoader()

	_, err := loader.LoadFile(ctx, filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\n"), 0o600))
	config, err := loader.LoadFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestTOMLLoader_Paths(t *testing.T) {
	loader := NewTOMLLoader()
	assert.True(t, strings.HasSuffix(loader.GetGlobalPath(), filepath.Join(".config", "slidecraft", "config.toml")))
	assert.Equal(t, filepath.Join("/work", "slidecraft.toml"), loader.GetLocalPath("/work"))
}
