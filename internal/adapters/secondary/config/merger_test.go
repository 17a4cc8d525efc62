package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

func TestConfigMerger_Merge(t *testing.T) {
	merger := NewConfigMerger()

	t.Run("merge with no configs returns defaults", func(t *testing.T) {
		result := merger.Merge()
		assert.NotNil(t, result)
		assert.Equal(t, "localhost", result.Server.Host)
		assert.Equal(t, DefaultPort, result.Server.Port)
		assert.Equal(t, DefaultTheme, result.Theme.Name)
		assert.Equal(t, []string{DefaultOutputDir}, result.Output.PreferredDirs)
		assert.Equal(t, "outputs", result.Output.FallbackDir)
		assert.Equal(t, 4000, result.Generator.MaxTokens)
		assert.InDelta(t, 0.7, result.Generator.Temperature, 1e-9)
	})

	t.Run("merge multiple configs with precedence", func(t *testing.T) {
		base := GetDefaultConfig()
		override := &entities.Config{
			Output: entities.OutputConfig{
				PreferredDirs: []string{"/srv/decks"},
			},
			Theme: entities.ThemeConfig{
				Name: "church_warmth",
			},
			Server: entities.ServerConfig{
				Host: "0.0.0.0",
			},
			Generator: entities.GeneratorConfig{
				Model: "claude-test",
			},
		}

		result := merger.Merge(base, override)
		assert.Equal(t, "0.0.0.0", result.Server.Host)
		assert.Equal(t, DefaultPort, result.Server.Port)
		assert.Equal(t, "church_warmth", result.Theme.Name)
		assert.Equal(t, []string{"/srv/decks"}, result.Output.PreferredDirs)
		assert.Equal(t, "claude-test", result.Generator.Model)
		assert.Equal(t, 4000, result.Generator.MaxTokens)
		assert.Equal(t, DefaultTheme, base.Theme.Name, "inputs are not mutated")
	})

	t.Run("booleans only turn on", func(t *testing.T) {
		base := &entities.Config{Export: entities.ExportConfig{Preview: true}}
		override := &entities.Config{Export: entities.ExportConfig{Handout: true}}

		result := merger.Merge(base, override)
		assert.True(t, result.Export.Preview)
		assert.True(t, result.Export.Handout)
	})

	t.Run("merge handles nil configs", func(t *testing.T) {
		base := &entities.Config{Server: entities.ServerConfig{Host: "localhost", Port: 1000}}

		result := merger.Merge(base, nil)
		assert.Equal(t, "localhost", result.Server.Host)
		assert.Equal(t, 1000, result.Server.Port)

		assert.NotNil(t, merger.Merge(nil, base))
	})

	t.Run("slices are copied", func(t *testing.T) {
		base := GetDefaultConfig()
		result := merger.Merge(base)
		result.Server.CORSOrigins[0] = "https://changed.example"
		assert.Equal(t, "http://localhost:3000", base.Server.CORSOrigins[0])
	})
}

func TestConfigMerger_ApplyFlags(t *testing.T) {
	merger := NewConfigMerger()

	t.Run("apply CLI flag overrides", func(t *testing.T) {
		flags := map[string]interface{}{
			"output-dir": "/tmp/out",
			"theme":      "tech_modern",
			"brand":      "brand.yaml",
			"template":   "base.pptx",
			"preview":    true,
			"handout":    true,
			"port":       9090,
			"host":       "0.0.0.0",
			"verbose":    true,
		}

		result := merger.ApplyFlags(GetDefaultConfig(), flags)
		assert.Equal(t, "/tmp/out", result.Output.Dir)
		assert.Equal(t, "tech_modern", result.Theme.Name)
		assert.Equal(t, "brand.yaml", result.Theme.BrandKit)
		assert.Equal(t, "base.pptx", result.Template.Path)
		assert.True(t, result.Export.Preview)
		assert.True(t, result.Export.Handout)
		assert.Equal(t, 9090, result.Server.Port)
		assert.Equal(t, "0.0.0.0", result.Server.Host)
		assert.True(t, result.Logging.Verbose)
		assert.Equal(t, "debug", result.Logging.Level)
	})

	t.Run("ignore empty and wrong type values", func(t *testing.T) {
		flags := map[string]interface{}{
			"port":    "not-a-number",
			"host":    "",
			"theme":   "",
			"verbose": false,
		}

		result := merger.ApplyFlags(GetDefaultConfig(), flags)
		assert.Equal(t, "localhost", result.Server.Host)
		assert.Equal(t, DefaultPort, result.Server.Port)
		assert.Equal(t, DefaultTheme, result.Theme.Name)
		assert.Equal(t, "info", result.Logging.Level)
	})

	t.Run("nil flags", func(t *testing.T) {
		result := merger.ApplyFlags(GetDefaultConfig(), nil)
		assert.Equal(t, DefaultTheme, result.Theme.Name)
	})
}

func TestConfigMerger_ApplyEnvVars(t *testing.T) {
	merger := NewConfigMerger()

	t.Run("apply environment variable overrides", func(t *testing.T) {
		t.Setenv("SLIDECRAFT_OUTPUT_DIR", "/env/out")
		t.Setenv("SLIDECRAFT_THEME", "church_modern")
		t.Setenv("SLIDECRAFT_BRAND_KIT", "/env/brand.json")
		t.Setenv("SLIDECRAFT_TEMPLATE", "/env/base.pptx")
		t.Setenv("SLIDECRAFT_MODEL", "env-model")
		t.Setenv("SLIDECRAFT_API_BASE_URL", "http://127.0.0.1:9999")
		t.Setenv("SLIDECRAFT_HOST", "env-host")
		t.Setenv("SLIDECRAFT_PORT", "9000")
		t.Setenv("SLIDECRAFT_CORS_ORIGINS", "https://a.example, https://b.example")
		t.Setenv("SLIDECRAFT_LOG_LEVEL", "warn")
		t.Setenv("SLIDECRAFT_LOG_VERBOSE", "true")

		result := merger.ApplyEnvVars(GetDefaultConfig())
		assert.Equal(t, "/env/out", result.Output.Dir)
		assert.Equal(t, "church_modern", result.Theme.Name)
		assert.Equal(t, "/env/brand.json", result.Theme.BrandKit)
		assert.Equal(t, "/env/base.pptx", result.Template.Path)
		assert.Equal(t, "env-model", result.Generator.Model)
		assert.Equal(t, "http://127.0.0.1:9999", result.Generator.BaseURL)
		assert.Equal(t, "env-host", result.Server.Host)
		assert.Equal(t, 9000, result.Server.Port)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, result.Server.CORSOrigins)
		assert.Equal(t, "warn", result.Logging.Level)
		assert.True(t, result.Logging.Verbose)
	})

	t.Run("invalid values are ignored", func(t *testing.T) {
		t.Setenv("SLIDECRAFT_PORT", "abc")
		t.Setenv("SLIDECRAFT_LOG_VERBOSE", "maybe")

		result := merger.ApplyEnvVars(GetDefaultConfig())
		assert.Equal(t, DefaultPort, result.Server.Port)
		assert.False(t, result.Logging.Verbose)
	})
}
