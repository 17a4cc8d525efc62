package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/brand"
	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/config"
	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

// newBuildCommand returns a detached command carrying the build flags
func newBuildCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool("verbose", false, "")
	addBuildFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

// isolate points the global config at a temp HOME and runs in a temp dir
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	work := t.TempDir()
	t.Chdir(work)
	return work
}

func TestChangedFlags(t *testing.T) {
	t.Run("only explicit flags are collected", func(t *testing.T) {
		cmd := newBuildCommand(t, "--theme", "church_warmth", "--handout")

		flags := changedFlags(cmd)

		assert.Equal(t, map[string]interface{}{
			"theme":   "church_warmth",
			"handout": true,
		}, flags)
	})

	t.Run("explicit false is kept", func(t *testing.T) {
		cmd := newBuildCommand(t, "--preview=false")
		assert.Equal(t, false, changedFlags(cmd)["preview"])
	})

	t.Run("nothing set", func(t *testing.T) {
		assert.Empty(t, changedFlags(newBuildCommand(t)))
	})
}

func TestApplyConfig(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Theme.Name = "tech_modern"
	cfg.Output.Dir = "/tmp/decks"

	t.Run("description wins over configuration", func(t *testing.T) {
		bc := entities.BuildConfig{Theme: "church_warmth"}
		applyConfig(newBuildCommand(t), cfg, &bc)

		assert.Equal(t, "church_warmth", bc.Theme)
		assert.Equal(t, entities.Format16x9, bc.Format)
		assert.Empty(t, bc.OutputDir)
	})

	t.Run("configuration fills gaps", func(t *testing.T) {
		bc := entities.BuildConfig{}
		applyConfig(newBuildCommand(t), cfg, &bc)

		assert.Equal(t, "tech_modern", bc.Theme)
		assert.True(t, bc.BrandKit.IsZero())
	})

	t.Run("flags win over the description", func(t *testing.T) {
		flagged := *cfg
		flagged.Theme.BrandKit = "/kits/brand.json"
		bc := entities.BuildConfig{Theme: "church_warmth", BrandKit: entities.BrandKitRef{Path: "other.json"}}

		applyConfig(newBuildCommand(t, "--theme", "x", "--brand", "y", "-o", "z"), &flagged, &bc)

		assert.Equal(t, "tech_modern", bc.Theme)
		assert.Equal(t, "/kits/brand.json", bc.BrandKit.Path)
		assert.Equal(t, "/tmp/decks", bc.OutputDir)
	})
}

func TestGenerationRequest(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(notes, []byte("# Intro\n- one\n"), 0o600))

	t.Run("markdown notes", func(t *testing.T) {
		cmd := &cobra.Command{Use: "test"}
		cmd.Flags().String("topic", "", "")
		cmd.Flags().String("notes-file", "", "")
		cmd.Flags().IntP("slides", "n", 0, "")
		cmd.Flags().String("type", "", "")
		require.NoError(t, cmd.ParseFlags([]string{"--topic", "Plans", "--notes-file", notes, "--type", "SERMON", "-n", "7"}))

		req, err := generationRequest(cmd, "notes-file")

		require.NoError(t, err)
		assert.Equal(t, "Plans", req.Topic)
		assert.Equal(t, 7, req.NumSlides)
		assert.Equal(t, entities.PresentationSermon, req.PresentationType)
		assert.True(t, req.Markdown)
		assert.Contains(t, req.Content, "# Intro")
	})

	t.Run("missing notes file", func(t *testing.T) {
		cmd := &cobra.Command{Use: "test"}
		cmd.Flags().String("topic", "", "")
		cmd.Flags().String("context-file", "", "")
		cmd.Flags().String("company", "", "")
		cmd.Flags().String("presenter", "", "")
		cmd.Flags().Int("slides", 10, "")
		cmd.Flags().String("type", "", "")
		require.NoError(t, cmd.ParseFlags([]string{"--topic", "x", "--context-file", filepath.Join(dir, "nope.txt")}))

		_, err := generationRequest(cmd, "context-file")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "notes file not found")
	})
}

func TestValidateServeConfig(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		port    int
		wantErr string
	}{
		{"valid", "localhost", 8080, ""},
		{"zero port", "localhost", 0, "invalid port number"},
		{"port too large", "localhost", 70000, "invalid port number"},
		{"empty host", "", 8080, "host cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &entities.Config{Server: entities.ServerConfig{Host: tt.host, Port: tt.port}}
			err := validateServeConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	logger := newLoggerWithLevel(true, entities.LogLevelWarn)
	assert.False(t, logger.shouldLog(entities.LogLevelInfo))
	assert.True(t, logger.shouldLog(entities.LogLevelWarn))
	assert.True(t, logger.shouldLog(entities.LogLevelError))
}

func TestBrandInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kit", "brand.yaml")

	run := func(args ...string) (string, error) {
		cmd := &cobra.Command{Use: "init", Args: cobra.ExactArgs(1), RunE: runBrandInit}
		cmd.Flags().String("name", "My Brand", "")
		cmd.Flags().Bool("force", false, "")
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return buf.String(), err
	}

	out, err := run(path, "--name", "Acme")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote brand kit")

	kit, err := brand.NewRepository().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Acme", kit.Name)

	_, err = run(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(path, "--force")
	assert.NoError(t, err)
}

func TestCatalogCommands(t *testing.T) {
	t.Run("themes table", func(t *testing.T) {
		cmd := &cobra.Command{Use: "themes", RunE: runThemes}
		cmd.Flags().String("output", "table", "")
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), "software_professional")
		assert.Contains(t, buf.String(), "church_warmth")
	})

	t.Run("templates by category", func(t *testing.T) {
		cmd := &cobra.Command{Use: "list", RunE: runTemplatesList}
		cmd.Flags().String("category", "", "")
		cmd.Flags().String("output", "table", "")
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{"--category", "church"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), "sermon")
		assert.NotContains(t, buf.String(), "investor_pitch")
	})

	t.Run("template fields", func(t *testing.T) {
		cmd := &cobra.Command{Use: "fields", Args: cobra.ExactArgs(1), RunE: runTemplatesFields}
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{"sermon"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), "sermon_title")
		assert.Contains(t, buf.String(), "Sermon Title")
	})

	t.Run("unknown template", func(t *testing.T) {
		cmd := &cobra.Command{Use: "fields", Args: cobra.ExactArgs(1), RunE: runTemplatesFields}
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"nope"})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown template")
	})
}

func TestBuildCommandEndToEnd(t *testing.T) {
	work := isolate(t)
	outDir := filepath.Join(work, "decks")
	slides := filepath.Join(work, "slides.json")
	require.NoError(t, os.WriteFile(slides, []byte(`[
		{"type": "title", "title": "Hello", "subtitle": "World", "notes": "Welcome everyone"},
		{"type": "content", "title": "Agenda", "bullets": ["One", "Two"]},
		{"type": "stats", "title": "Numbers", "stats": ["Members: 120", "Growth: 15%"]}
	]`), 0o600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"build", slides, "-o", outDir, "--handout", "--theme", "church_warmth"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.ExecuteContext(context.Background()), buf.String())

	assert.Contains(t, buf.String(), "3 slides")
	assert.Contains(t, buf.String(), "Church Warmth")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	var pptxFiles, pdfFiles int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".pptx"):
			pptxFiles++
		case strings.HasSuffix(e.Name(), "_handout.pdf"):
			pdfFiles++
		}
	}
	assert.Equal(t, 1, pptxFiles)
	assert.Equal(t, 1, pdfFiles)

	_, err = os.Stat(filepath.Join(os.Getenv("HOME"), ".config", "slidecraft", "config.toml"))
	assert.NoError(t, err, "global config is created on first run")
}

type scriptedWatcher struct {
	paths   []string
	changes []ports.InputChange
}

func (w *scriptedWatcher) Watch(_ context.Context, paths ...string) (<-chan ports.InputChange, error) {
	w.paths = paths
	events := make(chan ports.InputChange, len(w.changes))
	for _, c := range w.changes {
		events <- c
	}
	close(events)
	return events, nil
}

func TestWatchAndBuild(t *testing.T) {
	work := isolate(t)
	outDir := filepath.Join(work, "decks")
	slides := filepath.Join(work, "slides.json")
	require.NoError(t, os.WriteFile(slides, []byte(`[{"type": "title", "title": "Live"}]`), 0o600))

	cmd := newBuildCommand(t, "-o", outDir)
	cmd.SetContext(context.Background())
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	a, err := setupApp(cmd)
	require.NoError(t, err)
	defer a.Close()

	w := &scriptedWatcher{changes: []ports.InputChange{
		{Path: slides, Type: ports.Modified},
		{Path: slides, Type: ports.Removed},
	}}
	require.NoError(t, a.watchAndBuild(cmd, slides, w))

	assert.Equal(t, []string{slides}, w.paths)
	assert.Contains(t, buf.String(), "Watching "+slides)
	assert.Equal(t, 2, strings.Count(buf.String(), "✓ Created"), "initial build plus one rebuild")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWatchAndBuild_MissingDescription(t *testing.T) {
	isolate(t)
	cmd := newBuildCommand(t)
	cmd.SetContext(context.Background())

	a, err := setupApp(cmd)
	require.NoError(t, err)
	defer a.Close()

	err = a.watchAndBuild(cmd, "missing.json", &scriptedWatcher{})
	assert.Error(t, err)
}
