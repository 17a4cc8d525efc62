package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/content"
	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/watcher"
	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

const (
	watchInterval = 500 * time.Millisecond
	watchSettle   = 300 * time.Millisecond
)

var buildCmd = &cobra.Command{
	Use:   "build <slides-file>",
	Short: "Build a deck from a slide description",
	Long: `Build a .pptx deck from a JSON or YAML slide description, or from
markdown notes where each heading starts a slide.

Example:
  slidecraft build slides.json
  slidecraft build slides.yaml --theme church_warmth --handout
  slidecraft build notes.md --brand brand.json -o ./decks --open
  slidecraft build notes.md --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	addBuildFlags(buildCmd)
	buildCmd.Flags().BoolP("watch", "w", false, "Rebuild whenever the description or brand kit changes")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return a.watchAndBuild(cmd, args[0], watcher.NewPoller(watchInterval, watchSettle, a.logger))
	}

	_, err = a.buildDescription(cmd, args[0])
	return err
}

// buildDescription loads one description and builds it
func (a *app) buildDescription(cmd *cobra.Command, path string) (*entities.BuildConfig, error) {
	bc, err := a.loadDescription(cmd, path)
	if err != nil {
		return nil, err
	}
	applyConfig(cmd, a.config, bc)
	if _, err := a.build(cmd, *bc); err != nil {
		return bc, err
	}
	return bc, nil
}

// watchAndBuild builds once, then rebuilds on every input change until the
// command context is cancelled. Failed rebuilds are reported and watching continues.
func (a *app) watchAndBuild(cmd *cobra.Command, path string, w ports.InputWatcher) error {
	bc, err := a.buildDescription(cmd, path)
	if bc == nil {
		return err
	}
	if err != nil {
		a.logger.Error("%v", err)
	}
	_ = cmd.Flags().Set("open", "false")

	inputs := []string{path}
	if kit := bc.BrandKit.Path; kit != "" && bc.BrandKit.Kit == nil {
		inputs = append(inputs, kit)
	}

	events, err := w.Watch(cmd.Context(), inputs...)
	if err != nil {
		return fmt.Errorf("watching inputs: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", strings.Join(inputs, ", "))

	for change := range events {
		if change.Type == ports.Removed {
			a.logger.Warn("%s was removed; waiting for it to return", change.Path)
			continue
		}
		a.logger.Info("%s %s, rebuilding", change.Path, change.Type)
		if _, err := a.buildDescription(cmd, path); err != nil {
			a.logger.Error("Rebuild failed: %v", err)
		}
	}
	return nil
}

// loadDescription reads a slide description by extension
func (a *app) loadDescription(cmd *cobra.Command, path string) (*entities.BuildConfig, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		// #nosec G304 - the path is the command argument
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		bc, err := a.parser.ParseDeck(cmd.Context(), data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if p := bc.BrandKit.Path; p != "" && !filepath.IsAbs(p) {
			bc.BrandKit.Path = filepath.Join(filepath.Dir(path), p)
		}
		return bc, nil
	default:
		return content.LoadBuildConfig(path)
	}
}
