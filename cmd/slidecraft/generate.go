package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Build a deck from a topic and optional notes",
	Long: `Build a deck without a language model. Notes are split into an
overview and sections at short header lines; without notes a generic
outline of the requested length is produced.

Example:
  slidecraft quick --topic "Team Onboarding" --company Acme -n 8
  slidecraft quick --topic "Q3 Results" --context-file notes.md --handout`,
	Args: cobra.NoArgs,
	RunE: runQuick,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a deck from notes with a language model",
	Long: `Send a topic and notes to the configured language model and build the
slides it returns. The API key is read from the environment variable named
in [generator] api_key_env (ANTHROPIC_API_KEY by default) or from .env.

Example:
  slidecraft generate --topic "Grace" --notes-file sermon.txt --type sermon
  slidecraft generate --topic "Roadmap" --notes-file notes.md --dry-run`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	quickCmd.Flags().String("topic", "", "Presentation topic (required)")
	quickCmd.Flags().String("context-file", "", "Plain text or markdown notes to segment")
	quickCmd.Flags().String("company", "", "Company shown on the title slide")
	quickCmd.Flags().String("presenter", "", "Presenter shown on the title slide")
	quickCmd.Flags().IntP("slides", "n", 10, "Target number of slides")
	quickCmd.Flags().String("type", "", "Presentation type: general, sermon, business, education")
	_ = quickCmd.MarkFlagRequired("topic")
	addBuildFlags(quickCmd)

	generateCmd.Flags().String("topic", "", "Presentation topic (required)")
	generateCmd.Flags().String("notes-file", "", "Notes the model turns into slides")
	generateCmd.Flags().IntP("slides", "n", 0, "Approximate number of slides (default: model decides)")
	generateCmd.Flags().String("type", "", "Presentation type: general, sermon, business, education")
	generateCmd.Flags().String("model", "", "Model name (overrides config)")
	generateCmd.Flags().Bool("dry-run", false, "Print the generated slide JSON instead of building")
	_ = generateCmd.MarkFlagRequired("topic")
	addBuildFlags(generateCmd)

	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(generateCmd)
}

func runQuick(cmd *cobra.Command, args []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	req, err := generationRequest(cmd, "context-file")
	if err != nil {
		return err
	}

	slides, err := a.quick.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}
	a.logger.Info("Segmented %q into %d slides", req.Topic, len(slides))

	bc := entities.BuildConfig{Title: strings.TrimSpace(req.Topic), Slides: slides}
	applyConfig(cmd, a.config, &bc)
	_, err = a.build(cmd, bc)
	return err
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	req, err := generationRequest(cmd, "notes-file")
	if err != nil {
		return err
	}

	generator, err := a.generator()
	if err != nil {
		return err
	}

	slides, err := generator.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		return printSlidesJSON(cmd, slides)
	}

	bc := entities.BuildConfig{Title: strings.TrimSpace(req.Topic), Slides: slides}
	applyConfig(cmd, a.config, &bc)
	_, err = a.build(cmd, bc)
	return err
}

// generationRequest reads the shared generation flags. Notes files ending
// in .md or .markdown are parsed as markdown.
func generationRequest(cmd *cobra.Command, notesFlag string) (entities.GenerationRequest, error) {
	fs := cmd.Flags()
	topic, _ := fs.GetString("topic")
	numSlides, _ := fs.GetInt("slides")
	kind, _ := fs.GetString("type")

	req := entities.GenerationRequest{
		Topic:            topic,
		NumSlides:        numSlides,
		PresentationType: entities.PresentationType(kind).Normalize(),
	}
	if fs.Lookup("company") != nil {
		req.Company, _ = fs.GetString("company")
		req.Presenter, _ = fs.GetString("presenter")
	}

	notesPath, _ := fs.GetString(notesFlag)
	if notesPath == "" {
		return req, nil
	}

	// #nosec G304 - the path is a command flag
	data, err := os.ReadFile(notesPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return req, fmt.Errorf("notes file not found: %s", notesPath)
		}
		return req, fmt.Errorf("reading notes: %w", err)
	}
	req.Content = string(data)

	switch strings.ToLower(filepath.Ext(notesPath)) {
	case ".md", ".markdown":
		req.Markdown = true
	}
	return req, nil
}

// printSlidesJSON writes a description that `slidecraft build` accepts
func printSlidesJSON(cmd *cobra.Command, slides []entities.SlideContent) error {
	doc := struct {
		Slides []entities.SlideContent `json:"slides_content"`
	}{Slides: slides}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding slides: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
