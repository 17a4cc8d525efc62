package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/brand"
	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/config"
	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/export"
	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/llm"
	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/markdown"
	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/opener"
	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
	"github.com/fredcamaral/slidecraft/internal/domain/services"
)

var (
	stringConfigFlags = []string{"output-dir", "format", "theme", "brand", "template", "model", "host"}
	boolConfigFlags   = []string{"preview", "handout", "verbose"}
)

// app holds the wired services shared by every command
type app struct {
	config    *entities.Config
	logger    *Logger
	logFile   *os.File
	sanitizer *markdown.Sanitizer
	parser    *markdown.GoldmarkParser
	builder   *services.DeckService
	templates *services.TemplateService
	quick     *services.QuickCreateService
	exports   *export.Service
	opener    *opener.Opener
}

// setupApp loads the layered configuration and wires the services
func setupApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	a := &app{
		config: cfg,
		logger: newLoggerWithLevel(cfg.Logging.Verbose, cfg.Logging.GetLevel()),
	}
	if cfg.Logging.File != "" {
		// #nosec G304 - log file path comes from validated configuration
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		a.logFile = f
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	a.sanitizer = markdown.NewSanitizer()
	a.parser = markdown.NewGoldmarkParser()
	a.builder = services.NewDeckService(pptx.NewFactory(a.logger), brand.NewRepository(), cfg.Output, a.logger)
	a.templates = services.NewTemplateService()
	a.quick = services.NewQuickCreateService(a.parser, a.sanitizer).WithLogger(a.logger)
	a.exports = export.NewService(cfg.Export.PreviewQuality, a.logger)
	a.opener = opener.New()
	return a, nil
}

// Close releases the log file, if any
func (a *app) Close() {
	if a.logFile != nil {
		log.SetOutput(os.Stderr)
		_ = a.logFile.Close()
	}
}

// loadConfig resolves defaults, global, local, env and changed flags
func loadConfig(cmd *cobra.Command) (*entities.Config, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	service := services.NewConfigService(config.NewTOMLLoader(), config.NewConfigMerger())
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		service.WithConfigFile(path)
	}

	cfg, err := service.LoadConfig(cmd.Context(), workingDir, changedFlags(cmd))
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// changedFlags collects only the flags the user set explicitly
func changedFlags(cmd *cobra.Command) map[string]interface{} {
	fs := cmd.Flags()
	flags := make(map[string]interface{})

	for _, name := range stringConfigFlags {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			if v, err := fs.GetString(name); err == nil {
				flags[name] = v
			}
		}
	}
	for _, name := range boolConfigFlags {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			if v, err := fs.GetBool(name); err == nil {
				flags[name] = v
			}
		}
	}
	if fs.Lookup("port") != nil && fs.Changed("port") {
		if v, err := fs.GetInt("port"); err == nil {
			flags["port"] = v
		}
	}
	return flags
}

// generator wires the language-model slide generator. A missing API key
// is reported as a configuration error.
func (a *app) generator() (*services.GenerationService, error) {
	if err := llm.LoadDotEnv("."); err != nil {
		a.logger.Warn("Ignoring .env: %v", err)
	}

	modelConfig, err := llm.ConfigFromGenerator(a.config.Generator)
	if err != nil {
		return nil, err
	}

	httpClient := ports.NewRealHTTPClient(ports.HTTPClientConfig{
		Timeout:    a.config.Generator.GetTimeout(),
		MaxRetries: a.config.Generator.MaxRetries,
		RetryDelay: time.Second,
		UserAgent:  "slidecraft/" + Version,
	})
	client := llm.NewAnthropicClient(modelConfig, httpClient, a.logger)
	return services.NewGenerationService(client, a.sanitizer, a.logger), nil
}

// addBuildFlags registers the styling, output and export flags
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("theme", "t", "", "Theme identifier (see 'slidecraft themes')")
	cmd.Flags().StringP("brand", "b", "", "Brand kit file (.json, .yaml or .toml)")
	cmd.Flags().String("template", "", "Base .pptx whose layouts back the slides")
	cmd.Flags().StringP("output-dir", "o", "", "Directory for the generated deck")
	cmd.Flags().String("format", "", "Aspect ratio (16:9)")
	cmd.Flags().Bool("preview", false, "Also render PNG slide previews and a contact sheet")
	cmd.Flags().Bool("handout", false, "Also write a PDF handout with speaker notes")
	cmd.Flags().Bool("open", false, "Open the deck when the build finishes")
}

// applyConfig fills build settings the description left empty from the
// configuration. Explicit flags win over the description.
func applyConfig(cmd *cobra.Command, cfg *entities.Config, bc *entities.BuildConfig) {
	fs := cmd.Flags()

	if bc.Theme == "" || fs.Changed("theme") {
		bc.Theme = cfg.Theme.Name
	}
	if cfg.Theme.BrandKit != "" && (bc.BrandKit.IsZero() || fs.Changed("brand")) {
		bc.BrandKit = entities.BrandKitRef{Path: cfg.Theme.BrandKit}
	}
	if cfg.Template.Path != "" && (bc.TemplatePath == "" || fs.Changed("template")) {
		bc.TemplatePath = cfg.Template.Path
	}
	if bc.Format == "" || fs.Changed("format") {
		bc.Format = cfg.Output.Format
	}
	if fs.Changed("output-dir") {
		bc.OutputDir = cfg.Output.Dir
	}
}

// exportFormats lists the side outputs enabled in configuration
func (a *app) exportFormats() []string {
	var formats []string
	if a.config.Export.Preview {
		formats = append(formats, string(export.FormatPreview))
	}
	if a.config.Export.Handout {
		formats = append(formats, string(export.FormatHandout))
	}
	return formats
}

// build runs one deck build, its exports and the optional opener
func (a *app) build(cmd *cobra.Command, bc entities.BuildConfig) (*entities.BuildResult, error) {
	observer := ports.BuildObserverFunc(func(e entities.BuildEvent) {
		switch e.Type {
		case entities.BuildEventStarted:
			a.logger.Info("Build %s started (%d slides)", e.BuildID, e.Total)
		case entities.BuildEventSlide:
			a.logger.Debug("Rendered slide %d/%d (%s)", e.Index, e.Total, e.SlideType)
		case entities.BuildEventFailed:
			a.logger.Error("Build %s failed: %s", e.BuildID, e.Error)
		}
	})

	result, err := a.builder.Build(cmd.Context(), bc, observer)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created %s (%d slides, %s)\n", result.Path, result.SlideCount, result.ThemeName)

	for _, format := range a.exportFormats() {
		path, err := a.exports.Export(cmd.Context(), result, format, "")
		if err != nil {
			a.logger.Warn("%s export failed: %v", format, err)
			continue
		}
		fmt.Fprintf(out, "  %s: %s\n", format, path)
	}

	open, _ := cmd.Flags().GetBool("open")
	if err := a.opener.Open(result.Path, !open); err != nil {
		a.logger.Warn("Failed to open %s: %v", result.Path, err)
	}

	a.logger.Success("Build %s finished in %s", result.ID, result.Duration)
	return result, nil
}
