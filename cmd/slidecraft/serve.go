package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	httpserver "github.com/fredcamaral/slidecraft/internal/adapters/primary/http"
	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/monitoring"
	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the deck building API",
	Long: `Start an HTTP API for building decks. Build progress is streamed to
websocket clients on /ws and finished decks are downloadable from
/api/decks/{id}/download. Build and traffic counters are served on
/api/metrics.

Example:
  slidecraft serve
  slidecraft serve --port 9000 --host 0.0.0.0`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "Port to serve on (overrides config)")
	serveCmd.Flags().String("host", "", "Host to bind to (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

// validateServeConfig checks what the API needs beyond config validation
func validateServeConfig(config *entities.Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", config.Server.Port)
	}
	if config.Server.Host == "" {
		return errors.New("server host cannot be empty")
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := validateServeConfig(a.config); err != nil {
		return err
	}

	server := httpserver.NewServer(a.serverServices(), &a.config.Server, &a.config.Logging)

	ctx := cmd.Context()
	if err := server.Start(ctx, a.config.Server.Port, a.config.Server.Host); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Serving on http://%s:%d (Ctrl+C to stop)\n", a.config.Server.Host, a.config.Server.Port)
	<-ctx.Done()

	a.logger.Info("Shutting down server...")
	if err := server.Stop(context.Background()); err != nil {
		a.logger.Error("Error during shutdown: %v", err)
		return err
	}
	return nil
}

// serverServices wires the API. The model-backed generator is left out
// when no API key is available.
func (a *app) serverServices() httpserver.Services {
	services := httpserver.Services{
		Builder:    a.builder,
		Templates:  a.templates,
		Quick:      a.quick,
		Exports:    a.exports,
		Sanitizer:  a.sanitizer,
		Metrics:    monitoring.NewMonitor(),
		UploadsDir: a.config.Template.UploadsDir,
	}

	generator, err := a.generator()
	if err != nil {
		a.logger.Warn("AI generation disabled: %v", err)
		return services
	}
	services.Generator = generator
	return services
}
