package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

// ExportFormat represents different export formats
type ExportFormat string

const (
	FormatPreview ExportFormat = "preview"
	FormatHandout ExportFormat = "handout"
)

// ExportOptions contains configuration for export operations
type ExportOptions struct {
	Format       ExportFormat `json:"format"`
	OutputDir    string       `json:"output_dir"`
	BaseName     string       `json:"base_name"`
	Quality      string       `json:"quality,omitempty"` // low, medium, high
	IncludeNotes bool         `json:"include_notes"`
}

// ExportResult contains the results of an export operation
type ExportResult struct {
	Success     bool      `json:"success"`
	Format      string    `json:"format"`
	OutputPath  string    `json:"output_path"`
	FileSize    int64     `json:"file_size"`
	Duration    string    `json:"duration"`
	PageCount   int       `json:"page_count,omitempty"`
	Files       []string  `json:"files,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ExportErrorType categorizes different types of export errors
type ExportErrorType string

const (
	ErrorTypeValidation    ExportErrorType = "validation"
	ErrorTypeRenderer      ExportErrorType = "renderer"
	ErrorTypeFilesystem    ExportErrorType = "filesystem"
	ErrorTypeTimeout       ExportErrorType = "timeout"
	ErrorTypeConfiguration ExportErrorType = "configuration"
)

// ExportError provides detailed error information with categorization
type ExportError struct {
	Type    ExportErrorType `json:"type"`
	Message string          `json:"message"`
	Details string          `json:"details,omitempty"`
	Cause   error           `json:"-"`
}

func (e *ExportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s error: %s - %s", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// Renderer interface for different export formats
type Renderer interface {
	Render(ctx context.Context, deck *Deck, options *ExportOptions) (*ExportResult, error)
	Supports(format ExportFormat) bool
	GetMimeType() string
}

// Service dispatches exports to the renderer registered for each format
type Service struct {
	renderers map[ExportFormat]Renderer
	quality   string
	logger    ports.Logger
}

// NewService creates an export service with the preview and handout renderers
func NewService(quality string, logger ports.Logger) *Service {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	service := &Service{
		renderers: make(map[ExportFormat]Renderer),
		quality:   quality,
		logger:    logger,
	}

	service.RegisterRenderer(FormatPreview, NewPreviewRenderer())
	service.RegisterRenderer(FormatHandout, NewHandoutRenderer())

	return service
}

// RegisterRenderer registers a renderer for a specific format
func (s *Service) RegisterRenderer(format ExportFormat, renderer Renderer) {
	s.renderers[format] = renderer
}

// Export renders the slides of a finished build next to the deck, or
// under outputDir when given, and returns the main output path
func (s *Service) Export(ctx context.Context, result *entities.BuildResult, format string, outputDir string) (string, error) {
	if result == nil {
		return "", &ExportError{Type: ErrorTypeValidation, Message: "build result cannot be nil"}
	}
	if outputDir == "" {
		outputDir = filepath.Dir(result.Path)
	}

	exported, err := s.Render(ctx, DeckFromResult(result), &ExportOptions{
		Format:       ExportFormat(format),
		OutputDir:    outputDir,
		BaseName:     strings.TrimSuffix(filepath.Base(result.Path), filepath.Ext(result.Path)),
		Quality:      s.quality,
		IncludeNotes: true,
	})
	if err != nil {
		return "", err
	}
	return exported.OutputPath, nil
}

// Render validates options and runs the matching renderer
func (s *Service) Render(ctx context.Context, deck *Deck, options *ExportOptions) (*ExportResult, error) {
	start := time.Now()

	if err := s.validateOptions(deck, options); err != nil {
		return nil, err
	}

	renderer, exists := s.renderers[options.Format]
	if !exists {
		return nil, &ExportError{
			Type:    ErrorTypeConfiguration,
			Message: "unsupported export format",
			Details: string(options.Format),
		}
	}

	if err := os.MkdirAll(options.OutputDir, 0o750); err != nil {
		return nil, &ExportError{
			Type:    ErrorTypeFilesystem,
			Message: "failed to create output directory",
			Details: options.OutputDir,
			Cause:   err,
		}
	}

	result, err := renderer.Render(ctx, deck, options)
	if err != nil {
		return nil, categorizeError(err)
	}

	result.Duration = time.Since(start).String()
	result.GeneratedAt = time.Now()
	if size, err := GetFileSize(result.OutputPath); err == nil {
		result.FileSize = size
	}

	s.logger.Info("Exported %s to %s", options.Format, result.OutputPath)
	return result, nil
}

// GetSupportedFormats returns the registered formats in order
func (s *Service) GetSupportedFormats() []string {
	formats := make([]string, 0, len(s.renderers))
	for format := range s.renderers {
		formats = append(formats, string(format))
	}
	sort.Strings(formats)
	return formats
}

func (s *Service) validateOptions(deck *Deck, options *ExportOptions) error {
	if options == nil {
		return &ExportError{Type: ErrorTypeValidation, Message: "export options cannot be nil"}
	}

	if options.Format == "" {
		return &ExportError{Type: ErrorTypeValidation, Message: "export format is required"}
	}

	if options.OutputDir == "" {
		return &ExportError{Type: ErrorTypeValidation, Message: "output directory is required"}
	}

	if options.BaseName == "" {
		return &ExportError{Type: ErrorTypeValidation, Message: "base name is required"}
	}

	if options.Quality != "" {
		validQualities := map[string]bool{"low": true, "medium": true, "high": true}
		if !validQualities[options.Quality] {
			return &ExportError{
				Type:    ErrorTypeValidation,
				Message: "invalid quality setting",
				Details: options.Quality + " (must be low, medium, or high)",
			}
		}
	}

	if deck == nil || len(deck.Slides) == 0 {
		return &ExportError{Type: ErrorTypeValidation, Message: "deck has no slides"}
	}

	return nil
}

// categorizeError wraps renderer failures that are not already export errors
func categorizeError(err error) error {
	var exportErr *ExportError
	if errors.As(err, &exportErr) {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &ExportError{Type: ErrorTypeTimeout, Message: "export cancelled", Cause: err}
	}

	if os.IsPermission(err) || os.IsNotExist(err) {
		return &ExportError{Type: ErrorTypeFilesystem, Message: "file system error", Details: err.Error(), Cause: err}
	}

	return &ExportError{Type: ErrorTypeRenderer, Message: "rendering failed", Details: err.Error(), Cause: err}
}

// GetFileSize returns the size of a file in bytes
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

var _ ports.ExportService = (*Service)(nil)
