package ports

import (
	"context"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

// DeckBuilder builds one deck from a build configuration
type DeckBuilder interface {
	Build(ctx context.Context, config entities.BuildConfig, observer BuildObserver) (*entities.BuildResult, error)
}

// TemplateLibrary exposes the built-in template skeletons
type TemplateLibrary interface {
	List() []entities.TemplateSkeleton
	Get(id string) (entities.TemplateSkeleton, bool)
	FieldNames(skeleton entities.TemplateSkeleton) []string
	Substitute(skeleton entities.TemplateSkeleton, values map[string]string) []entities.SlideContent
}

// SlideGenerator turns a generation request into a slide sequence
type SlideGenerator interface {
	Generate(ctx context.Context, req entities.GenerationRequest) ([]entities.SlideContent, error)
}

// ExportService produces side outputs from a finished build
type ExportService interface {
	// Export renders result into the requested format under outputDir
	Export(ctx context.Context, result *entities.BuildResult, format string, outputDir string) (string, error)

	// GetSupportedFormats returns a list of supported export formats
	GetSupportedFormats() []string
}
