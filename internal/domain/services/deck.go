package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

// DeckService assembles slide decks: styling and geometry are resolved
// once, the document is acquired, and every slide is rendered in order
// before a single save.
type DeckService struct {
	factory ports.DeckFactory
	brands  ports.BrandRepository
	output  entities.OutputConfig
	clock   ports.Clock
	logger  ports.Logger
}

// NewDeckService creates a deck service
func NewDeckService(factory ports.DeckFactory, brands ports.BrandRepository, output entities.OutputConfig, logger ports.Logger) *DeckService {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &DeckService{
		factory: factory,
		brands:  brands,
		output:  output,
		clock:   ports.NewRealClock(),
		logger:  logger,
	}
}

// WithClock replaces the clock used for file names and durations
func (s *DeckService) WithClock(clock ports.Clock) *DeckService {
	s.clock = clock
	return s
}

// Build produces one deck file from config. Any failure aborts the build
// before the document is saved.
func (s *DeckService) Build(ctx context.Context, config entities.BuildConfig, observer ports.BuildObserver) (*entities.BuildResult, error) {
	start := s.clock.Now()
	buildID := uuid.New().String()
	notify := func(e entities.BuildEvent) {
		if observer == nil {
			return
		}
		e.BuildID = buildID
		e.Timestamp = s.clock.Now()
		observer.OnBuildEvent(e)
	}

	result, err := s.build(ctx, buildID, start, config, notify)
	if err != nil {
		notify(entities.BuildEvent{Type: entities.BuildEventFailed, Error: err.Error()})
		return nil, err
	}

	notify(entities.BuildEvent{
		Type:  entities.BuildEventCompleted,
		Total: result.SlideCount,
		Path:  result.Path,
	})
	return result, nil
}

func (s *DeckService) build(ctx context.Context, buildID string, start time.Time, config entities.BuildConfig, notify func(entities.BuildEvent)) (*entities.BuildResult, error) {
	if err := config.Validate(); err != nil {
		return nil, entities.NewBuildError(entities.ErrorTypeValidation, "invalid build config", err)
	}

	// Stage 1: styling and geometry, once per build
	styling, err := s.ResolveBuildStyling(config)
	if err != nil {
		return nil, err
	}
	geometry := ResolveGeometry(config.Format)

	// Stage 2: document acquisition
	var doc ports.DeckDocument
	if config.TemplatePath != "" {
		doc, err = s.factory.OpenTemplate(config.TemplatePath, styling, geometry)
		if err != nil {
			return nil, &entities.BuildError{
				Type:    entities.ErrorTypeTemplate,
				Message: fmt.Sprintf("Template error: %v", err),
				Details: config.TemplatePath,
				Cause:   err,
			}
		}
	} else {
		doc, err = s.factory.NewDeck(styling, geometry)
		if err != nil {
			return nil, entities.NewBuildError(entities.ErrorTypeRenderer, "creating document", err)
		}
	}
	doc.SetTitle(deckTitle(config))

	total := len(config.Slides)
	s.logger.Info("Building %d slides with %s styling (%s)", total, styling.Name, styling.Source)
	notify(entities.BuildEvent{Type: entities.BuildEventStarted, Total: total})

	// Stage 3: slides in input order
	types := make([]entities.SlideType, 0, total)
	for i, slide := range config.Slides {
		if err := ctx.Err(); err != nil {
			return nil, entities.NewBuildError(entities.ErrorTypeRenderer, "build cancelled", err)
		}

		slideType := slide.ResolvedType()
		s.logger.Debug("  %d. %s: %s", i+1, slideType, TruncateRunes(slide.Title, 50))
		if err := doc.AddSlide(slide); err != nil {
			return nil, &entities.BuildError{
				Type:    entities.ErrorTypeRenderer,
				Message: fmt.Sprintf("rendering slide %d", i+1),
				Details: string(slideType),
				Cause:   err,
			}
		}
		types = append(types, slideType)
		notify(entities.BuildEvent{
			Type:      entities.BuildEventSlide,
			Index:     i + 1,
			Total:     total,
			SlideType: slideType,
		})
	}

	dir, err := s.resolveOutputDir(config.OutputDir)
	if err != nil {
		return nil, err
	}
	path := s.outputPath(dir, buildID)
	if err := doc.Save(path); err != nil {
		return nil, &entities.BuildError{
			Type:    entities.ErrorTypeFilesystem,
			Message: "saving presentation",
			Details: path,
			Cause:   err,
		}
	}

	s.logger.Info("Saved %s", path)
	return &entities.BuildResult{
		ID:         buildID,
		Path:       path,
		ThemeName:  styling.Name,
		SlideCount: doc.SlideCount(),
		SlideTypes: types,
		Styling:    styling,
		CreatedAt:  start,
		Duration:   s.clock.Since(start).String(),
		Slides:     entities.CloneSlides(config.Slides),
	}, nil
}

// deckTitle is the explicit title, else the first title slide's heading
func deckTitle(config entities.BuildConfig) string {
	if config.Title != "" {
		return config.Title
	}
	for _, slide := range config.Slides {
		if slide.ResolvedType() == entities.SlideTypeTitle && slide.Title != "" {
			return slide.Title
		}
	}
	return "Presentation"
}

// ResolveBuildStyling applies brand kit > brand kit file > theme > default
func (s *DeckService) ResolveBuildStyling(config entities.BuildConfig) (entities.Styling, error) {
	kit := config.BrandKit.Kit
	if kit == nil && config.BrandKit.Path != "" {
		if s.brands == nil {
			return entities.Styling{}, entities.NewBuildError(entities.ErrorTypeConfiguration, "no brand repository configured", nil)
		}
		loaded, err := s.brands.Load(config.BrandKit.Path)
		if err != nil {
			return entities.Styling{}, &entities.BuildError{
				Type:    entities.ErrorTypeConfiguration,
				Message: "Brand kit error",
				Details: config.BrandKit.Path,
				Cause:   err,
			}
		}
		kit = loaded
	}
	return ResolveStyling(kit, config.Theme), nil
}

// resolveOutputDir picks the explicit directory, else the first existing
// preferred directory, else the created fallback directory.
func (s *DeckService) resolveOutputDir(explicit string) (string, error) {
	dir := explicit
	if dir == "" {
		dir = s.output.Dir
	}
	if dir == "" {
		for _, preferred := range s.output.PreferredDirs {
			if info, err := os.Stat(preferred); err == nil && info.IsDir() {
				return preferred, nil
			}
		}
		dir = s.output.GetFallbackDir()
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", &entities.BuildError{
			Type:    entities.ErrorTypeFilesystem,
			Message: "creating output directory",
			Details: dir,
			Cause:   err,
		}
	}
	return dir, nil
}

// outputPath names the deck after the build time, adding the build id
// prefix when a deck with the same second already exists.
func (s *DeckService) outputPath(dir, buildID string) string {
	base := fmt.Sprintf("presentation_%s", s.clock.Now().Format("20060102_150405"))
	path := filepath.Join(dir, base+".pptx")
	if _, err := os.Stat(path); err == nil {
		path = filepath.Join(dir, fmt.Sprintf("%s_%s.pptx", base, buildID[:8]))
	}
	return path
}

var _ ports.DeckBuilder = (*DeckService)(nil)
