package pptx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

// Factory creates pptx documents backed by GoPPT
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a new pptx document factory
func NewFactory(logger ports.Logger) *Factory {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &Factory{logger: logger}
}

// NewDeck starts an empty widescreen deck
func (f *Factory) NewDeck(styling entities.Styling, geometry entities.Geometry) (ports.DeckDocument, error) {
	pres := ppt.New()
	pres.GetLayout().SetCustomLayout(geometry.WidthEMU(), geometry.HeightEMU())
	return newDocument(pres, nil, styling, geometry, f.logger), nil
}

// OpenTemplate opens a base presentation and keeps its layouts. Existing
// slides of the template are not carried over.
func (f *Factory) OpenTemplate(path string, styling entities.Styling, geometry entities.Geometry) (ports.DeckDocument, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".pptx" && ext != ".ppt" {
		return nil, fmt.Errorf("unsupported template type %q", ext)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}

	pres, err := ppt.OpenTemplate(path)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}
	pres.GetLayout().SetCustomLayout(geometry.WidthEMU(), geometry.HeightEMU())

	names := make([]string, 0)
	for _, layout := range pres.GetSlideLayouts() {
		names = append(names, layout.Name)
	}
	f.logger.Debug("Template %s has %d layouts", filepath.Base(path), len(names))

	return newDocument(pres, NewLayoutResolver(names), styling, geometry, f.logger), nil
}

// Document is one deck under construction
type Document struct {
	pres     *ppt.Presentation
	layouts  *LayoutResolver
	styling  entities.Styling
	geometry entities.Geometry
	logo     *logoCache
	logger   ports.Logger
	rendered int
}

func newDocument(pres *ppt.Presentation, layouts *LayoutResolver, styling entities.Styling, geometry entities.Geometry, logger ports.Logger) *Document {
	return &Document{
		pres:     pres,
		layouts:  layouts,
		styling:  styling,
		geometry: geometry,
		logo:     &logoCache{path: styling.LogoPath},
		logger:   logger,
	}
}

// SetTitle writes the deck title to the document properties
func (d *Document) SetTitle(title string) {
	d.pres.GetDocumentProperties().Title = title
}

// AddSlide renders content onto a new slide
func (d *Document) AddSlide(content entities.SlideContent) error {
	slide := d.nextSlide(content.ResolvedType())
	if slide == nil {
		return errors.New("could not allocate slide")
	}

	r := &slideRenderer{
		slide:    slide,
		styling:  d.styling,
		geometry: d.geometry,
		logo:     d.logo,
		logger:   d.logger,
	}
	r.render(content)
	d.rendered++
	return nil
}

// nextSlide reuses the initial slide of a fresh deck, otherwise appends one
// backed by the best matching template layout.
func (d *Document) nextSlide(slideType entities.SlideType) *ppt.Slide {
	if d.layouts == nil {
		if d.rendered == 0 && d.pres.GetSlideCount() == 1 {
			return d.pres.GetActiveSlide()
		}
		return d.pres.CreateSlide()
	}

	name := d.layouts.LayoutName(d.layouts.Lookup(slideType))
	if name == "" {
		return d.pres.CreateSlide()
	}
	slide, err := d.pres.AddSlideWithLayout(name)
	if err != nil {
		d.logger.Debug("Layout %q unavailable, using a plain slide: %v", name, err)
		return d.pres.CreateSlide()
	}
	return slide
}

// SlideCount returns the number of rendered slides
func (d *Document) SlideCount() int {
	return d.rendered
}

// Save writes the deck to path
func (d *Document) Save(path string) error {
	if d.rendered == 0 {
		return errors.New("presentation has no slides")
	}
	if err := d.pres.Save(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

var (
	_ ports.DeckFactory  = (*Factory)(nil)
	_ ports.DeckDocument = (*Document)(nil)
)
