package ports

import (
	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

// DeckDocument is an in-progress slide deck owned by a single build
type DeckDocument interface {
	// AddSlide renders one slide at the end of the deck
	AddSlide(slide entities.SlideContent) error

	// SlideCount returns the number of slides rendered so far
	SlideCount() int

	// SetTitle records the document title property
	SetTitle(title string)

	// Save persists the finished deck
	Save(path string) error
}

// DeckFactory acquires deck documents
type DeckFactory interface {
	// NewDeck starts from an empty built-in document
	NewDeck(styling entities.Styling, geometry entities.Geometry) (DeckDocument, error)

	// OpenTemplate starts from an external base document and reuses its layouts
	OpenTemplate(path string, styling entities.Styling, geometry entities.Geometry) (DeckDocument, error)
}

// BrandRepository reads and writes brand kit definition files
type BrandRepository interface {
	Load(path string) (*entities.BrandKit, error)
	Save(path string, kit *entities.BrandKit) error
}

// BuildObserver receives build progress events
type BuildObserver interface {
	OnBuildEvent(event entities.BuildEvent)
}

// BuildObserverFunc adapts a function to BuildObserver
type BuildObserverFunc func(event entities.BuildEvent)

// OnBuildEvent calls f(event)
func (f BuildObserverFunc) OnBuildEvent(event entities.BuildEvent) {
	f(event)
}
