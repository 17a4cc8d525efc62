package builders

import (
	"strconv"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

// DeckBuilder helps build BuildConfig values for testing
type DeckBuilder struct {
	config entities.BuildConfig
}

// NewDeckBuilder creates a new deck builder with sensible defaults
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{
		config: entities.BuildConfig{
			Theme:  "software_professional",
			Format: entities.Format16x9,
			Title:  "Test Deck",
		},
	}
}

// WithTheme sets the catalog theme
func (b *DeckBuilder) WithTheme(theme string) *DeckBuilder {
	b.config.Theme = theme
	return b
}

// WithBrandKit sets an inline brand kit
func (b *DeckBuilder) WithBrandKit(kit *entities.BrandKit) *DeckBuilder {
	b.config.BrandKit = entities.BrandKitRef{Kit: kit}
	return b
}

// WithBrandKitPath references a brand kit file
func (b *DeckBuilder) WithBrandKitPath(path string) *DeckBuilder {
	b.config.BrandKit = entities.BrandKitRef{Path: path}
	return b
}

// WithTemplate sets the base .pptx
func (b *DeckBuilder) WithTemplate(path string) *DeckBuilder {
	b.config.TemplatePath = path
	return b
}

// WithOutputDir sets the output directory
func (b *DeckBuilder) WithOutputDir(dir string) *DeckBuilder {
	b.config.OutputDir = dir
	return b
}

// WithTitle sets the document title
func (b *DeckBuilder) WithTitle(title string) *DeckBuilder {
	b.config.Title = title
	return b
}

// WithSlide appends a slide
func (b *DeckBuilder) WithSlide(slide entities.SlideContent) *DeckBuilder {
	b.config.Slides = append(b.config.Slides, slide)
	return b
}

// WithSlideCount appends count content slides
func (b *DeckBuilder) WithSlideCount(count int) *DeckBuilder {
	for i := 1; i <= count; i++ {
		b.config.Slides = append(b.config.Slides, NewSlideBuilder().
			WithTitle("Slide "+strconv.Itoa(i)).
			WithBullets("First point", "Second point").
			Build())
	}
	return b
}

// Build creates the final BuildConfig
func (b *DeckBuilder) Build() entities.BuildConfig {
	config := b.config
	config.Slides = entities.CloneSlides(b.config.Slides)
	return config
}

// SlideBuilder helps build SlideContent values for testing
type SlideBuilder struct {
	slide entities.SlideContent
}

// NewSlideBuilder creates a content slide builder
func NewSlideBuilder() *SlideBuilder {
	return &SlideBuilder{
		slide: entities.SlideContent{
			Type:  entities.SlideTypeContent,
			Title: "Test Slide",
		},
	}
}

// WithType sets the slide type
func (b *SlideBuilder) WithType(t entities.SlideType) *SlideBuilder {
	b.slide.Type = t
	return b
}

// WithTitle sets the slide title
func (b *SlideBuilder) WithTitle(title string) *SlideBuilder {
	b.slide.Title = title
	return b
}

// WithSubtitle sets the subtitle
func (b *SlideBuilder) WithSubtitle(subtitle string) *SlideBuilder {
	b.slide.Subtitle = subtitle
	return b
}

// WithBullets sets the bullet list
func (b *SlideBuilder) WithBullets(bullets ...string) *SlideBuilder {
	b.slide.Bullets = bullets
	return b
}

// WithColumns sets both columns of a two-column slide
func (b *SlideBuilder) WithColumns(leftHeader string, left []string, rightHeader string, right []string) *SlideBuilder {
	b.slide.LeftHeader, b.slide.LeftItems = leftHeader, left
	b.slide.RightHeader, b.slide.RightItems = rightHeader, right
	return b
}

// WithQuote sets the quote and its attribution
func (b *SlideBuilder) WithQuote(quote, attribution string) *SlideBuilder {
	b.slide.Quote, b.slide.Attribution = quote, attribution
	return b
}

// WithStats sets "label: value" stats
func (b *SlideBuilder) WithStats(stats ...string) *SlideBuilder {
	b.slide.Stats = stats
	return b
}

// WithSectionNumber sets the section number
func (b *SlideBuilder) WithSectionNumber(n string) *SlideBuilder {
	b.slide.SectionNumber = n
	return b
}

// WithNotes sets the speaker notes
func (b *SlideBuilder) WithNotes(notes string) *SlideBuilder {
	b.slide.Notes = notes
	return b
}

// Build creates the final SlideContent
func (b *SlideBuilder) Build() entities.SlideContent {
	return b.slide.Clone()
}

// Common decks for testing

// MinimalDeck has a single title slide
func MinimalDeck() entities.BuildConfig {
	return NewDeckBuilder().
		WithTitle("Minimal").
		WithSlide(NewSlideBuilder().WithType(entities.SlideTypeTitle).WithTitle("Minimal").Build()).
		Build()
}

// MixedDeck has one slide of every type
func MixedDeck() entities.BuildConfig {
	return NewDeckBuilder().
		WithTitle("Mixed").
		WithSlide(NewSlideBuilder().WithType(entities.SlideTypeTitle).WithTitle("Mixed Deck").WithSubtitle("All slide types").WithNotes("Opening").Build()).
		WithSlide(NewSlideBuilder().WithType(entities.SlideTypeSection).WithTitle("Part One").WithSectionNumber("01").Build()).
		WithSlide(NewSlideBuilder().WithTitle("Agenda").WithBullets("Welcome", "Results", "Next steps").Build()).
		WithSlide(NewSlideBuilder().WithType(entities.SlideTypeTwoColumn).WithTitle("Before and After").
			WithColumns("Before", []string{"Manual"}, "After", []string{"Automated"}).Build()).
		WithSlide(NewSlideBuilder().WithType(entities.SlideTypeQuote).WithQuote("Ship it", "The Team").Build()).
		WithSlide(NewSlideBuilder().WithType(entities.SlideTypeStats).WithTitle("By the Numbers").
			WithStats("Revenue: $4.2M", "Growth: 43%", "Customers: 1,200").Build()).
		Build()
}

// LargeDeck has many content slides for ordering and performance tests
func LargeDeck() entities.BuildConfig {
	return NewDeckBuilder().
		WithTitle("Large Deck").
		WithSlideCount(50).
		Build()
}
