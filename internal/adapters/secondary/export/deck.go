package export

import (
	"strings"

	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

const bullet = "• "

// Deck is the slide sequence and styling of a finished build
type Deck struct {
	Title   string
	Slides  []entities.SlideContent
	Styling entities.Styling
}

// DeckFromResult builds an export deck from a build result
func DeckFromResult(result *entities.BuildResult) *Deck {
	deck := &Deck{
		Title:   result.ThemeName,
		Slides:  entities.CloneSlides(result.Slides),
		Styling: result.Styling,
	}
	for _, slide := range result.Slides {
		if slide.ResolvedType() == entities.SlideTypeTitle && slide.Title != "" {
			deck.Title = slide.Title
			break
		}
	}
	if deck.Title == "" {
		deck.Title = "Presentation"
	}
	return deck
}

// slideText is the printable heading and body of one slide
type slideText struct {
	Title string
	Lines []string
	Notes string
}

// textOf flattens a slide into a heading and body lines using the same
// defaults the deck renderer applies
func textOf(slide entities.SlideContent) slideText {
	text := slideText{Notes: strings.TrimSpace(slide.Notes)}

	switch slide.ResolvedType() {
	case entities.SlideTypeTitle:
		text.Title = orDefault(slide.Title, "Presentation Title")
		text.Lines = splitLines(slide.Subtitle)
	case entities.SlideTypeSection:
		text.Title = orDefault(slide.Title, "Section")
		if slide.SectionNumber != "" {
			text.Title = slide.SectionNumber + "  " + text.Title
		}
	case entities.SlideTypeTwoColumn:
		text.Title = orDefault(slide.Title, "Slide Title")
		text.Lines = append(text.Lines, column(slide.LeftHeader, slide.LeftItems)...)
		text.Lines = append(text.Lines, column(slide.RightHeader, slide.RightItems)...)
	case entities.SlideTypeQuote:
		quote := slide.Quote
		if quote == "" {
			quote = orDefault(slide.Title, "Quote text")
		}
		text.Title = "“" + quote + "”"
		if slide.Attribution != "" {
			text.Lines = []string{"— " + slide.Attribution}
		}
	case entities.SlideTypeStats:
		text.Title = orDefault(slide.Title, "Key Statistics")
		for _, line := range pptx.StatLines(slide.Stats, slide.Bullets) {
			value, label := pptx.ParseStat(line)
			text.Lines = append(text.Lines, strings.TrimSpace(value+"  "+label))
		}
	default:
		text.Title = orDefault(slide.Title, "Slide Title")
		for _, b := range slide.Bullets {
			text.Lines = append(text.Lines, bullet+b)
		}
	}
	return text
}

func column(header string, items []string) []string {
	var lines []string
	if header != "" {
		lines = append(lines, header)
	}
	for _, item := range items {
		lines = append(lines, bullet+item)
	}
	return lines
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
