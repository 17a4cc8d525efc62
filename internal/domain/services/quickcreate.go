package services

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

const (
	maxBulletsPerSlide = 6
	overviewBullets    = 5
	maxHeaderLength    = 50
)

type quickSection struct {
	title   string
	bullets []string
}

var quickSections = []quickSection{
	{"Introduction", []string{"Overview of topic", "Background context", "Objectives for today"}},
	{"Main Points", []string{"First key concept", "Supporting details", "Real-world examples"}},
	{"Deep Dive", []string{"Technical details", "Data and analysis", "Case studies"}},
	{"Key Takeaways", []string{"Summary of main points", "Action items", "Resources and next steps"}},
}

var quickAgenda = []string{
	"Introduction and Overview",
	"Main Discussion Points",
	"Key Takeaways",
	"Questions & Next Steps",
}

var paddingBullets = []string{"Key insight", "Supporting evidence", "Practical application"}

// QuickCreateService segments a topic and optional notes into slides without a language model
type QuickCreateService struct {
	markdown  ports.MarkdownSlideParser
	sanitizer ports.TextSanitizer
	logger    ports.Logger
}

// NewQuickCreateService creates a rule-based slide generator. Both collaborators are optional.
func NewQuickCreateService(markdown ports.MarkdownSlideParser, sanitizer ports.TextSanitizer) *QuickCreateService {
	return &QuickCreateService{markdown: markdown, sanitizer: sanitizer, logger: ports.NopLogger{}}
}

// WithLogger replaces the logger that receives truncation warnings
func (s *QuickCreateService) WithLogger(logger ports.Logger) *QuickCreateService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Generate returns title, body and closing slides for req
func (s *QuickCreateService) Generate(ctx context.Context, req entities.GenerationRequest) ([]entities.SlideContent, error) {
	req = s.clean(req)
	if err := req.ValidateQuick(); err != nil {
		return nil, entities.NewBuildError(entities.ErrorTypeValidation, "invalid quick create request", err)
	}

	topic := strings.TrimSpace(req.Topic)
	slides := []entities.SlideContent{{
		Type:     entities.SlideTypeTitle,
		Title:    topic,
		Subtitle: joinNonEmpty("\n", req.Company, req.Presenter),
	}}

	switch {
	case strings.TrimSpace(req.Content) == "":
		slides = appendGenericOutline(slides, req.NumSlides)
	case req.Markdown && s.markdown != nil:
		parsed, err := s.markdown.ParseSlides(ctx, []byte(req.Content))
		if err != nil {
			return nil, entities.NewBuildError(entities.ErrorTypeValidation, "parsing markdown context", err)
		}
		slides = append(slides, parsed...)
		slides = padSlides(slides, topic, req.NumSlides)
	default:
		slides = appendSegmented(slides, contextLines(req.Content))
		slides = padSlides(slides, topic, req.NumSlides)
	}

	return append(slides, entities.SlideContent{
		Type:  entities.SlideTypeSection,
		Title: "Thank You",
	}), nil
}

func (s *QuickCreateService) clean(req entities.GenerationRequest) entities.GenerationRequest {
	req = truncateTopic(req, s.logger)
	if s.sanitizer == nil {
		return req
	}
	req.Topic = s.sanitizer.Sanitize(req.Topic)
	req.Content = s.sanitizer.Sanitize(req.Content)
	req.Company = s.sanitizer.Sanitize(req.Company)
	req.Presenter = s.sanitizer.Sanitize(req.Presenter)
	return req
}

// appendSegmented adds an overview slide and groups the remaining lines
// under header lines, flushing every six bullets.
func appendSegmented(slides []entities.SlideContent, lines []string) []entities.SlideContent {
	if len(lines) >= 3 {
		slides = append(slides, entities.SlideContent{
			Type:    entities.SlideTypeContent,
			Title:   "Overview",
			Bullets: cloneLines(lines[:min(overviewBullets, len(lines))]),
		})
	}

	remaining := lines
	if len(lines) > overviewBullets {
		remaining = lines[overviewBullets:]
	}

	var title string
	var bullets []string
	flush := func() {
		if title != "" && len(bullets) > 0 {
			slides = append(slides, entities.SlideContent{
				Type:    entities.SlideTypeContent,
				Title:   title,
				Bullets: cloneLines(bullets[:min(maxBulletsPerSlide, len(bullets))]),
			})
		}
	}

	for _, line := range remaining {
		if isHeaderLine(line) {
			flush()
			title = strings.TrimSpace(strings.TrimRight(line, ":"))
			bullets = nil
			continue
		}
		if title == "" {
			title = "Key Points"
		}
		bullets = append(bullets, line)
		if len(bullets) >= maxBulletsPerSlide {
			flush()
			title, bullets = "", nil
		}
	}
	flush()

	return slides
}

// appendGenericOutline adds an agenda and up to four numbered sections
func appendGenericOutline(slides []entities.SlideContent, numSlides int) []entities.SlideContent {
	slides = append(slides, entities.SlideContent{
		Type:    entities.SlideTypeContent,
		Title:   "Agenda",
		Bullets: cloneLines(quickAgenda),
	})

	perSection := (numSlides - 2) / len(quickSections)
	sections := 0
	for _, section := range quickSections {
		if len(slides) >= numSlides-1 {
			break
		}
		sections++
		slides = append(slides, entities.SlideContent{
			Type:          entities.SlideTypeSection,
			Title:         section.title,
			SectionNumber: strconv.Itoa(sections),
		})

		details := min(perSection, numSlides-len(slides)-1)
		for i := 0; i < details; i++ {
			slides = append(slides, entities.SlideContent{
				Type:    entities.SlideTypeContent,
				Title:   section.title + " - Details",
				Bullets: cloneLines(section.bullets),
			})
		}
	}
	return slides
}

func padSlides(slides []entities.SlideContent, topic string, numSlides int) []entities.SlideContent {
	for len(slides) < numSlides-1 {
		slides = append(slides, entities.SlideContent{
			Type:    entities.SlideTypeContent,
			Title:   topic + " - Additional Points",
			Bullets: cloneLines(paddingBullets),
		})
	}
	return slides
}

// isHeaderLine matches short lines ending in a colon or starting with 1. to 9. or 1) to 9)
func isHeaderLine(line string) bool {
	if utf8.RuneCountInString(line) >= maxHeaderLength {
		return false
	}
	if strings.HasSuffix(line, ":") {
		return true
	}
	if len(line) >= 2 && line[0] >= '1' && line[0] <= '9' {
		return line[1] == '.' || line[1] == ')'
	}
	return false
}

func contextLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func cloneLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

var _ ports.SlideGenerator = (*QuickCreateService)(nil)
