package ports

import (
	"context"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

// LanguageModel completes a single prompt
type LanguageModel interface {
	// Complete sends the system and user prompt and returns the raw text reply
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// MarkdownSlideParser turns markdown notes into slide content
type MarkdownSlideParser interface {
	ParseSlides(ctx context.Context, content []byte) ([]entities.SlideContent, error)
}

// TextSanitizer strips markup from free text before it reaches a slide
type TextSanitizer interface {
	Sanitize(text string) string
}
