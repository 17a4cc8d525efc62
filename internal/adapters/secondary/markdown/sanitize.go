package markdown

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

// Sanitizer strips markup from free text. Slide text is not HTML, so
// entities escaped by the policy are decoded again.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a sanitizer backed by bluemonday's strict policy
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize removes tags, script and style content from text
func (s *Sanitizer) Sanitize(text string) string {
	if !strings.ContainsAny(text, "<>&") {
		return text
	}
	return html.UnescapeString(s.policy.Sanitize(text))
}

var _ ports.TextSanitizer = (*Sanitizer)(nil)
