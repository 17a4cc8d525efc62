package entities

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// PresentationType steers content generation
type PresentationType string

const (
	PresentationGeneral   PresentationType = "general"
	PresentationSermon    PresentationType = "sermon"
	PresentationBusiness  PresentationType = "business"
	PresentationEducation PresentationType = "education"
)

// Normalize maps unknown types to general
func (t PresentationType) Normalize() PresentationType {
	switch PresentationType(strings.ToLower(string(t))) {
	case PresentationSermon:
		return PresentationSermon
	case PresentationBusiness:
		return PresentationBusiness
	case PresentationEducation:
		return PresentationEducation
	default:
		return PresentationGeneral
	}
}

// Limits applied to generation input
const (
	MaxTopicLength      = 200
	MaxFieldValueLength = 500
	MinQuickSlides      = 3
	MaxQuickSlides      = 30
)

// GenerationRequest collects the inputs of rule-based or model-based content generation
type GenerationRequest struct {
	Topic            string           `json:"topic"`
	Content          string           `json:"content,omitempty"`
	Company          string           `json:"company,omitempty"`
	Presenter        string           `json:"presenter,omitempty"`
	PresentationType PresentationType `json:"presentation_type,omitempty"`

	// NumSlides is a target; zero lets the generator decide
	NumSlides int `json:"num_slides,omitempty"`

	// Markdown marks Content as markdown rather than plain lines
	Markdown bool `json:"markdown,omitempty"`
}

// TruncateTopic trims the topic and cuts it to MaxTopicLength runes,
// reporting whether anything was cut
func (r GenerationRequest) TruncateTopic() (GenerationRequest, bool) {
	r.Topic = strings.TrimSpace(r.Topic)
	if utf8.RuneCountInString(r.Topic) <= MaxTopicLength {
		return r, false
	}
	r.Topic = strings.TrimSpace(string([]rune(r.Topic)[:MaxTopicLength]))
	return r, true
}

// Validate checks topic presence. Over-long topics are truncated by the
// generators rather than rejected.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return errors.New("topic is required")
	}
	if r.NumSlides < 0 {
		return errors.New("num_slides must be non-negative")
	}
	return nil
}

// ValidateQuick additionally enforces the quick-create slide range
func (r GenerationRequest) ValidateQuick() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.NumSlides < MinQuickSlides || r.NumSlides > MaxQuickSlides {
		return fmt.Errorf("num_slides must be between %d and %d", MinQuickSlides, MaxQuickSlides)
	}
	return nil
}
