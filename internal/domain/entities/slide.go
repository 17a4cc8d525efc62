package entities

import (
	"strings"
)

// SlideType identifies which renderer lays out a slide
type SlideType string

const (
	SlideTypeTitle     SlideType = "title"
	SlideTypeContent   SlideType = "content"
	SlideTypeSection   SlideType = "section"
	SlideTypeTwoColumn SlideType = "two_column"
	SlideTypeQuote     SlideType = "quote"
	SlideTypeStats     SlideType = "stats"
)

// SlideTypes lists every supported slide type in declaration order
var SlideTypes = []SlideType{
	SlideTypeTitle,
	SlideTypeContent,
	SlideTypeSection,
	SlideTypeTwoColumn,
	SlideTypeQuote,
	SlideTypeStats,
}

// IsKnown reports whether t names one of the supported slide types
func (t SlideType) IsKnown() bool {
	for _, known := range SlideTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Normalize maps unknown or empty types to the content type
func (t SlideType) Normalize() SlideType {
	normalized := SlideType(strings.ToLower(strings.TrimSpace(string(t))))
	if normalized.IsKnown() {
		return normalized
	}
	return SlideTypeContent
}

// SlideContent is the renderer-agnostic description of one slide
type SlideContent struct {
	// Type selects the renderer; unknown values render as content
	Type SlideType `json:"type" yaml:"type"`

	Title    string   `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Bullets  []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`

	// Two-column fields
	LeftHeader  string   `json:"left_header,omitempty" yaml:"left_header,omitempty"`
	LeftItems   []string `json:"left_items,omitempty" yaml:"left_items,omitempty"`
	RightHeader string   `json:"right_header,omitempty" yaml:"right_header,omitempty"`
	RightItems  []string `json:"right_items,omitempty" yaml:"right_items,omitempty"`

	// Quote fields
	Quote       string `json:"quote,omitempty" yaml:"quote,omitempty"`
	Attribution string `json:"attribution,omitempty" yaml:"attribution,omitempty"`

	// Stats holds "label: value" strings
	Stats []string `json:"stats,omitempty" yaml:"stats,omitempty"`

	SectionNumber string `json:"section_number,omitempty" yaml:"section_number,omitempty"`

	// Notes are attached verbatim as speaker notes
	Notes string `json:"notes" yaml:"notes,omitempty"`
}

// ResolvedType returns the slide type after applying the content fallback
func (s SlideContent) ResolvedType() SlideType {
	return s.Type.Normalize()
}

// HasNotes returns true if the slide carries speaker notes
func (s SlideContent) HasNotes() bool {
	return s.Notes != ""
}

// Clone returns a deep copy of the slide content
func (s SlideContent) Clone() SlideContent {
	c := s
	c.Bullets = cloneStrings(s.Bullets)
	c.LeftItems = cloneStrings(s.LeftItems)
	c.RightItems = cloneStrings(s.RightItems)
	c.Stats = cloneStrings(s.Stats)
	return c
}

// TextFields returns every text-bearing value of the slide in a stable order
func (s SlideContent) TextFields() []string {
	fields := []string{s.Title, s.Subtitle}
	fields = append(fields, s.Bullets...)
	fields = append(fields, s.LeftItems...)
	fields = append(fields, s.RightItems...)
	return fields
}

// MapText applies fn to every text attribute and returns the rewritten copy
func (s SlideContent) MapText(fn func(string) string) SlideContent {
	c := s.Clone()
	c.Title = fn(c.Title)
	c.Subtitle = fn(c.Subtitle)
	c.LeftHeader = fn(c.LeftHeader)
	c.RightHeader = fn(c.RightHeader)
	c.Quote = fn(c.Quote)
	c.Attribution = fn(c.Attribution)
	c.SectionNumber = fn(c.SectionNumber)
	c.Notes = fn(c.Notes)
	mapStrings(c.Bullets, fn)
	mapStrings(c.LeftItems, fn)
	mapStrings(c.RightItems, fn)
	mapStrings(c.Stats, fn)
	return c
}

// CloneSlides deep-copies a slide sequence
func CloneSlides(slides []SlideContent) []SlideContent {
	if slides == nil {
		return nil
	}
	out := make([]SlideContent, len(slides))
	for i, s := range slides {
		out[i] = s.Clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func mapStrings(values []string, fn func(string) string) {
	for i, v := range values {
		values[i] = fn(v)
	}
}
