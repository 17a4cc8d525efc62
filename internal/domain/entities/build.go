package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// BrandKitRef is either an inline brand kit or a path to a brand definition file
type BrandKitRef struct {
	Kit  *BrandKit
	Path string
}

// IsZero reports whether neither a kit nor a path was supplied
func (r BrandKitRef) IsZero() bool {
	return r.Kit == nil && r.Path == ""
}

// UnmarshalJSON accepts a JSON string (path) or object (inline kit)
func (r *BrandKitRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.Path)
	}
	var kit BrandKit
	if err := json.Unmarshal(data, &kit); err != nil {
		return fmt.Errorf("brand_kit: %w", err)
	}
	r.Kit = &kit
	return nil
}

// MarshalJSON writes the path when set, otherwise the inline kit
func (r BrandKitRef) MarshalJSON() ([]byte, error) {
	if r.Path != "" {
		return json.Marshal(r.Path)
	}
	return json.Marshal(r.Kit)
}

// UnmarshalYAML accepts a scalar path or a mapping
func (r *BrandKitRef) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var path string
	if err := unmarshal(&path); err == nil {
		r.Path = path
		return nil
	}
	var kit BrandKit
	if err := unmarshal(&kit); err != nil {
		return fmt.Errorf("brand_kit: %w", err)
	}
	r.Kit = &kit
	return nil
}

// BuildConfig is the input of one deck build
type BuildConfig struct {
	// Theme is a catalog identifier; ignored when a brand kit is present
	Theme string `json:"theme,omitempty" yaml:"theme,omitempty"`

	// BrandKit takes precedence over Theme
	BrandKit BrandKitRef `json:"brand_kit,omitempty" yaml:"brand_kit,omitempty"`

	// Format is the aspect-ratio tag; only 16:9 is defined
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// TemplatePath points at a base .pptx whose layouts back the slides
	TemplatePath string `json:"template_path,omitempty" yaml:"template_path,omitempty"`

	// OutputDir overrides the output directory preference order
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// Title is written to the document properties
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	Slides []SlideContent `json:"slides_content" yaml:"slides_content"`
}

// Validate checks the parts of a build config that can be checked without IO
func (c *BuildConfig) Validate() error {
	if c == nil {
		return errors.New("build config cannot be nil")
	}
	if len(c.Slides) == 0 {
		return errors.New("slides_content must contain at least one slide")
	}
	if c.BrandKit.Kit != nil {
		if err := c.BrandKit.Kit.Validate(); err != nil {
			return fmt.Errorf("brand kit: %w", err)
		}
	}
	return nil
}

// BuildResult describes a finished deck
type BuildResult struct {
	ID         string      `json:"id"`
	Path       string      `json:"path"`
	ThemeName  string      `json:"theme_name"`
	SlideCount int         `json:"slide_count"`
	SlideTypes []SlideType `json:"slide_types"`
	Styling    Styling     `json:"styling"`
	CreatedAt  time.Time   `json:"created_at"`
	Duration   string      `json:"duration"`

	// Slides is the rendered sequence, kept for side exports
	Slides []SlideContent `json:"-"`
}

// BuildEventType names a progress event emitted during a build
type BuildEventType string

const (
	BuildEventStarted   BuildEventType = "build_started"
	BuildEventSlide     BuildEventType = "slide_rendered"
	BuildEventCompleted BuildEventType = "build_completed"
	BuildEventFailed    BuildEventType = "build_failed"
)

// BuildEvent reports build progress
type BuildEvent struct {
	Type      BuildEventType `json:"type"`
	BuildID   string         `json:"build_id"`
	Index     int            `json:"index,omitempty"`
	Total     int            `json:"total,omitempty"`
	SlideType SlideType      `json:"slide_type,omitempty"`
	Path      string         `json:"path,omitempty"`
	Error     string         `json:"error,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
