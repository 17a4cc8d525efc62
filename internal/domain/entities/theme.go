package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Color is an opaque RGB color
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGB builds a color from its components
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseHexColor parses "#RRGGBB" or "RRGGBB"
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustHex parses a hex color and panics on malformed input; used for built-in tables
func MustHex(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as an upper-case "RRGGBB" string
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Blend composites c at the given opacity over the background color
func (c Color) Blend(background Color, opacity float64) Color {
	if opacity <= 0 {
		return background
	}
	if opacity >= 1 {
		return c
	}
	mix := func(fg, bg uint8) uint8 {
		return uint8(float64(fg)*opacity + float64(bg)*(1-opacity) + 0.5)
	}
	return Color{R: mix(c.R, background.R), G: mix(c.G, background.G), B: mix(c.B, background.B)}
}

// ColorRole names one of the eight semantic palette roles
type ColorRole string

const (
	RolePrimary      ColorRole = "primary"
	RolePrimaryLight ColorRole = "primary_light"
	RoleSecondary    ColorRole = "secondary"
	RoleAccent       ColorRole = "accent"
	RoleAccentLight  ColorRole = "accent_light"
	RoleLight        ColorRole = "light"
	RoleText         ColorRole = "text"
	RoleTextLight    ColorRole = "text_light"
)

// ColorRoles lists every palette role
var ColorRoles = []ColorRole{
	RolePrimary, RolePrimaryLight, RoleSecondary, RoleAccent,
	RoleAccentLight, RoleLight, RoleText, RoleTextLight,
}

// Palette maps the eight semantic roles to colors
type Palette struct {
	Primary      Color `json:"primary"`
	PrimaryLight Color `json:"primary_light"`
	Secondary    Color `json:"secondary"`
	Accent       Color `json:"accent"`
	AccentLight  Color `json:"accent_light"`
	Light        Color `json:"light"`
	Text         Color `json:"text"`
	TextLight    Color `json:"text_light"`
}

// Get returns the color assigned to a role
func (p Palette) Get(role ColorRole) (Color, bool) {
	switch role {
	case RolePrimary:
		return p.Primary, true
	case RolePrimaryLight:
		return p.PrimaryLight, true
	case RoleSecondary:
		return p.Secondary, true
	case RoleAccent:
		return p.Accent, true
	case RoleAccentLight:
		return p.AccentLight, true
	case RoleLight:
		return p.Light, true
	case RoleText:
		return p.Text, true
	case RoleTextLight:
		return p.TextLight, true
	}
	return Color{}, false
}

// Roles returns the palette as a role-keyed map
func (p Palette) Roles() map[ColorRole]Color {
	roles := make(map[ColorRole]Color, len(ColorRoles))
	for _, role := range ColorRoles {
		c, _ := p.Get(role)
		roles[role] = c
	}
	return roles
}

// Fonts is the heading/body font pair
type Fonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Theme is a named, fixed palette, font pair and style tag
type Theme struct {
	// ID is the catalog identifier, e.g. "church_warmth"
	ID string `json:"id"`

	// Name is the human-readable theme name
	Name string `json:"name"`

	Description string  `json:"description"`
	Palette     Palette `json:"palette"`
	Fonts       Fonts   `json:"fonts"`

	// Style is a free-form tag such as "professional" or "warm"
	Style string `json:"style"`
}

// Validate ensures the theme has an identifier and fonts
func (t Theme) Validate() error {
	if t.ID == "" {
		return errors.New("theme id is required")
	}
	if t.Fonts.Heading == "" || t.Fonts.Body == "" {
		return errors.New("theme fonts are required")
	}
	return nil
}

// Styling is the resolved palette and fonts used for every slide of one build
type Styling struct {
	// Name is the theme name, or the brand name for brand builds
	Name    string  `json:"name"`
	Palette Palette `json:"palette"`
	Fonts   Fonts   `json:"fonts"`

	// LogoPath is set only for brand builds
	LogoPath string `json:"logo_path,omitempty"`

	// Source records which precedence branch produced the styling
	Source StylingSource `json:"source"`
}

// StylingSource identifies where a build's styling came from
type StylingSource string

const (
	StylingFromBrand   StylingSource = "brand"
	StylingFromTheme   StylingSource = "theme"
	StylingFromDefault StylingSource = "default"
)
