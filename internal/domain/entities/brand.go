package entities

import (
	"errors"
	"strings"
)

// DefaultBrandName is used when a brand kit carries no name
const DefaultBrandName = "Custom"

// DefaultPalette is the built-in palette used when neither a brand kit nor a theme is selected
var DefaultPalette = Palette{
	Primary:      MustHex("003B5C"),
	PrimaryLight: MustHex("005078"),
	Secondary:    MustHex("0066A1"),
	Accent:       MustHex("4A90E2"),
	AccentLight:  MustHex("87B8EE"),
	Light:        MustHex("E6F0FA"),
	Text:         MustHex("282828"),
	TextLight:    MustHex("646464"),
}

// DefaultFonts is the built-in font pair
var DefaultFonts = Fonts{Heading: "Arial Bold", Body: "Arial"}

// brandFallback fills the roles a brand kit never derives
var brandFallback = Palette{
	Primary:      DefaultPalette.Primary,
	PrimaryLight: DefaultPalette.PrimaryLight,
	Secondary:    DefaultPalette.Secondary,
	Accent:       DefaultPalette.Accent,
	AccentLight:  RGB(150, 180, 220),
	Light:        RGB(240, 245, 250),
	Text:         RGB(40, 40, 40),
	TextLight:    RGB(100, 100, 100),
}

// BrandKit carries an organization's logo, colors and fonts
type BrandKit struct {
	Name            string   `json:"name" yaml:"name" toml:"name"`
	LogoPath        string   `json:"logo_path,omitempty" yaml:"logo_path,omitempty" toml:"logo_path,omitempty"`
	PrimaryColors   []string `json:"primary_colors" yaml:"primary_colors" toml:"primary_colors"`
	SecondaryColors []string `json:"secondary_colors" yaml:"secondary_colors" toml:"secondary_colors"`
	HeadingFont     string   `json:"heading_font" yaml:"heading_font" toml:"heading_font"`
	BodyFont        string   `json:"body_font" yaml:"body_font" toml:"body_font"`
}

// NewBrandKit returns a kit with the default fonts filled in
func NewBrandKit(name string) *BrandKit {
	return &BrandKit{
		Name:        name,
		HeadingFont: DefaultFonts.Heading,
		BodyFont:    DefaultFonts.Body,
	}
}

// Validate checks that every supplied color parses
func (b *BrandKit) Validate() error {
	if b == nil {
		return errors.New("brand kit cannot be nil")
	}
	for _, c := range append(append([]string{}, b.PrimaryColors...), b.SecondaryColors...) {
		if _, err := ParseHexColor(c); err != nil {
			return err
		}
	}
	return nil
}

// DisplayName returns the brand name or the generic custom label
func (b *BrandKit) DisplayName() string {
	if b == nil || strings.TrimSpace(b.Name) == "" {
		return DefaultBrandName
	}
	return b.Name
}

// Palette derives a full palette by positional mapping over the color lists
func (b *BrandKit) Palette() Palette {
	p := brandFallback
	if b == nil {
		return p
	}
	pick(&p.Primary, b.PrimaryColors, 0)
	pick(&p.PrimaryLight, b.PrimaryColors, 1)
	pick(&p.Secondary, b.SecondaryColors, 0)
	pick(&p.Accent, b.SecondaryColors, 1)
	return p
}

// Fonts returns the brand fonts with defaults for blanks
func (b *BrandKit) Fonts() Fonts {
	f := DefaultFonts
	if b == nil {
		return f
	}
	if strings.TrimSpace(b.HeadingFont) != "" {
		f.Heading = b.HeadingFont
	}
	if strings.TrimSpace(b.BodyFont) != "" {
		f.Body = b.BodyFont
	}
	return f
}

// pick overwrites dst with colors[i] when present and well-formed
func pick(dst *Color, colors []string, i int) {
	if i >= len(colors) {
		return
	}
	if c, err := ParseHexColor(colors[i]); err == nil {
		*dst = c
	}
}
