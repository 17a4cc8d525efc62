package services

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

// DefaultThemeID is returned for unknown or empty theme identifiers
const DefaultThemeID = "software_professional"

type themeSpec struct {
	id          string
	description string
	colors      [8]string // primary, primary_light, secondary, accent, accent_light, light, text, text_light
	heading     string
	body        string
	style       string
}

var themeSpecs = []themeSpec{
	{"software_professional", "Tech/enterprise",
		[8]string{"1C3A56", "2E5470", "2E86AB", "16A8A0", "5BC0B8", "F4F6F7", "2C2C2C", "6C6C6C"},
		"Arial Bold", "Arial", "professional"},
	{"startup_vibrant", "Bold and energetic",
		[8]string{"FF6B35", "FF8F66", "004E89", "F7B801", "FFD60A", "F8F9FA", "212529", "6C757D"},
		"Arial Bold", "Arial", "bold"},
	{"executive_minimal", "Clean C-suite",
		[8]string{"2C3E50", "34495E", "7F8C8D", "3498DB", "5DADE2", "ECF0F1", "2C3E50", "95A5A6"},
		"Calibri Bold", "Calibri", "minimal"},
	{"creative_bold", "Vibrant design/marketing",
		[8]string{"5D3A9B", "7550B5", "8E44AD", "E056FD", "EB8FFC", "F5F0FA", "2C2C2C", "7C7C7C"},
		"Arial Black", "Arial", "creative"},
	{"tech_modern", "Modern SaaS",
		[8]string{"0A192F", "1A2938", "64FFDA", "00D9FF", "66E6FF", "F8FAFC", "0F172A", "64748B"},
		"Arial Bold", "Arial", "modern"},
	{"healthcare_trust", "Medical/healthcare",
		[8]string{"0E4C92", "1A6BBF", "1EAEDB", "3FBFB0", "6DD4C7", "F0F7FA", "333333", "777777"},
		"Calibri Bold", "Calibri", "professional"},
	{"education_friendly", "Warm education",
		[8]string{"2A7C6F", "3D9B8C", "F4A261", "E76F51", "EF8A6F", "F7F3E9", "264653", "6B7780"},
		"Arial Bold", "Arial", "friendly"},
	{"finance_corporate", "Conservative finance",
		[8]string{"003049", "1A4A66", "669BBC", "C1121F", "D64350", "F7F9FA", "212529", "6C757D"},
		"Times New Roman Bold", "Times New Roman", "conservative"},
	{"marketing_dynamic", "Eye-catching marketing",
		[8]string{"D62828", "E04848", "F77F00", "FCBF49", "FFD670", "FFF8E7", "2C2416", "7C6F5B"},
		"Arial Bold", "Arial", "dynamic"},
	{"nonprofit_warm", "Compassionate nonprofit",
		[8]string{"4A5859", "627375", "7D9D9C", "C9A96E", "E0C589", "F5F2ED", "3A3A3A", "7A7A7A"},
		"Georgia Bold", "Georgia", "warm"},
	{"church_warmth", "Ministry and worship",
		[8]string{"78512D", "966D4B", "B3895A", "C1996B", "E6CAAA", "FAF8F5", "322816", "78643C"},
		"Georgia Bold", "Georgia", "warm"},
}

// catalog is built once at init and never mutated
var catalog = buildCatalog()

type themeCatalog struct {
	order []string
	byID  map[string]entities.Theme
}

func buildCatalog() themeCatalog {
	c := themeCatalog{byID: make(map[string]entities.Theme, len(themeSpecs))}
	for _, spec := range themeSpecs {
		c.order = append(c.order, spec.id)
		c.byID[spec.id] = entities.Theme{
			ID:          spec.id,
			Name:        DisplayName(spec.id),
			Description: spec.description,
			Palette: entities.Palette{
				Primary:      entities.MustHex(spec.colors[0]),
				PrimaryLight: entities.MustHex(spec.colors[1]),
				Secondary:    entities.MustHex(spec.colors[2]),
				Accent:       entities.MustHex(spec.colors[3]),
				AccentLight:  entities.MustHex(spec.colors[4]),
				Light:        entities.MustHex(spec.colors[5]),
				Text:         entities.MustHex(spec.colors[6]),
				TextLight:    entities.MustHex(spec.colors[7]),
			},
			Fonts: entities.Fonts{Heading: spec.heading, Body: spec.body},
			Style: spec.style,
		}
	}
	return c
}

// DisplayName turns a snake_case identifier into a title-cased label
func DisplayName(id string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(id, "_", " "))
}

// ResolveTheme returns the catalog entry for id, or the default theme
func ResolveTheme(id string) entities.Theme {
	if theme, ok := catalog.byID[strings.TrimSpace(id)]; ok {
		return theme
	}
	return catalog.byID[DefaultThemeID]
}

// HasTheme reports whether id names a catalog entry
func HasTheme(id string) bool {
	_, ok := catalog.byID[id]
	return ok
}

// ListThemeIDs returns the catalog identifiers in catalog order
func ListThemeIDs() []string {
	ids := make([]string, len(catalog.order))
	copy(ids, catalog.order)
	return ids
}

// Themes returns every catalog entry in catalog order
func Themes() []entities.Theme {
	themes := make([]entities.Theme, 0, len(catalog.order))
	for _, id := range catalog.order {
		themes = append(themes, catalog.byID[id])
	}
	return themes
}

// DefaultStyling is used when neither a brand kit nor a theme is selected
func DefaultStyling() entities.Styling {
	return entities.Styling{
		Name:    entities.DefaultBrandName,
		Palette: entities.DefaultPalette,
		Fonts:   entities.DefaultFonts,
		Source:  entities.StylingFromDefault,
	}
}

// ResolveStyling applies the brand > theme > default precedence
func ResolveStyling(kit *entities.BrandKit, themeID string) entities.Styling {
	if kit != nil {
		return entities.Styling{
			Name:     kit.DisplayName(),
			Palette:  kit.Palette(),
			Fonts:    kit.Fonts(),
			LogoPath: kit.LogoPath,
			Source:   entities.StylingFromBrand,
		}
	}
	if strings.TrimSpace(themeID) != "" {
		theme := ResolveTheme(themeID)
		return entities.Styling{
			Name:    theme.Name,
			Palette: theme.Palette,
			Fonts:   theme.Fonts,
			Source:  entities.StylingFromTheme,
		}
	}
	return DefaultStyling()
}
