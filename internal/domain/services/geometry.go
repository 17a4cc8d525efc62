package services

import "github.com/fredcamaral/slidecraft/internal/domain/entities"

var widescreen = entities.Geometry{
	Format:       entities.Format16x9,
	Width:        13.333,
	Height:       7.5,
	MarginTop:    0.8,
	MarginBottom: 0.5,
	MarginLeft:   0.8,
	MarginRight:  0.8,
	HeaderHeight: 1.0,
	ContentPad:   0.4,
	LineSpacing:  1.3,
}

// ResolveGeometry returns the canvas table for format. Only 16:9 is
// defined, so every tag resolves to it.
func ResolveGeometry(format string) entities.Geometry {
	return widescreen
}
