package pptx

import (
	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

var white = entities.RGB(255, 255, 255)

// pptColor converts a domain color into an opaque writer color
func pptColor(c entities.Color) ppt.Color {
	return ppt.NewColor(c.Hex())
}

func solidFill(c entities.Color) *ppt.Fill {
	return ppt.NewFill().SetSolid(pptColor(c))
}
