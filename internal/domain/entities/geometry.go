package entities

// EMU conversion factors used by the pptx format
const (
	EMUPerInch = 914400
	EMUPerPt   = 12700
)

// Format tags accepted by the geometry resolver
const (
	Format16x9 = "16:9"
)

// Geometry holds canvas size, margins and region sizes in inches
type Geometry struct {
	Format       string  `json:"format"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	MarginTop    float64 `json:"margin_top"`
	MarginBottom float64 `json:"margin_bottom"`
	MarginLeft   float64 `json:"margin_left"`
	MarginRight  float64 `json:"margin_right"`
	HeaderHeight float64 `json:"header_height"`
	ContentPad   float64 `json:"content_padding"`
	LineSpacing  float64 `json:"line_spacing"`
}

// ContentWidth is the canvas width between the side margins
func (g Geometry) ContentWidth() float64 {
	return g.Width - g.MarginLeft - g.MarginRight
}

// WidthEMU returns the canvas width in EMU
func (g Geometry) WidthEMU() int64 {
	return Inches(g.Width)
}

// HeightEMU returns the canvas height in EMU
func (g Geometry) HeightEMU() int64 {
	return Inches(g.Height)
}

// Inches converts inches to EMU
func Inches(v float64) int64 {
	return int64(v * EMUPerInch)
}
