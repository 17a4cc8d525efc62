package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/services"
)

// Contact sheet layout
const (
	sheetColumns    = 3
	sheetThumbWidth = 480
	sheetPadding    = 24
)

type fontStyle int

const (
	regular fontStyle = iota
	bold
	italic
)

var (
	fontsOnce sync.Once
	fonts     map[fontStyle]*truetype.Font
	fontsErr  error
)

// loadFonts parses the embedded Go fonts once per process
func loadFonts() (map[fontStyle]*truetype.Font, error) {
	fontsOnce.Do(func() {
		sources := map[fontStyle][]byte{
			regular: goregular.TTF,
			bold:    gobold.TTF,
			italic:  goitalic.TTF,
		}
		fonts = make(map[fontStyle]*truetype.Font, len(sources))
		for style, ttf := range sources {
			f, err := truetype.Parse(ttf)
			if err != nil {
				fontsErr = fmt.Errorf("parsing embedded font: %w", err)
				return
			}
			fonts[style] = f
		}
	})
	return fonts, fontsErr
}

// PreviewRenderer draws one PNG per slide plus a contact sheet
type PreviewRenderer struct{}

// NewPreviewRenderer creates a new preview renderer
func NewPreviewRenderer() *PreviewRenderer {
	return &PreviewRenderer{}
}

// Render writes <base>_slide_NN.png for every slide and <base>_sheet.png
func (r *PreviewRenderer) Render(ctx context.Context, deck *Deck, options *ExportOptions) (*ExportResult, error) {
	faces, err := loadFonts()
	if err != nil {
		return nil, err
	}

	width, height := GetImageDimensions(options.Quality)
	geometry := services.ResolveGeometry(entities.Format16x9)

	var files []string
	var thumbs []image.Image
	for i, slide := range deck.Slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := newPainter(width, height, geometry, deck.Styling, faces)
		p.draw(slide)
		p.drawLogo()

		path := filepath.Join(options.OutputDir, fmt.Sprintf("%s_slide_%02d.png", options.BaseName, i+1))
		if err := p.dc.SavePNG(path); err != nil {
			return nil, fmt.Errorf("saving slide %d preview: %w", i+1, err)
		}
		files = append(files, path)
		thumbs = append(thumbs, imaging.Resize(p.dc.Image(), sheetThumbWidth, 0, imaging.Lanczos))
	}

	sheetPath := filepath.Join(options.OutputDir, options.BaseName+"_sheet.png")
	if err := imaging.Save(contactSheet(thumbs, deck.Styling.Palette.Light), sheetPath); err != nil {
		return nil, fmt.Errorf("saving contact sheet: %w", err)
	}
	files = append(files, sheetPath)

	return &ExportResult{
		Success:    true,
		Format:     string(FormatPreview),
		OutputPath: sheetPath,
		PageCount:  len(deck.Slides),
		Files:      files,
	}, nil
}

// Supports returns true if this renderer supports the given format
func (r *PreviewRenderer) Supports(format ExportFormat) bool {
	return format == FormatPreview
}

// GetMimeType returns the MIME type for preview exports
func (r *PreviewRenderer) GetMimeType() string {
	return "image/png"
}

// contactSheet tiles thumbnails in a fixed number of columns
func contactSheet(thumbs []image.Image, background entities.Color) image.Image {
	if len(thumbs) == 0 {
		return imaging.New(sheetPadding*2, sheetPadding*2, nrgba(background))
	}

	cols := min(sheetColumns, len(thumbs))
	rows := (len(thumbs) + cols - 1) / cols
	thumbH := thumbs[0].Bounds().Dy()

	sheet := imaging.New(
		cols*sheetThumbWidth+(cols+1)*sheetPadding,
		rows*thumbH+(rows+1)*sheetPadding,
		nrgba(background),
	)
	for i, thumb := range thumbs {
		x := sheetPadding + (i%cols)*(sheetThumbWidth+sheetPadding)
		y := sheetPadding + (i/cols)*(thumbH+sheetPadding)
		sheet = imaging.Paste(sheet, thumb, image.Pt(x, y))
	}
	return sheet
}

// GetImageDimensions returns the dimensions based on quality setting
func GetImageDimensions(quality string) (width, height int) {
	switch quality {
	case "low":
		return 1280, 720
	case "high":
		return 2560, 1440
	default: // medium
		return 1920, 1080
	}
}

func nrgba(c entities.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// painter draws an approximation of the deck layouts in inch coordinates
type painter struct {
	dc       *gg.Context
	scale    float64 // pixels per inch
	geometry entities.Geometry
	styling  entities.Styling
	fonts    map[fontStyle]*truetype.Font
	faces    map[faceKey]font.Face
}

type faceKey struct {
	style fontStyle
	size  float64
}

func newPainter(width, height int, geometry entities.Geometry, styling entities.Styling, fonts map[fontStyle]*truetype.Font) *painter {
	return &painter{
		dc:       gg.NewContext(width, height),
		scale:    float64(width) / geometry.Width,
		geometry: geometry,
		styling:  styling,
		fonts:    fonts,
		faces:    make(map[faceKey]font.Face),
	}
}

func (p *painter) draw(slide entities.SlideContent) {
	p.fill(0, 0, p.geometry.Width, p.geometry.Height, entities.RGB(255, 255, 255))

	switch slide.ResolvedType() {
	case entities.SlideTypeTitle:
		p.drawTitle(slide)
	case entities.SlideTypeSection:
		p.drawSection(slide)
	case entities.SlideTypeTwoColumn:
		p.drawTwoColumn(slide)
	case entities.SlideTypeQuote:
		p.drawQuote(slide)
	case entities.SlideTypeStats:
		p.drawStats(slide)
	default:
		p.drawContent(slide)
	}
}

func (p *painter) drawTitle(s entities.SlideContent) {
	pal, g := p.styling.Palette, p.geometry
	white := entities.RGB(255, 255, 255)

	p.fill(0, 0, g.Width, g.Height, pal.Primary)
	p.fill(0, 0, g.Width, 3.0, pal.PrimaryLight.Blend(pal.Primary, 0.7))
	p.textCentered(orDefault(s.Title, "Presentation Title"), g.Width/2, 3.0, 10.3, 66, bold, white)
	if s.Subtitle != "" {
		p.textCentered(s.Subtitle, g.Width/2, 4.9, 10.3, 32, regular, pal.AccentLight)
	}
}

func (p *painter) drawSection(s entities.SlideContent) {
	pal, g := p.styling.Palette, p.geometry
	const split = 8.0

	p.fill(0, 0, split, g.Height, pal.Secondary)
	p.fill(split, 0, g.Width-split, g.Height, pal.Primary)
	if s.SectionNumber != "" {
		p.text(s.SectionNumber, 1.5, 1.5, 4, 120, bold, pal.AccentLight)
	}
	p.text(orDefault(s.Title, "Section"), 1.5, 3.5, 6, 52, bold, entities.RGB(255, 255, 255))
}

func (p *painter) drawContent(s entities.SlideContent) {
	pal, g := p.styling.Palette, p.geometry

	p.header(s.Title)
	p.fill(g.MarginLeft, g.HeaderHeight+0.5, g.Width-1.6, 5.4, pal.Light)

	size := 32.0
	switch n := len(s.Bullets); {
	case n > 5:
		size = 24
	case n > 3:
		size = 28
	}
	y := g.HeaderHeight + 0.9
	for _, b := range s.Bullets {
		y = p.text(bullet+b, g.MarginLeft+0.6, y, g.Width-2.8, size, regular, pal.Text) + size/72*0.4
	}
}

func (p *painter) drawTwoColumn(s entities.SlideContent) {
	pal, g := p.styling.Palette, p.geometry

	p.header(s.Title)
	top := g.HeaderHeight + 0.4
	p.fill(g.MarginLeft, top, 5.5, 5.6, pal.Light)
	p.fill(g.MarginLeft+5.9, top, 5.5, 5.6, pal.Light)
	p.column(g.MarginLeft+0.4, s.LeftHeader, s.LeftItems)
	p.column(g.MarginLeft+6.3, s.RightHeader, s.RightItems)
}

func (p *painter) column(x float64, header string, items []string) {
	pal, g := p.styling.Palette, p.geometry
	if header != "" {
		p.text(header, x, g.HeaderHeight+0.6, 4.7, 28, bold, pal.Primary)
	}
	y := g.HeaderHeight + 1.2
	for _, item := range items {
		y = p.text(bullet+item, x, y, 4.7, 24, regular, pal.Text) + 0.15
	}
}

func (p *painter) drawQuote(s entities.SlideContent) {
	pal, g := p.styling.Palette, p.geometry

	p.fill(0, 0, g.Width, g.Height, pal.Primary)
	p.fill(0.5, 0.5, 2, 2, pal.Accent.Blend(pal.Primary, 0.3))
	p.text("“", 1.5, 1.2, 1.5, 180, bold, pal.AccentLight)

	quote := s.Quote
	if quote == "" {
		quote = orDefault(s.Title, "Quote text")
	}
	p.text(quote, 2.0, 2.5, 9.3, 48, regular, entities.RGB(255, 255, 255))
	if s.Attribution != "" {
		p.text("— "+s.Attribution, 2.0, 5.8, 9.3, 28, italic, pal.AccentLight)
	}
}

func (p *painter) drawStats(s entities.SlideContent) {
	pal, g := p.styling.Palette, p.geometry

	p.fill(0, 0, g.Width, 1.5, pal.Primary)
	p.textCentered(orDefault(s.Title, "Key Statistics"), g.Width/2, 0.4, 11.3, 52, bold, entities.RGB(255, 255, 255))

	lines := statSources(s)
	if len(lines) == 0 {
		return
	}
	w := 11.3 / float64(len(lines))
	for i, line := range lines {
		x := 1.0 + w*float64(i)
		p.card(x+0.2, 2.5, w-0.4, 3.5, pal.Light, pal.Accent)
		p.textCentered(line.value, x+w/2, 3.0, w-0.6, 72, bold, pal.Primary)
		p.textCentered(line.label, x+w/2, 4.7, w-0.6, 20, regular, pal.Text)
	}
}

func (p *painter) header(title string) {
	g := p.geometry
	p.fill(0, 0, g.Width, g.HeaderHeight, p.styling.Palette.Primary)
	p.text(orDefault(title, "Slide Title"), 0.9, 0.15, 11, 44, bold, entities.RGB(255, 255, 255))
}

// drawLogo places the brand logo in the top-right corner; unreadable logos are skipped
func (p *painter) drawLogo() {
	if p.styling.LogoPath == "" {
		return
	}
	logo, err := imaging.Open(p.styling.LogoPath)
	if err != nil {
		return
	}
	box := int(1.2 * p.scale)
	logo = imaging.Fit(logo, box, box, imaging.Lanczos)
	x := int((p.geometry.Width-0.3)*p.scale) - logo.Bounds().Dx()
	p.dc.DrawImage(logo, x, int(0.15*p.scale))
}

func (p *painter) fill(x, y, w, h float64, c entities.Color) {
	p.dc.SetRGB255(int(c.R), int(c.G), int(c.B))
	p.dc.DrawRectangle(x*p.scale, y*p.scale, w*p.scale, h*p.scale)
	p.dc.Fill()
}

func (p *painter) card(x, y, w, h float64, fill, border entities.Color) {
	r := 0.15 * p.scale
	p.dc.DrawRoundedRectangle(x*p.scale, y*p.scale, w*p.scale, h*p.scale, r)
	p.dc.SetRGB255(int(fill.R), int(fill.G), int(fill.B))
	p.dc.FillPreserve()
	p.dc.SetRGB255(int(border.R), int(border.G), int(border.B))
	p.dc.SetLineWidth(3.0 / 72 * p.scale)
	p.dc.Stroke()
}

// text draws wrapped left-aligned text with its top at y and returns the y below it
func (p *painter) text(s string, x, y, width, sizePt float64, style fontStyle, c entities.Color) float64 {
	return p.drawWrapped(s, x, y, width, sizePt, style, c, 0)
}

// textCentered draws wrapped text centered on cx
func (p *painter) textCentered(s string, cx, y, width, sizePt float64, style fontStyle, c entities.Color) float64 {
	return p.drawWrapped(s, cx, y, width, sizePt, style, c, 0.5)
}

func (p *painter) drawWrapped(s string, x, y, width, sizePt float64, style fontStyle, c entities.Color, anchor float64) float64 {
	p.dc.SetFontFace(p.face(style, sizePt))
	p.dc.SetRGB255(int(c.R), int(c.G), int(c.B))

	lineHeight := sizePt / 72 * p.geometry.LineSpacing
	for _, para := range splitLines(s) {
		for _, line := range p.dc.WordWrap(para, width*p.scale) {
			p.dc.DrawStringAnchored(line, x*p.scale, y*p.scale, anchor, 1)
			y += lineHeight
		}
	}
	return y
}

func (p *painter) face(style fontStyle, sizePt float64) font.Face {
	key := faceKey{style: style, size: sizePt}
	if f, ok := p.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(p.fonts[style], &truetype.Options{Size: sizePt / 72 * p.scale})
	p.faces[key] = f
	return f
}

type stat struct {
	value string
	label string
}

func statSources(s entities.SlideContent) []stat {
	var stats []stat
	for _, line := range pptx.StatLines(s.Stats, s.Bullets) {
		value, label := pptx.ParseStat(line)
		stats = append(stats, stat{value: value, label: label})
	}
	return stats
}
