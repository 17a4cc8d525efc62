package pptx

import (
	"errors"
	"math"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

const bulletPrefix = "• "

// Opacities used to approximate translucent bands with opaque fills
const (
	titleBandOpacity   = 0.7
	quoteSquareOpacity = 0.3
)

// textStyle describes the run and paragraph formatting of one text box
type textStyle struct {
	size        int
	bold        bool
	italic      bool
	color       entities.Color
	font        string
	align       ppt.HorizontalAlignment
	spaceAfter  int     // points
	lineSpacing float64 // multiple, e.g. 1.3
}

// slideRenderer lays out a single slide
type slideRenderer struct {
	slide    *ppt.Slide
	styling  entities.Styling
	geometry entities.Geometry
	logo     *logoCache
	logger   ports.Logger
}

func (r *slideRenderer) render(content entities.SlideContent) {
	r.slide.SetBackground(solidFill(white))

	switch content.ResolvedType() {
	case entities.SlideTypeTitle:
		r.renderTitle(content)
	case entities.SlideTypeSection:
		r.renderSection(content)
	case entities.SlideTypeTwoColumn:
		r.renderTwoColumn(content)
	case entities.SlideTypeQuote:
		r.renderQuote(content)
	case entities.SlideTypeStats:
		r.renderStats(content)
	default:
		r.renderContent(content)
	}

	// A missing or unreadable logo never fails the slide.
	_ = r.placeLogo()

	if content.HasNotes() {
		r.slide.SetNotes(content.Notes)
	}
}

func (r *slideRenderer) renderTitle(c entities.SlideContent) {
	p, g := r.styling.Palette, r.geometry

	r.rect(0, 0, g.Width, g.Height, p.Primary)
	r.rect(0, 0, g.Width, 3.0, p.PrimaryLight.Blend(p.Primary, titleBandOpacity))

	title := r.textBox(1.5, 2.0, 10.3, 2.0)
	r.writeText(title, orDefault(c.Title, "Presentation Title"), textStyle{
		size: 66, bold: true, color: white, font: r.styling.Fonts.Heading, align: ppt.HorizontalCenter,
	})

	if c.Subtitle != "" {
		sub := r.textBox(1.5, 4.3, 10.3, 1.2)
		r.writeText(sub, c.Subtitle, textStyle{
			size: 32, color: p.AccentLight, font: r.styling.Fonts.Body, align: ppt.HorizontalCenter,
		})
	}
}

func (r *slideRenderer) renderContent(c entities.SlideContent) {
	p, g := r.styling.Palette, r.geometry

	r.headerBand()
	r.headerTitle(c.Title)

	r.panel(g.MarginLeft, g.HeaderHeight+0.5, g.Width-1.6, 5.4, p.Light)

	body := r.textBox(g.MarginLeft+0.6, g.HeaderHeight+0.9, g.Width-1.6-1.2, 4.8)
	body.SetWordWrap(true)
	body.SetTextAnchor(ppt.TextAnchorTop)

	size, after := bulletTier(len(c.Bullets))
	style := textStyle{
		size: size, color: p.Text, font: r.styling.Fonts.Body,
		align: ppt.HorizontalLeft, spaceAfter: after, lineSpacing: g.LineSpacing,
	}
	for i, bullet := range c.Bullets {
		text := bullet
		if i > 0 || len(c.Bullets) > 1 {
			text = bulletPrefix + bullet
		}
		r.paragraph(body, i, text, style)
	}
}

// bulletTier steps font size and spacing down as the bullet count grows
func bulletTier(n int) (size, spaceAfter int) {
	switch {
	case n <= 3:
		return 32, 24
	case n <= 5:
		return 28, 20
	default:
		return 24, 16
	}
}

func (r *slideRenderer) renderSection(c entities.SlideContent) {
	p, g := r.styling.Palette, r.geometry

	const split = 8.0
	r.rect(0, 0, split, g.Height, p.Secondary)
	r.rect(split, 0, g.Width-split, g.Height, p.Primary)

	if c.SectionNumber != "" {
		num := r.textBox(1.5, 1.5, 2, 1)
		r.writeText(num, c.SectionNumber, textStyle{
			size: 120, bold: true, color: p.AccentLight, font: r.styling.Fonts.Heading,
		})
	}

	title := r.textBox(1.5, 3.5, 6, 2)
	title.SetWordWrap(true)
	r.writeText(title, orDefault(c.Title, "Section"), textStyle{
		size: 52, bold: true, color: white, font: r.styling.Fonts.Heading,
	})
}

func (r *slideRenderer) renderTwoColumn(c entities.SlideContent) {
	p, g := r.styling.Palette, r.geometry

	r.headerBand()
	r.headerTitle(c.Title)

	top := g.HeaderHeight + 0.4
	r.panel(g.MarginLeft, top, 5.5, 5.6, p.Light)
	r.panel(g.MarginLeft+5.9, top, 5.5, 5.6, p.Light)

	r.column(g.MarginLeft+0.4, c.LeftHeader, c.LeftItems)
	r.column(g.MarginLeft+6.3, c.RightHeader, c.RightItems)
}

func (r *slideRenderer) column(x float64, header string, items []string) {
	p, g := r.styling.Palette, r.geometry

	if header != "" {
		h := r.textBox(x, g.HeaderHeight+0.6, 4.7, 0.4)
		r.writeText(h, header, textStyle{
			size: 28, bold: true, color: p.Primary, font: r.styling.Fonts.Heading,
		})
	}

	body := r.textBox(x, g.HeaderHeight+1.2, 4.7, 4.5)
	body.SetWordWrap(true)
	style := textStyle{
		size: 24, color: p.Text, font: r.styling.Fonts.Body,
		spaceAfter: 16, lineSpacing: g.LineSpacing,
	}
	for i, item := range items {
		text := item
		if len(items) > 1 {
			text = bulletPrefix + item
		}
		r.paragraph(body, i, text, style)
	}
}

func (r *slideRenderer) renderQuote(c entities.SlideContent) {
	p, g := r.styling.Palette, r.geometry

	r.rect(0, 0, g.Width, g.Height, p.Primary)
	r.panel(0.5, 0.5, 2, 2, p.Accent.Blend(p.Primary, quoteSquareOpacity))

	mark := r.textBox(1.5, 1.5, 1.5, 1.0)
	r.writeText(mark, `"`, textStyle{
		size: 180, bold: true, color: p.AccentLight, font: r.styling.Fonts.Heading,
	})

	quote := c.Quote
	if quote == "" {
		quote = orDefault(c.Title, "Quote text")
	}
	body := r.textBox(2.0, 2.5, 9.3, 3.0)
	body.SetWordWrap(true)
	r.writeText(body, quote, textStyle{
		size: 48, color: white, font: r.styling.Fonts.Heading,
		align: ppt.HorizontalLeft, lineSpacing: 1.4,
	})

	if c.Attribution != "" {
		attr := r.textBox(2.0, 5.8, 9.3, 0.8)
		r.writeText(attr, "— "+c.Attribution, textStyle{
			size: 28, italic: true, color: p.AccentLight, font: r.styling.Fonts.Body,
		})
	}
}

func (r *slideRenderer) renderStats(c entities.SlideContent) {
	p, g := r.styling.Palette, r.geometry

	r.rect(0, 0, g.Width, 1.5, p.Primary)

	title := r.textBox(1.0, 0.3, 11.3, 1.0)
	r.writeText(title, orDefault(c.Title, "Key Statistics"), textStyle{
		size: 52, bold: true, color: white, font: r.styling.Fonts.Heading, align: ppt.HorizontalCenter,
	})

	lines := StatLines(c.Stats, c.Bullets)
	if len(lines) == 0 {
		return
	}
	statWidth := 11.3 / float64(len(lines))

	for i, line := range lines {
		x := 1.0 + statWidth*float64(i)
		value, label := ParseStat(line)

		card := r.panel(x+0.2, 2.5, statWidth-0.4, 3.5, p.Light)
		card.SetBorder(&ppt.Border{Style: ppt.BorderSolid, Width: int(entities.EMUPerPt * 3), Color: pptColor(p.Accent)})

		num := r.textBox(x+0.3, 3.0, statWidth-0.6, 1.5)
		r.writeText(num, value, textStyle{
			size: 72, bold: true, color: p.Primary, font: r.styling.Fonts.Heading, align: ppt.HorizontalCenter,
		})

		lbl := r.textBox(x+0.3, 4.7, statWidth-0.6, 1.0)
		lbl.SetWordWrap(true)
		r.writeText(lbl, label, textStyle{
			size: 20, color: p.Text, font: r.styling.Fonts.Body, align: ppt.HorizontalCenter,
		})
	}
}

// headerBand draws the full-width primary band used by content layouts
func (r *slideRenderer) headerBand() {
	r.rect(0, 0, r.geometry.Width, r.geometry.HeaderHeight, r.styling.Palette.Primary)
}

func (r *slideRenderer) headerTitle(title string) {
	box := r.textBox(0.9, 0.15, 11, 0.7)
	r.writeText(box, orDefault(title, "Slide Title"), textStyle{
		size: 44, bold: true, color: white, font: r.styling.Fonts.Heading,
	})
}

// placeLogo puts the brand logo in the top-right corner
func (r *slideRenderer) placeLogo() error {
	data, aspect, err := r.logo.load()
	if err != nil {
		if !errors.Is(err, errNoLogo) {
			r.logger.Debug("Skipping logo: %v", err)
		}
		return err
	}

	pic := r.slide.CreateDrawingShape()
	pic.SetImageData(data, "image/png")
	pic.SetName("Logo")
	pic.SetPosition(ppt.Inch(r.geometry.Width-logoRightIn), ppt.Inch(logoTopIn))
	pic.SetSize(ppt.Inch(logoHeightIn*aspect), ppt.Inch(logoHeightIn))
	return nil
}

func (r *slideRenderer) rect(x, y, w, h float64, c entities.Color) *ppt.AutoShape {
	return r.shape(ppt.AutoShapeRectangle, x, y, w, h, c)
}

func (r *slideRenderer) panel(x, y, w, h float64, c entities.Color) *ppt.AutoShape {
	return r.shape(ppt.AutoShapeRoundedRect, x, y, w, h, c)
}

func (r *slideRenderer) shape(kind ppt.AutoShapeType, x, y, w, h float64, c entities.Color) *ppt.AutoShape {
	s := r.slide.CreateAutoShape()
	s.SetAutoShapeType(kind)
	s.SetPosition(ppt.Inch(x), ppt.Inch(y))
	s.SetSize(ppt.Inch(w), ppt.Inch(h))
	s.SetSolidFill(pptColor(c))
	return s
}

func (r *slideRenderer) textBox(x, y, w, h float64) *ppt.RichTextShape {
	box := r.slide.CreateRichTextShape()
	box.SetPosition(ppt.Inch(x), ppt.Inch(y))
	box.SetSize(ppt.Inch(w), ppt.Inch(h))
	box.SetWordWrap(false)
	return box
}

// writeText fills box with one paragraph per line of text
func (r *slideRenderer) writeText(box *ppt.RichTextShape, text string, style textStyle) {
	for i, line := range strings.Split(text, "\n") {
		r.paragraph(box, i, line, style)
	}
}

// paragraph writes the i-th paragraph of box; the first reuses the
// paragraph every text box starts with.
func (r *slideRenderer) paragraph(box *ppt.RichTextShape, i int, text string, style textStyle) {
	para := box.GetActiveParagraph()
	if i > 0 {
		para = box.CreateParagraph()
	}
	if style.align != "" {
		para.GetAlignment().SetHorizontal(style.align)
	}
	if style.spaceAfter > 0 {
		para.SetSpaceAfter(style.spaceAfter * 100)
	}
	if style.lineSpacing > 0 {
		para.SetLineSpacing(-int(math.Round(style.lineSpacing * 100000)))
	}

	run := para.CreateTextRun(text)
	run.GetFont().
		SetSize(style.size).
		SetBold(style.bold).
		SetItalic(style.italic).
		SetColor(pptColor(style.color)).
		SetName(style.font)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
