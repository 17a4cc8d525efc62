package export

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

// Landscape A4 in millimeters
const (
	pageWidth    = 297.0
	pageMargin   = 18.0
	headerHeight = 22.0
)

// HandoutRenderer writes a PDF with one page per slide and its speaker notes
type HandoutRenderer struct{}

// NewHandoutRenderer creates a new handout renderer
func NewHandoutRenderer() *HandoutRenderer {
	return &HandoutRenderer{}
}

// Render writes <base>_handout.pdf
func (r *HandoutRenderer) Render(ctx context.Context, deck *Deck, options *ExportOptions) (*ExportResult, error) {
	pal := deck.Styling.Palette

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, headerHeight+10, pageMargin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(deck.Title, true)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(int(pal.TextLight.R), int(pal.TextLight.G), int(pal.TextLight.B))
		half := (pageWidth - 2*pageMargin) / 2
		pdf.CellFormat(half, 8, tr(deck.Title), "", 0, "L", false, 0, "")
		pdf.CellFormat(half, 8, fmt.Sprintf("%d / {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	for i, slide := range deck.Slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.addSlidePage(pdf, tr, pal, i+1, textOf(slide), options.IncludeNotes)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("building handout: %w", err)
	}

	pages := pdf.PageCount()
	path := filepath.Join(options.OutputDir, options.BaseName+"_handout.pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return nil, fmt.Errorf("saving PDF to %s: %w", path, err)
	}

	return &ExportResult{
		Success:    true,
		Format:     string(FormatHandout),
		OutputPath: path,
		PageCount:  pages,
		Files:      []string{path},
	}, nil
}

func (r *HandoutRenderer) addSlidePage(pdf *gofpdf.Fpdf, tr func(string) string, pal entities.Palette, number int, text slideText, notes bool) {
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(int(pal.Primary.R), int(pal.Primary.G), int(pal.Primary.B))
	pdf.Rect(0, 0, pageWidth, headerHeight, "F")
	pdf.SetXY(pageMargin, 6)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(pageWidth-2*pageMargin-20, 10, tr(text.Title), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(20, 10, fmt.Sprintf("%d", number), "", 1, "R", false, 0, "")

	pdf.SetY(headerHeight + 10)
	pdf.SetFont("Helvetica", "", 13)
	pdf.SetTextColor(int(pal.Text.R), int(pal.Text.G), int(pal.Text.B))
	for _, line := range text.Lines {
		pdf.MultiCell(0, 7, tr(line), "", "L", false)
		pdf.Ln(1)
	}

	if !notes || text.Notes == "" {
		return
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(int(pal.Primary.R), int(pal.Primary.G), int(pal.Primary.B))
	pdf.CellFormat(0, 7, "Speaker notes", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "I", 11)
	pdf.SetTextColor(int(pal.Text.R), int(pal.Text.G), int(pal.Text.B))
	pdf.SetFillColor(int(pal.Light.R), int(pal.Light.G), int(pal.Light.B))
	pdf.MultiCell(0, 6, tr(text.Notes), "", "L", true)
}

// Supports returns true if this renderer supports the given format
func (r *HandoutRenderer) Supports(format ExportFormat) bool {
	return format == FormatHandout
}

// GetMimeType returns the MIME type for handout exports
func (r *HandoutRenderer) GetMimeType() string {
	return "application/pdf"
}
