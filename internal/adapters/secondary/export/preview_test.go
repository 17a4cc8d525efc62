package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

func TestPreviewRenderer_Render(t *testing.T) {
	t.Run("one png per slide plus sheet", func(t *testing.T) {
		dir := t.TempDir()
		deck := sampleDeck()

		result, err := NewPreviewRenderer().Render(context.Background(), deck, &ExportOptions{
			Format: FormatPreview, OutputDir: dir, BaseName: "deck", Quality: "low",
		})

		require.NoError(t, err)
		assert.Equal(t, 4, result.PageCount)
		require.Len(t, result.Files, 5)
		assert.Equal(t, filepath.Join(dir, "deck_sheet.png"), result.OutputPath)

		for i := 1; i <= 4; i++ {
			path := filepath.Join(dir, fmt.Sprintf("deck_slide_%02d.png", i))
			img, err := imaging.Open(path)
			require.NoError(t, err)
			assert.Equal(t, image.Pt(1280, 720), img.Bounds().Size())
		}

		sheet, err := imaging.Open(result.OutputPath)
		require.NoError(t, err)
		// 3 columns of 480x270 thumbnails, 2 rows, 24px gutters
		assert.Equal(t, image.Pt(1536, 612), sheet.Bounds().Size())
	})

	t.Run("title slide is filled with the primary color", func(t *testing.T) {
		dir := t.TempDir()
		deck := sampleDeck()
		deck.Slides = deck.Slides[:1]

		_, err := NewPreviewRenderer().Render(context.Background(), deck, &ExportOptions{
			Format: FormatPreview, OutputDir: dir, BaseName: "deck", Quality: "low",
		})
		require.NoError(t, err)

		img, err := imaging.Open(filepath.Join(dir, "deck_slide_01.png"))
		require.NoError(t, err)
		primary := deck.Styling.Palette.Primary
		r, g, b, _ := img.At(5, 715).RGBA()
		assert.Equal(t, [3]uint8{primary.R, primary.G, primary.B}, [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
	})

	t.Run("logo is drawn when readable", func(t *testing.T) {
		dir := t.TempDir()
		logoPath := filepath.Join(dir, "logo.png")
		require.NoError(t, imaging.Save(imaging.New(50, 50, color.NRGBA{R: 255, A: 255}), logoPath))

		deck := sampleDeck()
		deck.Slides = []entities.SlideContent{{Type: entities.SlideTypeContent, Title: "x"}}
		deck.Styling.LogoPath = logoPath

		_, err := NewPreviewRenderer().Render(context.Background(), deck, &ExportOptions{
			Format: FormatPreview, OutputDir: dir, BaseName: "deck", Quality: "low",
		})
		require.NoError(t, err)

		img, err := imaging.Open(filepath.Join(dir, "deck_slide_01.png"))
		require.NoError(t, err)
		// Top-right corner inside the fitted logo box
		r, g, b, _ := img.At(1280-int(0.3*96)-10, int(0.15*96)+10).RGBA()
		assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
	})

	t.Run("missing logo is skipped", func(t *testing.T) {
		deck := sampleDeck()
		deck.Styling.LogoPath = "/nonexistent/logo.png"

		_, err := NewPreviewRenderer().Render(context.Background(), deck, &ExportOptions{
			Format: FormatPreview, OutputDir: t.TempDir(), BaseName: "deck", Quality: "low",
		})
		assert.NoError(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewPreviewRenderer().Render(ctx, sampleDeck(), &ExportOptions{
			Format: FormatPreview, OutputDir: t.TempDir(), BaseName: "deck", Quality: "low",
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGetImageDimensions(t *testing.T) {
	tests := map[string][2]int{
		"low":    {1280, 720},
		"medium": {1920, 1080},
		"":       {1920, 1080},
		"high":   {2560, 1440},
	}
	for quality, want := range tests {
		w, h := GetImageDimensions(quality)
		assert.Equal(t, want, [2]int{w, h}, quality)
	}
}

func TestContactSheet(t *testing.T) {
	t.Run("single row", func(t *testing.T) {
		thumb := imaging.New(sheetThumbWidth, 270, color.NRGBA{A: 255})
		sheet := contactSheet([]image.Image{thumb, thumb}, entities.RGB(240, 240, 240))
		assert.Equal(t, image.Pt(2*480+3*24, 270+2*24), sheet.Bounds().Size())
	})

	t.Run("empty", func(t *testing.T) {
		sheet := contactSheet(nil, entities.RGB(240, 240, 240))
		assert.Equal(t, image.Pt(48, 48), sheet.Bounds().Size())
	})
}
