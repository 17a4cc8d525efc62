package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandoutRenderer_Render(t *testing.T) {
	t.Run("one page per slide", func(t *testing.T) {
		dir := t.TempDir()

		result, err := NewHandoutRenderer().Render(context.Background(), sampleDeck(), &ExportOptions{
			Format: FormatHandout, OutputDir: dir, BaseName: "deck", IncludeNotes: true,
		})

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "deck_handout.pdf"), result.OutputPath)
		assert.Equal(t, 4, result.PageCount)

		data, err := os.ReadFile(result.OutputPath)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	})

	t.Run("long notes still render", func(t *testing.T) {
		deck := sampleDeck()
		deck.Slides = deck.Slides[:1]
		deck.Slides[0].Notes = string(bytes.Repeat([]byte("Talk about the numbers. "), 200))

		result, err := NewHandoutRenderer().Render(context.Background(), deck, &ExportOptions{
			Format: FormatHandout, OutputDir: t.TempDir(), BaseName: "deck", IncludeNotes: true,
		})

		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.PageCount, 1)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewHandoutRenderer().Render(ctx, sampleDeck(), &ExportOptions{
			Format: FormatHandout, OutputDir: t.TempDir(), BaseName: "deck",
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("mime type", func(t *testing.T) {
		r := NewHandoutRenderer()
		assert.Equal(t, "application/pdf", r.GetMimeType())
		assert.True(t, r.Supports(FormatHandout))
		assert.False(t, r.Supports(FormatPreview))
	})
}
