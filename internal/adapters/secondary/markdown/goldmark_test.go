package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

func TestGoldmarkParser_ParseSlides(t *testing.T) {
	parser := NewGoldmarkParser()
	ctx := context.Background()

	t.Run("headings lists and notes", func(t *testing.T) {
		content := []byte(`# Annual Planning

Finance team offsite

## Goals

- Grow **revenue**
- Reduce churn
  - Enterprise accounts

Note: Spend time on churn

## Risks

Hiring is slow.
Budget is tight.
`)
		slides, err := parser.ParseSlides(ctx, content)
		require.NoError(t, err)
		require.Len(t, slides, 3)

		assert.Equal(t, entities.SlideTypeTitle, slides[0].Type)
		assert.Equal(t, "Annual Planning", slides[0].Title)
		assert.Equal(t, "Finance team offsite", slides[0].Subtitle)

		assert.Equal(t, entities.SlideTypeContent, slides[1].Type)
		assert.Equal(t, "Goals", slides[1].Title)
		assert.Equal(t, []string{"Grow revenue", "Reduce churn", "Enterprise accounts"}, slides[1].Bullets)
		assert.Equal(t, "Spend time on churn", slides[1].Notes)

		assert.Equal(t, []string{"Hiring is slow. Budget is tight."}, slides[2].Bullets)
	})

	t.Run("thematic breaks split slides", func(t *testing.T) {
		content := []byte("First point\n\n---\n\nSecond point\n---\nThird point")
		slides, err := parser.ParseSlides(ctx, content)
		require.NoError(t, err)
		require.Len(t, slides, 3)
		assert.Equal(t, []string{"Third point"}, slides[2].Bullets)
		assert.Empty(t, slides[2].Title)
	})

	t.Run("later level one heading becomes a section", func(t *testing.T) {
		content := []byte("# Deck\n\n# Part One\n\n## Details\n\n- a\n")
		slides, err := parser.ParseSlides(ctx, content)
		require.NoError(t, err)
		require.Len(t, slides, 3)
		assert.Equal(t, entities.SlideTypeTitle, slides[0].Type)
		assert.Equal(t, entities.SlideTypeSection, slides[1].Type)
		assert.Equal(t, "Part One", slides[1].Title)
		assert.Equal(t, entities.SlideTypeContent, slides[2].Type)
	})

	t.Run("block quote with attribution", func(t *testing.T) {
		content := []byte("## Vision\n\n> Make decks boring to build\n> -- The Team\n")
		slides, err := parser.ParseSlides(ctx, content)
		require.NoError(t, err)
		require.Len(t, slides, 1)
		assert.Equal(t, entities.SlideTypeQuote, slides[0].Type)
		assert.Equal(t, "Make decks boring to build", slides[0].Quote)
		assert.Equal(t, "The Team", slides[0].Attribution)
	})

	t.Run("quote after bullets is its own slide", func(t *testing.T) {
		content := []byte("## Points\n\n- one\n\n> Short quote\n")
		slides, err := parser.ParseSlides(ctx, content)
		require.NoError(t, err)
		require.Len(t, slides, 2)
		assert.Equal(t, []string{"one"}, slides[0].Bullets)
		assert.Equal(t, "Short quote", slides[1].Quote)
		assert.Empty(t, slides[1].Attribution)
	})

	t.Run("two column table", func(t *testing.T) {
		content := []byte("## Before and After\n\n| Before | After |\n|---|---|\n| Manual | Automated |\n| Slow | Fast |\n")
		slides, err := parser.ParseSlides(ctx, content)
		require.NoError(t, err)
		require.Len(t, slides, 1)
		s := slides[0]
		assert.Equal(t, entities.SlideTypeTwoColumn, s.Type)
		assert.Equal(t, "Before", s.LeftHeader)
		assert.Equal(t, "After", s.RightHeader)
		assert.Equal(t, []string{"Manual", "Slow"}, s.LeftItems)
		assert.Equal(t, []string{"Automated", "Fast"}, s.RightItems)
	})

	t.Run("wide table rows become bullets", func(t *testing.T) {
		content := []byte("## Metrics\n\n| a | b | c |\n|---|---|---|\n| 1 | 2 | 3 |\n")
		slides, err := parser.ParseSlides(ctx, content)
		require.NoError(t, err)
		require.Len(t, slides, 1)
		assert.Equal(t, []string{"1 | 2 | 3"}, slides[0].Bullets)
	})

	t.Run("frontmatter ignored", func(t *testing.T) {
		content := []byte("---\ntheme: tech_modern\n---\n## Only\n\n- x\n")
		slides, err := parser.ParseSlides(ctx, content)
		require.NoError(t, err)
		require.Len(t, slides, 1)
		assert.Equal(t, "Only", slides[0].Title)
	})

	t.Run("empty content", func(t *testing.T) {
		slides, err := parser.ParseSlides(ctx, []byte(""))
		require.NoError(t, err)
		assert.Empty(t, slides)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := parser.ParseSlides(cancelled, []byte("# x"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGoldmarkParser_ParseDeck(t *testing.T) {
	content := []byte(`---
title: Sunday Service
theme: church_warmth
brand_kit: kits/grace.yaml
---

# Welcome

Grace Community Church
`)
	config, err := NewGoldmarkParser().ParseDeck(context.Background(), content)
	require.NoError(t, err)
	assert.Equal(t, "Sunday Service", config.Title)
	assert.Equal(t, "church_warmth", config.Theme)
	assert.Equal(t, "kits/grace.yaml", config.BrandKit.Path)
	require.Len(t, config.Slides, 1)
	assert.Equal(t, "Grace Community Church", config.Slides[0].Subtitle)
}

func TestExtractFrontmatter(t *testing.T) {
	t.Run("no frontmatter", func(t *testing.T) {
		fm, rest := extractFrontmatter([]byte("# Title"))
		assert.Nil(t, fm)
		assert.Equal(t, "# Title", string(rest))
	})

	t.Run("unterminated", func(t *testing.T) {
		fm, rest := extractFrontmatter([]byte("---\ntitle: x\n"))
		assert.Nil(t, fm)
		assert.Equal(t, "---\ntitle: x\n", string(rest))
	})

	t.Run("empty", func(t *testing.T) {
		fm, _ := extractFrontmatter([]byte("---\n---\nbody"))
		assert.NotNil(t, fm)
		assert.Empty(t, fm)
	})
}
