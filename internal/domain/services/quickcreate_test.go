package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

// MockMarkdownParser is a mock implementation of ports.MarkdownSlideParser
type MockMarkdownParser struct {
	mock.Mock
}

func (m *MockMarkdownParser) ParseSlides(ctx context.Context, content []byte) ([]entities.SlideContent, error) {
	args := m.Called(ctx, content)
	if slides := args.Get(0); slides != nil {
		return slides.([]entities.SlideContent), args.Error(1)
	}
	return nil, args.Error(1)
}

// tagSanitizer strips angle brackets so tests can see it ran
type tagSanitizer struct{}

func (tagSanitizer) Sanitize(s string) string {
	return strings.NewReplacer("<b>", "", "</b>", "").Replace(s)
}

func titles(slides []entities.SlideContent) []string {
	out := make([]string, len(slides))
	for i, s := range slides {
		out[i] = s.Title
	}
	return out
}

func TestQuickCreate_GenericOutline(t *testing.T) {
	svc := NewQuickCreateService(nil, nil)

	slides, err := svc.Generate(context.Background(), entities.GenerationRequest{
		Topic: "Team Offsite", Company: "Acme", Presenter: "Jo", NumSlides: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Team Offsite",
		"Agenda",
		"Introduction", "Introduction - Details", "Introduction - Details",
		"Main Points", "Main Points - Details", "Main Points - Details",
		"Deep Dive",
		"Thank You",
	}, titles(slides))

	assert.Equal(t, entities.SlideTypeTitle, slides[0].Type)
	assert.Equal(t, "Acme\nJo", slides[0].Subtitle)
	assert.Equal(t, "1", slides[2].SectionNumber)
	assert.Equal(t, "3", slides[8].SectionNumber)
	assert.Equal(t, entities.SlideTypeSection, slides[9].Type)
	assert.Empty(t, slides[9].SectionNumber)
}

func TestQuickCreate_Segmentation(t *testing.T) {
	svc := NewQuickCreateService(nil, nil)

	t.Run("headers start new slides", func(t *testing.T) {
		notes := strings.Join([]string{
			"Line a", "Line b", "", "Line c", "Line d", "Line e",
			"Budget:", "Travel", "Venue",
			"2. Plans", "Hire two engineers",
		}, "\n")

		slides, err := svc.Generate(context.Background(), entities.GenerationRequest{
			Topic: "Update", Content: notes, NumSlides: 3,
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"Update", "Overview", "Budget", "2. Plans", "Thank You"}, titles(slides))
		assert.Equal(t, []string{"Line a", "Line b", "Line c", "Line d", "Line e"}, slides[1].Bullets)
		assert.Equal(t, []string{"Travel", "Venue"}, slides[2].Bullets)
		assert.Equal(t, []string{"Hire two engineers"}, slides[3].Bullets)
	})

	t.Run("short notes are repeated under key points and padded", func(t *testing.T) {
		slides, err := svc.Generate(context.Background(), entities.GenerationRequest{
			Topic: "Plan", Content: "one\ntwo\nthree", NumSlides: 5,
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"Plan", "Overview", "Key Points", "Plan - Additional Points", "Thank You"}, titles(slides))
		assert.Equal(t, []string{"one", "two", "three"}, slides[2].Bullets)
	})

	t.Run("six bullets flush a slide", func(t *testing.T) {
		lines := []string{"h1", "h2", "h3", "h4", "h5"}
		for i := 0; i < 8; i++ {
			lines = append(lines, "detail line that is long enough to never be a header at all")
		}
		slides, err := svc.Generate(context.Background(), entities.GenerationRequest{
			Topic: "Big", Content: strings.Join(lines, "\n"), NumSlides: 3,
		})
		require.NoError(t, err)

		require.Len(t, slides, 5)
		assert.Len(t, slides[2].Bullets, 6)
		assert.Equal(t, "Key Points", slides[3].Title)
		assert.Len(t, slides[3].Bullets, 2)
	})

	t.Run("header detection", func(t *testing.T) {
		assert.True(t, isHeaderLine("Budget:"))
		assert.True(t, isHeaderLine("3) Next"))
		assert.True(t, isHeaderLine("9. Last"))
		assert.False(t, isHeaderLine("0. Zero"))
		assert.False(t, isHeaderLine("Plain text"))
		assert.False(t, isHeaderLine(strings.Repeat("x", 50)+":"))
	})
}

func TestQuickCreate_Markdown(t *testing.T) {
	parsed := []entities.SlideContent{
		{Type: entities.SlideTypeContent, Title: "From Markdown", Bullets: []string{"a"}},
	}
	md := new(MockMarkdownParser)
	md.On("ParseSlides", mock.Anything, []byte("# From Markdown\n- a")).Return(parsed, nil)

	svc := NewQuickCreateService(md, nil)
	slides, err := svc.Generate(context.Background(), entities.GenerationRequest{
		Topic: "Doc", Content: "# From Markdown\n- a", Markdown: true, NumSlides: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Doc", "From Markdown", "Doc - Additional Points", "Thank You"}, titles(slides))
	md.AssertExpectations(t)

	t.Run("parser errors are validation errors", func(t *testing.T) {
		failing := new(MockMarkdownParser)
		failing.On("ParseSlides", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		_, err := NewQuickCreateService(failing, nil).Generate(context.Background(), entities.GenerationRequest{
			Topic: "Doc", Content: "# x", Markdown: true, NumSlides: 4,
		})
		assert.True(t, entities.IsBuildErrorType(err, entities.ErrorTypeValidation))
	})
}

func TestQuickCreate_Validation(t *testing.T) {
	svc := NewQuickCreateService(nil, tagSanitizer{})

	tests := []struct {
		name string
		req  entities.GenerationRequest
	}{
		{"missing topic", entities.GenerationRequest{NumSlides: 5}},
		{"too few slides", entities.GenerationRequest{Topic: "x", NumSlides: 2}},
		{"too many slides", entities.GenerationRequest{Topic: "x", NumSlides: 31}},
		{"sanitized to empty", entities.GenerationRequest{Topic: "<b></b>", NumSlides: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, entities.IsBuildErrorType(err, entities.ErrorTypeValidation))
		})
	}

	t.Run("sanitizer cleans the topic", func(t *testing.T) {
		slides, err := svc.Generate(context.Background(), entities.GenerationRequest{Topic: "<b>Bold</b> Plan", NumSlides: 3})
		require.NoError(t, err)
		assert.Equal(t, "Bold Plan", slides[0].Title)
	})
}

// warnLogger records warnings and drops everything else
type warnLogger struct {
	ports.NopLogger
	warnings []string
}

func (l *warnLogger) Warn(msg string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(msg, args...))
}

func TestQuickCreate_TruncatesLongTopic(t *testing.T) {
	logger := &warnLogger{}
	svc := NewQuickCreateService(nil, nil).WithLogger(logger)

	slides, err := svc.Generate(context.Background(), entities.GenerationRequest{
		Topic: strings.Repeat("x", entities.MaxTopicLength+40), NumSlides: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("x", entities.MaxTopicLength), slides[0].Title)
	require.Len(t, logger.warnings, 1)
	assert.Contains(t, logger.warnings[0], "truncating to 200 characters")
}
