package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

func TestTemplateService_Catalog(t *testing.T) {
	svc := NewTemplateService()

	t.Run("lists every skeleton", func(t *testing.T) {
		all := svc.List()
		require.Len(t, all, 10)
		for _, tpl := range all {
			assert.NotEmpty(t, tpl.Slides, tpl.ID)
			assert.True(t, HasTheme(tpl.Theme), "template %s uses unknown theme %s", tpl.ID, tpl.Theme)
		}
	})

	t.Run("categories", func(t *testing.T) {
		assert.Equal(t, []string{"business", "church", "education", "government", "marketing"}, svc.Categories())

		church := svc.ListByCategory(entities.CategoryChurch)
		ids := make([]string, 0, len(church))
		for _, tpl := range church {
			ids = append(ids, tpl.ID)
		}
		assert.Equal(t, []string{"sermon", "church_board", "staff_meeting"}, ids)
		assert.Empty(t, svc.ListByCategory("unknown"))
	})

	t.Run("get returns an independent copy", func(t *testing.T) {
		tpl, ok := svc.Get("quarterly_review")
		require.True(t, ok)
		tpl.Slides[0].Title = "changed"
		tpl.Slides[1].Bullets[0] = "changed"

		again, _ := svc.Get("quarterly_review")
		assert.Equal(t, "{quarter} Business Review", again.Slides[0].Title)
		assert.NotEqual(t, "changed", again.Slides[1].Bullets[0])
	})

	t.Run("unknown id", func(t *testing.T) {
		_, ok := svc.Get("nope")
		assert.False(t, ok)
	})
}

func TestTemplateService_FieldNames(t *testing.T) {
	svc := NewTemplateService()

	t.Run("sorted and unique", func(t *testing.T) {
		skeleton := entities.TemplateSkeleton{Slides: []entities.SlideContent{
			{Title: "{b} and {a}", Subtitle: "{a}"},
			{Bullets: []string{"{c}", "plain"}, LeftItems: []string{"{d}"}, RightItems: []string{"{a}"}},
			{Quote: "{ignored}", Notes: "{also_ignored}"},
		}}
		assert.Equal(t, []string{"a", "b", "c", "d"}, svc.FieldNames(skeleton))
	})

	t.Run("built-in sermon", func(t *testing.T) {
		tpl, _ := svc.Get("sermon")
		names := svc.FieldNames(tpl)
		assert.Contains(t, names, "sermon_title")
		assert.Contains(t, names, "point_1_title")
		assert.Contains(t, names, "application_3")
	})

	t.Run("no fields", func(t *testing.T) {
		assert.Empty(t, svc.FieldNames(entities.TemplateSkeleton{Slides: []entities.SlideContent{{Title: "Plain"}}}))
	})
}

func TestTemplateService_Substitute(t *testing.T) {
	svc := NewTemplateService()
	skeleton := entities.TemplateSkeleton{Slides: []entities.SlideContent{
		{Type: entities.SlideTypeContent, Title: "{name} Review", Bullets: []string{"Owner: {owner}"}},
	}}

	t.Run("supplied tokens are replaced", func(t *testing.T) {
		out := svc.Substitute(skeleton, map[string]string{"name": "Q4"})
		require.Len(t, out, 1)
		assert.Equal(t, "Q4 Review", out[0].Title)
		assert.Equal(t, "Owner: {owner}", out[0].Bullets[0])
	})

	t.Run("empty map leaves text unchanged", func(t *testing.T) {
		out := svc.Substitute(skeleton, map[string]string{})
		assert.Equal(t, "{name} Review", out[0].Title)
	})

	t.Run("skeleton is not mutated", func(t *testing.T) {
		out := svc.Substitute(skeleton, map[string]string{"owner": "Ana"})
		out[0].Bullets[0] = "changed"
		assert.Equal(t, "Owner: {owner}", skeleton.Slides[0].Bullets[0])
	})

	t.Run("every text attribute is substituted", func(t *testing.T) {
		sk := entities.TemplateSkeleton{Slides: []entities.SlideContent{{
			LeftHeader: "{x}", RightItems: []string{"{x}"}, Quote: "{x}", Attribution: "{x}", Stats: []string{"{x}: 1"}, Notes: "{x}",
		}}}
		out := svc.Substitute(sk, map[string]string{"x": "v"})
		s := out[0]
		assert.Equal(t, "v", s.LeftHeader)
		assert.Equal(t, "v", s.RightItems[0])
		assert.Equal(t, "v", s.Quote)
		assert.Equal(t, "v", s.Attribution)
		assert.Equal(t, "v: 1", s.Stats[0])
		assert.Equal(t, "v", s.Notes)
	})

	t.Run("values are truncated", func(t *testing.T) {
		long := strings.Repeat("é", entities.MaxFieldValueLength+20)
		out := svc.Substitute(skeleton, map[string]string{"name": long})
		assert.Equal(t, strings.Repeat("é", entities.MaxFieldValueLength)+" Review", out[0].Title)
	})
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", TruncateRunes("abc", 5))
	assert.Equal(t, "ab", TruncateRunes("abc", 2))
	assert.Equal(t, "日本", TruncateRunes("日本語", 2))
}
