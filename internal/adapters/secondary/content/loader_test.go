package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadBuildConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json array", "deck.json", `[{"type": "title", "title": "Hello"}, {"type": "content", "title": "Body", "bullets": ["a", "b"]}]`},
		{"json slides wrapper", "deck.json", `{"slides": [{"type": "title", "title": "Hello"}, {"title": "Body", "bullets": ["a", "b"]}]}`},
		{"json build config", "deck.json", `{"theme": "tech_modern", "slides_content": [{"type": "title", "title": "Hello"}, {"title": "Body", "bullets": ["a", "b"]}]}`},
		{"yaml array", "deck.yaml", "- type: title\n  title: Hello\n- type: content\n  title: Body\n  bullets: [a, b]\n"},
		{"yaml slides wrapper", "deck.yml", "slides:\n  - type: title\n    title: Hello\n  - title: Body\n    bullets: [a, b]\n"},
		{"yaml build config", "deck.yaml", "theme: tech_modern\nslides_content:\n  - type: title\n    title: Hello\n  - title: Body\n    bullets: [a, b]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadBuildConfig(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			require.Len(t, config.Slides, 2)
			assert.Equal(t, "Hello", config.Slides[0].Title)
			assert.Equal(t, entities.SlideTypeTitle, config.Slides[0].ResolvedType())
			assert.Equal(t, entities.SlideTypeContent, config.Slides[1].ResolvedType())
			assert.Equal(t, []string{"a", "b"}, config.Slides[1].Bullets)
		})
	}

	t.Run("brand kit path is relative to the file", func(t *testing.T) {
		path := writeFile(t, "deck.json", `{"brand_kit": "kits/acme.json", "slides_content": [{}]}`)
		config, err := LoadBuildConfig(path)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(filepath.Dir(path), "kits", "acme.json"), config.BrandKit.Path)
	})

	t.Run("inline brand kit", func(t *testing.T) {
		path := writeFile(t, "deck.yaml", "brand_kit:\n  name: Acme\n  primary_colors: ['#112233']\nslides_content:\n  - title: x\n")
		config, err := LoadBuildConfig(path)
		require.NoError(t, err)
		require.NotNil(t, config.BrandKit.Kit)
		assert.Equal(t, "Acme", config.BrandKit.Kit.Name)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := LoadBuildConfig(filepath.Join(t.TempDir(), "none.json"))
		assert.ErrorContains(t, err, "file not found")

		_, err = LoadBuildConfig(writeFile(t, "deck.txt", "[]"))
		assert.ErrorContains(t, err, "unsupported slide file format")

		_, err = LoadBuildConfig(writeFile(t, "deck.json", "{not json"))
		assert.ErrorContains(t, err, "parsing")

		_, err = LoadBuildConfig(writeFile(t, "deck.yaml", ""))
		assert.Error(t, err)
	})
}

func TestLoadSlides(t *testing.T) {
	slides, err := LoadSlides(writeFile(t, "deck.json", `[{"type": "quote", "quote": "Q", "notes": "say it"}]`))
	require.NoError(t, err)
	require.Len(t, slides, 1)
	assert.Equal(t, "Q", slides[0].Quote)
	assert.Equal(t, "say it", slides[0].Notes)
}

func TestLoadValues(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		values, err := LoadValues(writeFile(t, "values.json", `{"quarter": "Q3", "year": 2026, "ratio": 1.5, "empty": null}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"quarter": "Q3", "year": "2026", "ratio": "1.5", "empty": ""}, values)
	})

	t.Run("yaml", func(t *testing.T) {
		values, err := LoadValues(writeFile(t, "values.yaml", "sermon_title: Grace\nscripture_reference: John 3:16\n"))
		require.NoError(t, err)
		assert.Equal(t, "Grace", values["sermon_title"])
		assert.Equal(t, "John 3:16", values["scripture_reference"])
	})

	t.Run("nested values rejected", func(t *testing.T) {
		_, err := LoadValues(writeFile(t, "values.json", `{"a": {"b": 1}}`))
		assert.ErrorContains(t, err, "must be a scalar")
	})
}

func TestParseAssignments(t *testing.T) {
	values, err := ParseAssignments([]string{"quarter=Q4", "title=A = B", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"quarter": "Q4", "title": "A = B", "empty": ""}, values)
	assert.Equal(t, []string{"empty", "quarter", "title"}, SortedKeys(values))

	_, err = ParseAssignments([]string{"novalue"})
	assert.Error(t, err)
	_, err = ParseAssignments([]string{"=x"})
	assert.Error(t, err)
}
