package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBrandKitRef_JSON(t *testing.T) {
	t.Run("path form", func(t *testing.T) {
		var cfg BuildConfig
		require.NoError(t, json.Unmarshal([]byte(`{"brand_kit": "brand.json", "slides_content": [{"type": "title"}]}`), &cfg))
		assert.Equal(t, "brand.json", cfg.BrandKit.Path)
		assert.Nil(t, cfg.BrandKit.Kit)
	})

	t.Run("inline form", func(t *testing.T) {
		var cfg BuildConfig
		require.NoError(t, json.Unmarshal([]byte(`{"brand_kit": {"name": "Acme", "primary_colors": ["#112233"]}, "slides_content": []}`), &cfg))
		require.NotNil(t, cfg.BrandKit.Kit)
		assert.Equal(t, "Acme", cfg.BrandKit.Kit.Name)
	})

	t.Run("absent", func(t *testing.T) {
		var cfg BuildConfig
		require.NoError(t, json.Unmarshal([]byte(`{"brand_kit": null}`), &cfg))
		assert.True(t, cfg.BrandKit.IsZero())
	})

	t.Run("marshal prefers the path", func(t *testing.T) {
		data, err := json.Marshal(BrandKitRef{Path: "b.yaml", Kit: &BrandKit{Name: "x"}})
		require.NoError(t, err)
		assert.JSONEq(t, `"b.yaml"`, string(data))
	})
}

func TestBrandKitRef_YAML(t *testing.T) {
	var cfg BuildConfig
	doc := "theme: church_warmth\nbrand_kit:\n  name: Grace\n  heading_font: Georgia\nslides_content:\n  - type: title\n    title: Hello\n"
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))

	require.NotNil(t, cfg.BrandKit.Kit)
	assert.Equal(t, "Georgia", cfg.BrandKit.Kit.HeadingFont)
	require.Len(t, cfg.Slides, 1)
	assert.Equal(t, "Hello", cfg.Slides[0].Title)

	var byPath BuildConfig
	require.NoError(t, yaml.Unmarshal([]byte("brand_kit: kits/grace.yaml\n"), &byPath))
	assert.Equal(t, "kits/grace.yaml", byPath.BrandKit.Path)
}

func TestBuildConfig_Validate(t *testing.T) {
	var nilConfig *BuildConfig
	assert.Error(t, nilConfig.Validate())
	assert.Error(t, (&BuildConfig{}).Validate())
	assert.NoError(t, (&BuildConfig{Slides: []SlideContent{{}}}).Validate())

	bad := &BuildConfig{
		Slides:   []SlideContent{{}},
		BrandKit: BrandKitRef{Kit: &BrandKit{PrimaryColors: []string{"zz"}}},
	}
	assert.ErrorContains(t, bad.Validate(), "brand kit")
}

func TestBuildError(t *testing.T) {
	cause := assert.AnError
	err := &BuildError{Type: ErrorTypeTemplate, Message: "Template error: bad", Details: "/x.pptx", Cause: cause}

	assert.Equal(t, "template error: Template error: bad - /x.pptx: "+cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsBuildErrorType(err, ErrorTypeTemplate))
	assert.False(t, IsBuildErrorType(err, ErrorTypeValidation))
	assert.False(t, IsBuildErrorType(cause, ErrorTypeTemplate))

	assert.Equal(t, "validation error: empty", NewBuildError(ErrorTypeValidation, "empty", nil).Error())
}
