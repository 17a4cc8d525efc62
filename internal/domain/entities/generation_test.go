package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresentationType_Normalize(t *testing.T) {
	assert.Equal(t, PresentationSermon, PresentationType("Sermon").Normalize())
	assert.Equal(t, PresentationBusiness, PresentationType("business").Normalize())
	assert.Equal(t, PresentationEducation, PresentationType("EDUCATION").Normalize())
	assert.Equal(t, PresentationGeneral, PresentationType("").Normalize())
	assert.Equal(t, PresentationGeneral, PresentationType("keynote").Normalize())
}

func TestGenerationRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       GenerationRequest
		wantErr   bool
		wantQuick bool
	}{
		{name: "valid", req: GenerationRequest{Topic: "Budget", NumSlides: 10}},
		{name: "blank topic", req: GenerationRequest{Topic: "  ", NumSlides: 10}, wantErr: true, wantQuick: true},
		{name: "long topic is left to truncation", req: GenerationRequest{Topic: strings.Repeat("a", MaxTopicLength+1), NumSlides: 10}},
		{name: "topic at limit", req: GenerationRequest{Topic: strings.Repeat("ü", MaxTopicLength), NumSlides: 10}},
		{name: "negative slides", req: GenerationRequest{Topic: "x", NumSlides: -1}, wantErr: true, wantQuick: true},
		{name: "zero slides is model choice", req: GenerationRequest{Topic: "x"}, wantQuick: true},
		{name: "quick upper bound", req: GenerationRequest{Topic: "x", NumSlides: 31}, wantQuick: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr {
				assert.Error(t, tt.req.Validate())
			} else {
				assert.NoError(t, tt.req.Validate())
			}
			if tt.wantQuick {
				assert.Error(t, tt.req.ValidateQuick())
			} else {
				assert.NoError(t, tt.req.ValidateQuick())
			}
		})
	}
}

func TestGenerationRequest_TruncateTopic(t *testing.T) {
	t.Run("short topic is only trimmed", func(t *testing.T) {
		req, cut := GenerationRequest{Topic: "  Budget  "}.TruncateTopic()
		assert.False(t, cut)
		assert.Equal(t, "Budget", req.Topic)
	})

	t.Run("long topic is cut by runes", func(t *testing.T) {
		req, cut := GenerationRequest{Topic: strings.Repeat("ü", MaxTopicLength+25), NumSlides: 7}.TruncateTopic()
		assert.True(t, cut)
		assert.Equal(t, strings.Repeat("ü", MaxTopicLength), req.Topic)
		assert.Equal(t, 7, req.NumSlides)
	})

	t.Run("topic at limit is kept", func(t *testing.T) {
		topic := strings.Repeat("a", MaxTopicLength)
		req, cut := GenerationRequest{Topic: topic}.TruncateTopic()
		assert.False(t, cut)
		assert.Equal(t, topic, req.Topic)
	})
}
