package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

const generatorSystemPrompt = "You are an expert presentation designer creating a professional PowerPoint presentation."

var typeGuidance = map[entities.PresentationType]string{
	entities.PresentationSermon: `This is a SERMON presentation. Structure it with:
- Opening with scripture reference
- 2-3 main points with biblical application
- Practical takeaways
- Closing prayer points`,
	entities.PresentationBusiness: `This is a BUSINESS presentation. Structure it with:
- Executive summary/overview
- Key metrics or data points
- Main content organized logically
- Action items and next steps`,
	entities.PresentationEducation: `This is an EDUCATIONAL presentation. Structure it with:
- Learning objectives
- Core concepts broken down clearly
- Examples and illustrations
- Summary and key takeaways`,
	entities.PresentationGeneral: `This is a GENERAL presentation. Structure it professionally with:
- Clear introduction
- Logically organized main content
- Supporting details
- Conclusion with key points`,
}

const promptFormat = `**Topic:** %s

**User's Content/Notes:**
%s

**Instructions:**
%s for this presentation.
%s

Analyze the user's content and create a well-structured presentation. Return ONLY a JSON array of slide objects.

**Available Slide Types:**
1. "title" - Title slide with main title and subtitle
2. "content" - Content slide with title and bullet points
3. "section" - Section divider with large title and optional section number
4. "two_column" - Two-column layout with headers and items
5. "quote" - Large quote or key message
6. "stats" - Big numbers/statistics highlight

**JSON Format:**
` + "```json" + `
[
  {"type": "title", "title": "Main Presentation Title", "subtitle": "Subtitle or tagline", "notes": "Speaker notes for this slide"},
  {"type": "content", "title": "Slide Title", "bullets": ["First bullet point", "Second bullet point", "Third bullet point"], "notes": "Speaker notes explaining this slide"},
  {"type": "section", "title": "Section Name", "section_number": "01"},
  {"type": "two_column", "title": "Comparison or Split Content", "left_header": "Before", "left_items": ["Point 1", "Point 2"], "right_header": "After", "right_items": ["Result 1", "Result 2"], "notes": "Speaker notes"},
  {"type": "quote", "quote": "A memorable line", "attribution": "Speaker", "notes": "Speaker notes"},
  {"type": "stats", "title": "By the Numbers", "stats": ["Revenue: $4.2M", "Growth: 43%%", "Customers: 1,200"], "notes": "Speaker notes"}
]
` + "```" + `

**Quality Guidelines:**
- Make titles concise and impactful (5-8 words max)
- Bullet points should be brief (one line each)
- Use parallel structure in bullets
- Add substantive speaker notes for each slide
- Include opening and closing slides
- Break complex topics into multiple slides
- Use section slides to organize major topics

Return ONLY the JSON array, no other text or explanation.`

// GenerationService turns free-form notes into slides through a language model
type GenerationService struct {
	model     ports.LanguageModel
	sanitizer ports.TextSanitizer
	logger    ports.Logger
}

// NewGenerationService creates a model-backed slide generator
func NewGenerationService(model ports.LanguageModel, sanitizer ports.TextSanitizer, logger ports.Logger) *GenerationService {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &GenerationService{model: model, sanitizer: sanitizer, logger: logger}
}

// Generate prompts the model and parses its reply into slides
func (s *GenerationService) Generate(ctx context.Context, req entities.GenerationRequest) ([]entities.SlideContent, error) {
	req = truncateTopic(req, s.logger)
	if err := req.Validate(); err != nil {
		return nil, entities.NewBuildError(entities.ErrorTypeValidation, "invalid generation request", err)
	}
	if s.model == nil {
		return nil, entities.NewBuildError(entities.ErrorTypeConfiguration, "no language model configured", nil)
	}
	if s.sanitizer != nil {
		req.Topic = s.sanitizer.Sanitize(req.Topic)
		req.Content = s.sanitizer.Sanitize(req.Content)
	}

	system, prompt := BuildPrompt(req)
	s.logger.Debug("Requesting %s slides for %q", slideCountLabel(req.NumSlides), req.Topic)

	reply, err := s.model.Complete(ctx, system, prompt)
	if err != nil {
		if entities.IsBuildErrorType(err, entities.ErrorTypeConfiguration) {
			return nil, err
		}
		return nil, entities.NewBuildError(entities.ErrorTypeGeneration, "language model request failed", err)
	}

	slides, err := ParseSlides(reply)
	if err != nil {
		return nil, err
	}
	if s.sanitizer != nil {
		for i := range slides {
			slides[i] = slides[i].MapText(s.sanitizer.Sanitize)
		}
	}

	s.logger.Info("Generated %d slides", len(slides))
	return slides, nil
}

// BuildPrompt returns the system and user prompt for req
func BuildPrompt(req entities.GenerationRequest) (string, string) {
	countGuidance := "Create an appropriate number of slides (typically 8-15)"
	if req.NumSlides > 0 {
		countGuidance = fmt.Sprintf("Create approximately %d slides", req.NumSlides)
	}
	guidance := typeGuidance[req.PresentationType.Normalize()]
	return generatorSystemPrompt, fmt.Sprintf(promptFormat, req.Topic, req.Content, countGuidance, guidance)
}

// generatedSlide tolerates numeric section numbers in model output
type generatedSlide struct {
	entities.SlideContent
	SectionNumber interface{} `json:"section_number"`
}

// ParseSlides extracts the JSON array between the first '[' and the last ']'
func ParseSlides(reply string) ([]entities.SlideContent, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start == -1 || end == -1 || end < start {
		return nil, entities.NewBuildError(entities.ErrorTypeGeneration, "No JSON array found in response", nil)
	}

	var raw []generatedSlide
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil, entities.NewBuildError(entities.ErrorTypeGeneration, "Failed to parse AI response as JSON", err)
	}

	slides := make([]entities.SlideContent, len(raw))
	for i, g := range raw {
		slide := g.SlideContent
		slide.Type = slide.Type.Normalize()
		switch v := g.SectionNumber.(type) {
		case string:
			slide.SectionNumber = v
		case float64:
			slide.SectionNumber = strconv.FormatFloat(v, 'f', -1, 64)
		}
		slides[i] = slide
	}
	return slides, nil
}

func slideCountLabel(n int) string {
	if n <= 0 {
		return "8-15"
	}
	return strconv.Itoa(n)
}

var _ ports.SlideGenerator = (*GenerationService)(nil)

// truncateTopic cuts an over-long topic to the maximum length and warns about it
func truncateTopic(req entities.GenerationRequest, logger ports.Logger) entities.GenerationRequest {
	req, cut := req.TruncateTopic()
	if cut {
		logger.Warn("Topic is very long; truncating to %d characters", entities.MaxTopicLength)
	}
	return req
}
