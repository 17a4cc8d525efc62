package entities

// Template categories in the built-in library
const (
	CategoryChurch     = "church"
	CategoryBusiness   = "business"
	CategoryMarketing  = "marketing"
	CategoryEducation  = "education"
	CategoryGovernment = "government"
)

// TemplateSkeleton is a reusable slide sequence whose text holds {field} placeholders
type TemplateSkeleton struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Theme       string         `json:"theme"`
	Slides      []SlideContent `json:"slides"`
}

// Clone returns a deep copy of the skeleton
func (t TemplateSkeleton) Clone() TemplateSkeleton {
	c := t
	c.Slides = CloneSlides(t.Slides)
	return c
}
