package services

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

var fieldPattern = regexp.MustCompile(`\{([^}]+)\}`)

type (
	sc = entities.SlideContent
	sk = entities.TemplateSkeleton
)

func items(v ...string) []string { return v }

var templateLibrary = []sk{
	{
		ID: "sermon", Name: "Sunday Sermon", Category: entities.CategoryChurch,
		Description: "Full sermon with scripture, points, and application", Theme: "church_warmth",
		Slides: []sc{
			{Type: entities.SlideTypeTitle, Title: "{sermon_title}", Subtitle: "{scripture_reference}\n{date}"},
			{Type: entities.SlideTypeSection, Title: "Opening Scripture", SectionNumber: "01"},
			{Type: entities.SlideTypeContent, Title: "Context & Background", Bullets: items(
				"Historical setting: {context_1}",
				"Cultural significance: {context_2}",
				"Why this matters today: {context_3}")},
			{Type: entities.SlideTypeSection, Title: "Main Point 1: {point_1_title}", SectionNumber: "02"},
			{Type: entities.SlideTypeContent, Title: "{point_1_title}", Bullets: items(
				"{point_1_detail_1}", "{point_1_detail_2}", "{point_1_detail_3}")},
			{Type: entities.SlideTypeSection, Title: "Main Point 2: {point_2_title}", SectionNumber: "03"},
			{Type: entities.SlideTypeContent, Title: "{point_2_title}", Bullets: items(
				"{point_2_detail_1}", "{point_2_detail_2}", "{point_2_detail_3}")},
			{Type: entities.SlideTypeContent, Title: "Practical Application", Bullets: items(
				"This week: {application_1}",
				"In your relationships: {application_2}",
				"Long-term growth: {application_3}")},
			{Type: entities.SlideTypeSection, Title: "Closing Prayer", SectionNumber: "04"},
		},
	},
	{
		ID: "church_board", Name: "Church Board Meeting", Category: entities.CategoryChurch,
		Description: "Leadership meeting with ministry updates and decisions", Theme: "church_warmth",
		Slides: []sc{
			{Type: entities.SlideTypeTitle, Title: "Board Meeting", Subtitle: "{church_name}\n{meeting_date}"},
			{Type: entities.SlideTypeContent, Title: "Agenda", Bullets: items(
				"Opening prayer & attendance", "Ministry updates", "Financial report", "Old business", "New business")},
			{Type: entities.SlideTypeSection, Title: "Ministry Updates", SectionNumber: "01"},
			{Type: entities.SlideTypeTwoColumn, Title: "Attendance & Engagement",
				LeftHeader: "This Month", LeftItems: items("Attendance: {attendance}", "Visitors: {visitors}", "Groups: {groups}"),
				RightHeader: "Previous", RightItems: items("Attendance: {prev_attendance}", "Visitors: {prev_visitors}", "Groups: {prev_groups}")},
			{Type: entities.SlideTypeContent, Title: "Financial Summary", Bullets: items(
				"Income YTD: {income}", "Expenses YTD: {expenses}", "Budget status: {budget_status}")},
			{Type: entities.SlideTypeContent, Title: "Decisions & Action Items", Bullets: items(
				"{decision_1}", "{action_item_1}", "{action_item_2}")},
		},
	},
	{
		ID: "staff_meeting", Name: "Church Staff Meeting", Category: entities.CategoryChurch,
		Description: "Weekly staff coordination and prayer", Theme: "church_warmth",
		Slides: []sc{
			{Type: entities.SlideTypeTitle, Title: "Staff Meeting", Subtitle: "{church_name}\n{week_of}"},
			{Type: entities.SlideTypeContent, Title: "This Week", Bullets: items(
				"Sunday services: {services}", "Programs: {programs}", "Events: {events}")},
			{Type: entities.SlideTypeTwoColumn, Title: "Sunday Services",
				LeftHeader: "This Sunday", LeftItems: items("Theme: {theme}", "Worship: {worship}", "Tech: {tech}"),
				RightHeader: "Next Sunday", RightItems: items("Theme: {next_theme}", "Worship: {next_worship}", "Tech: {next_tech}")},
			{Type: entities.SlideTypeContent, Title: "Prayer Requests", Bullets: items(
				"{prayer_1}", "{prayer_2}", "{prayer_3}")},
		},
	},
	{
		ID: "quarterly_review", Name: "Quarterly Business Review", Category: entities.CategoryBusiness,
		Description: "Executive QBR with metrics and highlights", Theme: "software_professional",
		Slides: []sc{
			{Type: entities.SlideTypeTitle, Title: "{quarter} Business Review", Subtitle: "{company_name}\n{year}"},
			{Type: entities.SlideTypeContent, Title: "Agenda", Bullets: items(
				"Executive Summary", "Key Metrics", "Highlights", "Priorities")},
			{Type: entities.SlideTypeContent, Title: "Key Metrics", Bullets: items(
				"Revenue: {revenue}", "Growth: {growth}%", "Customers: {customers}")},
			{Type: entities.SlideTypeTwoColumn, Title: "Performance",
				LeftHeader: "Wins", LeftItems: items("{win_1}", "{win_2}"),
				RightHeader: "Challenges", RightItems: items("{challenge_1}", "{challenge_2}")},
			{Type: entities.SlideTypeContent, Title: "{quarter} Priorities", Bullets: items(
				"{priority_1}", "{priority_2}", "{priority_3}")},
		},
	},
	{
		ID: "sales_pitch", Name: "Sales Pitch Deck", Category: entities.CategoryBusiness,
		Description: "Product pitch for prospects", Theme: "startup_vibrant",
		Slides: []sc{
			{Type: entities.SlideTypeTitle, Title: "{product_name}", Subtitle: "{tagline}"},
			{Type: entities.SlideTypeContent, Title: "The Problem", Bullets: items("{pain_1}", "{pain_2}", "{pain_3}")},
			{Type: entities.SlideTypeContent, Title: "Our Solution", Bullets: items("{benefit_1}", "{benefit_2}", "{benefit_3}")},
			{Type: entities.SlideTypeContent, Title: "Pricing", Bullets: items("{price_1}", "{price_2}", "{price_3}")},
		},
	},
	{
		ID: "investor_pitch", Name: "Investor Pitch", Category: entities.CategoryBusiness,
		Description: "Fundraising deck", Theme: "executive_minimal",
		Slides: []sc{
			{Type: entities.SlideTypeTitle, Title: "{company_name}", Subtitle: "{tagline}"},
			{Type: entities.SlideTypeContent, Title: "Market Opportunity", Bullets: items(
				"Market size: {market_size}", "Growth rate: {growth_rate}", "Target segment: {target}")},
			{Type: entities.SlideTypeContent, Title: "The Ask", Bullets: items(
				"Raising: {raise_amount}", "Valuation: {valuation}", "Use of funds: {use_1}, {use_2}")},
		},
	},
	{
		ID: "campaign_review", Name: "Marketing Campaign Review", Category: entities.CategoryMarketing,
		Description: "Campaign performance analysis", Theme: "marketing_dynamic",
		Slides: []sc{
			{Type: entities.SlideTypeTitle, Title: "Campaign Review", Subtitle: "{campaign_name}"},
			{Type: entities.SlideTypeContent, Title: "Overview", Bullets: items(
				"Objective: {objective}", "Budget: {budget}", "Duration: {duration}")},
			{Type: entities.SlideTypeContent, Title: "Results", Bullets: items(
				"Impressions: {impressions}", "Engagement: {engagement}", "ROI: {roi}")},
		},
	},
	{
		ID: "product_launch", Name: "Product Launch", Category: entities.CategoryMarketing,
		Description: "Go-to-market strategy", Theme: "creative_bold",
		Slides: []sc{
			{Type: entities.SlideTypeTitle, Title: "{product_name}", Subtitle: "Product Launch Plan"},
			{Type: entities.SlideTypeContent, Title: "Product Overview", Bullets: items(
				"{description}", "Target: {target}", "Launch: {date}")},
			{Type: entities.SlideTypeContent, Title: "GTM Strategy", Bullets: items("{channel_1}", "{channel_2}", "{channel_3}")},
		},
	},
	{
		ID: "course_overview", Name: "Course Overview", Category: entities.CategoryEducation,
		Description: "Course syllabus introduction", Theme: "education_friendly",
		Slides: []sc{
			{Type: entities.SlideTypeTitle, Title: "{course_name}", Subtitle: "{instructor_name}"},
			{Type: entities.SlideTypeContent, Title: "Learning Objectives", Bullets: items("{objective_1}", "{objective_2}", "{objective_3}")},
			{Type: entities.SlideTypeContent, Title: "Course Topics", Bullets: items("{topic_1}", "{topic_2}", "{topic_3}")},
		},
	},
	{
		ID: "policy_briefing", Name: "Policy Briefing", Category: entities.CategoryGovernment,
		Description: "Policy proposal presentation", Theme: "software_professional",
		Slides: []sc{
			{Type: entities.SlideTypeTitle, Title: "{policy_name}", Subtitle: "Policy Briefing"},
			{Type: entities.SlideTypeContent, Title: "Executive Summary", Bullets: items("{summary_1}", "{summary_2}", "{summary_3}")},
			{Type: entities.SlideTypeContent, Title: "Key Provisions", Bullets: items("{provision_1}", "{provision_2}", "{provision_3}")},
		},
	},
}

// TemplateService serves the built-in template library
type TemplateService struct {
	byID map[string]int
}

// NewTemplateService indexes the library
func NewTemplateService() *TemplateService {
	s := &TemplateService{byID: make(map[string]int, len(templateLibrary))}
	for i, t := range templateLibrary {
		s.byID[t.ID] = i
	}
	return s
}

// List returns every skeleton in library order
func (s *TemplateService) List() []entities.TemplateSkeleton {
	out := make([]entities.TemplateSkeleton, len(templateLibrary))
	for i, t := range templateLibrary {
		out[i] = t.Clone()
	}
	return out
}

// ListByCategory returns the skeletons in one category
func (s *TemplateService) ListByCategory(category string) []entities.TemplateSkeleton {
	var out []entities.TemplateSkeleton
	for _, t := range templateLibrary {
		if t.Category == category {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Categories returns the sorted set of categories
func (s *TemplateService) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range templateLibrary {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Get returns a copy of the skeleton with the given id
func (s *TemplateService) Get(id string) (entities.TemplateSkeleton, bool) {
	i, ok := s.byID[id]
	if !ok {
		return entities.TemplateSkeleton{}, false
	}
	return templateLibrary[i].Clone(), true
}

// FieldNames returns the sorted, unique placeholder names of a skeleton.
// Only title, subtitle, bullets and column items are scanned.
func (s *TemplateService) FieldNames(skeleton entities.TemplateSkeleton) []string {
	seen := make(map[string]bool)
	for _, sl := range skeleton.Slides {
		for _, text := range sl.TextFields() {
			for _, m := range fieldPattern.FindAllStringSubmatch(text, -1) {
				seen[m[1]] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Substitute replaces every supplied {field} token in every text attribute.
// Tokens without a supplied value stay in the output unchanged.
func (s *TemplateService) Substitute(skeleton entities.TemplateSkeleton, values map[string]string) []entities.SlideContent {
	pairs := make([]string, 0, len(values)*2)
	for field, value := range values {
		pairs = append(pairs, "{"+field+"}", TruncateRunes(value, entities.MaxFieldValueLength))
	}
	replacer := strings.NewReplacer(pairs...)

	out := make([]entities.SlideContent, len(skeleton.Slides))
	for i, sl := range skeleton.Slides {
		out[i] = sl.MapText(replacer.Replace)
	}
	return out
}

// FieldLabel turns a field name such as point_1_title into "Point 1 Title"
func FieldLabel(name string) string {
	return DisplayName(name)
}

// TruncateRunes cuts s to at most n runes
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

var _ ports.TemplateLibrary = (*TemplateService)(nil)
