package pptx

import (
	"strings"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

// defaultLayoutIndex is the conventional blank layout of the stock master
const defaultLayoutIndex = 6

type layoutBucket int

const (
	bucketTitle layoutBucket = iota
	bucketContent
	bucketSection
	bucketBlank
)

// LayoutResolver maps slide types onto the layouts of a base template
type LayoutResolver struct {
	names   []string
	buckets map[layoutBucket]int
}

// NewLayoutResolver catalogs layout names by substring. When several
// layouts match a bucket the last one wins.
func NewLayoutResolver(names []string) *LayoutResolver {
	r := &LayoutResolver{
		names:   append([]string(nil), names...),
		buckets: make(map[layoutBucket]int),
	}
	for i, name := range names {
		lower := strings.ToLower(name)
		switch {
		case strings.Contains(lower, "title") && !strings.Contains(lower, "content"):
			r.buckets[bucketTitle] = i
		case strings.Contains(lower, "content"):
			r.buckets[bucketContent] = i
		case strings.Contains(lower, "section"):
			r.buckets[bucketSection] = i
		case strings.Contains(lower, "blank"):
			r.buckets[bucketBlank] = i
		}
	}
	return r
}

// Lookup returns the layout index for a slide type, falling back to the
// blank layout and then to index 6.
func (r *LayoutResolver) Lookup(slideType entities.SlideType) int {
	var bucket layoutBucket
	switch slideType {
	case entities.SlideTypeTitle:
		bucket = bucketTitle
	case entities.SlideTypeSection:
		bucket = bucketSection
	case entities.SlideTypeContent:
		bucket = bucketContent
	default:
		bucket = bucketBlank
	}

	if i, ok := r.buckets[bucket]; ok {
		return i
	}
	if i, ok := r.buckets[bucketBlank]; ok {
		return i
	}
	return defaultLayoutIndex
}

// LayoutName returns the name at index, or "" when out of range
func (r *LayoutResolver) LayoutName(index int) string {
	if index < 0 || index >= len(r.names) {
		return ""
	}
	return r.names[index]
}
