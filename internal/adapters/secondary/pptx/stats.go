package pptx

import (
	"regexp"
	"strings"
)

const (
	maxStats       = 3
	statSplitRunes = 20
)

// statNumberPattern requires at least one digit. A unit letter counts only
// when it ends the word, so "200ms" keeps its unit in the label.
var statNumberPattern = regexp.MustCompile(`[$€£]?[\d,.]*\d[\d,.]*(?:%|[MKBmkb]\b)?`)

// ParseStat splits a stat line into its headline value and label.
// "Revenue: $4.2M" yields ("$4.2M", "Revenue") and "43% retention"
// yields ("43%", "retention"). Text with neither shape is split at 20 runes.
func ParseStat(text string) (value, label string) {
	text = strings.TrimSpace(text)

	if before, after, ok := strings.Cut(text, ":"); ok {
		return strings.TrimSpace(after), strings.TrimSpace(before)
	}

	if loc := statNumberPattern.FindStringIndex(text); loc != nil {
		value = text[loc[0]:loc[1]]
		label = strings.Join(strings.Fields(text[:loc[0]]+" "+text[loc[1]:]), " ")
		return value, label
	}

	runes := []rune(text)
	if len(runes) <= statSplitRunes {
		return text, ""
	}
	return string(runes[:statSplitRunes]), strings.TrimSpace(string(runes[statSplitRunes:]))
}

// StatLines returns at most three stat sources, falling back to bullets
func StatLines(stats, bullets []string) []string {
	lines := stats
	if len(lines) == 0 {
		lines = bullets
	}
	if len(lines) > maxStats {
		lines = lines[:maxStats]
	}
	return lines
}
