package pptx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value string
		label string
	}{
		{name: "colon split", input: "Revenue: $4.2M", value: "$4.2M", label: "Revenue"},
		{name: "colon split keeps later colons", input: "Uptime: 99.9%: SLA", value: "99.9%: SLA", label: "Uptime"},
		{name: "numeric pattern", input: "43% retention", value: "43%", label: "retention"},
		{name: "numeric pattern mid sentence", input: "Served 1,200 families", value: "1,200", label: "Served families"},
		{name: "currency with suffix", input: "€3.5B raised", value: "€3.5B", label: "raised"},
		{name: "suffix at end of text", input: "Raised $12M", value: "$12M", label: "Raised"},
		{name: "unit word keeps its letters", input: "200ms latency", value: "200", label: "ms latency"},
		{name: "unit word after k", input: "10kg saved", value: "10", label: "kg saved"},
		{name: "punctuation alone is not a number", input: "Hello, world. Again", value: "Hello, world. Again", label: ""},
		{name: "fixed split", input: "An unusually long statement without digits", value: "An unusually long st", label: "atement without digits"},
		{name: "empty", input: "", value: "", label: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, label := ParseStat(tt.input)
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestStatLines(t *testing.T) {
	t.Run("stats win over bullets", func(t *testing.T) {
		lines := StatLines([]string{"A: 1"}, []string{"B: 2"})
		assert.Equal(t, []string{"A: 1"}, lines)
	})

	t.Run("bullets are the fallback", func(t *testing.T) {
		lines := StatLines(nil, []string{"1", "2", "3", "4"})
		assert.Equal(t, []string{"1", "2", "3"}, lines)
	})

	t.Run("truncates to three", func(t *testing.T) {
		lines := StatLines([]string{"a", "b", "c", "d", "e"}, nil)
		assert.Len(t, lines, maxStats)
	})

	t.Run("nothing to show", func(t *testing.T) {
		assert.Empty(t, StatLines(nil, nil))
	})
}
