package rooms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoomLabel(t *testing.T) {
	tests := []struct {
		label string
		want  Kind
		ok    bool
	}{
		{"Quadro", Quad, true},
		{"QUAD", Quad, true},
		{"4", Quad, true},
		{"квадро 4", Quad, true},
		{"Triple", Triple, true},
		{"TRPL", Triple, true},
		{"3", Triple, true},
		{"Double", Double, true},
		{"DBL", Double, true},
		{"2", Double, true},
		{"Single", Single, true},
		{"SGL", Single, true},
		{"1", Single, true},
		{"Quintuple", Quin, true},
		{"5", Quin, true},
		{"INF", Infant, true},
		{"", "", false},
		{"   ", "", false},
		{"suite", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRoomLabel(tt.label)
		assert.Equal(t, tt.ok, ok, "label %q", tt.label)
		if tt.ok {
			assert.Equal(t, tt.want, got, "label %q", tt.label)
		}
	}
}

func TestParseRoomLabel_DigitBeatsLaterKeywords(t *testing.T) {
	// "DBL+1" mentions both a double keyword and the digit 1; the match
	// order must keep it a double.
	got, ok := ParseRoomLabel("DBL+1")
	assert.True(t, ok)
	assert.Equal(t, Double, got)
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, 1, Capacity(Single))
	assert.Equal(t, 2, Capacity(Double))
	assert.Equal(t, 3, Capacity(Triple))
	assert.Equal(t, 4, Capacity(Quad))
	assert.Equal(t, 5, Capacity(Quin))
	assert.Equal(t, 1, Capacity(Infant))
}

func TestFallbackChain(t *testing.T) {
	assert.Equal(t, []Kind{Quad, Double}, FallbackChain(Quad))
	assert.Equal(t, []Kind{Triple, Quad, Double}, FallbackChain(Triple))
	assert.Equal(t, []Kind{Double, Quad, Triple}, FallbackChain(Double))
	assert.Equal(t, []Kind{Single, Double, Triple}, FallbackChain(Single))
	assert.Equal(t, []Kind{Quin, Quad, Double}, FallbackChain(Quin))

	// Kinds without an explicit chain fall back to themselves only.
	assert.Equal(t, []Kind{Infant}, FallbackChain(Infant))
}

func TestLabelCapacity(t *testing.T) {
	assert.Equal(t, 4, LabelCapacity("Quadro"))
	assert.Equal(t, 2, LabelCapacity("dbl"))
	assert.Equal(t, 1, LabelCapacity("mystery"))
}
