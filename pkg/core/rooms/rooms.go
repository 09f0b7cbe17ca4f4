package rooms

import "strings"

// Kind is a fixed-capacity room category as labelled in the manifest sheets.
type Kind string

const (
	Single Kind = "sgl"
	Double Kind = "dbl"
	Triple Kind = "trpl"
	Quad   Kind = "quad"
	Quin   Kind = "quin"
	Infant Kind = "inf"
)

// capacities maps each kind to its bed count. Infant rows hold one dependent
// but consume no independent room capacity.
var capacities = map[Kind]int{
	Single: 1,
	Double: 2,
	Triple: 3,
	Quad:   4,
	Quin:   5,
	Infant: 1,
}

// fallbackChains lists, per kind, the kinds to probe when the exact kind has
// no free slot. The order is fixed and deliberate: it reproduces how the
// operators historically resolved overflow, so it is a lookup table rather
// than anything derived from capacities.
var fallbackChains = map[Kind][]Kind{
	Quad:   {Quad, Double},
	Triple: {Triple, Quad, Double},
	Double: {Double, Quad, Triple},
	Single: {Single, Double, Triple},
	Quin:   {Quin, Quad, Double},
}

// Capacity returns the number of beds in a room of the given kind.
func Capacity(k Kind) int {
	return capacities[k]
}

// FallbackChain returns the ordered list of kinds to probe for the given
// target kind, starting with the kind itself. Kinds without a chain fall
// back to themselves only.
func FallbackChain(k Kind) []Kind {
	if chain, ok := fallbackChains[k]; ok {
		return chain
	}
	return []Kind{k}
}

// ParseRoomLabel matches a free-text room label ("Quadro", "4", "DBL+1")
// against the known kinds. It returns ok=false for unrecognized text;
// callers dealing with merged cells must then inherit the previous row's
// kind themselves — the parser never guesses.
func ParseRoomLabel(text string) (Kind, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return "", false
	}
	switch {
	case strings.Contains(t, "quad") || strings.Contains(t, "4"):
		return Quad, true
	case strings.Contains(t, "trip") || strings.Contains(t, "trpl") || strings.Contains(t, "3"):
		return Triple, true
	case strings.Contains(t, "doub") || strings.Contains(t, "dbl") || strings.Contains(t, "2"):
		return Double, true
	case strings.Contains(t, "sing") || strings.Contains(t, "sgl") || strings.Contains(t, "1"):
		return Single, true
	case strings.Contains(t, "quin") || strings.Contains(t, "5"):
		return Quin, true
	case strings.Contains(t, "inf"):
		return Infant, true
	}
	return "", false
}

// LabelCapacity derives the bed count straight from a raw label, defaulting
// to 1 when the label is unrecognized. Used where the sheet text is the only
// source of truth for a run's span.
func LabelCapacity(text string) int {
	if k, ok := ParseRoomLabel(text); ok {
		return Capacity(k)
	}
	return 1
}
