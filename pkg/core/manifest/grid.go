package manifest

import "strings"

// Grid is one worksheet snapshot: ordered rows of cell text. Everything is
// text, numbers included — the sheets API hands values back as strings and
// the engine never needs typed cells. Indices are 0-based internally and
// converted to 1-based sheet row numbers only at the boundary.
type Grid [][]string

// Cell returns the cell at (row, col), or "" when the row is ragged or the
// indices fall outside the snapshot.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Clone deep-copies the grid so callers can overlay reservations without
// touching the snapshot they were handed.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Normalize collapses a cell value for matching: newlines to spaces,
// trimmed, lowercased.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// rowText joins the first n cells of a row into one normalized string.
func rowText(row []string, n int) string {
	if len(row) > n {
		row = row[:n]
	}
	return Normalize(strings.Join(row, " "))
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
