package allocator

import (
	"github.com/adilbekov/umrah-rooming/pkg/core/manifest"
	"github.com/adilbekov/umrah-rooming/pkg/core/model"
)

// ReservedSentinel is written into the surname cell of a claimed row so a
// later guest in the same call cannot be assigned the same bed. It only
// ever lives in the in-memory overlay; the writer replaces it with real
// guest data.
const ReservedSentinel = "RESERVED"

// Claim is one reserved bed: a 0-based grid row plus the gender the row
// will carry.
type Claim struct {
	Row    int
	Gender model.Gender
}

// Ledger records every bed claimed during one allocation call. The
// allocator never mutates its input grid; callers overlay the ledger onto
// their own copy when they need the reservations visible to a subsequent
// call.
type Ledger struct {
	claims []Claim
}

// Claims returns the recorded claims in the order they were made.
func (l *Ledger) Claims() []Claim {
	return l.claims
}

// Len returns the number of claimed beds.
func (l *Ledger) Len() int {
	return len(l.claims)
}

// Apply overlays the ledger onto grid: the surname cell of each claimed row
// gets the reservation sentinel and the gender cell gets the claim's
// gender. Rows and columns outside the grid are padded as needed.
func (l *Ledger) Apply(grid manifest.Grid, cols manifest.ColumnMap) {
	surnameCol, hasSurname := cols.Col(manifest.FieldSurname)
	genderCol, hasGender := cols.Col(manifest.FieldGender)

	for _, c := range l.claims {
		if c.Row < 0 || c.Row >= len(grid) {
			continue
		}
		if hasSurname {
			grid[c.Row] = setCell(grid[c.Row], surnameCol, ReservedSentinel)
		}
		if hasGender && c.Gender.IsValid() {
			grid[c.Row] = setCell(grid[c.Row], genderCol, string(c.Gender))
		}
	}
}

func setCell(row []string, col int, val string) []string {
	for len(row) <= col {
		row = append(row, "")
	}
	row[col] = val
	return row
}
