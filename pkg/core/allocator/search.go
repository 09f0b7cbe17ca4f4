package allocator

import (
	"github.com/adilbekov/umrah-rooming/pkg/core/manifest"
	"github.com/adilbekov/umrah-rooming/pkg/core/model"
	"github.com/adilbekov/umrah-rooming/pkg/core/rooms"
)

// search is the working state of one allocation call: a private shadow copy
// of the grid snapshot plus the ledger of beds claimed so far. Claims are
// applied to the shadow immediately so later probes in the same call see
// them; the caller's grid is never touched.
type search struct {
	grid       manifest.Grid
	block      *manifest.PackageBlock
	ledger     *Ledger
	transforms []Transform
}

func newSearch(grid manifest.Grid, block *manifest.PackageBlock) *search {
	return &search{
		grid:   grid.Clone(),
		block:  block,
		ledger: &Ledger{},
	}
}

// claim reserves the 0-based row for the given gender, both in the ledger
// and in the shadow grid.
func (s *search) claim(row int, gender model.Gender) {
	s.ledger.claims = append(s.ledger.claims, Claim{Row: row, Gender: gender})
	single := &Ledger{claims: []Claim{{Row: row, Gender: gender}}}
	single.Apply(s.grid, s.block.Columns)
}

// roomLabel returns the raw room-type text of a row; empty for mid-run rows
// whose label lives in a merged cell above.
func (s *search) roomLabel(row int) string {
	col, ok := s.block.Columns.Col(manifest.FieldRoom)
	if !ok {
		return ""
	}
	return manifest.Normalize(s.grid.Cell(row, col))
}

// occupied reports whether a row holds a guest: surname or first-name cell
// non-empty.
func (s *search) occupied(row int) bool {
	if col, ok := s.block.Columns.Col(manifest.FieldSurname); ok {
		if manifest.Normalize(s.grid.Cell(row, col)) != "" {
			return true
		}
	}
	if col, ok := s.block.Columns.Col(manifest.FieldFirstName); ok {
		if manifest.Normalize(s.grid.Cell(row, col)) != "" {
			return true
		}
	}
	return false
}

// gender returns the normalized gender marker of a row, or "" when absent.
func (s *search) gender(row int) model.Gender {
	col, ok := s.block.Columns.Col(manifest.FieldGender)
	if !ok {
		return ""
	}
	return model.NormalizeGender(s.grid.Cell(row, col))
}

// rowsEmpty reports whether count consecutive rows starting at start are
// all unoccupied and inside the grid.
func (s *search) rowsEmpty(start, count int) bool {
	for i := 0; i < count; i++ {
		row := start + i
		if row >= len(s.grid) {
			return false
		}
		if s.occupied(row) {
			return false
		}
	}
	return true
}

// run is one room seen during a scan: a labeled row and the beds it spans.
type run struct {
	start int // 0-based first row
	kind  rooms.Kind
	size  int
	raw   string
}

// eachRun walks the block's data rows and calls fn for every labeled room
// run, in grid order. Returning false stops the walk. Rows without a room
// label are mid-run continuation rows and never start a run themselves.
func (s *search) eachRun(fn func(r run) bool) {
	for i := s.block.DataStart(); i < s.block.EndRow; i++ {
		raw := s.roomLabel(i)
		if raw == "" {
			continue
		}
		kind, ok := rooms.ParseRoomLabel(raw)
		if !ok {
			continue
		}
		if !fn(run{start: i, kind: kind, size: rooms.LabelCapacity(raw), raw: raw}) {
			return
		}
	}
}
