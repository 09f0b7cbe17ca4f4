package allocator

import (
	"fmt"

	"github.com/adilbekov/umrah-rooming/pkg/core/manifest"
	"github.com/adilbekov/umrah-rooming/pkg/core/model"
	"github.com/adilbekov/umrah-rooming/pkg/core/rooms"
)

// GroupPlacement is the result of one group allocation: a 1-based sheet row
// per guest, in the original input order, plus the ledger of every bed the
// call claimed. The input grid is never modified; overlay the ledger to
// make the reservations visible to a subsequent call.
type GroupPlacement struct {
	Rows   []int
	Ledger *Ledger
	// Transforms lists room re-carvings the placement relies on; the
	// writer must rewrite the room labels before the rows are valid.
	Transforms []Transform
}

// AllocateGroup places a list of co-traveling guests into the package
// block. Family mode keeps the group together regardless of gender;
// separate mode partitions by gender and places each half independently.
// The call is atomic: if any guest cannot be placed, no reservation
// survives and an error is returned.
func AllocateGroup(grid manifest.Grid, block *manifest.PackageBlock, guests []model.Guest, desired rooms.Kind, mode model.PlacementMode) (*GroupPlacement, error) {
	if len(guests) == 0 {
		return &GroupPlacement{Ledger: &Ledger{}}, nil
	}

	// Gender is mandatory for deterministic segregation, in both modes.
	for _, g := range guests {
		if !g.Gender.IsValid() {
			return nil, fmt.Errorf("%w: %s %s", ErrMissingGender, g.Surname, g.FirstName)
		}
	}

	s := newSearch(grid, block)

	var rows []int
	var err error
	switch mode {
	case model.ModeFamily:
		rows, err = s.placeFamily(guests, desired)
	default:
		rows, err = s.placeSeparate(guests, desired)
	}
	if err != nil {
		return nil, err
	}

	placement := &GroupPlacement{
		Rows:   make([]int, len(rows)),
		Ledger: s.ledger,
	}
	for i, r := range rows {
		placement.Rows[i] = r + 1
	}
	for _, tr := range s.transforms {
		placement.Transforms = append(placement.Transforms, Transform{Row: tr.Row + 1, Mode: tr.Mode})
	}
	return placement, nil
}

// placeFamily puts the whole group into rooms of the desired kind without
// splitting by gender. Returns 0-based rows in guest order.
func (s *search) placeFamily(guests []model.Guest, desired rooms.Kind) ([]int, error) {
	// A lone traveler gets the full single-guest search: share the exact
	// kind, then an empty room of it, then fallback kinds and
	// transformations.
	if len(guests) == 1 {
		g := guests[0]
		if row, ok := s.shareSlot(desired, g.Gender, false); ok {
			s.claim(row, g.Gender)
			return []int{row}, nil
		}
		if row, ok := s.emptyRoom(desired, "", false); ok {
			s.claim(row, g.Gender)
			return []int{row}, nil
		}
		if row, _, ok := s.findSlot(desired, g.Gender, false); ok {
			s.claim(row, g.Gender)
			return []int{row}, nil
		}
		return nil, ErrNoSpace
	}

	capacity := rooms.Capacity(desired)
	rows := make([]int, 0, len(guests))

	// Fill fully empty rooms of the desired kind, one after another, until
	// every guest has a bed. Groups larger than one room spill into the
	// next empty room.
	for len(rows) < len(guests) {
		start, ok := s.emptyRoom(desired, "", false)
		if !ok {
			if len(rows) == 0 {
				return nil, ErrNoSpace
			}
			return nil, fmt.Errorf("%w: placed %d of %d", ErrPartialGroup, len(rows), len(guests))
		}
		count := min(capacity, len(guests)-len(rows))
		for j := 0; j < count; j++ {
			row := start + j
			s.claim(row, guests[len(rows)].Gender)
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// placeSeparate partitions guests by gender, places each sublist
// independently and maps the rows back onto the original input order.
func (s *search) placeSeparate(guests []model.Guest, desired rooms.Kind) ([]int, error) {
	var maleIdx, femaleIdx []int
	for i, g := range guests {
		if g.Gender == model.Male {
			maleIdx = append(maleIdx, i)
		} else {
			femaleIdx = append(femaleIdx, i)
		}
	}

	groupErr := func() error {
		if len(guests) == 1 {
			return ErrNoSpace
		}
		return ErrPartialGroup
	}

	maleRows, err := s.placeGenderRun(len(maleIdx), model.Male, desired)
	if err != nil {
		return nil, fmt.Errorf("%w: males", groupErr())
	}
	femaleRows, err := s.placeGenderRun(len(femaleIdx), model.Female, desired)
	if err != nil {
		return nil, fmt.Errorf("%w: females", groupErr())
	}

	rows := make([]int, len(guests))
	for i, orig := range maleIdx {
		rows[orig] = maleRows[i]
	}
	for i, orig := range femaleIdx {
		rows[orig] = femaleRows[i]
	}
	return rows, nil
}

// placeGenderRun finds beds for n guests of one gender in rooms of the
// desired kind: a fully empty room when the whole sublist fits, then
// subletting into existing same-gender rooms in grid order, then new empty
// rooms one at a time. Returns 0-based rows.
func (s *search) placeGenderRun(n int, gender model.Gender, desired rooms.Kind) ([]int, error) {
	if n == 0 {
		return nil, nil
	}

	capacity := rooms.Capacity(desired)
	rows := make([]int, 0, n)

	// Whole sublist fits in one room: prefer a strictly empty one so the
	// group stays together.
	if n <= capacity {
		if start, ok := s.emptyRoom(desired, "", true); ok {
			for j := 0; j < n; j++ {
				s.claim(start+j, gender)
				rows = append(rows, start+j)
			}
			return rows, nil
		}
	}

	// Sublet into existing rooms of the desired kind holding only this
	// gender, oldest run first.
	s.eachRun(func(r run) bool {
		if r.kind != desired {
			return true
		}
		var roomGender model.Gender
		free := make([]int, 0, r.size)
		for k := 0; k < r.size; k++ {
			row := r.start + k
			if row >= len(s.grid) {
				break
			}
			if s.occupied(row) {
				if g := s.gender(row); g != "" {
					roomGender = g
				}
			} else {
				free = append(free, row)
			}
		}
		if len(free) == 0 || (roomGender != "" && roomGender != gender) {
			return true
		}
		for _, row := range free {
			if len(rows) >= n {
				break
			}
			s.claim(row, gender)
			rows = append(rows, row)
		}
		return len(rows) < n
	})

	// Remaining guests open new rooms: fully empty, or already carrying
	// only this gender with beds to spare.
	for len(rows) < n {
		start, ok := s.emptyRoom(desired, gender, false)
		if !ok {
			return nil, ErrNoSpace
		}
		free := s.freeRows(start, capacity)
		if len(free) == 0 {
			return nil, ErrNoSpace
		}
		for _, row := range free {
			if len(rows) >= n {
				break
			}
			s.claim(row, gender)
			rows = append(rows, row)
		}
	}

	return rows, nil
}
