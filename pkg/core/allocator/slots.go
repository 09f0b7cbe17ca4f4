package allocator

import (
	"github.com/adilbekov/umrah-rooming/pkg/core/manifest"
	"github.com/adilbekov/umrah-rooming/pkg/core/model"
	"github.com/adilbekov/umrah-rooming/pkg/core/rooms"
)

// Mode names which slot-finder phase produced a row, for logging and for
// the writer (transformed rooms need their labels re-carved).
type Mode string

const (
	ModeShare   Mode = "share"
	ModeNewRoom Mode = "new_room"

	ModeQuadToDoubles     Mode = "transform_1quad_2dbl"
	ModeTriplesToDoubles  Mode = "transform_2trpl_3dbl"
	ModeQuadsToTriples    Mode = "transform_2quad_2trpl_1dbl"
	ModeDoublesToTriples  Mode = "transform_3dbl_2trpl"
	ModeDoublesToQuad     Mode = "transform_2dbl_1quad"
	ModeDoubleToSingles   Mode = "transform_1dbl_2sgl"
	ModeTripleToDblSingle Mode = "transform_1trpl_1dbl_1sgl"
)

// FindSlot searches the package block for a bed for one guest of the given
// gender, preferring the desired room kind. Three phases run in order,
// first success wins: sharing into a compatible partially-occupied room
// (fallback kinds only when already occupied), re-carving fully empty rooms
// of other kinds, and finally a fully empty room of the desired kind.
// The returned row is a 1-based sheet row number.
func FindSlot(grid manifest.Grid, block *manifest.PackageBlock, desired rooms.Kind, gender model.Gender, requireExistingOccupant bool) (int, Mode, error) {
	s := newSearch(grid, block)
	row, mode, ok := s.findSlot(desired, gender, requireExistingOccupant)
	if !ok {
		return 0, "", ErrNoSpace
	}
	return row + 1, mode, nil
}

func (s *search) findSlot(desired rooms.Kind, gender model.Gender, requireExistingOccupant bool) (int, Mode, bool) {
	// Phase 1: share. Fallback kinds may only be shared into, never newly
	// opened, so they always require an existing occupant.
	for _, kind := range rooms.FallbackChain(desired) {
		requireExisting := requireExistingOccupant || kind != desired
		if row, ok := s.shareSlot(kind, gender, requireExisting); ok {
			return row, ModeShare, true
		}
	}

	// Phase 2: transform fully empty rooms of other kinds.
	if row, mode, ok := s.transformSlot(desired); ok {
		s.transforms = append(s.transforms, Transform{Row: row, Mode: mode})
		return row, mode, true
	}

	// Phase 3: a fully empty room of exactly the desired kind.
	if row, ok := s.emptyRoom(desired, gender, false); ok {
		return row, ModeNewRoom, true
	}

	return 0, "", false
}

// shareSlot finds the first free bed in a room run of the given kind whose
// occupants all match gender. Runs with zero occupants qualify unless
// requireExisting is set. Returns a 0-based row.
func (s *search) shareSlot(kind rooms.Kind, gender model.Gender, requireExisting bool) (int, bool) {
	found := -1
	s.eachRun(func(r run) bool {
		if r.kind != kind {
			return true
		}

		firstFree := -1
		var roomGender model.Gender
		hasGuests := false
		compatible := true

		for k := 0; k < r.size; k++ {
			row := r.start + k
			if row >= len(s.grid) {
				break
			}
			if s.occupied(row) {
				hasGuests = true
				g := s.gender(row)
				if g != "" {
					if roomGender != "" && roomGender != g {
						compatible = false
						break
					}
					roomGender = g
					if gender.IsValid() && g != gender {
						compatible = false
						break
					}
				}
			} else if firstFree == -1 {
				firstFree = row
			}
		}

		if !compatible || firstFree == -1 {
			return true
		}
		if requireExisting && !hasGuests {
			return true
		}
		found = firstFree
		return false
	})
	return found, found != -1
}

// emptyRoom finds the first room run of the given kind that is either fully
// empty or, when emptyOnly is false and requiredGender is set, holds only
// guests of that gender with beds to spare. Returns the 0-based first row
// of the run.
func (s *search) emptyRoom(kind rooms.Kind, requiredGender model.Gender, emptyOnly bool) (int, bool) {
	found := -1
	s.eachRun(func(r run) bool {
		if r.kind != kind {
			return true
		}

		genders := map[model.Gender]bool{}
		allEmpty := true
		hasFree := false

		for k := 0; k < r.size; k++ {
			row := r.start + k
			if row >= len(s.grid) {
				break
			}
			if s.occupied(row) {
				allEmpty = false
				if g := s.gender(row); g != "" {
					genders[g] = true
				}
			} else {
				hasFree = true
			}
		}

		if allEmpty && hasFree {
			found = r.start
			return false
		}
		if !emptyOnly && requiredGender.IsValid() && hasFree &&
			len(genders) == 1 && genders[requiredGender] {
			found = r.start
			return false
		}
		return true
	})
	return found, found != -1
}

// freeRows returns the unoccupied 0-based rows of the run starting at
// start, in run order.
func (s *search) freeRows(start, size int) []int {
	var free []int
	for k := 0; k < size; k++ {
		row := start + k
		if row >= len(s.grid) {
			break
		}
		if !s.occupied(row) {
			free = append(free, row)
		}
	}
	return free
}
