package allocator

import (
	"fmt"
	"strings"

	"github.com/adilbekov/umrah-rooming/pkg/core/manifest"
	"github.com/adilbekov/umrah-rooming/pkg/core/model"
	"github.com/adilbekov/umrah-rooming/pkg/core/rooms"
)

// OpenRoom describes one room a human operator may pick when automatic
// allocation fails: where its first free bed is, who is already inside and
// what gender the room carries.
type OpenRoom struct {
	// Row is the 1-based sheet row of the first free bed.
	Row int
	// Kind of the room.
	Kind rooms.Kind
	// Guests holds the first word of each occupant's surname cell.
	Guests []string
	// FreeBeds is the number of unoccupied rows in the run.
	FreeBeds int
	// Gender is "M"/"F" for single-gender rooms, "MIX" for mixed ones and
	// "" for empty rooms.
	Gender string
	// Label is a short operator-facing description of the room.
	Label string
}

// ListOpenSlots enumerates rooms in the package block with at least count
// compatible free beds. When desired is non-empty only its fallback chain
// is considered; when gender is set, rooms carrying the other gender or a
// mix are excluded.
func ListOpenSlots(grid manifest.Grid, block *manifest.PackageBlock, desired rooms.Kind, gender model.Gender, count int) []OpenRoom {
	if count < 1 {
		count = 1
	}
	s := newSearch(grid, block)

	var accepted []rooms.Kind
	if desired != "" {
		accepted = rooms.FallbackChain(desired)
	}

	surnameCol, _ := s.block.Columns.Col(manifest.FieldSurname)

	var out []OpenRoom
	s.eachRun(func(r run) bool {
		if accepted != nil && !kindIn(accepted, r.kind) {
			return true
		}

		var guests []string
		genders := map[model.Gender]bool{}
		freeBeds := 0
		firstFreeOffset := -1

		for k := 0; k < r.size; k++ {
			row := r.start + k
			if row >= s.block.EndRow {
				break
			}
			if s.occupied(row) {
				name := strings.Fields(s.grid.Cell(row, surnameCol))
				if len(name) > 0 {
					guests = append(guests, name[0])
				} else {
					guests = append(guests, "Guest")
				}
				if g := s.gender(row); g != "" {
					genders[g] = true
				}
			} else {
				freeBeds++
				if firstFreeOffset == -1 {
					firstFreeOffset = k
				}
			}
		}

		if freeBeds < count {
			return true
		}

		roomGender := ""
		switch {
		case len(genders) == 1:
			for g := range genders {
				roomGender = string(g)
			}
		case len(genders) > 1:
			roomGender = "MIX"
		}

		if gender.IsValid() {
			if roomGender == "MIX" {
				return true
			}
			if roomGender != "" && roomGender != string(gender) {
				return true
			}
		}

		// Fully empty rooms start at their first row; partially occupied
		// ones at the first free bed.
		offset := firstFreeOffset
		if len(guests) == 0 {
			offset = 0
		}

		lastGuest := "Free"
		if len(guests) > 0 {
			lastGuest = guests[len(guests)-1]
		}

		out = append(out, OpenRoom{
			Row:      r.start + offset + 1,
			Kind:     r.kind,
			Guests:   guests,
			FreeBeds: freeBeds,
			Gender:   roomGender,
			Label:    fmt.Sprintf("%s · %s (free: %d)", strings.ToUpper(string(r.kind)), lastGuest, freeBeds),
		})
		return true
	})

	return out
}

func kindIn(kinds []rooms.Kind, k rooms.Kind) bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}
