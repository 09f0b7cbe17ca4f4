package allocator

import (
	"fmt"

	"github.com/adilbekov/umrah-rooming/pkg/core/model"
)

// RowInsertion is one physical row the writer must insert for an infant or
// child: a new row below the parent, inheriting the parent's room label
// merge. Row and ParentRow are final 1-based sheet rows, after every
// insertion of the booking is applied; replaying the inserts in ascending
// row order reproduces them physically.
type RowInsertion struct {
	Row        int
	ParentRow  int
	GuestIndex int    // index into the original guest list
	Label      string // "INF" or "CHD", written into the sequence column
}

// AttachDependents assigns rows to infant and child guests after the
// regular guests are placed. guests is the full booking list in input
// order; regularRows holds the 1-based rows of the regular guests, in their
// input order. Each dependent attaches below the nearest preceding regular
// guest, or the first regular guest when the dependent leads the list.
// Every already-computed row at or below an insertion point shifts down by
// one, mirroring what the physical insertion does to the sheet.
//
// Returns the final 1-based row per guest, preserving input order with
// dependents interleaved exactly as given, plus the insertions for the
// writer to replay in order.
func AttachDependents(guests []model.Guest, regularRows []int) ([]int, []RowInsertion, error) {
	finalRows := make([]int, len(guests))
	regularIdx := 0
	for i, g := range guests {
		if g.IsDependent() {
			continue
		}
		if regularIdx >= len(regularRows) {
			return nil, nil, fmt.Errorf("have %d regular rows for more regular guests", len(regularRows))
		}
		finalRows[i] = regularRows[regularIdx]
		regularIdx++
	}

	var insertions []RowInsertion

	// Dependents are processed back to front so an insertion never sits
	// above a still-unprocessed dependent's parent without the bump
	// accounting for it.
	for i := len(guests) - 1; i >= 0; i-- {
		g := guests[i]
		if !g.IsDependent() {
			continue
		}

		parent := parentIndex(guests, i)
		if parent == -1 {
			return nil, nil, fmt.Errorf("%w: guest %d (%s %s)", ErrDependentWithoutParent, i+1, g.Surname, g.FirstName)
		}

		parentRow := finalRows[parent]
		newRow := parentRow + 1

		label := "CHD"
		if g.IsInfant {
			label = "INF"
		}
		insertions = append(insertions, RowInsertion{
			Row:        newRow,
			ParentRow:  parentRow,
			GuestIndex: i,
			Label:      label,
		})

		// The physical insertion shifts everything at or below the new
		// row down by one, already-recorded insertions included, so every
		// row stays in the final frame.
		for j := range finalRows {
			if finalRows[j] >= newRow {
				finalRows[j]++
			}
		}
		for j := range insertions[:len(insertions)-1] {
			if insertions[j].Row >= newRow {
				insertions[j].Row++
			}
			if insertions[j].ParentRow >= newRow {
				insertions[j].ParentRow++
			}
		}
		finalRows[i] = newRow
	}

	return finalRows, insertions, nil
}

// parentIndex finds the regular guest a dependent at index i attaches to:
// the nearest preceding regular guest, or the first regular guest overall
// when the dependent leads the list. Returns -1 when no regular guest
// exists.
func parentIndex(guests []model.Guest, i int) int {
	for j := i - 1; j >= 0; j-- {
		if !guests[j].IsDependent() {
			return j
		}
	}
	for j := range guests {
		if !guests[j].IsDependent() {
			return j
		}
	}
	return -1
}
