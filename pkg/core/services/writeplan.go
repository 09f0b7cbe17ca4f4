package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/adilbekov/umrah-rooming/pkg/clients/sheetsclient"
	"github.com/adilbekov/umrah-rooming/pkg/core/allocator"
	"github.com/adilbekov/umrah-rooming/pkg/core/manifest"
	"github.com/adilbekov/umrah-rooming/pkg/core/model"
	"github.com/adilbekov/umrah-rooming/pkg/core/rooms"
)

// skipValues are placeholder strings a booking may carry in optional
// fields; they never reach the sheet.
var skipValues = map[string]bool{"-": true, "skip": true, "none": true}

// BuildWritePlan turns a finished allocation into the concrete sheet
// mutations: room re-carvings for transformed slots, row insertions for
// dependents with their room-merge extensions, and one cell update per
// populated field per guest. finalRows holds the 1-based row of every
// guest in booking order; insertions come from AttachDependents.
func BuildWritePlan(
	grid manifest.Grid,
	block *manifest.PackageBlock,
	booking *model.Booking,
	finalRows []int,
	insertions []allocator.RowInsertion,
	transforms []allocator.Transform,
) *sheetsclient.WritePlan {
	plan := &sheetsclient.WritePlan{}
	cols := block.Columns
	roomCol, hasRoomCol := cols.Col(manifest.FieldRoom)

	// Insertion rows are final sheet rows; the snapshot predates them all.
	// Replaying the inserts in ascending order reproduces those rows, and
	// insRows maps between the two frames: structural unmerges run before
	// the inserts and use snapshot rows, everything after them (labels,
	// cell values, merges) uses final rows.
	insRows := make([]int, 0, len(insertions))
	parentsPre := make([]int, len(insertions))
	for i, ins := range insertions {
		insRows = append(insRows, ins.Row)
		parentsPre[i] = preInsertRow(ins.ParentRow, insertions)
	}
	sort.Ints(insRows)
	for _, row := range insRows {
		plan.Inserts = append(plan.Inserts, sheetsclient.RowInsert{Row: row})
	}

	// Transformed rooms get their labels re-carved before anything else
	// touches the block.
	var recarved [][2]int
	for _, tr := range transforms {
		recipe, ok := allocator.TransformLabelPlan(tr.Mode)
		if !ok || !hasRoomCol {
			continue
		}
		col := roomCol + 1
		last := tr.Row + len(recipe.Labels) - 1
		recarved = append(recarved, [2]int{tr.Row, last})
		plan.Unmerges = append(plan.Unmerges, sheetsclient.MergeSpan{
			StartRow: tr.Row,
			EndRow:   last,
			Col:      col,
		})
		for offset, label := range recipe.Labels {
			plan.Updates = append(plan.Updates, sheetsclient.CellUpdate{
				Row:   postInsertRow(tr.Row+offset, insRows),
				Col:   col,
				Value: label,
			})
		}
		for _, m := range recipe.Merges {
			start, end := tr.Row+m[0], tr.Row+m[1]
			newEnd := postInsertRow(end, insRows)
			for i, ins := range insertions {
				if parentsPre[i] >= start && parentsPre[i] <= end && ins.Row > newEnd {
					newEnd = ins.Row
				}
			}
			plan.Merges = append(plan.Merges, sheetsclient.MergeSpan{
				StartRow: postInsertRow(start, insRows),
				EndRow:   newEnd,
				Col:      col,
			})
		}
	}

	// Each dependent row stretches its room's label merge. Rooms covered
	// by a transform are already re-merged above; the rest get one
	// unmerge/merge pair per room regardless of how many dependents land
	// in it.
	type stretch struct {
		start, end, lastIns int
	}
	var stretches []*stretch
	byRoom := map[int]*stretch{}
	for i, ins := range insertions {
		if !hasRoomCol || inSpans(recarved, parentsPre[i]) {
			continue
		}
		start, size, ok := roomSpanAbove(grid, block, parentsPre[i])
		if !ok {
			continue
		}
		end := start + size - 1
		if parentsPre[i] > end {
			end = parentsPre[i]
		}
		st := byRoom[start]
		if st == nil {
			st = &stretch{start: start}
			byRoom[start] = st
			stretches = append(stretches, st)
		}
		if end > st.end {
			st.end = end
		}
		if ins.Row > st.lastIns {
			st.lastIns = ins.Row
		}
	}
	for _, st := range stretches {
		col := roomCol + 1
		plan.Unmerges = append(plan.Unmerges, sheetsclient.MergeSpan{
			StartRow: st.start, EndRow: st.end, Col: col,
		})
		newEnd := postInsertRow(st.end, insRows)
		if st.lastIns > newEnd {
			newEnd = st.lastIns
		}
		plan.Merges = append(plan.Merges, sheetsclient.MergeSpan{
			StartRow: postInsertRow(st.start, insRows), EndRow: newEnd, Col: col,
		})
	}

	for i := range booking.Guests {
		if i >= len(finalRows) || finalRows[i] == 0 {
			continue
		}
		appendGuestUpdates(plan, cols, finalRows[i], booking, &booking.Guests[i])
	}

	for _, ins := range insertions {
		if col, ok := cols.Col(manifest.FieldSequenceNumber); ok {
			plan.Updates = append(plan.Updates, sheetsclient.CellUpdate{
				Row:   ins.Row,
				Col:   col + 1,
				Value: ins.Label,
			})
		}
	}

	return plan
}

// preInsertRow maps a final sheet row back to the snapshot frame by
// undoing the shift of every inserted row above it.
func preInsertRow(row int, insertions []allocator.RowInsertion) int {
	shift := 0
	for _, ins := range insertions {
		if ins.Row <= row {
			shift++
		}
	}
	return row - shift
}

// postInsertRow maps a snapshot row to the final frame by replaying the
// inserted rows over it. insRows must be sorted ascending.
func postInsertRow(row int, insRows []int) int {
	for _, r := range insRows {
		if r <= row {
			row++
		}
	}
	return row
}

func inSpans(spans [][2]int, row int) bool {
	for _, s := range spans {
		if row >= s[0] && row <= s[1] {
			return true
		}
	}
	return false
}

// roomSpanAbove finds the labeled room run covering a 1-based row: the
// nearest label at or above it and the bed count that label implies.
func roomSpanAbove(grid manifest.Grid, block *manifest.PackageBlock, row int) (start, size int, ok bool) {
	col, hasCol := block.Columns.Col(manifest.FieldRoom)
	if !hasCol {
		return 0, 0, false
	}
	for r := row - 1; r >= block.DataStart(); r-- {
		label := manifest.Normalize(grid.Cell(r, col))
		if label == "" {
			continue
		}
		if _, parsed := rooms.ParseRoomLabel(label); !parsed {
			return 0, 0, false
		}
		return r + 1, rooms.LabelCapacity(label), true
	}
	return 0, 0, false
}

// appendGuestUpdates schedules one cell write per populated field of one
// guest row. Booking-level values (price, manager, train and the rest)
// repeat on every row of the group, the way the manifests are kept.
func appendGuestUpdates(plan *sheetsclient.WritePlan, cols manifest.ColumnMap, row int, booking *model.Booking, g *model.Guest) {
	meal := booking.Meal
	switch {
	case g.IsInfant:
		meal = "INF"
	case g.IsChild:
		meal = "CHD"
	}

	fields := []struct {
		field manifest.Field
		value string
	}{
		{manifest.FieldSurname, g.Surname},
		{manifest.FieldFirstName, g.FirstName},
		{manifest.FieldGender, string(g.Gender)},
		{manifest.FieldDateOfBirth, g.DateOfBirth},
		{manifest.FieldDocumentNumber, g.DocumentNumber},
		{manifest.FieldDocumentExpiry, g.DocumentExpiry},
		{manifest.FieldNationalID, g.NationalID},
		{manifest.FieldClientPhone, g.Phone},
		{manifest.FieldRegion, g.Region},
		{manifest.FieldMeal, meal},
		{manifest.FieldManager, booking.Manager},
		{manifest.FieldComment, booking.Comment},
		{manifest.FieldSource, booking.Source},
		{manifest.FieldTrain, booking.Train},
	}

	for _, f := range fields {
		col, ok := cols.Col(f.field)
		if !ok {
			continue
		}
		val := strings.TrimSpace(f.value)
		if val == "" || skipValues[strings.ToLower(val)] {
			continue
		}
		plan.Updates = append(plan.Updates, sheetsclient.CellUpdate{
			Row: row, Col: col + 1, Value: val,
		})
	}

	// Money fields go in as numbers when they parse, so the sheet's
	// currency formatting applies.
	for _, f := range []struct {
		field manifest.Field
		value string
	}{
		{manifest.FieldPrice, booking.Price},
		{manifest.FieldAmountPaid, booking.AmountPaid},
	} {
		col, ok := cols.Col(f.field)
		if !ok {
			continue
		}
		val := strings.TrimSpace(f.value)
		if val == "" || skipValues[strings.ToLower(val)] {
			continue
		}
		plan.Updates = append(plan.Updates, sheetsclient.CellUpdate{
			Row: row, Col: col + 1, Value: moneyValue(val),
		})
	}
}

// moneyValue parses a money string into a number, tolerating currency
// symbols and thousand separators. Unparseable values pass through as-is.
func moneyValue(raw string) interface{} {
	clean := strings.NewReplacer("$", "", " ", "", ",", "").Replace(raw)
	if n, err := strconv.ParseFloat(clean, 64); err == nil {
		return n
	}
	return raw
}
