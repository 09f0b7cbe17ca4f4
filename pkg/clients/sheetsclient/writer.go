package sheetsclient

import (
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// CellUpdate is one value write: a 1-based row/column pair on the target
// worksheet and the value to place there. Numeric values go in as numbers
// so currency formatting keeps working.
type CellUpdate struct {
	Row   int
	Col   int
	Value interface{}
}

// RowInsert is one physical row insertion at a 1-based row. The new row
// inherits formatting from the row above it, which keeps the room-label
// merge visually intact for infant rows.
type RowInsert struct {
	Row int
}

// MergeSpan is an inclusive 1-based row span in one column to merge (or
// unmerge) in the room-label column.
type MergeSpan struct {
	StartRow int
	EndRow   int
	Col      int
}

// WritePlan is everything one booking write needs, in application order:
// label unmerges and rewrites for transformed rooms, physical row
// insertions for dependents, then the value updates, then the new merges.
// Plans are built by the services layer and applied atomically enough for
// sheet work: values land in a single batch call.
type WritePlan struct {
	Unmerges []MergeSpan
	Inserts  []RowInsert
	Updates  []CellUpdate
	Merges   []MergeSpan
}

// ApplyWritePlan executes a booking write plan against one worksheet.
// sheetTitle addresses value ranges; the numeric sheet ID is resolved here
// for structural requests.
func (c *Client) ApplyWritePlan(spreadsheetID, sheetTitle string, plan *WritePlan) error {
	if plan == nil {
		return nil
	}

	sheetID, err := c.SheetID(spreadsheetID, sheetTitle)
	if err != nil {
		return err
	}

	var structural []*sheets.Request

	for _, span := range plan.Unmerges {
		structural = append(structural, &sheets.Request{
			UnmergeCells: &sheets.UnmergeCellsRequest{
				Range: spanRange(sheetID, span),
			},
		})
	}

	for _, ins := range plan.Inserts {
		structural = append(structural, &sheets.Request{
			InsertDimension: &sheets.InsertDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(ins.Row - 1),
					EndIndex:   int64(ins.Row),
				},
				InheritFromBefore: true,
			},
		})
	}

	if len(structural) > 0 {
		_, err = c.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: structural,
		}).Do()
		if err != nil {
			return fmt.Errorf("failed to apply structural updates: %w", err)
		}
	}

	if len(plan.Updates) > 0 {
		data := make([]*sheets.ValueRange, 0, len(plan.Updates))
		for _, u := range plan.Updates {
			data = append(data, &sheets.ValueRange{
				Range:  fmt.Sprintf("%s!%s", quoteSheetTitle(sheetTitle), CellRef(u.Row, u.Col)),
				Values: [][]interface{}{{u.Value}},
			})
		}
		_, err = c.service.Spreadsheets.Values.BatchUpdate(spreadsheetID, &sheets.BatchUpdateValuesRequest{
			ValueInputOption: "USER_ENTERED",
			Data:             data,
		}).Do()
		if err != nil {
			return fmt.Errorf("failed to apply value updates: %w", err)
		}
	}

	if len(plan.Merges) > 0 {
		var merges []*sheets.Request
		for _, span := range plan.Merges {
			merges = append(merges, &sheets.Request{
				MergeCells: &sheets.MergeCellsRequest{
					Range:     spanRange(sheetID, span),
					MergeType: "MERGE_ALL",
				},
			})
		}
		_, err = c.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: merges,
		}).Do()
		if err != nil {
			return fmt.Errorf("failed to apply merges: %w", err)
		}
	}

	return nil
}

func spanRange(sheetID int64, span MergeSpan) *sheets.GridRange {
	return &sheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    int64(span.StartRow - 1),
		EndRowIndex:      int64(span.EndRow),
		StartColumnIndex: int64(span.Col - 1),
		EndColumnIndex:   int64(span.Col),
	}
}
