package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// packageGrid builds a small two-package worksheet in the shape live
// manifests take: package header, table header, room runs, then the next
// package.
func packageGrid() Grid {
	return Grid{
		{"15.03-22.03 NIYET 2025"},
		{"№", "Type of room", "Meal", "Last name", "First name", "Gender", "Date of birth", "Document number", "Expiration", "IIN"},
		{"1", "QUAD", "HB", "AKHMETOV", "DAULET", "M", "01.01.1980", "N123", "01.01.2030", "800101"},
		{"", "", "HB", "", "", "", "", "", "", ""},
		{"", "", "HB", "", "", "", "", "", "", ""},
		{"", "", "HB", "", "", "", "", "", "", ""},
		{"2", "DBL", "HB", "", "", "", "", "", "", ""},
		{"", "", "HB", "", "", "", "", "", "", ""},
		{"22.03-29.03 BARAKA 2025"},
		{"№", "Type of room", "Meal", "Last name", "First name", "Gender"},
		{"1", "TRPL", "BB", "", "", ""},
	}
}

func TestLocatePackage(t *testing.T) {
	grid := packageGrid()

	row, err := LocatePackage(grid, "15.03-22.03 NIYET")
	require.NoError(t, err)
	assert.Equal(t, 0, row)

	row, err = LocatePackage(grid, "22.03-29.03 BARAKA")
	require.NoError(t, err)
	assert.Equal(t, 8, row)
}

func TestLocatePackage_KeywordFallback(t *testing.T) {
	grid := packageGrid()

	// The exact name differs from the sheet, but the last token together
	// with a digit in the row is enough.
	row, err := LocatePackage(grid, "march departure niyet")
	require.NoError(t, err)
	assert.Equal(t, 0, row)
}

func TestLocatePackage_NotFound(t *testing.T) {
	grid := packageGrid()

	_, err := LocatePackage(grid, "umra deluxe")
	assert.ErrorIs(t, err, ErrPackageNotFound)

	_, err = LocatePackage(grid, "   ")
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestResolveHeaders_Keyword(t *testing.T) {
	grid := packageGrid()

	headerRow, cols, err := ResolveHeaders(grid, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, headerRow)

	expected := map[Field]int{
		FieldSequenceNumber: 0,
		FieldRoom:           1,
		FieldMeal:           2,
		FieldSurname:        3,
		FieldFirstName:      4,
		FieldGender:         5,
		FieldDateOfBirth:    6,
		FieldDocumentNumber: 7,
		FieldDocumentExpiry: 8,
		FieldNationalID:     9,
	}
	for field, idx := range expected {
		got, ok := cols.Col(field)
		assert.True(t, ok, "field %s", field)
		assert.Equal(t, idx, got, "field %s", field)
	}
}

func TestResolveHeaders_Idempotent(t *testing.T) {
	grid := packageGrid()

	row1, cols1, err := ResolveHeaders(grid, 0)
	require.NoError(t, err)
	row2, cols2, err := ResolveHeaders(grid, 0)
	require.NoError(t, err)

	assert.Equal(t, row1, row2)
	assert.Equal(t, cols1, cols2)
}

func TestResolveHeaders_PositionalFallback(t *testing.T) {
	// No header row at all: the table starts straight with data in the
	// fixed layout.
	grid := Grid{
		{"01.04-08.04 SAFA 2025"},
		{"1", "QUAD", "HB", "OMAROV", "ernar", "M", "02.02.1985", "N456", "02.02.2031", "850202"},
		{"", "", "", "", "", "", "", "", "", ""},
	}

	headerRow, cols, err := ResolveHeaders(grid, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, headerRow, "data must start at the found row")

	roomCol, ok := cols.Col(FieldRoom)
	require.True(t, ok)
	assert.Equal(t, 1, roomCol)
	surnameCol, ok := cols.Col(FieldSurname)
	require.True(t, ok)
	assert.Equal(t, 3, surnameCol)
}

func TestResolveHeaders_NotFound(t *testing.T) {
	grid := Grid{
		{"just"},
		{"random"},
		{"cells"},
	}
	_, _, err := ResolveHeaders(grid, 0)
	assert.ErrorIs(t, err, ErrHeadersNotFound)
}

func TestResolveBlock(t *testing.T) {
	grid := packageGrid()

	block, err := ResolveBlock(grid, "15.03-22.03 NIYET")
	require.NoError(t, err)

	assert.Equal(t, 0, block.StartRow)
	assert.Equal(t, 1, block.HeaderRow)
	assert.Equal(t, 2, block.DataStart())
	// Block ends where the next package header starts.
	assert.Equal(t, 8, block.EndRow)
	assert.True(t, block.Columns.Usable())
}

func TestResolveBlock_EndsOnEmptyRun(t *testing.T) {
	grid := packageGrid()[:8]
	grid = append(grid,
		[]string{""},
		[]string{""},
		[]string{""},
		[]string{"stray", "cells", "below"},
	)

	block, err := ResolveBlock(grid, "15.03-22.03 NIYET")
	require.NoError(t, err)
	assert.Equal(t, 8, block.EndRow)
}

func TestHasTrainColumn(t *testing.T) {
	grid := packageGrid()
	assert.False(t, HasTrainColumn(grid, "15.03-22.03 NIYET"))

	withTrain := Grid{
		{"10.05-17.05 NUR 2025"},
		{"№", "Room", "Meal", "Last name", "First name", "Gender", "Train"},
		{"1", "DBL", "HB", "", "", "", ""},
	}
	assert.True(t, HasTrainColumn(withTrain, "10.05-17.05 NUR"))
}

func TestColumnMapUsable(t *testing.T) {
	assert.False(t, ColumnMap{}.Usable())
	assert.False(t, ColumnMap{FieldRoom: 1}.Usable())
	assert.False(t, ColumnMap{FieldSurname: 3}.Usable())
	assert.True(t, ColumnMap{FieldRoom: 1, FieldSurname: 3}.Usable())
	assert.True(t, ColumnMap{FieldRoom: 0, FieldGender: 5}.Usable())
}

func TestGridCellAndClone(t *testing.T) {
	grid := Grid{{"a", "b"}, {"c"}}

	assert.Equal(t, "b", grid.Cell(0, 1))
	assert.Equal(t, "", grid.Cell(1, 1), "ragged row")
	assert.Equal(t, "", grid.Cell(5, 0), "out of range")

	clone := grid.Clone()
	clone[0][0] = "x"
	assert.Equal(t, "a", grid.Cell(0, 0), "clone must not alias")
}
