package services

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adilbekov/umrah-rooming/pkg/core/manifest"
	"github.com/adilbekov/umrah-rooming/pkg/core/rooms"
)

const testPackage = "15.03-22.03 NIYET"

// testRoom describes one room run for testGrid: its label and the
// surname/gender pairs of its occupants. Missing beds stay free.
type testRoom struct {
	label string
	beds  [][2]string
}

// testGrid assembles a single-package worksheet: package header on row 0,
// table header on row 1, data from row 2.
func testGrid(roomsList ...testRoom) manifest.Grid {
	grid := manifest.Grid{
		{"15.03-22.03 NIYET 2025"},
		{"№", "Type of room", "Meal", "Last name", "First name", "Gender", "Price", "Manager"},
	}
	seq := 1
	for _, rm := range roomsList {
		capacity := rooms.LabelCapacity(rm.label)
		for i := 0; i < capacity; i++ {
			var surname, gender string
			if i < len(rm.beds) {
				surname, gender = rm.beds[i][0], rm.beds[i][1]
			}
			label, num := "", ""
			if i == 0 {
				label = rm.label
				num = strconv.Itoa(seq)
				seq++
			}
			first := ""
			if surname != "" {
				first = "Test"
			}
			grid = append(grid, []string{num, label, "HB", surname, first, gender, "", ""})
		}
	}
	return grid
}

func testBlock(t *testing.T, grid manifest.Grid) *manifest.PackageBlock {
	t.Helper()
	block, err := manifest.ResolveBlock(grid, testPackage)
	require.NoError(t, err)
	return block
}
