package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adilbekov/umrah-rooming/pkg/core/manifest"
	"github.com/adilbekov/umrah-rooming/pkg/core/model"
	"github.com/adilbekov/umrah-rooming/pkg/core/rooms"
)

// bed is one occupant row inside a test room; empty surname means a free
// bed.
type bed struct {
	surname string
	gender  string
}

// room describes one room run for buildGrid: its sheet label and its beds.
// Missing beds are padded free up to the label's capacity.
type room struct {
	label string
	beds  []bed
}

// buildGrid assembles a single-package worksheet: package header at row 0,
// table header at row 1, data from row 2.
func buildGrid(roomsList ...room) manifest.Grid {
	grid := manifest.Grid{
		{"15.03-22.03 NIYET 2025"},
		{"№", "Type of room", "Meal", "Last name", "First name", "Gender"},
	}
	seq := 1
	for _, rm := range roomsList {
		capacity := rooms.LabelCapacity(rm.label)
		for i := 0; i < capacity; i++ {
			var b bed
			if i < len(rm.beds) {
				b = rm.beds[i]
			}
			label := ""
			num := ""
			if i == 0 {
				label = rm.label
				num = itoa(seq)
				seq++
			}
			first := ""
			if b.surname != "" {
				first = "Test"
			}
			grid = append(grid, []string{num, label, "HB", b.surname, first, b.gender})
		}
	}
	return grid
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// resolveTestBlock resolves the single package of a buildGrid worksheet.
func resolveTestBlock(t *testing.T, grid manifest.Grid) *manifest.PackageBlock {
	t.Helper()
	block, err := manifest.ResolveBlock(grid, "15.03-22.03 NIYET")
	require.NoError(t, err)
	return block
}

func guest(surname string, gender model.Gender) model.Guest {
	return model.Guest{Surname: surname, FirstName: "Test", Gender: gender}
}

func infant(surname string) model.Guest {
	return model.Guest{Surname: surname, FirstName: "Test", Gender: model.Female, IsInfant: true}
}

func child(surname string) model.Guest {
	return model.Guest{Surname: surname, FirstName: "Test", Gender: model.Male, IsChild: true}
}
