package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adilbekov/umrah-rooming/pkg/core/model"
	"github.com/adilbekov/umrah-rooming/pkg/core/rooms"
)

func TestAllocateGroup_SingleMaleIntoEmptyQuad(t *testing.T) {
	// One fully empty QUAD; a lone male in separate mode lands on its
	// first row and the ledger marks that bed male.
	grid := buildGrid(room{label: "QUAD"})
	block := resolveTestBlock(t, grid)

	placement, err := AllocateGroup(grid, block, []model.Guest{guest("AKHMETOV", model.Male)}, rooms.Quad, model.ModeSeparate)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, placement.Rows)

	require.Equal(t, 1, placement.Ledger.Len())
	claim := placement.Ledger.Claims()[0]
	assert.Equal(t, 2, claim.Row)
	assert.Equal(t, model.Male, claim.Gender)

	// Overlaying the ledger writes the sentinel and the gender cell.
	shadow := grid.Clone()
	placement.Ledger.Apply(shadow, block.Columns)
	assert.Equal(t, ReservedSentinel, shadow.Cell(2, 3))
	assert.Equal(t, "M", shadow.Cell(2, 5))
	// The input grid stays untouched.
	assert.Equal(t, "", grid.Cell(2, 3))
}

func TestAllocateGroup_SecondMaleSharesQuad(t *testing.T) {
	grid := buildGrid(room{label: "QUAD", beds: []bed{{surname: "AKHMETOV", gender: "M"}}})
	block := resolveTestBlock(t, grid)

	placement, err := AllocateGroup(grid, block, []model.Guest{guest("OMAROV", model.Male)}, rooms.Quad, model.ModeSeparate)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, placement.Rows)
}

func TestAllocateGroup_FamilyIgnoresGender(t *testing.T) {
	// Family of 3 (2M+1F) into an empty TRIPLE: mixed genders share the
	// room and rows come back in input order.
	grid := buildGrid(room{label: "TRPL"})
	block := resolveTestBlock(t, grid)

	guests := []model.Guest{
		guest("ATA", model.Male),
		guest("ANA", model.Female),
		guest("BALA", model.Male),
	}
	placement, err := AllocateGroup(grid, block, guests, rooms.Triple, model.ModeFamily)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 5}, placement.Rows)

	// Ledger genders follow the guests, not the room.
	claims := placement.Ledger.Claims()
	require.Len(t, claims, 3)
	assert.Equal(t, model.Male, claims[0].Gender)
	assert.Equal(t, model.Female, claims[1].Gender)
}

func TestAllocateGroup_FamilySpillsAcrossRooms(t *testing.T) {
	// Five travelers into QUADs: four in the first room, one in the next.
	grid := buildGrid(room{label: "QUAD"}, room{label: "QUAD"})
	block := resolveTestBlock(t, grid)

	guests := []model.Guest{
		guest("A", model.Male), guest("B", model.Male), guest("C", model.Male),
		guest("D", model.Male), guest("E", model.Male),
	}
	placement, err := AllocateGroup(grid, block, guests, rooms.Quad, model.ModeFamily)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 5, 6, 7}, placement.Rows)
}

func TestAllocateGroup_SeparateRestoresInputOrder(t *testing.T) {
	// Mixed group in separate mode: males and females land in different
	// rooms but output rows still line up with the input order.
	grid := buildGrid(room{label: "DBL"}, room{label: "DBL"})
	block := resolveTestBlock(t, grid)

	guests := []model.Guest{
		guest("AISHA", model.Female),
		guest("DAULET", model.Male),
		guest("MADINA", model.Female),
	}
	placement, err := AllocateGroup(grid, block, guests, rooms.Double, model.ModeSeparate)
	require.NoError(t, err)
	require.Len(t, placement.Rows, 3)

	// Males placed first take the first empty double; the two females the
	// second.
	assert.Equal(t, 3, placement.Rows[1], "male row")
	assert.Equal(t, []int{5, 6}, []int{placement.Rows[0], placement.Rows[2]}, "female rows in input order")
}

func TestAllocateGroup_SeparateSubletsSameGenderRoom(t *testing.T) {
	grid := buildGrid(
		room{label: "DBL", beds: []bed{{surname: "FATIMA", gender: "F"}}},
		room{label: "DBL"},
	)
	block := resolveTestBlock(t, grid)

	// Two females: whole sublist fits one room, so the strictly empty
	// second double is preferred over splitting into the occupied one.
	placement, err := AllocateGroup(grid, block, []model.Guest{
		guest("AISHA", model.Female),
		guest("MADINA", model.Female),
	}, rooms.Double, model.ModeSeparate)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6}, placement.Rows)

	// With no empty room left, a single female sublets into the existing
	// female room.
	occupied := grid.Clone()
	occupied[4][3] = "ZHANNA"
	occupied[4][5] = "F"
	occupied[5][3] = "ROZA"
	occupied[5][5] = "F"
	placement, err = AllocateGroup(occupied, block, []model.Guest{
		guest("AISHA", model.Female),
	}, rooms.Double, model.ModeSeparate)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, placement.Rows)
}

func TestAllocateGroup_NoDoubleAssignmentWithinCall(t *testing.T) {
	grid := buildGrid(room{label: "QUAD"}, room{label: "DBL"})
	block := resolveTestBlock(t, grid)

	guests := []model.Guest{
		guest("A", model.Male), guest("B", model.Male),
		guest("C", model.Male), guest("D", model.Male),
	}
	placement, err := AllocateGroup(grid, block, guests, rooms.Quad, model.ModeSeparate)
	require.NoError(t, err)

	seen := map[int]bool{}
	for _, r := range placement.Rows {
		assert.False(t, seen[r], "row %d assigned twice", r)
		seen[r] = true
	}
}

func TestAllocateGroup_CapacityInvariant(t *testing.T) {
	// Three males against a double with one male: two fit (one shared bed
	// plus the run is full), third must open a new room; with none left
	// the whole call fails.
	grid := buildGrid(room{label: "DBL", beds: []bed{{surname: "X", gender: "M"}}})
	block := resolveTestBlock(t, grid)

	_, err := AllocateGroup(grid, block, []model.Guest{
		guest("A", model.Male), guest("B", model.Male), guest("C", model.Male),
	}, rooms.Double, model.ModeSeparate)
	assert.ErrorIs(t, err, ErrPartialGroup)
}

func TestAllocateGroup_AtomicFailure(t *testing.T) {
	grid := buildGrid(room{label: "DBL"})
	before := grid.Clone()
	block := resolveTestBlock(t, grid)

	// Three guests, beds for two: nothing must be placed and the grid
	// must be unchanged.
	_, err := AllocateGroup(grid, block, []model.Guest{
		guest("A", model.Male), guest("B", model.Male), guest("C", model.Male),
	}, rooms.Double, model.ModeSeparate)
	require.ErrorIs(t, err, ErrPartialGroup)
	assert.Equal(t, before, grid)
}

func TestAllocateGroup_MissingGenderAborts(t *testing.T) {
	grid := buildGrid(room{label: "QUAD"})
	block := resolveTestBlock(t, grid)

	_, err := AllocateGroup(grid, block, []model.Guest{
		guest("A", model.Male),
		{Surname: "B", FirstName: "Test"},
	}, rooms.Quad, model.ModeSeparate)
	assert.ErrorIs(t, err, ErrMissingGender)
}

func TestAllocateGroup_EmptyGuestList(t *testing.T) {
	grid := buildGrid(room{label: "QUAD"})
	block := resolveTestBlock(t, grid)

	placement, err := AllocateGroup(grid, block, nil, rooms.Quad, model.ModeSeparate)
	require.NoError(t, err)
	assert.Empty(t, placement.Rows)
	assert.Equal(t, 0, placement.Ledger.Len())
}

func TestAllocateGroup_GenderSegregationInvariant(t *testing.T) {
	// After placement, overlay the ledger and verify no run mixes
	// genders.
	grid := buildGrid(
		room{label: "DBL", beds: []bed{{surname: "FATIMA", gender: "F"}}},
		room{label: "DBL"},
	)
	block := resolveTestBlock(t, grid)

	placement, err := AllocateGroup(grid, block, []model.Guest{
		guest("AISHA", model.Female),
		guest("DAULET", model.Male),
	}, rooms.Double, model.ModeSeparate)
	require.NoError(t, err)
	// The male takes the empty double, the female joins the female room.
	assert.Equal(t, []int{4, 5}, placement.Rows)

	shadow := grid.Clone()
	placement.Ledger.Apply(shadow, block.Columns)

	s := &search{grid: shadow, block: block, ledger: &Ledger{}}
	s.eachRun(func(r run) bool {
		genders := map[model.Gender]bool{}
		for k := 0; k < r.size; k++ {
			if s.occupied(r.start+k) && s.gender(r.start+k) != "" {
				genders[s.gender(r.start+k)] = true
			}
		}
		assert.LessOrEqual(t, len(genders), 1, "run at %d mixes genders", r.start)
		return true
	})
}
