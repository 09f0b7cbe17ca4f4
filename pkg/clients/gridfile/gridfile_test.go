package gridfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "March 2025"))
	require.NoError(t, f.SetCellValue("March 2025", "A1", "15.03-22.03 NIYET 2025"))
	require.NoError(t, f.SetCellValue("March 2025", "A2", "№"))
	require.NoError(t, f.SetCellValue("March 2025", "B2", "Type of room"))
	require.NoError(t, f.SetCellValue("March 2025", "B3", "QUAD"))
	require.NoError(t, f.SetCellValue("March 2025", "D3", "AKHMETOV"))

	path := filepath.Join(t.TempDir(), "manifest.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestProvider_GetGrid(t *testing.T) {
	provider := New(writeWorkbook(t))

	grid, err := provider.GetGrid("", "March 2025")
	require.NoError(t, err)

	require.True(t, len(grid) >= 3)
	assert.Equal(t, "15.03-22.03 NIYET 2025", grid.Cell(0, 0))
	assert.Equal(t, "QUAD", grid.Cell(2, 1))
	assert.Equal(t, "AKHMETOV", grid.Cell(2, 3))
}

func TestProvider_CaseInsensitiveTitle(t *testing.T) {
	provider := New(writeWorkbook(t))

	grid, err := provider.GetGrid("", "march 2025")
	require.NoError(t, err)
	assert.NotEmpty(t, grid)
}

func TestProvider_SheetNotFound(t *testing.T) {
	provider := New(writeWorkbook(t))

	_, err := provider.GetGrid("", "April 2025")
	require.Error(t, err)
}

func TestProvider_SheetTitles(t *testing.T) {
	provider := New(writeWorkbook(t))

	titles, err := provider.SheetTitles("")
	require.NoError(t, err)
	assert.Equal(t, []string{"March 2025"}, titles)
}
