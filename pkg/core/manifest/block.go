package manifest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPackageNotFound means no row in the grid matched the package name.
	ErrPackageNotFound = errors.New("package not found")
	// ErrHeadersNotFound means neither the keyword headers nor the
	// positional fallback could describe the package table.
	ErrHeadersNotFound = errors.New("package headers not found")
)

// packageNameCols is how many leading cells of a row take part in package
// name matching. Package headers occasionally spill across merged cells, so
// matching only the first cell misses them.
const packageNameCols = 10

// emptyRunEnd is the number of consecutive empty rows that terminates a
// package block.
const emptyRunEnd = 3

// PackageBlock is the contiguous row range of one travel package. StartRow
// is the package header row, HeaderRow the resolved table header row (data
// starts at HeaderRow+1), EndRow is exclusive. All indices are 0-based.
type PackageBlock struct {
	Name      string
	StartRow  int
	HeaderRow int
	EndRow    int
	Columns   ColumnMap
}

// DataStart returns the first data row of the block.
func (b *PackageBlock) DataStart() int {
	return b.HeaderRow + 1
}

// LocatePackage finds the row index of the package header for name. The
// first matching row wins. A row matches if the normalized name is a
// substring of its first cells; failing that, a row containing the last
// whitespace-delimited token of the name together with at least one digit
// is accepted, which recovers packages renamed mid-season.
func LocatePackage(grid Grid, name string) (int, error) {
	target := Normalize(name)
	if target == "" {
		return 0, fmt.Errorf("%w: empty package name", ErrPackageNotFound)
	}

	for i, row := range grid {
		if strings.Contains(rowText(row, packageNameCols), target) {
			return i, nil
		}
	}

	parts := strings.Fields(target)
	if len(parts) > 1 {
		keyword := parts[len(parts)-1]
		for i, row := range grid {
			text := rowText(row, packageNameCols)
			if strings.Contains(text, keyword) && containsDigit(text) {
				return i, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrPackageNotFound, name)
}

// ResolveBlock locates a package, resolves its table headers and determines
// where the block ends.
func ResolveBlock(grid Grid, name string) (*PackageBlock, error) {
	start, err := LocatePackage(grid, name)
	if err != nil {
		return nil, err
	}

	headerRow, cols, err := ResolveHeaders(grid, start)
	if err != nil {
		return nil, fmt.Errorf("%w: package %q", err, name)
	}

	return &PackageBlock{
		Name:      name,
		StartRow:  start,
		HeaderRow: headerRow,
		EndRow:    findBlockEnd(grid, headerRow),
		Columns:   cols,
	}, nil
}

// findBlockEnd scans below the header row for the block boundary: a run of
// empty rows, or a row that looks like the next package header.
func findBlockEnd(grid Grid, headerRow int) int {
	emptyStreak := 0
	for r := headerRow + 1; r < len(grid); r++ {
		var joined strings.Builder
		for _, c := range grid[r] {
			joined.WriteString(strings.TrimSpace(c))
		}
		text := joined.String()

		if len(text) < 2 {
			emptyStreak++
			if emptyStreak >= emptyRunEnd {
				return r - emptyStreak + 1
			}
			continue
		}
		emptyStreak = 0

		if isPackageHeaderRow(Normalize(text)) {
			return r
		}
	}
	return len(grid)
}

// isPackageHeaderRow recognizes the start of the next package: either a
// "… days" label or a short date-range line ("15.03-22.03 NIYET 2025").
func isPackageHeaderRow(norm string) bool {
	if strings.Contains(norm, "days") {
		return true
	}
	return strings.Contains(norm, "-") && strings.Contains(norm, "202") && len(norm) < 50
}

// HasTrainColumn reports whether the package table carries a train column.
// The writer uses this to decide whether rail data has a home on the sheet.
func HasTrainColumn(grid Grid, name string) bool {
	block, err := ResolveBlock(grid, name)
	if err != nil {
		return false
	}
	_, ok := block.Columns.Col(FieldTrain)
	return ok
}

// ListPackages scans a whole grid for package header rows and returns their
// normalized texts in sheet order. Used by the CLI to show what a worksheet
// contains.
func ListPackages(grid Grid) []string {
	var names []string
	for _, row := range grid {
		text := rowText(row, packageNameCols)
		if text == "" {
			continue
		}
		if isPackageHeaderRow(text) {
			names = append(names, text)
		}
	}
	return names
}
