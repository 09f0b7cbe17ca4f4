package manifest

import "strings"

// headerSearchWindow is how many rows below the package header are scanned
// for a recognizable table header.
const headerSearchWindow = 15

// positionalSearchWindow is how far below the package header the positional
// fallback looks for the first room data row.
const positionalSearchWindow = 40

// headerStrategy is one way of recovering the column layout of a package
// table. Strategies are tried in order; the first that succeeds wins.
type headerStrategy interface {
	// Resolve returns the header row index (data starts one row below it)
	// and the column map, or ok=false if the strategy does not apply.
	Resolve(grid Grid, packageRow int) (headerRow int, cols ColumnMap, ok bool)
}

// strategies in priority order: a real header row beats pattern inference.
var strategies = []headerStrategy{
	keywordStrategy{},
	positionalStrategy{},
}

// ResolveHeaders finds the table header row and column map for the package
// starting at packageRow. Resolution is deterministic: the same grid always
// yields the same map.
func ResolveHeaders(grid Grid, packageRow int) (int, ColumnMap, error) {
	for _, s := range strategies {
		if headerRow, cols, ok := s.Resolve(grid, packageRow); ok {
			return headerRow, cols, nil
		}
	}
	return 0, nil, ErrHeadersNotFound
}

// keywordStrategy matches header cells against known field keywords.
type keywordStrategy struct{}

func (keywordStrategy) Resolve(grid Grid, packageRow int) (int, ColumnMap, bool) {
	limit := min(packageRow+headerSearchWindow, len(grid))
	for r := packageRow; r < limit; r++ {
		if cols, ok := matchHeaderRow(grid[r]); ok {
			return r, cols, true
		}
	}
	return 0, nil, false
}

// matchHeaderRow builds a column map from one candidate header row. The row
// must mention a name-like header somewhere, and the resulting map must be
// usable, otherwise it was just data that happened to contain words.
func matchHeaderRow(row []string) (ColumnMap, bool) {
	clean := make([]string, len(row))
	for i, c := range row {
		clean[i] = Normalize(c)
	}

	joined := strings.Join(clean, " ")
	nameLike := false
	for _, kw := range []string{"last name", "фамилия", "names", "name"} {
		if strings.Contains(joined, kw) {
			nameLike = true
			break
		}
	}
	if !nameLike {
		return nil, false
	}

	cols := ColumnMap{}
	for idx, val := range clean {
		if val == "" {
			continue
		}
		for _, field := range headerFieldOrder {
			if _, taken := cols[field]; taken {
				continue
			}
			if matchesKeyword(val, headerKeywords[field]) {
				cols[field] = idx
			}
		}
	}

	if !cols.Usable() {
		return nil, false
	}
	return cols, true
}

func matchesKeyword(val string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == val || strings.Contains(val, kw) {
			return true
		}
	}
	return false
}

// positionalStrategy recovers tables whose header row was deleted or merged
// away. It looks for the first row matching the strict fixed layout
// [№, room, meal, surname, first name, gender, dob, doc num, doc expiry,
// national id] and maps columns by position.
type positionalStrategy struct{}

// positionalLayout is the fixed column order assumed when no header row
// exists. Trimmed to the actual row width on short rows.
var positionalLayout = []Field{
	FieldSequenceNumber,
	FieldRoom,
	FieldMeal,
	FieldSurname,
	FieldFirstName,
	FieldGender,
	FieldDateOfBirth,
	FieldDocumentNumber,
	FieldDocumentExpiry,
	FieldNationalID,
}

func (positionalStrategy) Resolve(grid Grid, packageRow int) (int, ColumnMap, bool) {
	limit := min(packageRow+positionalSearchWindow, len(grid))
	for r := packageRow + 1; r < limit; r++ {
		if !isProbableRoomDataRow(grid[r]) {
			continue
		}
		cols := ColumnMap{}
		for idx, field := range positionalLayout {
			if idx < len(grid[r]) {
				cols[field] = idx
			}
		}
		// Header row is notional: one above the first data row, so data
		// starts exactly where it was found.
		return r - 1, cols, true
	}
	return 0, nil, false
}

// isProbableRoomDataRow checks the strict first-room-row pattern: sequence
// number, room kind, meal code, then names and an M/F gender in column 5.
func isProbableRoomDataRow(row []string) bool {
	if len(row) < 6 {
		return false
	}
	c0 := Normalize(row[0])
	c1 := Normalize(row[1])
	c2 := Normalize(row[2])
	c5 := Normalize(row[5])

	if c0 == "" || c0[0] < '0' || c0[0] > '9' {
		return false
	}

	roomLike := false
	for _, kw := range []string{"quad", "quadro", "double", "dbl", "triple", "trpl", "single", "sgl", "1", "2", "3", "4"} {
		if strings.Contains(c1, kw) {
			roomLike = true
			break
		}
	}
	if !roomLike {
		return false
	}

	if c2 != "" {
		mealLike := false
		for _, kw := range []string{"hb", "bb", "fb", "ro", "inf", "chd"} {
			if kw == c2 || strings.Contains(c2, kw) {
				mealLike = true
				break
			}
		}
		if !mealLike {
			return false
		}
	}

	return c5 == "m" || c5 == "f"
}
