package sheetsclient

import "fmt"

// ColumnLetter converts a 1-based column number to its A1 letter form
// (1 => A, 27 => AA).
func ColumnLetter(col int) string {
	letters := ""
	for col > 0 {
		rem := (col - 1) % 26
		letters = string(rune('A'+rem)) + letters
		col = (col - rem) / 26
	}
	return letters
}

// CellRef formats a 1-based row/column pair as an A1 cell reference.
func CellRef(row, col int) string {
	return fmt.Sprintf("%s%d", ColumnLetter(col), row)
}
