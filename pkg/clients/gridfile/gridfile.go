// Package gridfile loads booking manifests from local .xlsx workbooks, so
// allocation can be rehearsed against an exported copy of the sheet without
// touching the live spreadsheet.
package gridfile

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/adilbekov/umrah-rooming/pkg/core/manifest"
)

// Provider reads worksheet grids out of one workbook file.
type Provider struct {
	path string
}

// New creates a provider for the given workbook path. The file is opened
// per call, not held open.
func New(path string) *Provider {
	return &Provider{path: path}
}

// GetGrid loads one worksheet as a string grid. The spreadsheetID argument
// is ignored; it exists so the provider satisfies the same interface as
// the live Sheets client.
func (p *Provider) GetGrid(_ string, sheetTitle string) (manifest.Grid, error) {
	f, err := excelize.OpenFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", p.path, err)
	}
	defer f.Close()

	name, err := resolveSheetName(f, sheetTitle)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}

	return manifest.Grid(rows), nil
}

// SheetTitles lists the worksheet names in the workbook.
func (p *Provider) SheetTitles(_ string) ([]string, error) {
	f, err := excelize.OpenFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", p.path, err)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// resolveSheetName matches a requested title against the workbook's sheets,
// exact first, then case-insensitive on trimmed names.
func resolveSheetName(f *excelize.File, title string) (string, error) {
	want := strings.TrimSpace(title)
	sheets := f.GetSheetList()

	for _, name := range sheets {
		if name == want {
			return name, nil
		}
	}
	for _, name := range sheets {
		if strings.EqualFold(strings.TrimSpace(name), want) {
			return name, nil
		}
	}
	return "", fmt.Errorf("worksheet %q not found in %s", title, f.Path)
}
