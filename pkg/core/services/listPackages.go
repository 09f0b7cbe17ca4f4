package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// PackageCatalog defines the cached discovery operations
type PackageCatalog interface {
	SheetTitles(spreadsheetID string) ([]string, error)
	Packages(spreadsheetID, sheetTitle string) ([]string, error)
}

// WorksheetPackages is one worksheet tab and the packages it holds.
type WorksheetPackages struct {
	SheetTitle string
	Packages   []string
}

// ListPackages returns the packages of one worksheet, or of every
// worksheet in the spreadsheet when sheetTitle is empty.
func ListPackages(
	ctx context.Context,
	catalog PackageCatalog,
	logger *zap.Logger,
	spreadsheetID string,
	sheetTitle string,
) ([]WorksheetPackages, error) {
	titles := []string{sheetTitle}
	if sheetTitle == "" {
		all, err := catalog.SheetTitles(spreadsheetID)
		if err != nil {
			return nil, fmt.Errorf("failed to list worksheets: %w", err)
		}
		titles = all
	}

	out := make([]WorksheetPackages, 0, len(titles))
	for _, title := range titles {
		packages, err := catalog.Packages(spreadsheetID, title)
		if err != nil {
			return nil, fmt.Errorf("failed to list packages of %q: %w", title, err)
		}
		logger.Debug("Worksheet scanned",
			zap.String("sheet", title),
			zap.Int("packages", len(packages)))
		out = append(out, WorksheetPackages{SheetTitle: title, Packages: packages})
	}

	return out, nil
}
