package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/adilbekov/umrah-rooming/pkg/core/allocator"
	"github.com/adilbekov/umrah-rooming/pkg/core/manifest"
	"github.com/adilbekov/umrah-rooming/pkg/core/model"
	"github.com/adilbekov/umrah-rooming/pkg/core/rooms"
)

// OpenSlotsQuery narrows the rooms ListOpenSlots returns. RoomLabel and
// Gender are optional; Count defaults to one free bed.
type OpenSlotsQuery struct {
	PackageName string
	RoomLabel   string
	Gender      string
	Count       int
}

// ListOpenSlots fetches the manifest and enumerates rooms an operator can
// place guests into by hand, applying the query's room-kind, gender and
// free-bed filters.
func ListOpenSlots(
	ctx context.Context,
	source GridSource,
	logger *zap.Logger,
	spreadsheetID string,
	sheetTitle string,
	query OpenSlotsQuery,
) ([]allocator.OpenRoom, error) {
	var desired rooms.Kind
	if query.RoomLabel != "" {
		kind, ok := rooms.ParseRoomLabel(query.RoomLabel)
		if !ok {
			return nil, fmt.Errorf("unrecognized room type %q", query.RoomLabel)
		}
		desired = kind
	}

	var gender model.Gender
	if query.Gender != "" {
		gender = model.NormalizeGender(query.Gender)
		if !gender.IsValid() {
			return nil, fmt.Errorf("unrecognized gender %q", query.Gender)
		}
	}

	logger.Debug("Listing open slots",
		zap.String("package", query.PackageName),
		zap.String("room_type", string(desired)),
		zap.String("gender", string(gender)),
		zap.Int("count", query.Count))

	grid, err := source.GetGrid(spreadsheetID, sheetTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grid: %w", err)
	}

	block, err := manifest.ResolveBlock(grid, query.PackageName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve package: %w", err)
	}

	open := allocator.ListOpenSlots(grid, block, desired, gender, query.Count)
	logger.Info("Open slots listed",
		zap.String("package", block.Name),
		zap.Int("rooms", len(open)))

	return open, nil
}
