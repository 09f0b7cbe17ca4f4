package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/adilbekov/umrah-rooming/pkg/clients/sheetsclient"
	"github.com/adilbekov/umrah-rooming/pkg/core/allocator"
	"github.com/adilbekov/umrah-rooming/pkg/core/manifest"
	"github.com/adilbekov/umrah-rooming/pkg/core/model"
	"github.com/adilbekov/umrah-rooming/pkg/core/rooms"
)

// GridSource defines the operations needed to fetch a worksheet grid
type GridSource interface {
	GetGrid(spreadsheetID, sheetTitle string) (manifest.Grid, error)
}

// PlanApplier defines the operations needed to write a booking to the sheet
type PlanApplier interface {
	ApplyWritePlan(spreadsheetID, sheetTitle string, plan *sheetsclient.WritePlan) error
}

// BookingPlacement is the result of placing one booking: the 1-based sheet
// row of every guest in booking order and the plan that was (or, on a dry
// run, would be) applied.
type BookingPlacement struct {
	Rows []int
	Plan *sheetsclient.WritePlan
}

// PlaceBooking allocates a booking into its package and writes it to the
// sheet. The allocation runs against a snapshot; before writing, the sheet
// is fetched again and every claimed bed re-checked, so a booking placed
// from another session in between surfaces as ErrStaleGrid instead of an
// overwrite. When dryRun is set the write is skipped and the plan returned
// for inspection.
func PlaceBooking(
	ctx context.Context,
	source GridSource,
	writer PlanApplier,
	logger *zap.Logger,
	spreadsheetID string,
	sheetTitle string,
	booking *model.Booking,
	dryRun bool,
) (*BookingPlacement, error) {
	if !booking.Mode.IsValid() {
		return nil, fmt.Errorf("invalid placement mode %q", booking.Mode)
	}
	if len(booking.Guests) == 0 {
		return nil, fmt.Errorf("booking has no guests")
	}

	desired, ok := rooms.ParseRoomLabel(booking.RoomLabel)
	if !ok {
		return nil, fmt.Errorf("unrecognized room type %q", booking.RoomLabel)
	}

	logger.Info("Placing booking",
		zap.String("booking_id", booking.ID),
		zap.String("package", booking.PackageName),
		zap.String("room_type", string(desired)),
		zap.String("mode", string(booking.Mode)),
		zap.Int("guests", len(booking.Guests)))

	logger.Debug("Fetching manifest grid", zap.String("sheet", sheetTitle))
	grid, err := source.GetGrid(spreadsheetID, sheetTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grid: %w", err)
	}

	block, err := manifest.ResolveBlock(grid, booking.PackageName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve package: %w", err)
	}

	logger.Debug("Package resolved",
		zap.String("package", block.Name),
		zap.Int("start_row", block.StartRow+1),
		zap.Int("end_row", block.EndRow))

	if booking.Train != "" && !manifest.HasTrainColumn(grid, booking.PackageName) {
		logger.Warn("Package table has no train column, train detail will be dropped",
			zap.String("package", booking.PackageName))
	}

	regulars := booking.RegularGuests()
	placement, err := allocator.AllocateGroup(grid, block, regulars, desired, booking.Mode)
	if err != nil {
		return nil, fmt.Errorf("allocation failed: %w", err)
	}

	finalRows, insertions, err := allocator.AttachDependents(booking.Guests, placement.Rows)
	if err != nil {
		return nil, fmt.Errorf("failed to attach dependents: %w", err)
	}

	logger.Info("Allocation complete",
		zap.Ints("rows", finalRows),
		zap.Int("claimed_beds", placement.Ledger.Len()),
		zap.Int("row_insertions", len(insertions)),
		zap.Int("transforms", len(placement.Transforms)))

	plan := BuildWritePlan(grid, block, booking, finalRows, insertions, placement.Transforms)
	result := &BookingPlacement{Rows: finalRows, Plan: plan}

	if dryRun {
		logger.Info("Dry run, skipping write", zap.Int("planned_updates", len(plan.Updates)))
		return result, nil
	}

	// Re-fetch and verify every claimed bed is still free before writing.
	logger.Debug("Re-checking claimed rows against a fresh snapshot")
	fresh, err := source.GetGrid(spreadsheetID, sheetTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to re-fetch grid: %w", err)
	}
	if err := verifyClaimsFresh(fresh, block, placement.Ledger); err != nil {
		return nil, err
	}

	if err := writer.ApplyWritePlan(spreadsheetID, sheetTitle, plan); err != nil {
		return nil, fmt.Errorf("failed to write booking: %w", err)
	}

	logger.Info("Booking written",
		zap.String("booking_id", booking.ID),
		zap.Ints("rows", finalRows))

	return result, nil
}

// verifyClaimsFresh checks the allocation's claims against a freshly
// fetched grid. The package must still start on the same row and every
// claimed bed must still be empty; anything else means another writer got
// there first.
func verifyClaimsFresh(fresh manifest.Grid, block *manifest.PackageBlock, ledger *allocator.Ledger) error {
	freshStart, err := manifest.LocatePackage(fresh, block.Name)
	if err != nil {
		return fmt.Errorf("%w: package %q no longer found", ErrStaleGrid, block.Name)
	}
	if freshStart != block.StartRow {
		return fmt.Errorf("%w: package %q moved from row %d to %d",
			ErrStaleGrid, block.Name, block.StartRow+1, freshStart+1)
	}

	surnameCol, hasSurname := block.Columns.Col(manifest.FieldSurname)
	firstCol, hasFirst := block.Columns.Col(manifest.FieldFirstName)

	for _, claim := range ledger.Claims() {
		occupied := false
		if hasSurname && manifest.Normalize(fresh.Cell(claim.Row, surnameCol)) != "" {
			occupied = true
		}
		if hasFirst && manifest.Normalize(fresh.Cell(claim.Row, firstCol)) != "" {
			occupied = true
		}
		if occupied {
			return fmt.Errorf("%w: row %d is now occupied", ErrStaleGrid, claim.Row+1)
		}
	}
	return nil
}
