package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adilbekov/umrah-rooming/pkg/clients/sheetsclient"
	"github.com/adilbekov/umrah-rooming/pkg/core/manifest"
	"github.com/adilbekov/umrah-rooming/pkg/core/model"
)

// fakeGridSource serves predefined snapshots in fetch order, repeating the
// last one.
type fakeGridSource struct {
	grids []manifest.Grid
	calls int
}

func (f *fakeGridSource) GetGrid(spreadsheetID, sheetTitle string) (manifest.Grid, error) {
	idx := f.calls
	if idx >= len(f.grids) {
		idx = len(f.grids) - 1
	}
	f.calls++
	return f.grids[idx], nil
}

type fakeWriter struct {
	applied []*sheetsclient.WritePlan
}

func (f *fakeWriter) ApplyWritePlan(spreadsheetID, sheetTitle string, plan *sheetsclient.WritePlan) error {
	f.applied = append(f.applied, plan)
	return nil
}

func testBooking(guests ...model.Guest) *model.Booking {
	return &model.Booking{
		ID:          "b-1",
		PackageName: testPackage,
		RoomLabel:   "QUAD",
		Mode:        model.ModeSeparate,
		Meal:        "HB",
		Guests:      guests,
	}
}

func TestPlaceBooking_WritesBooking(t *testing.T) {
	grid := testGrid(testRoom{label: "QUAD"})
	source := &fakeGridSource{grids: []manifest.Grid{grid}}
	writer := &fakeWriter{}

	booking := testBooking(model.Guest{Surname: "AKHMETOV", FirstName: "NURLAN", Gender: model.Male})

	result, err := PlaceBooking(context.Background(), source, writer, zap.NewNop(),
		"ss-1", "March", booking, false)
	require.NoError(t, err)

	assert.Equal(t, []int{3}, result.Rows)
	require.Len(t, writer.applied, 1)
	assert.Equal(t, 2, source.calls, "snapshot plus freshness re-check")
}

func TestPlaceBooking_DryRunSkipsWrite(t *testing.T) {
	grid := testGrid(testRoom{label: "QUAD"})
	source := &fakeGridSource{grids: []manifest.Grid{grid}}
	writer := &fakeWriter{}

	booking := testBooking(model.Guest{Surname: "AKHMETOV", Gender: model.Male})

	result, err := PlaceBooking(context.Background(), source, writer, zap.NewNop(),
		"ss-1", "March", booking, true)
	require.NoError(t, err)

	assert.Empty(t, writer.applied)
	assert.NotEmpty(t, result.Plan.Updates)
	assert.Equal(t, 1, source.calls)
}

func TestPlaceBooking_StaleGrid(t *testing.T) {
	grid := testGrid(testRoom{label: "QUAD"})
	taken := testGrid(testRoom{label: "QUAD", beds: [][2]string{{"OTHER", "M"}}})
	source := &fakeGridSource{grids: []manifest.Grid{grid, taken}}
	writer := &fakeWriter{}

	booking := testBooking(model.Guest{Surname: "AKHMETOV", Gender: model.Male})

	_, err := PlaceBooking(context.Background(), source, writer, zap.NewNop(),
		"ss-1", "March", booking, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStaleGrid)
	assert.Empty(t, writer.applied)
}

func TestPlaceBooking_InfantAttachedBelowParent(t *testing.T) {
	grid := testGrid(testRoom{label: "DBL"})
	source := &fakeGridSource{grids: []manifest.Grid{grid}}
	writer := &fakeWriter{}

	booking := testBooking(
		model.Guest{Surname: "AKHMETOVA", FirstName: "AIDA", Gender: model.Female},
		model.Guest{Surname: "AKHMETOVA", FirstName: "AMINA", IsInfant: true},
	)

	result, err := PlaceBooking(context.Background(), source, writer, zap.NewNop(),
		"ss-1", "March", booking, false)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 4}, result.Rows)
	require.Len(t, result.Plan.Inserts, 1)
	assert.Equal(t, 4, result.Plan.Inserts[0].Row)
}

func TestPlaceBooking_RejectsBadInput(t *testing.T) {
	grid := testGrid(testRoom{label: "QUAD"})
	source := &fakeGridSource{grids: []manifest.Grid{grid}}
	writer := &fakeWriter{}

	booking := testBooking(model.Guest{Surname: "A", Gender: model.Male})
	booking.RoomLabel = "PENTHOUSE"
	_, err := PlaceBooking(context.Background(), source, writer, zap.NewNop(),
		"ss-1", "March", booking, false)
	require.Error(t, err)

	booking = testBooking()
	_, err = PlaceBooking(context.Background(), source, writer, zap.NewNop(),
		"ss-1", "March", booking, false)
	require.Error(t, err)

	booking = testBooking(model.Guest{Surname: "A", Gender: model.Male})
	booking.Mode = "together"
	_, err = PlaceBooking(context.Background(), source, writer, zap.NewNop(),
		"ss-1", "March", booking, false)
	require.Error(t, err)
}
