package commands

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adilbekov/umrah-rooming/pkg/core/model"
	"github.com/adilbekov/umrah-rooming/pkg/core/services"
)

// PlaceBookingCmd creates the placeBooking command
func PlaceBookingCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "placeBooking",
		Short: "Allocate a booking into a package and write it to the sheet",
		Long: `Run the room allocation for a booking and write the guests into the
manifest. The booking comes either from a YAML file (--from-file) or from
repeated --guest flags. Guests are given as "SURNAME,FIRSTNAME,GENDER";
append ",inf" or ",chd" for infants and children.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromFile, _ := cmd.Flags().GetString("from-file")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			sheet, _ := cmd.Flags().GetString("sheet")

			booking, err := bookingFromInvocation(cmd, fromFile)
			if err != nil {
				return err
			}

			if app.Offline() && !dryRun {
				app.Logger.Warn("No write path in offline mode, forcing dry run")
				dryRun = true
			}
			if booking.Manager == "" {
				booking.Manager = app.Cfg.DefaultManager
			}
			if booking.Meal == "" {
				booking.Meal = app.Cfg.DefaultMeal
			}

			app.Logger.Debug("placeBooking command",
				zap.String("package", booking.PackageName),
				zap.Bool("dry_run", dryRun))

			result, err := services.PlaceBooking(
				app.Ctx,
				app.Grids,
				app.Writer,
				app.Logger,
				app.Cfg.ManifestSheetID,
				app.SheetTitle(sheet),
				booking,
				dryRun,
			)
			if err != nil {
				return fmt.Errorf("placement failed: %w", err)
			}

			if dryRun {
				fmt.Printf("\nDry run: booking %s would occupy:\n\n", booking.ID)
			} else {
				fmt.Printf("\n✓ Booking %s written:\n\n", booking.ID)
			}
			for i, g := range booking.Guests {
				tag := ""
				switch {
				case g.IsInfant:
					tag = " [INF]"
				case g.IsChild:
					tag = " [CHD]"
				}
				fmt.Printf("  row %3d  %s %s%s\n", result.Rows[i], g.Surname, g.FirstName, tag)
			}
			fmt.Printf("\nPlanned sheet changes: %d cell updates, %d row insertions, %d merges\n\n",
				len(result.Plan.Updates), len(result.Plan.Inserts), len(result.Plan.Merges))

			return nil
		},
	}

	cmd.Flags().String("from-file", "", "YAML file describing the booking")
	cmd.Flags().String("package", "", "Package name, as printed by listPackages")
	cmd.Flags().String("room", "", "Requested room type (QUAD, TRPL, DBL, SGL, QUIN)")
	cmd.Flags().String("mode", string(model.ModeSeparate), "Placement mode: family or separate")
	cmd.Flags().StringArray("guest", nil, `Guest as "SURNAME,FIRSTNAME,GENDER[,inf|chd]" (repeatable)`)
	cmd.Flags().String("manager", "", "Manager name for the booking rows")
	cmd.Flags().String("comment", "", "Comment for the booking rows")
	cmd.Flags().String("source", "", "Lead source for the booking rows")
	cmd.Flags().String("price", "", "Package price per guest")
	cmd.Flags().String("paid", "", "Amount already paid")
	cmd.Flags().String("meal", "", "Meal code (HB, BB, FB, RO)")
	cmd.Flags().String("train", "", "Train detail, if the package table has a train column")
	cmd.Flags().String("sheet", "", "Worksheet tab (defaults to the configured one)")
	cmd.Flags().Bool("dry-run", false, "Allocate and plan only, do not write")

	return cmd
}

// bookingFromInvocation assembles the booking either from --from-file or
// from the individual flags.
func bookingFromInvocation(cmd *cobra.Command, fromFile string) (*model.Booking, error) {
	if fromFile != "" {
		return loadBookingFile(fromFile)
	}

	pkg, _ := cmd.Flags().GetString("package")
	room, _ := cmd.Flags().GetString("room")
	mode, _ := cmd.Flags().GetString("mode")
	guestSpecs, _ := cmd.Flags().GetStringArray("guest")

	if pkg == "" {
		return nil, fmt.Errorf("either --from-file or --package is required")
	}
	if room == "" {
		return nil, fmt.Errorf("--room is required")
	}
	if len(guestSpecs) == 0 {
		return nil, fmt.Errorf("at least one --guest is required")
	}

	booking := &model.Booking{
		ID:          uuid.New().String(),
		PackageName: pkg,
		RoomLabel:   room,
		Mode:        model.PlacementMode(mode),
	}
	booking.Manager, _ = cmd.Flags().GetString("manager")
	booking.Comment, _ = cmd.Flags().GetString("comment")
	booking.Source, _ = cmd.Flags().GetString("source")
	booking.Price, _ = cmd.Flags().GetString("price")
	booking.AmountPaid, _ = cmd.Flags().GetString("paid")
	booking.Meal, _ = cmd.Flags().GetString("meal")
	booking.Train, _ = cmd.Flags().GetString("train")

	for _, spec := range guestSpecs {
		guest, err := parseGuestSpec(spec)
		if err != nil {
			return nil, err
		}
		booking.Guests = append(booking.Guests, guest)
	}

	return booking, nil
}

// parseGuestSpec parses one --guest value. Gender may be omitted for
// infants and children.
func parseGuestSpec(spec string) (model.Guest, error) {
	parts := strings.Split(spec, ",")
	if len(parts) < 2 {
		return model.Guest{}, fmt.Errorf("guest %q: want SURNAME,FIRSTNAME,GENDER[,inf|chd]", spec)
	}

	guest := model.Guest{
		Surname:   strings.TrimSpace(parts[0]),
		FirstName: strings.TrimSpace(parts[1]),
	}

	for _, part := range parts[2:] {
		token := strings.ToLower(strings.TrimSpace(part))
		switch token {
		case "inf", "infant":
			guest.IsInfant = true
		case "chd", "child":
			guest.IsChild = true
		case "":
		default:
			gender := model.NormalizeGender(token)
			if !gender.IsValid() {
				return model.Guest{}, fmt.Errorf("guest %q: unrecognized token %q", spec, part)
			}
			guest.Gender = gender
		}
	}

	if !guest.IsDependent() && !guest.Gender.IsValid() {
		return model.Guest{}, fmt.Errorf("guest %q: gender is required for regular guests", spec)
	}

	return guest, nil
}
