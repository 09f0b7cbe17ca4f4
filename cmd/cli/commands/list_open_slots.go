package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adilbekov/umrah-rooming/pkg/core/services"
)

// ListOpenSlotsCmd creates the listOpenSlots command
func ListOpenSlotsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listOpenSlots <package>",
		Short: "List rooms with free beds for manual placement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, _ := cmd.Flags().GetString("room")
			gender, _ := cmd.Flags().GetString("gender")
			count, _ := cmd.Flags().GetInt("count")
			sheet, _ := cmd.Flags().GetString("sheet")

			app.Logger.Debug("listOpenSlots command",
				zap.String("package", args[0]),
				zap.String("room", room),
				zap.String("gender", gender))

			open, err := services.ListOpenSlots(
				app.Ctx,
				app.Grids,
				app.Logger,
				app.Cfg.ManifestSheetID,
				app.SheetTitle(sheet),
				services.OpenSlotsQuery{
					PackageName: args[0],
					RoomLabel:   room,
					Gender:      gender,
					Count:       count,
				},
			)
			if err != nil {
				return err
			}

			if len(open) == 0 {
				fmt.Println("\nNo rooms with matching free beds.")
				return nil
			}

			fmt.Printf("\nFound %d rooms with free beds:\n\n", len(open))
			for _, slot := range open {
				occupants := "empty"
				if len(slot.Guests) > 0 {
					occupants = strings.Join(slot.Guests, ", ")
				}
				genderTag := slot.Gender
				if genderTag == "" {
					genderTag = "-"
				}
				fmt.Printf("  row %3d  %-5s  free %d  [%s]  %s\n",
					slot.Row, strings.ToUpper(string(slot.Kind)), slot.FreeBeds, genderTag, occupants)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("room", "", "Restrict to one room type and its fallbacks")
	cmd.Flags().String("gender", "", "Restrict to rooms compatible with this gender")
	cmd.Flags().Int("count", 1, "Minimum free beds per room")
	cmd.Flags().String("sheet", "", "Worksheet tab (defaults to the configured one)")

	return cmd
}
