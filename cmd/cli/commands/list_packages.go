package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adilbekov/umrah-rooming/pkg/core/services"
)

// ListPackagesCmd creates the listPackages command
func ListPackagesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listPackages",
		Short: "List the packages on a worksheet (or every worksheet)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, _ := cmd.Flags().GetString("sheet")
			all, _ := cmd.Flags().GetBool("all")

			title := app.SheetTitle(sheet)
			if all {
				title = ""
			}

			app.Logger.Debug("listPackages command", zap.String("sheet", title))

			worksheets, err := services.ListPackages(
				app.Ctx,
				app.Catalog,
				app.Logger,
				app.Cfg.ManifestSheetID,
				title,
			)
			if err != nil {
				return err
			}

			for _, ws := range worksheets {
				fmt.Printf("\n%s:\n", ws.SheetTitle)
				if len(ws.Packages) == 0 {
					fmt.Println("  (no packages found)")
					continue
				}
				for _, pkg := range ws.Packages {
					fmt.Printf("  - %s\n", pkg)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("sheet", "", "Worksheet tab (defaults to the configured one)")
	cmd.Flags().Bool("all", false, "Scan every worksheet in the spreadsheet")

	return cmd
}
