package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/adilbekov/umrah-rooming/internal/config"
	"github.com/adilbekov/umrah-rooming/pkg/core/services"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg     *config.Config
	Grids   services.GridSource
	Writer  services.PlanApplier // nil when running against a local workbook
	Catalog services.PackageCatalog
	Logger  *zap.Logger
	Ctx     context.Context
}

// Offline reports whether the session runs against a local workbook with
// no write path.
func (a *AppContext) Offline() bool {
	return a.Writer == nil
}

// SheetTitle resolves the worksheet tab for one command invocation: the
// --sheet flag when given, the configured default otherwise.
func (a *AppContext) SheetTitle(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return a.Cfg.ManifestTab
}
