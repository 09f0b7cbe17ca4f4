package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adilbekov/umrah-rooming/cmd/cli/commands"
	"github.com/adilbekov/umrah-rooming/internal/config"
	"github.com/adilbekov/umrah-rooming/pkg/clients/gridfile"
	"github.com/adilbekov/umrah-rooming/pkg/clients/sheetsclient"
	"github.com/adilbekov/umrah-rooming/pkg/utils/logging"
)

var (
	env        string
	gridPath   string
	app        *commands.AppContext
	rootLogger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rooming",
		Short: "Umrah rooming CLI - Allocate pilgrimage bookings into tour manifests",
		Long:  `A CLI tool for allocating pilgrimage bookings into the room grids of Google Sheets tour manifests.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rootLogger != nil {
				rootLogger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVar(&gridPath, "gridfile", "", "Local .xlsx workbook to run against instead of the live sheet (read-only)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.PlaceBookingCmd(appRef()))
	rootCmd.AddCommand(commands.ListOpenSlotsCmd(appRef()))
	rootCmd.AddCommand(commands.ListPackagesCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext. Commands capture the pointer at
// registration time; initApp fills it in before any RunE executes.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config and the grid source (live sheet or local
// workbook)
func initApp() error {
	var err error
	ctx := context.Background()

	rootLogger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	rootLogger.Info("Starting application", zap.String("environment", env))

	rootLogger.Info("Loading configuration")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	rootLogger.Debug("Configuration loaded successfully")

	app.Cfg = cfg
	app.Logger = rootLogger
	app.Ctx = ctx

	ttl := time.Duration(cfg.CatalogTTLMinutesOrDefault()) * time.Minute

	if gridPath != "" {
		rootLogger.Info("Running against local workbook", zap.String("path", gridPath))
		provider := gridfile.New(gridPath)
		app.Grids = provider
		app.Catalog = sheetsclient.NewCatalog(provider, ttl)
		return nil
	}

	rootLogger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	rootLogger.Debug("OAuth configuration loaded successfully")

	rootLogger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(ctx, oauthCfg)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}
	rootLogger.Debug("Sheets client initialized successfully")

	app.Grids = client
	app.Writer = client
	app.Catalog = sheetsclient.NewCatalog(client, ttl)

	return nil
}
