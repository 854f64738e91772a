// Package cli provides the command-line interface for the trade journal.
package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tradelog/internal/config"
	"tradelog/internal/journal"
	"tradelog/internal/logging"
	"tradelog/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Store   store.ByteStore
	Journal *journal.Journal
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:     "tradelog",
		Short:   "Personal stock trade journal",
		Long:    "Record stock trades, close them out, and review profit/loss analytics.",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return app.init(configDir)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Store != nil {
				app.Store.Close()
			}
		},
	}

	rootCmd.PersistentFlags().String("config-dir", config.DefaultConfigDir(), "configuration directory")
	rootCmd.PersistentFlags().Bool("json", false, "output as JSON")

	addTradeCommands(rootCmd, app)
	addStatsCommands(rootCmd, app)
	addTransferCommands(rootCmd, app)
	addChartCommand(rootCmd, app)

	return rootCmd
}

// init loads configuration and opens the store and journal.
func (app *App) init(configDir string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	app.Config = cfg
	app.Logger = logging.NewLoggerWithConfig(cfg.LogConfig())

	bs, err := store.NewSQLiteStore(cfg.Journal.DatabasePath)
	if err != nil {
		return err
	}
	app.Store = bs
	app.Journal = journal.Open(context.Background(), bs, app.Logger)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
