package main

import (
	"fmt"
	"os"

	"github.com/shrimpcfr/backend/internal/infrastructure/config"
	"github.com/shrimpcfr/backend/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

var (
	migrationsPath string
	logLevel       string

	log *zap.Logger
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "CFR database migration tool",
	Long: `Apply the postgres schema migrations and load reference data.

Without --path the migrations embedded in the binary are used.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		log, err = logger.New(&logger.Config{
			Level:      logLevel,
			Format:     "console",
			Output:     "stdout",
			TimeFormat: "2006-01-02 15:04:05",
		})
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsPath, "path", "",
		"migrations directory (default: embedded migrations; ./migrations for create and list)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		upCmd,
		downCmd,
		stepsCmd,
		gotoCmd,
		versionCmd,
		forceCmd,
		createCmd,
		listCmd,
		seedCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
