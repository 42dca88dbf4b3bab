package main

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	identityapp "github.com/shrimpcfr/backend/internal/application/identity"
	"github.com/shrimpcfr/backend/internal/infrastructure/migration"
	"github.com/shrimpcfr/backend/internal/infrastructure/persistence"
	"github.com/shrimpcfr/backend/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migration.Migrator) error { return m.Up() })
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migration.Migrator) error { return m.Down() })
	},
}

var stepsCmd = &cobra.Command{
	Use:     "steps <n>",
	Aliases: []string{"step"},
	Short:   "Apply n migrations, negative n rolls back",
	Example: "  migrate steps -1",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n == 0 {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return withMigrator(func(m *migration.Migrator) error { return m.Steps(n) })
	},
}

var gotoCmd = &cobra.Command{
	Use:   "goto <version>",
	Short: "Migrate up or down to a version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := parseVersion(args[0])
		if err != nil {
			return err
		}
		return withMigrator(func(m *migration.Migrator) error { return m.GoTo(version) })
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the applied migration version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migration.Migrator) error {
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			if version == 0 {
				log.Info("No migrations applied")
				return nil
			}
			log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
			return nil
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force <version>",
	Short: "Set the version without running migrations (clears a dirty state)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return withMigrator(func(m *migration.Migrator) error { return m.Force(version) })
	},
}

var createCmd = &cobra.Command{
	Use:     "create <name>",
	Short:   "Create an empty up/down migration pair",
	Example: `  migrate create "add rate audit table"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := migrationsDir()
		if err != nil {
			return err
		}
		mf, err := migration.CreateMigration(dir, args[0])
		if err != nil {
			return err
		}
		log.Info("Migration created",
			zap.Uint("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List migration files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := migrationsDir()
		if err != nil {
			return err
		}
		files, err := migration.ListMigrations(dir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			log.Info("No migrations found", zap.String("dir", dir))
			return nil
		}
		out := cmd.OutOrStdout()
		for _, f := range files {
			fmt.Fprintf(out, "  %06d  %s\n", f.Version, f.Name)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load factory rates, products, constants and the default admin",
	Long: `Insert the embedded reference data into empty tables and create or
restore the default administrator. Running it again changes nothing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		db, err := persistence.NewDatabase(&cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer func() { _ = db.Close() }()

		if db.Driver == "sqlite" {
			if err := db.AutoMigrate(ctx); err != nil {
				return err
			}
		}

		users := identityapp.NewUserService(persistence.NewGormUserRepository(db.DB), log)
		result, err := persistence.NewSeeder(
			persistence.NewGormRateRepository(db.DB),
			persistence.NewGormProductRepository(db.DB),
			persistence.NewGormConstantsRepository(db.DB),
			users,
			log,
		).Seed(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d rates, %d products, constants: %t\n",
			result.Rates, result.Products, result.Constants)
		return nil
	},
}

// withMigrator opens postgres, runs fn and closes the migrator, which also
// closes the connection
func withMigrator(fn func(*migration.Migrator) error) error {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	var m *migration.Migrator
	if migrationsPath == "" {
		log.Debug("Using embedded migrations")
		m, err = migration.NewFromFS(db, migrations.FS, log)
	} else {
		dir, absErr := filepath.Abs(migrationsPath)
		if absErr != nil {
			_ = db.Close()
			return absErr
		}
		log.Debug("Using migrations directory", zap.String("dir", dir))
		m, err = migration.New(db, dir, log)
	}
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Error closing migrator", zap.Error(err))
		}
	}()

	return fn(m)
}

func migrationsDir() (string, error) {
	dir := migrationsPath
	if dir == "" {
		dir = defaultMigrationsDir
	}
	return filepath.Abs(dir)
}

func parseVersion(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid version %q", s)
	}
	return uint(v), nil
}
