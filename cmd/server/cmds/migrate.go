package cmds

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/judgebase/judgebase-api/cmd/server/internal/migrations"
	"github.com/judgebase/judgebase-api/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		db, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeDB(db) //nolint:errcheck // best effort on exit

		if err := migrations.Up(ctx, db); err != nil {
			return fmt.Errorf("failed to perform database migrations: %w", err)
		}

		v, err := migrations.Version(ctx, db)
		if err != nil {
			return err
		}
		logger.Logger.InfoContext(ctx, "migrated database", "version", v)
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert every migration, dropping all data",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if !migrateConfirm {
			return ExitErrorWrap(2, errors.New("refusing to drop the schema without --yes"))
		}

		db, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeDB(db) //nolint:errcheck // best effort on exit

		if err := migrations.Down(ctx, db); err != nil {
			return fmt.Errorf("failed to revert database migrations: %w", err)
		}

		logger.Logger.InfoContext(ctx, "reverted every migration")
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		db, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeDB(db) //nolint:errcheck // best effort on exit

		v, err := migrations.Version(ctx, db)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var migrateConfirm bool

func init() {
	migrateDownCmd.Flags().BoolVar(&migrateConfirm, "yes", false, "Confirm dropping every table")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
