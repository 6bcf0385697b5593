package main

import (
	"fmt"

	"github.com/phrazzld/flashdeck/internal/migrations"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|reset|status|version]",
	Short:     "Manage the database schema",
	Long:      `Apply, roll back or inspect the embedded schema migrations. Defaults to "up".`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{migrations.CommandUp, migrations.CommandDown, migrations.CommandReset, migrations.CommandStatus, migrations.CommandVersion},
	RunE: func(cmd *cobra.Command, args []string) error {
		command := migrations.CommandUp
		if len(args) == 1 {
			command = args[0]
		}

		dialect, err := migrationDialect(cfg.Database.Driver)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		db, err := openDatabase(ctx, cfg.Database, appLogger)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := migrations.Run(ctx, db, dialect, command, appLogger); err != nil {
			return fmt.Errorf("migrate %s: %w", command, err)
		}

		if command == migrations.CommandVersion {
			version, err := migrations.CurrentVersion(ctx, db, dialect)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
