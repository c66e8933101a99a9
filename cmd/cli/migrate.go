package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/menye94/park-pricing/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <up|down>",
	Short: "Apply or roll back schema migrations",
	Long: `Apply all pending schema migrations (up) or roll back the most recent
one (down). The reference data seed is itself a migration.`,
	Example: `  park-pricing migrate up
  park-pricing migrate down`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(database.Up), string(database.Down)},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	dir := database.Direction(args[0])
	if dir != database.Up && dir != database.Down {
		return fmt.Errorf("invalid direction %q (use 'up' or 'down')", args[0])
	}
	url, err := databaseURL()
	if err != nil {
		return err
	}
	if err := database.Migrate(url, dir); err != nil {
		return err
	}
	logger.Info().Str("direction", string(dir)).Msg("Migrations applied")
	return nil
}
