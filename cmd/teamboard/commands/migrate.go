package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"teamboard/internal/di"
	"teamboard/internal/infrastructure/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate --to <driver>",
	Short: "Copy all boards to another storage driver",
	Long: `Copy every board from the configured storage driver to another one.

The daemon should be stopped while migrating. Boards that already exist in
the target are overwritten. Afterwards set storage.driver in the config to
the new driver.

Examples:
  # Move from markdown files to sqlite
  teamboard migrate --to sqlite

  # Preview what would be copied
  teamboard migrate --to sqlite --dry-run`,
	Annotations: map[string]string{noDaemon: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if from == "" {
			from = cfg.Storage.Driver
		}
		if from == to {
			return fmt.Errorf("source and target driver are both %s", from)
		}

		source, closeSource, err := di.OpenRepository(cfg, from)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", from, err)
		}
		defer closeSource()

		target, closeTarget, err := di.OpenRepository(cfg, to)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", to, err)
		}
		defer closeTarget()

		boards, err := source.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to read boards: %w", err)
		}
		if len(boards) == 0 {
			printer.Info("No boards found. Nothing to migrate.")
			return nil
		}

		migrated := 0
		for _, board := range boards {
			if dryRun {
				printer.Println("  would copy %s (%d lists, %d cards)", board.ID(), len(board.Lists()), board.CardCount())
				continue
			}
			if err := target.Save(ctx, board); err != nil {
				printer.Error("Failed to copy board %s: %v", board.ID(), err)
				continue
			}
			printer.Success("Copied board %s", board.ID())
			migrated++
		}

		if dryRun {
			return nil
		}
		printer.Info("Migrated %d of %d board(s) from %s to %s", migrated, len(boards), from, to)
		if migrated < len(boards) {
			return fmt.Errorf("%d board(s) failed to migrate", len(boards)-migrated)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().String("from", "", "Source driver (default: storage.driver)")
	migrateCmd.Flags().String("to", config.DriverSQLite, "Target driver: filesystem or sqlite")
	migrateCmd.Flags().Bool("dry-run", false, "Only list the boards that would be copied")
}
