package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/phrazzld/lingo-review/internal/platform/migrations"
	"github.com/phrazzld/lingo-review/internal/platform/sqlstore"
	"github.com/phrazzld/lingo-review/internal/redact"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE:  runMigrate("up"),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE:  runMigrate("down"),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE:  runMigrate("status"),
	})
	return cmd
}

func runMigrate(action string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		db, err := sqlstore.Open(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to open database: %s", redact.Error(err))
		}
		defer db.Close()

		driver := cfg.Database.Driver
		out := cmd.OutOrStdout()

		switch action {
		case "up":
			n, err := migrations.Up(ctx, driver, db.DB)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "applied %d migration(s)\n", n)

		case "down":
			rolledBack, err := migrations.Down(ctx, driver, db.DB)
			if err != nil {
				return err
			}
			if rolledBack {
				fmt.Fprintln(out, "rolled back 1 migration")
			} else {
				fmt.Fprintln(out, "no migration to roll back")
			}

		case "status":
			statuses, err := migrations.Statuses(ctx, driver, db.DB)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tPATH")
			for _, s := range statuses {
				state, appliedAt := "pending", "-"
				if s.Applied {
					state = "applied"
					appliedAt = s.AppliedAt.UTC().Format(time.RFC3339)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Version, state, appliedAt, s.Path)
			}
			return tw.Flush()
		}
		return nil
	}
}
