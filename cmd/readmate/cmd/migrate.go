package cmd

import (
	"fmt"

	"github.com/readmate/readmate/internal/app"
	"github.com/readmate/readmate/internal/db"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations (sql store only)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the applied migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSQL(func(a *app.App) error {
				version, err := db.Version(a.DB.DB, a.Cfg.DBDriver)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d\n", version)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSQL(func(a *app.App) error {
				return db.MigrateDown(a.DB.DB, a.Cfg.DBDriver)
			})
		},
	})

	return cmd
}

// withSQL runs fn against an app backed by the SQL store. Opening the app
// already applies pending migrations.
func withSQL(fn func(a *app.App) error) error {
	return withApp(func(a *app.App) error {
		if a.DB == nil {
			return fmt.Errorf("store backend %q has no migrations", a.Cfg.StoreBackend)
		}
		return fn(a)
	})
}
