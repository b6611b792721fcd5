package cli

import (
	"fmt"

	"flight-ops/dispatch/internal/db"

	"github.com/spf13/cobra"
)

// newMigrateCommand applies pending migrations explicitly. The root pre-run
// already does so on every start, so this normally reports no change.
func newMigrateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sqlDB, err := app.Deps.Repo.DB().DB()
			if err != nil {
				return fmt.Errorf("failed to get underlying sql.DB: %w", err)
			}

			driver := app.Deps.Config.Database.Driver
			if err := db.RunMigrations(sqlDB, driver, app.Deps.Logger); err != nil {
				return err
			}
			app.printer().success("schema is up to date (%s)", driver)
			return nil
		},
	}
}
