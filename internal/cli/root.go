// Package cli implements the dispatch command tree.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"flight-ops/dispatch/internal/config"
	"flight-ops/dispatch/internal/db"
	"flight-ops/dispatch/internal/logging"
	"flight-ops/dispatch/internal/metrics"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// App carries the process-wide state shared by every command
type App struct {
	In  io.Reader
	Out io.Writer

	// Deps is built in the root pre-run unless a caller supplied it
	Deps *Dependencies

	configPath string
	noColor    bool
	prompt     *prompter
	sessionID  string
	gormDB     *gorm.DB
	owned      bool
}

func (a *App) printer() *printer {
	return newPrinter(a.Out, a.noColor)
}

// prompter is shared so buffered input is not lost between questions
func (a *App) prompter() *prompter {
	if a.prompt == nil {
		a.prompt = newPrompter(a.In, a.Out)
	}
	return a.prompt
}

// NewRootCommand builds the dispatch command tree around app
func NewRootCommand(app *App) *cobra.Command {
	if app.In == nil {
		app.In = os.Stdin
	}
	if app.Out == nil {
		app.Out = os.Stdout
	}

	root := &cobra.Command{
		Use:           "dispatch",
		Short:         "Flight operations record keeper",
		Long:          "dispatch keeps airports, aircraft, pilots and flights, and refuses to double-book an aircraft or a pilot on the same date.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.bootstrap(cmd)
		},
	}

	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default ./dispatch.yaml or ./config/dispatch.yaml)")
	root.PersistentFlags().BoolVar(&app.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(
		newAirportCommand(app),
		newAircraftCommand(app),
		newPilotCommand(app),
		newFlightCommand(app),
		newReportCommand(app),
		newMigrateCommand(app),
	)
	return root
}

// bootstrap loads config, starts logging and opens the migrated store
func (a *App) bootstrap(cmd *cobra.Command) error {
	a.sessionID = uuid.New().String()
	if a.Deps != nil {
		return nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if err := logging.Init(cfg.App.Env, cfg.Log); err != nil {
		return err
	}
	logger := logging.WithSession(a.sessionID, commandPath(cmd))

	gormDB, err := db.Open(&cfg.Database, logger)
	if err != nil {
		logger.Errorw("Failed to open store", "error", err)
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		_ = db.Close(gormDB)
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := db.RunMigrations(sqlDB, cfg.Database.Driver, logger); err != nil {
		logger.Errorw("Failed to migrate store", "error", err)
		_ = db.Close(gormDB)
		return err
	}

	sqlxDB, err := db.NewSQLX(gormDB, cfg.Database.Driver)
	if err != nil {
		_ = db.Close(gormDB)
		return err
	}

	a.gormDB = gormDB
	a.owned = true
	a.Deps = InitDependencies(cfg, gormDB, sqlxDB, metrics.NewMetricsRegistry(), logger)

	logger.Debugw("Command started", "args", strings.Join(os.Args[1:], " "))
	return nil
}

// Shutdown dumps metrics and releases what bootstrap opened. It runs after
// failed commands too, so it is safe to call more than once.
func (a *App) Shutdown() error {
	if a.Deps == nil || !a.owned {
		return nil
	}
	a.owned = false

	if path := a.Deps.Config.Metrics.Textfile; path != "" {
		if err := a.Deps.Metrics.WriteTextfile(path); err != nil {
			a.Deps.Logger.Warnw("Failed to write metrics textfile", "path", path, "error", err)
		}
	}

	err := db.Close(a.gormDB)
	_ = logging.Close()
	return err
}

func commandPath(cmd *cobra.Command) string {
	return strings.TrimPrefix(cmd.CommandPath(), "dispatch ")
}

// Execute runs the command tree on the process arguments and returns the exit code
func Execute() int {
	app := &App{}
	root := NewRootCommand(app)

	err := root.Execute()
	if shutdownErr := app.Shutdown(); err == nil {
		err = shutdownErr
	}
	if err != nil {
		app.printer().failure(err)
		return 1
	}
	return 0
}
