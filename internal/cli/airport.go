package cli

import (
	"fmt"
	"os"

	"flight-ops/dispatch/internal/constants"
	"flight-ops/dispatch/internal/models/dtos"

	"github.com/spf13/cobra"
)

func newAirportCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "airport",
		Aliases: []string{"airports"},
		Short:   "Manage airports",
	}
	cmd.AddCommand(
		newAirportListCommand(app),
		newAirportAddCommand(app),
		newAirportUpdateCommand(app),
		newAirportDeleteCommand(app),
		newAirportImportCommand(app),
	)
	return cmd
}

func newAirportListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List airports ordered by country",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			airports, err := app.Deps.Services.Airports.ListAirports(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(airports))
			for _, a := range airports {
				rows = append(rows, []string{a.IATACode, a.Name, a.City, a.Country})
			}
			app.printer().table([]string{"IATA", "Name", "City", "Country"}, rows)
			return nil
		},
	}
}

func newAirportAddCommand(app *App) *cobra.Command {
	var req dtos.CreateAirportRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an airport",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.prompter()
			var err error
			if req.IATACode, err = flagOrAsk(p, req.IATACode, "IATA code"); err != nil {
				return err
			}
			if req.Name, err = flagOrAsk(p, req.Name, "Airport name"); err != nil {
				return err
			}
			if req.City, err = flagOrAsk(p, req.City, "City"); err != nil {
				return err
			}
			if req.Country, err = flagOrAsk(p, req.Country, "Country"); err != nil {
				return err
			}

			airport, err := app.Deps.Services.Airports.AddAirport(cmd.Context(), &req)
			if err != nil {
				return err
			}
			app.printer().success("airport %s (%s) added", airport.IATACode, airport.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.IATACode, "code", "", "3-letter IATA code")
	cmd.Flags().StringVar(&req.Name, "name", "", "airport name")
	cmd.Flags().StringVar(&req.City, "city", "", "city")
	cmd.Flags().StringVar(&req.Country, "country", "", "country")
	return cmd
}

func newAirportUpdateCommand(app *App) *cobra.Command {
	var req dtos.UpdateAirportRequest

	cmd := &cobra.Command{
		Use:   "update CODE",
		Short: "Update name, city or country of an airport (omitted values are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			airport, err := app.Deps.Services.Airports.UpdateAirport(cmd.Context(), args[0], &req)
			if err != nil {
				return err
			}
			app.printer().success("airport %s now reads %s, %s, %s", airport.IATACode, airport.Name, airport.City, airport.Country)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "new airport name")
	cmd.Flags().StringVar(&req.City, "city", "", "new city")
	cmd.Flags().StringVar(&req.Country, "country", "", "new country")
	return cmd
}

func newAirportDeleteCommand(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete CODE",
		Short: "Delete an airport no flight uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirmed(app, yes, fmt.Sprintf("Delete airport %s?", args[0]))
			if err != nil || !ok {
				return err
			}
			if err := app.Deps.Services.Airports.DeleteAirport(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.printer().success("airport %s deleted", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newAirportImportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import airports from a JSON file keyed by ICAO code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer file.Close()

			count, err := app.Deps.Services.Airports.ImportAirports(cmd.Context(), file)
			if err != nil {
				return err
			}
			app.printer().success("%d airports imported", count)
			return nil
		},
	}
}

// flagOrAsk returns value, prompting for it when the flag was left empty
func flagOrAsk(p *prompter, value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return p.ask(label)
}

// confirmed asks before a destructive step unless yes was given
func confirmed(app *App, yes bool, question string) (bool, error) {
	if yes {
		return true, nil
	}
	ok, err := app.prompter().confirm(question)
	if err != nil {
		return false, err
	}
	if !ok {
		app.printer().warn(constants.MsgDeletionCancelled)
	}
	return ok, nil
}
