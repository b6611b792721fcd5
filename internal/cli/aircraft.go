package cli

import (
	"fmt"
	"strconv"

	"flight-ops/dispatch/internal/models/dtos"

	"github.com/spf13/cobra"
)

func newAircraftCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aircraft",
		Short: "Manage the fleet",
	}
	cmd.AddCommand(
		newAircraftListCommand(app),
		newAircraftAddCommand(app),
		newAircraftDeleteCommand(app),
	)
	return cmd
}

func newAircraftListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List aircraft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fleet, err := app.Deps.Services.Aircraft.ListAircraft(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(fleet))
			for _, a := range fleet {
				rows = append(rows, []string{a.AircraftID, a.Model, strconv.Itoa(a.Capacity), a.Manufacturer, a.RegistrationNumber})
			}
			app.printer().table([]string{"Aircraft ID", "Model", "Capacity", "Manufacturer", "Registration"}, rows)
			return nil
		},
	}
}

func newAircraftAddCommand(app *App) *cobra.Command {
	var req dtos.CreateAircraftRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an aircraft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.prompter()
			var err error
			if req.AircraftID, err = flagOrAsk(p, req.AircraftID, "Aircraft ID"); err != nil {
				return err
			}
			if req.Model, err = flagOrAsk(p, req.Model, "Model"); err != nil {
				return err
			}
			if req.Capacity == 0 {
				raw, err := p.ask("Capacity")
				if err != nil {
					return err
				}
				if req.Capacity, err = strconv.Atoi(raw); err != nil {
					return fmt.Errorf("capacity must be a whole number: %w", err)
				}
			}
			if req.Manufacturer, err = flagOrAsk(p, req.Manufacturer, "Manufacturer"); err != nil {
				return err
			}
			if req.RegistrationNumber, err = flagOrAsk(p, req.RegistrationNumber, "Registration number"); err != nil {
				return err
			}

			aircraft, err := app.Deps.Services.Aircraft.AddAircraft(cmd.Context(), &req)
			if err != nil {
				return err
			}
			app.printer().success("aircraft %s (%s) added", aircraft.AircraftID, aircraft.Model)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.AircraftID, "id", "", "aircraft id")
	cmd.Flags().StringVar(&req.Model, "model", "", "model")
	cmd.Flags().IntVar(&req.Capacity, "capacity", 0, "seat capacity")
	cmd.Flags().StringVar(&req.Manufacturer, "manufacturer", "", "manufacturer")
	cmd.Flags().StringVar(&req.RegistrationNumber, "registration", "", "registration number")
	return cmd
}

func newAircraftDeleteCommand(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an aircraft no flight uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirmed(app, yes, fmt.Sprintf("Delete aircraft %s?", args[0]))
			if err != nil || !ok {
				return err
			}
			if err := app.Deps.Services.Aircraft.DeleteAircraft(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.printer().success("aircraft %s deleted", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
