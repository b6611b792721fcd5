package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"flight-ops/dispatch/internal/common"
	"flight-ops/dispatch/internal/constants"
	"flight-ops/dispatch/internal/models/dtos"
	"flight-ops/dispatch/internal/services"

	"github.com/spf13/cobra"
)

func newFlightCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "flight",
		Aliases: []string{"flights"},
		Short:   "Schedule, revise and inspect flights",
	}
	cmd.AddCommand(
		newFlightCreateCommand(app),
		newFlightUpdateCommand(app),
		newFlightDeleteCommand(app),
		newFlightGetCommand(app),
		newFlightByDateCommand(app),
		newFlightByStatusCommand(app),
		newFlightViewCommand(app),
		newFlightAvailableCommand(app),
	)
	return cmd
}

func newFlightCreateCommand(app *App) *cobra.Command {
	var (
		req         dtos.CreateFlightRequest
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Schedule a flight with its aircraft and pilot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := app.prompter()
			pr := app.printer()

			if interactive {
				if err := askCreateRequest(ctx, app, p, &req); err != nil {
					return err
				}
			}

			for {
				flight, err := app.Deps.Services.Scheduler.CreateFlight(ctx, &req)
				if err == nil {
					pr.success("flight %d created: %s to %s on %s at %s, aircraft %s, pilot %s",
						flight.FlightID, flight.OriginID, flight.DestinationID,
						common.DisplayDate(flight.FlightDate), flight.FlightTime, flight.AircraftID, flight.PilotID())

					homeBase := app.Deps.Config.Scheduling.HomeBase
					if services.IsHomeBaseDeparture(flight, homeBase) {
						pr.info(constants.MsgReturnFlightHint, homeBase)
					}
					return nil
				}

				choice, retry, resolveErr := resolveConflict(p, pr, interactive, err)
				if !retry {
					return resolveErr
				}
				if choice.resource == "aircraft" {
					req.AircraftID = choice.id
				} else {
					req.PilotID = choice.id
				}
			}
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Origin, "origin", "", "origin IATA code")
	f.StringVar(&req.Destination, "destination", "", "destination IATA code")
	f.StringVar(&req.Date, "date", "", "departure date DD/MM/YYYY")
	f.StringVar(&req.Time, "time", "", "departure time HH:MM (24h)")
	f.StringVar(&req.Status, "status", string(constants.FlightScheduled), "Scheduled, Delayed or Cancelled (or 1, 2, 3)")
	f.StringVar(&req.AircraftID, "aircraft", "", "aircraft id")
	f.StringVar(&req.PilotID, "pilot", "", "pilot id")
	f.BoolVarP(&interactive, "interactive", "i", false, "prompt for missing values and for a new choice on conflicts")
	return cmd
}

// askCreateRequest prompts for every value not given as a flag, showing what is free on the date
func askCreateRequest(ctx context.Context, app *App, p *prompter, req *dtos.CreateFlightRequest) error {
	var err error
	if req.Origin, err = flagOrAsk(p, req.Origin, "Origin airport (IATA)"); err != nil {
		return err
	}
	if req.Destination, err = flagOrAsk(p, req.Destination, "Destination airport (IATA)"); err != nil {
		return err
	}
	if req.Date, err = flagOrAsk(p, req.Date, "Date (DD/MM/YYYY)"); err != nil {
		return err
	}

	if req.AircraftID == "" || req.PilotID == "" {
		availability, err := app.Deps.Services.Availability.ForDate(ctx, req.Date)
		if err != nil {
			return err
		}
		printAvailability(app.printer(), availability)
	}

	if req.Time, err = flagOrAsk(p, req.Time, "Time (HH:MM)"); err != nil {
		return err
	}
	if req.AircraftID, err = flagOrAsk(p, req.AircraftID, "Aircraft ID"); err != nil {
		return err
	}
	if req.PilotID, err = flagOrAsk(p, req.PilotID, "Pilot ID"); err != nil {
		return err
	}
	return nil
}

type candidateChoice struct {
	resource string
	id       string
}

// resolveConflict decides whether a failed submission is retried. Only
// interactive runs retry, and only on a conflict with candidates the
// operator picks from.
func resolveConflict(p *prompter, pr *printer, interactive bool, err error) (candidateChoice, bool, error) {
	var conflict *services.ConflictError
	if !interactive || !errors.As(err, &conflict) || len(conflict.Candidates) == 0 {
		return candidateChoice{}, false, err
	}

	pr.conflict(conflict)
	for {
		answer, askErr := p.ask(fmt.Sprintf("Choose %s (blank to stop)", conflict.Resource))
		if askErr != nil {
			return candidateChoice{}, false, askErr
		}
		if answer == "" {
			pr.warn("Nothing was saved.")
			return candidateChoice{}, false, err
		}
		for _, c := range conflict.Candidates {
			if strings.EqualFold(c, answer) {
				return candidateChoice{resource: conflict.Resource, id: c}, true, nil
			}
		}
		pr.warn("%s is not one of: %s", answer, strings.Join(conflict.Candidates, ", "))
	}
}

func newFlightUpdateCommand(app *App) *cobra.Command {
	var (
		origin, destination, aircraftID string
		date, clock, status, pilotID    string
		interactive                     bool
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Revise a flight; only the given values change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flightID, err := parseFlightID(args[0])
			if err != nil {
				return err
			}

			req := &dtos.UpdateFlightRequest{}
			edited := false
			f := cmd.Flags()
			for name, target := range map[string]**string{
				"origin": &req.Origin, "destination": &req.Destination, "aircraft": &req.AircraftID,
				"date": &req.Date, "time": &req.Time, "status": &req.Status, "pilot": &req.PilotID,
			} {
				if f.Changed(name) {
					value, _ := f.GetString(name)
					*target = &value
					edited = true
				}
			}

			p := app.prompter()
			pr := app.printer()

			if interactive && !edited {
				if err := askUpdateRequest(ctx, app, p, flightID, req); err != nil {
					return err
				}
			}

			for {
				flight, err := app.Deps.Services.Reviser.UpdateFlight(ctx, flightID, req)
				if err == nil {
					view := services.ToFlightView(*flight)
					pr.success("flight %d updated", flight.FlightID)
					pr.flights([]dtos.FlightView{view})
					return nil
				}

				choice, retry, resolveErr := resolveConflict(p, pr, interactive, err)
				if !retry {
					return resolveErr
				}
				id := choice.id
				if choice.resource == "aircraft" {
					req.AircraftID = &id
				} else {
					req.PilotID = &id
				}
			}
		},
	}

	f := cmd.Flags()
	f.StringVar(&origin, "origin", "", "new origin IATA code")
	f.StringVar(&destination, "destination", "", "new destination IATA code")
	f.StringVar(&aircraftID, "aircraft", "", "new aircraft id")
	f.StringVar(&date, "date", "", "new date DD/MM/YYYY")
	f.StringVar(&clock, "time", "", "new time HH:MM")
	f.StringVar(&status, "status", "", "new status")
	f.StringVar(&pilotID, "pilot", "", "new pilot id")
	f.BoolVarP(&interactive, "interactive", "i", false, "prompt for each value and for a new choice on conflicts")
	return cmd
}

// askUpdateRequest walks every field, blank answers keep the current value
func askUpdateRequest(ctx context.Context, app *App, p *prompter, flightID uint, req *dtos.UpdateFlightRequest) error {
	current, err := app.Deps.Services.Flights.GetFlight(ctx, flightID)
	if err != nil {
		return err
	}
	app.printer().flights([]dtos.FlightView{*current})

	fields := []struct {
		label   string
		current string
		target  **string
	}{
		{"Origin", current.Origin, &req.Origin},
		{"Destination", current.Destination, &req.Destination},
		{"Date", current.Date, &req.Date},
		{"Time", current.Time, &req.Time},
		{"Status", current.Status, &req.Status},
		{"Aircraft ID", current.AircraftID, &req.AircraftID},
		{"Pilot ID", current.PilotID, &req.PilotID},
	}
	for _, field := range fields {
		answer, err := p.askDefault(field.label, field.current)
		if err != nil {
			return err
		}
		if answer != field.current {
			value := answer
			*field.target = &value
		}
	}
	return nil
}

func newFlightDeleteCommand(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a flight and its pilot assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flightID, err := parseFlightID(args[0])
			if err != nil {
				return err
			}

			flight, err := app.Deps.Services.Flights.GetFlight(ctx, flightID)
			if err != nil {
				return err
			}
			app.printer().flights([]dtos.FlightView{*flight})

			ok, err := confirmed(app, yes, fmt.Sprintf("Delete flight %d?", flightID))
			if err != nil || !ok {
				return err
			}
			if err := app.Deps.Services.Reviser.DeleteFlight(ctx, flightID); err != nil {
				return err
			}
			app.printer().success("flight %d deleted", flightID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newFlightGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one flight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flightID, err := parseFlightID(args[0])
			if err != nil {
				return err
			}
			flight, err := app.Deps.Services.Flights.GetFlight(cmd.Context(), flightID)
			if err != nil {
				return err
			}
			app.printer().flights([]dtos.FlightView{*flight})
			return nil
		},
	}
}

func newFlightByDateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "by-date DD/MM/YYYY",
		Short: "List the flights of a date by time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flights, err := app.Deps.Services.Flights.FlightsOnDate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			app.printer().flights(flights)
			return nil
		},
	}
}

func newFlightByStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "by-status STATUS",
		Short: "List flights with a status (Scheduled, Delayed, Cancelled or 1, 2, 3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flights, err := app.Deps.Services.Flights.FlightsByStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			app.printer().flights(flights)
			return nil
		},
	}
}

func newFlightViewCommand(app *App) *cobra.Command {
	var columns string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show flights with their pilots, optionally restricted to some columns",
		Long:  "Show flights with their pilots. --columns takes comma separated column numbers:\n" + numberedColumns(services.FlightViewHeaders()),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Deps.Services.Flights.ViewFlights(cmd.Context(), columns)
			if err != nil {
				return err
			}
			app.printer().tableView(view)
			return nil
		},
	}

	cmd.Flags().StringVar(&columns, "columns", "", "column numbers to show, e.g. 1,5,10 (default all)")
	return cmd
}

func newFlightAvailableCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "available DD/MM/YYYY",
		Short: "Show the aircraft and pilots free on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			availability, err := app.Deps.Services.Availability.ForDate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printAvailability(app.printer(), availability)
			return nil
		},
	}
}

func printAvailability(pr *printer, a *services.Availability) {
	pr.info("Flights on %s", a.Date)
	dayRows := make([][]string, 0, len(a.DayFlights))
	for _, d := range a.DayFlights {
		dayRows = append(dayRows, []string{strconv.FormatUint(uint64(d.FlightID), 10), d.PilotID, d.Time})
	}
	pr.table([]string{"Flight ID", "Pilot ID", "Time"}, dayRows)

	pr.info("Available aircraft")
	aircraftRows := make([][]string, 0, len(a.Aircraft))
	for _, ac := range a.Aircraft {
		aircraftRows = append(aircraftRows, []string{ac.AircraftID, ac.Model, strconv.Itoa(ac.Capacity)})
	}
	pr.table([]string{"Aircraft ID", "Model", "Capacity"}, aircraftRows)

	pr.info("Available pilots")
	pilotRows := make([][]string, 0, len(a.Pilots))
	for _, p := range a.Pilots {
		pilotRows = append(pilotRows, []string{p.PilotID, p.FirstName, p.LastName})
	}
	pr.table([]string{"Pilot ID", "First Name", "Last Name"}, pilotRows)
}

func parseFlightID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, &services.ValidationError{Field: "flight id", Reason: "expected a positive whole number"}
	}
	return uint(id), nil
}
