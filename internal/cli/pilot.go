package cli

import (
	"fmt"
	"strings"

	"flight-ops/dispatch/internal/models/dtos"
	"flight-ops/dispatch/internal/services"

	"github.com/spf13/cobra"
)

func newPilotCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pilot",
		Aliases: []string{"pilots"},
		Short:   "Manage pilots and view their schedules",
	}
	cmd.AddCommand(
		newPilotListCommand(app),
		newPilotAddCommand(app),
		newPilotDeleteCommand(app),
		newPilotScheduleCommand(app),
	)
	return cmd
}

func newPilotListCommand(app *App) *cobra.Command {
	var columns string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pilots, optionally restricted to some columns",
		Long:  "List pilots. --columns takes comma separated column numbers:\n" + numberedColumns(services.PilotColumnHeaders()),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Deps.Services.Pilots.ViewPilots(cmd.Context(), columns)
			if err != nil {
				return err
			}
			app.printer().tableView(view)
			return nil
		},
	}

	cmd.Flags().StringVar(&columns, "columns", "", "column numbers to show, e.g. 1,2,3 (default all)")
	return cmd
}

func newPilotAddCommand(app *App) *cobra.Command {
	var req dtos.CreatePilotRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a pilot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.prompter()
			var err error
			if req.PilotID, err = flagOrAsk(p, req.PilotID, "Pilot ID"); err != nil {
				return err
			}
			if req.FirstName, err = flagOrAsk(p, req.FirstName, "First name"); err != nil {
				return err
			}
			if req.LastName, err = flagOrAsk(p, req.LastName, "Last name"); err != nil {
				return err
			}

			pilot, err := app.Deps.Services.Pilots.AddPilot(cmd.Context(), &req)
			if err != nil {
				return err
			}
			app.printer().success("pilot %s (%s) added", pilot.PilotID, pilot.FullName())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.PilotID, "id", "", "pilot id")
	f.StringVar(&req.FirstName, "first-name", "", "first name")
	f.StringVar(&req.LastName, "last-name", "", "last name")
	f.IntVar(&req.ExperienceYears, "experience", 0, "years of experience")
	f.StringVar(&req.DateOfBirth, "dob", "", "date of birth")
	f.StringVar(&req.Nationality, "nationality", "", "nationality")
	f.StringVar(&req.PhoneNumber, "phone", "", "phone number")
	f.StringVar(&req.Email, "email", "", "email")
	f.StringVar(&req.PassportNumber, "passport", "", "passport number")
	f.StringVar(&req.LicenseNumber, "license", "", "license number")
	f.StringVar(&req.FirstLineOfAddress, "address", "", "first line of address")
	f.StringVar(&req.TownCity, "town", "", "town or city")
	f.StringVar(&req.Country, "country", "", "country")
	f.StringVar(&req.Postcode, "postcode", "", "postcode")
	f.StringVar(&req.County, "county", "", "county")
	f.StringVar(&req.WorkEligibility, "work-eligibility", "", "work eligibility")
	return cmd
}

func newPilotDeleteCommand(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a pilot with no assigned flight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirmed(app, yes, fmt.Sprintf("Delete pilot %s?", args[0]))
			if err != nil || !ok {
				return err
			}
			if err := app.Deps.Services.Pilots.DeletePilot(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.printer().success("pilot %s deleted", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newPilotScheduleCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule ID",
		Short: "Show the flights of one pilot by date and time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := app.Deps.Services.Pilots.Schedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			app.printer().flights(schedule)
			return nil
		},
	}
}

func numberedColumns(headers []string) string {
	var b strings.Builder
	for i, h := range headers {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, h)
	}
	return b.String()
}
