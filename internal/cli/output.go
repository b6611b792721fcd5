package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"flight-ops/dispatch/internal/constants"
	"flight-ops/dispatch/internal/models/dtos"
	"flight-ops/dispatch/internal/services"

	"github.com/labstack/gommon/color"
	"github.com/olekukonko/tablewriter"
)

// printer writes tables and coloured status lines to the command's stdout
type printer struct {
	out   io.Writer
	color *color.Color
}

func newPrinter(out io.Writer, noColor bool) *printer {
	c := color.New()
	c.SetOutput(out)
	if noColor {
		c.Disable()
	}
	return &printer{out: out, color: c}
}

func (p *printer) table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(p.out, p.color.Yellow("No records found."))
		return
	}
	table := tablewriter.NewWriter(p.out)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

func (p *printer) tableView(view *dtos.TableView) {
	p.table(view.Headers, view.Rows)
}

func (p *printer) success(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.color.Green(constants.StatusSuccessful+":", color.B), fmt.Sprintf(format, args...))
}

func (p *printer) info(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.color.Cyan(fmt.Sprintf(format, args...)))
}

func (p *printer) warn(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.color.Yellow(fmt.Sprintf(format, args...)))
}

// failure prints err under the heading of its kind
func (p *printer) failure(err error) {
	heading := constants.StatusError
	switch {
	case errors.Is(err, services.ErrValidation):
		heading = constants.StatusInvalid
	case errors.Is(err, services.ErrNotFound):
		heading = constants.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		heading = constants.StatusConflict
	case errors.Is(err, services.ErrResourceInUse):
		heading = constants.StatusInUse
	case errors.Is(err, services.ErrDuplicate):
		heading = constants.StatusDuplicate
	case errors.Is(err, services.ErrPersistence):
		fmt.Fprintf(p.out, "%s %s\n", p.color.Red(constants.StatusRejected+":", color.B), constants.MsgFlightRejected)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", p.color.Red(heading+":", color.B), err.Error())
}

// conflict explains a ConflictError the way the operator sees it at the prompt
func (p *printer) conflict(c *services.ConflictError) {
	switch {
	case c.Resource == "aircraft":
		p.warn(constants.MsgNoAircraftAvailable)
	case c.Resource == "pilot" && len(c.Candidates) == 0:
		p.warn(constants.MsgNoPilotAvailable)
	default:
		p.warn("%s", c.Error())
	}
	if len(c.Candidates) > 0 {
		p.info("Available %s on %s: %s", c.Resource, c.Date, strings.Join(c.Candidates, ", "))
	}
}

var flightHeaders = []string{"Flight ID", "Origin", "Destination", "Aircraft", "Date", "Time", "Status", "Pilot ID", "Pilot"}

func (p *printer) flights(views []dtos.FlightView) {
	rows := make([][]string, 0, len(views))
	for _, f := range views {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(f.FlightID), 10),
			f.Origin, f.Destination, f.AircraftID, f.Date, f.Time, p.status(f.Status), f.PilotID, f.PilotName,
		})
	}
	p.table(flightHeaders, rows)
}

func (p *printer) status(status string) string {
	switch constants.FlightStatus(status) {
	case constants.FlightDelayed:
		return p.color.Yellow(status)
	case constants.FlightCancelled:
		return p.color.Red(status)
	}
	return p.color.Green(status)
}
