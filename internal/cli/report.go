package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newReportCommand(app *App) *cobra.Command {
	var (
		xlsx   bool
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Flight totals, status and daily counts, top routes and pilot workload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pr := app.printer()

			report, err := app.Deps.Services.Analytics.FlightReport(ctx)
			if err != nil {
				return err
			}
			workload, err := app.Deps.Services.Analytics.PilotWorkload(ctx)
			if err != nil {
				return err
			}

			pr.info("Total flights: %d", report.TotalFlights)

			statusRows := make([][]string, 0, len(report.ByStatus))
			for _, s := range report.ByStatus {
				statusRows = append(statusRows, []string{pr.status(s.Status), strconv.Itoa(s.Count)})
			}
			pr.table([]string{"Status", "Flights"}, statusRows)

			dayRows := make([][]string, 0, len(report.PerDay))
			for _, d := range report.PerDay {
				dayRows = append(dayRows, []string{d.Date, strconv.Itoa(d.Count)})
			}
			pr.table([]string{"Date", "Flights"}, dayRows)

			routeRows := make([][]string, 0, len(report.TopRoutes))
			for _, r := range report.TopRoutes {
				routeRows = append(routeRows, []string{r.Route, strconv.Itoa(r.Count)})
			}
			pr.table([]string{"Top Routes", "Flights"}, routeRows)

			workloadRows := make([][]string, 0, len(workload))
			for _, w := range workload {
				workloadRows = append(workloadRows, []string{w.PilotID, w.LastName, strconv.Itoa(w.FlightCount)})
			}
			pr.table([]string{"Pilot ID", "Last Name", "Flights"}, workloadRows)

			if !xlsx {
				return nil
			}

			buf, filename, err := app.Deps.Services.Export.ExportWorkbook(ctx, time.Now())
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = app.Deps.Config.Export.Dir
			}
			path := filepath.Join(outDir, filename)
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			pr.success("workbook written to %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "also write an xlsx workbook")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for the workbook (default export.dir)")
	return cmd
}
