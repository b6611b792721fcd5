package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"flight-ops/dispatch/internal/metrics"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExportService writes the flight listing and report to an xlsx workbook
type ExportService struct {
	flights   *FlightQueryService
	analytics *AnalyticsService
	metrics   *metrics.MetricsRegistry
	logger    *zap.SugaredLogger
}

func NewExportService(flights *FlightQueryService, analytics *AnalyticsService, m *metrics.MetricsRegistry, logger *zap.SugaredLogger) *ExportService {
	return &ExportService{flights: flights, analytics: analytics, metrics: m, logger: logger}
}

// ExportWorkbook builds a workbook with Flights, Report and Pilots sheets.
// Returns the xlsx content and a suggested file name.
func (s *ExportService) ExportWorkbook(ctx context.Context, now time.Time) (*bytes.Buffer, string, error) {
	flights, err := s.flights.ListFlights(ctx)
	if err != nil {
		return nil, "", err
	}
	report, err := s.analytics.FlightReport(ctx)
	if err != nil {
		return nil, "", err
	}
	workload, err := s.analytics.PilotWorkload(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create header style: %w", err)
	}

	// Flights
	flightRows := make([][]interface{}, 0, len(flights))
	for _, fl := range flights {
		flightRows = append(flightRows, []interface{}{
			fl.FlightID, fl.Origin, fl.Destination, fl.AircraftID, fl.Date, fl.Time, fl.Status, fl.PilotID, fl.PilotName,
		})
	}
	if err := writeSheet(f, "Flights", headerStyle,
		[]string{"Flight ID", "Origin", "Destination", "Aircraft", "Date", "Time", "Status", "Pilot ID", "Pilot"},
		flightRows); err != nil {
		return nil, "", err
	}

	// Report
	reportRows := [][]interface{}{{"Total flights", "", report.TotalFlights}}
	for _, sc := range report.ByStatus {
		reportRows = append(reportRows, []interface{}{"Status", sc.Status, sc.Count})
	}
	for _, dc := range report.PerDay {
		reportRows = append(reportRows, []interface{}{"Day", dc.Date, dc.Count})
	}
	for _, rc := range report.TopRoutes {
		reportRows = append(reportRows, []interface{}{"Top route", rc.Route, rc.Count})
	}
	if err := writeSheet(f, "Report", headerStyle, []string{"Measure", "Key", "Flights"}, reportRows); err != nil {
		return nil, "", err
	}

	// Pilots
	pilotRows := make([][]interface{}, 0, len(workload))
	for _, w := range workload {
		pilotRows = append(pilotRows, []interface{}{w.PilotID, w.LastName, w.FlightCount})
	}
	if err := writeSheet(f, "Pilots", headerStyle, []string{"Pilot ID", "Last Name", "Flights"}, pilotRows); err != nil {
		return nil, "", err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", fmt.Errorf("failed to drop default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex("Flights"); err == nil {
		f.SetActiveSheet(idx)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Errorw("Failed to write workbook", "error", err)
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ExportsTotal.Inc()
	}
	filename := fmt.Sprintf("flights_%s.xlsx", now.Format("20060102_150405"))
	s.logger.Infow("Workbook exported", "file", filename, "flights", len(flights))
	return buf, filename, nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, headers []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	for i, h := range headers {
		if err := f.SetCellValue(sheet, cell(colName(i), 1), h); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, colName(i), colName(i), 16); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", cell(colName(len(headers)-1), 1), headerStyle); err != nil {
		return err
	}

	for r, row := range rows {
		for c, v := range row {
			if err := f.SetCellValue(sheet, cell(colName(c), r+2), v); err != nil {
				return err
			}
		}
	}
	return nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
