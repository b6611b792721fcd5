package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"flight-ops/dispatch/internal/db/repositories"
	"flight-ops/dispatch/internal/models/dtos"
	"flight-ops/dispatch/internal/models/gorm"

	"go.uber.org/zap"
	gormlib "gorm.io/gorm"
)

// PilotService manages pilot records and schedules
type PilotService struct {
	repo   *repositories.Repository
	logger *zap.SugaredLogger
}

func NewPilotService(repo *repositories.Repository, logger *zap.SugaredLogger) *PilotService {
	return &PilotService{repo: repo, logger: logger}
}

type pilotColumn struct {
	label string
	value func(p gorm.Pilot) string
}

// pilotColumns are numbered 1..16 in this order for column selection
var pilotColumns = []pilotColumn{
	{"Pilot ID", func(p gorm.Pilot) string { return p.PilotID }},
	{"First Name", func(p gorm.Pilot) string { return p.FirstName }},
	{"Last Name", func(p gorm.Pilot) string { return p.LastName }},
	{"Experience (years)", func(p gorm.Pilot) string { return strconv.Itoa(p.ExperienceYears) }},
	{"Date of Birth", func(p gorm.Pilot) string { return p.DateOfBirth }},
	{"Nationality", func(p gorm.Pilot) string { return p.Nationality }},
	{"Phone Number", func(p gorm.Pilot) string { return p.PhoneNumber }},
	{"Email", func(p gorm.Pilot) string { return p.Email }},
	{"Passport Number", func(p gorm.Pilot) string { return p.PassportNumber }},
	{"License Number", func(p gorm.Pilot) string { return p.LicenseNumber }},
	{"Address", func(p gorm.Pilot) string { return p.FirstLineOfAddress }},
	{"Town/City", func(p gorm.Pilot) string { return p.TownCity }},
	{"Country", func(p gorm.Pilot) string { return p.Country }},
	{"Postcode", func(p gorm.Pilot) string { return p.Postcode }},
	{"County", func(p gorm.Pilot) string { return p.County }},
	{"Work Eligibility", func(p gorm.Pilot) string { return p.WorkEligibility }},
}

// PilotColumnHeaders lists the selectable column labels in order
func PilotColumnHeaders() []string {
	headers := make([]string, 0, len(pilotColumns))
	for _, c := range pilotColumns {
		headers = append(headers, c.label)
	}
	return headers
}

// ListPilots returns every pilot ordered by id
func (s *PilotService) ListPilots(ctx context.Context) ([]gorm.Pilot, error) {
	return s.repo.Pilots.List(ctx)
}

// ViewPilots renders the pilot table restricted to the selected columns ("1,3,4"; blank selects all)
func (s *PilotService) ViewPilots(ctx context.Context, selection string) (*dtos.TableView, error) {
	indexes, err := ParseColumnSelection(selection, len(pilotColumns))
	if err != nil {
		return nil, err
	}

	pilots, err := s.repo.Pilots.List(ctx)
	if err != nil {
		return nil, err
	}

	view := &dtos.TableView{Rows: make([][]string, 0, len(pilots))}
	for _, i := range indexes {
		view.Headers = append(view.Headers, pilotColumns[i].label)
	}
	for _, p := range pilots {
		row := make([]string, 0, len(indexes))
		for _, i := range indexes {
			row = append(row, pilotColumns[i].value(p))
		}
		view.Rows = append(view.Rows, row)
	}
	return view, nil
}

// AddPilot validates and inserts a new pilot
func (s *PilotService) AddPilot(ctx context.Context, req *dtos.CreatePilotRequest) (*gorm.Pilot, error) {
	pilot := &gorm.Pilot{
		PilotID:            strings.TrimSpace(req.PilotID),
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		ExperienceYears:    req.ExperienceYears,
		DateOfBirth:        strings.TrimSpace(req.DateOfBirth),
		Nationality:        strings.TrimSpace(req.Nationality),
		PhoneNumber:        strings.TrimSpace(req.PhoneNumber),
		Email:              strings.TrimSpace(req.Email),
		PassportNumber:     strings.TrimSpace(req.PassportNumber),
		LicenseNumber:      strings.TrimSpace(req.LicenseNumber),
		FirstLineOfAddress: strings.TrimSpace(req.FirstLineOfAddress),
		TownCity:           strings.TrimSpace(req.TownCity),
		Country:            strings.TrimSpace(req.Country),
		Postcode:           strings.TrimSpace(req.Postcode),
		County:             strings.TrimSpace(req.County),
		WorkEligibility:    strings.TrimSpace(req.WorkEligibility),
	}

	if pilot.PilotID == "" {
		return nil, &ValidationError{Field: "pilot_id", Reason: "required"}
	}
	if pilot.FirstName == "" || pilot.LastName == "" {
		return nil, &ValidationError{Field: "pilot", Reason: "first and last name are required"}
	}
	if pilot.ExperienceYears < 0 {
		return nil, &ValidationError{Field: "experience_years", Reason: "must not be negative"}
	}

	if err := s.repo.Pilots.Create(ctx, pilot); err != nil {
		if errors.Is(err, gormlib.ErrDuplicatedKey) {
			return nil, &DuplicateError{Resource: "pilot", ID: pilot.PilotID}
		}
		return nil, err
	}

	s.logger.Infow("Pilot added", "pilot_id", pilot.PilotID)
	return pilot, nil
}

// DeletePilot removes a pilot with no flight assignment
func (s *PilotService) DeletePilot(ctx context.Context, pilotID string) error {
	pilotID = strings.TrimSpace(pilotID)

	err := s.repo.Transaction(ctx, func(tx *repositories.Repository) error {
		pilot, err := tx.Pilots.GetByID(ctx, pilotID)
		if err != nil {
			return err
		}
		if pilot == nil {
			return &NotFoundError{Resource: "pilot", ID: pilotID}
		}

		refs, err := tx.Pilots.CountAssignments(ctx, pilotID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return &InUseError{Resource: "pilot", ID: pilotID, References: refs}
		}

		if err := tx.Pilots.Delete(ctx, pilotID); err != nil {
			if errors.Is(err, gormlib.ErrForeignKeyViolated) {
				return &InUseError{Resource: "pilot", ID: pilotID}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Infow("Pilot deleted", "pilot_id", pilotID)
	return nil
}

// Schedule returns the flights of one pilot ordered by date, then time
func (s *PilotService) Schedule(ctx context.Context, pilotID string) ([]dtos.FlightView, error) {
	pilotID = strings.TrimSpace(pilotID)

	pilot, err := s.repo.Pilots.GetByID(ctx, pilotID)
	if err != nil {
		return nil, err
	}
	if pilot == nil {
		return nil, &NotFoundError{Resource: "pilot", ID: pilotID}
	}

	flights, err := s.repo.Pilots.Schedule(ctx, pilotID)
	if err != nil {
		return nil, err
	}

	views := make([]dtos.FlightView, 0, len(flights))
	for _, f := range flights {
		view := ToFlightView(f)
		view.PilotID = pilot.PilotID
		view.PilotName = pilot.FullName()
		views = append(views, view)
	}
	return views, nil
}
