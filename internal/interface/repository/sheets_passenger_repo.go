package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ticketflow-service/internal/domain/entity"
	"ticketflow-service/internal/domain/repository"
	"ticketflow-service/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// extractedNamesSeparator joins the name-spelling history into one cell.
// Pipe never occurs in a passenger name.
const extractedNamesSeparator = "|"

// SheetsPassengerRepository implements the PassengerRepository interface
// over a Google Sheets range. One row per passenger:
// id | name | legal name | extracted names | created at | updated at.
type SheetsPassengerRepository struct {
	service       *sheets.Service
	spreadsheetID string
	readRange     string
	logger        logger.Logger
}

// NewSheetsPassengerRepository creates a new Sheets passenger repository
func NewSheetsPassengerRepository(ctx context.Context, tokenSource oauth2.TokenSource, spreadsheetID, readRange string, log logger.Logger) (repository.PassengerRepository, error) {
	service, err := sheets.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsPassengerRepository{
		service:       service,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		logger:        log,
	}, nil
}

// ReadPassengers loads the whole roster from the sheet
func (r *SheetsPassengerRepository) ReadPassengers(ctx context.Context) ([]*entity.Passenger, error) {
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, r.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster sheet: %w", err)
	}

	var passengers []*entity.Passenger
	for i, row := range resp.Values {
		p := rowToPassenger(row)
		if p == nil {
			r.logger.Warn("Skipping malformed roster row", "row", i)
			continue
		}
		passengers = append(passengers, p)
	}
	return passengers, nil
}

// WritePassengers replaces the whole roster range
func (r *SheetsPassengerRepository) WritePassengers(ctx context.Context, passengers []*entity.Passenger) error {
	// Clear first so a shrinking roster leaves no stale rows behind.
	_, err := r.service.Spreadsheets.Values.Clear(r.spreadsheetID, r.readRange, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear roster sheet: %w", err)
	}
	if len(passengers) == 0 {
		return nil
	}

	values := make([][]interface{}, 0, len(passengers))
	for _, p := range passengers {
		values = append(values, passengerToRow(p))
	}

	valueRange := &sheets.ValueRange{Values: values}
	_, err = r.service.Spreadsheets.Values.
		Update(r.spreadsheetID, r.readRange, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write roster sheet: %w", err)
	}
	return nil
}

func rowToPassenger(row []interface{}) *entity.Passenger {
	id := cell(row, 0)
	name := cell(row, 1)
	if id == "" || name == "" {
		return nil
	}

	p := &entity.Passenger{
		ID:        id,
		Name:      name,
		LegalName: cell(row, 2),
	}
	if p.LegalName == "" {
		p.LegalName = name
	}
	if raw := cell(row, 3); raw != "" {
		p.ExtractedNames = strings.Split(raw, extractedNamesSeparator)
	}
	p.CreatedAt = parseSheetTime(cell(row, 4))
	p.UpdatedAt = parseSheetTime(cell(row, 5))
	return p
}

func passengerToRow(p *entity.Passenger) []interface{} {
	return []interface{}{
		p.ID,
		p.Name,
		p.LegalName,
		strings.Join(p.ExtractedNames, extractedNamesSeparator),
		p.CreatedAt.UTC().Format(time.RFC3339),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return strings.TrimSpace(s)
}

func parseSheetTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
