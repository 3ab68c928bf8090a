package extract

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ticketflow-service/internal/domain/entity"
	"ticketflow-service/internal/domain/repository"
	"ticketflow-service/pkg/logger"
)

// missingSentinel is how the AI vision extractor marks unknown fields.
// It is dissolved here and never enters the internal representation.
const missingSentinel = "missing"

var clockRegex = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?[ ]?(?i:([AP])\.?M\.?)?$`)

// AIResult is the normalized form of one AI record. A record that encodes
// several itineraries sets MultipleFlights and carries one entry per
// itinerary; a single-flight record carries exactly one entry.
type AIResult struct {
	MultipleFlights bool
	Flights         []*ExtractedFlight
}

// AINormalizer converts structured AI extractor records into the same
// flight-attribute shape the ticket parser produces, including
// timezone-aware departure/arrival timestamp synthesis.
type AINormalizer struct {
	timezoneRepo repository.TimezoneRepository
	logger       logger.Logger
}

// NewAINormalizer creates a new AI output normalizer with dependencies
func NewAINormalizer(timezoneRepo repository.TimezoneRepository, log logger.Logger) *AINormalizer {
	return &AINormalizer{
		timezoneRepo: timezoneRepo,
		logger:       log,
	}
}

// Normalize converts an AI record into one or more ExtractedFlights. Each
// sub-record of a multi-flight record is normalized independently.
func (n *AINormalizer) Normalize(ctx context.Context, record *entity.AIFlightRecord) *AIResult {
	if len(record.Flights) > 0 {
		result := &AIResult{MultipleFlights: true}
		for i := range record.Flights {
			result.Flights = append(result.Flights, n.normalizeOne(ctx, &record.Flights[i]))
		}
		return result
	}
	return &AIResult{Flights: []*ExtractedFlight{n.normalizeOne(ctx, record)}}
}

func (n *AINormalizer) normalizeOne(ctx context.Context, rec *entity.AIFlightRecord) *ExtractedFlight {
	flight := &ExtractedFlight{
		FieldConfidences: make(map[string]float64),
		ParseStrategy:    StrategyAI,
	}

	present := func(field, value string) string {
		if value != "" {
			flight.FieldConfidences[field] = AIFieldConfidence
		}
		return value
	}

	flight.FlightNumber = present(FieldFlightNumber, presentValue(rec.FlightNumber))
	flight.Airline = present(FieldAirline, presentValue(rec.Airline))
	flight.From = strings.ToUpper(presentValue(rec.DepartureAirport))
	flight.To = strings.ToUpper(presentValue(rec.ArrivalAirport))
	if flight.From != "" || flight.To != "" {
		flight.FieldConfidences[FieldRoute] = AIFieldConfidence
	}
	flight.Date = present(FieldDate, presentValue(rec.DepartureDate))
	flight.DepartureTime = present(FieldDepartureTime, presentValue(rec.DepartureTime))
	flight.ArrivalTime = present(FieldArrivalTime, presentValue(rec.ArrivalTime))
	flight.ConfirmationCode = present(FieldConfirmation, presentValue(rec.ConfirmationCode))

	// Passenger names: the list form wins over the legacy single field.
	// Deduplication is deliberately not done here; the resolver owns it.
	for _, name := range rec.PassengerNames {
		if v := presentValue(name); v != "" {
			flight.AllPassengerNames = append(flight.AllPassengerNames, v)
		}
	}
	if len(flight.AllPassengerNames) == 0 {
		if v := presentValue(rec.PassengerName); v != "" {
			flight.AllPassengerNames = append(flight.AllPassengerNames, v)
		}
	}
	if len(flight.AllPassengerNames) > 0 {
		flight.PassengerName = flight.AllPassengerNames[0]
		flight.FieldConfidences[FieldPassengerName] = AIFieldConfidence
	}

	for _, seat := range rec.SeatNumbers {
		if v := presentValue(seat); v != "" {
			flight.SeatNumbers = append(flight.SeatNumbers, strings.ToUpper(v))
		}
	}

	flight.DepartureDateTime = n.synthesizeTimestamp(ctx, flight.Date, flight.DepartureTime, flight.From)
	arrivalDate := presentValue(rec.ArrivalDate)
	if arrivalDate == "" {
		arrivalDate = flight.Date
	}
	flight.ArrivalDateTime = n.synthesizeTimestamp(ctx, arrivalDate, flight.ArrivalTime, flight.To)

	// AI fields all carry the same fixed confidence, so the overall is the
	// mean of the non-zero entries, or the fixed value when the record was
	// effectively empty.
	if len(flight.FieldConfidences) == 0 {
		flight.Confidence = AIFieldConfidence
	} else {
		flight.Confidence = meanConfidence(flight.FieldConfidences)
	}

	return flight
}

// presentValue dissolves the "missing" sentinel and blank strings.
func presentValue(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, missingSentinel) {
		return ""
	}
	return s
}

// synthesizeTimestamp combines a local date, a time-of-day string and an
// airport code into an absolute UTC instant, using the timezone the
// airport's zone has on that date so DST is honored. An unknown airport
// or zone degrades to treating the naive date+time as UTC. A missing date
// or time yields nil, not a sentinel instant.
func (n *AINormalizer) synthesizeTimestamp(ctx context.Context, date, timeStr, airport string) *time.Time {
	if date == "" || timeStr == "" {
		return nil
	}

	hour, minute, err := parseClockTime(timeStr)
	if err != nil {
		n.logger.Warn("Unparseable time of day", "time", timeStr, "error", err)
		return nil
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		n.logger.Warn("Unparseable date", "date", date, "error", err)
		return nil
	}

	loc := time.UTC
	if airport != "" {
		tz, err := n.timezoneRepo.GetByAirportCode(ctx, airport)
		switch {
		case err != nil:
			n.logger.Warn("Airport timezone unknown, treating local time as UTC",
				"airport", airport, "error", err)
		default:
			l, err := time.LoadLocation(tz.TzName)
			if err != nil {
				n.logger.Warn("Timezone not loadable, treating local time as UTC",
					"airport", airport, "tzName", tz.TzName, "error", err)
			} else {
				loc = l
			}
		}
	}

	t := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc).UTC()
	return &t
}

// parseClockTime parses 12-hour or 24-hour time strings. Explicit AM/PM
// governs the 12-to-24 conversion: "12 PM" is 12:00 and "12 AM" is 00:00.
func parseClockTime(s string) (hour, minute int, err error) {
	m := clockRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid time format: %q", s)
	}

	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}

	meridiem := strings.ToUpper(m[3])
	switch {
	case meridiem == "" && m[2] == "":
		// A bare hour with no meridiem is too ambiguous to trust.
		return 0, 0, fmt.Errorf("bare hour without minutes or AM/PM: %q", s)
	case meridiem != "":
		if hour < 1 || hour > 12 {
			return 0, 0, fmt.Errorf("hour out of 12-hour range: %q", s)
		}
		if hour == 12 {
			hour = 0
		}
		if meridiem == "P" {
			hour += 12
		}
	}

	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("time out of range: %q", s)
	}
	return hour, minute, nil
}
