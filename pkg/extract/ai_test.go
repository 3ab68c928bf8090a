package extract

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"ticketflow-service/internal/domain/entity"
	"ticketflow-service/pkg/logger"
)

type fakeTimezoneRepo struct {
	zones map[string]string
}

func (f *fakeTimezoneRepo) GetByAirportCode(_ context.Context, code string) (*entity.Timezone, error) {
	tz, ok := f.zones[code]
	if !ok {
		return nil, fmt.Errorf("timezone not found for airport code: %s", code)
	}
	return &entity.Timezone{AirportCode: code, TzName: tz}, nil
}

func newTestNormalizer() *AINormalizer {
	repo := &fakeTimezoneRepo{zones: map[string]string{
		"JFK": "America/New_York",
		"LAX": "America/Los_Angeles",
		"ORD": "America/Chicago",
	}}
	return NewAINormalizer(repo, logger.NewNop())
}

func TestNormalizeSingleFlight(t *testing.T) {
	n := newTestNormalizer()
	record := &entity.AIFlightRecord{
		FlightNumber:     "AA1234",
		Airline:          "American Airlines",
		DepartureAirport: "jfk",
		ArrivalAirport:   "lax",
		DepartureDate:    "2025-12-11",
		DepartureTime:    "8:30 AM",
		PassengerNames:   []string{"John Smith", "Jane Smith"},
		SeatNumbers:      []string{"14c", "14D"},
		ConfirmationCode: "ABX123",
	}

	result := n.Normalize(context.Background(), record)
	if result.MultipleFlights {
		t.Fatal("MultipleFlights = true, want false")
	}
	if len(result.Flights) != 1 {
		t.Fatalf("got %d flights, want 1", len(result.Flights))
	}
	flight := result.Flights[0]

	if flight.ParseStrategy != StrategyAI {
		t.Errorf("ParseStrategy = %q, want %q", flight.ParseStrategy, StrategyAI)
	}
	if flight.From != "JFK" || flight.To != "LAX" {
		t.Errorf("route = %q-%q, want JFK-LAX", flight.From, flight.To)
	}
	if flight.PassengerName != "John Smith" {
		t.Errorf("PassengerName = %q, want John Smith", flight.PassengerName)
	}
	if len(flight.AllPassengerNames) != 2 {
		t.Errorf("AllPassengerNames = %v, want both names", flight.AllPassengerNames)
	}
	if len(flight.SeatNumbers) != 2 || flight.SeatNumbers[0] != "14C" {
		t.Errorf("SeatNumbers = %v, want [14C 14D]", flight.SeatNumbers)
	}

	// 2025-12-11 08:30 America/New_York is EST (UTC-5).
	want := time.Date(2025, 12, 11, 13, 30, 0, 0, time.UTC)
	if flight.DepartureDateTime == nil || !flight.DepartureDateTime.Equal(want) {
		t.Errorf("DepartureDateTime = %v, want %v", flight.DepartureDateTime, want)
	}
	if flight.ArrivalDateTime != nil {
		t.Errorf("ArrivalDateTime = %v, want nil without an arrival time", flight.ArrivalDateTime)
	}
	if math.Abs(flight.Confidence-AIFieldConfidence) > 1e-9 {
		t.Errorf("Confidence = %v, want %v", flight.Confidence, AIFieldConfidence)
	}
	for field, conf := range flight.FieldConfidences {
		if conf != AIFieldConfidence {
			t.Errorf("FieldConfidences[%s] = %v, want %v", field, conf, AIFieldConfidence)
		}
	}
}

func TestNormalizeMultipleFlights(t *testing.T) {
	n := newTestNormalizer()
	record := &entity.AIFlightRecord{
		Flights: []entity.AIFlightRecord{
			{FlightNumber: "AA100", DepartureAirport: "JFK", ArrivalAirport: "ORD", PassengerName: "John Smith"},
			{FlightNumber: "AA200", DepartureAirport: "ORD", ArrivalAirport: "LAX", PassengerName: "John Smith"},
		},
	}

	result := n.Normalize(context.Background(), record)
	if !result.MultipleFlights {
		t.Fatal("MultipleFlights = false, want true")
	}
	if len(result.Flights) != 2 {
		t.Fatalf("got %d flights, want 2", len(result.Flights))
	}
	if result.Flights[0].FlightNumber != "AA100" || result.Flights[1].FlightNumber != "AA200" {
		t.Errorf("flight numbers = %q, %q, want AA100, AA200",
			result.Flights[0].FlightNumber, result.Flights[1].FlightNumber)
	}
	for _, f := range result.Flights {
		if f.PassengerName != "John Smith" {
			t.Errorf("PassengerName = %q, want John Smith", f.PassengerName)
		}
	}
}

func TestNormalizeMissingSentinel(t *testing.T) {
	n := newTestNormalizer()
	record := &entity.AIFlightRecord{
		FlightNumber:     "missing",
		Airline:          "MISSING",
		DepartureAirport: "JFK",
		PassengerName:    "missing",
	}

	flight := n.Normalize(context.Background(), record).Flights[0]
	if flight.FlightNumber != "" {
		t.Errorf("FlightNumber = %q, want empty for sentinel", flight.FlightNumber)
	}
	if flight.Airline != "" {
		t.Errorf("Airline = %q, want empty for sentinel", flight.Airline)
	}
	if len(flight.AllPassengerNames) != 0 {
		t.Errorf("AllPassengerNames = %v, want empty for sentinel", flight.AllPassengerNames)
	}
	if _, ok := flight.FieldConfidences[FieldFlightNumber]; ok {
		t.Error("sentinel field must not carry a confidence entry")
	}
	if _, ok := flight.FieldConfidences[FieldRoute]; !ok {
		t.Error("present departure airport must carry the route confidence")
	}
}

func TestNormalizeEmptyRecord(t *testing.T) {
	n := newTestNormalizer()
	flight := n.Normalize(context.Background(), &entity.AIFlightRecord{}).Flights[0]
	if len(flight.FieldConfidences) != 0 {
		t.Errorf("FieldConfidences = %v, want empty", flight.FieldConfidences)
	}
	if flight.Confidence != AIFieldConfidence {
		t.Errorf("Confidence = %v, want fixed %v fallback", flight.Confidence, AIFieldConfidence)
	}
}

func TestSynthesizeTimestampUTCFallback(t *testing.T) {
	n := newTestNormalizer()
	record := &entity.AIFlightRecord{
		DepartureAirport: "ZZZ",
		DepartureDate:    "2025-06-01",
		DepartureTime:    "10:00",
	}
	flight := n.Normalize(context.Background(), record).Flights[0]

	want := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	if flight.DepartureDateTime == nil || !flight.DepartureDateTime.Equal(want) {
		t.Errorf("DepartureDateTime = %v, want %v treated as UTC", flight.DepartureDateTime, want)
	}
}

func TestSynthesizeTimestampArrivalDate(t *testing.T) {
	n := newTestNormalizer()
	record := &entity.AIFlightRecord{
		DepartureAirport: "JFK",
		ArrivalAirport:   "LAX",
		DepartureDate:    "2025-12-11",
		DepartureTime:    "11:30 PM",
		ArrivalDate:      "2025-12-12",
		ArrivalTime:      "2:45 AM",
	}
	flight := n.Normalize(context.Background(), record).Flights[0]

	wantDep := time.Date(2025, 12, 12, 4, 30, 0, 0, time.UTC)
	if flight.DepartureDateTime == nil || !flight.DepartureDateTime.Equal(wantDep) {
		t.Errorf("DepartureDateTime = %v, want %v", flight.DepartureDateTime, wantDep)
	}
	// 2025-12-12 02:45 America/Los_Angeles is PST (UTC-8).
	wantArr := time.Date(2025, 12, 12, 10, 45, 0, 0, time.UTC)
	if flight.ArrivalDateTime == nil || !flight.ArrivalDateTime.Equal(wantArr) {
		t.Errorf("ArrivalDateTime = %v, want %v", flight.ArrivalDateTime, wantArr)
	}
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{"8:30 AM", 8, 30, false},
		{"8:30 PM", 20, 30, false},
		{"12:00 PM", 12, 0, false},
		{"12:00 AM", 0, 0, false},
		{"12 PM", 12, 0, false},
		{"14:05", 14, 5, false},
		{"11:45 a.m.", 11, 45, false},
		{"7", 0, 0, true},
		{"25:00", 0, 0, true},
		{"13:00 PM", 0, 0, true},
		{"not a time", 0, 0, true},
	}
	for _, tt := range tests {
		hour, minute, err := parseClockTime(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseClockTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && (hour != tt.hour || minute != tt.minute) {
			t.Errorf("parseClockTime(%q) = %d:%02d, want %d:%02d", tt.in, hour, minute, tt.hour, tt.minute)
		}
	}
}
