// Package extract turns noisy ticket text, or a structured record from an
// AI vision extractor, into flight attributes with per-field confidence.
package extract

import "time"

// CandidateSource tells which kind of rule produced a field candidate.
type CandidateSource string

const (
	SourceAirlineSpecific CandidateSource = "airline_specific"
	SourceGeneric         CandidateSource = "generic"
	SourceAI              CandidateSource = "ai"
)

// Extraction confidences per rule kind. Carried over from observed
// behavior; tune here, not at call sites.
const (
	AirlineRuleConfidence = 0.9
	GenericRuleConfidence = 0.7
	AIFieldConfidence     = 0.95
)

// Parse strategy tags.
const (
	StrategyGeneric               = "generic"
	StrategyAI                    = "ai"
	strategyAirlineSpecificPrefix = "airline_specific_"
)

// Field keys used in the per-field confidence map.
const (
	FieldFlightNumber  = "flightNumber"
	FieldAirline       = "airline"
	FieldRoute         = "route"
	FieldPassengerName = "passengerName"
	FieldDate          = "date"
	FieldDepartureTime = "departureTime"
	FieldArrivalTime   = "arrivalTime"
	FieldConfirmation  = "confirmationCode"
)

// FieldCandidate is one possible value for a field. Seat is a side
// channel: passenger-name rules may capture an adjacent seat token.
type FieldCandidate struct {
	Value      string
	Confidence float64
	Source     CandidateSource
	Seat       string
}

// ExtractedFlight is the parser's best-effort view of one itinerary leg.
// Instances are not mutated after they are returned.
type ExtractedFlight struct {
	FlightNumber      string
	Airline           string
	From              string
	To                string
	Date              string
	DepartureTime     string
	ArrivalTime       string
	DepartureDateTime *time.Time
	ArrivalDateTime   *time.Time
	PassengerName     string
	AllPassengerNames []string
	SeatNumbers       []string
	ConfirmationCode  string
	FieldConfidences  map[string]float64
	Confidence        float64
	ParseStrategy     string
}

// meanConfidence averages the present per-field confidences. No fields
// extracted means 0, never NaN.
func meanConfidence(fields map[string]float64) float64 {
	if len(fields) == 0 {
		return 0
	}
	var sum float64
	for _, c := range fields {
		sum += c
	}
	return sum / float64(len(fields))
}
