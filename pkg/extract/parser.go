package extract

import (
	"regexp"
	"strings"

	"ticketflow-service/pkg/logger"
)

// timePattern matches 12-hour or 24-hour time-of-day tokens.
var timePattern = regexp.MustCompile(`\b(\d{1,2}:\d{2}(?:[ ]?(?i:[AP])\.?(?i:M)\.?)?)`)

// TicketParser orchestrates the field extractor across all flight fields.
type TicketParser struct {
	registry  *Registry
	extractor *FieldExtractor
	logger    logger.Logger
}

// NewTicketParser creates a ticket parser over the given rule registry
func NewTicketParser(registry *Registry, log logger.Logger) *TicketParser {
	return &TicketParser{
		registry:  registry,
		extractor: NewFieldExtractor(log),
		logger:    log,
	}
}

// Parse extracts flight attributes from raw ticket text. Every step is
// independent; a field that cannot be extracted is simply absent. A
// best-effort partial record is always returned, with overall confidence
// equal to the mean of the per-field confidences that are present.
func (p *TicketParser) Parse(text string) *ExtractedFlight {
	flight := &ExtractedFlight{
		FieldConfidences: make(map[string]float64),
		ParseStrategy:    StrategyGeneric,
	}
	generic := p.registry.Generic()

	airline, detected := p.registry.DetectAirline(text)
	if detected {
		flight.Airline = airline.DisplayName
		flight.FieldConfidences[FieldAirline] = AirlineRuleConfidence
		flight.ParseStrategy = strategyAirlineSpecificPrefix + string(airline.Key)
		p.logger.Debug("Airline detected", "airline", airline.DisplayName)
	}

	airlineRule := func(get func(*RuleSet) *regexp.Regexp) *regexp.Regexp {
		if !detected {
			return nil
		}
		return get(airline)
	}

	// Flight number: top-confidence candidate wins.
	fnCandidates := p.extractor.ExtractFlightNumbers(text,
		airlineRule(func(rs *RuleSet) *regexp.Regexp { return rs.FlightNumber }),
		generic.FlightNumber)
	if len(fnCandidates) > 0 {
		flight.FlightNumber = fnCandidates[0].Value
		flight.FieldConfidences[FieldFlightNumber] = fnCandidates[0].Confidence
	}

	// Passenger names plus any co-located seat tokens.
	nameCandidates := p.extractor.ExtractPassengerNames(text,
		airlineRule(func(rs *RuleSet) *regexp.Regexp { return rs.PassengerName }),
		generic.PassengerName)
	if len(nameCandidates) > 0 {
		flight.PassengerName = nameCandidates[0].Value
		flight.FieldConfidences[FieldPassengerName] = nameCandidates[0].Confidence
	}
	for _, c := range nameCandidates {
		flight.AllPassengerNames = append(flight.AllPassengerNames, c.Value)
		if c.Seat != "" {
			flight.SeatNumbers = append(flight.SeatNumbers, c.Seat)
		}
	}

	// Route: first and second captured airport codes, uppercased. No
	// validation against a real airport list at this layer.
	p.extractRoute(text, airlineRule(func(rs *RuleSet) *regexp.Regexp { return rs.Route }), generic.Route, flight)

	// Confirmation code.
	ccCandidates := p.extractor.ExtractField(text,
		airlineRule(func(rs *RuleSet) *regexp.Regexp { return rs.ConfirmationCode }),
		generic.ConfirmationCode)
	if len(ccCandidates) > 0 {
		flight.ConfirmationCode = ccCandidates[0].Value
		flight.FieldConfidences[FieldConfirmation] = ccCandidates[0].Confidence
	}

	// Date.
	dateCandidates := p.extractor.ExtractField(text,
		airlineRule(func(rs *RuleSet) *regexp.Regexp { return rs.Date }),
		generic.Date)
	if len(dateCandidates) > 0 {
		flight.Date = dateCandidates[0].Value
		flight.FieldConfidences[FieldDate] = dateCandidates[0].Confidence
	}

	// Up to two time-of-day tokens: first is departure, second is arrival
	// and only when two are present.
	times := timePattern.FindAllStringSubmatch(text, 2)
	if len(times) >= 1 {
		flight.DepartureTime = times[0][1]
		flight.FieldConfidences[FieldDepartureTime] = GenericRuleConfidence
	}
	if len(times) >= 2 {
		flight.ArrivalTime = times[1][1]
		flight.FieldConfidences[FieldArrivalTime] = GenericRuleConfidence
	}

	flight.Confidence = meanConfidence(flight.FieldConfidences)

	p.logger.Debug("Ticket text parsed",
		"strategy", flight.ParseStrategy,
		"flightNumber", flight.FlightNumber,
		"passengers", len(flight.AllPassengerNames),
		"confidence", flight.Confidence)

	return flight
}

func (p *TicketParser) extractRoute(text string, airlineRule, genericRule *regexp.Regexp, flight *ExtractedFlight) {
	try := func(rule *regexp.Regexp, confidence float64) bool {
		if rule == nil {
			return false
		}
		m := rule.FindStringSubmatch(text)
		if len(m) < 3 || m[1] == "" || m[2] == "" {
			return false
		}
		flight.From = strings.ToUpper(m[1])
		flight.To = strings.ToUpper(m[2])
		flight.FieldConfidences[FieldRoute] = confidence
		return true
	}

	if try(airlineRule, AirlineRuleConfidence) {
		return
	}
	try(genericRule, GenericRuleConfidence)
}
