package extract

import (
	"regexp"
	"strings"
)

// AirlineKey identifies one airline's rule set in the registry.
type AirlineKey string

const (
	AirlineAmerican  AirlineKey = "american"
	AirlineDelta     AirlineKey = "delta"
	AirlineUnited    AirlineKey = "united"
	AirlineSouthwest AirlineKey = "southwest"
	AirlineJetBlue   AirlineKey = "jetblue"
)

// RuleSet holds the field-extraction patterns tuned to one airline's
// ticket layout. A nil pattern means no layout-specific rule exists for
// that field and only the generic rule applies. Flight-number patterns
// capture the carrier letters and the digits separately so the extractor
// can reassemble them. Identifiers are lowercase substrings used for
// airline detection.
type RuleSet struct {
	Key              AirlineKey
	DisplayName      string
	Identifiers      []string
	FlightNumber     *regexp.Regexp
	Route            *regexp.Regexp
	PassengerName    *regexp.Regexp
	Date             *regexp.Regexp
	ConfirmationCode *regexp.Regexp
}

// Registry is the static table of per-airline rule sets plus the generic
// fallback rules. Detection iterates the declared order; the first
// airline whose identifier appears in the text wins.
type Registry struct {
	order   []AirlineKey
	rules   map[AirlineKey]*RuleSet
	generic *RuleSet
}

// DetectAirline scans the text for airline identifier tokens,
// case-insensitively, in the registry's declared order.
func (r *Registry) DetectAirline(text string) (*RuleSet, bool) {
	lower := strings.ToLower(text)
	for _, key := range r.order {
		rs := r.rules[key]
		for _, id := range rs.Identifiers {
			if strings.Contains(lower, id) {
				return rs, true
			}
		}
	}
	return nil, false
}

// Generic returns the fallback rule set, evaluated for every field
// whether or not an airline was detected.
func (r *Registry) Generic() *RuleSet {
	return r.generic
}

// DefaultRegistry builds the built-in airline rule table.
func DefaultRegistry() *Registry {
	r := &Registry{
		order: []AirlineKey{
			AirlineAmerican,
			AirlineDelta,
			AirlineUnited,
			AirlineSouthwest,
			AirlineJetBlue,
		},
		rules: map[AirlineKey]*RuleSet{},
		generic: &RuleSet{
			DisplayName:      "generic",
			FlightNumber:     regexp.MustCompile(`\b([A-Z]{2})\s?-?\s?(\d{2,4})\b`),
			Route:            regexp.MustCompile(`\b([A-Z]{3})\s*(?:-+>?|–|—|→|/|(?i:to))\s*([A-Z]{3})\b`),
			PassengerName:    regexp.MustCompile(`(?i:passenger|name of passenger|pax|traveler|name)\s*:?[ \t]*([A-Z][A-Za-z'.-]+(?:[ /][A-Z][A-Za-z'.-]+)+(?:[ ]*-[ ]*\d{1,2}[A-HJ-K])?)`),
			Date:             regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}-\d{2}-\d{2}|(?i:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[A-Za-z]*\.?\s+\d{1,2},?\s+\d{4}|\d{1,2}\s?(?i:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[A-Za-z]*\s*\d{0,4})\b`),
			ConfirmationCode: regexp.MustCompile(`(?i:confirmation(?:\s+(?:code|number))?|booking\s+(?:ref(?:erence)?|code)|record\s+locator|pnr)\s*[:#]?\s*([A-Z0-9]{5,8})\b`),
		},
	}

	r.rules[AirlineAmerican] = &RuleSet{
		Key:              AirlineAmerican,
		DisplayName:      "American Airlines",
		Identifiers:      []string{"american airlines", "americanairlines", "aa.com", "aadvantage"},
		FlightNumber:     regexp.MustCompile(`\b(AA)\s?-?\s?(\d{1,4})\b`),
		PassengerName:    regexp.MustCompile(`(?i:passenger)\s*:?[ \t]*([A-Z][A-Z'./-]*(?: [A-Z][A-Z'./-]*)+(?:[ ]*-[ ]*\d{1,2}[A-HJ-K])?)`),
		ConfirmationCode: regexp.MustCompile(`(?i:record\s+locator|confirmation)\s*[:#]?\s*([A-Z0-9]{6})\b`),
	}

	r.rules[AirlineDelta] = &RuleSet{
		Key:              AirlineDelta,
		DisplayName:      "Delta Air Lines",
		Identifiers:      []string{"delta air lines", "delta airlines", "delta.com", "skymiles", "delta"},
		FlightNumber:     regexp.MustCompile(`\b(DL)\s?-?\s?(\d{1,4})\b`),
		PassengerName:    regexp.MustCompile(`(?i:passenger|name)\s*:?[ \t]*([A-Z][A-Z'.-]*/[A-Z][A-Z'. -]*[A-Z]|[A-Z][A-Z'.-]*(?: [A-Z][A-Z'.-]*)+)`),
		ConfirmationCode: regexp.MustCompile(`(?i:confirmation\s*(?:#|number|code)?)\s*[:#]?\s*([A-Z0-9]{6})\b`),
	}

	r.rules[AirlineUnited] = &RuleSet{
		Key:              AirlineUnited,
		DisplayName:      "United Airlines",
		Identifiers:      []string{"united airlines", "united.com", "mileageplus", "united"},
		FlightNumber:     regexp.MustCompile(`\b(UA)\s?-?\s?(\d{1,4})\b`),
		ConfirmationCode: regexp.MustCompile(`(?i:confirmation(?:\s+number)?)\s*[:#]?\s*([A-Z][A-Z0-9]{5})\b`),
	}

	r.rules[AirlineSouthwest] = &RuleSet{
		Key:              AirlineSouthwest,
		DisplayName:      "Southwest Airlines",
		Identifiers:      []string{"southwest airlines", "southwest.com", "rapid rewards", "southwest"},
		FlightNumber:     regexp.MustCompile(`\b(WN)\s?-?\s?(\d{1,4})\b`),
		ConfirmationCode: regexp.MustCompile(`(?i:confirmation\s*(?:#|number)?)\s*[:#]?\s*([A-Z0-9]{6})\b`),
	}

	r.rules[AirlineJetBlue] = &RuleSet{
		Key:              AirlineJetBlue,
		DisplayName:      "JetBlue Airways",
		Identifiers:      []string{"jetblue", "jet blue", "trueblue"},
		FlightNumber:     regexp.MustCompile(`\b(B6)\s?-?\s?(\d{1,4})\b`),
		ConfirmationCode: regexp.MustCompile(`(?i:confirmation\s*(?:code)?)\s*[:#]?\s*([A-Z0-9]{6})\b`),
	}

	return r
}
