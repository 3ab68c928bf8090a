package extract

import (
	"regexp"
	"sort"
	"strings"

	"ticketflow-service/pkg/logger"
)

var (
	nonWordRegex  = regexp.MustCompile(`[\W_]+`)
	spaceRunRegex = regexp.MustCompile(`\s+`)
	nameSeatRegex = regexp.MustCompile(`^(.*\S)[ ]*-[ ]*(\d{1,2}[A-HJ-K])$`)
)

// assembler turns a regex submatch into a candidate value, optionally
// with a side-channel seat token.
type assembler func(match []string) (value, seat string)

// FieldExtractor applies airline-specific and generic rules to raw text
// and produces field candidates with confidence and provenance.
type FieldExtractor struct {
	logger logger.Logger
}

// NewFieldExtractor creates a field extractor
func NewFieldExtractor(log logger.Logger) *FieldExtractor {
	return &FieldExtractor{logger: log}
}

// ExtractField runs the airline rule first (confidence 0.9), then the
// generic rule (confidence 0.7). Generic values whose normalized form was
// already produced by the airline rule are dropped. Candidates come back
// sorted by descending confidence; equal confidences keep first-seen order.
func (e *FieldExtractor) ExtractField(text string, airlineRule, genericRule *regexp.Regexp) []FieldCandidate {
	return e.extractWith(text, airlineRule, genericRule, plainAssemble)
}

// ExtractFlightNumbers extracts flight numbers, reassembling the carrier
// letters and digits from the rule's two capture groups.
func (e *FieldExtractor) ExtractFlightNumbers(text string, airlineRule, genericRule *regexp.Regexp) []FieldCandidate {
	return e.extractWith(text, airlineRule, genericRule, flightNumberAssemble)
}

// ExtractPassengerNames extracts passenger names, splitting off a trailing
// "- 12A" style seat token into the candidate's Seat field.
func (e *FieldExtractor) ExtractPassengerNames(text string, airlineRule, genericRule *regexp.Regexp) []FieldCandidate {
	return e.extractWith(text, airlineRule, genericRule, nameAssemble)
}

func (e *FieldExtractor) extractWith(text string, airlineRule, genericRule *regexp.Regexp, as assembler) []FieldCandidate {
	var candidates []FieldCandidate
	seen := make(map[string]bool)

	collect := func(rule *regexp.Regexp, confidence float64, source CandidateSource) {
		if rule == nil {
			return
		}
		for _, m := range rule.FindAllStringSubmatch(text, -1) {
			value, seat := as(m)
			if value == "" {
				continue
			}
			key := normalizeValue(value)
			if seen[key] {
				continue
			}
			seen[key] = true
			candidates = append(candidates, FieldCandidate{
				Value:      value,
				Confidence: confidence,
				Source:     source,
				Seat:       seat,
			})
		}
	}

	collect(airlineRule, AirlineRuleConfidence, SourceAirlineSpecific)
	collect(genericRule, GenericRuleConfidence, SourceGeneric)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	return candidates
}

// plainAssemble takes the first non-empty capture group, falling back to
// the whole match.
func plainAssemble(m []string) (string, string) {
	return captureValue(m), ""
}

// flightNumberAssemble rebuilds a flight number from an alphabetic and a
// numeric capture: whitespace and non-word characters are stripped from
// the alphabetic segment before the digits are appended.
func flightNumberAssemble(m []string) (string, string) {
	if len(m) >= 3 && m[1] != "" && m[2] != "" {
		alpha := strings.ToUpper(nonWordRegex.ReplaceAllString(m[1], ""))
		return alpha + m[2], ""
	}
	return strings.ToUpper(strings.TrimSpace(captureValue(m))), ""
}

// nameAssemble splits a trailing row+letter seat code off the captured name.
func nameAssemble(m []string) (string, string) {
	value := captureValue(m)
	if s := nameSeatRegex.FindStringSubmatch(value); s != nil {
		return strings.TrimSpace(s[1]), s[2]
	}
	return value, ""
}

func captureValue(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return strings.TrimSpace(g)
		}
	}
	return strings.TrimSpace(m[0])
}

// normalizeValue is the duplicate-detection key: upper case, collapsed
// whitespace.
func normalizeValue(v string) string {
	return strings.ToUpper(strings.TrimSpace(spaceRunRegex.ReplaceAllString(v, " ")))
}
