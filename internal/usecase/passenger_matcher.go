package usecase

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"ticketflow-service/internal/domain/entity"
	"ticketflow-service/pkg/logger"
	"ticketflow-service/pkg/names"
)

// Match confidences per strategy. Component and fuzzy strategies report
// their computed similarity score instead.
const (
	exactMatchConfidence     = 1.0
	orderVariationConfidence = 0.95
	extractedNameConfidence  = 0.9
)

// SimilarityScorer scores two normalized names in [0, 1]. The fuzzy match
// stage is skipped entirely when the matcher has no scorer.
type SimilarityScorer interface {
	Score(a, b string) float64
}

// LevenshteinScorer scores names by edit distance relative to the longer
// name's length.
type LevenshteinScorer struct{}

// Score returns 1 - distance/maxLen over runes.
func (LevenshteinScorer) Score(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// MatcherConfig holds the acceptance thresholds for the scored strategies.
type MatcherConfig struct {
	// ComponentThreshold is the minimum (inclusive) component-wise
	// similarity to accept.
	ComponentThreshold float64
	// FuzzyThreshold is the minimum (exclusive) whole-string similarity
	// to accept.
	FuzzyThreshold float64
}

// DefaultMatcherConfig returns the production thresholds.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		ComponentThreshold: 0.75,
		FuzzyThreshold:     0.6,
	}
}

// PassengerMatcher matches one extracted name against a passenger roster
// with a fixed cascade of strategies, strongest first: exact legal name,
// exact display name, name-order variation, previously seen extracted
// name, component-wise similarity, then optional fuzzy similarity. The
// first strategy that accepts wins; later strategies are not consulted.
type PassengerMatcher struct {
	config MatcherConfig
	scorer SimilarityScorer
	logger logger.Logger
}

// NewPassengerMatcher creates a passenger matcher. A nil scorer disables
// the fuzzy stage.
func NewPassengerMatcher(config MatcherConfig, scorer SimilarityScorer, log logger.Logger) *PassengerMatcher {
	return &PassengerMatcher{
		config: config,
		scorer: scorer,
		logger: log,
	}
}

// Match runs the cascade for extractedName over the roster. Roster order
// breaks ties: the earliest passenger wins within a strategy, and scored
// strategies replace the running best only on a strictly greater score.
// No acceptable candidate yields a no-match result with a nil passenger.
func (m *PassengerMatcher) Match(extractedName string, roster []*entity.Passenger) entity.MatchResult {
	result := entity.MatchResult{
		Type:          entity.MatchNone,
		ExtractedName: extractedName,
	}

	normalized := names.Normalize(extractedName)
	if normalized == "" {
		return result
	}

	if p := m.findExact(normalized, roster, legalNameOf); p != nil {
		return m.accept(result, p, entity.MatchLegalExact, exactMatchConfidence)
	}
	if p := m.findExact(normalized, roster, displayNameOf); p != nil {
		return m.accept(result, p, entity.MatchDisplayExact, exactMatchConfidence)
	}

	if p := m.findOrderVariation(normalized, roster); p != nil {
		return m.accept(result, p, entity.MatchNameOrderVariation, orderVariationConfidence)
	}

	if p := m.findExtracted(normalized, roster); p != nil {
		return m.accept(result, p, entity.MatchExtractedExisting, extractedNameConfidence)
	}

	if p, matchType, score := m.findByComponents(extractedName, roster); p != nil {
		return m.accept(result, p, matchType, score)
	}

	if m.scorer != nil {
		if p, matchType, score := m.findFuzzy(normalized, roster); p != nil {
			return m.accept(result, p, matchType, score)
		}
	}

	m.logger.Debug("No passenger matched", "extractedName", extractedName)
	return result
}

func (m *PassengerMatcher) accept(result entity.MatchResult, p *entity.Passenger, t entity.MatchType, confidence float64) entity.MatchResult {
	result.Passenger = p
	result.Type = t
	result.Confidence = confidence
	m.logger.Debug("Passenger matched",
		"extractedName", result.ExtractedName,
		"passengerId", p.ID,
		"matchType", t,
		"confidence", confidence)
	return result
}

func legalNameOf(p *entity.Passenger) string   { return p.LegalName }
func displayNameOf(p *entity.Passenger) string { return p.Name }

func (m *PassengerMatcher) findExact(normalized string, roster []*entity.Passenger, nameOf func(*entity.Passenger) string) *entity.Passenger {
	for _, p := range roster {
		if names.Normalize(nameOf(p)) == normalized {
			return p
		}
	}
	return nil
}

func (m *PassengerMatcher) findOrderVariation(normalized string, roster []*entity.Passenger) *entity.Passenger {
	variations := nameOrderVariations(normalized)
	if len(variations) == 0 {
		return nil
	}
	for _, p := range roster {
		legal := names.Normalize(p.LegalName)
		display := names.Normalize(p.Name)
		for _, v := range variations {
			if v == legal || v == display {
				return p
			}
		}
	}
	return nil
}

func (m *PassengerMatcher) findExtracted(normalized string, roster []*entity.Passenger) *entity.Passenger {
	for _, p := range roster {
		for _, seen := range p.ExtractedNames {
			if names.Normalize(seen) == normalized {
				return p
			}
		}
	}
	return nil
}

func (m *PassengerMatcher) findByComponents(extractedName string, roster []*entity.Passenger) (*entity.Passenger, entity.MatchType, float64) {
	extracted := names.Decompose(extractedName)

	var best *entity.Passenger
	var bestType entity.MatchType
	var bestScore float64

	consider := func(p *entity.Passenger, name string, t entity.MatchType) {
		score := names.ComponentSimilarity(extracted, names.Decompose(name))
		if score > bestScore {
			best, bestType, bestScore = p, t, score
		}
	}

	for _, p := range roster {
		consider(p, p.LegalName, entity.MatchLegalComponent)
		consider(p, p.Name, entity.MatchDisplayComponent)
	}

	if bestScore < m.config.ComponentThreshold {
		return nil, entity.MatchNone, 0
	}
	return best, bestType, bestScore
}

// findFuzzy queries the legal names first; display names are consulted
// only when no legal name clears the threshold. A stronger display hit
// never overrides an acceptable legal one.
func (m *PassengerMatcher) findFuzzy(normalized string, roster []*entity.Passenger) (*entity.Passenger, entity.MatchType, float64) {
	if p, score := m.bestFuzzy(normalized, roster, legalNameOf); p != nil {
		return p, entity.MatchLegalFuzzy, score
	}
	if p, score := m.bestFuzzy(normalized, roster, displayNameOf); p != nil {
		return p, entity.MatchDisplayFuzzy, score
	}
	return nil, entity.MatchNone, 0
}

// bestFuzzy scans one name field across the roster and returns the top
// hit when it clears the threshold.
func (m *PassengerMatcher) bestFuzzy(normalized string, roster []*entity.Passenger, nameOf func(*entity.Passenger) string) (*entity.Passenger, float64) {
	var best *entity.Passenger
	var bestScore float64

	for _, p := range roster {
		candidate := names.Normalize(nameOf(p))
		if candidate == "" {
			continue
		}
		if score := m.scorer.Score(normalized, candidate); score > bestScore {
			best, bestScore = p, score
		}
	}

	if bestScore <= m.config.FuzzyThreshold {
		return nil, 0
	}
	return best, bestScore
}

// nameOrderVariations derives alternate token orders of a normalized name:
// the full token reversal and the "Last, First Middle" comma form. The
// name itself is never returned as a variation.
func nameOrderVariations(normalized string) []string {
	parts := names.Decompose(normalized).Parts
	if len(parts) < 2 {
		return nil
	}

	reversed := make([]string, len(parts))
	for i, p := range parts {
		reversed[len(parts)-1-i] = p
	}

	last := parts[len(parts)-1]
	commaForm := last + ", " + strings.Join(parts[:len(parts)-1], " ")

	var variations []string
	seen := map[string]bool{normalized: true}
	for _, v := range []string{strings.Join(reversed, " "), commaForm} {
		if !seen[v] {
			seen[v] = true
			variations = append(variations, v)
		}
	}
	return variations
}
