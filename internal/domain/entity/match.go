package entity

// MatchType identifies which strategy of the matching cascade resolved an
// extracted name to a roster passenger.
type MatchType string

const (
	MatchLegalExact         MatchType = "legal_exact"
	MatchDisplayExact       MatchType = "display_exact"
	MatchNameOrderVariation MatchType = "name_order_variation"
	MatchExtractedExisting  MatchType = "extracted_existing"
	MatchLegalComponent     MatchType = "legal_component"
	MatchDisplayComponent   MatchType = "display_component"
	MatchLegalFuzzy         MatchType = "legal_fuzzy"
	MatchDisplayFuzzy       MatchType = "display_fuzzy"
	MatchNone               MatchType = "no_match"
)

// MatchResult is the outcome of matching one extracted name against the
// roster. Passenger is nil exactly when Type is MatchNone, and Confidence
// is 0 exactly in that same case.
type MatchResult struct {
	Passenger     *Passenger
	Type          MatchType
	Confidence    float64
	ExtractedName string
}
