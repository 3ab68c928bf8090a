package names

import "strings"

// Component weights. First and last names dominate; middle names only
// nudge the score.
const (
	nameEqualPoints  = 3.0
	namePrefixPoints = 2.0
	middleMaxPoints  = 1.0
)

// ComponentSimilarity scores two decomposed names in [0,1]. First and
// last names each count toward a 3-point maximum, but only when both
// sides have that component. Middle names contribute at most 1 point; a
// disagreement still earns partial credit since middle names are the
// least reliably extracted component. Returns 0 when neither a first
// name nor a last name is comparable.
func ComponentSimilarity(a, b Components) float64 {
	var earned, applicable float64

	if a.First != "" && b.First != "" {
		applicable += nameEqualPoints
		earned += tokenPoints(a.First, b.First)
	}
	if a.Last != "" && b.Last != "" {
		applicable += nameEqualPoints
		earned += tokenPoints(a.Last, b.Last)
	}
	if applicable == 0 {
		return 0
	}

	applicable += middleMaxPoints
	earned += middlePoints(strings.Join(a.Middle, " "), strings.Join(b.Middle, " "))

	return earned / applicable
}

func tokenPoints(a, b string) float64 {
	switch {
	case a == b:
		return nameEqualPoints
	case strings.HasPrefix(a, b) || strings.HasPrefix(b, a):
		return namePrefixPoints
	default:
		return 0
	}
}

func middlePoints(a, b string) float64 {
	switch {
	case a == "" && b == "":
		return 1.0
	case a == "" || b == "":
		return 0.5
	case a == b:
		return 1.0
	case strings.Contains(a, b) || strings.Contains(b, a):
		return 0.7
	default:
		return 0.3
	}
}
