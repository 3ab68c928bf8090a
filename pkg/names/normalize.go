// Package names canonicalizes raw passenger name strings and decomposes
// them into first/middle/last components for matching.
package names

import (
	"regexp"
	"strings"
)

var (
	commaSpaceRegex = regexp.MustCompile(`,(\S)`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Honorific tokens stripped during normalization. "ex" and "extra" show up
// as prefixes on OCR'd boarding passes (EXTRA SEAT markers bleeding into
// the name line).
var (
	honorificPrefixes = map[string]bool{
		"mr": true, "mrs": true, "ms": true, "dr": true,
		"prof": true, "ex": true, "extra": true,
	}
	honorificSuffixes = map[string]bool{
		"jr": true, "sr": true, "ii": true, "iii": true, "iv": true,
	}
)

// Normalize canonicalizes a raw name string: lower-case, a space after
// every comma, single internal spaces, honorific prefixes and suffixes
// removed, surrounding whitespace trimmed. It never fails; any input
// reduces to a (possibly empty) string.
func Normalize(name string) string {
	s := strings.ToLower(name)
	s = commaSpaceRegex.ReplaceAllString(s, ", $1")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	tokens := strings.Split(s, " ")
	for len(tokens) > 0 && honorificPrefixes[bareToken(tokens[0])] {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && honorificSuffixes[bareToken(tokens[len(tokens)-1])] {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// bareToken strips trailing punctuation so "Mr." and "Jr," still count
// as honorifics.
func bareToken(tok string) string {
	return strings.Trim(tok, ".,")
}

// Components is the first/middle/last decomposition of a normalized name.
type Components struct {
	Parts  []string
	First  string
	Middle []string
	Last   string
}

// Join reassembles the decomposed parts into a single normalized string.
func (c Components) Join() string {
	return strings.Join(c.Parts, " ")
}

// Decompose normalizes a name and splits it into components. The token
// order heuristic is Western only: first token is the given name, last
// token the family name, everything between is treated as middle names.
// Non-Western name orders are not detected.
func Decompose(name string) Components {
	norm := Normalize(name)

	var parts []string
	for _, tok := range strings.Fields(norm) {
		tok = strings.Trim(tok, ",")
		if tok != "" {
			parts = append(parts, tok)
		}
	}

	c := Components{Parts: parts}
	switch len(parts) {
	case 0:
	case 1:
		c.First = parts[0]
	case 2:
		c.First = parts[0]
		c.Last = parts[1]
	default:
		c.First = parts[0]
		c.Last = parts[len(parts)-1]
		c.Middle = parts[1 : len(parts)-1]
	}
	return c
}

// Key produces a case- and whitespace-insensitive comparison key for
// deduplicating raw extracted names. Unlike Normalize it keeps honorifics,
// so distinct raw extractions stay distinct in history.
func Key(name string) string {
	s := strings.ToLower(name)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
