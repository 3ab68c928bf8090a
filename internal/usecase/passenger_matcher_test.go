package usecase

import (
	"math"
	"testing"

	"ticketflow-service/internal/domain/entity"
	"ticketflow-service/pkg/logger"
)

func newTestMatcher(scorer SimilarityScorer) *PassengerMatcher {
	return NewPassengerMatcher(DefaultMatcherConfig(), scorer, logger.NewNop())
}

func passenger(id, name, legalName string, extractedNames ...string) *entity.Passenger {
	return &entity.Passenger{ID: id, Name: name, LegalName: legalName, ExtractedNames: extractedNames}
}

func TestMatchCascade(t *testing.T) {
	roster := []*entity.Passenger{
		passenger("p1", "Johnny Smith", "John Smith"),
		passenger("p2", "Robert Smith", "Robert Smith", "Bob Smith"),
		passenger("p3", "Rob Brown", "Robert James Brown"),
	}
	m := newTestMatcher(nil)

	tests := []struct {
		name      string
		extracted string
		wantID    string
		wantType  entity.MatchType
		wantConf  float64
	}{
		{"legal exact", "John Smith", "p1", entity.MatchLegalExact, 1.0},
		{"legal exact case and honorific", "MR. JOHN SMITH", "p1", entity.MatchLegalExact, 1.0},
		{"display exact", "Johnny Smith", "p1", entity.MatchDisplayExact, 1.0},
		{"order variation comma form", "Smith, John", "p1", entity.MatchNameOrderVariation, 0.95},
		{"order variation reversal", "Smith John", "p1", entity.MatchNameOrderVariation, 0.95},
		{"previously seen spelling", "BOB SMITH", "p2", entity.MatchExtractedExisting, 0.9},
		{"component first-name prefix", "Rob Smith", "p2", entity.MatchLegalComponent, 6.0 / 7.0},
		{"component missing middle", "Robert Brown", "p3", entity.MatchLegalComponent, 6.5 / 7.0},
		{"no match below threshold", "Jon Smyth", "", entity.MatchNone, 0},
		{"empty name", "   ", "", entity.MatchNone, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.extracted, roster)
			if got.Type != tt.wantType {
				t.Fatalf("Match(%q).Type = %s, want %s", tt.extracted, got.Type, tt.wantType)
			}
			if math.Abs(got.Confidence-tt.wantConf) > 1e-9 {
				t.Errorf("Match(%q).Confidence = %v, want %v", tt.extracted, got.Confidence, tt.wantConf)
			}
			if tt.wantID == "" {
				if got.Passenger != nil {
					t.Errorf("Match(%q).Passenger = %v, want nil", tt.extracted, got.Passenger)
				}
				return
			}
			if got.Passenger == nil || got.Passenger.ID != tt.wantID {
				t.Errorf("Match(%q).Passenger = %v, want %s", tt.extracted, got.Passenger, tt.wantID)
			}
		})
	}
}

func TestMatchResultInvariant(t *testing.T) {
	roster := []*entity.Passenger{passenger("p1", "John Smith", "John Smith")}
	m := newTestMatcher(LevenshteinScorer{})

	for _, extracted := range []string{"John Smith", "Smith, John", "Jon Smyth", "Zo Qi", ""} {
		got := m.Match(extracted, roster)
		if (got.Passenger == nil) != (got.Type == entity.MatchNone) {
			t.Errorf("Match(%q): passenger nil must coincide with no_match, got %+v", extracted, got)
		}
		if (got.Confidence == 0) != (got.Type == entity.MatchNone) {
			t.Errorf("Match(%q): zero confidence must coincide with no_match, got %+v", extracted, got)
		}
		if got.ExtractedName != extracted {
			t.Errorf("Match(%q).ExtractedName = %q", extracted, got.ExtractedName)
		}
	}
}

func TestMatchFuzzy(t *testing.T) {
	roster := []*entity.Passenger{passenger("p1", "John Smith", "John Smith")}

	// "jon smyth" is two edits from "john smith": similarity 0.8.
	got := newTestMatcher(LevenshteinScorer{}).Match("Jon Smyth", roster)
	if got.Type != entity.MatchLegalFuzzy {
		t.Fatalf("Type = %s, want %s", got.Type, entity.MatchLegalFuzzy)
	}
	if got.Passenger == nil || got.Passenger.ID != "p1" {
		t.Errorf("Passenger = %v, want p1", got.Passenger)
	}
	if math.Abs(got.Confidence-0.8) > 1e-9 {
		t.Errorf("Confidence = %v, want 0.8", got.Confidence)
	}

	// Without a scorer the fuzzy stage is skipped entirely.
	got = newTestMatcher(nil).Match("Jon Smyth", roster)
	if got.Type != entity.MatchNone || got.Passenger != nil {
		t.Errorf("without scorer: got %+v, want no_match", got)
	}
}

func TestMatchFuzzyLegalBeforeDisplay(t *testing.T) {
	// p2's display name is one edit from the extracted name, closer than
	// p1's legal name at two edits, but the legal pass runs to completion
	// first and p1 already clears the threshold.
	roster := []*entity.Passenger{
		passenger("p1", "Ron Smith", "Ron Smith"),
		passenger("p2", "Jon Smith", "Percival Brown"),
	}
	got := newTestMatcher(LevenshteinScorer{}).Match("Jon Smyth", roster)
	if got.Type != entity.MatchLegalFuzzy {
		t.Fatalf("Type = %s, want %s", got.Type, entity.MatchLegalFuzzy)
	}
	if got.Passenger == nil || got.Passenger.ID != "p1" {
		t.Errorf("Passenger = %v, want p1", got.Passenger)
	}
	if math.Abs(got.Confidence-7.0/9.0) > 1e-9 {
		t.Errorf("Confidence = %v, want %v", got.Confidence, 7.0/9.0)
	}
}

func TestMatchFuzzyBelowThreshold(t *testing.T) {
	roster := []*entity.Passenger{passenger("p1", "John Smith", "John Smith")}
	got := newTestMatcher(LevenshteinScorer{}).Match("Xavier Quintero", roster)
	if got.Type != entity.MatchNone {
		t.Errorf("Type = %s, want %s", got.Type, entity.MatchNone)
	}
}

func TestMatchTieBreaksByRosterOrder(t *testing.T) {
	roster := []*entity.Passenger{
		passenger("p1", "John Smith", "John Smith"),
		passenger("p2", "John Smith", "John Smith"),
	}
	m := newTestMatcher(nil)
	for i := 0; i < 5; i++ {
		got := m.Match("John Smith", roster)
		if got.Passenger == nil || got.Passenger.ID != "p1" {
			t.Fatalf("run %d: matched %v, want earliest roster entry p1", i, got.Passenger)
		}
	}
}

func TestMatchLegalBeforeDisplay(t *testing.T) {
	// Same component score on p1's display name and p2's legal name;
	// within one passenger the legal name is considered first, and across
	// the roster the earlier passenger wins on equal scores.
	roster := []*entity.Passenger{
		passenger("p1", "Rob Smith", "Rob Smith"),
	}
	got := newTestMatcher(nil).Match("Robert Smith", roster)
	if got.Type != entity.MatchLegalComponent {
		t.Errorf("Type = %s, want %s", got.Type, entity.MatchLegalComponent)
	}
}

func TestLevenshteinScorer(t *testing.T) {
	s := LevenshteinScorer{}
	tests := []struct {
		a, b string
		want float64
	}{
		{"john smith", "john smith", 1.0},
		{"jon smyth", "john smith", 0.8},
		{"", "", 1.0},
		{"abc", "", 0.0},
	}
	for _, tt := range tests {
		if got := s.Score(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Score(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
