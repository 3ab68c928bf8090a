package names

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"John Smith", "john smith"},
		{"  JOHN    SMITH  ", "john smith"},
		{"Smith,John", "smith, john"},
		{"Smith,  John", "smith, john"},
		{"Mr. John Smith", "john smith"},
		{"Mrs Jane Smith", "jane smith"},
		{"Dr. John Smith Jr.", "john smith"},
		{"John Smith III", "john smith"},
		{"PROF ALAN TURING SR", "alan turing"},
		{"EXTRA SMITH/JOHN", "smith/john"},
		{"", ""},
		{"   ", ""},
		{"Mr", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		in     string
		first  string
		middle []string
		last   string
	}{
		{"John Smith", "john", nil, "smith"},
		{"John", "john", nil, ""},
		{"John Michael Smith", "john", []string{"michael"}, "smith"},
		{"John Michael Robert Smith", "john", []string{"michael", "robert"}, "smith"},
		{"Smith, John", "smith", nil, "john"},
		{"Mr. John Smith Jr.", "john", nil, "smith"},
		{"", "", nil, ""},
	}

	for _, tt := range tests {
		got := Decompose(tt.in)
		if got.First != tt.first {
			t.Errorf("Decompose(%q).First = %q, want %q", tt.in, got.First, tt.first)
		}
		if got.Last != tt.last {
			t.Errorf("Decompose(%q).Last = %q, want %q", tt.in, got.Last, tt.last)
		}
		if !reflect.DeepEqual(got.Middle, tt.middle) {
			t.Errorf("Decompose(%q).Middle = %v, want %v", tt.in, got.Middle, tt.middle)
		}
	}
}

func TestDecomposeEmptyParts(t *testing.T) {
	for _, in := range []string{"", "  ", "\t\n"} {
		if got := Decompose(in); len(got.Parts) != 0 {
			t.Errorf("Decompose(%q).Parts = %v, want empty", in, got.Parts)
		}
	}
}

// Decomposition must be idempotent: decomposing the rejoined parts yields
// the same components.
func TestDecomposeIdempotent(t *testing.T) {
	inputs := []string{
		"John Smith",
		"Smith, John",
		"Mr. John Michael Smith Jr.",
		"MARIA DEL CARMEN GARCIA LOPEZ",
		"O'Brien, Patrick Seamus",
		"single",
		"",
	}

	for _, in := range inputs {
		once := Decompose(in)
		twice := Decompose(once.Join())
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Decompose not idempotent for %q: %+v != %+v", in, once, twice)
		}
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"John Smith", "john   smith", true},
		{"JOHN SMITH ", " john smith", true},
		{"Mr. John Smith", "John Smith", false}, // honorifics kept in history keys
		{"John Smith", "Jon Smith", false},
	}

	for _, tt := range tests {
		if got := Key(tt.a) == Key(tt.b); got != tt.same {
			t.Errorf("Key(%q) == Key(%q): got %v, want %v", tt.a, tt.b, got, tt.same)
		}
	}
}
