package genetics

import (
	"testing"
)

func TestIsValidSymbol(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"BRCA1", true},
		{"TP53", true},
		{"CFTR", true},
		{"CHRNA1", true},
		{"brca1", true}, // normalized before checking
		{"DNA", false},  // blocklisted biology term
		{"RISK", false},
		{"WHAT", false},
		{"SCARY", false},
		{"12345", false}, // no letter
		{"A", false},     // too short
		{"ABCDEFGHIJK", false}, // too long
		{"BRCA-1", true}, // synonym resolves to BRCA1
		{"P53", true},    // synonym resolves to TP53
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := IsValidSymbol(tt.token); got != tt.want {
				t.Errorf("IsValidSymbol(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"brca1", "BRCA1"},
		{"BRCA-1", "BRCA1"},
		{"p53", "TP53"},
		{"P-53", "TP53"},
		{" cftr ", "CFTR"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.token); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestExtractSymbol(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "single symbol",
			text: "What diseases are associated with BRCA1?",
			want: "BRCA1",
		},
		{
			name: "last symbol wins",
			text: "Forget BRCA1, tell me about the CHRNA1 gene",
			want: "CHRNA1",
		},
		{
			name: "blocklisted all-caps words ignored",
			text: "Is DNA testing for RISK a GOOD idea?",
			want: "",
		},
		{
			name: "lowercase gene not extracted",
			text: "what does brca1 do",
			want: "",
		},
		{
			name: "no symbol",
			text: "What is a chromosome?",
			want: "",
		},
		{
			name: "symbol with digits",
			text: "My report mentions MYH7.",
			want: "MYH7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSymbol(tt.text); got != tt.want {
				t.Errorf("ExtractSymbol(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
