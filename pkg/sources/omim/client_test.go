package omim

import (
	"testing"
)

func TestLoadMimMapping(t *testing.T) {
	data := "# Comment line\n" +
		"100640\tgene\t216\tALDH1A1\n" +
		"100650\tgene/phenotype\t217\tALDH2\n" +
		"100100\tphenotype\t\t\n" +
		"bad line\n" +
		"100660\tgene\t218\taldh3a1\n"

	c := NewClient("")
	c.LoadMimMapping(data)

	tests := []struct {
		gene string
		want string
	}{
		{"ALDH1A1", "100640"},
		{"ALDH2", "100650"},      // gene/phenotype rows count
		{"ALDH3A1", "100660"},    // symbols uppercased
		{"TP53", "191170"},       // built-in table still answers
		{"UNKNOWNGENE", ""},
	}

	for _, tt := range tests {
		if got := c.resolveMimID(tt.gene); got != tt.want {
			t.Errorf("resolveMimID(%q) = %q, want %q", tt.gene, got, tt.want)
		}
	}
}
