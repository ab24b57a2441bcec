package clinvar

import (
	"testing"
)

func TestBuildSearchTerm(t *testing.T) {
	tests := []struct {
		name         string
		gene         string
		variantToken string
		want         string
	}{
		{
			name:         "rsID goes through directly",
			gene:         "BRCA1",
			variantToken: "rs80357906",
			want:         "rs80357906",
		},
		{
			name:         "hgvs combined with gene qualifier",
			gene:         "BRCA1",
			variantToken: "c.68_69delAG",
			want:         "BRCA1[gene] AND c.68_69delAG",
		},
		{
			name:         "hgvs without gene stands alone",
			gene:         "",
			variantToken: "c.68_69delAG",
			want:         "c.68_69delAG",
		},
		{
			name:         "rs prefix with non-digits is not an rsID",
			gene:         "MSH2",
			variantToken: "rsX123",
			want:         "MSH2[gene] AND rsX123",
		},
		{
			name:         "whitespace trimmed",
			gene:         " BRCA2 ",
			variantToken: " p.Ser1982fs ",
			want:         "BRCA2[gene] AND p.Ser1982fs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildSearchTerm(tt.gene, tt.variantToken); got != tt.want {
				t.Errorf("BuildSearchTerm(%q, %q) = %q, want %q", tt.gene, tt.variantToken, got, tt.want)
			}
		})
	}
}
