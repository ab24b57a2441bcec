package planner

import (
	"testing"

	"genegpt-be/pkg/counsel/intent"
	"genegpt-be/pkg/genetics"
)

func sourceNames(reqs []Request) []SourceName {
	var out []SourceName
	for _, r := range reqs {
		out = append(out, r.Source)
	}
	return out
}

func TestPlan(t *testing.T) {
	variant := &genetics.Variant{RsID: "rs80357906"}

	tests := []struct {
		name     string
		category intent.Category
		gene     string
		variant  *genetics.Variant
		want     []SourceName
	}{
		{
			name:     "risk pulls phenotype guideline and literature",
			category: intent.CategoryRisk,
			gene:     "BRCA1",
			want:     []SourceName{SourceOMIM, SourceGeneReviews, SourcePubMed},
		},
		{
			name:     "variant pulls classification and population frequency",
			category: intent.CategoryVariant,
			gene:     "BRCA1",
			variant:  variant,
			want:     []SourceName{SourceClinVar, SourceGnomad},
		},
		{
			name:     "education pulls the definitional database only",
			category: intent.CategoryEducation,
			gene:     "TP53",
			want:     []SourceName{SourceNCBI},
		},
		{
			name:     "general plans nothing",
			category: intent.CategoryGeneral,
			gene:     "TP53",
			want:     nil,
		},
		{
			name:     "no gene and no variant plans nothing",
			category: intent.CategoryRisk,
			gene:     "",
			want:     nil,
		},
		{
			name:     "variant without gene still plans",
			category: intent.CategoryVariant,
			gene:     "",
			variant:  variant,
			want:     []SourceName{SourceClinVar, SourceGnomad},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sourceNames(Plan(tt.category, tt.gene, tt.variant))

			if len(got) != len(tt.want) {
				t.Fatalf("Plan() sources = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Plan()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPlanVariantToken(t *testing.T) {
	reqs := Plan(intent.CategoryVariant, "BRCA1", &genetics.Variant{HgvsC: "c.68_69delAG"})

	if len(reqs) == 0 || reqs[0].Source != SourceClinVar {
		t.Fatalf("expected a ClinVar request, got %v", reqs)
	}
	if reqs[0].Params.VariantToken != "c.68_69delAG" {
		t.Errorf("VariantToken = %q, want the coding HGVS", reqs[0].Params.VariantToken)
	}
	if reqs[0].Params.Gene != "BRCA1" {
		t.Errorf("Gene = %q, want BRCA1", reqs[0].Params.Gene)
	}
}
