package gate

import (
	"testing"

	"genegpt-be/pkg/counsel/evidence"
	"genegpt-be/pkg/counsel/intent"
	"genegpt-be/pkg/counsel/planner"
	"genegpt-be/pkg/sources"
)

func TestCheckClarification(t *testing.T) {
	tests := []struct {
		name          string
		message       string
		effectiveGene string
		wantProceed   bool
	}{
		{
			name:          "ambiguous with no context stops",
			message:       "Is it dangerous?",
			effectiveGene: "",
			wantProceed:   false,
		},
		{
			name:          "ambiguous with inherited gene proceeds",
			message:       "Is it dangerous?",
			effectiveGene: "BRCA1",
			wantProceed:   true,
		},
		{
			name:          "ambiguous with fresh variant proceeds",
			message:       "Is rs80357906 dangerous? What should I do?",
			effectiveGene: "",
			wantProceed:   true,
		},
		{
			name:          "clear question proceeds",
			message:       "What is TP53?",
			effectiveGene: "TP53",
			wantProceed:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := intent.Classify(tt.message)
			proceed, msg := CheckClarification(it, tt.effectiveGene)

			if proceed != tt.wantProceed {
				t.Fatalf("proceed = %v, want %v", proceed, tt.wantProceed)
			}
			if !proceed && msg != ClarificationMessage {
				t.Errorf("message = %q, want the fixed clarification prompt", msg)
			}
			if proceed && msg != "" {
				t.Errorf("message = %q, want empty on proceed", msg)
			}
		})
	}
}

func TestCheckSafety(t *testing.T) {
	allFailed := evidence.NewBundle("lookup failed")
	allFailed.Requested = []planner.SourceName{planner.SourceOMIM, planner.SourceGeneReviews, planner.SourcePubMed}

	partial := evidence.NewBundle("lookup failed")
	partial.Requested = []planner.SourceName{planner.SourceOMIM, planner.SourceGeneReviews, planner.SourcePubMed}
	partial.OMIM = &sources.OMIMSummary{Used: true, OmimID: "113705"}

	nothingPlanned := evidence.NewBundle("Source not requested for this question type.")

	tests := []struct {
		name        string
		category    intent.Category
		bundle      *evidence.Bundle
		wantProceed bool
	}{
		{"risk question with all sources empty aborts", intent.CategoryRisk, allFailed, false},
		{"variant question with all sources empty aborts", intent.CategoryVariant, allFailed, false},
		{"risk question with partial evidence proceeds", intent.CategoryRisk, partial, true},
		{"education question never aborts", intent.CategoryEducation, allFailed, true},
		{"general question never aborts", intent.CategoryGeneral, nothingPlanned, true},
		{"risk question with nothing planned proceeds", intent.CategoryRisk, nothingPlanned, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proceed, msg := CheckSafety(tt.category, tt.bundle)

			if proceed != tt.wantProceed {
				t.Fatalf("proceed = %v, want %v", proceed, tt.wantProceed)
			}
			if !proceed && msg != NoEvidenceMessage {
				t.Errorf("message = %q, want the fixed no-evidence answer", msg)
			}
		})
	}
}
