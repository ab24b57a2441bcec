package guard

import (
	"testing"

	"genegpt-be/pkg/counsel/intent"
	"genegpt-be/pkg/store"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name          string
		priorGene     string
		message       string
		wantAction    Action
		wantEffective string
		wantSecondary string
		wantTopic     string
	}{
		{
			name:          "first gene establishes context",
			priorGene:     "",
			message:       "What diseases are associated with BRCA1?",
			wantAction:    ActionReset,
			wantEffective: "BRCA1",
			wantTopic:     "BRCA1",
		},
		{
			name:          "no gene continues prior context",
			priorGene:     "BRCA1",
			message:       "Is it dangerous?",
			wantAction:    ActionContinue,
			wantEffective: "BRCA1",
			wantTopic:     "BRCA1",
		},
		{
			name:          "same gene continues",
			priorGene:     "BRCA1",
			message:       "Is a BRCA1 mutation hereditary?",
			wantAction:    ActionContinue,
			wantEffective: "BRCA1",
			wantTopic:     "BRCA1",
		},
		{
			name:          "what about a new gene resets",
			priorGene:     "BRCA1",
			message:       "What about PTEN?",
			wantAction:    ActionReset,
			wantEffective: "PTEN",
			wantTopic:     "PTEN",
		},
		{
			name:          "explicit comparison links",
			priorGene:     "BRCA1",
			message:       "How does PTEN compare with it?",
			wantAction:    ActionLink,
			wantEffective: "PTEN",
			wantSecondary: "BRCA1",
			wantTopic:     "PTEN",
		},
		{
			name:          "versus links",
			priorGene:     "BRCA1",
			message:       "BRCA2 versus the one we discussed, which is worse?",
			wantAction:    ActionLink,
			wantEffective: "BRCA2",
			wantSecondary: "BRCA1",
			wantTopic:     "BRCA2",
		},
		{
			name:          "broad education question wipes context",
			priorGene:     "TP53",
			message:       "What is DNA?",
			wantAction:    ActionReset,
			wantEffective: "",
			wantTopic:     "",
		},
		{
			name:          "new gene without prior context resets not links",
			priorGene:     "",
			message:       "Compare MLH1 risks for me",
			wantAction:    ActionReset,
			wantEffective: "MLH1",
			wantTopic:     "MLH1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := store.NewSession("s1")
			session.TopicGene = tt.priorGene

			d := Decide(session, intent.Classify(tt.message))

			if d.Action != tt.wantAction {
				t.Errorf("Action = %q, want %q", d.Action, tt.wantAction)
			}
			if d.EffectiveGene != tt.wantEffective {
				t.Errorf("EffectiveGene = %q, want %q", d.EffectiveGene, tt.wantEffective)
			}
			if d.SecondaryGene != tt.wantSecondary {
				t.Errorf("SecondaryGene = %q, want %q", d.SecondaryGene, tt.wantSecondary)
			}
			if session.TopicGene != tt.wantTopic {
				t.Errorf("session.TopicGene = %q, want %q", session.TopicGene, tt.wantTopic)
			}
		})
	}
}

func TestDecideResetClearsVariantState(t *testing.T) {
	session := store.NewSession("s1")
	session.TopicGene = "BRCA1"
	session.CurrentVariant = "rs80357906"
	session.VariantClassification = "pathogenic"

	d := Decide(session, intent.Classify("What about PTEN?"))

	if d.Action != ActionReset {
		t.Fatalf("Action = %q, want RESET", d.Action)
	}
	if session.CurrentVariant != "" {
		t.Errorf("CurrentVariant = %q, want cleared", session.CurrentVariant)
	}
	if session.VariantClassification != "unknown" {
		t.Errorf("VariantClassification = %q, want unknown", session.VariantClassification)
	}
}

func TestDecideSecondaryGeneIsTurnOnly(t *testing.T) {
	session := store.NewSession("s1")
	session.TopicGene = "BRCA1"

	// LINK turn sets the secondary for this turn.
	d := Decide(session, intent.Classify("Compare that with PTEN"))
	if d.Action != ActionLink || session.SecondaryGene != "BRCA1" {
		t.Fatalf("link turn: action=%q secondary=%q", d.Action, session.SecondaryGene)
	}

	// The next plain turn clears it again.
	d = Decide(session, intent.Classify("Is it hereditary?"))
	if d.Action != ActionContinue {
		t.Fatalf("follow-up turn: action=%q, want CONTINUE", d.Action)
	}
	if session.SecondaryGene != "" {
		t.Errorf("SecondaryGene = %q, want cleared after the linking turn", session.SecondaryGene)
	}
}
