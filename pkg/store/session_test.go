package store

import (
	"testing"
)

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession("abc")

	if s.ID != "abc" {
		t.Errorf("ID = %q, want abc", s.ID)
	}
	if s.VariantClassification != "unknown" {
		t.Errorf("VariantClassification = %q, want unknown", s.VariantClassification)
	}
	if s.TestContext != "unknown" {
		t.Errorf("TestContext = %q, want unknown", s.TestContext)
	}
}

func TestResetClinicalContextKeepsHistory(t *testing.T) {
	s := NewSession("abc")
	s.TopicGene = "BRCA1"
	s.SecondaryGene = "BRCA2"
	s.CurrentVariant = "rs80357906"
	s.VariantClassification = "pathogenic"
	s.TestContext = "germline"
	s.AppendTurn("question", "answer")

	s.ResetClinicalContext()

	if s.TopicGene != "" || s.SecondaryGene != "" || s.CurrentVariant != "" {
		t.Errorf("clinical context not cleared: %+v", s)
	}
	if s.VariantClassification != "unknown" || s.TestContext != "unknown" {
		t.Errorf("variant state not reset: %+v", s)
	}
	if len(s.History) != 2 {
		t.Errorf("History length = %d, want 2 (reset must not touch history)", len(s.History))
	}
}

func TestAppendTurnTrimsHistory(t *testing.T) {
	s := NewSession("abc")

	for i := 0; i < MaxHistoryTurns+5; i++ {
		s.AppendTurn("question", "answer")
	}

	if got, want := len(s.History), MaxHistoryTurns*2; got != want {
		t.Errorf("History length = %d, want %d", got, want)
	}
	// Oldest entries drop first; the trailing entry is always the last answer.
	if s.History[len(s.History)-1].Role != "assistant" {
		t.Errorf("last entry role = %q, want assistant", s.History[len(s.History)-1].Role)
	}
}

func TestAppendTurnSkipsEmptyMessages(t *testing.T) {
	s := NewSession("abc")
	s.AppendTurn("", "answer only")
	s.AppendTurn("question only", "")

	if len(s.History) != 2 {
		t.Fatalf("History length = %d, want 2", len(s.History))
	}
	if s.History[0].Role != "assistant" || s.History[1].Role != "user" {
		t.Errorf("unexpected roles: %+v", s.History)
	}
}
