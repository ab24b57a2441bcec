package evidence

import (
	"context"
	"errors"
	"testing"
	"time"

	"genegpt-be/pkg/counsel/planner"
	"genegpt-be/pkg/sources"
)

type stubOMIM struct {
	summary *sources.OMIMSummary
	err     error
	delay   time.Duration
}

func (s *stubOMIM) GeneSummary(ctx context.Context, _ string) (*sources.OMIMSummary, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.summary, s.err
}

type stubPubMed struct {
	summary *sources.PubMedSummary
	err     error
}

func (s *stubPubMed) Search(_ context.Context, _ string) (*sources.PubMedSummary, error) {
	return s.summary, s.err
}

func TestFetchRecordsRequestedSources(t *testing.T) {
	agg := &Aggregator{
		OMIM:   &stubOMIM{summary: &sources.OMIMSummary{Used: true, OmimID: "113705"}},
		PubMed: &stubPubMed{summary: &sources.PubMedSummary{Used: true}},
	}

	bundle := agg.Fetch(context.Background(), []planner.Request{
		{Source: planner.SourceOMIM, Params: sources.Request{Gene: "BRCA1"}},
		{Source: planner.SourcePubMed, Params: sources.Request{Gene: "BRCA1", Query: "BRCA1"}},
	})

	if len(bundle.Requested) != 2 {
		t.Fatalf("Requested = %v, want 2 entries", bundle.Requested)
	}
	if !bundle.Used(planner.SourceOMIM) || !bundle.Used(planner.SourcePubMed) {
		t.Errorf("both sources should be used: %+v", bundle)
	}
	// Unplanned boxes stay prefilled and unused.
	if bundle.Used(planner.SourceClinVar) {
		t.Error("ClinVar was never planned and must stay unused")
	}
}

func TestFetchIsolatesFailures(t *testing.T) {
	agg := &Aggregator{
		OMIM:   &stubOMIM{err: errors.New("boom")},
		PubMed: &stubPubMed{summary: &sources.PubMedSummary{Used: true}},
	}

	bundle := agg.Fetch(context.Background(), []planner.Request{
		{Source: planner.SourceOMIM, Params: sources.Request{Gene: "BRCA1"}},
		{Source: planner.SourcePubMed, Params: sources.Request{Gene: "BRCA1"}},
	})

	if bundle.Used(planner.SourceOMIM) {
		t.Error("failed source must come back unused")
	}
	if bundle.OMIM.Reason == "" {
		t.Error("failed source must carry the error as its reason")
	}
	if !bundle.Used(planner.SourcePubMed) {
		t.Error("a failing source must not take down its siblings")
	}
}

func TestFetchTimesOutSlowSource(t *testing.T) {
	agg := &Aggregator{
		OMIM:          &stubOMIM{summary: &sources.OMIMSummary{Used: true}, delay: 500 * time.Millisecond},
		SourceTimeout: 20 * time.Millisecond,
	}

	start := time.Now()
	bundle := agg.Fetch(context.Background(), []planner.Request{
		{Source: planner.SourceOMIM, Params: sources.Request{Gene: "BRCA1"}},
	})

	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("Fetch took %v, the per-source timeout did not bite", elapsed)
	}
	if bundle.Used(planner.SourceOMIM) {
		t.Error("timed-out source must come back unused")
	}
}

func TestFetchNilClientLeavesBoxPrefilled(t *testing.T) {
	agg := &Aggregator{} // no clients wired

	bundle := agg.Fetch(context.Background(), []planner.Request{
		{Source: planner.SourceGnomad, Params: sources.Request{Gene: "BRCA1"}},
	})

	if bundle.Used(planner.SourceGnomad) {
		t.Error("unwired client must not mark its source used")
	}
	if bundle.Gnomad == nil {
		t.Error("box must stay prefilled")
	}
}
