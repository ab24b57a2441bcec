package evidence

import (
	"genegpt-be/pkg/counsel/planner"
	"genegpt-be/pkg/sources"
)

// Bundle is the per-turn evidence record: one box per external source, each
// carrying its own used flag and reason. Requested tracks which sources the
// planner actually asked for, so the safety gate can tell "all failed" apart
// from "nothing was planned".
type Bundle struct {
	OMIM        *sources.OMIMSummary        `json:"omim,omitempty"`
	NCBI        *sources.NCBIGeneSummary    `json:"ncbi,omitempty"`
	ClinVar     *sources.ClinVarSummary     `json:"clinvar,omitempty"`
	PubMed      *sources.PubMedSummary      `json:"pubmed,omitempty"`
	GeneReviews *sources.GeneReviewsSummary `json:"genereviews,omitempty"`
	Gnomad      *sources.GnomadSummary      `json:"gnomad,omitempty"`

	Requested []planner.SourceName `json:"-"`
}

// NewBundle pre-fills every box as unused so the serialized bundle always
// carries all six sources with an explanatory reason.
func NewBundle(reason string) *Bundle {
	return &Bundle{
		OMIM:        &sources.OMIMSummary{Used: false, Reason: reason},
		NCBI:        &sources.NCBIGeneSummary{Used: false, Reason: reason},
		ClinVar:     &sources.ClinVarSummary{Used: false, Reason: reason},
		PubMed:      &sources.PubMedSummary{Used: false, Reason: reason},
		GeneReviews: &sources.GeneReviewsSummary{Used: false, Reason: reason},
		Gnomad:      &sources.GnomadSummary{Used: false, Reason: reason},
	}
}

// Used reports whether the named source produced usable evidence this turn.
func (b *Bundle) Used(name planner.SourceName) bool {
	switch name {
	case planner.SourceOMIM:
		return b.OMIM != nil && b.OMIM.Used
	case planner.SourceNCBI:
		return b.NCBI != nil && b.NCBI.Used
	case planner.SourceClinVar:
		return b.ClinVar != nil && b.ClinVar.Used
	case planner.SourcePubMed:
		return b.PubMed != nil && b.PubMed.Used
	case planner.SourceGeneReviews:
		return b.GeneReviews != nil && b.GeneReviews.Used
	case planner.SourceGnomad:
		return b.Gnomad != nil && b.Gnomad.Used
	}
	return false
}

// UsedSources lists the display names of the sources that contributed
// evidence, in a stable order.
func (b *Bundle) UsedSources() []string {
	var out []string
	for _, s := range []struct {
		name    planner.SourceName
		display string
	}{
		{planner.SourceClinVar, "ClinVar"},
		{planner.SourceGeneReviews, "GeneReviews"},
		{planner.SourceOMIM, "OMIM"},
		{planner.SourcePubMed, "PubMed"},
		{planner.SourceGnomad, "gnomAD"},
		{planner.SourceNCBI, "NCBI"},
	} {
		if b.Used(s.name) {
			out = append(out, s.display)
		}
	}
	return out
}

// AllRequestedUnused reports whether every source the planner asked for came
// back empty. False when nothing was requested.
func (b *Bundle) AllRequestedUnused() bool {
	if len(b.Requested) == 0 {
		return false
	}
	for _, name := range b.Requested {
		if b.Used(name) {
			return false
		}
	}
	return true
}
