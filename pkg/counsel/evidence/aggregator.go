package evidence

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"genegpt-be/pkg/counsel/planner"
	"genegpt-be/pkg/sources"
)

// Source collaborator contracts. Each maps to one external database client;
// tests substitute fakes.

type OMIMSource interface {
	GeneSummary(ctx context.Context, gene string) (*sources.OMIMSummary, error)
}

type NCBIGeneSource interface {
	GeneSummary(ctx context.Context, gene string) (*sources.NCBIGeneSummary, error)
}

type ClinVarSource interface {
	VariantSummary(ctx context.Context, gene, variantToken string) (*sources.ClinVarSummary, error)
}

type PubMedSource interface {
	Search(ctx context.Context, query string) (*sources.PubMedSummary, error)
}

type GeneReviewsSource interface {
	ChapterSummary(ctx context.Context, gene string) (*sources.GeneReviewsSummary, error)
}

type GnomadSource interface {
	GeneSummary(ctx context.Context, gene string) (*sources.GnomadSummary, error)
}

const defaultSourceTimeout = 12 * time.Second

// Aggregator fans requests out to the source clients. One source failing or
// timing out never blocks or corrupts another's result; it just comes back as
// an unused box with the error as the reason.
type Aggregator struct {
	OMIM        OMIMSource
	NCBI        NCBIGeneSource
	ClinVar     ClinVarSource
	PubMed      PubMedSource
	GeneReviews GeneReviewsSource
	Gnomad      GnomadSource

	// SourceTimeout bounds each individual source call.
	SourceTimeout time.Duration
}

func (a *Aggregator) timeout() time.Duration {
	if a.SourceTimeout > 0 {
		return a.SourceTimeout
	}
	return defaultSourceTimeout
}

// Fetch queries every planned source concurrently and assembles the bundle.
// The returned error is always nil today; the signature leaves room for a
// future fatal condition without breaking callers.
func (a *Aggregator) Fetch(ctx context.Context, requests []planner.Request) *Bundle {
	bundle := NewBundle("Source not requested for this question type.")
	for _, req := range requests {
		bundle.Requested = append(bundle.Requested, req.Source)
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, req := range requests {
		req := req
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, a.timeout())
			defer cancel()
			a.fetchOne(callCtx, req, bundle)
			return nil
		})
	}

	// Workers never return errors; failures land in the boxes.
	_ = g.Wait()
	return bundle
}

// fetchOne writes exactly one box, so concurrent workers never touch the same
// field of the bundle.
func (a *Aggregator) fetchOne(ctx context.Context, req planner.Request, bundle *Bundle) {
	switch req.Source {
	case planner.SourceOMIM:
		if a.OMIM == nil {
			return
		}
		box, err := a.OMIM.GeneSummary(ctx, req.Params.Gene)
		if err != nil {
			bundle.OMIM = &sources.OMIMSummary{Used: false, Reason: "OMIM lookup failed: " + err.Error()}
			return
		}
		bundle.OMIM = box
	case planner.SourceNCBI:
		if a.NCBI == nil {
			return
		}
		box, err := a.NCBI.GeneSummary(ctx, req.Params.Gene)
		if err != nil {
			bundle.NCBI = &sources.NCBIGeneSummary{Used: false, Reason: "NCBI Gene lookup failed: " + err.Error()}
			return
		}
		bundle.NCBI = box
	case planner.SourceClinVar:
		if a.ClinVar == nil {
			return
		}
		box, err := a.ClinVar.VariantSummary(ctx, req.Params.Gene, req.Params.VariantToken)
		if err != nil {
			bundle.ClinVar = &sources.ClinVarSummary{Used: false, Reason: "ClinVar lookup failed: " + err.Error()}
			return
		}
		bundle.ClinVar = box
	case planner.SourcePubMed:
		if a.PubMed == nil {
			return
		}
		query := req.Params.Query
		if query == "" {
			query = req.Params.Gene
		}
		box, err := a.PubMed.Search(ctx, query)
		if err != nil {
			bundle.PubMed = &sources.PubMedSummary{Used: false, Reason: "PubMed search failed: " + err.Error()}
			return
		}
		bundle.PubMed = box
	case planner.SourceGeneReviews:
		if a.GeneReviews == nil {
			return
		}
		box, err := a.GeneReviews.ChapterSummary(ctx, req.Params.Gene)
		if err != nil {
			bundle.GeneReviews = &sources.GeneReviewsSummary{Used: false, Reason: "GeneReviews lookup failed: " + err.Error()}
			return
		}
		bundle.GeneReviews = box
	case planner.SourceGnomad:
		if a.Gnomad == nil {
			return
		}
		box, err := a.Gnomad.GeneSummary(ctx, req.Params.Gene)
		if err != nil {
			bundle.Gnomad = &sources.GnomadSummary{Used: false, Reason: "gnomAD lookup failed: " + err.Error()}
			return
		}
		bundle.Gnomad = box
	}
}
