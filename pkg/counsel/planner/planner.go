// Package planner maps a question category to the set of evidence sources
// worth querying. Pure; no side effects.
package planner

import (
	"genegpt-be/pkg/counsel/intent"
	"genegpt-be/pkg/genetics"
	"genegpt-be/pkg/sources"
)

type SourceName string

const (
	SourceOMIM        SourceName = "omim"
	SourceNCBI        SourceName = "ncbi"
	SourceClinVar     SourceName = "clinvar"
	SourcePubMed      SourceName = "pubmed"
	SourceGeneReviews SourceName = "genereviews"
	SourceGnomad      SourceName = "gnomad"
)

// Request names one source to consult plus its lookup parameters.
type Request struct {
	Source SourceName
	Params sources.Request
}

// Plan scopes retrieval to what the question type needs: risk questions pull
// phenotype, guideline, and literature databases; variant questions pull the
// classification and population-frequency databases; education questions pull
// the definitional database only. No gene means nothing to look up.
func Plan(category intent.Category, effectiveGene string, variant *genetics.Variant) []Request {
	if effectiveGene == "" && variant == nil {
		return nil
	}

	gene := sources.Request{Gene: effectiveGene}

	switch category {
	case intent.CategoryRisk:
		return []Request{
			{Source: SourceOMIM, Params: gene},
			{Source: SourceGeneReviews, Params: gene},
			{Source: SourcePubMed, Params: sources.Request{Gene: effectiveGene, Query: effectiveGene}},
		}
	case intent.CategoryVariant:
		return []Request{
			{Source: SourceClinVar, Params: sources.Request{Gene: effectiveGene, VariantToken: variant.SearchToken()}},
			{Source: SourceGnomad, Params: gene},
		}
	case intent.CategoryEducation:
		return []Request{
			{Source: SourceNCBI, Params: gene},
		}
	default:
		return nil
	}
}
