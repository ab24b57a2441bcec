// Package score derives the per-turn trust and certainty pair from the
// evidence bundle. Both are pure functions of the bundle and category.
package score

import (
	"strings"

	"genegpt-be/pkg/counsel/evidence"
	"genegpt-be/pkg/counsel/intent"
	"genegpt-be/pkg/counsel/planner"
)

// Deductions are the fixed trust penalties. Each applies at most once; the
// result is independent of application order.
type Deductions struct {
	LiteratureOnly   float64
	NoGuideline      float64
	UncertainVariant float64
	SparsePhenotypes float64
	ConflictingData  float64
}

// Config carries the tunable weights. The certainty weights reflect source
// quality (clinical classification > curated guideline > phenotype catalog >
// literature > population frequency).
type Config struct {
	Deductions       Deductions
	CertaintyWeights map[planner.SourceName]float64
}

func DefaultConfig() Config {
	return Config{
		Deductions: Deductions{
			LiteratureOnly:   0.20,
			NoGuideline:      0.15,
			UncertainVariant: 0.10,
			SparsePhenotypes: 0.15,
			ConflictingData:  0.10,
		},
		CertaintyWeights: map[planner.SourceName]float64{
			planner.SourceClinVar:     0.40,
			planner.SourceGeneReviews: 0.35,
			planner.SourceOMIM:        0.25,
			planner.SourcePubMed:      0.20,
			planner.SourceGnomad:      0.15,
			planner.SourceNCBI:        0.15,
		},
	}
}

// Scores is the per-turn (trust, certainty) pair, both in [0,1].
type Scores struct {
	Trust     float64 `json:"trust"`
	Certainty float64 `json:"certainty"`
}

// Floor is the defined floor returned when the safety gate aborts a turn.
func Floor() Scores {
	return Scores{Trust: 0, Certainty: 0}
}

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Score computes both measures from the bundle. Trust starts at 1.0 and takes
// the fixed deductions; certainty is the weighted sum of the sources that
// actually contributed.
func (e *Engine) Score(bundle *evidence.Bundle, category intent.Category) Scores {
	return Scores{
		Trust:     e.trust(bundle, category),
		Certainty: e.certainty(bundle),
	}
}

func (e *Engine) trust(bundle *evidence.Bundle, category intent.Category) float64 {
	d := e.cfg.Deductions
	t := 1.0

	used := bundle.UsedSources()
	if len(used) == 1 && used[0] == "PubMed" {
		t -= d.LiteratureOnly
	}
	if !bundle.Used(planner.SourceGeneReviews) && (category == intent.CategoryRisk || category == intent.CategoryVariant) {
		t -= d.NoGuideline
	}

	sig := ""
	if bundle.ClinVar != nil {
		sig = strings.ToLower(bundle.ClinVar.ClinicalSignificance)
	}
	if strings.Contains(sig, "uncertain") || strings.Contains(sig, "vus") {
		t -= d.UncertainVariant
	}

	if e.sparsePhenotypes(bundle) {
		t -= d.SparsePhenotypes
	}

	if (bundle.ClinVar != nil && bundle.ClinVar.ConflictingSubmissions) || strings.Contains(sig, "conflicting") {
		t -= d.ConflictingData
	}

	return clamp01(t)
}

// sparsePhenotypes flags a rare/thin gene: the phenotype catalog was consulted
// and came back with fewer than two distinct phenotype names.
func (e *Engine) sparsePhenotypes(bundle *evidence.Bundle) bool {
	if !requested(bundle, planner.SourceOMIM) {
		return false
	}
	if bundle.OMIM == nil || !bundle.OMIM.Used {
		return true
	}
	distinct := map[string]struct{}{}
	for _, ph := range bundle.OMIM.Phenotypes {
		if ph.Name != "" {
			distinct[ph.Name] = struct{}{}
		}
	}
	return len(distinct) < 2
}

func (e *Engine) certainty(bundle *evidence.Bundle) float64 {
	c := 0.0
	for name, weight := range e.cfg.CertaintyWeights {
		if bundle.Used(name) {
			c += weight
		}
	}
	if c > 1.0 {
		c = 1.0
	}
	return c
}

func requested(bundle *evidence.Bundle, name planner.SourceName) bool {
	for _, r := range bundle.Requested {
		if r == name {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Display bands. The UI's meter colors key off these exact boundaries.

func TrustBand(trust float64) string {
	switch {
	case trust >= 0.70:
		return "high"
	case trust >= 0.40:
		return "medium"
	default:
		return "low"
	}
}

func CertaintyBand(certainty float64) string {
	switch {
	case certainty >= 0.85:
		return "high"
	case certainty >= 0.60:
		return "medium"
	default:
		return "low"
	}
}
