// Package counsel wires the decision pipeline: classify, guard, gate, plan,
// aggregate, gate again, score, synthesize, assemble.
package counsel

import (
	"context"
	"strings"

	"genegpt-be/pkg/counsel/assemble"
	"genegpt-be/pkg/counsel/evidence"
	"genegpt-be/pkg/counsel/gate"
	"genegpt-be/pkg/counsel/guard"
	"genegpt-be/pkg/counsel/intent"
	"genegpt-be/pkg/counsel/planner"
	"genegpt-be/pkg/counsel/score"
	"genegpt-be/pkg/counsel/synthesis"
	"genegpt-be/pkg/genetics"
	"genegpt-be/pkg/store"
)

type Pipeline struct {
	classifier  intent.Classifier
	aggregator  *evidence.Aggregator
	scorer      *score.Engine
	synthesizer *synthesis.Synthesizer
}

func NewPipeline(aggregator *evidence.Aggregator, scorer *score.Engine, synthesizer *synthesis.Synthesizer) *Pipeline {
	return &Pipeline{
		classifier:  intent.RuleBased{},
		aggregator:  aggregator,
		scorer:      scorer,
		synthesizer: synthesizer,
	}
}

// Run processes one turn against the given session. The session is mutated in
// place (guard action, variant state); the caller owns persisting it. An
// error return means synthesis failed; any session mutation made before the
// failure is still valid and should be committed.
func (p *Pipeline) Run(ctx context.Context, session *store.Session, message string) (*assemble.FinalResult, error) {
	it := p.classifier.Classify(message)

	// A follow-up with no fresh variant token inherits the session's variant.
	effectiveVariant := it.Variant
	if effectiveVariant == nil && session.CurrentVariant != "" && intent.IsFollowUp(message) {
		effectiveVariant = genetics.ExtractVariant(session.CurrentVariant)
	}

	decision := guard.Decide(session, it)

	if proceed, msg := gate.CheckClarification(it, decision.EffectiveGene); !proceed {
		// Early stop: the reset from the guard is preserved even though the
		// turn produced no answer.
		return assemble.Assemble(assemble.Input{
			Category:      it.Category,
			EffectiveGene: decision.EffectiveGene,
			Bundle:        evidence.NewBundle("Turn stopped at the clarification gate; no sources queried."),
			Scores:        score.Floor(),
			SynthesisText: msg,
			SessionID:     session.ID,
		}), nil
	}

	requests := planner.Plan(it.Category, decision.EffectiveGene, effectiveVariant)
	bundle := p.aggregator.Fetch(ctx, requests)

	if proceed, msg := gate.CheckSafety(it.Category, bundle); !proceed {
		return assemble.Assemble(assemble.Input{
			Category:      it.Category,
			EffectiveGene: decision.EffectiveGene,
			SecondaryGene: decision.SecondaryGene,
			Variant:       effectiveVariant,
			Bundle:        evidence.NewBundle("No usable evidence found; synthesis was not attempted."),
			Scores:        score.Floor(),
			SynthesisText: msg,
			SessionID:     session.ID,
		}), nil
	}

	scores := p.scorer.Score(bundle, it.Category)

	// Variant state is committed before the synthesis call so a transient
	// model outage doesn't lose context.
	p.updateVariantState(session, it, effectiveVariant, bundle)

	answerJSON := assemble.AnswerJSON{
		QuestionType:      string(it.Category),
		Gene:              assemble.GeneBlock{Symbol: decision.EffectiveGene, SecondarySymbol: decision.SecondaryGene},
		Variant:           effectiveVariant,
		DiseaseFocus:      assemble.BuildDiseaseFocus(decision.EffectiveGene, bundle),
		Evidence:          bundle,
		SourceSummaries:   assemble.BuildSourceSummaries(bundle),
		OverallAssessment: assemble.BuildOverallAssessment(it.Category, decision.EffectiveGene, effectiveVariant, bundle),
	}

	completion, err := p.synthesizer.Generate(ctx, message, session.History, answerJSON)
	if err != nil {
		return nil, err
	}

	result := assemble.Assemble(assemble.Input{
		Category:      it.Category,
		EffectiveGene: decision.EffectiveGene,
		SecondaryGene: decision.SecondaryGene,
		Variant:       effectiveVariant,
		Bundle:        bundle,
		Scores:        scores,
		SynthesisText: completion.Text,
		Usage:         completion.Usage,
		SessionID:     session.ID,
	})
	return result, nil
}

// updateVariantState carries forward the variant context gathered this turn.
func (p *Pipeline) updateVariantState(session *store.Session, it intent.Intent, variant *genetics.Variant, bundle *evidence.Bundle) {
	if variant != nil {
		session.CurrentVariant = variant.SearchToken()
	}

	if bundle.ClinVar != nil && bundle.ClinVar.Used {
		sig := strings.ToLower(bundle.ClinVar.ClinicalSignificance)
		switch {
		case strings.Contains(sig, "uncertain") || strings.Contains(sig, "vus"):
			session.VariantClassification = "VUS"
		case strings.Contains(sig, "pathogenic") && !strings.Contains(sig, "benign"):
			session.VariantClassification = "pathogenic"
		case strings.Contains(sig, "benign") && !strings.Contains(sig, "pathogenic"):
			session.VariantClassification = "benign"
		}
	}

	lower := strings.ToLower(it.RawQuestion)
	if strings.Contains(lower, "somatic") || strings.Contains(lower, "tumor") {
		session.TestContext = "somatic"
	} else if strings.Contains(lower, "germline") || strings.Contains(lower, "blood test") {
		session.TestContext = "germline"
	}
}
