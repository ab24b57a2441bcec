package counsel

import (
	"context"
	"errors"
	"testing"

	"genegpt-be/pkg/counsel/evidence"
	"genegpt-be/pkg/counsel/gate"
	"genegpt-be/pkg/counsel/score"
	"genegpt-be/pkg/counsel/synthesis"
	"genegpt-be/pkg/llm"
	"genegpt-be/pkg/sources"
	"genegpt-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fakes for the source clients. Each returns a canned summary or an error.

type fakeOMIM struct {
	summary *sources.OMIMSummary
	err     error
}

func (f *fakeOMIM) GeneSummary(_ context.Context, _ string) (*sources.OMIMSummary, error) {
	return f.summary, f.err
}

type fakeNCBI struct {
	summary *sources.NCBIGeneSummary
	err     error
}

func (f *fakeNCBI) GeneSummary(_ context.Context, _ string) (*sources.NCBIGeneSummary, error) {
	return f.summary, f.err
}

type fakeClinVar struct {
	summary *sources.ClinVarSummary
	err     error
}

func (f *fakeClinVar) VariantSummary(_ context.Context, _, _ string) (*sources.ClinVarSummary, error) {
	return f.summary, f.err
}

type fakePubMed struct {
	summary *sources.PubMedSummary
	err     error
}

func (f *fakePubMed) Search(_ context.Context, _ string) (*sources.PubMedSummary, error) {
	return f.summary, f.err
}

type fakeGeneReviews struct {
	summary *sources.GeneReviewsSummary
	err     error
}

func (f *fakeGeneReviews) ChapterSummary(_ context.Context, _ string) (*sources.GeneReviewsSummary, error) {
	return f.summary, f.err
}

type fakeGnomad struct {
	summary *sources.GnomadSummary
	err     error
}

func (f *fakeGnomad) GeneSummary(_ context.Context, _ string) (*sources.GnomadSummary, error) {
	return f.summary, f.err
}

// fakeProvider counts model calls and returns a fixed answer.
type fakeProvider struct {
	calls int
	text  string
	err   error
}

func (f *fakeProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (*llm.Completion, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Completion{Text: f.text, Usage: llm.Usage{TotalTokens: 42}}, nil
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (*llm.Completion, error) {
	return f.Chat(ctx, nil, opts...)
}

func newTestPipeline(agg *evidence.Aggregator, provider llm.Provider) *Pipeline {
	return NewPipeline(agg, score.NewEngine(score.DefaultConfig()), synthesis.NewSynthesizer(provider))
}

func TestPipelineRiskQuestion(t *testing.T) {
	agg := &evidence.Aggregator{
		OMIM: &fakeOMIM{summary: &sources.OMIMSummary{
			Used:   true,
			OmimID: "113705",
			Phenotypes: []sources.Phenotype{
				{Name: "Breast-ovarian cancer, familial, 1"},
				{Name: "Pancreatic cancer, susceptibility to, 4"},
			},
		}},
		GeneReviews: &fakeGeneReviews{summary: &sources.GeneReviewsSummary{Used: true, BookID: "NBK1247"}},
		PubMed:      &fakePubMed{summary: &sources.PubMedSummary{Used: true, Papers: []sources.Paper{{PMID: "1", Year: 2021}}}},
	}
	provider := &fakeProvider{text: "BRCA1 variants can raise cancer risk; discuss your result with a counselor."}
	p := newTestPipeline(agg, provider)
	session := store.NewSession("s1")

	result, err := p.Run(context.Background(), session, "Is a BRCA1 mutation dangerous?")

	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, provider.text, result.Answer)
	assert.Equal(t, "BRCA1", session.TopicGene)
	assert.Equal(t, "risk", result.AnswerJSON.QuestionType)
	assert.Equal(t, []string{"GeneReviews", "OMIM", "PubMed"}, result.Sources)
	assert.InDelta(t, 1.0, result.Trust, 1e-9)
	assert.InDelta(t, 0.80, result.Certainty, 1e-9)
	assert.True(t, result.AnswerJSON.DiseaseFocus.Used)
	assert.Equal(t, 42, result.Usage.TotalTokens)
}

func TestPipelineClarificationStopsBeforeSources(t *testing.T) {
	// Clients that would fail loudly if ever called.
	agg := &evidence.Aggregator{
		OMIM:        &fakeOMIM{err: errors.New("must not be called")},
		GeneReviews: &fakeGeneReviews{err: errors.New("must not be called")},
		PubMed:      &fakePubMed{err: errors.New("must not be called")},
	}
	provider := &fakeProvider{text: "unused"}
	p := newTestPipeline(agg, provider)
	session := store.NewSession("s1")

	result, err := p.Run(context.Background(), session, "Is it dangerous?")

	require.NoError(t, err)
	assert.Equal(t, 0, provider.calls, "clarification must not reach the model")
	assert.Equal(t, gate.ClarificationMessage, result.Answer)
	assert.Zero(t, result.Trust)
	assert.Zero(t, result.Certainty)
	assert.Empty(t, result.Sources)
}

func TestPipelineClarificationUsesInheritedGene(t *testing.T) {
	agg := &evidence.Aggregator{
		OMIM:        &fakeOMIM{summary: &sources.OMIMSummary{Used: true, OmimID: "113705", Phenotypes: []sources.Phenotype{{Name: "a"}, {Name: "b"}}}},
		GeneReviews: &fakeGeneReviews{summary: &sources.GeneReviewsSummary{Used: true}},
		PubMed:      &fakePubMed{summary: &sources.PubMedSummary{Used: true}},
	}
	provider := &fakeProvider{text: "answer"}
	p := newTestPipeline(agg, provider)
	session := store.NewSession("s1")
	session.TopicGene = "BRCA1"

	result, err := p.Run(context.Background(), session, "Is it dangerous?")

	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls, "inherited gene context answers the vague question")
	assert.Equal(t, "BRCA1", result.AnswerJSON.Gene.Symbol)
}

func TestPipelineNoEvidenceAbortsSynthesis(t *testing.T) {
	agg := &evidence.Aggregator{
		ClinVar: &fakeClinVar{err: errors.New("timeout")},
		Gnomad:  &fakeGnomad{err: errors.New("timeout")},
	}
	provider := &fakeProvider{text: "unused"}
	p := newTestPipeline(agg, provider)
	session := store.NewSession("s1")

	result, err := p.Run(context.Background(), session, "What does BRCA1 c.68_69delAG mean for me?")

	require.NoError(t, err)
	assert.Equal(t, 0, provider.calls, "no-evidence turns must not reach the model")
	assert.Equal(t, gate.NoEvidenceMessage, result.Answer)
	assert.Zero(t, result.Trust)
	assert.Zero(t, result.Certainty)
}

func TestPipelinePartialEvidenceProceeds(t *testing.T) {
	agg := &evidence.Aggregator{
		ClinVar: &fakeClinVar{summary: &sources.ClinVarSummary{
			Used:                 true,
			Accession:            "VCV000017677",
			ClinicalSignificance: "Uncertain significance",
		}},
		Gnomad: &fakeGnomad{err: errors.New("gnomAD unreachable")},
	}
	provider := &fakeProvider{text: "This variant is currently of uncertain significance."}
	p := newTestPipeline(agg, provider)
	session := store.NewSession("s1")

	result, err := p.Run(context.Background(), session, "What does BRCA1 c.68_69delAG mean for me?")

	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, []string{"ClinVar"}, result.Sources)
	assert.Equal(t, "VUS", session.VariantClassification)
	assert.Equal(t, "c.68_69delAG", session.CurrentVariant)
	// One failed source is reported, not fatal.
	assert.False(t, result.AnswerJSON.Evidence.Gnomad.Used)
	assert.Contains(t, result.AnswerJSON.Evidence.Gnomad.Reason, "gnomAD lookup failed")
}

func TestPipelineSynthesisFailure(t *testing.T) {
	agg := &evidence.Aggregator{
		NCBI: &fakeNCBI{summary: &sources.NCBIGeneSummary{Used: true, GeneID: "7157", Function: "tumor suppressor"}},
	}
	provider := &fakeProvider{err: errors.New("model overloaded")}
	p := newTestPipeline(agg, provider)
	session := store.NewSession("s1")

	result, err := p.Run(context.Background(), session, "What is TP53?")

	require.Error(t, err)
	assert.Nil(t, result)
	// Guard mutations made before the failure survive for the caller to commit.
	assert.Equal(t, "TP53", session.TopicGene)
}
