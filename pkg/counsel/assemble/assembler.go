// Package assemble composes the structured final result the presentation
// layer consumes: gene block, disease focus, source summaries, overall
// assessment, and the scored answer.
package assemble

import (
	"fmt"
	"sort"
	"strings"

	"genegpt-be/pkg/counsel/evidence"
	"genegpt-be/pkg/counsel/intent"
	"genegpt-be/pkg/counsel/score"
	"genegpt-be/pkg/genetics"
	"genegpt-be/pkg/llm"
)

type GeneBlock struct {
	Symbol          string `json:"symbol,omitempty"`
	SecondarySymbol string `json:"secondary_symbol,omitempty"`
	OmimID          string `json:"omim_id,omitempty"`
	NcbiGeneID      string `json:"ncbi_gene_id,omitempty"`
}

// DiseaseFocus summarizes the top OMIM phenotypes for "which disease does
// this gene cause" style questions.
type DiseaseFocus struct {
	Used            bool     `json:"used"`
	GeneSymbol      string   `json:"gene_symbol,omitempty"`
	TopDiseases     []string `json:"top_diseases,omitempty"`
	TotalPhenotypes int      `json:"total_phenotypes,omitempty"`
	Reason          string   `json:"reason,omitempty"`
}

type OverallAssessment struct {
	Type          string   `json:"type"`
	GeneSymbol    string   `json:"gene_symbol,omitempty"`
	VariantHgvs   string   `json:"variant_hgvs,omitempty"`
	SeverityLabel string   `json:"severity_label"`
	Confidence    string   `json:"confidence"`
	KeyReason     string   `json:"key_reason"`
	Notes         []string `json:"notes"`
}

// SourceSummaries is the compact per-source view rendered in the UI's
// "sources used" panel.
type SourceSummaries struct {
	OMIM struct {
		Used          bool   `json:"used"`
		OmimID        string `json:"omim_id,omitempty"`
		Inheritance   string `json:"inheritance,omitempty"`
		NumPhenotypes int    `json:"num_phenotypes,omitempty"`
		Link          string `json:"link,omitempty"`
	} `json:"omim"`
	NCBI struct {
		Used            bool   `json:"used"`
		GeneID          string `json:"gene_id,omitempty"`
		FullName        string `json:"full_name,omitempty"`
		Location        string `json:"location,omitempty"`
		HasFunctionText bool   `json:"has_function_text"`
		Link            string `json:"link,omitempty"`
	} `json:"ncbi"`
	PubMed struct {
		Used      bool   `json:"used"`
		NumPapers int    `json:"num_papers,omitempty"`
		Years     []int  `json:"years,omitempty"`
		Link      string `json:"link,omitempty"`
	} `json:"pubmed"`
	ClinVar struct {
		Used                   bool   `json:"used"`
		Accession              string `json:"accession,omitempty"`
		ClinicalSignificance   string `json:"clinical_significance,omitempty"`
		Condition              string `json:"condition,omitempty"`
		ReviewStatus           string `json:"review_status,omitempty"`
		NumSubmissions         int    `json:"num_submissions,omitempty"`
		ConflictingSubmissions bool   `json:"conflicting_submissions,omitempty"`
		Link                   string `json:"link,omitempty"`
	} `json:"clinvar"`
	GeneReviews struct {
		Used   bool   `json:"used"`
		BookID string `json:"book_id,omitempty"`
		Title  string `json:"title,omitempty"`
		Link   string `json:"link,omitempty"`
	} `json:"genereviews"`
	Gnomad struct {
		Used   bool   `json:"used"`
		GeneID string `json:"gene_id,omitempty"`
		Link   string `json:"link,omitempty"`
	} `json:"gnomad"`
}

// AnswerJSON is the structured payload returned beside the prose answer.
type AnswerJSON struct {
	QuestionType      string            `json:"question_type"`
	Gene              GeneBlock         `json:"gene"`
	Variant           *genetics.Variant `json:"variant,omitempty"`
	DiseaseFocus      DiseaseFocus      `json:"disease_focus"`
	Evidence          *evidence.Bundle  `json:"evidence"`
	SourceSummaries   SourceSummaries   `json:"source_summaries"`
	OverallAssessment OverallAssessment `json:"overall_assessment"`
}

// FinalResult is the complete per-turn output, constructed once and handed
// read-only to the caller.
type FinalResult struct {
	Answer     string     `json:"answer"`
	AnswerJSON AnswerJSON `json:"answer_json"`
	Usage      llm.Usage  `json:"usage"`
	Trust      float64    `json:"trust"`
	Certainty  float64    `json:"certainty"`
	Sources    []string   `json:"sources"`
	SessionID  string     `json:"session_id,omitempty"`
}

// BuildDiseaseFocus dedupes the OMIM phenotype names (order-preserving) and
// keeps the top five.
func BuildDiseaseFocus(gene string, bundle *evidence.Bundle) DiseaseFocus {
	if gene == "" || bundle == nil || bundle.OMIM == nil || !bundle.OMIM.Used || len(bundle.OMIM.Phenotypes) == 0 {
		return DiseaseFocus{
			Used:       false,
			GeneSymbol: gene,
			Reason:     "No OMIM phenotypes available for this gene.",
		}
	}

	seen := map[string]struct{}{}
	var deduped []string
	for _, ph := range bundle.OMIM.Phenotypes {
		if ph.Name == "" {
			continue
		}
		if _, ok := seen[ph.Name]; ok {
			continue
		}
		seen[ph.Name] = struct{}{}
		deduped = append(deduped, ph.Name)
	}

	top := deduped
	if len(top) > 5 {
		top = top[:5]
	}

	return DiseaseFocus{
		Used:            true,
		GeneSymbol:      gene,
		TopDiseases:     top,
		TotalPhenotypes: len(deduped),
	}
}

// BuildOverallAssessment applies the rule-based severity classification.
// Variant questions key off the ClinVar label; gene questions key off whether
// OMIM lists phenotypes or NCBI provides function text.
func BuildOverallAssessment(category intent.Category, gene string, variant *genetics.Variant, bundle *evidence.Bundle) OverallAssessment {
	if category == intent.CategoryVariant {
		return assessVariant(gene, variant, bundle)
	}
	if category == intent.CategoryGeneral {
		return OverallAssessment{
			Type:          "general",
			SeverityLabel: "General chat question (no gene or variant).",
			Confidence:    "N/A",
			KeyReason:     "No clinical content to assess.",
			Notes:         []string{},
		}
	}
	return assessGene(gene, bundle)
}

func assessVariant(gene string, variant *genetics.Variant, bundle *evidence.Bundle) OverallAssessment {
	a := OverallAssessment{
		Type:          "variant",
		GeneSymbol:    gene,
		SeverityLabel: "Unclear (not classified)",
		Confidence:    "Low",
		Notes:         []string{},
	}
	if variant != nil {
		a.VariantHgvs = variant.SearchToken()
	}

	if bundle.OMIM != nil && bundle.OMIM.Used {
		a.Notes = append(a.Notes, "OMIM links this gene to disease phenotypes.")
	}
	if bundle.NCBI != nil && bundle.NCBI.Used {
		a.Notes = append(a.Notes, "NCBI provides functional information for this gene.")
	}

	significance := ""
	if bundle.ClinVar != nil {
		significance = bundle.ClinVar.ClinicalSignificance
	}
	sig := strings.ToLower(significance)
	a.KeyReason = fmt.Sprintf("ClinVar label is: %s.", orNone(significance))

	if bundle.ClinVar != nil && bundle.ClinVar.Used {
		switch {
		case strings.Contains(sig, "pathogenic") && !strings.Contains(sig, "benign"):
			a.SeverityLabel = "Likely serious (pathogenic/likely pathogenic)"
			a.Confidence = "High"
			a.KeyReason = fmt.Sprintf("ClinVar reports %s.", significance)
		case strings.Contains(sig, "benign") && !strings.Contains(sig, "pathogenic"):
			a.SeverityLabel = "Probably not serious (benign/likely benign)"
			a.Confidence = "Medium"
			a.KeyReason = fmt.Sprintf("ClinVar reports %s.", significance)
		case strings.Contains(sig, "uncertain") || strings.Contains(sig, "vus"):
			a.SeverityLabel = "Uncertain significance (VUS)"
			a.Confidence = "Low"
			a.KeyReason = fmt.Sprintf("ClinVar reports uncertain significance: %s.", significance)
		}
	}
	return a
}

func assessGene(gene string, bundle *evidence.Bundle) OverallAssessment {
	a := OverallAssessment{
		Type:       "gene",
		GeneSymbol: gene,
		Notes:      []string{},
	}

	if bundle.OMIM != nil && bundle.OMIM.Used && len(bundle.OMIM.Phenotypes) > 0 {
		a.SeverityLabel = "Gene associated with disease phenotypes"
		a.Confidence = "High"
		a.KeyReason = fmt.Sprintf("OMIM lists %d phenotype(s).", len(bundle.OMIM.Phenotypes))
		return a
	}
	if bundle.NCBI != nil && bundle.NCBI.Used && bundle.NCBI.Function != "" {
		a.SeverityLabel = "Gene with known biological function"
		a.Confidence = "Medium"
		a.KeyReason = "NCBI provides a functional summary."
		return a
	}

	a.SeverityLabel = "Limited disease information"
	a.Confidence = "Low"
	a.KeyReason = "No clear phenotypes from OMIM or NCBI."
	return a
}

// BuildSourceSummaries compacts the bundle into the per-source counters the
// UI panel renders.
func BuildSourceSummaries(bundle *evidence.Bundle) SourceSummaries {
	var s SourceSummaries

	if bundle.OMIM != nil && bundle.OMIM.Used {
		s.OMIM.Used = true
		s.OMIM.OmimID = bundle.OMIM.OmimID
		s.OMIM.Inheritance = bundle.OMIM.Inheritance
		s.OMIM.NumPhenotypes = len(bundle.OMIM.Phenotypes)
		s.OMIM.Link = bundle.OMIM.Link
	}
	if bundle.NCBI != nil && bundle.NCBI.Used {
		s.NCBI.Used = true
		s.NCBI.GeneID = bundle.NCBI.GeneID
		s.NCBI.FullName = bundle.NCBI.FullName
		s.NCBI.Location = bundle.NCBI.Location
		s.NCBI.HasFunctionText = bundle.NCBI.Function != ""
		s.NCBI.Link = bundle.NCBI.Link
	}
	if bundle.PubMed != nil && bundle.PubMed.Used {
		s.PubMed.Used = true
		s.PubMed.NumPapers = len(bundle.PubMed.Papers)
		s.PubMed.Link = bundle.PubMed.Link
		yearSet := map[int]struct{}{}
		for _, p := range bundle.PubMed.Papers {
			if p.Year > 0 {
				yearSet[p.Year] = struct{}{}
			}
		}
		for y := range yearSet {
			s.PubMed.Years = append(s.PubMed.Years, y)
		}
		sort.Ints(s.PubMed.Years)
	}
	if bundle.ClinVar != nil && bundle.ClinVar.Used {
		s.ClinVar.Used = true
		s.ClinVar.Accession = bundle.ClinVar.Accession
		s.ClinVar.ClinicalSignificance = bundle.ClinVar.ClinicalSignificance
		s.ClinVar.Condition = bundle.ClinVar.Condition
		s.ClinVar.ReviewStatus = bundle.ClinVar.ReviewStatus
		s.ClinVar.NumSubmissions = bundle.ClinVar.NumSubmissions
		s.ClinVar.ConflictingSubmissions = bundle.ClinVar.ConflictingSubmissions
		s.ClinVar.Link = bundle.ClinVar.Link
	}
	if bundle.GeneReviews != nil && bundle.GeneReviews.Used {
		s.GeneReviews.Used = true
		s.GeneReviews.BookID = bundle.GeneReviews.BookID
		s.GeneReviews.Title = bundle.GeneReviews.Title
		s.GeneReviews.Link = bundle.GeneReviews.Link
	}
	if bundle.Gnomad != nil && bundle.Gnomad.Used {
		s.Gnomad.Used = true
		s.Gnomad.GeneID = bundle.Gnomad.GeneID
		s.Gnomad.Link = bundle.Gnomad.Link
	}

	return s
}

// Input bundles everything the assembler composes. Pure composition; no
// validation beyond filling in derived blocks.
type Input struct {
	Category      intent.Category
	EffectiveGene string
	SecondaryGene string
	Variant       *genetics.Variant
	Bundle        *evidence.Bundle
	Scores        score.Scores
	SynthesisText string
	Usage         llm.Usage
	SessionID     string
}

func Assemble(in Input) *FinalResult {
	bundle := in.Bundle
	if bundle == nil {
		bundle = evidence.NewBundle("No evidence gathered for this turn.")
	}

	gene := GeneBlock{Symbol: in.EffectiveGene, SecondarySymbol: in.SecondaryGene}
	if bundle.OMIM != nil && bundle.OMIM.Used {
		gene.OmimID = bundle.OMIM.OmimID
	}
	if bundle.NCBI != nil && bundle.NCBI.Used {
		gene.NcbiGeneID = bundle.NCBI.GeneID
	}

	return &FinalResult{
		Answer: in.SynthesisText,
		AnswerJSON: AnswerJSON{
			QuestionType:      string(in.Category),
			Gene:              gene,
			Variant:           in.Variant,
			DiseaseFocus:      BuildDiseaseFocus(in.EffectiveGene, bundle),
			Evidence:          bundle,
			SourceSummaries:   BuildSourceSummaries(bundle),
			OverallAssessment: BuildOverallAssessment(in.Category, in.EffectiveGene, in.Variant, bundle),
		},
		Usage:     in.Usage,
		Trust:     in.Scores.Trust,
		Certainty: in.Scores.Certainty,
		Sources:   bundle.UsedSources(),
		SessionID: in.SessionID,
	}
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
