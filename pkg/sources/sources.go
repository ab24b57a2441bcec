// Package sources defines the structured results returned by the external
// evidence databases. Each client lives in its own subpackage; the types here
// are shared so the aggregator and the response assembler can consume them
// without importing every client.
package sources

// Request carries the lookup parameters a planner hands to a source client.
type Request struct {
	Gene         string `json:"gene,omitempty"`
	VariantToken string `json:"variant_token,omitempty"`
	Query        string `json:"query,omitempty"`
}

// Phenotype is one OMIM gene-phenotype association.
type Phenotype struct {
	Name        string `json:"name,omitempty"`
	MimNumber   string `json:"mim_number,omitempty"`
	Inheritance string `json:"inheritance,omitempty"`
	MappingKey  string `json:"mapping_key,omitempty"`
}

type OMIMSummary struct {
	Used        bool        `json:"used"`
	OmimID      string      `json:"omim_id,omitempty"`
	Inheritance string      `json:"inheritance,omitempty"`
	Phenotypes  []Phenotype `json:"phenotypes,omitempty"`
	Link        string      `json:"link,omitempty"`
	Reason      string      `json:"reason,omitempty"`
}

type ClinVarSummary struct {
	Used                   bool   `json:"used"`
	Accession              string `json:"accession,omitempty"`
	ClinicalSignificance   string `json:"clinical_significance,omitempty"`
	Condition              string `json:"condition,omitempty"`
	ReviewStatus           string `json:"review_status,omitempty"`
	NumSubmissions         int    `json:"num_submissions,omitempty"`
	ConflictingSubmissions bool   `json:"conflicting_submissions,omitempty"`
	Link                   string `json:"link,omitempty"`
	Reason                 string `json:"reason,omitempty"`
}

// Paper is one PubMed citation.
type Paper struct {
	PMID    string `json:"pmid"`
	Title   string `json:"title,omitempty"`
	Journal string `json:"journal,omitempty"`
	Year    int    `json:"year,omitempty"`
	URL     string `json:"url,omitempty"`
}

type PubMedSummary struct {
	Used   bool    `json:"used"`
	Papers []Paper `json:"papers,omitempty"`
	Link   string  `json:"link,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

type GeneReviewsSummary struct {
	Used   bool   `json:"used"`
	BookID string `json:"book_id,omitempty"`
	Title  string `json:"title,omitempty"`
	Link   string `json:"link,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type GnomadSummary struct {
	Used   bool   `json:"used"`
	GeneID string `json:"gene_id,omitempty"`
	Chrom  string `json:"chrom,omitempty"`
	OmimID string `json:"omim_id,omitempty"`
	Link   string `json:"link,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// NCBIGeneSummary is the gene-level record from NCBI Gene (full name,
// function text, cytogenetic location).
type NCBIGeneSummary struct {
	Used     bool   `json:"used"`
	GeneID   string `json:"gene_id,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Function string `json:"function,omitempty"`
	Location string `json:"location,omitempty"`
	Link     string `json:"link,omitempty"`
	Reason   string `json:"reason,omitempty"`
}
