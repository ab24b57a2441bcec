package clinvar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"genegpt-be/pkg/sources"
)

const eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

type Client struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: eutilsBase,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// BuildSearchTerm makes the ClinVar search term for a variant lookup.
// rsIDs are understood by ClinVar directly; HGVS tokens are combined with the
// gene field qualifier when a gene is known.
func BuildSearchTerm(gene, variantToken string) string {
	gene = strings.TrimSpace(gene)
	variantToken = strings.TrimSpace(variantToken)

	lower := strings.ToLower(variantToken)
	if strings.HasPrefix(lower, "rs") && isDigits(lower[2:]) {
		return variantToken
	}
	if gene != "" {
		return fmt.Sprintf("%s[gene] AND %s", gene, variantToken)
	}
	return variantToken
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// traitName tolerates ClinVar returning trait names as a string or a list.
type traitName struct {
	Value string
}

func (t *traitName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Value = s
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil && len(list) > 0 {
		t.Value = list[0]
	}
	return nil
}

type clinvarRecord struct {
	Accession            string `json:"accession"`
	SubmissionCount      int    `json:"submission_count"`
	ClinicalSignificance struct {
		Description     string          `json:"description"`
		ReviewStatus    string          `json:"review_status"`
		ConflictingData json.RawMessage `json:"conflicting_data"`
	} `json:"clinical_significance"`
	TraitSet []struct {
		Trait struct {
			Name traitName `json:"name"`
		} `json:"trait"`
	} `json:"trait_set"`
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("retmode", "json")
	if c.APIKey != "" {
		params.Set("api_key", c.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("eutils request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("eutils error: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// VariantSummary searches ClinVar for a variant and reduces the first match
// to the clinical-significance fields the scoring engine consumes.
func (c *Client) VariantSummary(ctx context.Context, gene, variantToken string) (*sources.ClinVarSummary, error) {
	variantToken = strings.TrimSpace(variantToken)
	if variantToken == "" {
		return &sources.ClinVarSummary{Used: false, Reason: "No variant token provided to ClinVar client."}, nil
	}

	term := BuildSearchTerm(gene, variantToken)

	searchParams := url.Values{}
	searchParams.Set("db", "clinvar")
	searchParams.Set("term", term)

	var search esearchResponse
	if err := c.get(ctx, "esearch.fcgi", searchParams, &search); err != nil {
		return nil, err
	}
	if len(search.ESearchResult.IDList) == 0 {
		return &sources.ClinVarSummary{Used: false, Reason: fmt.Sprintf("No ClinVar match found for term '%s'.", term)}, nil
	}
	cvID := search.ESearchResult.IDList[0]

	summaryParams := url.Values{}
	summaryParams.Set("db", "clinvar")
	summaryParams.Set("id", cvID)

	var summary struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := c.get(ctx, "esummary.fcgi", summaryParams, &summary); err != nil {
		return nil, err
	}

	raw, ok := summary.Result[cvID]
	if !ok {
		return &sources.ClinVarSummary{Used: false, Reason: fmt.Sprintf("ClinVar summary not available for ID %s.", cvID)}, nil
	}
	var record clinvarRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}

	condition := ""
	if len(record.TraitSet) > 0 {
		condition = record.TraitSet[0].Trait.Name.Value
	}

	link := ""
	if record.Accession != "" {
		link = "https://www.ncbi.nlm.nih.gov/clinvar/" + record.Accession
	}

	conflicting := len(record.ClinicalSignificance.ConflictingData) > 0 &&
		string(record.ClinicalSignificance.ConflictingData) != "null" &&
		string(record.ClinicalSignificance.ConflictingData) != `""`

	return &sources.ClinVarSummary{
		Used:                   true,
		Accession:              record.Accession,
		ClinicalSignificance:   record.ClinicalSignificance.Description,
		Condition:              condition,
		ReviewStatus:           record.ClinicalSignificance.ReviewStatus,
		NumSubmissions:         record.SubmissionCount,
		ConflictingSubmissions: conflicting,
		Link:                   link,
		Reason:                 fmt.Sprintf("Fetched from NCBI ClinVar API using term '%s'.", term),
	}, nil
}
