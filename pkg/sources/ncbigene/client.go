package ncbigene

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

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type geneRecord struct {
	UID              string `json:"uid"`
	Description      string `json:"description"`
	NomenclatureName string `json:"nomenclaturename"`
	Chromosome       string `json:"chromosome"`
	MapLocation      string `json:"maplocation"`
	Summary          string `json:"summary"`
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

// resolveGeneID finds the Entrez Gene ID for a human gene symbol.
func (c *Client) resolveGeneID(ctx context.Context, gene string) (string, error) {
	params := url.Values{}
	params.Set("db", "gene")
	params.Set("term", fmt.Sprintf("%s[sym] AND human[orgn]", gene))
	params.Set("retmax", "1")

	var search esearchResponse
	if err := c.get(ctx, "esearch.fcgi", params, &search); err != nil {
		return "", err
	}
	if len(search.ESearchResult.IDList) == 0 {
		return "", nil
	}
	return search.ESearchResult.IDList[0], nil
}

// GeneSummary fetches the NCBI Gene record (full name, function text,
// cytogenetic location) used for education answers.
func (c *Client) GeneSummary(ctx context.Context, gene string) (*sources.NCBIGeneSummary, error) {
	gene = strings.ToUpper(strings.TrimSpace(gene))
	if gene == "" {
		return &sources.NCBIGeneSummary{Used: false, Reason: "No gene symbol provided."}, nil
	}

	geneID, err := c.resolveGeneID(ctx, gene)
	if err != nil {
		return nil, err
	}
	if geneID == "" {
		return &sources.NCBIGeneSummary{Used: false, Reason: fmt.Sprintf("No NCBI Gene ID found for symbol %s.", gene)}, nil
	}

	summaryParams := url.Values{}
	summaryParams.Set("db", "gene")
	summaryParams.Set("id", geneID)

	var summary struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := c.get(ctx, "esummary.fcgi", summaryParams, &summary); err != nil {
		return nil, err
	}

	raw, ok := summary.Result[geneID]
	if !ok {
		return &sources.NCBIGeneSummary{Used: false, Reason: fmt.Sprintf("No entry data for gene ID %s.", geneID)}, nil
	}
	var record geneRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}

	fullName := record.Description
	if fullName == "" {
		fullName = record.NomenclatureName
	}
	location := record.Chromosome
	if record.MapLocation != "" {
		location = record.MapLocation
	}

	return &sources.NCBIGeneSummary{
		Used:     true,
		GeneID:   geneID,
		FullName: fullName,
		Function: strings.TrimSpace(record.Summary),
		Location: location,
		Link:     "https://www.ncbi.nlm.nih.gov/gene/" + geneID,
		Reason:   "Fetched from NCBI Gene API.",
	}, nil
}
