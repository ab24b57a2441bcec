package gnomad

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"genegpt-be/pkg/sources"
)

const defaultAPIURL = "https://gnomad.broadinstitute.org/api"

const geneQuery = `
query Gene($gene_symbol: String!) {
    gene(gene_symbol: $gene_symbol, reference_genome: GRCh38) {
        gene_id
        symbol
        reference_genome
        chrom
        start
        stop
        omim_id
    }
}`

// Client talks to the gnomAD GraphQL API. Only gene-level metadata is
// fetched; enough to confirm the gene exists in the population dataset and
// to build a browser link.
type Client struct {
	APIURL string
	Client *http.Client
}

func NewClient() *Client {
	return &Client{
		APIURL: defaultAPIURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type graphqlRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type geneResponse struct {
	Data struct {
		Gene *struct {
			GeneID string `json:"gene_id"`
			Chrom  string `json:"chrom"`
			OmimID string `json:"omim_id"`
		} `json:"gene"`
	} `json:"data"`
}

func (c *Client) GeneSummary(ctx context.Context, gene string) (*sources.GnomadSummary, error) {
	gene = strings.ToUpper(strings.TrimSpace(gene))
	if gene == "" {
		return &sources.GnomadSummary{Used: false, Reason: "No gene symbol provided."}, nil
	}

	payload, err := json.Marshal(graphqlRequest{
		Query:     geneQuery,
		Variables: map[string]string{"gene_symbol": gene},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.APIURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "GeneGPT/2.0")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gnomad request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gnomad error: status %d", resp.StatusCode)
	}

	var parsed geneResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	g := parsed.Data.Gene
	if g == nil {
		return &sources.GnomadSummary{Used: false, Reason: fmt.Sprintf("No gnomAD data found for symbol %s (GRCh38).", gene)}, nil
	}

	return &sources.GnomadSummary{
		Used:   true,
		GeneID: g.GeneID,
		Chrom:  g.Chrom,
		OmimID: g.OmimID,
		Link:   "https://gnomad.broadinstitute.org/gene/" + g.GeneID + "?dataset=gnomad_r4",
		Reason: "Fetched basic gene metadata from gnomAD.",
	}, nil
}
