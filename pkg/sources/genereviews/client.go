package genereviews

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

// Client looks up GeneReviews chapters via the NCBI Bookshelf.
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

type bookRecord struct {
	UID         string `json:"uid"`
	RType       string `json:"rtype"`
	AccessionID string `json:"accessionid"`
	Title       string `json:"title"`
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

// ChapterSummary finds the GeneReviews chapter for a gene. Search hits can be
// tables or figures, so the chapter rtype is preferred over the first hit.
func (c *Client) ChapterSummary(ctx context.Context, gene string) (*sources.GeneReviewsSummary, error) {
	gene = strings.TrimSpace(gene)
	if gene == "" {
		return &sources.GeneReviewsSummary{Used: false, Reason: "No gene symbol provided."}, nil
	}

	searchParams := url.Values{}
	searchParams.Set("db", "books")
	searchParams.Set("term", fmt.Sprintf("%s[Title] AND gene[book]", gene))
	searchParams.Set("retmax", "10")

	var search esearchResponse
	if err := c.get(ctx, "esearch.fcgi", searchParams, &search); err != nil {
		return nil, err
	}
	ids := search.ESearchResult.IDList
	if len(ids) == 0 {
		return &sources.GeneReviewsSummary{Used: false, Reason: fmt.Sprintf("No GeneReviews chapter found for %s.", gene)}, nil
	}

	summaryParams := url.Values{}
	summaryParams.Set("db", "books")
	summaryParams.Set("id", strings.Join(ids, ","))

	var summary struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := c.get(ctx, "esummary.fcgi", summaryParams, &summary); err != nil {
		return nil, err
	}

	var best *bookRecord
	for _, id := range ids {
		raw, ok := summary.Result[id]
		if !ok {
			continue
		}
		var record bookRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			continue
		}
		if record.RType == "chapter" {
			best = &record
			break
		}
		if best == nil {
			best = &record
		}
	}

	if best == nil {
		return &sources.GeneReviewsSummary{Used: false, Reason: "GeneReviews ID found but summary fetch failed."}, nil
	}
	if best.AccessionID == "" {
		return &sources.GeneReviewsSummary{Used: false, Reason: fmt.Sprintf("GeneReviews entry found (%s) but missing accession.", best.UID)}, nil
	}

	return &sources.GeneReviewsSummary{
		Used:   true,
		BookID: best.AccessionID,
		Title:  best.Title,
		Link:   "https://www.ncbi.nlm.nih.gov/books/" + best.AccessionID + "/",
		Reason: "Found GeneReviews chapter: " + best.Title,
	}, nil
}
