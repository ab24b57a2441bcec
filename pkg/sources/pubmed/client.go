package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"genegpt-be/pkg/sources"
)

const eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

const defaultMaxResults = 5

type Client struct {
	BaseURL    string
	APIKey     string
	MaxResults int
	Client     *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL:    eutilsBase,
		APIKey:     apiKey,
		MaxResults: defaultMaxResults,
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

type pubmedRecord struct {
	Title           string `json:"title"`
	FullJournalName string `json:"fulljournalname"`
	Source          string `json:"source"`
	PubDate         string `json:"pubdate"`
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

// yearFromPubDate pulls the first 4-digit token out of a PubMed pubdate
// ("2024 Mar 12", "2023 Nov-Dec").
func yearFromPubDate(pubdate string) int {
	for _, part := range strings.Fields(pubdate) {
		if len(part) == 4 {
			if y, err := strconv.Atoi(part); err == nil {
				return y
			}
		}
	}
	return 0
}

// Search runs an esearch/esummary round trip and returns the top citations.
// The query is the gene symbol for gene questions, or the raw question text
// for broad ones.
func (c *Client) Search(ctx context.Context, query string) (*sources.PubMedSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &sources.PubMedSummary{Used: false, Reason: "No query provided to PubMed client."}, nil
	}

	searchURL := "https://pubmed.ncbi.nlm.nih.gov/?term=" + url.QueryEscape(query)

	max := c.MaxResults
	if max <= 0 {
		max = defaultMaxResults
	}

	searchParams := url.Values{}
	searchParams.Set("db", "pubmed")
	searchParams.Set("term", query)
	searchParams.Set("retmax", strconv.Itoa(max))

	var search esearchResponse
	if err := c.get(ctx, "esearch.fcgi", searchParams, &search); err != nil {
		return nil, err
	}
	pmids := search.ESearchResult.IDList
	if len(pmids) == 0 {
		return &sources.PubMedSummary{Used: false, Link: searchURL, Reason: "No PubMed results found for this query."}, nil
	}

	summaryParams := url.Values{}
	summaryParams.Set("db", "pubmed")
	summaryParams.Set("id", strings.Join(pmids, ","))

	var summary struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := c.get(ctx, "esummary.fcgi", summaryParams, &summary); err != nil {
		return nil, err
	}

	var papers []sources.Paper
	for _, pmid := range pmids {
		raw, ok := summary.Result[pmid]
		if !ok {
			continue
		}
		var record pubmedRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			continue
		}
		journal := record.FullJournalName
		if journal == "" {
			journal = record.Source
		}
		papers = append(papers, sources.Paper{
			PMID:    pmid,
			Title:   record.Title,
			Journal: journal,
			Year:    yearFromPubDate(record.PubDate),
			URL:     "https://pubmed.ncbi.nlm.nih.gov/" + pmid + "/",
		})
	}

	return &sources.PubMedSummary{
		Used:   true,
		Papers: papers,
		Link:   searchURL,
	}, nil
}
