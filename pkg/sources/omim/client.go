package omim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"genegpt-be/pkg/sources"
)

const defaultBaseURL = "https://api.omim.org/api/entry"

// geneToMim is the fast path for common genes. The full mim2gene.txt mapping,
// when configured, takes precedence over this table.
var geneToMim = map[string]string{
	"TP53":  "191170",
	"BRCA1": "113705",
	"BRCA2": "600185",
	"CFTR":  "602421",
	"MLH1":  "120436",
	"ERBB2": "164870",
	"MYH7":  "160760",
}

type Client struct {
	BaseURL string
	APIKey  string
	Client  *http.Client

	// mimIDs holds extra symbol->MIM mappings loaded from mim2gene.txt.
	mimIDs map[string]string
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// LoadMimMapping installs a symbol->MIM number table parsed from mim2gene.txt
// (tab-separated: MIM, entry type, Entrez ID, symbol). Rows whose entry type
// does not contain "gene" are skipped.
func (c *Client) LoadMimMapping(data string) {
	mapping := make(map[string]string)
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 4 {
			continue
		}
		mim, entryType, symbol := parts[0], parts[1], strings.ToUpper(strings.TrimSpace(parts[3]))
		if symbol == "" || !strings.Contains(strings.ToLower(entryType), "gene") {
			continue
		}
		if _, exists := mapping[symbol]; !exists {
			mapping[symbol] = mim
		}
	}
	c.mimIDs = mapping
}

func (c *Client) resolveMimID(gene string) string {
	gene = strings.ToUpper(gene)
	if id, ok := c.mimIDs[gene]; ok {
		return id
	}
	return geneToMim[gene]
}

// Raw response shapes; OMIM nests entries and gene maps in wrappers.

type omimResponse struct {
	Omim struct {
		EntryList []struct {
			Entry omimEntry `json:"entry"`
		} `json:"entryList"`
	} `json:"omim"`
}

type omimEntry struct {
	MimNumber json.Number `json:"mimNumber"`
	GeneMap   *geneMap    `json:"geneMap"`
}

type geneMap struct {
	PhenotypeMapList []struct {
		PhenotypeMap phenotypeMap `json:"phenotypeMap"`
	} `json:"phenotypeMapList"`
}

type phenotypeMap struct {
	Phenotype            string      `json:"phenotype"`
	PhenotypeMimNumber   json.Number `json:"phenotypeMimNumber"`
	PhenotypeInheritance string      `json:"phenotypeInheritance"`
	MappingKey           json.Number `json:"mappingKey"`
}

// GeneSummary fetches the OMIM entry for a gene and reduces it to the
// inheritance summary plus phenotype list the pipeline consumes.
func (c *Client) GeneSummary(ctx context.Context, gene string) (*sources.OMIMSummary, error) {
	gene = strings.ToUpper(strings.TrimSpace(gene))
	if gene == "" {
		return &sources.OMIMSummary{Used: false, Reason: "No gene symbol provided."}, nil
	}

	mimID := c.resolveMimID(gene)
	if mimID == "" {
		return &sources.OMIMSummary{Used: false, Reason: fmt.Sprintf("No OMIM mapping for symbol %s.", gene)}, nil
	}
	if c.APIKey == "" {
		return &sources.OMIMSummary{Used: false, OmimID: mimID, Reason: "OMIM API key not configured."}, nil
	}

	params := url.Values{}
	params.Set("mimNumber", mimID)
	params.Set("format", "json")
	params.Set("include", "geneMap")
	params.Set("apiKey", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("omim request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("omim error: status %d", resp.StatusCode)
	}

	var parsed omimResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(parsed.Omim.EntryList) == 0 {
		return &sources.OMIMSummary{Used: false, OmimID: mimID, Reason: fmt.Sprintf("No OMIM entry found for %s (MIM %s).", gene, mimID)}, nil
	}

	entry := parsed.Omim.EntryList[0].Entry
	if entry.MimNumber.String() != "" {
		mimID = entry.MimNumber.String()
	}

	var phenotypes []sources.Phenotype
	inheritanceSet := map[string]struct{}{}
	if entry.GeneMap != nil {
		for _, item := range entry.GeneMap.PhenotypeMapList {
			pm := item.PhenotypeMap
			if pm.Phenotype == "" && pm.PhenotypeMimNumber.String() == "" && pm.PhenotypeInheritance == "" {
				continue
			}
			if pm.PhenotypeInheritance != "" {
				inheritanceSet[pm.PhenotypeInheritance] = struct{}{}
			}
			phenotypes = append(phenotypes, sources.Phenotype{
				Name:        pm.Phenotype,
				MimNumber:   pm.PhenotypeMimNumber.String(),
				Inheritance: pm.PhenotypeInheritance,
				MappingKey:  pm.MappingKey.String(),
			})
		}
	}

	var labels []string
	for label := range inheritanceSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	return &sources.OMIMSummary{
		Used:        true,
		OmimID:      mimID,
		Inheritance: strings.Join(labels, "; "),
		Phenotypes:  phenotypes,
		Link:        "https://www.omim.org/entry/" + mimID,
		Reason:      "Fetched from OMIM API.",
	}, nil
}
