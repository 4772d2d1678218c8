// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed wraps the NCBI E-utilities search and fetch endpoints and
// turns raw article XML into PaperRecords.
//
// The package owns the literature stage's failure policy: a transport or
// decode failure never propagates. Instead SearchAndFetch returns a
// status=error envelope that carries the failure text alongside a
// deterministic synthetic dataset, so downstream stages stay exercisable
// without a live dependency. Orchestrator transition rules discard the
// synthetic data on the success path; see DESIGN.md before changing this.
package pubmed

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/litpipe/internal/httputil"
	"github.com/pdiddy/litpipe/pkg/types"
)

// E-utilities endpoints. Declared as vars so tests can substitute an
// httptest server.
var (
	esearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	efetchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

const defaultMaxPapers = 10

// Client queries PubMed via the E-utilities API.
type Client struct {
	HTTP      *http.Client
	Email     string
	MaxPapers int
	UserAgent string
}

// New builds a Client from the pipeline configuration.
func New(cfg types.PipelineConfig) *Client {
	maxPapers := cfg.Literature.MaxPapers
	if maxPapers <= 0 {
		maxPapers = defaultMaxPapers
	}
	return &Client{
		HTTP:      httputil.NewClient(cfg.HTTP.Timeout),
		Email:     cfg.EntrezEmail,
		MaxPapers: maxPapers,
		UserAgent: cfg.HTTP.UserAgent,
	}
}

// SearchAndFetch searches PubMed for keywords, bounded by MaxPapers and
// ranked by relevance, and extracts one PaperRecord per article. It never
// returns an error: failures produce a status=error envelope with the
// synthetic placeholder dataset described in the package comment.
func (c *Client) SearchAndFetch(ctx context.Context, keywords string) types.LiteratureResult {
	papers, err := c.searchAndFetch(ctx, keywords)
	if err != nil {
		return types.LiteratureResult{
			Status:  types.StatusError,
			Message: fmt.Sprintf("PubMed search failed: %v; substituting synthetic placeholder data", err),
			Data:    SyntheticPapers(),
		}
	}
	if len(papers) == 0 {
		return types.LiteratureResult{
			Status:  types.StatusWarning,
			Message: fmt.Sprintf("no PubMed results for %q; consider broadening the keywords", keywords),
			Data:    []types.PaperRecord{},
		}
	}
	return types.LiteratureResult{
		Status:  types.StatusSuccess,
		Message: fmt.Sprintf("retrieved %d papers from PubMed", len(papers)),
		Data:    papers,
	}
}

func (c *Client) searchAndFetch(ctx context.Context, keywords string) ([]types.PaperRecord, error) {
	ids, err := c.search(ctx, keywords)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return c.fetch(ctx, ids)
}

// esearchResponse is the JSON shape of the esearch endpoint.
type esearchResponse struct {
	Result struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// search returns up to MaxPapers article IDs ranked by relevance.
func (c *Client) search(ctx context.Context, keywords string) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", keywords)
	params.Set("retmax", strconv.Itoa(c.MaxPapers))
	params.Set("sort", "relevance")
	params.Set("retmode", "json")
	if c.Email != "" {
		params.Set("email", c.Email)
	}

	resp, err := httputil.Get(ctx, c.HTTP, esearchBase+"?"+params.Encode(), c.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("esearch: %w", err)
	}
	defer resp.Body.Close()

	var sr esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	return sr.Result.IDList, nil
}

// fetch retrieves article XML for ids and extracts PaperRecords.
func (c *Client) fetch(ctx context.Context, ids []string) ([]types.PaperRecord, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(ids, ","))
	params.Set("rettype", "xml")
	params.Set("retmode", "xml")
	if c.Email != "" {
		params.Set("email", c.Email)
	}

	resp, err := httputil.Get(ctx, c.HTTP, efetchBase+"?"+params.Encode(), c.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("efetch: %w", err)
	}
	defer resp.Body.Close()

	var set articleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}

	papers := make([]types.PaperRecord, 0, len(set.Articles))
	for _, a := range set.Articles {
		papers = append(papers, extractRecord(a.Citation.Article))
	}
	return papers, nil
}
