// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package solr is the client for the bibliographic search backend. It
// translates one boolean query string into a list of candidate records,
// flattening the backend's array-valued fields along the way.
package solr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/reference-resolver/internal/httputil"
	"github.com/pdiddy/reference-resolver/pkg/types"
)

// DefaultBaseURL is the backend query endpoint used when the config leaves
// the URL empty. Declared as a var so tests can substitute an httptest
// server.
var DefaultBaseURL = "https://api.adsabs.harvard.edu/v1/search/query"

// candidateFields is the field list requested per query. It is exactly the
// set the scoring strategies inspect; asking for more slows the backend down
// for nothing.
const candidateFields = "bibcode,author_norm,first_author_norm,title,pub,pub_raw,year,volume,page,doi,identifier"

const (
	defaultMaxRows      = 100
	defaultOverflowRows = 1000
	defaultRateLimit    = 5
	defaultTimeout      = 30 * time.Second
)

// Client queries the search backend. It is safe for concurrent use; the
// rate limiter is shared across all calls.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cfg        types.BackendConfig
	baseURL    string
}

// NewClient builds a client from cfg, filling unset knobs with defaults.
func NewClient(cfg types.BackendConfig) *Client {
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = defaultMaxRows
	}
	if cfg.OverflowRows <= 0 {
		cfg.OverflowRows = defaultOverflowRows
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	base := cfg.URL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		cfg:        cfg,
		baseURL:    base,
	}
}

// Query runs one boolean query and returns the candidate records. It
// returns ErrOverflow when the backend reports more total hits than the
// configured ceiling, even though a page of rows came back.
func (c *Client) Query(ctx context.Context, q string) ([]types.Candidate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{
		"q":    {q},
		"fl":   {candidateFields},
		"rows": {fmt.Sprintf("%d", c.cfg.MaxRows)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing backend response: %w", err)
	}

	if sr.Response.NumFound > c.cfg.OverflowRows {
		return nil, fmt.Errorf("%w: %d hits for %q", ErrOverflow, sr.Response.NumFound, q)
	}

	candidates := make([]types.Candidate, 0, len(sr.Response.Docs))
	for _, d := range sr.Response.Docs {
		candidates = append(candidates, d.toCandidate())
	}
	return candidates, nil
}

// Backend JSON structures. Several fields the index stores as single-element
// arrays are flattened into plain strings.
type searchResponse struct {
	Response struct {
		NumFound int         `json:"numFound"`
		Docs     []searchDoc `json:"docs"`
	} `json:"response"`
}

type searchDoc struct {
	Bibcode         string   `json:"bibcode"`
	AuthorNorm      []string `json:"author_norm"`
	FirstAuthorNorm string   `json:"first_author_norm"`
	Title           []string `json:"title"`
	Pub             string   `json:"pub"`
	PubRaw          string   `json:"pub_raw"`
	Year            string   `json:"year"`
	Volume          string   `json:"volume"`
	Page            []string `json:"page"`
	DOI             []string `json:"doi"`
	Identifier      []string `json:"identifier"`
}

func (d searchDoc) toCandidate() types.Candidate {
	return types.Candidate{
		Bibcode:         d.Bibcode,
		AuthorNorm:      d.AuthorNorm,
		FirstAuthorNorm: d.FirstAuthorNorm,
		Title:           first(d.Title),
		Pub:             d.Pub,
		PubRaw:          d.PubRaw,
		Year:            d.Year,
		Volume:          d.Volume,
		Page:            first(d.Page),
		DOI:             first(d.DOI),
		Identifier:      d.Identifier,
	}
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}
