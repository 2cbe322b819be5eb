package bulletin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/coursescope/coursescope/internal/config"
	"github.com/coursescope/coursescope/internal/pkg/apperrors"
	"github.com/coursescope/coursescope/internal/pkg/helpers"
	"github.com/coursescope/coursescope/internal/pkg/logger"
	"github.com/coursescope/coursescope/internal/pkg/snapshots"
)

// Client talks to the remote bulletin search service. It performs single-shot
// calls only: there is no pagination and no retry, failed calls surface to
// the orchestrator.
type Client struct {
	httpClient *http.Client
	baseURL    string
	origin     string
	referer    string
	userAgent  string
	snapshots  *snapshots.Writer
	logger     zerolog.Logger
}

// NewClient builds a Client from configuration. Every raw search response is
// persisted through writer before it is decoded.
func NewClient(cfg *config.Config, writer *snapshots.Writer) *Client {
	timeout := helpers.ParseDuration(cfg.Bulletin.RequestTimeout, 30*time.Second)

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		baseURL:   cfg.Bulletin.BaseURL,
		origin:    cfg.Bulletin.Origin,
		referer:   cfg.Bulletin.Referer,
		userAgent: cfg.Bulletin.UserAgent,
		snapshots: writer,
		logger:    logger.Component("bulletin"),
	}
}

type searchOther struct {
	Srcdb string `json:"srcdb"`
}

type searchCriterion struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type searchBody struct {
	Other    searchOther       `json:"other"`
	Criteria []searchCriterion `json:"criteria"`
}

// SearchPartition issues the search call for one partition selector and
// returns its decoded records. The verbatim response body is written to a
// snapshot file before decoding, so every fetch stays replayable even when
// the payload turns out to be malformed.
func (c *Client) SearchPartition(ctx context.Context, srcdb, career, camp string) (*PartitionResult, error) {
	body := searchBody{
		Other: searchOther{Srcdb: srcdb},
		Criteria: []searchCriterion{
			{Field: "career", Value: career},
			{Field: "camp", Value: camp},
		},
	}

	query := url.Values{}
	query.Set("page", "fose")
	query.Set("route", "search")
	query.Set("career", career)
	query.Set("camp", camp)

	raw, err := c.post(ctx, query, body)
	if err != nil {
		return nil, err
	}

	path, err := c.snapshots.Write(srcdb, career, camp, raw)
	if err != nil {
		return nil, fmt.Errorf("error persisting snapshot for camp %s: %w", camp, err)
	}

	var result SearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, apperrors.NewParseError(fmt.Sprintf("search response for camp %s is not valid JSON: %v", camp, err))
	}

	c.logger.Info().
		Str("camp", camp).
		Str("srcdb", srcdb).
		Int("records", len(result.Results)).
		Str("snapshot", path).
		Msg("Partition fetched")

	return &PartitionResult{
		Camp:         camp,
		CampusGroup:  CampusGroupFor(camp),
		Records:      result.Results,
		SnapshotPath: path,
	}, nil
}

// FetchDetails issues the enrichment call for one section and returns the
// decoded document together with the verbatim response bytes.
func (c *Client) FetchDetails(ctx context.Context, req DetailRequest) (*DetailResult, []byte, error) {
	query := url.Values{}
	query.Set("page", "fose")
	query.Set("route", "details")

	raw, err := c.post(ctx, query, req)
	if err != nil {
		return nil, nil, err
	}

	var result DetailResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, nil, apperrors.NewParseError(fmt.Sprintf("details response for key %s is not valid JSON: %v", req.Key, err))
	}

	c.logger.Debug().
		Str("group", req.Group).
		Str("key", req.Key).
		Str("srcdb", req.Srcdb).
		Msg("Details fetched")

	return &result, raw, nil
}

// post sends one JSON POST to the bulletin endpoint and returns the raw
// response body. Transport failures and non-2xx statuses both surface as
// upstream errors.
func (c *Client) post(ctx context.Context, query url.Values, payload interface{}) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("error building bulletin request: %w", err)
	}
	req.URL.RawQuery = query.Encode()

	// The upstream endpoint rejects requests that don't look like they came
	// from its own search page.
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if c.origin != "" {
		req.Header.Set("Origin", c.origin)
	}
	if c.referer != "" {
		req.Header.Set("Referer", c.referer)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("bulletin request failed: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("error reading bulletin response: %v", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, apperrors.NewCustomError(apperrors.ErrUpstream,
			fmt.Sprintf("bulletin returned status %d", resp.StatusCode)).
			WithDetails(map[string]interface{}{"status": resp.StatusCode})
	}

	return raw, nil
}
