package fivetran

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/fivetran/fivetran-mcp/internal/common"
	"github.com/fivetran/fivetran-mcp/internal/config"
)

const (
	userAgent      = "fivetran-official-mcp"
	requestTimeout = 30 * time.Second

	// maxPageSize is the largest page the API allows; requested on every
	// paginated fetch to minimize round trips.
	maxPageSize = "1000"

	// maxPages bounds the pagination loop against a server that never
	// returns a null cursor. At 1000 items per page this is unreachable
	// for any real account.
	maxPages = 10000
)

// Client issues authenticated requests against the Fivetran REST API.
// Safe for concurrent use; all fields are read-only after construction.
type Client struct {
	baseURL     string
	apiKey      string
	apiSecret   string
	allowWrites bool
	httpClient  *http.Client
	logger      *common.Logger
}

// NewClient creates a client from the startup configuration.
func NewClient(cfg config.FivetranConfig, logger *common.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		apiSecret:   cfg.APISecret,
		allowWrites: cfg.AllowWrites,
		httpClient:  &http.Client{Timeout: requestTimeout},
		logger:      logger,
	}
}

// CheckWritePermission rejects mutating methods unless writes are enabled.
// Must run before any network call for mutating tool invocations.
func (c *Client) CheckWritePermission(method Method) error {
	if method != MethodGet && !c.allowWrites {
		return &PermissionDeniedError{Method: method}
	}
	return nil
}

// authHeader computes the Basic Auth header value for the configured credentials.
func (c *Client) authHeader() (string, error) {
	if c.apiKey == "" || c.apiSecret == "" {
		return "", ErrMissingCredentials
	}
	credentials := c.apiKey + ":" + c.apiSecret
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials)), nil
}

// do issues a single authenticated request and returns the response body.
// Non-2xx responses are converted to a StatusError carrying the upstream
// message when the body is JSON, or the raw response text otherwise.
func (c *Client) do(ctx context.Context, method Method, endpoint string, query url.Values, body []byte) ([]byte, error) {
	auth, err := c.authHeader()
	if err != nil {
		return nil, err
	}

	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if len(body) > 0 {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, string(method), reqURL, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().
		Str("method", string(method)).
		Str("endpoint", endpoint).
		Msg("Fivetran API Request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Dur("duration", duration).Msg("Fivetran API Request Failed")
		return nil, fmt.Errorf("fivetran request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().
		Int("status_code", resp.StatusCode).
		Dur("duration", duration).
		Msg("Fivetran API Response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// statusError builds a StatusError with a best-effort upstream message.
func statusError(code int, body []byte) *StatusError {
	message := strings.TrimSpace(string(body))
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, "message"); msg.Exists() && msg.String() != "" {
			message = msg.String()
		}
	}
	return &StatusError{StatusCode: code, Message: message}
}

// Call issues a single request and returns the parsed-checked JSON body.
func (c *Client) Call(ctx context.Context, method Method, endpoint string, body []byte) ([]byte, error) {
	if err := c.CheckWritePermission(method); err != nil {
		return nil, err
	}
	return c.do(ctx, method, endpoint, nil, body)
}

// pageCursor holds the upstream next_cursor as an opaque token. Strings are
// unquoted, null means no further pages, and any other scalar (e.g. a numeric
// cursor) is carried verbatim.
type pageCursor string

func (c *pageCursor) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = pageCursor(s)
		return nil
	}
	*c = pageCursor(data)
	return nil
}

// pageEnvelope is the upstream list-response convention:
// { "data": { "items": [...], "next_cursor": <token|null> } }.
type pageEnvelope struct {
	Data struct {
		Items      []json.RawMessage `json:"items"`
		NextCursor pageCursor        `json:"next_cursor"`
	} `json:"data"`
}

// paginatedEnvelope is the synthesized result for auto-paginated fetches.
// It stays structurally compatible with a single-page envelope.
type paginatedEnvelope struct {
	Code string        `json:"code"`
	Data paginatedData `json:"data"`
}

type paginatedData struct {
	Items         []json.RawMessage `json:"items"`
	AutoPaginated bool              `json:"_auto_paginated"`
	TotalItems    int               `json:"_total_items"`
}

// CallAllPages issues sequential GET requests against endpoint, following
// data.next_cursor until the server returns none, and accumulates data.items
// in server order. Any page error aborts the fetch; partial results are
// discarded.
func (c *Client) CallAllPages(ctx context.Context, endpoint string) ([]byte, error) {
	items := make([]json.RawMessage, 0)
	query := url.Values{}
	query.Set("limit", maxPageSize)

	for page := 0; ; page++ {
		if page >= maxPages {
			return nil, fmt.Errorf("pagination exceeded %d pages for %s; upstream never returned a null cursor", maxPages, endpoint)
		}

		body, err := c.do(ctx, MethodGet, endpoint, query, nil)
		if err != nil {
			return nil, err
		}

		var envelope pageEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("failed to parse page response: %w", err)
		}

		items = append(items, envelope.Data.Items...)

		if envelope.Data.NextCursor == "" {
			break
		}
		query.Set("cursor", string(envelope.Data.NextCursor))
	}

	return json.Marshal(paginatedEnvelope{
		Code: "Success",
		Data: paginatedData{
			Items:         items,
			AutoPaginated: true,
			TotalItems:    len(items),
		},
	})
}
