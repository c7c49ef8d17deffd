package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/smpn3pacet/pustaka/internal/client/models"
	"github.com/smpn3pacet/pustaka/internal/common"
)

// mutation is the POST body understood by the remote endpoint.
type mutation struct {
	Action Action       `json:"action"`
	Data   *models.Item `json:"data"`
}

// HTTPClient implements Client over a single remote URL: GET returns the full
// collection as a JSON array, POST accepts one mutation. There is no retry
// loop here; the caller decides whether and when to try again.
type HTTPClient struct {
	endpointURL string
	httpClient  *http.Client
}

// NewHTTPClient returns a client for the given endpoint URL.
func NewHTTPClient(endpointURL string) *HTTPClient {
	return &HTTPClient{
		endpointURL: endpointURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchAll GETs the whole remote collection. A misconfigured endpoint tends to
// answer with an HTML page instead of data; that is detected via Content-Type
// and reported as common.ErrFormat rather than a JSON parse failure.
func (c *HTTPClient) FetchAll(ctx context.Context) ([]*models.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", common.ErrNetwork, resp.Status)
	}

	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "text/html") {
		return nil, fmt.Errorf("%w: got HTML instead of collection data", common.ErrFormat)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}

	var items []*models.Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFormat, err)
	}
	return items, nil
}

// Push POSTs one mutation. The response body and status are deliberately not
// inspected beyond transport errors: the endpoint's answer is opaque, so a
// non-error return must not be read as confirmation.
func (c *HTTPClient) Push(ctx context.Context, action Action, item *models.Item) error {
	payload, err := json.Marshal(mutation{Action: action, Data: item})
	if err != nil {
		return fmt.Errorf("failed to encode mutation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// Ping probes endpoint reachability with a HEAD request.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.endpointURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	_ = resp.Body.Close()
	return nil
}
