// Package push provides the HTTP client for the external push-notification
// gateway's batch-send endpoint.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/facilityops/access-system/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config holds the gateway connection settings.
type Config struct {
	// URL is the batch-send endpoint.
	URL string
	// APIKey authenticates this service against the gateway.
	APIKey string
	// Timeout bounds a single batch call.
	Timeout time.Duration
}

// Client implements ports.PushGateway against the gateway's HTTP API.
// Retries and transport-level resilience are the gateway contract's
// responsibility, not reimplemented here.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a gateway client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type batchRequest struct {
	Messages []ports.PushMessage `json:"messages"`
}

type batchResponse struct {
	Results []ports.SendResult `json:"results"`
}

// SendBatch submits one batch of at most ports.PushGatewayBatchLimit
// messages and returns the per-message outcomes.
func (c *Client) SendBatch(ctx context.Context, messages []ports.PushMessage) ([]ports.SendResult, error) {
	if len(messages) == 0 {
		return nil, nil
	}
	if len(messages) > ports.PushGatewayBatchLimit {
		return nil, fmt.Errorf("push gateway: batch of %d exceeds limit %d", len(messages), ports.PushGatewayBatchLimit)
	}

	body, err := json.Marshal(batchRequest{Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("push gateway: marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("push gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("push gateway: send batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("push gateway: unexpected status %d", resp.StatusCode)
	}

	var parsed batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("push gateway: decode response: %w", err)
	}
	return parsed.Results, nil
}
