package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"staybook/internal/config"
)

// Client performs JSON requests against the booking API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(cfg *config.Client, log *zap.Logger) *Client {
	return NewClientWithHTTP(cfg.APIBaseURL, &http.Client{Timeout: cfg.APITimeout}, log)
}

func NewClientWithHTTP(baseURL string, hc *http.Client, log *zap.Logger) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		log:     log,
	}
}

func (c *Client) URL(endpoint string) string {
	return c.baseURL + endpoint
}

// Do sends a request to endpoint and decodes the JSON response into T.
// A non-nil body is encoded as JSON. Every failure is returned as *Error.
func Do[T any](ctx context.Context, c *Client, method, endpoint string, body any) (T, error) {
	var out T

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return out, newTransportError(fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(endpoint), reader)
	if err != nil {
		return out, newTransportError(err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return out, newTransportError(err)
	}
	defer resp.Body.Close()

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody any
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
			errBody = nil
		}
		return out, newServerError(resp, errBody)
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, newTransportError(fmt.Errorf("decode response: %w", err))
	}
	return out, nil
}
