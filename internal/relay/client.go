// Package relay forwards JSON payloads to a running Godot instance.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"godotmcp/internal/apperr"
	"godotmcp/internal/logging"
)

// Defaults matching the Godot-side listener.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 8080
	DefaultEndpoint = "/mcp-data"
	DefaultTimeout  = 10 * time.Second
)

// maxBodySize caps how much of the engine's reply is kept.
const maxBodySize = 8 << 20

// Result is whatever the engine answered. Non-2xx statuses are results too.
type Result struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// Client posts payloads to the engine. Each Send is a single attempt.
type Client struct {
	Host            string
	DefaultPort     int
	DefaultEndpoint string

	httpClient *http.Client
	logger     *logging.AppLogger
}

// NewClient creates a Client. Zero values fall back to the package defaults.
func NewClient(host string, port int, endpoint string, timeout time.Duration, logger *logging.AppLogger) *Client {
	if host == "" {
		host = DefaultHost
	}
	if port == 0 {
		port = DefaultPort
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &Client{
		Host:            host,
		DefaultPort:     port,
		DefaultEndpoint: endpoint,
		httpClient:      &http.Client{Timeout: timeout},
		logger:          logger,
	}
}

// URL builds the target for endpoint and port, applying the client defaults
// for zero values.
func (c *Client) URL(endpoint string, port int) string {
	if endpoint == "" {
		endpoint = c.DefaultEndpoint
	}
	if port == 0 {
		port = c.DefaultPort
	}
	return "http://" + net.JoinHostPort(c.Host, strconv.Itoa(port)) + endpoint
}

// Send POSTs payload as JSON to the engine and returns its reply. Failing to
// reach the engine at all is an apperr.ConnectionError.
func (c *Client) Send(ctx context.Context, endpoint string, payload any, port int) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperr.Wrap(apperr.MalformedInput, err, "payload is not JSON-encodable")
	}

	url := c.URL(endpoint, port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Wrap(apperr.MalformedInput, err, "invalid relay target %s", url)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Relaying to engine", "url", url, "bytes", len(body))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.ConnectionError, err, "failed to reach Godot at %s", url)
	}
	defer resp.Body.Close()

	reply, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, apperr.Wrap(apperr.ConnectionError, err, "failed to read reply from %s", url)
	}

	c.logger.Debug("Engine replied", "url", url, "status", resp.StatusCode)
	return &Result{Status: resp.StatusCode, Body: string(reply)}, nil
}

