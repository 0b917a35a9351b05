// Package hub provides a read-only client for an AIOS hub, the registry
// that agents and tools are published to.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/synaptiq/cereb/pkg/utils"
)

const (
	// DefaultBaseURL is the public hub.
	DefaultBaseURL = "https://app.aios.foundation"

	// DefaultTimeout bounds a single listing fetch.
	DefaultTimeout = 30 * time.Second

	// maxErrorBodyLen caps how much of a hub error body is echoed into
	// returned errors.
	maxErrorBodyLen = 200
)

// Tool describes a tool published to the hub.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Version     string `json:"version"`
}

// Agent describes an agent published to the hub.
type Agent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Version     string `json:"version"`
}

// Client fetches listings from a hub.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientConfig holds configuration for the hub client.
type ClientConfig struct {
	// BaseURL is the hub URL. Defaults to DefaultBaseURL if empty.
	BaseURL string

	// Timeout bounds each request. Defaults to DefaultTimeout if zero.
	// Ignored when HTTPClient is set.
	Timeout time.Duration

	// HTTPClient overrides the underlying HTTP client entirely.
	HTTPClient *http.Client
}

// NewClient creates a hub client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListTools fetches the tools published to the hub.
func (c *Client) ListTools(ctx context.Context) ([]Tool, error) {
	var envelope struct {
		Tools []Tool `json:"tools"`
	}
	if err := c.getJSON(ctx, "/tools", &envelope); err != nil {
		return nil, fmt.Errorf("listing tools: %w", err)
	}
	return envelope.Tools, nil
}

// ListAgents fetches the agents published to the hub.
func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	var envelope struct {
		Agents []Agent `json:"agents"`
	}
	if err := c.getJSON(ctx, "/agents", &envelope); err != nil {
		return nil, fmt.Errorf("listing agents: %w", err)
	}
	return envelope.Agents, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		excerpt := utils.Truncate(strings.TrimSpace(string(body)), maxErrorBodyLen)
		return fmt.Errorf("hub returned status %d: %s", resp.StatusCode, excerpt)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
