package aios

import (
	"bytes"
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
	// DefaultBaseURL is the default kernel API URL.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds a single kernel round trip.
	DefaultTimeout = 120 * time.Second

	// StatusTransportFailure is reported when no kernel status code is
	// available: connection failures, timeouts, and unparseable replies.
	StatusTransportFailure = 599

	// maxErrorBodyLen caps how much of a kernel error body is echoed into
	// Response.Error.
	maxErrorBodyLen = 200
)

// Client talks to an AIOS kernel over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientConfig holds configuration for the kernel client.
type ClientConfig struct {
	// BaseURL is the kernel API URL (e.g., "http://localhost:8000").
	// Defaults to DefaultBaseURL if empty.
	BaseURL string

	// Timeout bounds each request. Defaults to DefaultTimeout if zero.
	// Ignored when HTTPClient is set.
	Timeout time.Duration

	// HTTPClient overrides the underlying HTTP client entirely.
	HTTPClient *http.Client
}

// NewClient creates a kernel client.
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

// BaseURL returns the kernel API URL the client posts to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SendRequest posts the query to {base_url}/{agentName} and returns the
// kernel's response. The request is sent exactly once; there are no
// retries. Transport failures never surface as Go errors: they are folded
// into a Response with Finished false, a human-readable Error, and
// StatusCode StatusTransportFailure, while kernel-reported failures carry
// the observed HTTP status. Callers can always inspect the Response.
func (c *Client) SendRequest(ctx context.Context, agentName string, query *Query) *Response {
	jsonBody, err := json.Marshal(query)
	if err != nil {
		return failure(StatusTransportFailure, "marshaling query: %v", err)
	}

	url := c.baseURL + "/" + agentName
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return failure(StatusTransportFailure, "creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failure(StatusTransportFailure, "sending request to %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(StatusTransportFailure, "reading response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt := utils.Truncate(strings.TrimSpace(string(body)), maxErrorBodyLen)
		return failure(resp.StatusCode, "kernel returned status %d: %s", resp.StatusCode, excerpt)
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return failure(StatusTransportFailure, "decoding response: %v", err)
	}
	if out.ResponseClass == "" {
		out.ResponseClass = ResponseClassLLM
	}
	if out.StatusCode == 0 {
		out.StatusCode = resp.StatusCode
	}

	return &out
}

// Chat sends a plain conversation query to the named agent. The returned
// error covers query validation only; transport outcomes live on the
// Response.
func (c *Client) Chat(ctx context.Context, agentName string, messages []Message, models ...ModelConfig) (*Response, error) {
	q, err := NewQuery(ActionChat, messages, nil, models)
	if err != nil {
		return nil, err
	}
	return c.SendRequest(ctx, agentName, q), nil
}

// CallTool asks the named agent to satisfy the conversation using the
// given tools.
func (c *Client) CallTool(ctx context.Context, agentName string, messages []Message, tools []ToolDescriptor, models ...ModelConfig) (*Response, error) {
	q, err := NewQuery(ActionToolUse, messages, tools, models)
	if err != nil {
		return nil, err
	}
	return c.SendRequest(ctx, agentName, q), nil
}

// OperateFile asks the named agent to perform file operations described by
// the conversation.
func (c *Client) OperateFile(ctx context.Context, agentName string, messages []Message, models ...ModelConfig) (*Response, error) {
	q, err := NewQuery(ActionOperateFile, messages, nil, models)
	if err != nil {
		return nil, err
	}
	return c.SendRequest(ctx, agentName, q), nil
}

func failure(status int, format string, args ...any) *Response {
	return &Response{
		ResponseClass: ResponseClassLLM,
		Finished:      false,
		Error:         fmt.Sprintf(format, args...),
		StatusCode:    status,
	}
}
