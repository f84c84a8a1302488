package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the address of a locally running challenge API
const DefaultBaseURL = "http://localhost:8000/api/v1"

// Client is a Go SDK for the challenge API
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures the client
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client. The client itself is never
// modified; WithTimeout applies to a copy of it.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout, in any order relative to
// WithHTTPClient. Without it requests wait on the transport defaults and
// the caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a new challenge API client
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CategoryOption is a selectable industry, role or difficulty
type CategoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Categories holds the option lists served by /category
type Categories struct {
	Industries   []CategoryOption `json:"industries"`
	Roles        []CategoryOption `json:"roles"`
	Difficulties []CategoryOption `json:"difficulties"`
}

// Challenge is a generated challenge record
type Challenge struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	Industry   string `json:"industry"`
	Role       string `json:"role"`
	Difficulty string `json:"difficulty"`
	Date       string `json:"date"`
}

// ChallengeRequest is the body of a generation request
type ChallengeRequest struct {
	Industry   string `json:"industry"`
	Role       string `json:"role"`
	Difficulty string `json:"difficulty"`
}

// FetchCategories retrieves the industry, role and difficulty lists.
// The response body is returned as decoded, without further validation.
func (c *Client) FetchCategories(ctx context.Context) (*Categories, error) {
	resp, err := c.do(ctx, http.MethodGet, "/category", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	var categories Categories
	if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &categories, nil
}

// GenerateChallenge asks the server to generate a challenge and returns its
// text. Every call is a new generation; nothing is cached. A success body
// without a result field yields an empty string.
func (c *Client) GenerateChallenge(ctx context.Context, industry, role, difficulty string) (string, error) {
	body, err := json.Marshal(ChallengeRequest{
		Industry:   industry,
		Role:       role,
		Difficulty: difficulty,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/challenge", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		return "", errors.New(challengeErrorMessage(resp.StatusCode, respBody))
	}

	return resultText(respBody)
}

// do performs an HTTP request; the caller closes the response body
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
