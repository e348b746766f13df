package manualmind

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client configuration
const (
	DefaultQueryPath   = "/query"
	DefaultStatusPath  = "/status"
	DefaultProcessPath = "/process-documents"

	DefaultTimeout = 30 * time.Second
)

// ClientConfig configures the backend HTTP client. Endpoint paths are
// configurable because deployments differ on the processing route
// (/process versus /process-documents).
type ClientConfig struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	MaxAttempts int
	QueryPath   string
	StatusPath  string
	ProcessPath string
}

// Client issues tool-backing HTTP calls against the ManualMind service.
type Client struct {
	queryURL   string
	statusURL  string
	processURL string
	apiKey     string
	httpClient *http.Client
	retry      RetryConfig
}

// NewClient creates a backend client. Unset timeout, attempt count, and
// endpoint paths fall back to defaults; the base URL is required.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no scheme or host", ErrNoBaseURL, cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	retry := DefaultRetryConfig()
	if cfg.MaxAttempts > 0 {
		retry.MaxAttempts = cfg.MaxAttempts
	}
	retry.ShouldRetry = retryable

	return &Client{
		queryURL:   joinURL(cfg.BaseURL, pathOr(cfg.QueryPath, DefaultQueryPath)),
		statusURL:  joinURL(cfg.BaseURL, pathOr(cfg.StatusPath, DefaultStatusPath)),
		processURL: joinURL(cfg.BaseURL, pathOr(cfg.ProcessPath, DefaultProcessPath)),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retry: retry,
	}, nil
}

// Query asks the backend a question against the processed manuals.
func (c *Client) Query(ctx context.Context, question string, maxResults int) (*Reply, error) {
	body := map[string]interface{}{
		"question":    question,
		"max_results": maxResults,
	}
	return retryWithBackoff(ctx, c.retry, func() (*Reply, error) {
		return c.doJSON(ctx, http.MethodPost, c.queryURL, body)
	})
}

// Status fetches backend health and the processed document inventory.
func (c *Client) Status(ctx context.Context) (*Reply, error) {
	return retryWithBackoff(ctx, c.retry, func() (*Reply, error) {
		return c.doJSON(ctx, http.MethodGet, c.statusURL, nil)
	})
}

// ProcessDocuments triggers ingestion of the backend media folder. Never
// retried: a duplicate trigger would queue the same work twice.
func (c *Client) ProcessDocuments(ctx context.Context) (*Reply, error) {
	return c.doJSON(ctx, http.MethodPost, c.processURL, nil)
}

// Close releases idle backend connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, callURL string, payload map[string]interface{}) (*Reply, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, callURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	return ParseReply(data)
}

// StatusError reports a backend response with a non-OK status code. The body
// is kept verbatim so tool error texts can surface it.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Body)
}

// retryable classifies transport failures and server-side status codes as
// transient. Client-side status codes are permanent.
func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func pathOr(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}

// Sentinel errors for client construction
var (
	ErrNoBaseURL = errors.New("backend base URL not configured")
)
