package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/logobrief/internal/logging"
	"github.com/muurk/logobrief/internal/questionnaire"
	"github.com/muurk/logobrief/internal/version"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// BriefsPath is the intake server route that accepts briefs
	BriefsPath = "/api/v1/briefs"

	// maxResponseBytes bounds how much of a response body is read
	maxResponseBytes = 1 << 20
)

// HTTPClient submits briefs to a logobrief intake server
type HTTPClient struct {
	// Endpoint is the full URL briefs are POSTed to
	// (e.g., "http://192.168.1.20:8080/api/v1/briefs")
	Endpoint string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewHTTPClient creates a client for the given endpoint URL. A URL without a
// path gets BriefsPath appended.
func NewHTTPClient(endpoint string) *HTTPClient {
	return &HTTPClient{
		Endpoint:   NormalizeEndpoint(endpoint),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// NormalizeEndpoint adds a scheme and the briefs path to a bare address such
// as "localhost:8080".
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return ""
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	rest := endpoint[strings.Index(endpoint, "://")+3:]
	if i := strings.Index(rest, "/"); i < 0 || strings.Trim(rest[i:], "/") == "" {
		endpoint = strings.TrimRight(endpoint, "/") + BriefsPath
	}
	return endpoint
}

// SetTimeout sets the HTTP request timeout
func (c *HTTPClient) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Name implements Transport.
func (c *HTTPClient) Name() string { return "http" }

// Submit POSTs the form as JSON. A 201 or 200 response yields a Receipt;
// 400 yields a rejected SubmitError carrying the server's field issues.
func (c *HTTPClient) Submit(ctx context.Context, form questionnaire.Form) (*Receipt, error) {
	body, err := json.Marshal(form)
	if err != nil {
		return nil, NewParseError("failed to encode brief", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, NewNetworkError("failed to create POST request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	logging.Debug("Submitting brief",
		zap.String("endpoint", c.Endpoint),
		zap.Int("bytes", len(body)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		classified := ClassifyNetworkError(err, c.Endpoint)
		classified.Message = "POST request failed: " + classified.Message
		return nil, classified
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		var receipt Receipt
		if err := json.Unmarshal(respBody, &receipt); err != nil {
			return nil, NewParseError("failed to parse receipt", err)
		}
		if receipt.ID == "" {
			return nil, NewParseError("receipt has no id", nil)
		}
		return &receipt, nil

	case http.StatusBadRequest:
		var rejection Rejection
		if err := json.Unmarshal(respBody, &rejection); err != nil {
			return nil, NewHTTPError(resp.StatusCode, fmt.Sprintf("bad request: %s", strings.TrimSpace(string(respBody))))
		}
		return nil, NewRejectedError(&rejection)

	default:
		return nil, NewHTTPError(resp.StatusCode, fmt.Sprintf("submit failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	}
}
