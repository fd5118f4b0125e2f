// Package genclient is the HTTP client for the disclosure generation
// endpoints. It issues single requests bounded by a context timeout and
// converts transport and status failures into classifiable errors; retry
// policy lives entirely in the orchestrator package.
package genclient

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

	"github.com/marcus/disclosure-assistant/internal/types"
)

// Request timeouts. Mobile radios stall for longer on large generations, so
// mobile user agents get extra headroom.
const (
	DefaultTimeout = 60 * time.Second
	MobileTimeout  = 90 * time.Second
)

// mobileAgentTokens are the substrings that mark a user agent as mobile.
var mobileAgentTokens = []string{"mobile", "android", "iphone", "ipad"}

// TimeoutFor picks the request timeout for a user agent string.
func TimeoutFor(userAgent string) time.Duration {
	lower := strings.ToLower(userAgent)
	for _, token := range mobileAgentTokens {
		if strings.Contains(lower, token) {
			return MobileTimeout
		}
	}
	return DefaultTimeout
}

// Client issues generation requests against the disclosure API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the API at baseURL. Per-request deadlines come
// from the caller-supplied timeout, not the transport.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Generate requests document generation for the given tool selection.
// A non-2xx response is returned as an error carrying the server's detail
// message when present.
func (c *Client) Generate(ctx context.Context, tool types.ToolType, form types.FormState, timeout time.Duration) (*types.GenerationResult, error) {
	req := types.GenerateDocumentsRequest{Selection: tool, FormData: form}
	var result types.GenerationResult
	if err := c.post(ctx, "/api/generate-documents", req, &result, timeout); err != nil {
		return nil, err
	}
	return &result, nil
}

// RegenerateNarrative requests a single narrative of the given type.
func (c *Client) RegenerateNarrative(ctx context.Context, typ types.NarrativeType, form types.FormState, timeout time.Duration) (*types.NarrativeItem, error) {
	req := types.RegenerateNarrativeRequest{NarrativeType: typ, FormData: form}
	var resp struct {
		Narrative types.NarrativeItem `json:"narrative"`
	}
	if err := c.post(ctx, "/api/regenerate-narrative", req, &resp, timeout); err != nil {
		return nil, err
	}
	return &resp.Narrative, nil
}

// RegenerateLetter requests a fresh response letter.
func (c *Client) RegenerateLetter(ctx context.Context, form types.FormState, timeout time.Duration) (*types.ResponseLetter, error) {
	req := types.RegenerateLetterRequest{FormData: form}
	var resp struct {
		Letter types.ResponseLetter `json:"letter"`
	}
	if err := c.post(ctx, "/api/regenerate-letter", req, &resp, timeout); err != nil {
		return nil, err
	}
	return &resp.Letter, nil
}

// post issues a single JSON POST bounded by timeout.
func (c *Client) post(ctx context.Context, path string, in, out any, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("generation request timed out after %s", timeout)
		}
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("network error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if detail := errorDetail(respBody); detail != "" {
			return fmt.Errorf("server error %d: %s", resp.StatusCode, detail)
		}
		return fmt.Errorf("server error %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorDetail extracts the server-supplied detail from an error body. The
// generate endpoint's total_fail body carries its detail in the errors list
// rather than an error field.
func errorDetail(body []byte) string {
	var apiErr struct {
		Error  string                `json:"error"`
		Errors []types.DocumentError `json:"errors"`
	}
	if json.Unmarshal(body, &apiErr) != nil {
		return ""
	}
	if apiErr.Error != "" {
		return apiErr.Error
	}
	if len(apiErr.Errors) > 0 {
		return apiErr.Errors[0].Detail
	}
	return ""
}
