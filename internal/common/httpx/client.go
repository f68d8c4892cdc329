// Package httpx is the SDK's network boundary: JSON POST/GET with the
// brand wire headers, plus detection of bot-challenge interstitials served
// in place of an expected JSON response.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sdkerrors "bread-partners-sdk/internal/common/errors"
	"bread-partners-sdk/internal/common/logger"
)

const (
	HeaderClientKey          = "X-Client-Key"
	HeaderRequestedWith      = "X-Requested-With"
	HeaderRequestedWithValue = "XMLHttpRequest"
	headerOriginValue        = "https://brand-sdk.kmsmep.com"
)

// Challenge is returned instead of a decoded response when the server
// answers with a bot-mitigation interstitial page. It is an error so it
// propagates through ordinary return paths; the orchestrator type-switches
// on it to enter challenge handling.
type Challenge struct {
	HTML      string
	TargetURL string
}

func (c *Challenge) Error() string {
	return fmt.Sprintf("bot challenge interstitial received for %s", c.TargetURL)
}

type Client struct {
	httpClient     *http.Client
	integrationKey string
	userAgent      string
	logger         logger.Logger
}

func NewClient(timeout time.Duration, integrationKey string, log logger.Logger) *Client {
	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		integrationKey: integrationKey,
		userAgent:      "BreadPartnersSDK/Go",
		logger:         log,
	}
}

// PostJSON marshals body, issues a POST and decodes the JSON response into
// out. A non-2xx status surfaces as a NETWORK_ERROR, a malformed payload as
// a DECODE_ERROR, and an HTML interstitial as *Challenge.
func (c *Client) PostJSON(ctx context.Context, url string, body interface{}, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	return c.do(req, out)
}

// GetJSON issues a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	return c.do(req, out)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Origin", headerOriginValue)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(HeaderClientKey, c.integrationKey)
	req.Header.Set(HeaderRequestedWith, HeaderRequestedWithValue)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	c.logger.Debug("issuing request", map[string]interface{}{
		"url":    req.URL.String(),
		"method": req.Method,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("received response", map[string]interface{}{
		"url":    req.URL.String(),
		"status": resp.StatusCode,
		"bytes":  len(data),
	})

	if isChallengePage(resp, data) {
		return &Challenge{HTML: string(data), TargetURL: req.URL.String()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return sdkerrors.NewNetworkError(resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return sdkerrors.NewDecodeError(err)
	}
	return nil
}

// isChallengePage reports whether the response carries a bot-mitigation
// interstitial rather than the JSON the endpoint normally serves. The
// interstitial arrives as an HTML document, typically with a challenge
// status code, on endpoints that only ever speak JSON.
func isChallengePage(resp *http.Response, data []byte) bool {
	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") {
		return true
	}
	trimmed := strings.TrimSpace(string(data))
	return strings.HasPrefix(trimmed, "<!DOCTYPE") || strings.HasPrefix(trimmed, "<html")
}
