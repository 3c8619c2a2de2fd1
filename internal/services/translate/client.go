// Package translate calls a MyMemory-compatible machine translation API.
// Failures here are per-segment: the caller keeps the untranslated text and
// continues with the rest of the transcript.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"revoice/internal/services"
)

// DefaultBaseURL is the public MyMemory endpoint.
const DefaultBaseURL = "https://api.mymemory.translated.net"

// Config captures runtime settings for the translation client.
type Config struct {
	// BaseURL points at the translation API root.
	BaseURL string
	// Timeout bounds a single translation request.
	Timeout time.Duration
	// Email raises the public API's daily quota when set.
	Email string
}

// Client performs single-segment translation requests.
type Client struct {
	baseURL    string
	email      string
	httpClient *http.Client
}

// NewClient creates a translation client. A zero config falls back to the
// public endpoint with a 15 second timeout.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		email:      cfg.Email,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type responseData struct {
	TranslatedText string `json:"translatedText"`
}

type translationResponse struct {
	ResponseData    responseData `json:"responseData"`
	ResponseStatus  any          `json:"responseStatus"`
	ResponseDetails string       `json:"responseDetails"`
}

// Translate converts text from one language to another. Empty or blank text
// passes through unchanged without a network call.
func (c *Client) Translate(ctx context.Context, text, from, to string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	query := url.Values{}
	query.Set("q", text)
	query.Set("langpair", from+"|"+to)
	if c.email != "" {
		query.Set("de", c.email)
	}
	endpoint := c.baseURL + "/get?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", services.Wrap(services.ErrSegment, "translate", "request", "build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrSegment, "translate", "request", "call translation api", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", services.Wrap(services.ErrSegment, "translate", "request", "read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", services.Wrap(services.ErrSegment, "translate", "request",
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var parsed translationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", services.Wrap(services.ErrSegment, "translate", "request", "parse response", err)
	}
	// The API reports errors with a 200 body and a non-200 responseStatus,
	// sometimes as a string and sometimes as a number.
	if status, ok := statusCode(parsed.ResponseStatus); ok && status != http.StatusOK {
		detail := strings.TrimSpace(parsed.ResponseDetails)
		if detail == "" {
			detail = fmt.Sprintf("api status %d", status)
		}
		return "", services.Wrap(services.ErrSegment, "translate", "request", detail, nil)
	}
	translated := strings.TrimSpace(parsed.ResponseData.TranslatedText)
	if translated == "" {
		return "", services.Wrap(services.ErrSegment, "translate", "request", "empty translation", nil)
	}
	return translated, nil
}

func statusCode(raw any) (int, bool) {
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case string:
		var status int
		if _, err := fmt.Sscanf(v, "%d", &status); err == nil {
			return status, true
		}
	}
	return 0, false
}
