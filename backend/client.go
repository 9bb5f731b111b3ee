// Package backend holds dukaan's clients for the shop platform: the
// tool-execution service (inventory mutation, invoices, QR and PDF
// generation) and the read-only data service. Both speak bearer-authenticated
// JSON over HTTPS.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dukaan/config"
)

// TokenSource supplies the bearer token for backend calls. The active
// config.AuthSession implements it; tests use a literal.
type TokenSource interface {
	Token() string
}

// Client invokes named tools on the remote tool-execution service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

type toolRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type toolResponse struct {
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewClient creates a tool-service client.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		tokens:     tokens,
	}
}

// ExecuteTool posts {name, arguments} to the tool service and returns the
// decoded result. Errors carry human-readable messages: the caller feeds them
// verbatim to the language model, so they are written for relaying to a
// person, not for matching in code.
func (c *Client) ExecuteTool(ctx context.Context, name string, args map[string]any) (any, error) {
	body, err := json.Marshal(toolRequest{Name: name, Arguments: args})
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build tool request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tool service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, resp.Status)
	}

	var decoded toolResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[backend] %s: response body did not parse: %v", name, err)
		}
		return nil, fmt.Errorf("Invalid JSON response from server")
	}

	if decoded.Error != "" {
		return nil, fmt.Errorf("%s", decoded.Error)
	}

	return decoded.Result, nil
}

// statusError maps backend failure statuses to the strings surfaced to the
// model. 401/403/500 get specific phrasing; everything else falls back to a
// generic server-error line.
func statusError(code int, status string) error {
	switch code {
	case http.StatusUnauthorized:
		return fmt.Errorf("Authentication failed. Please log in again.")
	case http.StatusForbidden:
		return fmt.Errorf("Access denied. You do not have permission to perform this action.")
	case http.StatusInternalServerError:
		return fmt.Errorf("Server error. Please try again later.")
	default:
		return fmt.Errorf("Server error: %s", status)
	}
}
