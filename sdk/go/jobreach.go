// Package jobreach provides a small Go client for the JobReach HTTP API.
package jobreach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Config holds the configuration for the JobReach client.
type Config struct {
	// BaseURL is the root URL of the JobReach server,
	// e.g. "http://localhost:8080".
	BaseURL string

	// HTTPClient is an optional custom HTTP client. If nil, a default client
	// with a cookie jar (to hold the session cookie) and 30s timeout is used.
	HTTPClient *http.Client
}

func (c *Config) defaults() {
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if c.HTTPClient == nil {
		jar, _ := cookiejar.New(nil)
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second, Jar: jar}
	}
}

// Client is the JobReach SDK client. The server identifies callers by a
// session cookie, so reuse one Client per logical user.
type Client struct {
	cfg Config
}

// NewClient creates a new JobReach client with the given configuration.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{cfg: cfg}
}

// GmailStatus reports whether the session's Gmail account is connected.
func (c *Client) GmailStatus(ctx context.Context) (bool, error) {
	var resp struct {
		Connected bool `json:"connected"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/gmail/status", nil, &resp); err != nil {
		return false, err
	}
	return resp.Connected, nil
}

// SendEmail sends one email through the connected Gmail account and returns
// the Gmail-assigned message ID.
func (c *Client) SendEmail(ctx context.Context, req SendEmailRequest) (string, error) {
	var resp struct {
		Success   bool   `json:"success"`
		MessageID string `json:"message_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/gmail/send", req, &resp); err != nil {
		return "", err
	}
	return resp.MessageID, nil
}

// FindContacts generates hiring-manager contact suggestions.
func (c *Client) FindContacts(ctx context.Context, req FindContactsRequest) ([]Contact, error) {
	var resp struct {
		Contacts []Contact `json:"contacts"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/find-contacts", req, &resp); err != nil {
		return nil, err
	}
	return resp.Contacts, nil
}

// GenerateEmail drafts a cold email from the structured inputs.
func (c *Client) GenerateEmail(ctx context.Context, req GenerateEmailRequest) (*GeneratedEmail, error) {
	var resp GeneratedEmail
	if err := c.do(ctx, http.MethodPost, "/api/generate-email", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProfile fetches the session's sender profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var resp Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile merges non-empty fields into the stored profile.
func (c *Client) UpdateProfile(ctx context.Context, req Profile) (*Profile, error) {
	var resp Profile
	if err := c.do(ctx, http.MethodPost, "/api/profile", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("jobreach: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("jobreach: failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("jobreach: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("jobreach: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return apiError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("jobreach: failed to decode response: %w", err)
		}
	}
	return nil
}
