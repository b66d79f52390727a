// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Configuration constants for the conversation service client.
const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize bounds response body reads. A chat history is small;
	// anything beyond this is a server fault, not data.
	MaxResponseSize = 4 * 1024 * 1024 // 4MB
)

// sharedHTTPClient pools connections across all requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// Error variables for common service errors.
var (
	// ErrNotConfigured indicates the base URL is not set.
	ErrNotConfigured = errors.New("conversation service not configured")

	// ErrAuthFailed indicates authentication failed.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNotFound indicates the conversation does not exist server-side.
	ErrNotFound = errors.New("conversation not found")
)

// ServiceError represents an error response from the conversation service.
type ServiceError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("conversation service error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("conversation service error (HTTP %d)", e.Status)
}

// apiErrorResponse is the service's error envelope.
type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the SmartSchool conversation service over HTTP/JSON.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL. The bearer token
// may be empty; requests then go out unauthenticated and the server answers
// with 401, surfaced as ErrAuthFailed.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      strings.TrimSpace(token),
		httpClient: sharedHTTPClient,
	}
}

// WithTimeout sets the request timeout. It swaps in a dedicated HTTP client
// sharing nothing with the pooled default.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient = &http.Client{
		Transport: sharedHTTPClient.Transport,
		Timeout:   timeout,
	}
	return c
}

// IsConfigured reports whether a base URL is set.
func (c *Client) IsConfigured() bool {
	return c.baseURL != ""
}

// setHeaders sets the required headers for service requests.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// logRequest logs a request line. Headers and bodies are never logged; they
// carry auth and student content.
func (c *Client) logRequest(req *http.Request) {
	log.Printf("api: %s %s", req.Method, req.URL.Path)
}

// logResponse logs status and duration only.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("api: %d %s (%v)", resp.StatusCode, http.StatusText(resp.StatusCode), duration)
}

// do performs one request and decodes the JSON response into out (skipped
// when out is nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	c.logRequest(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	data, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return handleErrorResponse(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// readResponse reads the body with a size bound.
func readResponse(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(data)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return data, nil
}

// handleErrorResponse maps HTTP error responses to typed errors.
func handleErrorResponse(status int, body []byte) error {
	message := ""
	var envelope apiErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil {
		message = envelope.Error.Message
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrAuthFailed, message)
		}
		return ErrAuthFailed
	case http.StatusNotFound:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, message)
		}
		return ErrNotFound
	default:
		return &ServiceError{Status: status, Message: message}
	}
}

// =============================================================================
// SERVICE OPERATIONS
// =============================================================================

// ListConversations returns the caller's conversations, ordered as the
// server orders them.
func (c *Client) ListConversations(ctx context.Context) ([]ConversationInfo, error) {
	var out struct {
		Conversations []ConversationInfo `json:"conversations"`
	}
	if err := c.do(ctx, http.MethodGet, "/chat/conversations", nil, &out); err != nil {
		return nil, err
	}
	return out.Conversations, nil
}

// GetConversationDetails returns one conversation with its full history.
func (c *Client) GetConversationDetails(ctx context.Context, id string) (*ConversationDetails, error) {
	var out ConversationDetails
	if err := c.do(ctx, http.MethodGet, "/chat/conversations/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateConversation creates a new, empty conversation.
func (c *Client) CreateConversation(ctx context.Context) (*ConversationInfo, error) {
	var out ConversationInfo
	if err := c.do(ctx, http.MethodPost, "/chat/conversations", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostMessage posts user text and returns the confirmed user message plus
// the assistant's reply.
func (c *Client) PostMessage(ctx context.Context, id, text string) (*PostResult, error) {
	in := struct {
		Content string `json:"content"`
	}{Content: text}

	var out PostResult
	if err := c.do(ctx, http.MethodPost, "/chat/conversations/"+id+"/messages", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteConversation removes a conversation.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/chat/conversations/"+id, nil, nil)
}

// ClearConversation erases a conversation's history server-side.
func (c *Client) ClearConversation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/chat/conversations/"+id+"/clear", nil, nil)
}

// compile-time check: Client implements Service.
var _ Service = (*Client)(nil)
