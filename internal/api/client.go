// Package api implements the completion client and the request
// builder for the OpenAI-compatible endpoint.
package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/dost-cli/dost/internal/models"
)

// SendState tracks one completion exchange. Both outcomes are
// terminal; a new Send starts over from Sending.
type SendState int

// Completion client states
const (
	StateIdle SendState = iota
	StateSending
	StateSucceeded
	StateFailed
)

func (s SendState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// RequestPolicy carries the retry/timeout knobs injected into the
// client. The defaults preserve the single-attempt behavior of the
// product: retries exist only when configuration asks for them.
type RequestPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	Timeout     time.Duration
}

// DefaultPolicy returns the conservative default policy
func DefaultPolicy() RequestPolicy {
	return RequestPolicy{
		MaxAttempts: 1,
		Backoff:     2 * time.Second,
		Timeout:     30 * time.Second,
	}
}

// ClientInterface defines the client operations the TUI and commands
// depend on.
type ClientInterface interface {
	Send(ctx context.Context, req *models.CompletionRequest) (string, error)
	CheckHealth(ctx context.Context) Status
	State() SendState
}

// Client talks to the completion endpoint. It performs the network
// call and classifies the outcome; appending the resulting message to
// the conversation store is always the caller's job.
type Client struct {
	httpClient tls_client.HttpClient
	baseURL    string
	serverURL  string
	policy     RequestPolicy

	mu    sync.RWMutex
	state SendState
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithBaseURL sets the completion endpoint base URL
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithServerURL sets the companion backend base URL used by the
// liveness probe
func WithServerURL(url string) ClientOption {
	return func(c *Client) {
		c.serverURL = url
	}
}

// WithPolicy sets the request policy
func WithPolicy(policy RequestPolicy) ClientOption {
	return func(c *Client) {
		c.policy = policy
	}
}

// WithHTTPClient injects a transport (used by tests)
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a completion client
func NewClient(opts ...ClientOption) (*Client, error) {
	client := &Client{
		baseURL:   models.DefaultCompletionURL,
		serverURL: models.DefaultServerURL,
		policy:    DefaultPolicy(),
		state:     StateIdle,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.policy.MaxAttempts < 1 {
		client.policy.MaxAttempts = 1
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.policy.Timeout / time.Second)),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// State returns the state of the most recent completion exchange
func (c *Client) State() SendState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) setState(state SendState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
}
