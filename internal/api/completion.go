package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/dost-cli/dost/internal/errors"
	"github.com/dost-cli/dost/internal/logging"
	"github.com/dost-cli/dost/internal/models"
)

// maxSnippetLen bounds the raw-body excerpt carried by diagnostics
const maxSnippetLen = 200

// Send performs one completion exchange and classifies the outcome.
// The response body is always read as raw text first; JSON parsing is
// attempted afterwards so a non-JSON body on any status code becomes a
// classified error instead of a panic or a silent drop.
//
// Retries happen only when the policy allows more than one attempt,
// and only for outcomes that might heal (transport errors, timeouts
// and 5xx responses).
func (c *Client) Send(ctx context.Context, req *models.CompletionRequest) (string, error) {
	if req == nil || len(req.Messages) == 0 {
		return "", apierrors.ErrEmptyMessage
	}

	c.setState(StateSending)

	var lastErr error
	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				c.setState(StateFailed)
				return "", ctx.Err()
			case <-time.After(c.policy.Backoff):
			}
		}

		text, err := c.doSend(ctx, req)
		if err == nil {
			c.setState(StateSucceeded)
			return text, nil
		}
		lastErr = err

		if !retryable(err) {
			break
		}
		logging.Debugf("completion attempt %d/%d failed: %v", attempt, c.policy.MaxAttempts, err)
	}

	c.setState(StateFailed)
	return "", lastErr
}

func (c *Client) doSend(ctx context.Context, req *models.CompletionRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if c.policy.Timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.policy.Timeout)
		defer cancel()
	}

	httpReq, err := fhttp.NewRequestWithContext(
		reqCtx,
		fhttp.MethodPost,
		c.baseURL+models.PathCompletions,
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	logging.Debugf("POST %s model=%s messages=%d", c.baseURL+models.PathCompletions, req.Model, len(req.Messages))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || reqCtx.Err() == context.DeadlineExceeded {
			return "", apierrors.NewTimeoutError(fmt.Sprintf("no response within %s", c.policy.Timeout))
		}
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	// Raw text first, regardless of status. The status code says
	// nothing about whether the body is JSON.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	body := string(raw)

	logging.Debugf("completion status=%d bytes=%d", resp.StatusCode, len(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apierrors.NewHTTPError(resp.StatusCode, extractErrorDetail(body))
	}

	if !gjson.Valid(body) {
		return "", apierrors.NewMalformedResponseError(resp.StatusCode, snippet(body))
	}

	content := gjson.Get(body, "choices.0.message.content")
	text := strings.TrimSpace(content.String())
	if !content.Exists() || text == "" {
		return "", apierrors.ErrEmptyCompletion
	}

	return text, nil
}

// extractErrorDetail builds a human-readable message from an error
// body. JSON bodies are probed for message, detail and error - in that
// preference order, descending into error.message for structured
// errors. Anything unparseable is used verbatim, truncated.
func extractErrorDetail(body string) string {
	if gjson.Valid(body) {
		for _, key := range []string{"message", "detail", "error"} {
			v := gjson.Get(body, key)
			if !v.Exists() {
				continue
			}
			if v.IsObject() {
				if msg := v.Get("message"); msg.Exists() && msg.String() != "" {
					return msg.String()
				}
				return snippet(v.Raw)
			}
			if v.String() != "" {
				return v.String()
			}
		}
	}
	return snippet(body)
}

// snippet trims a body excerpt, cutting on a rune boundary
func snippet(s string) string {
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxSnippetLen {
		return string(runes[:maxSnippetLen])
	}
	return s
}

// retryable reports whether another attempt could change the outcome
func retryable(err error) bool {
	if apierrors.IsTimeout(err) {
		return true
	}
	var httpErr *apierrors.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	// Malformed, empty-completion and builder errors are not transient
	if errors.Is(err, &apierrors.MalformedResponseError{}) ||
		errors.Is(err, apierrors.ErrEmptyCompletion) ||
		errors.Is(err, apierrors.ErrEmptyMessage) {
		return false
	}
	// Bare transport failures
	return true
}
