package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nhle/ghn/internal/source"
)

// DefaultEndpoint is the public GitHub GraphQL endpoint.
const DefaultEndpoint = "https://api.github.com/graphql"

const userAgent = "ghn"

// Client is a thin HTTP client for the GitHub GraphQL API.
// It handles Bearer token authentication, JSON marshaling, and
// automatic retry with exponential backoff on HTTP 429.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	maxRetries int
}

// NewClient creates a GraphQL client. An empty endpoint means
// DefaultEndpoint.
func NewClient(endpoint, token string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 3,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Do posts one GraphQL operation and decodes its data into result. A nil
// result discards the data.
func (c *Client) Do(
	ctx context.Context,
	query string,
	variables map[string]any,
	result any,
) error {
	data, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(
			ctx, http.MethodPost, c.endpoint, bytes.NewReader(data),
		)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing request: %w", err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt == c.maxRetries {
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryAfterDuration(resp, attempt)):
				continue
			}
		}

		if resp.StatusCode == http.StatusUnauthorized ||
			resp.StatusCode == http.StatusForbidden {
			return &source.AuthError{
				Status:  resp.StatusCode,
				Message: strings.TrimSpace(string(respBody)),
			}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("GitHub API error: %s", resp.Status)
		}

		var envelope Response
		if err := json.Unmarshal(respBody, &envelope); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		if err := graphQLError(envelope.Errors); err != nil {
			return err
		}
		if result == nil || len(envelope.Data) == 0 || string(envelope.Data) == "null" {
			return nil
		}
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
		return nil
	}

	return &source.RateLimitError{}
}

func graphQLError(errs []Error) error {
	if len(errs) == 0 {
		return nil
	}
	for _, e := range errs {
		if e.Type == "INSUFFICIENT_SCOPES" {
			return &source.AuthError{
				Message: "missing 'notifications' scope. Run: gh auth refresh -h github.com -s notifications",
			}
		}
	}
	return fmt.Errorf("GraphQL error: %s", errs[0].Message)
}

// retryAfterDuration reads the Retry-After header and computes a wait
// duration. Falls back to exponential backoff if the header is missing.
func retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	backoff := time.Duration(1<<uint(attempt)) * time.Second
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	return backoff
}
