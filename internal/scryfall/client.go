// Package scryfall is the card data collaborator: a rate-limited,
// retrying HTTP client for the Scryfall API. The deck core never calls
// it directly; resolution goes through the cardlookup service.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Scryfall asks integrations to stay under 10 requests per second.
	rateLimitDelay = 100 * time.Millisecond
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second

	// DefaultBaseURL is the production Scryfall endpoint.
	DefaultBaseURL = "https://api.scryfall.com"
)

// Client is a Scryfall API client with rate limiting and bounded
// retries. Safe for concurrent use.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
}

// NewClient creates a client against the given endpoint. An empty
// baseURL selects the production API.
func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = "mtgdeck-builder/1.0"
	}
	return &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: requestTimeout},
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   userAgent,
	}
}

// GetCard retrieves a card by its Scryfall ID.
func (c *Client) GetCard(ctx context.Context, id string) (*Card, error) {
	var card Card
	if err := c.doRequest(ctx, fmt.Sprintf("%s/cards/%s", c.baseURL, url.PathEscape(id)), &card); err != nil {
		return nil, fmt.Errorf("get card %s: %w", id, err)
	}
	return &card, nil
}

// GetCardByName retrieves a card by name. Fuzzy matching tolerates
// minor misspellings and partial names, which is what generator output
// usually needs.
func (c *Client) GetCardByName(ctx context.Context, name string, fuzzy bool) (*Card, error) {
	mode := "exact"
	if fuzzy {
		mode = "fuzzy"
	}
	endpoint := fmt.Sprintf("%s/cards/named?%s=%s", c.baseURL, mode, url.QueryEscape(name))

	var card Card
	if err := c.doRequest(ctx, endpoint, &card); err != nil {
		return nil, fmt.Errorf("get card by name %q: %w", name, err)
	}
	return &card, nil
}

// SearchCards performs a full-text search.
func (c *Client) SearchCards(ctx context.Context, query string) (*SearchResult, error) {
	endpoint := fmt.Sprintf("%s/cards/search?q=%s", c.baseURL, url.QueryEscape(query))

	var result SearchResult
	if err := c.doRequest(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("search cards %q: %w", query, err)
	}
	return &result, nil
}

// doRequest performs a GET with rate limiting, retrying transient
// failures with exponential backoff and honoring Retry-After on 429s.
func (c *Client) doRequest(ctx context.Context, endpoint string, result any) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request failed: %w", err)
			if attempt < maxRetries {
				if !sleepCtx(ctx, backoff) {
					return ctx.Err()
				}
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			if readErr != nil {
				return fmt.Errorf("read response body: %w", readErr)
			}
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("parse JSON response: %w", err)
			}
			return nil

		case http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
			if attempt < maxRetries {
				wait := backoff
				if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
					if parsed, err := time.ParseDuration(retryAfter + "s"); err == nil {
						wait = parsed
					}
				}
				if !sleepCtx(ctx, wait) {
					return ctx.Err()
				}
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr

		case http.StatusNotFound:
			return &NotFoundError{URL: endpoint}

		default:
			var apiErr APIError
			if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Details != "" {
				return &apiErr
			}
			return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
