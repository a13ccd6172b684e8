package meetservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"meet-importer/core/errors"

	"go.uber.org/zap"
)

// envelope is the response wrapper used by every endpoint.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// HTTPClient talks to the meet-management service over HTTP.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	retries int
	backoff time.Duration
	logger  *zap.Logger
}

// NewHTTPClient creates a client for the service at cfg.BaseURL.
func NewHTTPClient(cfg Config, logger *zap.Logger) *HTTPClient {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	backoff := time.Duration(cfg.RetryBackoffMs) * time.Millisecond
	if backoff <= 0 {
		backoff = 250 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
		retries: cfg.MaxRetries,
		backoff: backoff,
		logger:  logger,
	}
}

// FindMeet implements Service.
func (c *HTTPClient) FindMeet(ctx context.Context, name string) (*Meet, error) {
	var meet Meet
	err := c.do(ctx, "find meet", http.MethodGet, "/meet?meetname="+url.QueryEscape(name), nil, &meet)
	if err != nil {
		var remoteErr *errors.RemoteError
		if errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &meet, nil
}

// CreateMeet implements Service.
func (c *HTTPClient) CreateMeet(ctx context.Context, meet Meet) (*Meet, error) {
	var created Meet
	if err := c.do(ctx, "create meet", http.MethodPost, "/meet", meet, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListTeams implements Service.
func (c *HTTPClient) ListTeams(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := c.do(ctx, "list teams", http.MethodGet, "/teams", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// CreateTeams implements Service.
func (c *HTTPClient) CreateTeams(ctx context.Context, teams []Team) error {
	return c.do(ctx, "create teams", http.MethodPost, "/teams", nonNil(teams), nil)
}

// CreateAthletes implements Service.
func (c *HTTPClient) CreateAthletes(ctx context.Context, athletes []Athlete) error {
	return c.do(ctx, "create athletes", http.MethodPost, "/athletes", nonNil(athletes), nil)
}

// ListEntries implements Service.
func (c *HTTPClient) ListEntries(ctx context.Context, meetID int) ([]Entry, error) {
	var entries []Entry
	if err := c.do(ctx, "list entries", http.MethodGet, fmt.Sprintf("/meet/%d/entries", meetID), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateEntries implements Service.
func (c *HTTPClient) CreateEntries(ctx context.Context, meetID int, entries []Entry) error {
	return c.do(ctx, "create entries", http.MethodPost, fmt.Sprintf("/meet/%d/entries", meetID), nonNil(entries), nil)
}

// UpsertResults implements Service.
func (c *HTTPClient) UpsertResults(ctx context.Context, meetID int, results []Result) error {
	return c.do(ctx, "upsert results", http.MethodPut, fmt.Sprintf("/meet/%d/results", meetID), nonNil(results), nil)
}

// ListRelays implements Service.
func (c *HTTPClient) ListRelays(ctx context.Context, meetID int) ([]RelayTeam, error) {
	var relays []RelayTeam
	err := c.do(ctx, "list relays", http.MethodGet, fmt.Sprintf("/meet/%d/relays", meetID), nil, &relays)
	if err != nil {
		var remoteErr *errors.RemoteError
		if errors.As(err, &remoteErr) &&
			(remoteErr.StatusCode == http.StatusNotFound || remoteErr.StatusCode == http.StatusMethodNotAllowed) {
			return nil, fmt.Errorf("list relays: %w", errors.ErrUnsupported)
		}
		return nil, err
	}
	return relays, nil
}

// CreateRelays implements Service.
func (c *HTTPClient) CreateRelays(ctx context.Context, meetID int, relays []RelayTeam) error {
	return c.do(ctx, "create relays", http.MethodPost, fmt.Sprintf("/meet/%d/relays", meetID), nonNil(relays), nil)
}

// do performs a request, retrying reads that failed with a temporary error.
func (c *HTTPClient) do(ctx context.Context, operation, method, path string, body, out any) error {
	attempts := 1
	if method == http.MethodGet && c.retries > 0 {
		attempts += c.retries
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			wait := c.backoff << (attempt - 1)
			c.logger.Warn("Retrying request",
				zap.String("operation", operation),
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", wait),
				zap.Error(err))

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		err = c.once(ctx, operation, method, path, body, out)
		if err == nil {
			return nil
		}

		var remoteErr *errors.RemoteError
		if !errors.As(err, &remoteErr) || !remoteErr.Temporary() {
			return err
		}
	}
	return err
}

func (c *HTTPClient) once(ctx context.Context, operation, method, path string, body, out any) error {
	remoteErr := &errors.RemoteError{Operation: operation, Method: method, Path: path}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		remoteErr.Err = err
		return remoteErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		remoteErr.Err = err
		return remoteErr
	}

	c.logger.Debug("Remote request",
		zap.String("operation", operation),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remoteErr.StatusCode = resp.StatusCode
		remoteErr.Body = strings.TrimSpace(string(data))
		return remoteErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", operation, err)
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s: failed to decode response data: %w", operation, err)
	}
	return nil
}

// nonNil makes empty batches encode as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
