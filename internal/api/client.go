// Package api provides a client for the photo triage backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/llehouerou/phototriage/internal/media"
)

const (
	userAgent       = "phototriage/1.0"
	defaultTimeout  = 30 * time.Second
	maxPreviewBytes = 32 << 20
)

// ErrPreviewTooLarge is returned when a preview exceeds the download limit.
var ErrPreviewTooLarge = errors.New("preview too large")

// Client provides access to the backend API.
type Client struct {
	baseURL    string
	cookieName string
	cookie     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithCookie sets the session cookie sent with every backend request.
func WithCookie(name, value string) Option {
	return func(c *Client) {
		c.cookieName = name
		c.cookie = value
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new backend API client.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Settings fetches the user's shortcut bindings and albums.
func (c *Client) Settings(ctx context.Context) (*Settings, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/settings", nil)
	if err != nil {
		return nil, &LoadError{What: "settings", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &LoadError{What: "settings", Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	var result Settings
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &LoadError{What: "settings", Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &result, nil
}

// SaveShortcut stores a new shortcut binding.
func (c *Client) SaveShortcut(ctx context.Context, req ShortcutRequest) error {
	return c.mutate(ctx, "save shortcut", http.MethodPost, "/api/settings/shortcut", req)
}

// DeleteShortcut removes a shortcut binding by its backend identifier.
func (c *Client) DeleteShortcut(ctx context.Context, id int64) error {
	path := "/api/settings/shortcut/" + strconv.FormatInt(id, 10)
	return c.mutate(ctx, "delete shortcut", http.MethodDelete, path, nil)
}

// Act applies an action to a media item.
func (c *Client) Act(ctx context.Context, req ActionRequest) error {
	return c.mutate(ctx, "action", http.MethodPost, "/api/action", req)
}

// RandomMedia fetches a batch of random media items.
func (c *Client) RandomMedia(ctx context.Context) ([]media.Item, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/media/random", nil)
	if err != nil {
		return nil, &LoadError{What: "random media", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &LoadError{What: "random media", Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	var result randomMediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &LoadError{What: "random media", Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return result.MediaItems, nil
}

// GetMedia resolves picked media identifiers into items. Results without a
// media item (unknown or inaccessible ids) are dropped.
func (c *Client) GetMedia(ctx context.Context, ids []string) ([]media.Item, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/media/get", getMediaRequest{MediaIDs: ids})
	if err != nil {
		return nil, &LoadError{What: "selected media", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &LoadError{What: "selected media", Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	var result getMediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &LoadError{What: "selected media", Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	items := make([]media.Item, 0, len(result.MediaItemResults))
	for _, r := range result.MediaItemResults {
		if r.MediaItem != nil {
			items = append(items, *r.MediaItem)
		}
	}
	return items, nil
}

// Preview downloads the bytes behind a display URL. The URL usually points at
// the photo host rather than the backend, so no session cookie is sent.
func (c *Client) Preview(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPreviewBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxPreviewBytes {
		return nil, ErrPreviewTooLarge
	}
	return data, nil
}

// mutate sends a request whose success response carries no payload.
func (c *Client) mutate(ctx context.Context, op, method, path string, body any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return &ActionError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ActionError{Op: op, Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req, body != nil)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("method", method).Str("path", path).Msg("api request failed")
		return nil, fmt.Errorf("execute request: %w", err)
	}
	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")
	return resp, nil
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: c.cookie})
	}
}

// readErrorMessage extracts {"error": "..."} from a failed response.
// Returns empty string when the body is not in that shape.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	var er errorResponse
	if err := json.Unmarshal(data, &er); err != nil {
		return ""
	}
	return er.Error
}
