// Package api is the client of the transit directions provider.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/cache"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultCacheTTL  = 2 * time.Minute
	defaultUserAgent = "athensplus"
	maxBodyBytes     = 4 << 20
)

// Cache interface for caching HTTP responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// Client is the directions provider client
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
	cache      Cache
	log        zerolog.Logger
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL points the client at another provider, e.g. a local mock
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithAPIKey sets the provider key. Without one every call fails with
// ErrNotConfigured.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithCache enables caching with the provided cache implementation
func WithCache(cache Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithDefaultCache enables caching in the default cache directory.
// A ttl of zero uses the default TTL.
func WithDefaultCache(ttl time.Duration) ClientOption {
	return func(c *Client) {
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		fc, err := cache.NewFileCache(cache.DefaultCacheDir(), ttl)
		if err != nil {
			c.log.Warn().Err(err).Msg("Directions cache disabled")
			return
		}
		c.cache = fc
	}
}

// WithLogger sets the logger
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    BaseURL,
		userAgent:  defaultUserAgent,
		log:        zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if _, err := url.Parse(c.baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	return c, nil
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// DirectionsRequest contains parameters for a directions query
type DirectionsRequest struct {
	Origin      string    // place text or "lat,lng" (required)
	Destination string    // place text or "lat,lng" (required)
	DepartAt    time.Time // departure time (defaults to now)
	SubwayOnly  bool      // restrict to metro legs
	Language    string    // response language (default: en)
}

// StationDirections builds a metro-only request between two stations
func StationDirections(from, to models.Station) DirectionsRequest {
	return DirectionsRequest{
		Origin:      PlaceQuery(from),
		Destination: PlaceQuery(to),
		SubwayOnly:  true,
	}
}

func (r DirectionsRequest) validate() error {
	if strings.TrimSpace(r.Origin) == "" {
		return ErrMissingField("origin")
	}
	if strings.TrimSpace(r.Destination) == "" {
		return ErrMissingField("destination")
	}
	return nil
}

// GetDirections fetches the transit steps between origin and destination
func (c *Client) GetDirections(ctx context.Context, req DirectionsRequest) (*models.DirectionsResponse, error) {
	body, err := c.GetDirectionsRaw(ctx, req)
	if err != nil {
		return nil, err
	}

	var resp models.DirectionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse directions response: %w", err)
	}
	return &resp, nil
}

// GetDirectionsRaw fetches directions and returns raw JSON. Only OK
// responses are returned and cached.
func (c *Client) GetDirectionsRaw(ctx context.Context, req DirectionsRequest) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("origin", req.Origin)
	params.Set("destination", req.Destination)
	params.Set("mode", ModeTransit)
	if req.SubwayOnly {
		params.Set("transit_mode", TransitModeSubway)
	}
	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	params.Set("language", lang)
	if !req.DepartAt.IsZero() {
		params.Set("departure_time", fmt.Sprintf("%d", req.DepartAt.Unix()))
	}

	// The key stays out of the cache key
	cacheKey := c.baseURL + EndpointDirections + "?" + params.Encode()
	if c.cache != nil {
		if data, ok := c.cache.Get(cacheKey); ok {
			c.log.Debug().Str("origin", req.Origin).Str("destination", req.Destination).Msg("Directions served from cache")
			return data, nil
		}
	}

	params.Set("key", c.apiKey)
	body, err := c.doRequest(ctx, c.baseURL+EndpointDirections+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var status struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to parse directions response: %w", err)
	}
	if err := statusError(status.Status, status.ErrorMessage, EndpointDirections); err != nil {
		c.log.Warn().Str("status", status.Status).Str("origin", req.Origin).Str("destination", req.Destination).Msg("Directions request unsuccessful")
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(cacheKey, body); err != nil {
			c.log.Debug().Err(err).Msg("Failed to cache directions")
		}
	}
	return body, nil
}

// doRequest performs an HTTP GET request
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
		return nil, fmt.Errorf("request failed: %w", redact(err, c.apiKey))
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("endpoint", extractEndpoint(reqURL)).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("Provider request")

	if resp.StatusCode != http.StatusOK {
		return nil, NewAPIError(resp.StatusCode, resp.Status, extractEndpoint(reqURL))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// redact keeps the API key out of transport errors, which embed the URL
func redact(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "REDACTED"))
}

// extractEndpoint extracts the endpoint path from a full URL
func extractEndpoint(fullURL string) string {
	u, err := url.Parse(fullURL)
	if err != nil {
		return fullURL
	}
	return u.Path
}
