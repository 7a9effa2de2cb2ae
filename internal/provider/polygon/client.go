package polygon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"aggbars/internal/model"
)

// Config holds what a Client needs. APIKey is the resolved secret; the client
// never reads the environment itself.
type Config struct {
	APIKey  string
	BaseURL string        // defaults to DefaultBaseURL
	Timeout time.Duration // 0 keeps the HTTP client default (no timeout)
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (tests use httptest clients).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = newRestyClient(hc)
	}
}

// Client fetches aggregate bars from the Polygon API. It holds no per-call
// state and is safe for concurrent use.
type Client struct {
	cfg  Config
	http *resty.Client
}

// NewClient constructs a Client. An empty key is accepted here and reported
// as a *ConfigError when a request is built.
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	c := &Client{
		cfg:  cfg,
		http: newRestyClient(newHTTPClient(cfg.Timeout)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the aggregates base URL in use.
func (c *Client) BaseURL() string { return c.cfg.BaseURL }

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}

// RequestURL builds the URL GetBars would call for q and mode.
func (c *Client) RequestURL(q model.Query, mode model.AuthMode) (string, error) {
	return BuildURL(c.cfg.BaseURL, q, mode, c.cfg.APIKey)
}

// GetBars authenticates, builds the URL for q and fetches it.
func (c *Client) GetBars(ctx context.Context, q model.Query, mode model.AuthMode) (*model.BarsResponse, error) {
	creds, err := Authenticate(mode, c.cfg.APIKey)
	if err != nil {
		return nil, err
	}
	reqURL, err := BuildURL(c.cfg.BaseURL, q, mode, c.cfg.APIKey)
	if err != nil {
		return nil, err
	}
	return c.Fetch(ctx, reqURL, creds.Header)
}

// Fetch issues one GET to rawURL with header and decodes the body.
// It does not retry and does not log.
func (c *Client) Fetch(ctx context.Context, rawURL string, header http.Header) (*model.BarsResponse, error) {
	req := c.http.R().SetContext(ctx)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := req.Get(rawURL)
	if err != nil {
		// *url.Error repeats the full URL, which may carry the key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		// A client Timeout also reports DeadlineExceeded; only the caller's ctx means cancelled.
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return nil, &FetchError{Kind: KindCancelled, Err: err}
		}
		return nil, &FetchError{Kind: KindTransport, Err: fmt.Errorf("GET %s: %w", RedactURL(rawURL), err)}
	}

	if !resp.IsSuccess() {
		return nil, &FetchError{
			Kind:       KindTransport,
			StatusCode: resp.StatusCode(),
			Body:       truncateBody(resp.Body()),
			Err:        fmt.Errorf("API returned %s", resp.Status()),
		}
	}

	bars, err := DecodeBars(resp.Body())
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			fe.StatusCode = resp.StatusCode()
		}
		return nil, err
	}
	return bars, nil
}
