// Package http provides MediaWiki API implementations of freitagsfoo.PageSource
// and freitagsfoo.HTMLRenderer.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultAPIURL is the API endpoint of the Chaosdorf wiki.
const DefaultAPIURL = "https://wiki.chaosdorf.de/api.php"

// DefaultTimeout is the default timeout for API requests.
const DefaultTimeout = 10 * time.Second

// DefaultRate is the default request rate limit, in requests per second.
const DefaultRate = 2.0

// DefaultUserAgent identifies the client to the wiki, as MediaWiki asks API users to do.
const DefaultUserAgent = "freitagsfoo/1.0 (+https://github.com/fwojciec/freitagsfoo)"

// Client talks to a MediaWiki action API.
type Client struct {
	apiURL    string
	client    *http.Client
	timeout   time.Duration
	limiter   *rate.Limiter
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for API requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRate limits requests per second. A value <= 0 disables the limit.
func WithRate(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client for the API at apiURL.
func NewClient(apiURL string, opts ...Option) *Client {
	c := &Client{
		apiURL:    apiURL,
		timeout:   DefaultTimeout,
		limiter:   rate.NewLimiter(rate.Limit(DefaultRate), 1),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// apiError is the error object MediaWiki returns with HTTP 200.
type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// call performs an API request and decodes the JSON response into out.
// Requests with a body are sent as POST forms.
func (c *Client) call(ctx context.Context, params url.Values, post bool, out any) error {
	params.Set("format", "json")
	params.Set("formatversion", "2")

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var req *http.Request
	var err error
	if post {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	}
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, c.apiURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var envelope struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode API response: %w", err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("API error %s: %s", envelope.Error.Code, envelope.Error.Info)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode API response: %w", err)
	}
	return nil
}
