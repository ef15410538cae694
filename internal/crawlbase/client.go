// Package crawlbase is a small client for the Crawlbase HTTP API.
package crawlbase

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/jmylchreest/crawldesk-api/internal/apperr"
	"github.com/jmylchreest/crawldesk-api/internal/models"
)

// DefaultBaseURL is the public Crawlbase API endpoint.
const DefaultBaseURL = "https://api.crawlbase.com"

// DefaultTimeout bounds a single upstream request.
const DefaultTimeout = 30 * time.Second

const defaultFailureMessage = "failed to query Crawlbase"

// Config configures a Client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Logger    *slog.Logger

	// Transport replaces the HTTP transport, mainly for tests.
	Transport http.RoundTripper
}

// Client issues requests on behalf of one profile.
type Client struct {
	http   *resty.Client
	tokens models.ProfileTokens
	logger *slog.Logger
}

// New creates a client for the given tokens. A normal token is required.
func New(cfg Config, tokens models.ProfileTokens) (*Client, error) {
	if strings.TrimSpace(tokens.Normal) == "" {
		return nil, apperr.Validation("the selected profile has no tokens")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	client.SetTimeout(cfg.Timeout)
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.Transport != nil {
		client.SetTransport(cfg.Transport)
	}

	c := &Client{http: client, tokens: tokens, logger: logger}
	client.OnAfterResponse(c.logResponse)
	return c, nil
}

// logResponse logs completed requests without their query string, which carries the token.
func (c *Client) logResponse(_ *resty.Client, res *resty.Response) error {
	path := res.Request.URL
	if raw := res.Request.RawRequest; raw != nil {
		path = raw.URL.Path
	}
	c.logger.Debug("crawlbase request",
		"method", res.Request.Method,
		"path", path,
		"status", res.StatusCode(),
		"duration_ms", res.Time().Milliseconds(),
	)
	return nil
}

// Response is a completed upstream call.
type Response struct {
	StatusCode int
	// Data is the decoded JSON body, or the body as a string when it is not JSON.
	Data    any
	Headers map[string]string
	Body    []byte
}

// JSON returns the body as an object, or nil when it is not one.
func (r *Response) JSON() map[string]any {
	m, _ := r.Data.(map[string]any)
	return m
}

// Text returns the body as a string when it was not JSON.
func (r *Response) Text() (string, bool) {
	s, ok := r.Data.(string)
	return s, ok
}

// Failure reports whether the body carries a truthy error field or the
// status is >= 400, along with the upstream message.
func (r *Response) Failure() (string, bool) {
	var errField gjson.Result
	if r.JSON() != nil {
		errField = gjson.GetBytes(r.Body, "error")
	}
	if r.StatusCode < 400 && !truthy(errField) {
		return "", false
	}

	if r.JSON() != nil {
		if msg := gjson.GetBytes(r.Body, "message"); truthy(msg) {
			return msg.String(), true
		}
		if truthy(errField) && errField.Type == gjson.String {
			return errField.String(), true
		}
	}
	return defaultFailureMessage, true
}

// Err returns an upstream error when the response is a failure.
func (r *Response) Err() error {
	msg, failed := r.Failure()
	if !failed {
		return nil
	}
	return apperr.Upstream(r.StatusCode, msg, nil)
}

func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	case gjson.JSON:
		if r.IsArray() {
			return len(r.Array()) > 0
		}
		return len(r.Map()) > 0
	}
	return false
}

// withToken copies params and adds the profile's normal token unless one is set.
func (c *Client) withToken(params map[string]string) map[string]string {
	out := make(map[string]string, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	if _, ok := out["token"]; !ok {
		out["token"] = c.tokens.Normal
	}
	return out
}

// Get sends a GET request with params in the query string.
func (c *Client) Get(ctx context.Context, path string, params map[string]string) (*Response, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(c.withToken(params)).
		Get(path)
	return c.finish(res, err)
}

// Post sends a form-encoded POST request.
func (c *Client) Post(ctx context.Context, path string, form map[string]string) (*Response, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(c.withToken(form)).
		Post(path)
	return c.finish(res, err)
}

// AccountSnapshot fetches account usage for a product.
func (c *Client) AccountSnapshot(ctx context.Context, product string, includePrevious bool) (*Response, error) {
	if product == "" {
		product = models.DefaultProduct
	}
	params := map[string]string{"product": product}
	if includePrevious {
		params["previous_month"] = "true"
	}
	return c.Get(ctx, "/account", params)
}

// Scrape fetches a page through the Crawling API.
func (c *Client) Scrape(ctx context.Context, pageURL string) (*Response, error) {
	return c.Get(ctx, "/", map[string]string{"url": pageURL})
}

func (c *Client) finish(res *resty.Response, err error) (*Response, error) {
	if err != nil {
		return nil, apperr.Upstream(0, "failed to reach Crawlbase", err)
	}
	return NewResponse(res.StatusCode(), res.Body(), res.Header()), nil
}

// NewResponse decodes a raw upstream answer.
func NewResponse(status int, body []byte, header http.Header) *Response {
	r := &Response{
		StatusCode: status,
		Body:       body,
		Headers:    make(map[string]string, len(header)),
	}
	for name, values := range header {
		if len(values) > 0 {
			r.Headers[strings.ToLower(name)] = values[0]
		}
	}

	var data any
	if len(body) > 0 && json.Valid(body) {
		if err := json.Unmarshal(body, &data); err == nil {
			r.Data = data
			return r
		}
	}
	r.Data = string(body)
	return r
}

