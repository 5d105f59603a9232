// Package remote is the HTTP client of the party API. Every call is a single
// request/response exchange authorised by a bearer token; there is no retry,
// no deduplication and no refresh-token exchange.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/partyhub/party-panel/logger"
	"github.com/partyhub/party-panel/util/metrics"
	"github.com/valyala/fasthttp"
)

// ErrUnreachable wraps transport failures: the API gave no HTTP answer.
var ErrUnreachable = errors.New("party api unreachable")

// Client talks to one party API base URL. It is safe for concurrent use.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http: &fasthttp.Client{
			Name:                "party-panel",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// call describes one request. endpoint is a logical name used for metrics
// and logs; path is appended to the base URL.
type call struct {
	endpoint string
	method   string
	path     string
	token    string
	query    map[string]string
	body     any
}

// do sends the request and returns the raw response body of a 2xx answer.
// Non-2xx answers become *APIError.
func (c *Client) do(ctx context.Context, r call) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + r.path)
	req.Header.SetMethod(r.method)
	req.Header.Set("Accept", "application/json")
	for k, v := range r.query {
		if v != "" {
			req.URI().QueryArgs().Add(k, v)
		}
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", r.endpoint, err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	start := time.Now()
	err := c.http.DoDeadline(req, resp, deadline)
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveRemote(r.endpoint, 0, elapsed)
		logger.Warningf("remote: %s %s failed: %v", r.method, r.path, err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnreachable, r.method, r.path, err)
	}

	status := resp.StatusCode()
	metrics.ObserveRemote(r.endpoint, status, elapsed)
	logger.Debugf("remote: %s %s -> %d (%s)", r.method, r.path, status, elapsed.Round(time.Millisecond))

	body := bytes.Clone(resp.Body())
	if status < 200 || status >= 300 {
		return nil, parseAPIError(status, body)
	}
	return body, nil
}

// doJSON sends the request and decodes a 2xx body into out when out is set.
func (c *Client) doJSON(ctx context.Context, r call, out any) error {
	body, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", r.endpoint, err)
	}
	return nil
}

// getList fetches a collection. The API answers either with a bare array or
// with a paginated object carrying the items under "results".
func getList[T any](ctx context.Context, c *Client, r call) ([]T, error) {
	r.method = fasthttp.MethodGet
	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	items, err := decodeList[T](body)
	if err != nil {
		return nil, fmt.Errorf("decode %s response: %w", r.endpoint, err)
	}
	return items, nil
}

func decodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	items := make([]T, 0)
	if len(trimmed) == 0 {
		return items, nil
	}
	if trimmed[0] == '[' {
		err := json.Unmarshal(trimmed, &items)
		return items, err
	}

	var page struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, err
	}
	if page.Results != nil {
		items = page.Results
	}
	return items, nil
}

// Ping reports whether the API answers HTTP at its base URL. Any status below
// 500 counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, call{endpoint: "ping", method: fasthttp.MethodGet, path: "/"})
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status < 500 {
		return nil
	}
	return err
}
