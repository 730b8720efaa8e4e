// Package http is the authenticated transport shared by every resource client.
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

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/crm-client/internal/constants"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	// Query is encoded with url.Values.Encode. RawQuery, when set, is used verbatim instead.
	Query    url.Values
	RawQuery string
	// Body is marshalled as JSON when non-nil.
	Body    interface{}
	Headers map[string]string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client sends authenticated JSON requests. It never retries and never
// turns a status code into an error; see Classify.
type Client struct {
	baseURL      string
	tokens       crm.TokenAccessor
	httpClient   *retryablehttp.Client
	logger       crm.Logger
	debug        bool
	userAgent    string
	interceptors *crm.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for HTTP and transport events.
func WithLogger(logger crm.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		c.httpClient.Logger = &leveledLogger{logger: logger}
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds each round trip at the transport.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithRequestInterceptor appends a request interceptor.
func WithRequestInterceptor(interceptor crm.RequestInterceptor) Option {
	return func(c *Client) {
		c.interceptors.AddRequestInterceptor(interceptor)
	}
}

// WithResponseInterceptor appends a response interceptor.
func WithResponseInterceptor(interceptor crm.ResponseInterceptor) Option {
	return func(c *Client) {
		c.interceptors.AddResponseInterceptor(interceptor)
	}
}

// NewClient creates a client for baseURL. A nil token accessor makes every
// call fail with crm.ErrUnauthenticated.
func NewClient(baseURL string, tokens crm.TokenAccessor, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = noRetryPolicy
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokens:       tokens,
		httpClient:   retryClient,
		userAgent:    constants.DefaultUserAgent,
		interceptors: crm.NewInterceptorChain(),
	}

	client.interceptors.AddRequestInterceptor(crm.RequestIDInterceptor())

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the normalised base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// noRetryPolicy hands every response back after the first attempt.
func noRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, err
}

// Do sends req with the current bearer token. The token is requested first;
// when none is available no request is made.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	interceptReq := &crm.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: make(http.Header),
	}

	for key, value := range req.Headers {
		interceptReq.Headers.Set(key, value)
	}

	if req.Body != nil {
		interceptReq.Body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		interceptReq.Headers.Set("Content-Type", constants.ContentTypeJSON)
	}

	err = c.interceptors.ExecuteRequestInterceptors(ctx, interceptReq)
	if err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, req, interceptReq, token)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":     req.Method,
			"url":        httpReq.URL.String(),
			"request_id": interceptReq.Headers.Get(crm.RequestIDHeader),
		})
	}

	start := time.Now()

	resp, err := c.send(httpReq)

	interceptResp := &crm.Response{Error: err}
	if resp != nil {
		interceptResp.StatusCode = resp.StatusCode
		interceptResp.Headers = resp.Headers
		interceptResp.Body = resp.Body
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":      interceptResp.StatusCode,
			"duration_ms": time.Since(start).Milliseconds(),
			"body":        truncate(string(interceptResp.Body), constants.ErrorDetailLimit),
		})
	}

	interceptErr := c.interceptors.ExecuteResponseInterceptors(ctx, interceptReq, interceptResp)

	if err != nil {
		return nil, fmt.Errorf("executing %s %s: %w", req.Method, req.Path, err)
	}

	if interceptErr != nil {
		return resp, interceptErr
	}

	return resp, nil
}

func (c *Client) bearerToken(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", crm.ErrUnauthenticated
	}

	token, ok, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", crm.ErrUnauthenticated, err)
	}

	if !ok || token == "" {
		return "", crm.ErrUnauthenticated
	}

	return token, nil
}

func (c *Client) newRequest(ctx context.Context, req *Request, interceptReq *crm.Request, token string) (*retryablehttp.Request, error) {
	target, err := url.Parse(c.baseURL + req.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", crm.ErrBaseURLInvalid, err)
	}

	switch {
	case req.RawQuery != "":
		target.RawQuery = req.RawQuery
	case len(req.Query) > 0:
		target.RawQuery = req.Query.Encode()
	}

	var rawBody interface{}
	if interceptReq.Body != nil {
		rawBody = interceptReq.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target.String(), rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range interceptReq.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Authorization", constants.BearerPrefix+token)

	return httpReq, nil
}

func (c *Client) send(httpReq *retryablehttp.Request) (*Response, error) {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}

		return nil, err
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}

	return value[:limit] + "..."
}
