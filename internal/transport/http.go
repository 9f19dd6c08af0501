package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eshaffer321/finhelp-go/internal/types"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const (
	contentType = "application/json"

	// maxErrorBody bounds how much of a failed response is read for its message
	maxErrorBody = 64 << 10
)

// HTTPTransport is the client side of the finhelp server: a retrying HTTP client
// for MCP calls plus the health probe.
type HTTPTransport struct {
	baseURL     string
	httpClient  *http.Client
	retryClient *retryablehttp.Client
	headers     map[string]string
	timeout     time.Duration
	logger      types.Logger
	hooks       *types.Hooks
}

// Options for the HTTP transport
type Options struct {
	BaseURL     string
	HTTPClient  *http.Client
	Headers     map[string]string
	Timeout     time.Duration
	RetryConfig *types.RetryConfig
	Logger      types.Logger
	Hooks       *types.Hooks
}

// NewHTTPTransport creates a new HTTP transport
func NewHTTPTransport(opts *Options) *HTTPTransport {
	if opts == nil {
		opts = &Options{}
	}

	// Set defaults
	if opts.BaseURL == "" {
		opts.BaseURL = types.DefaultServerURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = types.DefaultTimeout
	}

	// No client-wide timeout: MCP responses may stream. Deadlines come from the context.
	base := opts.HTTPClient
	if base == nil {
		base = &http.Client{}
	}

	// Create retry client if configured
	var retryClient *retryablehttp.Client
	if opts.RetryConfig != nil {
		retryClient = retryablehttp.NewClient()
		retryClient.HTTPClient = base
		retryClient.RetryMax = opts.RetryConfig.MaxRetries
		retryClient.RetryWaitMin = opts.RetryConfig.RetryWait
		retryClient.RetryWaitMax = opts.RetryConfig.MaxWait

		// Hand the last response back so status codes can still be mapped
		retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

		if opts.Logger != nil {
			retryClient.Logger = &retryLogger{logger: opts.Logger}
		} else {
			retryClient.Logger = nil
		}
	}

	// Set default headers
	headers := map[string]string{
		"Accept":     contentType + ", text/event-stream",
		"User-Agent": types.UserAgent,
	}

	// Merge custom headers
	for k, v := range opts.Headers {
		headers[k] = v
	}

	t := &HTTPTransport{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		retryClient: retryClient,
		headers:     headers,
		timeout:     opts.Timeout,
		logger:      opts.Logger,
		hooks:       opts.Hooks,
	}

	next := base.Transport
	if retryClient != nil {
		next = &retryablehttp.RoundTripper{Client: retryClient}
	}
	if next == nil {
		next = http.DefaultTransport
	}
	t.httpClient = &http.Client{
		Transport:     &roundTripper{transport: t, next: next},
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
	}

	return t
}

// Client returns the HTTP client to hand to the MCP client transport
func (t *HTTPTransport) Client() *http.Client {
	return t.httpClient
}

// Endpoint returns the streamable MCP endpoint URL
func (t *HTTPTransport) Endpoint() string {
	return t.baseURL + types.MCPPath
}

// Ping checks the server's health endpoint
func (t *HTTPTransport) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+types.HealthPath, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &types.Error{Code: "TIMEOUT", Message: fmt.Sprintf("health check timed out after %v", t.timeout), Err: types.ErrTimeout}
		}
		return errors.Wrap(err, "health check failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return handleHTTPError(resp.StatusCode, body)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// roundTripper sets default headers and runs hooks around every request
type roundTripper struct {
	transport *HTTPTransport
	next      http.RoundTripper
}

func (rt *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	t := rt.transport
	ctx := req.Context()

	req = req.Clone(ctx)
	for k, v := range t.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}

	// Call request hook
	if t.hooks != nil && t.hooks.OnRequest != nil {
		t.hooks.OnRequest(ctx, req)
	}

	if t.logger != nil {
		t.logger.Debug("HTTP request", "method", req.Method, "url", req.URL.String())
	}

	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		if t.hooks != nil && t.hooks.OnError != nil {
			t.hooks.OnError(ctx, err)
		}
		return nil, err
	}

	// Call response hook
	if t.hooks != nil && t.hooks.OnResponse != nil {
		t.hooks.OnResponse(ctx, resp, duration)
	}

	if t.logger != nil {
		t.logger.Debug("HTTP response", "status", resp.StatusCode, "duration", duration)
	}

	return resp, nil
}

// handleHTTPError handles HTTP errors
func handleHTTPError(statusCode int, body []byte) error {
	// Try to parse error response
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	_ = json.Unmarshal(body, &errResp)

	msg := errResp.Message
	if msg == "" {
		msg = errResp.Error
	}

	// Map status codes to errors
	switch statusCode {
	case http.StatusNotFound:
		return &types.Error{
			Code:       "NOT_FOUND",
			Message:    "endpoint not found: is this a finhelp server?",
			StatusCode: statusCode,
			Err:        types.ErrNotFound,
		}
	case http.StatusTooManyRequests:
		return types.ErrRateLimited
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return types.ErrTimeout
	case http.StatusBadRequest:
		return &types.Error{
			Code:       "BAD_REQUEST",
			Message:    msg,
			StatusCode: statusCode,
		}
	default:
		if statusCode >= 500 {
			// Create base message with status code and description
			baseMsg := fmt.Sprintf("server error: %d", statusCode)
			if desc := httpStatusDescription(statusCode); desc != "" {
				baseMsg = fmt.Sprintf("server error: %d (%s)", statusCode, desc)
			}

			// Append parsed error message if available
			if msg != "" {
				baseMsg = fmt.Sprintf("%s: %s", baseMsg, msg)
			}

			return &types.Error{
				Code:       "SERVER_ERROR",
				Message:    baseMsg,
				StatusCode: statusCode,
				Err:        types.ErrServerError,
			}
		}
		return &types.Error{
			Code:       "HTTP_ERROR",
			Message:    fmt.Sprintf("HTTP error: %d", statusCode),
			StatusCode: statusCode,
		}
	}
}

// httpStatusDescription returns a human-readable description for common HTTP status codes.
// Proxies in front of the server report some of the 52x codes.
func httpStatusDescription(statusCode int) string {
	descriptions := map[int]string{
		500: "Internal Server Error",
		501: "Not Implemented",
		502: "Bad Gateway",
		503: "Service Unavailable",
		504: "Gateway Timeout",
		520: "Web Server Error",
		521: "Web Server Is Down",
		522: "Connection Timed Out",
		523: "Origin Is Unreachable",
		524: "A Timeout Occurred",
		525: "SSL Handshake Failed",
		526: "Invalid SSL Certificate",
		530: "Origin DNS Error",
	}
	return descriptions[statusCode]
}

// retryLogger adapts our logger to retryablehttp
type retryLogger struct {
	logger types.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}
