package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pohonku/pohonku/internal/client/models"
	"github.com/pohonku/pohonku/internal/common"
	"github.com/pohonku/pohonku/internal/logging"
)

const maxResponseBody = 4 << 20

// RequestOptions describes one call. Method defaults to GET. Body is
// JSON-encoded unless it is already []byte or json.RawMessage. Headers are
// applied last and override the defaults.
type RequestOptions struct {
	Method  string
	Body    any
	Headers http.Header
}

type APIClient struct {
	baseURL      string
	httpClient   *http.Client
	log          logging.Logger
	newRequestID func() string
	timeout      time.Duration
}

type Option func(*APIClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) { c.httpClient = hc }
}

// WithTimeout bounds every request, including reading the body. It applies
// to a copy of the HTTP client, whatever the option order, so a client given
// to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *APIClient) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *APIClient) { c.log = l }
}

// NewAPIClient returns a client for baseURL. An empty baseURL is accepted;
// every call then fails with *ConfigurationError.
func NewAPIClient(baseURL string, opts ...Option) *APIClient {
	c := &APIClient{
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient:   &http.Client{},
		log:          logging.Nop(),
		newRequestID: uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

func (c *APIClient) BaseURL() string { return c.baseURL }

// URL joins the base URL with endpoint.
func (c *APIClient) URL(endpoint string) (string, error) {
	if c.baseURL == "" {
		return "", &ConfigurationError{Reason: "set POHONKU_API_URL or NEXT_PUBLIC_API_URL"}
	}
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", &ConfigurationError{Reason: fmt.Sprintf("invalid base url %q", c.baseURL)}
	}
	return c.baseURL + endpoint, nil
}

// Fetch performs the request and decodes a 2xx JSON body into out. out may
// be nil when the body is not needed.
func (c *APIClient) Fetch(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	target, err := c.URL(endpoint)
	if err != nil {
		c.log.Error(ctx, "api client not configured", "endpoint", endpoint, "error", err)
		return err
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &ConfigurationError{Reason: err.Error()}
	}

	reqID := c.newRequestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set(common.RequestIDHeader, reqID)
	if s, ok := SessionFrom(ctx); ok {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+s.AccessToken)
	}
	for k, vs := range opts.Headers {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	log := c.log.With("method", method, "url", target, "request_id", reqID)
	log.Debug(ctx, "api call")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error(ctx, "api request failed", "error", err)
		return &NetworkError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		log.Error(ctx, "api response read failed", "error", err)
		return &NetworkError{Method: method, URL: target, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		he := &HTTPError{
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
		}
		he.Message = errorMessage(he.Status, he.StatusText, data)
		log.Error(ctx, "api error", "status", he.Status, "message", he.Message)
		return he
	}

	log.Debug(ctx, "api success", "status", resp.StatusCode, "bytes", len(data))

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Error(ctx, "api response decode failed", "error", err)
		return &DecodeError{Err: err}
	}
	return nil
}

// Do calls Fetch and decodes the response envelope with a typed payload.
func Do[T any](ctx context.Context, c *APIClient, endpoint string, opts RequestOptions) (*models.Envelope[T], error) {
	var raw json.RawMessage
	if err := c.Fetch(ctx, endpoint, opts, &raw); err != nil {
		return nil, err
	}
	env, err := models.DecodeEnvelope[T](raw)
	if err != nil {
		c.log.Error(ctx, "api response envelope invalid", "endpoint", endpoint, "error", err)
		return nil, &DecodeError{Err: err}
	}
	return env, nil
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// errorMessage prefers the body's "message", then "error". A JSON body with
// neither yields "HTTP <status>"; a body that is not JSON yields
// "HTTP <status>: <status text>".
func errorMessage(status int, text string, body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Sprintf("HTTP %d: %s", status, text)
	}
	for _, key := range []string{"message", "error"} {
		if s, ok := payload[key].(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}
