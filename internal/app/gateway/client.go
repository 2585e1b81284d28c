// Package gateway is the typed HTTP client for the UniConnect backend.
// Every operation takes a context, sends the bearer token when one is held,
// and returns either a decoded value or a *GatewayError.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models/dto"
)

// DefaultTimeout is the fixed per-request timeout
const DefaultTimeout = 10 * time.Second

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 10 << 20

// RequestIDHeader carries a fresh uuid on every request
const RequestIDHeader = "X-Request-ID"

// Options configures a Client
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Registerer prometheus.Registerer
	Logger     zerolog.Logger
}

// Client talks to the backend REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics
	logger     zerolog.Logger

	mu    sync.RWMutex
	token string
}

// NewClient creates a new backend client
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		metrics:    newMetrics(opts.Registerer),
		logger:     opts.Logger.With().Str("component", "gateway").Logger(),
	}
}

// BaseURL returns the backend base URL without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken replaces the bearer token sent on later requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the bearer token currently held, if any
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ClearToken forgets the bearer token
func (c *Client) ClearToken() {
	c.SetToken("")
}

// request describes one backend call
type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonRequest(op, method, path string, payload interface{}) (request, error) {
	req := request{op: op, method: method, path: path}
	if payload == nil {
		return req, nil
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return req, &GatewayError{Op: op, Kind: KindDecode, Err: fmt.Errorf("encode request: %w", err)}
	}
	req.body = bytes.NewReader(encoded)
	req.contentType = "application/json"
	return req, nil
}

// do performs the call and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, r request) (body []byte, err error) {
	started := time.Now()
	requestID := uuid.New().String()
	defer func() {
		c.metrics.observe(r.op, started, err)
		event := c.logger.Debug()
		if err != nil {
			event = c.logger.Warn().Err(err)
		}
		event.
			Str("operation", r.op).
			Str("method", r.method).
			Str("path", r.path).
			Str("request_id", requestID).
			Dur("elapsed", time.Since(started)).
			Msg("backend request")
	}()

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return nil, &GatewayError{Op: r.op, Kind: KindTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &GatewayError{Op: r.op, Kind: classifyTransport(err), Err: err}
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &GatewayError{Op: r.op, Kind: classifyTransport(err), Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GatewayError{
			Op:      r.op,
			Kind:    KindApplication,
			Status:  resp.StatusCode,
			Message: dto.ErrorMessage(body),
			Err:     fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	return body, nil
}

// decodeError wraps a body that could not be interpreted
func decodeError(op string, err error) error {
	return &GatewayError{Op: op, Kind: KindDecode, Err: err}
}

func getList[T any](ctx context.Context, c *Client, op, path string, query url.Values, names ...string) ([]T, error) {
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: path, query: query})
	if err != nil {
		return []T{}, err
	}
	items, err := dto.DecodeList[T](body, names...)
	if err != nil {
		return []T{}, decodeError(op, err)
	}
	return items, nil
}

func postRecord[T any](ctx context.Context, c *Client, op, method, path string, payload interface{}, names ...string) (T, error) {
	var zero T
	req, err := jsonRequest(op, method, path, payload)
	if err != nil {
		return zero, err
	}
	body, err := c.do(ctx, req)
	if err != nil {
		return zero, err
	}
	record, err := dto.DecodeRecord[T](body, names...)
	if err != nil {
		return zero, decodeError(op, err)
	}
	return record, nil
}
