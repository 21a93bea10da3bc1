// Package api is a client for the Flash1 REST API. Each resource group is exposed as a
// service on Client; requests are plain JSON and are never retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/flash1-exchange/flash1-go"
)

// Client talks to one Flash1 API environment. It is safe for concurrent use.
type Client struct {
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
	logger     *zap.Logger

	Users             *UsersService
	Encoding          *EncodingService
	Deposits          *DepositsService
	Withdrawals       *WithdrawalsService
	Orders            *OrdersService
	Trades            *TradesService
	Balances          *BalancesService
	Projects          *ProjectsService
	Collections       *CollectionsService
	Metadata          *MetadataService
	MetadataRefreshes *MetadataRefreshesService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the API described by cfg.
func New(cfg flash1.APIConfiguration, opts ...Option) *Client {
	c := &Client{
		baseURL: cfg.BasePath,
		headers: cfg.Headers,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Users = &UsersService{c}
	c.Encoding = &EncodingService{c}
	c.Deposits = &DepositsService{c}
	c.Withdrawals = &WithdrawalsService{c}
	c.Orders = &OrdersService{c}
	c.Trades = &TradesService{c}
	c.Balances = &BalancesService{c}
	c.Projects = &ProjectsService{c}
	c.Collections = &CollectionsService{c}
	c.Metadata = &MetadataService{c}
	c.MetadataRefreshes = &MetadataRefreshesService{c}

	return c
}

// request describes one API call.
type request struct {
	method  string
	path    string
	query   url.Values
	headers http.Header
	body    any
}

// do executes req and decodes a 2xx JSON response into result. Non-2xx responses
// become *Error.
func (c *Client) do(ctx context.Context, req request, result any) error {
	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	for k, values := range req.headers {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(resp.StatusCode, req.method, req.path, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// ListParams are the common pagination parameters of list endpoints.
type ListParams struct {
	PageSize  int
	Cursor    string
	OrderBy   string
	Direction string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.PageSize > 0 {
		q.Set("page_size", fmt.Sprint(p.PageSize))
	}
	if p.Cursor != "" {
		q.Set("cursor", p.Cursor)
	}
	if p.OrderBy != "" {
		q.Set("order_by", p.OrderBy)
	}
	if p.Direction != "" {
		q.Set("direction", p.Direction)
	}
	return q
}

// SuccessResponse is returned by endpoints that only acknowledge a change.
type SuccessResponse struct {
	Result string `json:"result"`
}
