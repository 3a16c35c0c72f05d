package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/config"
)

const maxResponseBytes = 4 << 20

// Response is a successful provider answer. Body is the full JSON document.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// Data returns the provider's data object, or the whole body when the
// response is not wrapped.
func (r *Response) Data() json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(r.Body, &envelope); err == nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		return envelope.Data
	}
	return r.Body
}

// Client is the authenticated JSON client for the payments provider. It is
// safe for concurrent use and shares one http.Client across runs.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg config.UpstreamConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With("component", "upstream"),
	}
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.sendRequest(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.sendRequest(ctx, http.MethodPut, path, nil, body)
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.sendRequest(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) sendRequest(ctx context.Context, method, path string, query url.Values, reqBody any) (*Response, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var bodyReader io.Reader
	hasBody := method != http.MethodGet
	if hasBody {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	if hasBody {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("upstream request failed",
			"method", method,
			"path", path,
			"duration", time.Since(start),
			"error", err,
		)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s response: %w", ErrTransport, path, err)
	}

	c.logger.Debug("upstream response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newProviderError(resp.StatusCode, body)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s returned a non-JSON body", ErrTransport, path)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       json.RawMessage(body),
	}, nil
}
