package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/wire"
)

const (
	defaultTimeout           = 10 * time.Second
	errorBodyReadLimit int64 = 1024
)

var errBaseURLRequired = errors.New("cart api base url is required")

// StatusError reports a non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Client calls the remote cart endpoint with the caller's bearer token.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// UpdateCart sends the full item list; the server replaces the caller's cart with it.
func (c *Client) UpdateCart(ctx context.Context, token string, lines []domain.CartLine) error {
	body, err := json.Marshal(wire.UpdateCartRequest{Items: wire.LinesFromDomain(lines)})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/cart/update", token, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) GetCart(ctx context.Context, token string) ([]domain.CartLine, error) {
	resp, err := c.do(ctx, http.MethodGet, "/cart", token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var lines []wire.Line
	if err := json.NewDecoder(resp.Body).Decode(&lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	items, err := wire.LinesToDomain(lines)
	if err != nil {
		return nil, fmt.Errorf("wire.LinesToDomain: %w", err)
	}
	return items, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader) (*http.Response, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, &StatusError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(msg)),
		}
	}
	return resp, nil
}

var _ port.RemoteCart = (*Client)(nil)
