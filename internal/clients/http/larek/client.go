package larek

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

	"github.com/google/uuid"

	"github.com/Apurer/web-larek/internal/domains/storefront/domain"
	"github.com/Apurer/web-larek/internal/domains/storefront/ports"
)

const (
	// IdempotencyHeader carries the per-submission key the API deduplicates on.
	IdempotencyHeader = "Idempotency-Key"

	maxErrorBody = 64 << 10
)

var _ ports.CatalogAPI = (*Client)(nil)

// APIError is a non-2xx response from the larek API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("larek API error: %s", http.StatusText(e.Status))
	}
	return e.Message
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithKeyGenerator overrides how idempotency keys are minted.
func WithKeyGenerator(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newKey = fn
		}
	}
}

// Client talks to the catalog and order endpoints of the larek API.
type Client struct {
	baseURL string
	cdnURL  string
	http    *http.Client
	newKey  func() string
}

// NewClient builds a client. Product image paths are prefixed with cdnURL.
func NewClient(baseURL, cdnURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("larek API base URL is required")
	}
	c := &Client{
		baseURL: baseURL,
		cdnURL:  strings.TrimRight(strings.TrimSpace(cdnURL), "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
		newKey:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type productDTO struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Price       *int64 `json:"price"`
}

type productListDTO struct {
	Total int          `json:"total"`
	Items []productDTO `json:"items"`
}

type orderDTO struct {
	Payment string   `json:"payment"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Total   int64    `json:"total"`
	Items   []string `json:"items"`
}

type orderResultDTO struct {
	ID    string `json:"id"`
	Total int64  `json:"total"`
}

type errorDTO struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// FetchCatalog loads every product.
func (c *Client) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/product", nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	var body productListDTO
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(body.Items))
	for _, item := range body.Items {
		products = append(products, domain.Product{
			ID:          item.ID,
			Title:       item.Title,
			Price:       item.Price,
			Description: item.Description,
			Image:       c.imageURL(item.Image),
			Category:    item.Category,
		})
	}
	return products, nil
}

// SubmitOrder posts the order with a fresh idempotency key.
func (c *Client) SubmitOrder(ctx context.Context, order domain.OrderRequest) (*domain.OrderResult, error) {
	items := order.Items
	if items == nil {
		items = []string{}
	}
	payload, err := json.Marshal(orderDTO{
		Payment: string(order.Payment),
		Email:   order.Email,
		Phone:   order.Phone,
		Address: order.Address,
		Total:   order.Total,
		Items:   items,
	})
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if key := c.newKey(); key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	var body orderResultDTO
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	return &domain.OrderResult{ID: body.ID, Total: body.Total}, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call larek API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode larek API response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body errorDTO
	if len(raw) > 0 && json.Unmarshal(raw, &body) == nil {
		apiErr.Message = strings.TrimSpace(body.Error)
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(body.Detail)
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(resp.Status)
	}
	return apiErr
}

func (c *Client) imageURL(path string) string {
	if path == "" || c.cdnURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.cdnURL + path
}
