package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kartshop/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productPayload is the wire shape of a stored product.
type productPayload struct {
	OwnerID     string  `json:"ownerId"`
	Title       string  `json:"title"`
	ImageURL    string  `json:"imageUrl"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// productPatch carries the fields an update is allowed to change.
type productPatch struct {
	Title       string `json:"title"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
}

// orderPayload is the wire shape of a stored order.
type orderPayload struct {
	CartItems   []model.OrderLine `json:"cartItems"`
	TotalAmount float64           `json:"totalAmount"`
	Date        string            `json:"date"`
}

// nameResponse is the backend's reply to a create: the assigned key.
type nameResponse struct {
	Name string `json:"name"`
}

// httpClient implements Client against the backend's REST surface.
type httpClient struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) Client {
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With().Str("client", "backend").Logger(),
	}
}

// FetchProducts retrieves the full catalogue in backend key order.
func (c *httpClient) FetchProducts(ctx context.Context) ([]model.Product, error) {
	body, err := c.do(ctx, http.MethodGet, "/products.json", "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	entries, err := decodeKeyed[productPayload](body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]model.Product, 0, len(entries))
	for _, entry := range entries {
		products = append(products, model.Product{
			ID:          entry.Key,
			OwnerID:     entry.Value.OwnerID,
			Title:       entry.Value.Title,
			ImageURL:    entry.Value.ImageURL,
			Description: entry.Value.Description,
			Price:       entry.Value.Price,
		})
	}

	c.logger.Debug().Int("count", len(products)).Msg("fetched products")
	return products, nil
}

// CreateProduct stores a new product and returns it with the assigned ID.
func (c *httpClient) CreateProduct(ctx context.Context, token, ownerID string, fields ProductFields) (model.Product, error) {
	payload := productPayload{
		OwnerID:     ownerID,
		Title:       fields.Title,
		ImageURL:    fields.ImageURL,
		Description: fields.Description,
		Price:       fields.Price,
	}

	body, err := c.do(ctx, http.MethodPost, "/products.json", token, payload)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	var created nameResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return model.Product{}, fmt.Errorf("failed to decode create response: %w", err)
	}

	c.logger.Debug().Str("product_id", created.Name).Msg("product created")
	return model.Product{
		ID:          created.Name,
		OwnerID:     ownerID,
		Title:       fields.Title,
		ImageURL:    fields.ImageURL,
		Description: fields.Description,
		Price:       fields.Price,
	}, nil
}

// UpdateProduct patches the descriptive fields of an existing product.
func (c *httpClient) UpdateProduct(ctx context.Context, token, id string, fields ProductFields) error {
	patch := productPatch{
		Title:       fields.Title,
		ImageURL:    fields.ImageURL,
		Description: fields.Description,
	}

	path := fmt.Sprintf("/products/%s.json", url.PathEscape(id))
	if _, err := c.do(ctx, http.MethodPatch, path, token, patch); err != nil {
		return fmt.Errorf("failed to update product %s: %w", id, err)
	}

	c.logger.Debug().Str("product_id", id).Msg("product updated")
	return nil
}

// DeleteProduct removes a product.
func (c *httpClient) DeleteProduct(ctx context.Context, token, id string) error {
	path := fmt.Sprintf("/products/%s.json", url.PathEscape(id))
	if _, err := c.do(ctx, http.MethodDelete, path, token, nil); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}

	c.logger.Debug().Str("product_id", id).Msg("product deleted")
	return nil
}

// FetchOrders retrieves a user's order history in backend key order.
func (c *httpClient) FetchOrders(ctx context.Context, userID string) ([]model.Order, error) {
	path := fmt.Sprintf("/orders/%s.json", url.PathEscape(userID))
	body, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	entries, err := decodeKeyed[orderPayload](body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	orders := make([]model.Order, 0, len(entries))
	for _, entry := range entries {
		orders = append(orders, model.Order{
			ID:          entry.Key,
			Lines:       entry.Value.CartItems,
			TotalAmount: entry.Value.TotalAmount,
			PlacedAt:    entry.Value.Date,
		})
	}

	c.logger.Debug().Str("user_id", userID).Int("count", len(orders)).Msg("fetched orders")
	return orders, nil
}

// CreateOrder stores a new order and returns it with the assigned ID.
func (c *httpClient) CreateOrder(ctx context.Context, token, userID string, lines []model.OrderLine, total float64, placedAt string) (model.Order, error) {
	payload := orderPayload{
		CartItems:   lines,
		TotalAmount: total,
		Date:        placedAt,
	}

	path := fmt.Sprintf("/orders/%s.json", url.PathEscape(userID))
	body, err := c.do(ctx, http.MethodPost, path, token, payload)
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	var created nameResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return model.Order{}, fmt.Errorf("failed to decode create response: %w", err)
	}

	c.logger.Debug().Str("order_id", created.Name).Str("user_id", userID).Msg("order created")
	return model.Order{
		ID:          created.Name,
		Lines:       lines,
		TotalAmount: total,
		PlacedAt:    placedAt,
	}, nil
}

// DeleteOrder removes one of the user's orders.
func (c *httpClient) DeleteOrder(ctx context.Context, token, userID, orderID string) error {
	path := fmt.Sprintf("/orders/%s/%s.json", url.PathEscape(userID), url.PathEscape(orderID))
	if _, err := c.do(ctx, http.MethodDelete, path, token, nil); err != nil {
		return fmt.Errorf("failed to delete order %s: %w", orderID, err)
	}

	c.logger.Debug().Str("order_id", orderID).Str("user_id", userID).Msg("order deleted")
	return nil
}

// do performs one request and returns the response body. Non-2xx statuses
// become a *model.RequestError carrying the body text.
func (c *httpClient) do(ctx context.Context, method, path, token string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	reqURL := c.baseURL + path
	if token != "" {
		reqURL += "?auth=" + url.QueryEscape(token)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	correlationID := uuid.NewString()
	req.Header.Set("X-Correlation-ID", correlationID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).
			Str("method", method).
			Str("path", path).
			Str("correlation_id", correlationID).
			Msg("request failed")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("correlation_id", correlationID).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.RequestError{
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(body)),
		}
	}

	return body, nil
}
