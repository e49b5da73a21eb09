package backend

import (
	"context"

	"kartshop/internal/model"
)

// ProductFields are the writable fields of a product. On update the price
// is ignored: the backend keeps the stored price and only the descriptive
// fields are patched.
type ProductFields struct {
	Title       string
	ImageURL    string
	Description string
	Price       float64
}

// Client defines the operations against the realtime-database backend.
// Write operations require the caller's auth token; reads are public.
type Client interface {
	// FetchProducts retrieves the full catalogue in backend key order.
	FetchProducts(ctx context.Context) ([]model.Product, error)

	// CreateProduct stores a new product owned by ownerID and returns it
	// with the backend-assigned ID.
	CreateProduct(ctx context.Context, token, ownerID string, fields ProductFields) (model.Product, error)

	// UpdateProduct patches the descriptive fields of an existing product.
	UpdateProduct(ctx context.Context, token, id string, fields ProductFields) error

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, token, id string) error

	// FetchOrders retrieves a user's order history in backend key order.
	FetchOrders(ctx context.Context, userID string) ([]model.Order, error)

	// CreateOrder stores a new order for the user and returns it with the
	// backend-assigned ID.
	CreateOrder(ctx context.Context, token, userID string, lines []model.OrderLine, total float64, placedAt string) (model.Order, error)

	// DeleteOrder removes one of the user's orders.
	DeleteOrder(ctx context.Context, token, userID, orderID string) error
}
