package action

import (
	"context"
	"fmt"
	"time"

	"kartshop/internal/backend"
	"kartshop/internal/model"
	"kartshop/internal/store"

	"github.com/rs/zerolog"
)

// Orders creates order-history events from backend calls.
type Orders struct {
	client backend.Client
	clock  func() time.Time
	logger zerolog.Logger
}

// NewOrders creates the order action creators.
func NewOrders(client backend.Client, logger zerolog.Logger) *Orders {
	return &Orders{
		client: client,
		clock:  time.Now,
		logger: logger.With().Str("action", "orders").Logger(),
	}
}

// Load fetches the signed-in user's order history.
func (a *Orders) Load(ctx context.Context, d Dispatcher) error {
	userID := d.CurrentUserID()
	if userID == "" {
		return model.ErrNotSignedIn
	}

	orders, err := a.client.FetchOrders(ctx, userID)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to load orders")
		return fmt.Errorf("failed to load orders: %w", err)
	}

	d.Dispatch(store.OrdersLoaded{Orders: orders})

	a.logger.Debug().Int("count", len(orders)).Msg("orders loaded")
	return nil
}

// Place submits the cart as a new order. On success the order is appended
// to the history and the cart is cleared, in that sequence.
func (a *Orders) Place(ctx context.Context, d Dispatcher, cart store.CartState) error {
	token := d.CurrentToken()
	userID := d.CurrentUserID()
	if token == "" || userID == "" {
		return model.ErrNotSignedIn
	}
	if len(cart.Lines) == 0 {
		return model.ErrEmptyCart
	}

	lines := cart.Snapshot()
	placedAt := a.clock().UTC().Format(time.RFC3339)

	order, err := a.client.CreateOrder(ctx, token, userID, lines, cart.TotalAmount, placedAt)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to place order")
		return fmt.Errorf("failed to place order: %w", err)
	}

	d.Dispatch(store.OrderAdded{Order: order})
	d.Dispatch(store.ClearCart{})

	a.logger.Debug().Str("order_id", order.ID).Int("line_count", len(lines)).Msg("order placed")
	return nil
}

// Delete removes one of the signed-in user's orders from the backend and
// the history.
func (a *Orders) Delete(ctx context.Context, d Dispatcher, orderID string) error {
	token := d.CurrentToken()
	userID := d.CurrentUserID()
	if token == "" || userID == "" {
		return model.ErrNotSignedIn
	}

	if err := a.client.DeleteOrder(ctx, token, userID, orderID); err != nil {
		a.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}

	d.Dispatch(store.OrderDeleted{OrderID: orderID})

	a.logger.Debug().Str("order_id", orderID).Msg("order deleted")
	return nil
}
