package store

import (
	"fmt"
	"sync"

	"kartshop/internal/model"

	"github.com/rs/zerolog"
)

// Store composes the cart, catalog, order and auth reducers into a single
// state tree. Dispatch routes each event to every reducer whose state it
// can affect and completes fully before the next dispatch starts; the
// mutex provides that ordering when callers dispatch from multiple
// goroutines. Accessors return snapshot copies, so callers never alias
// internal state.
type Store struct {
	mu      sync.Mutex
	cart    CartState
	catalog CatalogState
	orders  OrderState
	auth    AuthState
	logger  zerolog.Logger
}

// New creates a store with empty sub-states.
func New(logger zerolog.Logger) *Store {
	return &Store{
		cart:   NewCartState(),
		logger: logger.With().Str("component", "store").Logger(),
	}
}

// Dispatch folds the event through the affected reducers. ProductDeleted is
// the one event broadcast to two reducers: deleting a product must also
// drop any cart line referencing it.
func (s *Store) Dispatch(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := ev.(CartEvent); ok {
		s.cart = ReduceCart(s.cart, e)
	}
	if e, ok := ev.(CatalogEvent); ok {
		s.catalog = ReduceCatalog(s.catalog, e)
	}
	if e, ok := ev.(OrderEvent); ok {
		s.orders = ReduceOrders(s.orders, e)
	}
	if e, ok := ev.(AuthEvent); ok {
		s.auth = ReduceAuth(s.auth, e)
	}

	s.logger.Debug().Str("event", fmt.Sprintf("%T", ev)).Msg("event dispatched")
}

// Cart returns a snapshot of the cart state.
func (s *Store) Cart() CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CartState{Lines: copyCartLines(s.cart.Lines), TotalAmount: s.cart.TotalAmount}
}

// Catalog returns a snapshot of the catalog state.
func (s *Store) Catalog() CatalogState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CatalogState{
		AllProducts: append([]model.Product(nil), s.catalog.AllProducts...),
		MyProducts:  append([]model.Product(nil), s.catalog.MyProducts...),
	}
}

// Orders returns a snapshot of the order history.
func (s *Store) Orders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Order(nil), s.orders.Orders...)
}

// CurrentUserID returns the signed-in user's ID, or "" when signed out.
func (s *Store) CurrentUserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth.UserID
}

// CurrentToken returns the signed-in user's token, or "" when signed out.
func (s *Store) CurrentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth.Token
}
