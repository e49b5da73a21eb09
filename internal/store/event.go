package store

import "kartshop/internal/model"

// Event is a state transition consumed by Store.Dispatch. The set of events
// is closed: only the types below implement it.
type Event interface {
	isEvent()
}

// CartEvent is an event the cart reducer consumes.
type CartEvent interface {
	Event
	isCartEvent()
}

// CatalogEvent is an event the catalog reducer consumes.
type CatalogEvent interface {
	Event
	isCatalogEvent()
}

// OrderEvent is an event the order reducer consumes.
type OrderEvent interface {
	Event
	isOrderEvent()
}

// AuthEvent is an event the auth reducer consumes.
type AuthEvent interface {
	Event
	isAuthEvent()
}

// AddToCart adds one unit of a product to the cart, merging into an
// existing line when the product is already present.
type AddToCart struct {
	Product model.Product
}

// RemoveFromCart removes one unit of a product from the cart. Absent
// product IDs are ignored.
type RemoveFromCart struct {
	ProductID string
}

// ClearCart resets the cart to empty.
type ClearCart struct{}

// ProductDeleted signals that a product no longer exists. It is consumed by
// both the catalog reducer (drop from both lists) and the cart reducer
// (drop the whole line, whatever its quantity).
type ProductDeleted struct {
	ProductID string
}

// ProductsLoaded replaces the catalogue with a freshly fetched product
// list. UserID is the authenticated user whose products form the owned view.
type ProductsLoaded struct {
	Products []model.Product
	UserID   string
}

// ProductAdded prepends a newly created product to both catalogue views.
type ProductAdded struct {
	Product model.Product
}

// ProductEdited replaces an existing product, moving it to the front of
// both catalogue views.
type ProductEdited struct {
	Product model.Product
}

// OrdersLoaded replaces the order history with a freshly fetched list.
type OrdersLoaded struct {
	Orders []model.Order
}

// OrderAdded appends a newly placed order to the history.
type OrderAdded struct {
	Order model.Order
}

// OrderDeleted removes an order by ID. Absent IDs are ignored.
type OrderDeleted struct {
	OrderID string
}

// Authenticated records the signed-in user's identity and token.
type Authenticated struct {
	UserID string
	Token  string
}

// LoggedOut clears the signed-in identity.
type LoggedOut struct{}

func (AddToCart) isEvent()      {}
func (RemoveFromCart) isEvent() {}
func (ClearCart) isEvent()      {}
func (ProductDeleted) isEvent() {}
func (ProductsLoaded) isEvent() {}
func (ProductAdded) isEvent()   {}
func (ProductEdited) isEvent()  {}
func (OrdersLoaded) isEvent()   {}
func (OrderAdded) isEvent()     {}
func (OrderDeleted) isEvent()   {}
func (Authenticated) isEvent()  {}
func (LoggedOut) isEvent()      {}

func (AddToCart) isCartEvent()      {}
func (RemoveFromCart) isCartEvent() {}
func (ClearCart) isCartEvent()      {}
func (ProductDeleted) isCartEvent() {}

func (ProductsLoaded) isCatalogEvent() {}
func (ProductAdded) isCatalogEvent()   {}
func (ProductEdited) isCatalogEvent()  {}
func (ProductDeleted) isCatalogEvent() {}

func (OrdersLoaded) isOrderEvent() {}
func (OrderAdded) isOrderEvent()   {}
func (OrderDeleted) isOrderEvent() {}

func (Authenticated) isAuthEvent() {}
func (LoggedOut) isAuthEvent()     {}
