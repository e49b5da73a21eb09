package model

// CartItem is a single line of the cart, keyed by product ID in the cart
// state. LineTotal always equals Quantity * UnitPrice. The JSON tags match
// the wire keys the backend stores inside an order's cartItems array.
type CartItem struct {
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"productPrice"`
	Title     string  `json:"productTitle"`
	ImageURL  string  `json:"productImage"`
	LineTotal float64 `json:"sum"`
}
