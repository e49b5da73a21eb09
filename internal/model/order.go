package model

// OrderLine is a snapshot of one cart line taken when the order was placed.
type OrderLine struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"productPrice"`
	Title     string  `json:"productTitle"`
	ImageURL  string  `json:"productImage"`
	LineTotal float64 `json:"sum"`
}

// Order represents a placed order. The ID is assigned by the backend on
// creation and the record is immutable afterwards.
type Order struct {
	ID          string      `json:"id"`
	Lines       []OrderLine `json:"cartItems"`
	TotalAmount float64     `json:"totalAmount"`
	PlacedAt    string      `json:"date"`
}
