package model

// Product represents an item in the storefront catalogue.
type Product struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"ownerId"`
	Title       string  `json:"title"`
	ImageURL    string  `json:"imageUrl"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}
