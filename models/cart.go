package models

import "time"

// CartItem is a product snapshot plus the requested quantity. The snapshot
// is taken when the item is added; later catalog changes do not affect it.
type CartItem struct {
	Product
	Qty int `json:"qty"`
}

type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ShippingAddress is collected during the shipping step of checkout.
type ShippingAddress struct {
	Address    string `json:"address" binding:"required,min=5"`
	City       string `json:"city" binding:"required,min=2"`
	PostalCode string `json:"postal_code" binding:"required,min=3"`
	Country    string `json:"country" binding:"required,min=2"`
}
