package models

import "time"

// Order is an immutable record of a completed purchase request. Totals are
// computed once at creation and never recomputed; the only mutations after
// creation are the paid/delivered status transitions.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	OrderItems      []CartItem      `json:"order_items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	TaxPrice        float64         `json:"tax_price"`
	ShippingPrice   float64         `json:"shipping_price"`
	TotalPrice      float64         `json:"total_price"`
	IsPaid          bool            `json:"is_paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	IsDelivered     bool            `json:"is_delivered"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
