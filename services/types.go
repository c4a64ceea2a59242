package services

import (
	apperrors "storefront-service/errors"
	"storefront-service/models"
)

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// fromAppError adapts a domain sentinel into a ServiceError.
func fromAppError(err *apperrors.Error) *ServiceError {
	return &ServiceError{StatusCode: err.Code, Message: err.Message}
}

// Checkout flow steps
const (
	StepShipping = "shipping"
	StepPayment  = "payment"
	StepReview   = "review"
)

// PaymentMethods is the closed set of accepted payment method labels.
var PaymentMethods = []string{"PayPal", "Stripe"}

// CartView is a cart with its derived monetary totals. Totals are
// recomputed on every read, never stored.
type CartView struct {
	Items         []models.CartItem `json:"items"`
	Subtotal      float64           `json:"subtotal"`
	ShippingPrice float64           `json:"shipping_price"`
	TaxPrice      float64           `json:"tax_price"`
	TotalPrice    float64           `json:"total_price"`
}

// CheckoutState is the assembled view of an in-progress checkout.
type CheckoutState struct {
	Step            string                  `json:"step"`
	ShippingAddress *models.ShippingAddress `json:"shipping_address,omitempty"`
	PaymentMethod   string                  `json:"payment_method,omitempty"`
	Cart            *CartView               `json:"cart"`
}

// CreateOrderRequest carries everything the order store needs to create an
// order: the item snapshots, the collected checkout data, and the totals
// computed by the cart at submission time.
type CreateOrderRequest struct {
	UserID          string
	Items           []models.CartItem
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
	TaxPrice        float64
	ShippingPrice   float64
	TotalPrice      float64
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token"`
}
