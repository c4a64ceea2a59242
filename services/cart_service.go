package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	apperrors "storefront-service/errors"
	"storefront-service/models"
	"storefront-service/repository"
)

// Pricing rules applied to every cart read.
const (
	shippingPrice = 10.0
	taxRate       = 0.15
)

// CartService defines the business logic interface for the cart store.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*CartView, *ServiceError)
	AddItem(ctx context.Context, userID, productID string, qty int) (*CartView, *ServiceError)
	UpdateQty(ctx context.Context, userID, productID string, qty int) (*CartView, *ServiceError)
	RemoveItem(ctx context.Context, userID, productID string) (*CartView, *ServiceError)
	Clear(ctx context.Context, userID string) *ServiceError
}

type cartServiceImpl struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{
		carts:    carts,
		products: products,
		logger:   logger,
	}
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) (*CartView, *ServiceError) {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildCartView(cart.Items), nil
}

// AddItem adds a product snapshot to the cart. An item already present is
// merged: its quantity accumulates instead of creating a duplicate line.
func (s *cartServiceImpl) AddItem(ctx context.Context, userID, productID string, qty int) (*CartView, *ServiceError) {
	if qty < 1 {
		return nil, &ServiceError{StatusCode: 400, Message: "Quantity must be at least 1"}
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("AddItem product lookup failed", zap.String("product_id", productID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch product"}
	}

	cart, svcErr := s.loadCart(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].Product.ID == productID {
			if cart.Items[i].Qty+qty > product.CountInStock {
				return nil, fromAppError(apperrors.ErrInsufficientStock)
			}
			cart.Items[i].Qty += qty
			found = true
			break
		}
	}
	if !found {
		if qty > product.CountInStock {
			return nil, fromAppError(apperrors.ErrInsufficientStock)
		}
		item := models.CartItem{Product: *product, Qty: qty}
		item.Reviews = nil // keep the snapshot lean
		cart.Items = append(cart.Items, item)
	}

	if svcErr := s.saveCart(ctx, cart); svcErr != nil {
		return nil, svcErr
	}
	return buildCartView(cart.Items), nil
}

// UpdateQty sets the quantity for an item. A quantity of zero or less
// removes the item, same as RemoveItem.
func (s *cartServiceImpl) UpdateQty(ctx context.Context, userID, productID string, qty int) (*CartView, *ServiceError) {
	if qty <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	cart, svcErr := s.loadCart(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	for i := range cart.Items {
		if cart.Items[i].Product.ID == productID {
			cart.Items[i].Qty = qty
			break
		}
	}

	if svcErr := s.saveCart(ctx, cart); svcErr != nil {
		return nil, svcErr
	}
	return buildCartView(cart.Items), nil
}

// RemoveItem deletes the matching item. Removing an absent item is a no-op.
func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, productID string) (*CartView, *ServiceError) {
	cart, svcErr := s.loadCart(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.Product.ID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items

	if svcErr := s.saveCart(ctx, cart); svcErr != nil {
		return nil, svcErr
	}
	return buildCartView(cart.Items), nil
}

func (s *cartServiceImpl) Clear(ctx context.Context, userID string) *ServiceError {
	if err := s.carts.Delete(ctx, userID); err != nil {
		s.logger.Error("Clear cart failed", zap.String("user_id", userID), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to clear cart"}
	}
	return nil
}

func (s *cartServiceImpl) loadCart(ctx context.Context, userID string) (*models.Cart, *ServiceError) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}
	return cart, nil
}

func (s *cartServiceImpl) saveCart(ctx context.Context, cart *models.Cart) *ServiceError {
	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("user_id", cart.UserID), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to save cart"}
	}
	return nil
}

// buildCartView derives the monetary totals: subtotal over all lines, a
// flat shipping fee waived for the empty cart, and tax as a fixed rate on
// the subtotal.
func buildCartView(items []models.CartItem) *CartView {
	if items == nil {
		items = []models.CartItem{}
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Price * float64(item.Qty)
	}

	shipping := 0.0
	if len(items) > 0 {
		shipping = shippingPrice
	}
	tax := subtotal * taxRate

	return &CartView{
		Items:         items,
		Subtotal:      subtotal,
		ShippingPrice: shipping,
		TaxPrice:      tax,
		TotalPrice:    subtotal + shipping + tax,
	}
}
