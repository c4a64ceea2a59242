package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "storefront-service/errors"
	"storefront-service/models"
	"storefront-service/repository"
)

// OrderService defines the business logic interface for the order store.
type OrderService interface {
	Create(ctx context.Context, req *CreateOrderRequest) (*models.Order, *ServiceError)
	GetOrder(ctx context.Context, id string) (*models.Order, *ServiceError)
	MarkPaid(ctx context.Context, id string) (*models.Order, *ServiceError)
	MarkDelivered(ctx context.Context, id string) (*models.Order, *ServiceError)
	ListForUser(ctx context.Context, userID string) ([]models.Order, *ServiceError)
	ListAll(ctx context.Context) ([]models.Order, *ServiceError)
}

type orderServiceImpl struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, logger *zap.Logger) OrderService {
	return &orderServiceImpl{
		orders:   orders,
		products: products,
		logger:   logger,
	}
}

// Create stores a new order and decrements stock for each line item. The
// decrement is not transactional: a line referencing a missing product is
// skipped, and there is no rollback on partial failure.
func (s *orderServiceImpl) Create(ctx context.Context, req *CreateOrderRequest) (*models.Order, *ServiceError) {
	if len(req.Items) == 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "At least one item is required"}
	}

	for _, item := range req.Items {
		if err := s.products.DecrementStock(ctx, item.Product.ID, item.Qty); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.logger.Warn("Order references unknown product",
					zap.String("product_id", item.Product.ID),
				)
				continue
			}
			s.logger.Error("Stock decrement failed", zap.String("product_id", item.Product.ID), zap.Error(err))
			return nil, fromAppError(apperrors.ErrSubmissionFailed)
		}
	}

	order := &models.Order{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		OrderItems:      req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		TaxPrice:        req.TaxPrice,
		ShippingPrice:   req.ShippingPrice,
		TotalPrice:      req.TotalPrice,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to persist order", zap.String("order_id", order.ID), zap.Error(err))
		return nil, fromAppError(apperrors.ErrSubmissionFailed)
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.Float64("total", order.TotalPrice),
	)
	return order, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, id string) (*models.Order, *ServiceError) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("GetOrder failed", zap.String("order_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch order"}
	}
	return order, nil
}

// MarkPaid records the payment status transition.
func (s *orderServiceImpl) MarkPaid(ctx context.Context, id string) (*models.Order, *ServiceError) {
	return s.transition(ctx, id, func(o *models.Order) {
		now := time.Now().UTC()
		o.IsPaid = true
		o.PaidAt = &now
	})
}

// MarkDelivered records the delivery status transition.
func (s *orderServiceImpl) MarkDelivered(ctx context.Context, id string) (*models.Order, *ServiceError) {
	return s.transition(ctx, id, func(o *models.Order) {
		now := time.Now().UTC()
		o.IsDelivered = true
		o.DeliveredAt = &now
	})
}

func (s *orderServiceImpl) transition(ctx context.Context, id string, apply func(*models.Order)) (*models.Order, *ServiceError) {
	order, svcErr := s.GetOrder(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}

	apply(order)

	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.Error("Order status update failed", zap.String("order_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update order"}
	}
	return order, nil
}

func (s *orderServiceImpl) ListForUser(ctx context.Context, userID string) ([]models.Order, *ServiceError) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ListForUser failed", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch orders"}
	}
	return orders, nil
}

func (s *orderServiceImpl) ListAll(ctx context.Context) ([]models.Order, *ServiceError) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		s.logger.Error("ListAll failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch orders"}
	}
	return orders, nil
}
