package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "storefront-service/errors"
	"storefront-service/models"
	"storefront-service/repository"
)

// submitLockTTL bounds how long a crashed submission can block the flow.
const submitLockTTL = 30 * time.Second

// CheckoutService drives the shipping -> payment -> review flow and turns a
// reviewed cart into an order.
type CheckoutService interface {
	State(ctx context.Context, userID string) (*CheckoutState, *ServiceError)
	SubmitShipping(ctx context.Context, userID string, addr models.ShippingAddress) (*CheckoutState, *ServiceError)
	SelectPayment(ctx context.Context, userID, method string) (*CheckoutState, *ServiceError)
	Back(ctx context.Context, userID string) (*CheckoutState, *ServiceError)
	Submit(ctx context.Context, userID string) (*models.Order, *ServiceError)
}

type checkoutServiceImpl struct {
	state    repository.CheckoutRepository
	cart     CartService
	orders   OrderService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(state repository.CheckoutRepository, cart CartService, orders OrderService, logger *zap.Logger) CheckoutService {
	v := validator.New()
	// reuse the models' gin binding tags for direct struct validation
	v.SetTagName("binding")

	return &checkoutServiceImpl{
		state:    state,
		cart:     cart,
		orders:   orders,
		validate: v,
		logger:   logger,
	}
}

// State returns the assembled flow state. An empty cart terminates the
// flow: the caller is expected to leave checkout entirely.
func (s *checkoutServiceImpl) State(ctx context.Context, userID string) (*CheckoutState, *ServiceError) {
	view, svcErr := s.guardCart(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}
	return s.assemble(ctx, userID, view)
}

// SubmitShipping validates and records the shipping address, then advances
// the flow to the payment step.
func (s *checkoutServiceImpl) SubmitShipping(ctx context.Context, userID string, addr models.ShippingAddress) (*CheckoutState, *ServiceError) {
	view, svcErr := s.guardCart(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	if err := s.validate.Struct(addr); err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid shipping address: " + err.Error()}
	}

	if err := s.state.SaveAddress(ctx, userID, addr); err != nil {
		s.logger.Error("Failed to save shipping address", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save shipping address"}
	}
	if err := s.state.SaveStep(ctx, userID, StepPayment); err != nil {
		s.logger.Error("Failed to advance checkout", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to advance checkout"}
	}

	return s.assemble(ctx, userID, view)
}

// SelectPayment records one of the accepted payment method labels and
// advances the flow to the review step. A recorded shipping address is a
// precondition, so review is unreachable without one.
func (s *checkoutServiceImpl) SelectPayment(ctx context.Context, userID, method string) (*CheckoutState, *ServiceError) {
	view, svcErr := s.guardCart(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	if !isSupportedPaymentMethod(method) {
		return nil, &ServiceError{StatusCode: 400, Message: "Unsupported payment method"}
	}

	addr, err := s.state.GetAddress(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load shipping address", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load checkout state"}
	}
	if addr == nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Shipping address is required first"}
	}

	if err := s.state.SavePaymentMethod(ctx, userID, method); err != nil {
		s.logger.Error("Failed to save payment method", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save payment method"}
	}
	if err := s.state.SaveStep(ctx, userID, StepReview); err != nil {
		s.logger.Error("Failed to advance checkout", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to advance checkout"}
	}

	return s.assemble(ctx, userID, view)
}

// Back steps the flow backwards: review -> payment, payment -> shipping.
func (s *checkoutServiceImpl) Back(ctx context.Context, userID string) (*CheckoutState, *ServiceError) {
	view, svcErr := s.guardCart(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	step, err := s.currentStep(ctx, userID)
	if err != nil {
		return nil, err
	}

	var prev string
	switch step {
	case StepReview:
		prev = StepPayment
	case StepPayment:
		prev = StepShipping
	default:
		return nil, &ServiceError{StatusCode: 400, Message: "Already at the first step"}
	}

	if err := s.state.SaveStep(ctx, userID, prev); err != nil {
		s.logger.Error("Failed to step back", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to step back"}
	}

	return s.assemble(ctx, userID, view)
}

// Submit places the order from the review step. On success the cart and the
// checkout state are cleared; on failure both are left untouched so the
// user can resubmit from review.
func (s *checkoutServiceImpl) Submit(ctx context.Context, userID string) (*models.Order, *ServiceError) {
	view, svcErr := s.guardCart(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	step, svcErr := s.currentStep(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}
	if step != StepReview {
		return nil, &ServiceError{StatusCode: 409, Message: "Checkout is not at the review step"}
	}

	addr, err := s.state.GetAddress(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load shipping address", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load checkout state"}
	}
	method, err := s.state.GetPaymentMethod(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load payment method", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load checkout state"}
	}
	if addr == nil || method == "" {
		return nil, &ServiceError{StatusCode: 400, Message: "Shipping address and payment method are required"}
	}

	acquired, err := s.state.AcquireSubmitLock(ctx, userID, submitLockTTL)
	if err != nil {
		s.logger.Error("Failed to acquire submit lock", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to place order"}
	}
	if !acquired {
		return nil, &ServiceError{StatusCode: 409, Message: "Order submission already in progress"}
	}
	defer func() {
		if err := s.state.ReleaseSubmitLock(ctx, userID); err != nil {
			s.logger.Warn("Failed to release submit lock", zap.String("user_id", userID), zap.Error(err))
		}
	}()

	order, svcErr := s.orders.Create(ctx, &CreateOrderRequest{
		UserID:          userID,
		Items:           view.Items,
		ShippingAddress: *addr,
		PaymentMethod:   method,
		TaxPrice:        view.TaxPrice,
		ShippingPrice:   view.ShippingPrice,
		TotalPrice:      view.TotalPrice,
	})
	if svcErr != nil {
		// flow stays on review; the user may resubmit
		s.logger.Warn("Order submission failed",
			zap.String("user_id", userID),
			zap.Int("status", svcErr.StatusCode),
			zap.String("reason", svcErr.Message),
		)
		return nil, svcErr
	}

	if svcErr := s.cart.Clear(ctx, userID); svcErr != nil {
		return nil, svcErr
	}
	if err := s.state.Clear(ctx, userID); err != nil {
		s.logger.Warn("Failed to clear checkout state", zap.String("user_id", userID), zap.Error(err))
	}

	s.logger.Info("Checkout completed",
		zap.String("user_id", userID),
		zap.String("order_id", order.ID),
	)
	return order, nil
}

// guardCart loads the cart view and terminates the flow when it is empty.
func (s *checkoutServiceImpl) guardCart(ctx context.Context, userID string) (*CartView, *ServiceError) {
	view, svcErr := s.cart.GetCart(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}
	if len(view.Items) == 0 {
		return nil, fromAppError(apperrors.ErrEmptyCart)
	}
	return view, nil
}

func (s *checkoutServiceImpl) currentStep(ctx context.Context, userID string) (string, *ServiceError) {
	step, err := s.state.GetStep(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load checkout step", zap.String("user_id", userID), zap.Error(err))
		return "", &ServiceError{StatusCode: 500, Message: "Failed to load checkout state"}
	}
	if step == "" {
		step = StepShipping
	}
	return step, nil
}

func (s *checkoutServiceImpl) assemble(ctx context.Context, userID string, view *CartView) (*CheckoutState, *ServiceError) {
	step, svcErr := s.currentStep(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	addr, err := s.state.GetAddress(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load shipping address", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load checkout state"}
	}
	method, err := s.state.GetPaymentMethod(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load payment method", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load checkout state"}
	}

	return &CheckoutState{
		Step:            step,
		ShippingAddress: addr,
		PaymentMethod:   method,
		Cart:            view,
	}, nil
}

func isSupportedPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
