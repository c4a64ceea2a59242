package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "storefront-service/errors"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"
)

type CheckoutController struct {
	checkout services.CheckoutService
}

func NewCheckoutController(checkout services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

// SelectPaymentRequest is the payload for the payment step.
type SelectPaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// GetState returns the current checkout flow state.
func (cc *CheckoutController) GetState(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	state, svcErr := cc.checkout.State(c.Request.Context(), userID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, state)
}

// SubmitShipping records the shipping address and advances to payment.
func (cc *CheckoutController) SubmitShipping(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	var addr models.ShippingAddress
	if err := c.ShouldBindJSON(&addr); err != nil {
		_ = c.Error(apperrors.ErrValidation.Wrap(err))
		return
	}

	state, svcErr := cc.checkout.SubmitShipping(c.Request.Context(), userID, addr)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, state)
}

// SelectPayment records the payment method and advances to review.
func (cc *CheckoutController) SelectPayment(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	var req SelectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ErrValidation.Wrap(err))
		return
	}

	state, svcErr := cc.checkout.SelectPayment(c.Request.Context(), userID, req.PaymentMethod)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, state)
}

// Back steps the flow backwards.
func (cc *CheckoutController) Back(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	state, svcErr := cc.checkout.Back(c.Request.Context(), userID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, state)
}

// Submit places the order from the review step.
func (cc *CheckoutController) Submit(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	order, svcErr := cc.checkout.Submit(c.Request.Context(), userID)
	if svcErr != nil {
		middleware.RecordCheckoutOperation("submit", false)
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	middleware.RecordCheckoutOperation("submit", true)
	c.JSON(http.StatusCreated, order)
}
