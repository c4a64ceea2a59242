package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "storefront-service/errors"
	"storefront-service/middleware"
	"storefront-service/services"
)

type OrderController struct {
	orders services.OrderService
}

func NewOrderController(orders services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// GetOrder returns a single order. Non-admin users can only see their own.
func (oc *OrderController) GetOrder(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	order, svcErr := oc.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	if order.UserID != user.ID && !user.IsAdmin {
		_ = c.Error(apperrors.ErrForbidden)
		return
	}

	c.JSON(http.StatusOK, order)
}

// GetMyOrders returns the authenticated user's orders.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	orders, svcErr := oc.orders.ListForUser(c.Request.Context(), userID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// MarkPaid records the payment transition for the user's own order.
func (oc *OrderController) MarkPaid(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	order, svcErr := oc.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	if order.UserID != user.ID && !user.IsAdmin {
		_ = c.Error(apperrors.ErrForbidden)
		return
	}

	order, svcErr = oc.orders.MarkPaid(c.Request.Context(), order.ID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, order)
}

// MarkDelivered records the delivery transition. Admin only (enforced by
// route middleware).
func (oc *OrderController) MarkDelivered(c *gin.Context) {
	order, svcErr := oc.orders.MarkDelivered(c.Request.Context(), c.Param("id"))
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, order)
}

// GetAllOrders returns every order. Admin only (enforced by route
// middleware).
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, svcErr := oc.orders.ListAll(c.Request.Context())
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
