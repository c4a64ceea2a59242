package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "storefront-service/errors"
	"storefront-service/middleware"
	"storefront-service/services"
)

type CartController struct {
	cart services.CartService
}

func NewCartController(cart services.CartService) *CartController {
	return &CartController{cart: cart}
}

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Qty       int    `json:"qty" binding:"required,min=1"`
}

// UpdateQtyRequest sets the quantity for a cart line. Zero and negative
// values remove the line.
type UpdateQtyRequest struct {
	Qty int `json:"qty"`
}

// GetCart returns the current cart with derived totals.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	view, svcErr := cc.cart.GetCart(c.Request.Context(), userID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, view)
}

// AddItem adds or merges an item in the cart
func (cc *CartController) AddItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ErrValidation.Wrap(err))
		return
	}

	view, svcErr := cc.cart.AddItem(c.Request.Context(), userID, req.ProductID, req.Qty)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdateQty sets the quantity of a cart item
func (cc *CartController) UpdateQty(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	var req UpdateQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ErrValidation.Wrap(err))
		return
	}

	view, svcErr := cc.cart.UpdateQty(c.Request.Context(), userID, c.Param("product_id"), req.Qty)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, view)
}

// RemoveItem removes a specific item from the cart
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	view, svcErr := cc.cart.RemoveItem(c.Request.Context(), userID, c.Param("product_id"))
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, view)
}

// ClearCart removes all items from the cart
func (cc *CartController) ClearCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	if svcErr := cc.cart.Clear(c.Request.Context(), userID); svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
