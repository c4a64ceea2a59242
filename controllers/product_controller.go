package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "storefront-service/errors"
	"storefront-service/middleware"
	"storefront-service/services"
)

type ProductController struct {
	catalog services.CatalogService
}

func NewProductController(catalog services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// CreateReviewRequest is the payload for posting a product review.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// GetProducts returns products, optionally filtered by keyword.
func (pc *ProductController) GetProducts(c *gin.Context) {
	keyword := c.Query("keyword")

	products, svcErr := pc.catalog.ListProducts(c.Request.Context(), keyword)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProductByID returns a single product.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	product, svcErr := pc.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateReview appends a review authored by the authenticated user.
func (pc *ProductController) CreateReview(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ErrValidation.Wrap(err))
		return
	}

	product, svcErr := pc.catalog.AddReview(c.Request.Context(), c.Param("id"), req.Rating, req.Comment, user)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusCreated, product)
}
