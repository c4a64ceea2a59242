package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"storefront-service/controllers"
	apperrors "storefront-service/errors"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/services"
)

func setupProductRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	catalog := services.NewCatalogService(repository.NewMemoryProductRepository(0), zap.NewNop())
	pc := controllers.NewProductController(catalog)

	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	r.GET("/products", pc.GetProducts)
	r.GET("/products/:id", pc.GetProductByID)
	r.POST("/products/:id/reviews", func(c *gin.Context) {
		// stand-in for the auth middleware
		c.Set(middleware.UserContextKey, models.User{ID: "u1", Name: "Alice"})
		c.Set(middleware.UserIDContextKey, "u1")
		pc.CreateReview(c)
	})
	return r
}

func TestGetProducts_ReturnsCatalog(t *testing.T) {
	r := setupProductRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/products", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Products []models.Product `json:"products"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Products, 6)
}

func TestGetProducts_KeywordFilter(t *testing.T) {
	r := setupProductRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/products?keyword=headphones", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Products []models.Product `json:"products"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Products, 1)
	assert.Contains(t, body.Products[0].Name, "Headphones")
}

func TestGetProductByID(t *testing.T) {
	r := setupProductRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/products/1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var product models.Product
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "1", product.ID)
	assert.NotEmpty(t, product.Name)
}

func TestGetProductByID_NotFound(t *testing.T) {
	r := setupProductRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/products/999", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateReview(t *testing.T) {
	r := setupProductRouter()

	payload, _ := json.Marshal(gin.H{"rating": 5, "comment": "Great product"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/products/2/reviews", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var product models.Product
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, 1, product.NumReviews)
	assert.Equal(t, 5.0, product.Rating)
	assert.Equal(t, "Alice", product.Reviews[0].Name)
}

func TestCreateReview_RejectsInvalidPayload(t *testing.T) {
	r := setupProductRouter()

	// rating out of range fails binding
	payload, _ := json.Marshal(gin.H{"rating": 7, "comment": "nope"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/products/2/reviews", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// missing comment fails binding
	payload, _ = json.Marshal(gin.H{"rating": 4})
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/products/2/reviews", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// the error middleware renders the taxonomy shape
	var body apperrors.Error
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Equal(t, apperrors.ErrValidation.Message, body.Message)
}
