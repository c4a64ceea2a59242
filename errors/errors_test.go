package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestError_WrapAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrSubmissionFailed.Wrap(cause)

	assert.Equal(t, http.StatusBadGateway, err.Code)
	assert.Equal(t, "Failed to place order", err.Message)
	assert.Equal(t, "Failed to place order: connection refused", err.Error())
	assert.True(t, errors.Is(err, cause))

	// the sentinel itself stays pristine
	assert.Nil(t, ErrSubmissionFailed.Err)
}

func TestErrorMiddleware_RendersDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(ErrEmptyCart)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var body Error
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusConflict, body.Code)
	assert.Equal(t, "Cart is empty", body.Message)
}

func TestErrorMiddleware_WrapsUnknownErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("driver crashed"))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body Error
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrInternalServer.Message, body.Message)
	// the cause is never serialized to the client
	assert.NotContains(t, w.Body.String(), "driver crashed")
}

func TestErrorMiddleware_PassesThroughCleanRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
