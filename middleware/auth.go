package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"storefront-service/models"
)

// Context keys set by AuthMiddleware.
const (
	UserContextKey    = "user"
	UserIDContextKey  = "user_id"
	IsAdminContextKey = "is_admin"
)

// AuthMiddleware validates the Bearer token and loads the user identity
// into the request context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || token == nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		name, _ := claims["name"].(string)
		email, _ := claims["email"].(string)
		isAdmin, _ := claims["is_admin"].(bool)

		c.Set(UserIDContextKey, userID)
		c.Set(IsAdminContextKey, isAdmin)
		c.Set(UserContextKey, models.User{
			ID:      userID,
			Name:    name,
			Email:   email,
			IsAdmin: isAdmin,
		})
		c.Next()
	}
}

// AdminOnly restricts a route to admin users. Must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isAdmin, ok := c.Get(IsAdminContextKey); !ok || isAdmin != true {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the context.
func GetUserID(c *gin.Context) (string, error) {
	if val, ok := c.Get(UserIDContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", errors.New("user ID not found in context")
}

// CurrentUser returns the authenticated user from the context.
func CurrentUser(c *gin.Context) (models.User, error) {
	if val, ok := c.Get(UserContextKey); ok {
		if user, ok := val.(models.User); ok {
			return user, nil
		}
	}
	return models.User{}, errors.New("user not found in context")
}
