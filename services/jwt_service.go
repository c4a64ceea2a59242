package services

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates an HS256 token carrying the user identity.
func GenerateJWT(secret []byte, userID, name, email string, isAdmin bool, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"name":     name,
		"email":    email,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
