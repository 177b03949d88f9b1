package utils

import (
	"os"
	"time"

	"github.com/geeta-ai/geeta-be/types"

	"github.com/golang-jwt/jwt/v5"
)

type UserClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func GenerateUserToken(user *types.User) (string, error) {
	// Get secret from environment variable
	secret := os.Getenv("JWT_SECRET_USER")
	if secret == "" {
		secret = "default_secret" // Fallback secret, should be changed in production
	}

	claims := UserClaims{
		ID:       user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // Token expires in 24 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func ParseUserToken(tokenString string) (*UserClaims, error) {
	secret := os.Getenv("JWT_SECRET_USER")
	if secret == "" {
		secret = "default_secret"
	}
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrInvalidKey
	}
	return claims, nil
}
