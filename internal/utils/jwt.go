package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront_back_end/internal/config"
	"storefront_back_end/internal/models"
)

const TokenLifetime = 24 * time.Hour

// JWTSecret returns the HMAC signing key. Read at call time so tests and
// late .env loading both see the configured value.
func JWTSecret() []byte {
	return []byte(config.Get("JWT_SECRET", "super_secret"))
}

func GenerateJWT(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(TokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}
