package auth

import (
	"os"
	"time"

	"balancegame/apperrors"
	"balancegame/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTTL  = 30 * time.Minute
	RefreshTokenTTL = 14 * 24 * time.Hour
)

type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

func jwtKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "balancegame_dev_secret_change_me"
	}
	return []byte(secret)
}

// CreateAccessToken signs a short-lived token carrying the user's email and role.
func CreateAccessToken(email string, role models.Role) (string, error) {
	return createToken(email, role, AccessTokenTTL)
}

// CreateRefreshToken signs a long-lived token with the same claims.
func CreateRefreshToken(email string, role models.Role) (string, error) {
	return createToken(email, role, RefreshTokenTTL)
}

func createToken(email string, role models.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// ValidateToken verifies signature and expiry and returns the embedded identity.
// Any failure surfaces as an authentication failure; tokens are stateless, so
// retrying with the same token cannot succeed.
func ValidateToken(tokenString string) (string, models.Role, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return "", "", apperrors.Unauthenticated("Invalid or expired token")
	}

	return claims.Subject, claims.Role, nil
}
