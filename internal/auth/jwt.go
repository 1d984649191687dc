package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kiwari-pos/qrcounter/internal/enum"
)

// RoleOperator is the only role the counter issues. It may edit the catalog.
const RoleOperator = enum.UserRoleOperator

// TokenTTL is how long an operator session lasts.
const TokenTTL = 12 * time.Hour

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateOperatorToken signs a session token for the counter operator.
func GenerateOperatorToken(secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: RoleOperator,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   RoleOperator,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
