// Package jwt читает claims access-токена API.
//
// Клиент не знает ключа подписи, поэтому токен разбирается без проверки.
// Результат годится только для логов и диагностики, но не для решений о доступе.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken токен не является JWT.
var ErrOpaqueToken = errors.New("token is not a jwt")

// Claims поля access-токена API.
type Claims struct {
	UserID    int    `json:"user_id"`
	TokenType string `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

// Inspect разбирает токен без проверки подписи.
func Inspect(token string) (*Claims, error) {
	const op = "jwt.Inspect"
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrOpaqueToken, err)
	}
	return claims, nil
}

// Expired сообщает, истёк ли токен к моменту now. Токен без exp не истекает.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
