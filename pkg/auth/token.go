package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vitrinacl/storefront-api/pkg/global"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongUse     = errors.New("wrong token use")
)

// Claims carried by both access and refresh tokens. Use distinguishes the
// two so a refresh token cannot authenticate a request.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Use   string `json:"use"`
	jwt.RegisteredClaims
}

func signingKey() []byte {
	return []byte(global.GetEnvOrDefault("JWT_SECRET", "dev-only-secret"))
}

func accessTTL() time.Duration {
	minutes := global.GetEnvFloat("JWT_ACCESS_MINUTES", 30)
	return time.Duration(minutes * float64(time.Minute))
}

// NewAccessToken issues a short-lived bearer token for API requests.
func NewAccessToken(subject, email, role string) (string, error) {
	return newToken(subject, email, role, "access", accessTTL())
}

// NewRefreshToken issues a long-lived token accepted only by the refresh
// endpoint.
func NewRefreshToken(subject, email, role string) (string, error) {
	return newToken(subject, email, role, "refresh", 7*24*time.Hour)
}

func newToken(subject, email, role, use string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		Use:   use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey())
}

// ParseAccessToken validates a bearer token and returns its claims.
func ParseAccessToken(tokenString string) (*Claims, error) {
	return parse(tokenString, "access")
}

// ParseRefreshToken validates a refresh token and returns its claims.
func ParseRefreshToken(tokenString string) (*Claims, error) {
	return parse(tokenString, "refresh")
}

func parse(tokenString, use string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return signingKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Use != use {
		return nil, ErrWrongUse
	}
	return claims, nil
}
