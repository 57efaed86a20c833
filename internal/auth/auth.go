package auth

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	errors "github.com/opencivic/civic-reporter/internal"
)

// Claims are the JWT claims carried by an admin session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates admin session tokens.
type TokenGenerator interface {
	GenerateAccessToken(email string) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// JWTTokenGenerator signs HS256 tokens with a single configured secret.
// There is exactly one admin identity, so no refresh-token store exists:
// an expired token means signing in again.
type JWTTokenGenerator struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTTokenGenerator{
		Secret: []byte(secret),
		TTL:    ttl,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(email string) (string, time.Time, error) {
	expiresAt := time.Now().Add(j.TTL)

	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.ErrInvalidToken
	}

	return claims, nil
}
