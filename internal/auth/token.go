// Package auth issues and verifies the bearer tokens that identify runners.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const issuer = "social-runner"

var (
	ErrEmptySecret  = errors.New("JWT secret cannot be empty")
	ErrInvalidToken = errors.New("invalid token or missing claims")
)

// Claims defines the structure of the JWT payload.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for userID valid for expiration.
func GenerateToken(secret string, userID primitive.ObjectID, expiration time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	if expiration <= 0 {
		expiration = time.Hour
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates tokenString and returns the runner's ID.
func ParseToken(secret, tokenString string) (primitive.ObjectID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	if !token.Valid || claims.UserID == "" {
		return primitive.NilObjectID, ErrInvalidToken
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed uid", ErrInvalidToken)
	}
	return userID, nil
}
