package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole identifies which account collection a session belongs to.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleStaff UserRole = "STAFF"
)

// SignInResponse returns the issued access token.
type SignInResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	Role        UserRole  `json:"role"`
	Name        string    `json:"name"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	Name string   `json:"name"`
	Role UserRole `json:"role"`
	jwt.RegisteredClaims
}
