package models

import "github.com/golang-jwt/jwt/v5"

// LoginInput represents the admin login request body.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Claims defines the structure of the admin session JWT claims.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
