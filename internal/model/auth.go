package model

import "github.com/golang-jwt/jwt/v5"

// LandlordClaims are JWT claims for landlord sessions
type LandlordClaims struct {
	LandlordID string `json:"landlordId"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// RegisterRequest is the request body for landlord registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the request body for landlord login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful registration or login
type LoginResponse struct {
	Token      string `json:"token"`
	LandlordID string `json:"landlordId"`
	Name       string `json:"name"`
}
