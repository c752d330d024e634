package dto

import "time"

// AccessRequest carries the shared admin access code.
type AccessRequest struct {
	AccessCode string `json:"accessCode"`
}

// AccessResponse returns the issued bearer token.
type AccessResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
