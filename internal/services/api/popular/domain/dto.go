// Package domain holds DTOs for popular query http and service contracts
package domain

import "time"

// PopularInput is bound from the query string
type PopularInput struct {
	Limit int `json:"limit,omitempty" query:"limit" validate:"omitempty,min=1,max=50" example:"5"`
}

// Query is one popular search with how often it ran in the window
type Query struct {
	Content string `json:"content" example:"is the"`
	Strict  bool   `json:"strict"`
	Count   int    `json:"count"   example:"12"`
}

// PopularResult lists popular searches; Fallback marks the configured defaults
type PopularResult struct {
	Since    time.Time `json:"since"`
	Fallback bool      `json:"fallback"`
	Queries  []Query   `json:"queries"`
}
