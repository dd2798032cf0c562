package models

import "time"

// Review represents a restaurant review written by a user
type Review struct {
	ID         int64     `json:"-"`          // Internal primary key
	UUID       string    `json:"id"`         // Public-facing identifier
	Restaurant string    `json:"restaurant"` // Reviewed restaurant
	Content    string    `json:"content"`    // Review body
	Rating     int       `json:"rating"`     // Score between 0 and 10
	CreatedAt  time.Time `json:"created_at"` // Creation timestamp
	UpdatedAt  time.Time `json:"updated_at"` // Last update timestamp

	Reviewer *User `json:"reviewer"` // Author of the review
}
