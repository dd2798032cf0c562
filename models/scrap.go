package models

import "time"

// Scrap is a review bookmarked by a user, with an optional note
type Scrap struct {
	ID          int64     `json:"-"`           // Internal primary key
	Description *string   `json:"description"` // Optional note left by the owner
	CreatedAt   time.Time `json:"created_at"`  // Creation timestamp

	Review *Review `json:"review"` // Scrapped review
}
