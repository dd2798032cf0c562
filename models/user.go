package models

import "time"

// User represents a member of the platform as returned by searches
type User struct {
	ID              int64     `json:"-"`                 // Internal primary key
	UUID            string    `json:"id"`                // Public-facing identifier
	Username        string    `json:"username"`          // Unique handle
	ProfileString   *string   `json:"profile_string"`    // Optional bio
	ProfileImageURL *string   `json:"profile_image_url"` // Optional avatar location
	Level           int       `json:"level"`             // Activity level
	CreatedAt       time.Time `json:"created_at"`        // Creation timestamp
	UpdatedAt       time.Time `json:"updated_at"`        // Last update timestamp
}
