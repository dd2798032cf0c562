package models

import "time"

// Comment represents a comment left on a review
type Comment struct {
	ID         int64     `json:"-"`          // Internal primary key
	UUID       string    `json:"id"`         // Public-facing identifier
	Content    string    `json:"content"`    // Comment body
	ReviewUUID string    `json:"review_id"`  // Review the comment belongs to
	CreatedAt  time.Time `json:"created_at"` // Creation timestamp
	UpdatedAt  time.Time `json:"updated_at"` // Last update timestamp

	Author *User `json:"author"` // Author of the comment
}
