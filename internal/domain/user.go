package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"_id"`
	FirstName    string    `json:"firstName"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Token        string    `json:"-"`
	CanBookmark  bool      `json:"canBookmark"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Author is the populated form of a tweet's author reference.
type Author struct {
	ID        uuid.UUID `json:"_id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
}

// Liker is the populated form of one entry in a tweet's likes.
type Liker struct {
	ID       uuid.UUID `json:"_id"`
	Username string    `json:"username"`
}
