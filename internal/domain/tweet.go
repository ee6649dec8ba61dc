package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tweet is the stored form: author and likes are user references.
type Tweet struct {
	ID        uuid.UUID   `json:"_id"`
	AuthorID  uuid.UUID   `json:"author"`
	Content   string      `json:"content"`
	Likes     []uuid.UUID `json:"likes"`
	CreatedAt time.Time   `json:"createdAt"`
}

// LikedBy reports whether userID is present in the tweet's likes.
func (t *Tweet) LikedBy(userID uuid.UUID) bool {
	for _, id := range t.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// TweetView is a tweet with its author and likes populated.
type TweetView struct {
	ID        uuid.UUID `json:"_id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	Likes     []Liker   `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

type Trend struct {
	Hashtag string `json:"hashtag"`
	Count   int    `json:"count"`
}
