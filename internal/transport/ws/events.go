package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Client → Server
const (
	EventTypePing = "ping"
)

// Server → Client
const (
	EventTypeTweetNew     = "tweet.new"
	EventTypeTweetLiked   = "tweet.liked"
	EventTypeTweetDeleted = "tweet.deleted"
	EventTypePong         = "pong"
	EventTypeError        = "error"
)

// Event is the envelope for every websocket message.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

type TweetLikedPayload struct {
	TweetID  uuid.UUID `json:"tweetId"`
	Username string    `json:"username"`
	Liked    bool      `json:"liked"`
}

type TweetDeletedPayload struct {
	TweetID uuid.UUID `json:"tweetId"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent builds a server event stamped with the current time.
func NewEvent(eventType string, payload any) (*Event, error) {
	evt := &Event{Type: eventType, Timestamp: time.Now().Unix()}
	if payload == nil {
		return evt, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	evt.Payload = data
	return evt, nil
}
