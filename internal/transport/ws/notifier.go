package ws

import (
	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
)

// HubNotifier implements service.Notifier by broadcasting through the hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyNewTweet(tweet *domain.TweetView) {
	n.publish(EventTypeTweetNew, tweet)
}

func (n *HubNotifier) NotifyLikeToggled(tweetID uuid.UUID, username string, liked bool) {
	n.publish(EventTypeTweetLiked, TweetLikedPayload{TweetID: tweetID, Username: username, Liked: liked})
}

func (n *HubNotifier) NotifyDeletedTweet(tweetID uuid.UUID) {
	n.publish(EventTypeTweetDeleted, TweetDeletedPayload{TweetID: tweetID})
}

func (n *HubNotifier) publish(eventType string, payload any) {
	evt, err := NewEvent(eventType, payload)
	if err != nil {
		n.hub.log.Error().Err(err).Str("type", eventType).Msg("build event")
		return
	}
	n.hub.Broadcast(evt)
}
