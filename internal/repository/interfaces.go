package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
)

// ErrDuplicate is returned by Create when a unique constraint (username or
// token) is violated.
var ErrDuplicate = errors.New("duplicate key")

// Lookups return (nil, nil) when no record matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// GetByUsername matches the whole username, ignoring case.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByToken(ctx context.Context, token string) (*domain.User, error)
}

// TweetFilter narrows ListWithAuthorAndLikes. The zero value matches every tweet.
type TweetFilter struct {
	// Hashtag, when set, keeps tweets whose content contains "#"+Hashtag,
	// compared case-insensitively as a literal substring.
	Hashtag string
}

type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddLike(ctx context.Context, tweetID, userID uuid.UUID) error
	RemoveLike(ctx context.Context, tweetID, userID uuid.UUID) error
	// ListWithAuthorAndLikes returns populated tweets, newest first.
	ListWithAuthorAndLikes(ctx context.Context, filter TweetFilter) ([]domain.TweetView, error)
	// ListHashtagContents returns the content of every tweet containing '#',
	// oldest first.
	ListHashtagContents(ctx context.Context) ([]string, error)
}

// Pinger reports store liveness for readiness probes.
type Pinger interface {
	Ping(ctx context.Context) error
}
