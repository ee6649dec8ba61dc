package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/hashtag"
	"github.com/vedran77/chirp/internal/metrics"
	"github.com/vedran77/chirp/internal/repository"
	"github.com/vedran77/chirp/pkg/validator"
)

// TokenResolver maps a bearer token to its user.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

// Notifier broadcasts real-time events to connected clients.
type Notifier interface {
	NotifyNewTweet(tweet *domain.TweetView)
	NotifyLikeToggled(tweetID uuid.UUID, username string, liked bool)
	NotifyDeletedTweet(tweetID uuid.UUID)
}

type TweetService struct {
	tweetRepo repository.TweetRepository
	users     TokenResolver
	notifier  Notifier
	now       func() time.Time
}

func NewTweetService(tweetRepo repository.TweetRepository, users TokenResolver) *TweetService {
	return &TweetService{
		tweetRepo: tweetRepo,
		users:     users,
		now:       time.Now,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *TweetService) SetNotifier(n Notifier) {
	s.notifier = n
}

type CreateTweetInput struct {
	Token   string `json:"token" validate:"required,notblank"`
	Content string `json:"content" validate:"required,notblank"`
}

// TweetActionInput identifies a tweet acted on by the token's owner.
type TweetActionInput struct {
	Token   string `json:"token" validate:"required,notblank"`
	TweetID string `json:"tweetId" validate:"required,notblank"`
}

func (s *TweetService) Create(ctx context.Context, input CreateTweetInput) (*domain.Tweet, error) {
	if validator.Struct(input).HasErrors() {
		return nil, ErrMissingFields
	}

	user, err := s.users.ResolveToken(ctx, input.Token)
	if err != nil {
		return nil, err
	}

	tweet := &domain.Tweet{
		ID:        uuid.New(),
		AuthorID:  user.ID,
		Content:   input.Content,
		Likes:     []uuid.UUID{},
		CreatedAt: s.now(),
	}

	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, fmt.Errorf("creating tweet: %w", err)
	}
	metrics.TweetsCreatedTotal.Inc()

	if s.notifier != nil {
		s.notifier.NotifyNewTweet(&domain.TweetView{
			ID:        tweet.ID,
			Author:    domain.Author{ID: user.ID, Username: user.Username, FirstName: user.FirstName},
			Content:   tweet.Content,
			Likes:     []domain.Liker{},
			CreatedAt: tweet.CreatedAt,
		})
	}

	return tweet, nil
}

// List returns every tweet, newest first, with author and likes populated.
func (s *TweetService) List(ctx context.Context, token string) ([]domain.TweetView, error) {
	if _, err := s.users.ResolveToken(ctx, token); err != nil {
		return nil, err
	}

	tweets, err := s.tweetRepo.ListWithAuthorAndLikes(ctx, repository.TweetFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing tweets: %w", err)
	}
	return tweets, nil
}

// Trends counts hashtags across all tweets.
func (s *TweetService) Trends(ctx context.Context, token string) ([]domain.Trend, error) {
	if _, err := s.users.ResolveToken(ctx, token); err != nil {
		return nil, err
	}

	contents, err := s.tweetRepo.ListHashtagContents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing hashtag tweets: %w", err)
	}
	return hashtag.Count(contents), nil
}

// SearchHashtag returns tweets containing "#"+query, ignoring case.
func (s *TweetService) SearchHashtag(ctx context.Context, token, query string) ([]domain.TweetView, error) {
	if _, err := s.users.ResolveToken(ctx, token); err != nil {
		return nil, err
	}

	tweets, err := s.tweetRepo.ListWithAuthorAndLikes(ctx, repository.TweetFilter{Hashtag: query})
	if err != nil {
		return nil, fmt.Errorf("searching tweets: %w", err)
	}
	return tweets, nil
}

// ToggleLike likes the tweet for the token's owner, or unlikes it if already
// liked. It reports whether the tweet is liked afterwards.
func (s *TweetService) ToggleLike(ctx context.Context, input TweetActionInput) (bool, error) {
	user, tweet, err := s.resolveAction(ctx, input)
	if err != nil {
		return false, err
	}

	liked := !tweet.LikedBy(user.ID)
	if liked {
		err = s.tweetRepo.AddLike(ctx, tweet.ID, user.ID)
	} else {
		err = s.tweetRepo.RemoveLike(ctx, tweet.ID, user.ID)
	}
	if err != nil {
		return false, fmt.Errorf("toggling like: %w", err)
	}

	action := "unlike"
	if liked {
		action = "like"
	}
	metrics.LikesToggledTotal.WithLabelValues(action).Inc()

	if s.notifier != nil {
		s.notifier.NotifyLikeToggled(tweet.ID, user.Username, liked)
	}
	return liked, nil
}

func (s *TweetService) Delete(ctx context.Context, input TweetActionInput) error {
	user, tweet, err := s.resolveAction(ctx, input)
	if err != nil {
		return err
	}
	if tweet.AuthorID != user.ID {
		return ErrNotTweetAuthor
	}

	if err := s.tweetRepo.Delete(ctx, tweet.ID); err != nil {
		return fmt.Errorf("deleting tweet: %w", err)
	}
	metrics.TweetsDeletedTotal.Inc()

	if s.notifier != nil {
		s.notifier.NotifyDeletedTweet(tweet.ID)
	}
	return nil
}

func (s *TweetService) resolveAction(ctx context.Context, input TweetActionInput) (*domain.User, *domain.Tweet, error) {
	if validator.Struct(input).HasErrors() {
		return nil, nil, ErrMissingFields
	}

	user, err := s.users.ResolveToken(ctx, input.Token)
	if err != nil {
		return nil, nil, err
	}

	id, err := uuid.Parse(input.TweetID)
	if err != nil {
		return nil, nil, ErrTweetNotFound
	}
	tweet, err := s.tweetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("loading tweet: %w", err)
	}
	if tweet == nil {
		return nil, nil, ErrTweetNotFound
	}
	return user, tweet, nil
}
