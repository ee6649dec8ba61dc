// Package memory is an in-process store used by tests and by
// STORE_DRIVER=memory for local runs. Data does not survive a restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository"
)

// Store holds users and tweets behind one lock so the tweet repository can
// populate authors and likes.
type Store struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]domain.User
	tweets map[uuid.UUID]domain.Tweet
	// order preserves insertion order for stable sorting of equal timestamps.
	order []uuid.UUID
}

func NewStore() *Store {
	return &Store{
		users:  make(map[uuid.UUID]domain.User),
		tweets: make(map[uuid.UUID]domain.Tweet),
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

func (s *Store) Tweets() *TweetRepo { return &TweetRepo{s: s} }

type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, user.Username) || u.Token == user.Token {
			return repository.ErrDuplicate
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return strings.EqualFold(u.Username, username) }), nil
}

func (r *UserRepo) GetByToken(_ context.Context, token string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Token == token }), nil
}

func (r *UserRepo) find(match func(domain.User) bool) *domain.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			found := u
			return &found
		}
	}
	return nil
}

type TweetRepo struct {
	s *Store
}

func (r *TweetRepo) Create(_ context.Context, tweet *domain.Tweet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t := *tweet
	t.Likes = append([]uuid.UUID{}, tweet.Likes...)
	r.s.tweets[t.ID] = t
	r.s.order = append(r.s.order, t.ID)
	return nil
}

func (r *TweetRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Tweet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tweets[id]
	if !ok {
		return nil, nil
	}
	t.Likes = append([]uuid.UUID{}, t.Likes...)
	return &t, nil
}

func (r *TweetRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tweets[id]; !ok {
		return nil
	}
	delete(r.s.tweets, id)
	for i, tid := range r.s.order {
		if tid == id {
			r.s.order = append(r.s.order[:i], r.s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *TweetRepo) AddLike(_ context.Context, tweetID, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tweets[tweetID]
	if !ok || t.LikedBy(userID) {
		return nil
	}
	t.Likes = append(append([]uuid.UUID{}, t.Likes...), userID)
	r.s.tweets[tweetID] = t
	return nil
}

func (r *TweetRepo) RemoveLike(_ context.Context, tweetID, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tweets[tweetID]
	if !ok {
		return nil
	}
	likes := make([]uuid.UUID, 0, len(t.Likes))
	for _, id := range t.Likes {
		if id != userID {
			likes = append(likes, id)
		}
	}
	t.Likes = likes
	r.s.tweets[tweetID] = t
	return nil
}

func (r *TweetRepo) ListWithAuthorAndLikes(_ context.Context, filter repository.TweetFilter) ([]domain.TweetView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	needle := strings.ToLower("#" + filter.Hashtag)
	tweets := []domain.TweetView{}
	for _, id := range r.s.order {
		t := r.s.tweets[id]
		if filter.Hashtag != "" && !strings.Contains(strings.ToLower(t.Content), needle) {
			continue
		}
		author, ok := r.s.users[t.AuthorID]
		if !ok {
			continue
		}
		tv := domain.TweetView{
			ID:        t.ID,
			Author:    domain.Author{ID: author.ID, Username: author.Username, FirstName: author.FirstName},
			Content:   t.Content,
			Likes:     []domain.Liker{},
			CreatedAt: t.CreatedAt,
		}
		for _, likeID := range t.Likes {
			if u, ok := r.s.users[likeID]; ok {
				tv.Likes = append(tv.Likes, domain.Liker{ID: u.ID, Username: u.Username})
			}
		}
		tweets = append(tweets, tv)
	}

	// Newest first; equal timestamps keep the most recently inserted first.
	for i, j := 0, len(tweets)-1; i < j; i, j = i+1, j-1 {
		tweets[i], tweets[j] = tweets[j], tweets[i]
	}
	sort.SliceStable(tweets, func(i, j int) bool {
		return tweets[i].CreatedAt.After(tweets[j].CreatedAt)
	})
	return tweets, nil
}

func (r *TweetRepo) ListHashtagContents(context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	type entry struct {
		content string
		at      int64
	}
	var entries []entry
	for _, id := range r.s.order {
		t := r.s.tweets[id]
		if strings.Contains(t.Content, "#") {
			entries = append(entries, entry{t.Content, t.CreatedAt.UnixNano()})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].at < entries[j].at })

	contents := make([]string, 0, len(entries))
	for _, e := range entries {
		contents = append(contents, e.content)
	}
	return contents, nil
}
