package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository/memory"
)

type fixture struct {
	store  *memory.Store
	auth   *AuthService
	tweets *TweetService
}

// newFixture wires services over a fresh memory store with a clock that
// advances one second per tweet so creation times are strictly increasing.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	auth := NewAuthService(store.Users(), 16, time.Minute)
	tweets := NewTweetService(store.Tweets(), auth)

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tweets.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	return &fixture{store: store, auth: auth, tweets: tweets}
}

func (f *fixture) signup(t *testing.T, username string) string {
	t.Helper()
	token, err := f.auth.Signup(context.Background(), SignupInput{
		FirstName: "First " + username,
		Username:  username,
		Password:  "secret-" + username,
	})
	require.NoError(t, err)
	return token
}

func (f *fixture) post(t *testing.T, token, content string) *domain.Tweet {
	t.Helper()
	tweet, err := f.tweets.Create(context.Background(), CreateTweetInput{Token: token, Content: content})
	require.NoError(t, err)
	return tweet
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type recordingNotifier struct {
	mu      sync.Mutex
	created []uuid.UUID
	likes   []bool
	deleted []uuid.UUID
}

func (n *recordingNotifier) NotifyNewTweet(tweet *domain.TweetView) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, tweet.ID)
}

func (n *recordingNotifier) NotifyLikeToggled(_ uuid.UUID, _ string, liked bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.likes = append(n.likes, liked)
}

func (n *recordingNotifier) NotifyDeletedTweet(tweetID uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.deleted = append(n.deleted, tweetID)
}
