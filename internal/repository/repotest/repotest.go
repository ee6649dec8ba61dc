// Package repotest holds the behaviour every repository backend must share.
// Backends call Run against a freshly created, empty store.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository"
)

// Run exercises users and tweets. Subtests share state and run in order.
func Run(t *testing.T, users repository.UserRepository, tweets repository.TweetRepository) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	ada := newUser("Ada", base)
	bob := newUser("bob", base)
	carol := newUser("carol", base)

	t.Run("users", func(t *testing.T) {
		for _, u := range []*domain.User{ada, bob, carol} {
			require.NoError(t, users.Create(ctx, u))
		}

		found, err := users.GetByUsername(ctx, "ADA")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, ada.ID, found.ID)
		assert.Equal(t, "Ada", found.Username)
		assert.Equal(t, ada.PasswordHash, found.PasswordHash)
		assert.True(t, found.CanBookmark)

		found, err = users.GetByUsername(ctx, "Ad")
		require.NoError(t, err)
		assert.Nil(t, found)

		found, err = users.GetByToken(ctx, bob.Token)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, bob.ID, found.ID)

		found, err = users.GetByToken(ctx, "unknown")
		require.NoError(t, err)
		assert.Nil(t, found)

		dup := newUser("aDa", base)
		assert.ErrorIs(t, users.Create(ctx, dup), repository.ErrDuplicate)
	})

	first := newTweet(ada, "I love my #CAT", base.Add(time.Minute))
	second := newTweet(bob, "cat with no hash", base.Add(2*time.Minute))
	third := newTweet(carol, "see #category and #abc", base.Add(3*time.Minute))

	t.Run("create and get", func(t *testing.T) {
		for _, tw := range []*domain.Tweet{first, second, third} {
			require.NoError(t, tweets.Create(ctx, tw))
		}

		got, err := tweets.GetByID(ctx, first.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, ada.ID, got.AuthorID)
		assert.Equal(t, first.Content, got.Content)
		assert.Empty(t, got.Likes)

		got, err = tweets.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("likes", func(t *testing.T) {
		require.NoError(t, tweets.AddLike(ctx, first.ID, bob.ID))
		require.NoError(t, tweets.AddLike(ctx, first.ID, bob.ID))
		require.NoError(t, tweets.AddLike(ctx, first.ID, carol.ID))

		got, err := tweets.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{bob.ID, carol.ID}, got.Likes)

		require.NoError(t, tweets.RemoveLike(ctx, first.ID, bob.ID))
		require.NoError(t, tweets.RemoveLike(ctx, first.ID, ada.ID))

		got, err = tweets.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{carol.ID}, got.Likes)
	})

	t.Run("list populated newest first", func(t *testing.T) {
		list, err := tweets.ListWithAuthorAndLikes(ctx, repository.TweetFilter{})
		require.NoError(t, err)
		require.Len(t, list, 3)

		assert.Equal(t, []uuid.UUID{third.ID, second.ID, first.ID}, ids(list))
		assert.Equal(t, domain.Author{ID: ada.ID, Username: "Ada", FirstName: ada.FirstName}, list[2].Author)
		assert.Equal(t, []domain.Liker{{ID: carol.ID, Username: "carol"}}, list[2].Likes)
		assert.Empty(t, list[0].Likes)
	})

	t.Run("hashtag filter", func(t *testing.T) {
		list, err := tweets.ListWithAuthorAndLikes(ctx, repository.TweetFilter{Hashtag: "cat"})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{third.ID, first.ID}, ids(list))

		list, err = tweets.ListWithAuthorAndLikes(ctx, repository.TweetFilter{Hashtag: "a.c"})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("hashtag contents oldest first", func(t *testing.T) {
		contents, err := tweets.ListHashtagContents(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{first.Content, third.Content}, contents)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, tweets.Delete(ctx, second.ID))

		got, err := tweets.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		// Liking a deleted tweet is a no-op.
		require.NoError(t, tweets.AddLike(ctx, second.ID, ada.ID))

		list, err := tweets.ListWithAuthorAndLikes(ctx, repository.TweetFilter{})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{third.ID, first.ID}, ids(list))
	})
}

func newUser(username string, at time.Time) *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		FirstName:    "First " + username,
		Username:     username,
		PasswordHash: "hash-" + username,
		Token:        uuid.NewString(),
		CanBookmark:  true,
		CreatedAt:    at,
	}
}

func newTweet(author *domain.User, content string, at time.Time) *domain.Tweet {
	return &domain.Tweet{
		ID:        uuid.New(),
		AuthorID:  author.ID,
		Content:   content,
		Likes:     []uuid.UUID{},
		CreatedAt: at,
	}
}

func ids(list []domain.TweetView) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(list))
	for _, tv := range list {
		out = append(out, tv.ID)
	}
	return out
}
