package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/chirp/internal/domain"
)

func TestCreateTweet(t *testing.T) {
	ctx := context.Background()

	t.Run("starts with no likes and the resolving user as author", func(t *testing.T) {
		f := newFixture(t)
		token := f.signup(t, "ada")
		user, err := f.auth.ResolveToken(ctx, token)
		require.NoError(t, err)

		tweet := f.post(t, token, "hello #world")

		assert.NotEqual(t, uuid.Nil, tweet.ID)
		assert.Equal(t, user.ID, tweet.AuthorID)
		assert.Empty(t, tweet.Likes)
		assert.NotNil(t, tweet.Likes)
		assert.False(t, tweet.CreatedAt.IsZero())
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.tweets.Create(ctx, CreateTweetInput{Token: "nope", Content: "hi"})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("missing content", func(t *testing.T) {
		f := newFixture(t)
		token := f.signup(t, "ada")

		_, err := f.tweets.Create(ctx, CreateTweetInput{Token: token, Content: " "})

		assert.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestListTweets(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada := f.signup(t, "ada")
	bob := f.signup(t, "bob")

	first := f.post(t, ada, "one")
	f.post(t, bob, "two")
	f.post(t, ada, "three")
	_, err := f.tweets.ToggleLike(ctx, TweetActionInput{Token: bob, TweetID: first.ID.String()})
	require.NoError(t, err)

	tweets, err := f.tweets.List(ctx, ada)
	require.NoError(t, err)
	require.Len(t, tweets, 3)

	assert.Equal(t, []string{"three", "two", "one"}, contents(tweets))
	for i := 1; i < len(tweets); i++ {
		assert.True(t, tweets[i-1].CreatedAt.After(tweets[i].CreatedAt))
	}

	last := tweets[2]
	assert.Equal(t, "ada", last.Author.Username)
	assert.Equal(t, "First ada", last.Author.FirstName)
	require.Len(t, last.Likes, 1)
	assert.Equal(t, "bob", last.Likes[0].Username)

	_, err = f.tweets.List(ctx, "bad-token")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTrends(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	token := f.signup(t, "ada")
	f.post(t, token, "#a #a")
	f.post(t, token, "no tags here")
	f.post(t, token, "#b #")

	trends, err := f.tweets.Trends(ctx, token)

	require.NoError(t, err)
	assert.Equal(t, []domain.Trend{{Hashtag: "#a", Count: 2}, {Hashtag: "#b", Count: 1}}, trends)

	_, err = f.tweets.Trends(ctx, "bad-token")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSearchHashtag(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	token := f.signup(t, "ada")
	f.post(t, token, "I love my #CAT")
	f.post(t, token, "cat without a hash")
	f.post(t, token, "see #category")
	f.post(t, token, "#dog")

	tweets, err := f.tweets.SearchHashtag(ctx, token, "cat")

	require.NoError(t, err)
	assert.Equal(t, []string{"see #category", "I love my #CAT"}, contents(tweets))
}

func TestSearchHashtag_QueryIsLiteral(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	token := f.signup(t, "ada")
	f.post(t, token, "#abc")

	tweets, err := f.tweets.SearchHashtag(ctx, token, "a.c")

	require.NoError(t, err)
	assert.Empty(t, tweets)
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("double toggle restores the previous likes", func(t *testing.T) {
		f := newFixture(t)
		ada := f.signup(t, "ada")
		bob := f.signup(t, "bob")
		tweet := f.post(t, ada, "hi")
		notifier := &recordingNotifier{}
		f.tweets.SetNotifier(notifier)
		in := TweetActionInput{Token: bob, TweetID: tweet.ID.String()}

		liked, err := f.tweets.ToggleLike(ctx, in)
		require.NoError(t, err)
		assert.True(t, liked)

		stored, err := f.store.Tweets().GetByID(ctx, tweet.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Likes, 1)

		liked, err = f.tweets.ToggleLike(ctx, in)
		require.NoError(t, err)
		assert.False(t, liked)

		stored, err = f.store.Tweets().GetByID(ctx, tweet.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.Likes)
		assert.Equal(t, []bool{true, false}, notifier.likes)
	})

	t.Run("unknown or malformed tweet", func(t *testing.T) {
		f := newFixture(t)
		ada := f.signup(t, "ada")

		for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
			_, err := f.tweets.ToggleLike(ctx, TweetActionInput{Token: ada, TweetID: id})
			assert.ErrorIs(t, err, ErrTweetNotFound)
		}
	})

	t.Run("unknown user is checked before the tweet", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.tweets.ToggleLike(ctx, TweetActionInput{Token: "nope", TweetID: uuid.NewString()})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.tweets.ToggleLike(ctx, TweetActionInput{Token: "x"})

		assert.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestDeleteTweet(t *testing.T) {
	ctx := context.Background()

	t.Run("non-author is forbidden and the tweet remains", func(t *testing.T) {
		f := newFixture(t)
		ada := f.signup(t, "ada")
		bob := f.signup(t, "bob")
		tweet := f.post(t, ada, "mine")

		err := f.tweets.Delete(ctx, TweetActionInput{Token: bob, TweetID: tweet.ID.String()})

		assert.ErrorIs(t, err, ErrNotTweetAuthor)
		stored, err := f.store.Tweets().GetByID(ctx, tweet.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored)
	})

	t.Run("author deletes", func(t *testing.T) {
		f := newFixture(t)
		ada := f.signup(t, "ada")
		tweet := f.post(t, ada, "mine")
		notifier := &recordingNotifier{}
		f.tweets.SetNotifier(notifier)

		err := f.tweets.Delete(ctx, TweetActionInput{Token: ada, TweetID: tweet.ID.String()})

		require.NoError(t, err)
		stored, err := f.store.Tweets().GetByID(ctx, tweet.ID)
		require.NoError(t, err)
		assert.Nil(t, stored)
		assert.Equal(t, []uuid.UUID{tweet.ID}, notifier.deleted)

		err = f.tweets.Delete(ctx, TweetActionInput{Token: ada, TweetID: tweet.ID.String()})
		assert.ErrorIs(t, err, ErrTweetNotFound)
	})
}

func contents(tweets []domain.TweetView) []string {
	out := make([]string, 0, len(tweets))
	for _, tw := range tweets {
		out = append(out, tw.Content)
	}
	return out
}
