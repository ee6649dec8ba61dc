package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository"
)

type TweetRepo struct {
	pool *pgxpool.Pool
}

func NewTweetRepo(pool *pgxpool.Pool) *TweetRepo {
	return &TweetRepo{pool: pool}
}

func (r *TweetRepo) Create(ctx context.Context, tweet *domain.Tweet) error {
	query := `
		INSERT INTO tweets (id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, tweet.ID, tweet.AuthorID, tweet.Content, tweet.CreatedAt)
	return err
}

func (r *TweetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	var t domain.Tweet
	err := r.pool.QueryRow(ctx,
		`SELECT id, author_id, content, created_at FROM tweets WHERE id = $1`, id,
	).Scan(&t.ID, &t.AuthorID, &t.Content, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT user_id FROM tweet_likes WHERE tweet_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	t.Likes = []uuid.UUID{}
	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		t.Likes = append(t.Likes, userID)
	}

	return &t, rows.Err()
}

func (r *TweetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	return err
}

// AddLike is a no-op when the like exists or the tweet has been deleted
// concurrently.
func (r *TweetRepo) AddLike(ctx context.Context, tweetID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tweet_likes (tweet_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		tweetID, userID)
	if isPgError(err, foreignKeyViolation) {
		return nil
	}
	return err
}

func (r *TweetRepo) RemoveLike(ctx context.Context, tweetID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM tweet_likes WHERE tweet_id = $1 AND user_id = $2`, tweetID, userID)
	return err
}

func (r *TweetRepo) ListWithAuthorAndLikes(ctx context.Context, filter repository.TweetFilter) ([]domain.TweetView, error) {
	query := `
		SELECT t.id, t.content, t.created_at, u.id, u.username, u.first_name
		FROM tweets t
		JOIN users u ON t.author_id = u.id`
	var args []any
	if filter.Hashtag != "" {
		query += ` WHERE strpos(lower(t.content), lower($1)) > 0`
		args = append(args, "#"+filter.Hashtag)
	}
	query += ` ORDER BY t.created_at DESC, t.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tweets := []domain.TweetView{}
	index := make(map[uuid.UUID]int)
	ids := []uuid.UUID{}
	for rows.Next() {
		var tv domain.TweetView
		if err := rows.Scan(
			&tv.ID, &tv.Content, &tv.CreatedAt,
			&tv.Author.ID, &tv.Author.Username, &tv.Author.FirstName,
		); err != nil {
			return nil, err
		}
		tv.Likes = []domain.Liker{}
		index[tv.ID] = len(tweets)
		ids = append(ids, tv.ID)
		tweets = append(tweets, tv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return tweets, nil
	}

	likeRows, err := r.pool.Query(ctx, `
		SELECT l.tweet_id, u.id, u.username
		FROM tweet_likes l
		JOIN users u ON l.user_id = u.id
		WHERE l.tweet_id = ANY($1)
		ORDER BY l.seq`, ids)
	if err != nil {
		return nil, err
	}
	defer likeRows.Close()

	for likeRows.Next() {
		var tweetID uuid.UUID
		var liker domain.Liker
		if err := likeRows.Scan(&tweetID, &liker.ID, &liker.Username); err != nil {
			return nil, err
		}
		if i, ok := index[tweetID]; ok {
			tweets[i].Likes = append(tweets[i].Likes, liker)
		}
	}

	return tweets, likeRows.Err()
}

func (r *TweetRepo) ListHashtagContents(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT content FROM tweets WHERE strpos(content, '#') > 0 ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}
