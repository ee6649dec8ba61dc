package mongo

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TweetRepo struct {
	tweets *mongo.Collection
	users  *mongo.Collection
}

func NewTweetRepo(db *mongo.Database) *TweetRepo {
	return &TweetRepo{
		tweets: db.Collection(tweetsCollection),
		users:  db.Collection(usersCollection),
	}
}

func (r *TweetRepo) Create(ctx context.Context, tweet *domain.Tweet) error {
	_, err := r.tweets.InsertOne(ctx, newTweetDoc(tweet))
	return err
}

func (r *TweetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	var doc tweetDoc
	err := r.tweets.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain()
}

func (r *TweetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.tweets.DeleteOne(ctx, bson.M{"_id": id.String()})
	return err
}

func (r *TweetRepo) AddLike(ctx context.Context, tweetID, userID uuid.UUID) error {
	_, err := r.tweets.UpdateByID(ctx, tweetID.String(),
		bson.M{"$addToSet": bson.M{"likes": userID.String()}})
	return err
}

func (r *TweetRepo) RemoveLike(ctx context.Context, tweetID, userID uuid.UUID) error {
	_, err := r.tweets.UpdateByID(ctx, tweetID.String(),
		bson.M{"$pull": bson.M{"likes": userID.String()}})
	return err
}

func (r *TweetRepo) ListWithAuthorAndLikes(ctx context.Context, filter repository.TweetFilter) ([]domain.TweetView, error) {
	query := bson.M{}
	if filter.Hashtag != "" {
		query["content"] = primitive.Regex{Pattern: regexp.QuoteMeta("#" + filter.Hashtag), Options: "i"}
	}

	cur, err := r.tweets.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []tweetDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	users, err := r.populate(ctx, docs)
	if err != nil {
		return nil, err
	}

	tweets := make([]domain.TweetView, 0, len(docs))
	for _, d := range docs {
		author, ok := users[d.Author]
		if !ok {
			continue
		}
		tv := domain.TweetView{
			Content:   d.Content,
			CreatedAt: d.CreatedAt,
			Likes:     []domain.Liker{},
		}
		if tv.ID, err = uuid.Parse(d.ID); err != nil {
			return nil, err
		}
		tv.Author = domain.Author{ID: author.id, Username: author.Username, FirstName: author.FirstName}
		for _, likeID := range d.Likes {
			if liker, ok := users[likeID]; ok {
				tv.Likes = append(tv.Likes, domain.Liker{ID: liker.id, Username: liker.Username})
			}
		}
		tweets = append(tweets, tv)
	}
	return tweets, nil
}

type populatedUser struct {
	ID        string `bson:"_id"`
	Username  string `bson:"username"`
	FirstName string `bson:"firstName"`
	id        uuid.UUID
}

// populate loads the author and likers of docs in one $in query, keyed by id.
func (r *TweetRepo) populate(ctx context.Context, docs []tweetDoc) (map[string]populatedUser, error) {
	seen := make(map[string]struct{})
	ids := []string{}
	add := func(id string) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, d := range docs {
		add(d.Author)
		for _, id := range d.Likes {
			add(id)
		}
	}

	users := make(map[string]populatedUser, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"username": 1, "firstName": 1}))
	if err != nil {
		return nil, err
	}
	var found []populatedUser
	if err := cur.All(ctx, &found); err != nil {
		return nil, err
	}
	for _, u := range found {
		if u.id, err = uuid.Parse(u.ID); err != nil {
			return nil, err
		}
		users[u.ID] = u
	}
	return users, nil
}

func (r *TweetRepo) ListHashtagContents(ctx context.Context) ([]string, error) {
	cur, err := r.tweets.Find(ctx,
		bson.M{"content": primitive.Regex{Pattern: "#"}},
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
			SetProjection(bson.M{"content": 1}))
	if err != nil {
		return nil, err
	}
	var docs []struct {
		Content string `bson:"content"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	contents := make([]string, 0, len(docs))
	for _, d := range docs {
		contents = append(contents, d.Content)
	}
	return contents, nil
}
