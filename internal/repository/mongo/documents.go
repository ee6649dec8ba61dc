package mongo

import (
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/chirp/internal/domain"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection  = "users"
	tweetsCollection = "tweets"
)

// usernameCollation compares usernames case-insensitively; the unique index
// on users.username uses the same collation so lookups can use it.
var usernameCollation = &options.Collation{Locale: "en", Strength: 2}

// Ids are stored as canonical UUID strings.
type userDoc struct {
	ID          string    `bson:"_id"`
	FirstName   string    `bson:"firstName"`
	Username    string    `bson:"username"`
	Password    string    `bson:"password"`
	Token       string    `bson:"token"`
	CanBookmark bool      `bson:"canBookmark"`
	CreatedAt   time.Time `bson:"createdAt"`
}

type tweetDoc struct {
	ID        string    `bson:"_id"`
	Author    string    `bson:"author"`
	Content   string    `bson:"content"`
	Likes     []string  `bson:"likes"`
	CreatedAt time.Time `bson:"createdAt"`
}

func newUserDoc(u *domain.User) userDoc {
	return userDoc{
		ID:          u.ID.String(),
		FirstName:   u.FirstName,
		Username:    u.Username,
		Password:    u.PasswordHash,
		Token:       u.Token,
		CanBookmark: u.CanBookmark,
		CreatedAt:   u.CreatedAt,
	}
}

func (d userDoc) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:           id,
		FirstName:    d.FirstName,
		Username:     d.Username,
		PasswordHash: d.Password,
		Token:        d.Token,
		CanBookmark:  d.CanBookmark,
		CreatedAt:    d.CreatedAt,
	}, nil
}

func newTweetDoc(t *domain.Tweet) tweetDoc {
	likes := make([]string, 0, len(t.Likes))
	for _, id := range t.Likes {
		likes = append(likes, id.String())
	}
	return tweetDoc{
		ID:        t.ID.String(),
		Author:    t.AuthorID.String(),
		Content:   t.Content,
		Likes:     likes,
		CreatedAt: t.CreatedAt,
	}
}

func (d tweetDoc) toDomain() (*domain.Tweet, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	author, err := uuid.Parse(d.Author)
	if err != nil {
		return nil, err
	}
	likes := make([]uuid.UUID, 0, len(d.Likes))
	for _, raw := range d.Likes {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		likes = append(likes, userID)
	}
	return &domain.Tweet{
		ID:        id,
		AuthorID:  author,
		Content:   d.Content,
		Likes:     likes,
		CreatedAt: d.CreatedAt,
	}, nil
}
