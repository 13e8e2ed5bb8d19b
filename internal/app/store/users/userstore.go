// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"

	"github.com/dalemusser/pooldash/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("a user with this email already exists")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByEmail(ctx context.Context, email models.Email) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Update applies set (field path -> value) to the user and returns the
// updated document. An empty set only checks that the user exists.
func (s *Store) Update(ctx context.Context, email models.Email, set bson.M) (models.User, error) {
	if len(set) == 0 {
		return s.GetByEmail(ctx, email)
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.User{}, ErrNotFound
	case wafflemongo.IsDup(err):
		return models.User{}, ErrDuplicateEmail
	case err != nil:
		return models.User{}, err
	}
	return u, nil
}
