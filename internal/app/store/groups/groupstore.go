// internal/app/store/groups/groupstore.go
package groupstore

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
	ErrNotFound       = errors.New("group not found")
	ErrDuplicateEmail = errors.New("a group document already exists for this email")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

func (s *Store) GetByEmail(ctx context.Context, email models.Email) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Group{}, ErrNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

// Exists reports whether email already has exactly this list of names, in
// this order. An empty list matches a document with no names.
func (s *Store) Exists(ctx context.Context, email models.Email, names []string) (bool, error) {
	filter := bson.M{"email": email}
	if len(names) == 0 {
		filter["groupname"] = bson.M{"$exists": false}
	} else {
		filter["groupname"] = names
	}
	err := s.c.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return err == nil, err
}

func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	g.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateEmail
		}
		return models.Group{}, err
	}
	return g, nil
}

// SetNames replaces the group names for email. An empty list removes the
// field instead of storing an empty array.
func (s *Store) SetNames(ctx context.Context, email models.Email, names []string) (models.Group, error) {
	update := bson.M{"$set": bson.M{"groupname": names}}
	if len(names) == 0 {
		update = bson.M{"$unset": bson.M{"groupname": ""}}
	}

	var g models.Group
	err := s.c.FindOneAndUpdate(ctx, bson.M{"email": email}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Group{}, ErrNotFound
	}
	if err != nil {
		return models.Group{}, err
	}
	return g, nil
}
