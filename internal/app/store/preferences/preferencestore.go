// internal/app/store/preferences/preferencestore.go
package preferencestore

import (
	"context"
	"errors"

	"github.com/dalemusser/pooldash/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("preferences not found")

// Flags are the preference keys a caller may write.
var Flags = []string{
	"totalInactive",
	"totalChatting",
	"totalFinishedGame",
	"yesToLevelNotification",
	"yesToProductUpdate",
	"yesToSubscribeNewsletter",
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("userpreferences")}
}

func (s *Store) GetByEmail(ctx context.Context, email models.Email) (models.Preferences, error) {
	var p models.Preferences
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Preferences{}, ErrNotFound
		}
		return models.Preferences{}, err
	}
	return p, nil
}

// Upsert writes flags for email, creating the document when it does not
// exist. Keys must come from Flags.
func (s *Store) Upsert(ctx context.Context, email models.Email, flags map[string]bool) (models.Preferences, error) {
	set := bson.M{}
	for k, v := range flags {
		set[k] = v
	}
	// The upsert seeds email from the filter.
	update := bson.M{"$set": set}
	if len(set) == 0 {
		update = bson.M{"$setOnInsert": bson.M{"email": email}}
	}

	var p models.Preferences
	err := s.c.FindOneAndUpdate(ctx, bson.M{"email": email}, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return models.Preferences{}, err
	}
	return p, nil
}
