// internal/app/store/assignusers/assignuserstore.go
package assignuserstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/pooldash/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDuplicateEmail = errors.New("an assigned user with this email already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("assignusers")}
}

// ExistsByEmail reports whether a roster entry with this email exists, under
// any owner.
func (s *Store) ExistsByEmail(ctx context.Context, email models.Email) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"auEmail": email},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts au and stamps its ID and timestamps.
func (s *Store) Create(ctx context.Context, au models.AssignUser) (models.AssignUser, error) {
	now := time.Now().UTC()
	au.ID = primitive.NewObjectID()
	au.CreatedAt = now
	au.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, au); err != nil {
		if wafflemongo.IsDup(err) {
			return models.AssignUser{}, ErrDuplicateEmail
		}
		return models.AssignUser{}, err
	}
	return au, nil
}

// ListByOwner returns every roster entry added by owner, oldest first.
func (s *Store) ListByOwner(ctx context.Context, owner models.Email) ([]models.AssignUser, error) {
	cur, err := s.c.Find(ctx, bson.M{"addedBy": owner},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.AssignUser
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
