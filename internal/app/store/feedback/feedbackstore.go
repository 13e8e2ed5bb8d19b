// internal/app/store/feedback/feedbackstore.go
package feedbackstore

import (
	"context"

	"github.com/dalemusser/pooldash/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("feedbacks")}
}

func (s *Store) Create(ctx context.Context, f models.Feedback) (models.Feedback, error) {
	f.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.Feedback{}, err
	}
	return f, nil
}

// ListByEmail returns a user's answers, oldest first.
func (s *Store) ListByEmail(ctx context.Context, email models.Email) ([]models.Feedback, error) {
	cur, err := s.c.Find(ctx, bson.M{"userEmail": email}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Feedback
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
