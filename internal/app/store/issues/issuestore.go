// internal/app/store/issues/issuestore.go
package issuestore

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
	return &Store{c: db.Collection("issues")}
}

func (s *Store) Create(ctx context.Context, is models.Issue) (models.Issue, error) {
	is.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, is); err != nil {
		return models.Issue{}, err
	}
	return is, nil
}

func (s *Store) ListByEmail(ctx context.Context, email models.Email) ([]models.Issue, error) {
	cur, err := s.c.Find(ctx, bson.M{"email": email}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Issue
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
