// internal/app/store/initialslots/initialslotstore.go
package initialslotstore

import (
	"context"
	"errors"

	"github.com/dalemusser/pooldash/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("initial slot not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("initialslots")}
}

func (s *Store) List(ctx context.Context) ([]models.InitialSlot, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.InitialSlot{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByEmail(ctx context.Context, email models.Email) (models.InitialSlot, error) {
	var sl models.InitialSlot
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&sl); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.InitialSlot{}, ErrNotFound
		}
		return models.InitialSlot{}, err
	}
	return sl, nil
}

func (s *Store) Create(ctx context.Context, sl models.InitialSlot) (models.InitialSlot, error) {
	sl.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, sl); err != nil {
		return models.InitialSlot{}, err
	}
	return sl, nil
}

// UpdateCounters writes the counters present in p and returns the result.
func (s *Store) UpdateCounters(ctx context.Context, email models.Email, p models.CountersPatch) (models.InitialSlot, error) {
	if p.Empty() {
		return s.GetByEmail(ctx, email)
	}

	var sl models.InitialSlot
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$set": p.SetFields("AllProducts")},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&sl)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.InitialSlot{}, ErrNotFound
	}
	if err != nil {
		return models.InitialSlot{}, err
	}
	return sl, nil
}
