// internal/app/store/images/imagestore.go
package imagestore

import (
	"context"
	"errors"

	"github.com/dalemusser/pooldash/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("image not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("profileimages")}
}

func (s *Store) GetByEmail(ctx context.Context, email models.Email) (models.ProfileImage, error) {
	var img models.ProfileImage
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&img); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ProfileImage{}, ErrNotFound
		}
		return models.ProfileImage{}, err
	}
	return img, nil
}

// Put stores the image for email, replacing any previous one.
func (s *Store) Put(ctx context.Context, email models.Email, base64Data, contentType string) (models.ProfileImage, error) {
	var img models.ProfileImage
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"imageData": base64Data, "contentType": contentType}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&img)
	if err != nil {
		return models.ProfileImage{}, err
	}
	return img, nil
}
