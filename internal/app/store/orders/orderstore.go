// internal/app/store/orders/orderstore.go
package orderstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/pooldash/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("order not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("orders")}
}

func (s *Store) Create(ctx context.Context, o models.Order) (models.Order, error) {
	o.ID = primitive.NewObjectID()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, o); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (s *Store) GetByOrderID(ctx context.Context, orderID string) (models.Order, error) {
	var o models.Order
	if err := s.c.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}
	return o, nil
}

func (s *Store) SetPaymentStatus(ctx context.Context, orderID, status string) (models.Order, error) {
	var o models.Order
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"order_id": orderID},
		bson.M{"$set": bson.M{"paymentStatus": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return o, nil
}
