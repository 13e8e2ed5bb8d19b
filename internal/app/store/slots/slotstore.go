// internal/app/store/slots/slotstore.go
package slotstore

import (
	"context"
	"errors"

	"github.com/dalemusser/pooldash/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("slot not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("slots")}
}

// Patch lists the fields an update writes. Nil pointers and counters absent
// from Counters are left as stored.
type Patch struct {
	Counters      models.CountersPatch
	PaymentStatus *models.PaymentStatus
	TotalAmount   *float64
}

func (p Patch) set() bson.M {
	set := bson.M{}
	for k, v := range p.Counters.SetFields("AllProducts") {
		set[k] = v
	}
	if p.PaymentStatus != nil {
		set["AllProducts.paymentStatus"] = *p.PaymentStatus
	}
	if p.TotalAmount != nil {
		set["TotalAmount"] = *p.TotalAmount
	}
	return set
}

func (s *Store) List(ctx context.Context) ([]models.Slot, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Slot{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByEmail(ctx context.Context, email models.Email) (models.Slot, error) {
	var sl models.Slot
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&sl); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Slot{}, ErrNotFound
		}
		return models.Slot{}, err
	}
	return sl, nil
}

// Create inserts sl. A missing payment status defaults to Pending.
func (s *Store) Create(ctx context.Context, sl models.Slot) (models.Slot, error) {
	sl.ID = primitive.NewObjectID()
	if sl.AllProducts.PaymentStatus == "" {
		sl.AllProducts.PaymentStatus = models.PaymentPending
	}
	if _, err := s.c.InsertOne(ctx, sl); err != nil {
		return models.Slot{}, err
	}
	return sl, nil
}

// Update applies p to the slot for email and returns the result.
func (s *Store) Update(ctx context.Context, email models.Email, p Patch) (models.Slot, error) {
	set := p.set()
	if len(set) == 0 {
		return s.GetByEmail(ctx, email)
	}

	var sl models.Slot
	err := s.c.FindOneAndUpdate(ctx, bson.M{"email": email}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&sl)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Slot{}, ErrNotFound
	}
	if err != nil {
		return models.Slot{}, err
	}
	return sl, nil
}
