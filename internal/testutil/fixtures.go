package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/pooldash/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert into %s: %v", coll, err)
	}
}

// CreateUser inserts a user with every required field filled in.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	u := models.User{
		ID:             primitive.NewObjectID(),
		FullName:       fullName,
		Email:          models.NewEmail(email),
		Number:         9800000000,
		PoolForCreator: "Pool A",
		Organization:   "Test Org",
		Designation:    "Coach",
		State:          "MH",
		City:           "Pune",
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateAssignUser inserts a roster entry owned by addedBy.
func (f *Fixtures) CreateAssignUser(ctx context.Context, name, email, addedBy string) models.AssignUser {
	f.t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)
	au := models.AssignUser{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Email:      models.NewEmail(email),
		Group:      "Team A",
		Skills:     []string{"Negotiation"},
		ActiveUser: true,
		WIP:        []string{models.WIPInProgress},
		AddedBy:    models.NewEmail(addedBy),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "assignusers", au)
	return au
}

// CreateInitialSlot inserts remaining inventory for email.
func (f *Fixtures) CreateInitialSlot(ctx context.Context, email string, c models.Counters) models.InitialSlot {
	f.t.Helper()
	s := models.InitialSlot{ID: primitive.NewObjectID(), Email: models.NewEmail(email), AllProducts: c}
	f.insert(ctx, "initialslots", s)
	return s
}

// CreateSlot inserts a purchased slot for email.
func (f *Fixtures) CreateSlot(ctx context.Context, email string, c models.Counters, status models.PaymentStatus, total float64) models.Slot {
	f.t.Helper()
	s := models.Slot{
		ID:          primitive.NewObjectID(),
		Email:       models.NewEmail(email),
		AllProducts: models.SlotProducts{Counters: c, PaymentStatus: status},
		TotalAmount: total,
	}
	f.insert(ctx, "slots", s)
	return s
}

// CreateGroup inserts a group document.
func (f *Fixtures) CreateGroup(ctx context.Context, email string, names ...string) models.Group {
	f.t.Helper()
	g := models.Group{ID: primitive.NewObjectID(), Email: models.NewEmail(email), GroupNames: names}
	f.insert(ctx, "groups", g)
	return g
}

// CreateOrder inserts an order with the given processor id.
func (f *Fixtures) CreateOrder(ctx context.Context, orderID string, amount float64) models.Order {
	f.t.Helper()
	o := models.Order{
		ID:        primitive.NewObjectID(),
		OrderID:   orderID,
		Currency:  "INR",
		Amount:    amount,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	f.insert(ctx, "orders", o)
	return o
}
