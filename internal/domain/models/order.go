// internal/domain/models/order.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order records a payment-gateway order. Amount is in major currency units;
// the gateway itself works in minor units.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrderID       string             `bson:"order_id" json:"order_id"`
	Currency      string             `bson:"currency" json:"currency"`
	Amount        float64            `bson:"amount" json:"amount"`
	PaymentStatus string             `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
