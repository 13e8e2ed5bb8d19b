// internal/domain/models/slot.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// PaymentStatus is the purchase state recorded on a Slot.
type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "Success"
	PaymentFailed  PaymentStatus = "Failed"
	PaymentPending PaymentStatus = "Pending"
	PaymentReset   PaymentStatus = "Reset"
)

// ParsePaymentStatus accepts exactly the four literal statuses.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentSuccess, PaymentFailed, PaymentPending, PaymentReset:
		return PaymentStatus(s), true
	}
	return "", false
}

// SlotProducts is the AllProducts sub-document of a Slot: the counters plus
// the payment status of the purchase that funded them.
type SlotProducts struct {
	Counters      `bson:",inline"`
	PaymentStatus PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
}

// Slot is a user's purchased inventory.
type Slot struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email       Email              `bson:"email" json:"email"`
	AllProducts SlotProducts       `bson:"AllProducts" json:"AllProducts"`
	TotalAmount float64            `bson:"TotalAmount" json:"TotalAmount"`
}

// InitialSlot is the remaining, assignable inventory for a user. The assign
// workflow decrements it as people are added to the roster.
type InitialSlot struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email       Email              `bson:"email" json:"email"`
	AllProducts Counters           `bson:"AllProducts" json:"AllProducts"`
}
