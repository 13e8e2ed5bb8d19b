// internal/domain/models/user.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a dashboard account holder: the person who buys slots and assigns
// players. Email is unique across users.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName       string             `bson:"fullName" json:"fullName"`
	Email          Email              `bson:"email" json:"email"`
	Number         int64              `bson:"number" json:"number"`
	PoolForCreator string             `bson:"poolForCreator" json:"poolForCreator"`
	Organization   string             `bson:"organization" json:"organization"`
	Designation    string             `bson:"designation" json:"designation"`
	State          string             `bson:"state" json:"state"`
	City           string             `bson:"city" json:"city"`
	LinkedInURL    string             `bson:"linkdeInURL,omitempty" json:"linkdeInURL,omitempty"`
	Status         []string           `bson:"status,omitempty" json:"status,omitempty"`

	TotalPurchasedUsers  *int     `bson:"totalPurchasedUsers,omitempty" json:"totalPurchasedUsers,omitempty"`
	SlotsAvailable       *int     `bson:"slotsAvailable,omitempty" json:"slotsAvailable,omitempty"`
	TotalAssignedPlayers *int     `bson:"totalAssignedPlayers,omitempty" json:"totalAssignedPlayers,omitempty"`
	Group                []string `bson:"group,omitempty" json:"group,omitempty"`
	TotalAmountPaid      *float64 `bson:"totalAmountPaid,omitempty" json:"totalAmountPaid,omitempty"`
	TotalWIP             *int     `bson:"totalWIP,omitempty" json:"totalWIP,omitempty"`
	Invoices             []string `bson:"invoices,omitempty" json:"invoices,omitempty"`

	// Cart snapshot
	CartAddedProducts *Cart    `bson:"cartAddedProducts,omitempty" json:"cartAddedProducts,omitempty"`
	CartTotalAmount   *float64 `bson:"cartTotalAmount,omitempty" json:"cartTotalAmount,omitempty"`

	// Notification flags mirrored from the account form
	TotalInactive            *bool `bson:"totalInactive,omitempty" json:"totalInactive,omitempty"`
	TotalChatting            *bool `bson:"totalChatting,omitempty" json:"totalChatting,omitempty"`
	TotalFinishedGame        *bool `bson:"totalFinishedGame,omitempty" json:"totalFinishedGame,omitempty"`
	YesToLevelNotification   *bool `bson:"yesToLevelNotification,omitempty" json:"yesToLevelNotification,omitempty"`
	YesToProductUpdate       *bool `bson:"yesToProductUpdate,omitempty" json:"yesToProductUpdate,omitempty"`
	YesToSubscribeNewsletter *bool `bson:"yesToSubscribeNewsletter,omitempty" json:"yesToSubscribeNewsletter,omitempty"`
}

// Cart is the product selection a user has not paid for yet.
type Cart struct {
	Counters      `bson:",inline"`
	PaymentStatus []string `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
}
