// internal/domain/models/profileimage.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ProfileImage stores one avatar per email as base64 text.
type ProfileImage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email       Email              `bson:"email" json:"email"`
	ImageData   string             `bson:"imageData" json:"imageData"`
	ContentType string             `bson:"contentType" json:"contentType"`
}
