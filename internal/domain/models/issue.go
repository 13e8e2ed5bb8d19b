// internal/domain/models/issue.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Issue is a support request. A user may file any number of them, so Email
// is not unique.
type Issue struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email Email              `bson:"email" json:"email"`
	Issue string             `bson:"issue" json:"issue"`
	Doubt string             `bson:"doubt" json:"doubt"`
}
