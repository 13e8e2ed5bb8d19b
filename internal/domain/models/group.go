// internal/domain/models/group.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Group holds the group-name tags an owner uses to organize their roster.
// There is one Group document per email; GroupNames is absent when the owner
// has cleared every tag.
type Group struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email      Email              `bson:"email" json:"email"`
	GroupNames []string           `bson:"groupname,omitempty" json:"groupname,omitempty"`
}
