// internal/domain/models/feedback.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Feedback form types. An empty FormType is the first survey (form1).
const (
	FormType1 = "form1"
	FormType2 = "form2"
	FormType3 = "form3"
)

// Feedback is one emoji-scale survey answer.
type Feedback struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserEmail     Email              `bson:"userEmail" json:"userEmail"`
	SelectedEmoji int                `bson:"selectedEmoji" json:"selectedEmoji"`
	FormType      string             `bson:"formType,omitempty" json:"formType,omitempty"`
}
