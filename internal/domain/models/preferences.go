// internal/domain/models/preferences.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Preferences holds the notification toggles for one email. Fields are
// pointers because stored documents may omit any of them; WithDefaults fills
// the gaps at read time.
type Preferences struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email                    Email              `bson:"email" json:"email"`
	TotalInactive            *bool              `bson:"totalInactive,omitempty" json:"totalInactive,omitempty"`
	TotalChatting            *bool              `bson:"totalChatting,omitempty" json:"totalChatting,omitempty"`
	TotalFinishedGame        *bool              `bson:"totalFinishedGame,omitempty" json:"totalFinishedGame,omitempty"`
	YesToLevelNotification   *bool              `bson:"yesToLevelNotification,omitempty" json:"yesToLevelNotification,omitempty"`
	YesToProductUpdate       *bool              `bson:"yesToProductUpdate,omitempty" json:"yesToProductUpdate,omitempty"`
	YesToSubscribeNewsletter *bool              `bson:"yesToSubscribeNewsletter,omitempty" json:"yesToSubscribeNewsletter,omitempty"`
}

// DefaultPreferences are the values reported for flags a document does not store.
var DefaultPreferences = ResolvedPreferences{
	TotalInactive:            true,
	TotalChatting:            true,
	TotalFinishedGame:        true,
	YesToLevelNotification:   false,
	YesToProductUpdate:       false,
	YesToSubscribeNewsletter: false,
}

// ResolvedPreferences is the complete preference set returned to clients.
type ResolvedPreferences struct {
	ID                       primitive.ObjectID `json:"_id,omitempty"`
	Email                    Email              `json:"email,omitempty"`
	TotalInactive            bool               `json:"totalInactive"`
	TotalChatting            bool               `json:"totalChatting"`
	TotalFinishedGame        bool               `json:"totalFinishedGame"`
	YesToLevelNotification   bool               `json:"yesToLevelNotification"`
	YesToProductUpdate       bool               `json:"yesToProductUpdate"`
	YesToSubscribeNewsletter bool               `json:"yesToSubscribeNewsletter"`
}

// WithDefaults merges the stored flags over DefaultPreferences.
func (p Preferences) WithDefaults() ResolvedPreferences {
	out := DefaultPreferences
	out.ID = p.ID
	out.Email = p.Email
	pick := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	pick(&out.TotalInactive, p.TotalInactive)
	pick(&out.TotalChatting, p.TotalChatting)
	pick(&out.TotalFinishedGame, p.TotalFinishedGame)
	pick(&out.YesToLevelNotification, p.YesToLevelNotification)
	pick(&out.YesToProductUpdate, p.YesToProductUpdate)
	pick(&out.YesToSubscribeNewsletter, p.YesToSubscribeNewsletter)
	return out
}
