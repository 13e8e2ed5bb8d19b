// internal/domain/models/assignuser.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WIPInProgress is the work-in-progress status every new roster entry starts with.
const WIPInProgress = "in-progress"

// AssignUser is a roster entry: a person assigned by an owner (AddedBy) to one
// of the owner's groups with a set of skills to play.
//
// Extra carries fields that have no dedicated struct field: spreadsheet
// columns, extra request fields, and whatever other writers left on the
// document (such as __v). They are stored inline and may hold any BSON value.
type AssignUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"auName" json:"auName"`
	Email        Email              `bson:"auEmail" json:"auEmail"`
	Group        string             `bson:"auGroup" json:"auGroup"`
	Skills       []string           `bson:"auSkills" json:"auSkills"`
	Playing      bool               `bson:"auPlaying" json:"auPlaying"`
	Chatting     bool               `bson:"auChatting" json:"auChatting"`
	FinishedGame bool               `bson:"auFinishedGame" json:"auFinishedGame"`
	ActiveUser   bool               `bson:"auActiveUser" json:"auActiveUser"`
	WIP          []string           `bson:"auWIP" json:"auWIP"`
	AddedBy      Email              `bson:"addedBy" json:"addedBy"`
	Extra        map[string]any     `bson:",inline" json:"extra,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AssignUserFields are the BSON names owned by AssignUser. Pass-through
// columns must not reuse them.
var AssignUserFields = map[string]bool{
	"_id": true, "auName": true, "auEmail": true, "auGroup": true, "auSkills": true,
	"auPlaying": true, "auChatting": true, "auFinishedGame": true, "auActiveUser": true,
	"auWIP": true, "addedBy": true, "createdAt": true, "updatedAt": true,
}

// IsExtraField reports whether name can be stored in AssignUser.Extra: it
// must not be one of AssignUserFields and must be a plain field name
// (no leading $ and no dots).
func IsExtraField(name string) bool {
	return name != "" && !AssignUserFields[name] &&
		!strings.HasPrefix(name, "$") && !strings.Contains(name, ".")
}

// NewAssignUser returns a roster entry with the default flags: active, not
// playing, not chatting, not finished, and WIP set to in-progress.
func NewAssignUser(name string, email Email, group string, skills []string, addedBy Email) AssignUser {
	return AssignUser{
		Name:       name,
		Email:      email,
		Group:      group,
		Skills:     skills,
		ActiveUser: true,
		WIP:        []string{WIPInProgress},
		AddedBy:    addedBy,
	}
}
