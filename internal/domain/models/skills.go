// internal/domain/models/skills.go
package models

// SkillLevels maps the human-readable skill names shown in the dashboard to
// the inventory counter they consume. "Entire Game" maps to the AllLevels
// sentinel, which stands for every numbered level at once.
var SkillLevels = map[string]CounterKey{
	"Creative Problem solving":   Level1,
	"Entrepreneurial Mindset":    Level2,
	"Negotiation":                Level3,
	"Story-telling":              Level4,
	"First Principles Thinking":  Level5,
	"Sharp Remote Communication": Level6,
	"Collaboration":              Level7,
	"Emotional Intelligence":     Level8,
	"Productivity Management":    Level9,
	"Entire Game":                AllLevels,
}

// SkillLevel returns the counter consumed by skill. ok is false for names
// that are not in the table.
func SkillLevel(skill string) (key CounterKey, ok bool) {
	key, ok = SkillLevels[skill]
	return key, ok
}
