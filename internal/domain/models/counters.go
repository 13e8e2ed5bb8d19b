// internal/domain/models/counters.go
package models

import (
	"encoding/json"
	"fmt"
)

// CounterKey names one inventory counter inside AllProducts.
type CounterKey string

const (
	Level1    CounterKey = "level1"
	Level2    CounterKey = "level2"
	Level3    CounterKey = "level3"
	Level4    CounterKey = "level4"
	Level5    CounterKey = "level5"
	Level6    CounterKey = "level6"
	Level7    CounterKey = "level7"
	Level8    CounterKey = "level8"
	Level9    CounterKey = "level9"
	AllLevels CounterKey = "allLevels"
)

// NumberedLevels lists the nine per-level counters in order, without AllLevels.
var NumberedLevels = []CounterKey{Level1, Level2, Level3, Level4, Level5, Level6, Level7, Level8, Level9}

// CounterKeys lists every counter, numbered levels first.
var CounterKeys = append(append([]CounterKey{}, NumberedLevels...), AllLevels)

// Counters is the fixed set of inventory counters shared by Slot and
// InitialSlot documents.
type Counters struct {
	Level1    int `bson:"level1" json:"level1"`
	Level2    int `bson:"level2" json:"level2"`
	Level3    int `bson:"level3" json:"level3"`
	Level4    int `bson:"level4" json:"level4"`
	Level5    int `bson:"level5" json:"level5"`
	Level6    int `bson:"level6" json:"level6"`
	Level7    int `bson:"level7" json:"level7"`
	Level8    int `bson:"level8" json:"level8"`
	Level9    int `bson:"level9" json:"level9"`
	AllLevels int `bson:"allLevels" json:"allLevels"`
}

// Ptr returns a pointer to the counter named by key, or nil for an unknown key.
func (c *Counters) Ptr(key CounterKey) *int {
	switch key {
	case Level1:
		return &c.Level1
	case Level2:
		return &c.Level2
	case Level3:
		return &c.Level3
	case Level4:
		return &c.Level4
	case Level5:
		return &c.Level5
	case Level6:
		return &c.Level6
	case Level7:
		return &c.Level7
	case Level8:
		return &c.Level8
	case Level9:
		return &c.Level9
	case AllLevels:
		return &c.AllLevels
	}
	return nil
}

// Get returns the value of the counter named by key (0 for unknown keys).
func (c Counters) Get(key CounterKey) int {
	if p := c.Ptr(key); p != nil {
		return *p
	}
	return 0
}

// Consume decrements the inventory for one skill level.
//
// AllLevels decrements each numbered level that is above zero and leaves the
// AllLevels counter itself alone. Any other key decrements only that counter,
// and only when it is above zero. Counters never go negative.
func (c *Counters) Consume(key CounterKey) {
	if key == AllLevels {
		for _, k := range NumberedLevels {
			if p := c.Ptr(k); *p > 0 {
				*p--
			}
		}
		return
	}
	if p := c.Ptr(key); p != nil && *p > 0 {
		*p--
	}
}

// CountersPatch holds the counters present in an update request. Counters
// missing from Values were not sent and must be left untouched.
type CountersPatch struct {
	Values map[CounterKey]int
}

// Empty reports whether the patch carries no counters.
func (p CountersPatch) Empty() bool { return len(p.Values) == 0 }

// Apply writes every counter in the patch into c.
func (p CountersPatch) Apply(c *Counters) {
	for k, v := range p.Values {
		if ptr := c.Ptr(k); ptr != nil {
			*ptr = v
		}
	}
}

// SetFields returns the patch as dotted $set paths under prefix.
func (p CountersPatch) SetFields(prefix string) map[string]any {
	out := make(map[string]any, len(p.Values))
	for k, v := range p.Values {
		out[prefix+"."+string(k)] = v
	}
	return out
}

// UnknownKeyError is returned when an update names a key that is not part of
// the fixed counter schema.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown AllProducts key %q", e.Key)
}

// ParseCountersPatch decodes the AllProducts object of an update request.
// Only the fixed counter keys are accepted; names listed in extra are skipped
// so the caller can handle them (for example paymentStatus on Slot). JSON
// null means "not sent".
func ParseCountersPatch(raw map[string]json.RawMessage, extra ...string) (CountersPatch, error) {
	patch := CountersPatch{Values: map[CounterKey]int{}}
	known := make(map[string]bool, len(CounterKeys))
	for _, k := range CounterKeys {
		known[string(k)] = true
	}
	skip := make(map[string]bool, len(extra))
	for _, e := range extra {
		skip[e] = true
	}

	for key, val := range raw {
		if skip[key] {
			continue
		}
		if !known[key] {
			return CountersPatch{}, &UnknownKeyError{Key: key}
		}
		if string(val) == "null" {
			continue
		}
		var n int
		if err := json.Unmarshal(val, &n); err != nil {
			return CountersPatch{}, fmt.Errorf("AllProducts.%s must be an integer", key)
		}
		patch.Values[CounterKey(key)] = n
	}
	return patch, nil
}
