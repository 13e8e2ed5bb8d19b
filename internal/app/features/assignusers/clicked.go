// internal/app/features/assignusers/clicked.go
package assignusers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// errClickedNotObject is returned when isClicked is not a JSON object.
var errClickedNotObject = errors.New("isClicked must be a JSON object")

// parseClicked returns the skills flagged in an isClicked object, in the
// order they appear in the document. Decrements run in that order, which is
// why a map cannot be used. An empty input means nothing was clicked.
func parseClicked(raw []byte) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	// isClicked may arrive as a JSON string holding the object (multipart
	// form fields, or a JSON body built by the dashboard).
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, errClickedNotObject
		}
		return parseClicked([]byte(inner))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, errClickedNotObject
	}

	var (
		skills []string
		seen   = map[string]int{}
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("isClicked: %w", err)
		}
		skill, _ := tok.(string)

		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, fmt.Errorf("isClicked[%q]: %w", skill, err)
		}

		// A repeated key keeps its first position and its last value.
		if i, dup := seen[skill]; dup {
			if !truthy(val) {
				skills[i] = ""
			} else if skills[i] == "" {
				skills[i] = skill
			}
			continue
		}
		seen[skill] = len(skills)
		if truthy(val) {
			skills = append(skills, skill)
		} else {
			skills = append(skills, "")
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("isClicked: %w", err)
	}

	out := skills[:0]
	for _, s := range skills {
		if s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// truthy follows the dashboard's notion of a clicked flag: false, null, 0
// and "" are off; anything else is on.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}
