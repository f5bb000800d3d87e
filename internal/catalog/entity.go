package catalog

import (
	"strconv"
	"strings"
)

// Entity is one guessable row: a stable id, a display name, and an open
// attribute bag. Entities are immutable reference data; nothing mutates
// them after load.
type Entity struct {
	ID    string
	Name  string
	Attrs map[string]any
}

// missingNumber is the sentinel some source datasets use for absent
// numeric values.
const missingNumber = -1

// Value returns the raw attribute value, or nil when absent.
func (e Entity) Value(key string) any {
	if e.Attrs == nil {
		return nil
	}
	return e.Attrs[key]
}

// Number coerces an attribute to a float64. Absent values, empty strings,
// unparseable strings, and the -1 sentinel all report ok=false.
func (e Entity) Number(key string) (float64, bool) {
	switch v := e.Value(key).(type) {
	case float64:
		if v == missingNumber {
			return 0, false
		}
		return v, true
	case int:
		if v == missingNumber {
			return 0, false
		}
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		num, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || num == missingNumber {
			return 0, false
		}
		return num, true
	default:
		return 0, false
	}
}

// Text coerces an attribute to a string; absent values become "".
func (e Entity) Text(key string) string {
	switch v := e.Value(key).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return ""
	}
}

// Bool coerces an attribute to a boolean with permissive truthy-string
// handling: "true", "1" and "yes" count as true.
func (e Entity) Bool(key string) bool {
	switch v := e.Value(key).(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes":
			return true
		}
		return false
	default:
		return false
	}
}

// List splits a comma-separated attribute into trimmed items, preserving
// original casing and dropping empties.
func (e Entity) List(key string) []string {
	raw := e.Text(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Placeholder is the degraded entity returned when a category has no data.
// Callers can render it instead of crashing.
func Placeholder() Entity {
	return Entity{ID: "error", Name: "Error", Attrs: map[string]any{"id": "error", "name": "Error"}}
}
