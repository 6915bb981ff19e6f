package entities

import (
	"errors"
	"strings"
	"time"
)

// Common errors
var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrResourceNotFound = errors.New("resource not found")
)

// IDField is the reserved key carrying the server-assigned identifier.
const IDField = "id"

// Record is a single free-form entry of a resource collection. Apart from
// the server-assigned id, fields are whatever the client sent; no schema
// is enforced.
type Record map[string]any

// ID returns the record identifier, or "" when unset.
func (r Record) ID() string {
	id, _ := r[IDField].(string)
	return id
}

// Clone returns a top-level copy of the record. Nested values are shared:
// merge semantics replace nested objects wholesale, so they are never
// mutated in place.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a new record with patch fields laid over r. Incoming
// fields win key-by-key; the id of r always survives.
func (r Record) Merge(patch Record) Record {
	out := r.Clone()
	for k, v := range patch {
		out[k] = v
	}
	if id := r.ID(); id != "" {
		out[IDField] = id
	}
	return out
}

// Number reads a numeric field, tolerating the types encoding/json
// produces plus ints from in-process callers. Missing or non-numeric
// values read as 0.
func (r Record) Number(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// Bool reads a boolean field; anything absent or non-boolean is false.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// String reads a string field, "" when absent or of another type.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Date parses a stored date field. Values arrive as ISO strings from the
// frontend, either date-only ("2024-01-15") or full RFC 3339 timestamps.
// The zero time and false are returned when the field is absent or
// unparseable.
func (r Record) Date(key string) (time.Time, bool) {
	s := strings.TrimSpace(r.String(key))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
