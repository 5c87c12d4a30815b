// Package record converts client-submitted JSON bodies into normalized
// stored records. A record is a flat JSON object keyed by "id"; the codec
// owns the "id", "createdAt" and "updatedAt" fields.
package record

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Field names owned by the codec. FieldID and FieldCreatedAt are immutable
// after creation; FieldUpdatedAt is never client-settable.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Record is a single stored document for a resource.
type Record map[string]interface{}

// Timestamp renders t the way records store timestamps: RFC-3339 UTC with
// millisecond precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// Parse parses a client JSON body into a record. An empty body parses to an
// empty record.
func Parse(body string) (Record, error) {
	if body == "" {
		return Record{}, nil
	}
	var r Record
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if r == nil {
		r = Record{}
	}
	return r, nil
}

// Normalize returns a copy of r ready for an unconditional put: the id is
// kept if the client supplied one and assigned otherwise, and both
// timestamps are stamped with now. Client-supplied createdAt and updatedAt
// are overwritten.
func Normalize(r Record, now time.Time) Record {
	out := make(Record, len(r)+3)
	for k, v := range r {
		out[k] = v
	}
	if id, ok := out[FieldID].(string); !ok || id == "" {
		out[FieldID] = uuid.NewString()
	}
	ts := Timestamp(now)
	out[FieldCreatedAt] = ts
	out[FieldUpdatedAt] = ts
	return out
}

// ID returns the record's id, or the empty string if it has none.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// MissingFields returns the names from required that are absent from r or
// bound to nil, in declaration order. An empty result means the record
// passes the presence check.
func MissingFields(r Record, required ...string) []string {
	var missing []string
	for _, name := range required {
		if v, ok := r[name]; !ok || v == nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// RequiredError renders the standard validation message for missing fields.
func RequiredError(missing []string) string {
	return "Missing required fields: " + strings.Join(missing, ", ")
}
