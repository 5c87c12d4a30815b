// Package patch compiles a client-supplied partial field mapping into a
// store-agnostic mutation descriptor. Reserved fields never make it into a
// compiled mutation, and every mutation carries exactly one updatedAt
// assignment.
package patch

import (
	"sort"
	"time"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/record"
)

// Assignment binds one field name to its new value.
type Assignment struct {
	Field string
	Value interface{}
}

// Mutation is the compiled, store-agnostic representation of a field-scoped
// update: the target record id, the ordered assignments to apply, and the
// request for the store to return the full post-update record.
type Mutation struct {
	ID            string
	Assignments   []Assignment
	ReturnUpdated bool
}

// Compile builds the mutation for applying p to the record with the given
// id. Every key in p except the reserved names "id" and "createdAt" yields
// one assignment; a trailing updatedAt assignment bound to now is always
// appended, overriding any patch-supplied value. Assignments are ordered by
// field name so a mutation compiles deterministically.
//
// An empty patch still compiles, to a mutation touching only updatedAt.
func Compile(id string, p map[string]interface{}, now time.Time) Mutation {
	fields := make([]string, 0, len(p))
	for field := range p {
		switch field {
		case record.FieldID, record.FieldCreatedAt, record.FieldUpdatedAt:
			continue
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	assignments := make([]Assignment, 0, len(fields)+1)
	for _, field := range fields {
		assignments = append(assignments, Assignment{Field: field, Value: p[field]})
	}
	assignments = append(assignments, Assignment{
		Field: record.FieldUpdatedAt,
		Value: record.Timestamp(now),
	})

	return Mutation{
		ID:            id,
		Assignments:   assignments,
		ReturnUpdated: true,
	}
}
