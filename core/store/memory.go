package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/patch"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/record"
)

// Memory is the in-process implementation of the store Driver. It backs the
// local server and the unit tests. Records are deep-copied on the way in and
// out, so callers cannot mutate stored state through shared references.
type Memory struct {
	mutex  sync.RWMutex
	tables map[string]map[string]record.Record
}

// NewMemory returns a new empty Memory store
func NewMemory() *Memory {
	return &Memory{tables: make(map[string]map[string]record.Record)}
}

// Put writes item unconditionally, overwriting any record with the same id
func (s *Memory) Put(ctx context.Context, table string, item record.Record) error {
	id := item.ID()
	if id == "" {
		return fmt.Errorf("record has no id")
	}
	copied, err := copyRecord(item)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.tables[table] == nil {
		s.tables[table] = make(map[string]record.Record)
	}
	s.tables[table][id] = copied
	return nil
}

// Scan returns the records of the table, within the given bounds
func (s *Memory) Scan(ctx context.Context, table string, opts ScanOptions) ([]record.Record, error) {
	s.mutex.RLock()
	items := make([]record.Record, 0, len(s.tables[table]))
	for _, item := range s.tables[table] {
		copied, err := copyRecord(item)
		if err != nil {
			s.mutex.RUnlock()
			return nil, err
		}
		items = append(items, copied)
	}
	s.mutex.RUnlock()

	if opts.NewestFirst {
		sortNewestFirst(items)
	}
	if opts.Limit > 0 && int32(len(items)) > opts.Limit {
		items = items[:opts.Limit]
	}
	return items, nil
}

// Update applies the compiled mutation to an existing record and returns the
// full post-update record, or ErrNotFound if no record has the mutation's id.
func (s *Memory) Update(ctx context.Context, table string, m patch.Mutation) (record.Record, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	item, ok := s.tables[table][m.ID]
	if !ok {
		return nil, ErrNotFound
	}
	for _, a := range m.Assignments {
		item[a.Field] = a.Value
	}
	// sever references to caller-owned patch values
	stored, err := copyRecord(item)
	if err != nil {
		return nil, err
	}
	s.tables[table][m.ID] = stored

	if !m.ReturnUpdated {
		return nil, nil
	}
	return copyRecord(stored)
}

// Delete removes the record with the given id. Deleting an absent id
// succeeds.
func (s *Memory) Delete(ctx context.Context, table string, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.tables[table], id)
	return nil
}

// copyRecord deep-copies a record through a JSON round trip
func copyRecord(item record.Record) (record.Record, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	var copied record.Record
	if err := json.Unmarshal(data, &copied); err != nil {
		return nil, err
	}
	return copied, nil
}
