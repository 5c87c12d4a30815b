// Package store provides the document store for the POS resources. Records
// live in one flat collection per resource, keyed by "id". There are two
// drivers: AWS DynamoDB and an in-process memory store.
package store

import (
	"context"
	"errors"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/patch"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/record"
)

// ErrNotFound is returned by Update when the target record does not exist.
// Delete does not return it; deleting an absent key is not an error.
var ErrNotFound = errors.New("record not found")

// ScanOptions bound a Scan call. A zero Limit means no cap.
type ScanOptions struct {
	Limit       int32
	NewestFirst bool
}

// Driver defines the interface for the document store
type Driver interface {
	// Put writes item unconditionally, overwriting any record with the
	// same id.
	Put(ctx context.Context, table string, item record.Record) error
	// Scan returns the records of a table, within the given bounds.
	Scan(ctx context.Context, table string, opts ScanOptions) ([]record.Record, error)
	// Update applies the compiled mutation field by field and returns the
	// full post-update record. The record must exist.
	Update(ctx context.Context, table string, m patch.Mutation) (record.Record, error)
	// Delete removes the record with the given id. Idempotent.
	Delete(ctx context.Context, table string, id string) error
}

// DriverType represents the different types of store drivers
type DriverType string

// DriverTypeMemory is the in-process implementation of the store
const DriverTypeMemory DriverType = "Memory"

// DriverTypeDynamoDB is the AWS DynamoDB implementation of the store
const DriverTypeDynamoDB DriverType = "DynamoDB"

// DynamoDBConfiguration contains the configuration for the DynamoDB driver.
// When AccessID is empty the default AWS credential chain is used.
type DynamoDBConfiguration struct {
	AWSRegion string
	AccessID  string
	AccessKey string
}
