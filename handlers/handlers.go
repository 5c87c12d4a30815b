// Package handlers implements the stateless request handlers of the POS
// backend: CRUD over the document store for menu items, inventory items and
// orders, plus the presigned-upload-URL issuer for menu images. Handlers
// hold no state between calls; concurrent calls on the same record are
// resolved by the store (last write wins).
package handlers

import (
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/objectstore"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/record"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/store"
)

// Config names the store tables and image URL domain. It is constructed once
// at process start and passed in by parameter.
type Config struct {
	MenuTable       string
	InventoryTable  string
	OrdersTable     string
	ImagesCDNDomain string
}

// API bundles the handlers with their collaborators.
type API struct {
	store   store.Driver
	objects objectstore.Driver
	config  Config
}

// New returns a new API on top of the given store and object storage.
func New(s store.Driver, o objectstore.Driver, c Config) *API {
	return &API{store: s, objects: o, config: c}
}

// filterPatch returns the subset of p whose keys are in allowed. Patch keys
// outside a resource's mutable set are dropped, never written. A nil allowed
// set passes every field through (free-form resources).
func filterPatch(p record.Record, allowed []string) record.Record {
	if allowed == nil {
		return p
	}
	filtered := make(record.Record, len(p))
	for _, field := range allowed {
		if v, ok := p[field]; ok {
			filtered[field] = v
		}
	}
	return filtered
}
