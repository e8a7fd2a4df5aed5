// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"sync"

	"cogentcore.org/torch/pathlet"
)

// assetEntry is the type-erased record AssetManagerBase keeps for one live
// asset: its metadata plus the device handle produced by the asset's
// registry module, boxed as any until GetHandle recovers its static type.
type assetEntry struct {
	metadata AssetMetadata
	handle   any
	localID  uint32
}

// AssetManagerBase is the minimal create/destroy/get surface over an
// AssetRegistry: one process-wide id space, a sparse metadata+handle table,
// and no notion of storage paths (that bijection is layered on top by
// AssetManager). It is safe for concurrent use.
type AssetManagerBase struct {
	mu       sync.RWMutex
	registry *AssetRegistry
	ids      idPool
	entries  map[AssetID]assetEntry
}

// NewAssetManagerBase returns an AssetManagerBase dispatching Create/Destroy
// calls to registry.
func NewAssetManagerBase(registry *AssetRegistry) *AssetManagerBase {
	return &AssetManagerBase{
		registry: registry,
		entries:  make(map[AssetID]assetEntry),
	}
}

// CreateAsset loads source through the module registered for T, assigns it
// a fresh AssetID, and returns a TypedAssetID naming it. A load failure from
// source (an AssetParseError surfaced as error) leaves the manager
// unchanged and assigns no id.
func CreateAsset[T, H any](m *AssetManagerBase, traits TypeTraits[T], name string, source AssetSource[T]) (TypedAssetID[T], error) {
	assetType := traits.AssetType()
	handle, localID, err := createInRegistry[T, H](m.registry, assetType, source)
	if err != nil {
		return TypedAssetID[T]{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	id := AssetID(m.ids.generate())
	m.entries[id] = assetEntry{
		metadata: AssetMetadata{Name: name, Type: assetType},
		handle:   handle,
		localID:  localID,
	}
	return TypedAssetID[T]{
		assetID:   id,
		localID:   NewLocalID[T](localID),
		assetType: assetType,
		manager:   m,
	}, nil
}

// DestroyAsset releases id's device handle through its registry module. The
// AssetID is retired, not returned to the pool: every copy of id stays
// invalid, and later creations get fresh AssetIDs. Destroying an id twice panics with
// InvalidAssetIDError: double-destroy is a programmer error, not a
// recoverable condition (spec.md §7).
func DestroyAsset[T, H any](m *AssetManagerBase, id TypedAssetID[T]) {
	m.mu.Lock()
	entry, ok := m.entries[id.assetID]
	if !ok {
		m.mu.Unlock()
		panic(&InvalidAssetIDError{ID: id.assetID, Reason: "asset already destroyed or never created"})
	}
	delete(m.entries, id.assetID)
	m.mu.Unlock()

	handle, ok := entry.handle.(H)
	if !ok {
		panic(&InvalidAssetTypeError{Expected: id.assetType, Actual: entry.metadata.Type, Context: "DestroyAsset: handle type mismatch"})
	}
	destroyInRegistry(m.registry, id.assetType, handle)
}

// GetHandle recovers the device handle for id, asserting it has static type
// H. Panics with InvalidAssetIDError if id no longer names a live asset, or
// InvalidAssetTypeError if H disagrees with the asset's actual type.
func GetHandle[T, H any](m *AssetManagerBase, id TypedAssetID[T]) H {
	m.mu.RLock()
	entry, ok := m.entries[id.assetID]
	m.mu.RUnlock()
	if !ok {
		panic(&InvalidAssetIDError{ID: id.assetID, Reason: "asset destroyed"})
	}
	handle, ok := entry.handle.(H)
	if !ok {
		panic(&InvalidAssetTypeError{Expected: id.assetType, Actual: entry.metadata.Type, Context: "GetHandle: handle type mismatch"})
	}
	return handle
}

// Exists reports whether id still names a live asset.
func (m *AssetManagerBase) Exists(id AssetID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[id]
	return ok
}

// Metadata returns the metadata recorded for id. Panics with
// InvalidAssetIDError if id does not name a live asset.
func (m *AssetManagerBase) Metadata(id AssetID) AssetMetadata {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[id]
	if !ok {
		panic(&InvalidAssetIDError{ID: id, Reason: "asset destroyed"})
	}
	return entry.metadata
}

// LocalIndex returns the module-issued local id recorded for id. Panics
// with InvalidAssetIDError if id does not name a live asset.
func (m *AssetManagerBase) LocalIndex(id AssetID) uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[id]
	if !ok {
		panic(&InvalidAssetIDError{ID: id, Reason: "asset destroyed"})
	}
	return entry.localID
}

// Count returns the number of currently live assets, for diagnostics and
// tests.
func (m *AssetManagerBase) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// setPath records the storage path an asset was loaded from. Used only by
// AssetManager, which layers path tracking on top of this type.
func (m *AssetManagerBase) setPath(id AssetID, path pathlet.Pathlet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[id]; ok {
		e.metadata.Path = &path
		m.entries[id] = e
	}
}
