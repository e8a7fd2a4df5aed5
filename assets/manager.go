// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"sync"

	"cogentcore.org/torch/pathlet"
)

// AssetManager layers a path<->AssetID bijection and deferred,
// path-idempotent creation on top of AssetManagerBase. Calling
// GetOrCreateAsset twice with the same path returns the same TypedAssetID
// rather than loading the asset twice (seed scenario: "create twice returns
// same TypedAssetID").
type AssetManager struct {
	*AssetManagerBase
	storage *AssetStorage

	mu       sync.RWMutex
	pathToID map[string]AssetID
	idToPath map[AssetID]pathlet.Pathlet
}

// NewAssetManager returns an AssetManager whose path-backed assets are read
// through storage and whose device lifecycles are dispatched through
// registry.
func NewAssetManager(registry *AssetRegistry, storage *AssetStorage) *AssetManager {
	return &AssetManager{
		AssetManagerBase: NewAssetManagerBase(registry),
		storage:          storage,
		pathToID:         make(map[string]AssetID),
		idToPath:         make(map[AssetID]pathlet.Pathlet),
	}
}

// GetOrCreateAsset returns the TypedAssetID already bound to path if one
// exists, otherwise loads the asset (deferred: the actual read happens
// inside CreateAsset, not here) and binds path to the new id. If path is
// already bound to a different asset type, this panics with
// InvalidAssetTypeError.
func GetOrCreateAsset[T, H any](mgr *AssetManager, traits TypeTraits[T], path pathlet.Pathlet) (TypedAssetID[T], error) {
	assetType := traits.AssetType()

	mgr.mu.RLock()
	if id, ok := mgr.pathToID[path.String()]; ok {
		mgr.mu.RUnlock()
		existing := mgr.Metadata(id)
		if !existing.Type.Equal(assetType) {
			panic(&InvalidAssetTypeError{
				Expected: assetType,
				Actual:   existing.Type,
				Context:  "GetOrCreateAsset: path " + path.String() + " already bound to a different asset type",
			})
		}
		return TypedAssetID[T]{
			assetID:   id,
			localID:   NewLocalID[T](mgr.LocalIndex(id)),
			assetType: assetType,
			manager:   mgr.AssetManagerBase,
		}, nil
	}
	mgr.mu.RUnlock()

	source := LoadDeferred(mgr.storage, path, traits)
	typedID, err := CreateAsset[T, H](mgr.AssetManagerBase, traits, path.Filename(), source)
	if err != nil {
		return TypedAssetID[T]{}, err
	}

	mgr.mu.Lock()
	mgr.pathToID[path.String()] = typedID.assetID
	mgr.idToPath[typedID.assetID] = path
	mgr.mu.Unlock()
	mgr.AssetManagerBase.setPath(typedID.assetID, path)

	return typedID, nil
}

// CreateInMemoryAsset registers value directly, with no backing path. It is
// never idempotent: each call creates a distinct asset even if value is
// identical to one already registered.
func CreateInMemoryAsset[T, H any](mgr *AssetManager, traits TypeTraits[T], name string, value T) (TypedAssetID[T], error) {
	return CreateAsset[T, H](mgr.AssetManagerBase, traits, name, NewInMemorySource(value))
}

// DestroyManagedAsset releases id's device resources and, if it was bound
// to a path, unbinds that path so a later GetOrCreateAsset call reloads it
// fresh.
func DestroyManagedAsset[T, H any](mgr *AssetManager, id TypedAssetID[T]) {
	mgr.mu.Lock()
	if p, ok := mgr.idToPath[id.assetID]; ok {
		delete(mgr.pathToID, p.String())
		delete(mgr.idToPath, id.assetID)
	}
	mgr.mu.Unlock()

	DestroyAsset[T, H](mgr.AssetManagerBase, id)
}

// PathOf returns the storage path id was loaded from, if any.
func (mgr *AssetManager) PathOf(id AssetID) (pathlet.Pathlet, bool) {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	p, ok := mgr.idToPath[id]
	return p, ok
}

// Storage returns the AssetStorage backing this manager's path-bound
// assets, for callers that need to persist a value directly (see the
// package-level Store function in storage.go).
func (mgr *AssetManager) Storage() *AssetStorage {
	return mgr.storage
}
