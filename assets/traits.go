// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"fmt"
	"sync"

	"cogentcore.org/torch/pathlet"
)

// TraitType is a runtime tag naming one axis of per-asset-type
// polymorphism (e.g. ManagerTraitType), the same way AssetType names a
// concrete asset type. Comparable by name.
type TraitType struct {
	name string
}

// NewTraitType returns the TraitType tagged with the given stable name.
func NewTraitType(name string) TraitType {
	return TraitType{name: name}
}

// Name returns the trait's stable string name.
func (t TraitType) Name() string {
	return t.name
}

// Equal reports whether two TraitTypes share the same name.
func (t TraitType) Equal(other TraitType) bool {
	return t.name == other.name
}

func (t TraitType) String() string {
	return t.name
}

// ManagerTraitType is the well-known TraitType under which each asset
// type's ManagerTraits implementation is registered in a TraitStorage.
var ManagerTraitType = NewTraitType("assets.ManagerTraits")

// ManagerTraits is per-asset-type polymorphism over AssetManager: given
// only a path and the asset type it declares, it knows how to create or
// fetch the corresponding TypedAssetID[T] without its caller ever naming T
// statically. This is what lets code act on "the asset at this path"
// purely from the metadata it reads, the use case spec.md §4.2 calls out
// for TraitStorage.
type ManagerTraits interface {
	// AssetType returns the concrete asset type this implementation
	// dispatches for.
	AssetType() AssetType
	// LoadUntyped creates or fetches the asset at path via GetOrCreateAsset
	// and returns its type-erased AssetID.
	LoadUntyped(mgr *AssetManager, path pathlet.Pathlet) (AssetID, error)
}

// managerTraits is the generic ManagerTraits implementation shared by every
// concrete asset type: it simply closes over that type's TypeTraits[T] and
// forwards to GetOrCreateAsset[T, H]. Registering one of these per built-in
// asset type is what makes path-based, statically-T-free dispatch possible.
type managerTraits[T, H any] struct {
	traits TypeTraits[T]
}

// NewManagerTraits returns the ManagerTraits implementation that dispatches
// to GetOrCreateAsset[T, H] for the asset type described by traits.
func NewManagerTraits[T, H any](traits TypeTraits[T]) ManagerTraits {
	return managerTraits[T, H]{traits: traits}
}

func (m managerTraits[T, H]) AssetType() AssetType {
	return m.traits.AssetType()
}

func (m managerTraits[T, H]) LoadUntyped(mgr *AssetManager, path pathlet.Pathlet) (AssetID, error) {
	id, err := GetOrCreateAsset[T, H](mgr, m.traits, path)
	if err != nil {
		return NoAssetID, err
	}
	return id.AssetID(), nil
}

// traitKey is TraitStorage's composite lookup key.
type traitKey struct {
	assetType AssetType
	traitType TraitType
}

// TraitStorage is the (AssetType, TraitType) -> impl table spec.md §4.2
// calls for: user-extensible per-type polymorphism over the asset manager.
// Each registered impl's concrete type is whatever contract its TraitType
// documents (ManagerTraits for ManagerTraitType); callers recover it with a
// type assertion, the same any-boxing-at-the-boundary shape
// moduleAdapter/anyModule use in registry.go.
type TraitStorage struct {
	mu    sync.RWMutex
	impls map[traitKey]any
}

// NewTraitStorage returns an empty TraitStorage.
func NewTraitStorage() *TraitStorage {
	return &TraitStorage{impls: make(map[traitKey]any)}
}

// Register binds impl as the unique implementation of traitType for
// assetType. Registering the same pair twice panics, mirroring
// RegisterModule's "the table is built once, at startup" invariant.
func (s *TraitStorage) Register(assetType AssetType, traitType TraitType, impl any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := traitKey{assetType: assetType, traitType: traitType}
	if _, exists := s.impls[key]; exists {
		panic(fmt.Sprintf("assets: trait %q already registered for asset type %q", traitType, assetType))
	}
	s.impls[key] = impl
}

// Get returns the impl registered for (assetType, traitType), if any.
func (s *TraitStorage) Get(assetType AssetType, traitType TraitType) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	impl, ok := s.impls[traitKey{assetType: assetType, traitType: traitType}]
	return impl, ok
}

// RegisterManagerTraits is a convenience wrapper registering traits under
// ManagerTraitType for the asset type it describes.
func RegisterManagerTraits(s *TraitStorage, traits ManagerTraits) {
	s.Register(traits.AssetType(), ManagerTraitType, traits)
}

// CreateAssetAtPath creates or fetches the asset stored at path without the
// caller ever naming its static type: it reads only path's `.meta` record
// (via GetMetadata, never touching `.data`) to discover the declared asset
// type, then dispatches through whichever ManagerTraits traits has
// registered for that type. Returns an error if no metadata is stored at
// path, or no ManagerTraits is registered for its declared type.
func CreateAssetAtPath(mgr *AssetManager, traits *TraitStorage, path pathlet.Pathlet) (AssetID, error) {
	meta, perr := GetMetadata(mgr.Storage(), path)
	if perr != nil {
		return NoAssetID, perr
	}
	impl, ok := traits.Get(meta.Type, ManagerTraitType)
	if !ok {
		return NoAssetID, fmt.Errorf("assets: no ManagerTraits registered for asset type %q", meta.Type)
	}
	mt, ok := impl.(ManagerTraits)
	if !ok {
		return NoAssetID, fmt.Errorf("assets: trait registered for asset type %q is not a ManagerTraits", meta.Type)
	}
	return mt.LoadUntyped(mgr, path)
}
