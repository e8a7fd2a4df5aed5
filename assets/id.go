// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import "sync"

// AssetID is a process-unique, pool-issued identifier for an asset's
// type-erased metadata entry. NoAssetID is the sentinel "no asset" value.
type AssetID uint32

// NoAssetID is the sentinel value meaning "no asset".
const NoAssetID AssetID = ^AssetID(0)

// IsValid reports whether id was ever issued by an idPool (is not the
// sentinel).
func (id AssetID) IsValid() bool {
	return id != NoAssetID
}

// idPool is a pool-recycled generator of uint32-valued ids: freed ids are
// reused by the next Generate call before the monotonic counter advances.
// Grounded on the teacher's data.IdPool idiom (vgpu/memory.go references an
// equivalent id-pool concept for storage-buffer slot allocation).
type idPool struct {
	mu    sync.Mutex
	free  []uint32
	next  uint32
}

func (p *idPool) generate() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.free); n > 0 {
		id := p.free[n-1]
		p.free = p.free[:n-1]
		return id
	}
	id := p.next
	p.next++
	return id
}

func (p *idPool) release(id uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, id)
}

// LocalID is an opaque per-registry-module identifier for an asset of type
// T, issued and recycled by that module's own id pool.
type LocalID[T any] struct {
	index uint32
	valid bool
}

// NoLocalID returns the sentinel "no local id" value for T.
func NoLocalID[T any]() LocalID[T] {
	return LocalID[T]{}
}

// NewLocalID wraps a raw index issued by a registry module's pool.
func NewLocalID[T any](index uint32) LocalID[T] {
	return LocalID[T]{index: index, valid: true}
}

// Index returns the raw slot index. Only meaningful if IsValid().
func (id LocalID[T]) Index() uint32 {
	return id.index
}

// IsValid reports whether id was issued by NewLocalID (is not the zero
// sentinel).
func (id LocalID[T]) IsValid() bool {
	return id.valid
}

// TypedAssetID is the triple {AssetID, LocalID[T], owning manager} that
// identifies a live asset of static type T. It is convertible to AssetID,
// comparable by AssetID, and cheap to copy.
type TypedAssetID[T any] struct {
	assetID   AssetID
	localID   LocalID[T]
	assetType AssetType
	manager   *AssetManagerBase
}

// AssetID returns the type-erased, process-global id for this asset.
func (id TypedAssetID[T]) AssetID() AssetID {
	return id.assetID
}

// LocalID returns the id local to this asset type's registry module.
func (id TypedAssetID[T]) LocalID() LocalID[T] {
	return id.localID
}

// Equal reports whether two TypedAssetID values name the same asset.
func (id TypedAssetID[T]) Equal(other TypedAssetID[T]) bool {
	return id.assetID == other.assetID
}

// Manager returns the AssetManagerBase that issued this id.
func (id TypedAssetID[T]) Manager() *AssetManagerBase {
	return id.manager
}

// Metadata returns the asset's metadata record. Panics (via
// InvalidAssetIDError) if the asset has since been destroyed.
func (id TypedAssetID[T]) Metadata() AssetMetadata {
	return id.manager.Metadata(id.assetID)
}
