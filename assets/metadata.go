// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets implements the typed asset registry: identity allocation,
// lifecycle, deferred loading, and the path<->id bijection that mediates
// between declarative asset descriptions and per-type device registries.
package assets

import "cogentcore.org/torch/pathlet"

// AssetType is a runtime tag for an asset's static type, compared by name.
type AssetType struct {
	name string
}

// NewAssetType returns the AssetType tagged with the given stable name.
func NewAssetType(name string) AssetType {
	return AssetType{name: name}
}

// Name returns the type's stable string name.
func (t AssetType) Name() string {
	return t.name
}

// Equal reports whether two AssetTypes share the same name.
func (t AssetType) Equal(other AssetType) bool {
	return t.name == other.name
}

func (t AssetType) String() string {
	return t.name
}

// TypeTraits is the compile-time-static per-asset-type traits structure:
// a stable name plus the codec used to move the type's data to and from
// storage. One TypeTraits[T] value exists per concrete asset type T and is
// passed explicitly to the generic Store/Load (storage.go), CreateAsset
// (manager_base.go) and GetOrCreateAsset (manager.go) functions,
// standing in for the C++ source's template specialization.
type TypeTraits[T any] struct {
	TypeName   string
	Serializer Serializer[T]
}

// AssetType returns the AssetType tag this TypeTraits describes.
func (t TypeTraits[T]) AssetType() AssetType {
	return NewAssetType(t.TypeName)
}

// AssetMetadata is the small, type-erased record stored alongside every
// asset: its display name, its dynamic type, and (for storage-backed
// assets) the path it was loaded from.
type AssetMetadata struct {
	Name string
	Type AssetType
	Path *pathlet.Pathlet
}
