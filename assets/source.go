// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import "cogentcore.org/torch/pathlet"

// AssetSource produces a value of type T on demand. CreateAsset accepts one
// in place of a bare value so that storage-backed assets can be registered
// without paying the load cost until something actually requests the data
// (spec.md's "deferred loading" requirement), while in-memory assets still
// satisfy the same interface with a zero-cost wrapper.
type AssetSource[T any] interface {
	Load() (T, *AssetParseError)
}

// InMemorySource is an AssetSource that always returns a value already held
// in memory. Its Load never fails.
type InMemorySource[T any] struct {
	value T
}

// NewInMemorySource wraps value as an AssetSource.
func NewInMemorySource[T any](value T) InMemorySource[T] {
	return InMemorySource[T]{value: value}
}

func (s InMemorySource[T]) Load() (T, *AssetParseError) {
	return s.value, nil
}

// StorageSource is an AssetSource that reads and decodes an asset from an
// AssetStorage the first (and every) time Load is called. It performs no
// caching of its own; callers that want load-once semantics should call
// Load exactly once and keep the result.
type StorageSource[T any] struct {
	storage *AssetStorage
	path    pathlet.Pathlet
	traits  TypeTraits[T]
}

// NewStorageSource returns a StorageSource reading path from storage.
func NewStorageSource[T any](storage *AssetStorage, path pathlet.Pathlet, traits TypeTraits[T]) *StorageSource[T] {
	return &StorageSource[T]{storage: storage, path: path, traits: traits}
}

func (s *StorageSource[T]) Load() (T, *AssetParseError) {
	return Load(s.storage, s.path, s.traits)
}

// Path returns the path this source reads from.
func (s *StorageSource[T]) Path() pathlet.Pathlet {
	return s.path
}
