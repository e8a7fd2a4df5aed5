// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"fmt"
	"sync"
)

// Module is the contract a per-type device registry (geometry, texture,
// material, rig, animation, ...) implements to plug into an AssetManagerBase.
// T is the asset's value type as loaded from an AssetSource; H is the
// device-side handle the module hands back once the asset is resident.
//
// This replaces the C++ source's CRTP manager-interface hierarchy
// (AssetRegistryModuleInterface, templated on the derived module): Go has no
// template specialization, so each concrete module is a plain type
// implementing this interface, and the type-erasure needed to store
// heterogeneous modules in one table is done explicitly below via
// moduleAdapter and the any-boxing in AssetManagerBase, rather than
// implicitly via inheritance.
type Module[T, H any] interface {
	// Create loads source and makes the asset resident, returning its
	// device handle.
	Create(source AssetSource[T]) (H, error)
	// Destroy releases the device resources held by handle.
	Destroy(handle H)
	// LocalID returns the module-issued index backing handle (e.g. a
	// GeometryHandle's DeviceIndex). CreateAsset surfaces this value as the
	// asset's TypedAssetID[T].LocalID(), so it must equal whatever id the
	// module itself used to place the asset in its own table.
	LocalID(handle H) uint32
}

// anyModule is the type-erased form of Module[T, H], storable in a single
// map keyed by AssetType regardless of each module's T and H.
type anyModule interface {
	createAny(source any) (any, error)
	destroyAny(handle any)
	localIDAny(handle any) uint32
}

// moduleAdapter closes over the concrete type parameters of one Module
// implementation and exposes it through the type-erased anyModule
// interface. It is the Go analogue of the tagged-union entry spec.md §9
// calls for in place of CRTP: one (AssetType) -> impl slot in a table, with
// the type recovery happening via explicit type assertions at the boundary
// instead of a vtable.
type moduleAdapter[T, H any] struct {
	impl Module[T, H]
}

func (a moduleAdapter[T, H]) createAny(source any) (any, error) {
	typed, ok := source.(AssetSource[T])
	if !ok {
		return nil, fmt.Errorf("registry: source type mismatch for module")
	}
	return a.impl.Create(typed)
}

func (a moduleAdapter[T, H]) destroyAny(handle any) {
	typed, ok := handle.(H)
	if !ok {
		panic(&InvalidAssetTypeError{Context: "registry.Module.Destroy: handle type mismatch"})
	}
	a.impl.Destroy(typed)
}

func (a moduleAdapter[T, H]) localIDAny(handle any) uint32 {
	typed, ok := handle.(H)
	if !ok {
		panic(&InvalidAssetTypeError{Context: "registry.Module.LocalID: handle type mismatch"})
	}
	return a.impl.LocalID(typed)
}

// AssetRegistry is the (AssetType -> Module) table. One AssetRegistry is
// shared by every AssetManagerBase in a process; RegisterModule is normally
// called once per concrete asset type during setup.
type AssetRegistry struct {
	mu      sync.RWMutex
	modules map[AssetType]anyModule
}

// NewAssetRegistry returns an empty AssetRegistry.
func NewAssetRegistry() *AssetRegistry {
	return &AssetRegistry{modules: make(map[AssetType]anyModule)}
}

// RegisterModule binds the module implementing type T's device lifecycle
// into r. Registering the same AssetType twice panics: this mirrors the
// source's "module indices are stable after startup" invariant — the table
// is built once and treated as read-only thereafter.
func RegisterModule[T, H any](r *AssetRegistry, traits TypeTraits[T], impl Module[T, H]) {
	t := traits.AssetType()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modules[t]; exists {
		panic(fmt.Sprintf("registry: module for asset type %q already registered", t))
	}
	r.modules[t] = moduleAdapter[T, H]{impl: impl}
}

func (r *AssetRegistry) lookup(t AssetType) (anyModule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[t]
	return m, ok
}

// createInRegistry type-erases source, routes it to the module registered
// for t, and recovers the concrete handle type H from the result, along
// with the module-issued local id for that handle.
func createInRegistry[T, H any](r *AssetRegistry, t AssetType, source AssetSource[T]) (H, uint32, error) {
	var zero H
	m, ok := r.lookup(t)
	if !ok {
		panic(&InvalidAssetTypeError{Actual: t, Context: "registry: no module registered for asset type"})
	}
	result, err := m.createAny(source)
	if err != nil {
		return zero, 0, err
	}
	handle, ok := result.(H)
	if !ok {
		panic(&InvalidAssetTypeError{Actual: t, Context: "registry: module returned unexpected handle type"})
	}
	return handle, m.localIDAny(result), nil
}

func destroyInRegistry(r *AssetRegistry, t AssetType, handle any) {
	m, ok := r.lookup(t)
	if !ok {
		panic(&InvalidAssetTypeError{Actual: t, Context: "registry: no module registered for asset type"})
	}
	m.destroyAny(handle)
}
