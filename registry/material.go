// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"sync"

	"cogentcore.org/torch/assets"
)

// NoTexture is the sentinel "no texture bound" device index, used in the
// MaterialData texture fields.
const NoTexture uint32 = ^uint32(0)

// MaterialData mirrors the source's Material POD: a plain color plus
// lighting coefficients, optional textures, and an opt-out of lighting
// entirely for unlit materials.
type MaterialData struct {
	Color    [4]float32
	KAmbient [4]float32
	KDiffuse [4]float32
	KSpecular [4]float32

	Shininess    float32
	Reflectivity float32

	DiffuseTexture  uint32
	SpecularTexture uint32
	BumpTexture     uint32

	PerformLighting bool
}

// DefaultMaterialData returns a MaterialData with the source's defaults:
// opaque black color, unit lighting coefficients, no textures, lighting on.
func DefaultMaterialData() MaterialData {
	return MaterialData{
		Color:           [4]float32{0, 0, 0, 1},
		KAmbient:        [4]float32{1, 1, 1, 1},
		KDiffuse:        [4]float32{1, 1, 1, 1},
		KSpecular:       [4]float32{1, 1, 1, 1},
		Shininess:       1,
		DiffuseTexture:  NoTexture,
		SpecularTexture: NoTexture,
		BumpTexture:     NoTexture,
		PerformLighting: true,
	}
}

// MaterialHandle is the device-resident form of a material asset: its
// device buffer index plus the data written there.
type MaterialHandle struct {
	DeviceIndex uint32
	Data        MaterialData
}

// MaterialRegistry is the device registry module backing material assets.
// Unlike TextureRegistry's double-buffered ping-pong, a changed material
// coalesces into one dirty flag: the whole buffer is re-uploaded on the
// next FlushDirty call, since materials are small and rewritten together
// cheaply (mirrors the source's single coalesced buffer write in
// MaterialRegistry::update).
type MaterialRegistry struct {
	mu        sync.Mutex
	ids       idPool
	materials map[uint32]MaterialData
	dirty     bool
}

// NewMaterialRegistry returns an empty MaterialRegistry.
func NewMaterialRegistry() *MaterialRegistry {
	return &MaterialRegistry{materials: make(map[uint32]MaterialData)}
}

// Create registers data and marks the registry dirty.
func (r *MaterialRegistry) Create(source assets.AssetSource[MaterialData]) (MaterialHandle, error) {
	data, perr := source.Load()
	if perr != nil {
		return MaterialHandle{}, perr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.ids.generate()
	r.materials[idx] = data
	r.dirty = true
	return MaterialHandle{DeviceIndex: idx, Data: data}, nil
}

// Destroy removes handle's material and marks the registry dirty.
func (r *MaterialRegistry) Destroy(handle MaterialHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.materials, handle.DeviceIndex)
	r.ids.release(handle.DeviceIndex)
	r.dirty = true
}

// LocalID returns handle's device index.
func (r *MaterialRegistry) LocalID(handle MaterialHandle) uint32 {
	return handle.DeviceIndex
}

// FlushDirty reports whether any material changed since the last flush,
// and returns every currently-live material keyed by device index,
// clearing the dirty flag.
func (r *MaterialRegistry) FlushDirty() (map[uint32]MaterialData, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.dirty {
		return nil, false
	}
	snapshot := make(map[uint32]MaterialData, len(r.materials))
	for k, v := range r.materials {
		snapshot[k] = v
	}
	r.dirty = false
	return snapshot, true
}

// Get returns the material data registered at deviceIndex, if any.
func (r *MaterialRegistry) Get(deviceIndex uint32) (MaterialData, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.materials[deviceIndex]
	return d, ok
}
