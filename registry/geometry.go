// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"sync"

	"cogentcore.org/torch/assets"
	"cogentcore.org/torch/gpu"
)

// Vertex is one vertex of geometry data: position, normal, and a single UV
// set. Matches the field set the teacher's vphong shaders expect a vertex
// buffer to provide.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

const vertexSize = 4 * (3 + 3 + 2)

// GeometryData is the host-side form of a geometry asset: a vertex buffer
// and an index buffer, optionally paired with a rig for skinned meshes.
type GeometryData struct {
	Vertices []Vertex
	Indices  []uint32
	Rig      *assets.TypedAssetID[RigData]
}

// GeometryHandle is the device-resident form of a geometry asset: buffer
// offsets into the registry's shared vertex/index buffer pools.
type GeometryHandle struct {
	DeviceIndex uint32

	VertexOffset int
	IndexOffset  int
	NumVertices  uint32
	NumIndices   uint32

	Rig *RigHandle
}

// GeometryRegistry is the device registry module backing geometry assets.
// It satisfies assets.Module[GeometryData, GeometryHandle].
type GeometryRegistry struct {
	mu      sync.Mutex
	ids     idPool
	handles map[uint32]GeometryHandle

	VertexPool *gpu.BufferPool
	IndexPool  *gpu.BufferPool
}

// NewGeometryRegistry returns an empty GeometryRegistry backed by its own
// vertex and index buffer pools, aligned to vertexSize / 4 bytes
// respectively.
func NewGeometryRegistry() *GeometryRegistry {
	return &GeometryRegistry{
		handles:    make(map[uint32]GeometryHandle),
		VertexPool: gpu.NewBufferPool(vertexSize),
		IndexPool:  gpu.NewBufferPool(4),
	}
}

// Create loads source and reserves space for its vertex/index data in the
// registry's buffer pools.
func (r *GeometryRegistry) Create(source assets.AssetSource[GeometryData]) (GeometryHandle, error) {
	data, perr := source.Load()
	if perr != nil {
		return GeometryHandle{}, perr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.ids.generate()
	handle := GeometryHandle{
		DeviceIndex:  idx,
		VertexOffset: r.VertexPool.Alloc(len(data.Vertices) * vertexSize),
		IndexOffset:  r.IndexPool.Alloc(len(data.Indices) * 4),
		NumVertices:  uint32(len(data.Vertices)),
		NumIndices:   uint32(len(data.Indices)),
	}
	r.handles[idx] = handle
	return handle, nil
}

// Destroy frees handle's device index for reuse. The buffer-pool space it
// occupied is not reclaimed until the next full Reset: GeometryRegistry's
// pools are bump allocators, not general suballocators (see gpu.BufferPool).
func (r *GeometryRegistry) Destroy(handle GeometryHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handles, handle.DeviceIndex)
	r.ids.release(handle.DeviceIndex)
}

// LocalID returns handle's device index, the id CreateAsset surfaces as
// the asset's TypedAssetID[GeometryData].LocalID().
func (r *GeometryRegistry) LocalID(handle GeometryHandle) uint32 {
	return handle.DeviceIndex
}

// Get returns the handle currently registered at deviceIndex, if any.
func (r *GeometryRegistry) Get(deviceIndex uint32) (GeometryHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[deviceIndex]
	return h, ok
}

// Count returns the number of live geometry handles.
func (r *GeometryRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}
