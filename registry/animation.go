// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"sync"

	"cogentcore.org/torch/assets"
	"cogentcore.org/torch/gpu"
)

// BoneTransform is one bone's local transform at one animation keyframe.
type BoneTransform struct {
	Position [3]float32
	Rotation [4]float32
	Scale    [3]float32
}

const boneTransformSize = 4 * (3 + 4 + 3)

// AnimationData is the host-side form of an animation asset: a named clip
// with one BoneTransform per bone per frame.
type AnimationData struct {
	Name         string
	FrameCount   uint32
	BoneCount    uint32
	DurationMs   float32
	FrameTimeMs  float32
	Keyframes    [][]BoneTransform // Keyframes[frame][bone]
}

// AnimationHandle is the device-resident form of an animation asset: its
// registry-issued index (a pool id, not a byte offset into the shared
// animation buffer) plus the timing data the animation engine needs to step
// through keyframes.
type AnimationHandle struct {
	BufferIndex uint32
	FrameCount  uint32
	DurationMs  float32
	FrameTimeMs float32
}

// AnimationRegistry is the device registry module backing animation
// assets. Unlike TextureRegistry, it does not double-buffer: keyframe space
// is reserved from one growing BufferPool, since animation data is
// read-only once uploaded. The offset Alloc returns is not kept.
type AnimationRegistry struct {
	mu      sync.Mutex
	ids     idPool
	handles map[uint32]AnimationHandle
	data    map[uint32]AnimationData

	Buffer *gpu.BufferPool
}

// NewAnimationRegistry returns an empty AnimationRegistry.
func NewAnimationRegistry() *AnimationRegistry {
	return &AnimationRegistry{
		handles: make(map[uint32]AnimationHandle),
		data:    make(map[uint32]AnimationData),
		Buffer:  gpu.NewBufferPool(boneTransformSize),
	}
}

// Create loads source, reserves space for its keyframe data, and returns
// the resulting handle.
func (r *AnimationRegistry) Create(source assets.AssetSource[AnimationData]) (AnimationHandle, error) {
	data, perr := source.Load()
	if perr != nil {
		return AnimationHandle{}, perr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.ids.generate()
	size := len(data.Keyframes) * int(data.BoneCount) * boneTransformSize
	r.Buffer.Alloc(size)

	handle := AnimationHandle{
		BufferIndex: idx,
		FrameCount:  data.FrameCount,
		DurationMs:  data.DurationMs,
		FrameTimeMs: data.FrameTimeMs,
	}
	r.handles[idx] = handle
	r.data[idx] = data
	return handle, nil
}

// Destroy releases handle's device index for reuse; the buffer space it
// occupied is reclaimed only on the next full Reset of r.Buffer.
func (r *AnimationRegistry) Destroy(handle AnimationHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handles, handle.BufferIndex)
	delete(r.data, handle.BufferIndex)
	r.ids.release(handle.BufferIndex)
}

// LocalID returns handle's buffer index.
func (r *AnimationRegistry) LocalID(handle AnimationHandle) uint32 {
	return handle.BufferIndex
}

// Keyframes returns the raw keyframe data registered at bufferIndex, for
// tests and for the code that actually uploads it to the device.
func (r *AnimationRegistry) Keyframes(bufferIndex uint32) ([][]BoneTransform, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.data[bufferIndex]
	if !ok {
		return nil, false
	}
	return d.Keyframes, true
}
