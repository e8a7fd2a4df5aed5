// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"sync"

	"cogentcore.org/torch/assets"
)

// TextureData is the host-side form of a texture asset: raw pixel data plus
// the dimensions needed to build the device image.
type TextureData struct {
	Width  uint32
	Height uint32
	Pixels []byte
}

// textureSlot is the registry's internal per-texture bookkeeping: the
// device index other assets reference it by, plus a reference count
// (multiple materials can share one loaded texture).
type textureSlot struct {
	deviceIndex uint32
	refCount    int32
	data        TextureData
}

// TextureHandle is the value a loaded texture asset's consumers hold. It
// carries only the device index; ref-counting is internal to the registry
// and driven by Destroy.
type TextureHandle struct {
	DeviceIndex uint32
}

// TextureRegistry is the device registry module backing texture assets. Its
// descriptor updates are double-buffered: a texture newly loaded this frame
// is queued for a descriptor write in both the current and the next frame.
// Destroy queues no descriptor write, and the device index it releases can
// be handed out by the very next Create. FlushDescriptorUpdates must be
// called once per frame, in frame order, for the two queued writes to land
// in consecutive frames; it does not itself track how many frames are actually in flight,
// so a caller pipelining more than two frames needs its own extra delay.
type TextureRegistry struct {
	mu      sync.Mutex
	ids     idPool
	slots   map[uint32]*textureSlot
	pending [2]map[uint32]bool // pending[frame] = device indices needing a descriptor write
	frame   int
}

// NewTextureRegistry returns an empty TextureRegistry.
func NewTextureRegistry() *TextureRegistry {
	return &TextureRegistry{
		slots:   make(map[uint32]*textureSlot),
		pending: [2]map[uint32]bool{{}, {}},
	}
}

// Create loads source, assigns it a device index, and marks that index
// dirty in both frame buffers.
func (r *TextureRegistry) Create(source assets.AssetSource[TextureData]) (TextureHandle, error) {
	data, perr := source.Load()
	if perr != nil {
		return TextureHandle{}, perr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.ids.generate()
	r.slots[idx] = &textureSlot{deviceIndex: idx, refCount: 1, data: data}
	r.pending[0][idx] = true
	r.pending[1][idx] = true
	return TextureHandle{DeviceIndex: idx}, nil
}

// Destroy decrements handle's reference count, releasing the slot and its
// device index only once the count reaches zero.
func (r *TextureRegistry) Destroy(handle TextureHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[handle.DeviceIndex]
	if !ok {
		return
	}
	slot.refCount--
	if slot.refCount > 0 {
		return
	}
	delete(r.slots, handle.DeviceIndex)
	r.ids.release(handle.DeviceIndex)
}

// LocalID returns handle's device index.
func (r *TextureRegistry) LocalID(handle TextureHandle) uint32 {
	return handle.DeviceIndex
}

// Retain increments handle's reference count, for a second asset that
// shares the same loaded texture.
func (r *TextureRegistry) Retain(handle TextureHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slot, ok := r.slots[handle.DeviceIndex]; ok {
		slot.refCount++
	}
}

// FlushDescriptorUpdates returns the set of device indices that need a
// descriptor write for the current frame, clears them for this frame's
// buffer, and advances to the next frame.
func (r *TextureRegistry) FlushDescriptorUpdates() []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.pending[r.frame]
	updates := make([]uint32, 0, len(cur))
	for idx := range cur {
		updates = append(updates, idx)
	}
	r.pending[r.frame] = map[uint32]bool{}
	r.frame = 1 - r.frame
	return updates
}

// Get returns the raw texture data registered at deviceIndex, for tests and
// for the code that actually uploads it to the device.
func (r *TextureRegistry) Get(deviceIndex uint32) (TextureData, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[deviceIndex]
	if !ok {
		return TextureData{}, false
	}
	return slot.data, true
}

// Count returns the number of live texture slots.
func (r *TextureRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}
