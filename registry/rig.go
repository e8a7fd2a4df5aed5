// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"fmt"
	"sync"

	"cogentcore.org/torch/assets"
)

// Bone is one joint of a rig's skeleton.
type Bone struct {
	Name          string
	InverseBindPose [16]float32
	ParentIndex   int // -1 for root bones
}

// RigData is the host-side form of a rig asset: a named skeleton plus the
// animations defined against it. Unlike geometry/texture/material, rigs
// hold no device buffer of their own in the source (RigRegistry's storage
// is host-only), so RigRegistry keeps no gpu.BufferPool.
type RigData struct {
	Name       string
	Bones      []Bone
	Animations []assets.TypedAssetID[AnimationData]
}

// RigHandle is the handle consumers of a loaded rig hold: bone lookup by
// name and the rig's attached animation list.
type RigHandle struct {
	deviceIndex uint32
	name        string
	bones       []Bone
	boneNames   map[string]int
	animations  []assets.TypedAssetID[AnimationData]
}

// Name returns the rig's display name.
func (h RigHandle) Name() string { return h.name }

// BoneCount returns the number of bones in the rig.
func (h RigHandle) BoneCount() int { return len(h.bones) }

// BoneByName returns the bone named name, or an error if no such bone
// exists (mirrors the source's getBoneByName, which throws std::out_of_range).
func (h RigHandle) BoneByName(name string) (Bone, error) {
	idx, ok := h.boneNames[name]
	if !ok {
		return Bone{}, fmt.Errorf("rig %q has no bone named %q", h.name, name)
	}
	return h.bones[idx], nil
}

// AnimationCount returns the number of animations attached to the rig.
func (h RigHandle) AnimationCount() int { return len(h.animations) }

// AnimationAt returns the animation at index, or an error if index is out
// of range.
func (h RigHandle) AnimationAt(index int) (assets.TypedAssetID[AnimationData], error) {
	if index < 0 || index >= len(h.animations) {
		return assets.TypedAssetID[AnimationData]{}, fmt.Errorf("rig %q has no animation at index %d", h.name, index)
	}
	return h.animations[index], nil
}

// RigRegistry is the device registry module backing rig assets.
type RigRegistry struct {
	mu      sync.Mutex
	ids     idPool
	handles map[uint32]RigHandle
}

// NewRigRegistry returns an empty RigRegistry.
func NewRigRegistry() *RigRegistry {
	return &RigRegistry{handles: make(map[uint32]RigHandle)}
}

// Create registers data, indexing its bones by name.
func (r *RigRegistry) Create(source assets.AssetSource[RigData]) (RigHandle, error) {
	data, perr := source.Load()
	if perr != nil {
		return RigHandle{}, perr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.ids.generate()
	boneNames := make(map[string]int, len(data.Bones))
	for i, b := range data.Bones {
		boneNames[b.Name] = i
	}
	handle := RigHandle{
		deviceIndex: idx,
		name:        data.Name,
		bones:       data.Bones,
		boneNames:   boneNames,
		animations:  data.Animations,
	}
	r.handles[idx] = handle
	return handle, nil
}

// Destroy releases handle's device index for reuse.
func (r *RigRegistry) Destroy(handle RigHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handles, handle.deviceIndex)
	r.ids.release(handle.deviceIndex)
}

// LocalID returns handle's device index.
func (r *RigRegistry) LocalID(handle RigHandle) uint32 {
	return handle.deviceIndex
}
