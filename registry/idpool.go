// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registry implements the per-type device registries that back the
// asset manager's modules: geometry, texture, material, rig, and animation
// data, plus the animation playback engine. Each registry type satisfies
// assets.Module[T, H] so it can be plugged into an assets.AssetRegistry.
package registry

import "sync"

// idPool is a mutex-guarded, pool-recycled generator of uint32 device
// indices, the same shape as the unexported pool in package assets. Kept as
// a small local type here rather than exported from assets because each
// registry's indices are meaningful only within that registry.
type idPool struct {
	mu   sync.Mutex
	free []uint32
	next uint32
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
