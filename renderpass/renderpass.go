// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package renderpass implements the name-to-render-pass registry that
// gives pipeline creation the "render pass compatibility" information it
// needs (either a traditional render pass + subpass, or the attachment
// formats VK_KHR_dynamic_rendering requires), resolved lazily by name.
package renderpass

import (
	"fmt"
	"sync"

	vk "github.com/goki/vulkan"
)

// Name identifies a render pass registered with a Registry.
type Name string

// Info is a traditional render pass plus the subpass a pipeline will run in.
type Info struct {
	Pass    vk.RenderPass
	Subpass uint32
}

// DynamicRenderingInfo is the attachment-format compatibility information
// VK_KHR_dynamic_rendering needs in place of an actual render pass object.
type DynamicRenderingInfo struct {
	ViewMask              uint32
	ColorAttachmentFormats []vk.Format
	DepthAttachmentFormat  vk.Format
	StencilAttachmentFormat vk.Format
}

// CompatInfo is either an Info or a DynamicRenderingInfo; exactly one of
// the two fields is set, mirroring the source's std::variant.
type CompatInfo struct {
	RenderPass *Info
	Dynamic    *DynamicRenderingInfo
}

// RenderPassUndefinedError is returned when ResolveRenderPass is asked for
// a name that was never registered.
type RenderPassUndefinedError struct {
	Name Name
}

func (e *RenderPassUndefinedError) Error() string {
	return fmt.Sprintf("render pass %q is not registered", e.Name)
}

// Getter lazily produces a CompatInfo, for render passes created
// conditionally or after the registry entry is added.
type Getter func() CompatInfo

// Registry maps render pass names to lazily-resolved compatibility
// information.
type Registry struct {
	mu      sync.RWMutex
	getters map[Name]Getter
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{getters: make(map[Name]Getter)}
}

// AddRenderPass registers a traditional render pass + subpass under name.
func (r *Registry) AddRenderPass(name Name, pass vk.RenderPass, subpass uint32) {
	info := Info{Pass: pass, Subpass: subpass}
	r.AddRenderPassGetter(name, func() CompatInfo {
		return CompatInfo{RenderPass: &info}
	})
}

// AddDynamicRenderingPass registers a renderpassless dynamic-rendering
// context under name.
func (r *Registry) AddDynamicRenderingPass(name Name, info DynamicRenderingInfo) {
	r.AddRenderPassGetter(name, func() CompatInfo {
		return CompatInfo{Dynamic: &info}
	})
}

// AddRenderPassGetter registers a lazy getter for name, in case the render
// pass is created conditionally or at a later point. Registering a name a
// second time panics.
func (r *Registry) AddRenderPassGetter(name Name, getter Getter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.getters[name]; exists {
		panic(fmt.Sprintf("render pass %q is already registered", name))
	}
	r.getters[name] = getter
}

// ResolveRenderPass returns the compatibility information registered for
// name.
func (r *Registry) ResolveRenderPass(name Name) (CompatInfo, error) {
	r.mu.RLock()
	getter, ok := r.getters[name]
	r.mu.RUnlock()
	if !ok {
		return CompatInfo{}, &RenderPassUndefinedError{Name: name}
	}
	return getter(), nil
}
