// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package descriptor implements the name-to-descriptor registry that lets
// pipeline layout templates reference descriptor sets by a stable name,
// with the set itself resolved dynamically at command-recording time.
package descriptor

import (
	"fmt"
	"sync"

	vk "github.com/goki/vulkan"
)

// Name is a stable, human-chosen identifier for a descriptor (e.g.
// "textures", "lights", "gBuffer"). Pipeline layout templates store Names;
// the registry translates them to IDs once, at layout-build time.
type Name string

// ID is the dense integer form of a Name, looked up once and cached by
// callers that need fast repeated access (pipeline layouts built from a
// template, for instance).
type ID uint32

// Provider supplies the live vk.DescriptorSet for a descriptor at command
// recording time. Providers can change which set they return between
// frames (e.g. TextureRegistry's double-buffered sets) without the
// descriptor's Name or ID changing.
type Provider interface {
	DescriptorSet() vk.DescriptorSet
}

// DescriptorUndefinedError is returned when a layout is requested for a
// name that was never passed to DefineDescriptor.
type DescriptorUndefinedError struct {
	Name Name
}

func (e *DescriptorUndefinedError) Error() string {
	return fmt.Sprintf("descriptor %q has no registered layout", e.Name)
}

// DescriptorUnprovidedError is returned when a descriptor set is requested
// for an ID that has a layout but no registered Provider.
type DescriptorUnprovidedError struct {
	ID ID
}

func (e *DescriptorUnprovidedError) Error() string {
	return fmt.Sprintf("descriptor id %d has no registered provider", e.ID)
}

// Registry maps descriptor Names to IDs, and IDs to {layout, provider}
// pairs. Names and IDs exist as two forms of the same key because pipeline
// layout templates (built once, then cloned often) want to resolve the
// string once and carry the cheaper integer ID afterward.
type Registry struct {
	mu sync.RWMutex

	idPerName map[Name]ID
	nextID    ID

	layouts   map[ID]vk.DescriptorSetLayout
	providers map[ID]Provider
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		idPerName: make(map[Name]ID),
		layouts:   make(map[ID]vk.DescriptorSetLayout),
		providers: make(map[ID]Provider),
	}
}

// StandardNames is the fixed descriptor-set order the render pipeline
// expects: global transforms bound once per frame, lighting next, and the
// large, frequently-rebound texture set last. Interning them in this order
// up front keeps their IDs stable across registries instead of depending on
// whichever module happens to call DefineDescriptor first.
var StandardNames = []Name{"transforms", "lights", "textures"}

// NewRegistryWithStandardOrder returns a Registry with StandardNames
// pre-interned, so their IDs match the set index a pipeline layout's
// descriptor bindings are written against regardless of call order.
func NewRegistryWithStandardOrder() *Registry {
	r := NewRegistry()
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range StandardNames {
		r.internLocked(name)
	}
	return r
}

func (r *Registry) internLocked(name Name) ID {
	if id, ok := r.idPerName[name]; ok {
		return id
	}
	id := r.nextID
	r.nextID++
	r.idPerName[name] = id
	return id
}

// DefineDescriptor registers name's layout, for use at pipeline layout
// creation time, and returns its ID. Defining a name a second time panics.
func (r *Registry) DefineDescriptor(name Name, layout vk.DescriptorSetLayout) ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.internLocked(name)
	if _, exists := r.layouts[id]; exists {
		panic(fmt.Sprintf("descriptor %q is already defined", name))
	}
	r.layouts[id] = layout
	return id
}

// ProvideDescriptor registers the Provider that will supply name's live
// descriptor set at command-recording time, and returns its ID.
func (r *Registry) ProvideDescriptor(name Name, provider Provider) ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.internLocked(name)
	r.providers[id] = provider
	return id
}

// GetDescriptorID returns the ID interned for name, if any name has been
// passed to DefineDescriptor or ProvideDescriptor for it yet.
func (r *Registry) GetDescriptorID(name Name) (ID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.idPerName[name]
	return id, ok
}

// GetDescriptorLayout returns the layout registered for name.
func (r *Registry) GetDescriptorLayout(name Name) (vk.DescriptorSetLayout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.idPerName[name]
	if !ok {
		return nil, &DescriptorUndefinedError{Name: name}
	}
	layout, ok := r.layouts[id]
	if !ok {
		return nil, &DescriptorUndefinedError{Name: name}
	}
	return layout, nil
}

// GetDescriptor returns the Provider registered for id, for use while
// recording commands.
func (r *Registry) GetDescriptor(id ID) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, &DescriptorUnprovidedError{ID: id}
	}
	return p, nil
}
