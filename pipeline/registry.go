// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"sync"

	"github.com/jinzhu/copier"

	"cogentcore.org/torch/descriptor"
	"cogentcore.org/torch/renderpass"
)

// LayoutUndefinedError is returned when a layout id was never registered.
type LayoutUndefinedError struct {
	ID LayoutID
}

func (e *LayoutUndefinedError) Error() string {
	return fmt.Sprintf("pipeline layout %d is not registered", e.ID)
}

// PipelineUndefinedError is returned when a pipeline id was never
// registered.
type PipelineUndefinedError struct {
	ID PipelineID
}

func (e *PipelineUndefinedError) Error() string {
	return fmt.Sprintf("pipeline %d is not registered", e.ID)
}

// PipelineKindError is returned when a pipeline is cloned or resolved as
// the wrong kind (graphics vs. compute).
type PipelineKindError struct {
	ID     PipelineID
	Wanted string
}

func (e *PipelineKindError) Error() string {
	return fmt.Sprintf("pipeline %d is not a %s pipeline", e.ID, e.Wanted)
}

type pipelineKind int

const (
	kindGraphics pipelineKind = iota
	kindCompute
)

type pipelineFactory struct {
	kind       pipelineKind
	graphics   Template
	compute    ComputeTemplate
	layout     LayoutID
	renderPass renderpass.Name
}

// Registry is the process-wide table of pipeline layout and pipeline
// templates. Templates, once registered, live for the process's lifetime;
// a Storage built from MakeStorage is what turns them into real Vulkan
// objects, lazily and per render configuration.
type Registry struct {
	layoutMu        sync.Mutex
	layoutIDs       idCounter
	layoutTemplates map[LayoutID]LayoutTemplate

	pipelineMu    sync.Mutex
	pipelineIDs   idCounter
	pipelineDefs  map[PipelineID]pipelineFactory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		layoutTemplates: make(map[LayoutID]LayoutTemplate),
		pipelineDefs:    make(map[PipelineID]pipelineFactory),
	}
}

// RegisterPipelineLayout stores t and returns a stable id for it.
func (r *Registry) RegisterPipelineLayout(t LayoutTemplate) LayoutID {
	r.layoutMu.Lock()
	defer r.layoutMu.Unlock()
	id := LayoutID(r.layoutIDs.generate())
	r.layoutTemplates[id] = t
	return id
}

// ClonePipelineLayout returns a deep copy of the template registered as id,
// for inspection or as the basis of a derived layout.
func (r *Registry) ClonePipelineLayout(id LayoutID) (LayoutTemplate, error) {
	r.layoutMu.Lock()
	defer r.layoutMu.Unlock()
	t, ok := r.layoutTemplates[id]
	if !ok {
		return LayoutTemplate{}, &LayoutUndefinedError{ID: id}
	}
	var out LayoutTemplate
	if err := copier.Copy(&out, &t); err != nil {
		return LayoutTemplate{}, err
	}
	return out, nil
}

func (r *Registry) registerPipeline(f pipelineFactory) PipelineID {
	r.pipelineMu.Lock()
	defer r.pipelineMu.Unlock()
	id := PipelineID(r.pipelineIDs.generate())
	r.pipelineDefs[id] = f
	return id
}

// RegisterPipeline stores a graphics pipeline template bound to layout and
// renderPass, returning a stable id for it.
func (r *Registry) RegisterPipeline(t Template, layout LayoutID, renderPass renderpass.Name) PipelineID {
	return r.registerPipeline(pipelineFactory{
		kind:       kindGraphics,
		graphics:   t,
		layout:     layout,
		renderPass: renderPass,
	})
}

// RegisterComputePipeline stores a compute pipeline template bound to
// layout, returning a stable id for it.
func (r *Registry) RegisterComputePipeline(t ComputeTemplate, layout LayoutID) PipelineID {
	return r.registerPipeline(pipelineFactory{
		kind:    kindCompute,
		compute: t,
		layout:  layout,
	})
}

func (r *Registry) lookupPipeline(id PipelineID) (pipelineFactory, error) {
	r.pipelineMu.Lock()
	defer r.pipelineMu.Unlock()
	f, ok := r.pipelineDefs[id]
	if !ok {
		return pipelineFactory{}, &PipelineUndefinedError{ID: id}
	}
	return f, nil
}

// CloneGraphicsPipeline returns a deep copy of the graphics template
// registered as id.
func (r *Registry) CloneGraphicsPipeline(id PipelineID) (Template, error) {
	f, err := r.lookupPipeline(id)
	if err != nil {
		return Template{}, err
	}
	if f.kind != kindGraphics {
		return Template{}, &PipelineKindError{ID: id, Wanted: "graphics"}
	}
	var out Template
	if err := copier.Copy(&out, &f.graphics); err != nil {
		return Template{}, err
	}
	return out, nil
}

// CloneComputePipeline returns a deep copy of the compute template
// registered as id.
func (r *Registry) CloneComputePipeline(id PipelineID) (ComputeTemplate, error) {
	f, err := r.lookupPipeline(id)
	if err != nil {
		return ComputeTemplate{}, err
	}
	if f.kind != kindCompute {
		return ComputeTemplate{}, &PipelineKindError{ID: id, Wanted: "compute"}
	}
	var out ComputeTemplate
	if err := copier.Copy(&out, &f.compute); err != nil {
		return ComputeTemplate{}, err
	}
	return out, nil
}

// GetPipelineLayout returns the layout id pipeline id was registered with.
func (r *Registry) GetPipelineLayout(id PipelineID) (LayoutID, error) {
	f, err := r.lookupPipeline(id)
	if err != nil {
		return NoLayoutID, err
	}
	return f.layout, nil
}

// GetPipelineRenderPass returns the render pass name a graphics pipeline
// was registered with.
func (r *Registry) GetPipelineRenderPass(id PipelineID) (renderpass.Name, error) {
	f, err := r.lookupPipeline(id)
	if err != nil {
		return "", err
	}
	if f.kind != kindGraphics {
		return "", &PipelineKindError{ID: id, Wanted: "graphics"}
	}
	return f.renderPass, nil
}

// MakeStorage returns a new Storage that lazily realizes this registry's
// templates into live Vulkan objects using the given builders.
func (r *Registry) MakeStorage(
	layoutBuilder LayoutBuilder,
	graphicsBuilder GraphicsBuilder,
	computeBuilder ComputeBuilder,
	renderPasses *renderpass.Registry,
	descriptors *descriptor.Registry,
) *Storage {
	return newStorage(r, layoutBuilder, graphicsBuilder, computeBuilder, renderPasses, descriptors)
}
