// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"sync"

	vk "github.com/goki/vulkan"

	"cogentcore.org/torch/descriptor"
	"cogentcore.org/torch/renderpass"
)

// GraphicsBuilder constructs the real Vulkan pipeline object a graphics
// Template describes, bound to an already-realized layout and render pass.
type GraphicsBuilder interface {
	BuildGraphics(layout PipelineLayout, t Template, rp renderpass.CompatInfo) (vk.Pipeline, error)
}

// ComputeBuilder constructs the real Vulkan pipeline object a
// ComputeTemplate describes, bound to an already-realized layout.
type ComputeBuilder interface {
	BuildCompute(layout PipelineLayout, t ComputeTemplate) (vk.Pipeline, error)
}

// Storage is a render-configuration-scoped cache of realized pipeline
// layouts and pipelines, built lazily from a Registry's templates on first
// Get. It is documented single-threaded per render configuration: distinct
// render configurations get distinct Storage instances rather than sharing
// one behind a lock.
type Storage struct {
	registry        *Registry
	layoutBuilder   LayoutBuilder
	graphicsBuilder GraphicsBuilder
	computeBuilder  ComputeBuilder
	renderPasses    *renderpass.Registry
	descriptors     *descriptor.Registry

	layouts   map[LayoutID]PipelineLayout
	pipelines map[PipelineID]vk.Pipeline
}

func newStorage(
	registry *Registry,
	layoutBuilder LayoutBuilder,
	graphicsBuilder GraphicsBuilder,
	computeBuilder ComputeBuilder,
	renderPasses *renderpass.Registry,
	descriptors *descriptor.Registry,
) *Storage {
	return &Storage{
		registry:        registry,
		layoutBuilder:   layoutBuilder,
		graphicsBuilder: graphicsBuilder,
		computeBuilder:  computeBuilder,
		renderPasses:    renderPasses,
		descriptors:     descriptors,
		layouts:         make(map[LayoutID]PipelineLayout),
		pipelines:       make(map[PipelineID]vk.Pipeline),
	}
}

// GetLayout returns the realized PipelineLayout for id, building it on
// first access and caching it thereafter.
func (s *Storage) GetLayout(id LayoutID) (PipelineLayout, error) {
	if layout, ok := s.layouts[id]; ok {
		return layout, nil
	}
	t, err := s.registry.ClonePipelineLayout(id)
	if err != nil {
		return PipelineLayout{}, err
	}
	layout, err := s.layoutBuilder.BuildLayout(t, s.descriptors)
	if err != nil {
		return PipelineLayout{}, fmt.Errorf("building pipeline layout %d: %w", id, err)
	}
	logger().Debug("built pipeline layout", "layout", id)
	s.layouts[id] = layout
	return layout, nil
}

// Get returns the realized vk.Pipeline for id, building it (and its
// layout, and its render pass compatibility info, for a graphics pipeline)
// on first access and caching it thereafter.
func (s *Storage) Get(id PipelineID) (vk.Pipeline, error) {
	if p, ok := s.pipelines[id]; ok {
		return p, nil
	}

	f, err := s.registry.lookupPipeline(id)
	if err != nil {
		return nil, err
	}
	layout, err := s.GetLayout(f.layout)
	if err != nil {
		return nil, fmt.Errorf("pipeline %d: %w", id, err)
	}

	var pipe vk.Pipeline
	switch f.kind {
	case kindGraphics:
		rp, err := s.renderPasses.ResolveRenderPass(f.renderPass)
		if err != nil {
			return nil, fmt.Errorf("pipeline %d: %w", id, err)
		}
		pipe, err = s.graphicsBuilder.BuildGraphics(layout, f.graphics, rp)
		if err != nil {
			return nil, fmt.Errorf("building pipeline %d: %w", id, err)
		}
	case kindCompute:
		pipe, err = s.computeBuilder.BuildCompute(layout, f.compute)
		if err != nil {
			return nil, fmt.Errorf("building pipeline %d: %w", id, err)
		}
	}
	logger().Debug("built pipeline", "pipeline", id, "kind", f.kind)
	s.pipelines[id] = pipe
	return pipe, nil
}

// Clear drops every realized layout and pipeline, forcing the next Get/
// GetLayout call to rebuild from the registry's templates. It does not
// call vkDestroy* on the dropped handles: destruction of the underlying
// Vulkan objects is the builders' and the owning device's responsibility,
// not Storage's (Storage never receives a gpu.Device).
func (s *Storage) Clear() {
	logger().Info("clearing pipeline storage", "layouts", len(s.layouts), "pipelines", len(s.pipelines))
	s.layouts = make(map[LayoutID]PipelineLayout)
	s.pipelines = make(map[PipelineID]vk.Pipeline)
}
