// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline implements the pipeline and pipeline-layout template
// registry: callers register a description of a pipeline (its shader
// stages, vertex input, descriptor/push-constant layout) once, and the
// registry hands back a stable ID that a RenderConfig-scoped Storage later
// resolves into a real Vulkan object, building it lazily and only once.
package pipeline

import "sync/atomic"

// LayoutID identifies a pipeline layout registered with a Registry.
type LayoutID uint64

// NoLayoutID is the sentinel "no layout" value.
const NoLayoutID LayoutID = ^LayoutID(0)

// IsValid reports whether id was issued by Registry.RegisterPipelineLayout.
func (id LayoutID) IsValid() bool { return id != NoLayoutID }

// PipelineID identifies a pipeline registered with a Registry.
type PipelineID uint64

// NoPipelineID is the sentinel "no pipeline" value.
const NoPipelineID PipelineID = ^PipelineID(0)

// IsValid reports whether id was issued by Registry.RegisterPipeline.
func (id PipelineID) IsValid() bool { return id != NoPipelineID }

// idCounter is a lock-free monotonic id generator. The registry never
// recycles layout/pipeline ids: templates live for the process's lifetime
// once registered, unlike the per-asset pools in assets/registry.
type idCounter struct {
	next uint64
}

func (c *idCounter) generate() uint64 {
	return atomic.AddUint64(&c.next, 1) - 1
}
