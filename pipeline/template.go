// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"encoding/binary"
	"math"

	vk "github.com/goki/vulkan"
)

// SpecEntry is one entry of a SpecConstants map, naming the byte range
// within Data that holds constantID's value.
type SpecEntry struct {
	ConstantID uint32
	Offset     uint32
	Size       uint32
}

// SpecConstants is an append-only store of shader specialization constant
// values, backing a vk.SpecializationInfo. Entries are never removed:
// appending a constant after MakeSpecializationInfo has been called is
// safe here (unlike the C++ original, Go slices under append don't leave
// dangling pointers into Data), but callers should still treat a returned
// vk.SpecializationInfo as a snapshot.
type SpecConstants struct {
	Entries []SpecEntry
	Data    []byte
}

// Empty reports whether no constants have been set.
func (s *SpecConstants) Empty() bool {
	return len(s.Entries) == 0
}

// SetUint32 appends a uint32-valued specialization constant.
func (s *SpecConstants) SetUint32(constantID uint32, value uint32) {
	s.appendRaw(constantID, 4, func(b []byte) { binary.LittleEndian.PutUint32(b, value) })
}

// SetFloat32 appends a float32-valued specialization constant.
func (s *SpecConstants) SetFloat32(constantID uint32, value float32) {
	s.appendRaw(constantID, 4, func(b []byte) {
		binary.LittleEndian.PutUint32(b, math.Float32bits(value))
	})
}

// SetBool appends a bool-valued specialization constant, stored as a
// 4-byte VkBool32 the way Vulkan expects it.
func (s *SpecConstants) SetBool(constantID uint32, value bool) {
	var v uint32
	if value {
		v = 1
	}
	s.SetUint32(constantID, v)
}

func (s *SpecConstants) appendRaw(constantID uint32, size uint32, write func([]byte)) {
	offset := uint32(len(s.Data))
	s.Data = append(s.Data, make([]byte, size)...)
	write(s.Data[offset : offset+size])
	s.Entries = append(s.Entries, SpecEntry{ConstantID: constantID, Offset: offset, Size: size})
}

// MakeSpecializationInfo builds the vk.SpecializationInfo describing every
// constant set so far. PMapEntries is built fresh on each call; PData
// shares s.Data's backing array, so later appends to s do not change the
// returned value, but writing into s.Data in place would.
func (s *SpecConstants) MakeSpecializationInfo() vk.SpecializationInfo {
	entries := make([]vk.SpecializationMapEntry, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = vk.SpecializationMapEntry{
			ConstantID: e.ConstantID,
			Offset:     e.Offset,
			Size:       uint(e.Size),
		}
	}
	return vk.SpecializationInfo{
		MapEntryCount: uint32(len(entries)),
		PMapEntries:   entries,
		DataSize:      uint(len(s.Data)),
		PData:         s.Data,
	}
}

// ShaderStage is one shader stage's SPIR-V code plus its specialization
// constants.
type ShaderStage struct {
	Code          []uint32
	SpecConstants SpecConstants
}

// ProgramData is a pipeline's full set of shader stages, keyed by Vulkan
// shader stage flag.
type ProgramData struct {
	Stages map[vk.ShaderStageFlagBits]ShaderStage
}

// PipelineData is the fixed-function state of a graphics pipeline: vertex
// input, rasterization, blending, and so on.
type PipelineData struct {
	InputBindings   []vk.VertexInputBindingDescription
	Attributes      []vk.VertexInputAttributeDescription
	InputAssembly   vk.PipelineInputAssemblyStateCreateInfo
	Tessellation    vk.PipelineTessellationStateCreateInfo
	Viewports       []vk.Viewport
	ScissorRects    []vk.Rect2D
	Rasterization   vk.PipelineRasterizationStateCreateInfo
	Multisampling   vk.PipelineMultisampleStateCreateInfo
	DepthStencil    vk.PipelineDepthStencilStateCreateInfo
	ColorBlendAttachments []vk.PipelineColorBlendAttachmentState
	DynamicStates   []vk.DynamicState
}

// Template is the device-independent description of a graphics pipeline:
// its shader program plus its fixed-function state. Constructing one via
// NewTemplate applies the "viewport/scissor become dynamic state when
// absent" invariant automatically.
type Template struct {
	Program  ProgramData
	Pipeline PipelineData
}

// NewTemplate builds a Template from program and pipeline, adding
// VK_DYNAMIC_STATE_VIEWPORT and/or VK_DYNAMIC_STATE_SCISSOR to
// pipeline.DynamicStates whenever the corresponding slice is empty, so a
// pipeline built with no explicit viewport/scissor rects is still valid at
// bind time.
func NewTemplate(program ProgramData, pd PipelineData) Template {
	if len(pd.Viewports) == 0 {
		pd.DynamicStates = append(pd.DynamicStates, vk.DynamicStateViewport)
	}
	if len(pd.ScissorRects) == 0 {
		pd.DynamicStates = append(pd.DynamicStates, vk.DynamicStateScissor)
	}
	return Template{Program: program, Pipeline: pd}
}

// ComputeTemplate is the device-independent description of a compute
// pipeline: one shader stage plus its specialization constants.
type ComputeTemplate struct {
	Code          []uint32
	SpecConstants SpecConstants
	EntryPoint    string
}

// NewComputeTemplate returns a ComputeTemplate with the conventional
// "main" entry point.
func NewComputeTemplate(code []uint32) ComputeTemplate {
	return ComputeTemplate{Code: code, EntryPoint: "main"}
}
