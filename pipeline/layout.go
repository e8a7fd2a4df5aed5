// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	vk "github.com/goki/vulkan"

	"cogentcore.org/torch/descriptor"
)

// Descriptor names one of a pipeline layout's descriptor set slots. Static
// descriptors are resolved once, when the layout is built; dynamic ones are
// re-resolved through the descriptor registry at command-recording time.
type Descriptor struct {
	Name     descriptor.Name
	IsStatic bool
}

// PushConstantDefault carries the raw bytes a push-constant range should be
// initialized to when a pipeline is bound. PipelineLayout.Defaults carries
// these values; this package does not replay them itself.
type PushConstantDefault struct {
	Range vk.PushConstantRange
	Data  []byte
}

// PushConstant is a single push-constant range plus the default value
// replayed into it at bind time, if any.
type PushConstant struct {
	Range   vk.PushConstantRange
	Default *PushConstantDefault
}

// LayoutTemplate is the high-level, device-independent description of a
// pipeline layout: which descriptor sets it binds and what push-constant
// ranges it declares.
type LayoutTemplate struct {
	Descriptors   []Descriptor
	PushConstants []PushConstant
}

// PipelineLayout is the realized form of a LayoutTemplate: a live
// vk.PipelineLayout plus the default push-constant values to replay on
// bind.
type PipelineLayout struct {
	VkLayout vk.PipelineLayout
	Defaults []PushConstantDefault
}

// LayoutBuilder constructs the real Vulkan pipeline layout object a
// LayoutTemplate describes. Device/instance bring-up is out of scope for
// this package; callers inject a concrete builder (backed by a live
// gpu.Device and descriptor.Registry) the same way gpu.Device itself is
// always constructor-injected rather than created here.
type LayoutBuilder interface {
	BuildLayout(t LayoutTemplate, descriptors *descriptor.Registry) (PipelineLayout, error)
}
