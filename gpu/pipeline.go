// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"sort"
	"unsafe"

	vk "github.com/goki/vulkan"

	"cogentcore.org/torch/descriptor"
	"cogentcore.org/torch/pipeline"
	"cogentcore.org/torch/renderpass"
)

// PipelineBuilder turns pipeline package templates into real Vulkan
// objects on a live Device, the same constructor-injected way Image and
// Sampler realize theirs: it never creates the device itself, only calls
// vk.Create* on the one it is handed.
type PipelineBuilder struct {
	Dev *Device
}

// NewPipelineBuilder returns a PipelineBuilder bound to dev.
func NewPipelineBuilder(dev *Device) *PipelineBuilder {
	return &PipelineBuilder{Dev: dev}
}

// BuildLayout implements pipeline.LayoutBuilder.
func (b *PipelineBuilder) BuildLayout(t pipeline.LayoutTemplate, descriptors *descriptor.Registry) (pipeline.PipelineLayout, error) {
	setLayouts := make([]vk.DescriptorSetLayout, len(t.Descriptors))
	for i, d := range t.Descriptors {
		layout, err := descriptors.GetDescriptorLayout(d.Name)
		if err != nil {
			return pipeline.PipelineLayout{}, fmt.Errorf("descriptor %q: %w", d.Name, err)
		}
		setLayouts[i] = layout
	}

	pushRanges := make([]vk.PushConstantRange, len(t.PushConstants))
	var defaults []pipeline.PushConstantDefault
	for i, pc := range t.PushConstants {
		pushRanges[i] = pc.Range
		if pc.Default != nil {
			defaults = append(defaults, *pc.Default)
		}
	}

	var vkLayout vk.PipelineLayout
	ret := vk.CreatePipelineLayout(b.Dev.Device, &vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         uint32(len(setLayouts)),
		PSetLayouts:            setLayouts,
		PushConstantRangeCount: uint32(len(pushRanges)),
		PPushConstantRanges:    pushRanges,
	}, nil, &vkLayout)
	if err := NewError(ret); err != nil {
		return pipeline.PipelineLayout{}, err
	}
	return pipeline.PipelineLayout{VkLayout: vkLayout, Defaults: defaults}, nil
}

// sortedStages returns program's stages in a deterministic order, since
// Go map iteration isn't and the pStages array order must be stable
// across rebuilds for the same template.
func sortedStages(program pipeline.ProgramData) []vk.ShaderStageFlagBits {
	stages := make([]vk.ShaderStageFlagBits, 0, len(program.Stages))
	for stage := range program.Stages {
		stages = append(stages, stage)
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i] < stages[j] })
	return stages
}

func (b *PipelineBuilder) createShaderModule(code []uint32) (vk.ShaderModule, error) {
	var mod vk.ShaderModule
	ret := vk.CreateShaderModule(b.Dev.Device, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code) * 4),
		PCode:    code,
	}, nil, &mod)
	if err := NewError(ret); err != nil {
		return nil, err
	}
	return mod, nil
}

func (b *PipelineBuilder) buildStages(program pipeline.ProgramData) ([]vk.PipelineShaderStageCreateInfo, []vk.ShaderModule, error) {
	order := sortedStages(program)
	stages := make([]vk.PipelineShaderStageCreateInfo, 0, len(order))
	modules := make([]vk.ShaderModule, 0, len(order))
	for _, stage := range order {
		shader := program.Stages[stage]
		mod, err := b.createShaderModule(shader.Code)
		if err != nil {
			for _, m := range modules {
				vk.DestroyShaderModule(b.Dev.Device, m, nil)
			}
			return nil, nil, fmt.Errorf("shader stage %v: %w", stage, err)
		}
		modules = append(modules, mod)
		info := vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  stage,
			Module: mod,
			PName:  "main\x00",
		}
		if !shader.SpecConstants.Empty() {
			spec := shader.SpecConstants.MakeSpecializationInfo()
			info.PSpecializationInfo = &spec
		}
		stages = append(stages, info)
	}
	return stages, modules, nil
}

func (b *PipelineBuilder) destroyModules(modules []vk.ShaderModule) {
	for _, m := range modules {
		vk.DestroyShaderModule(b.Dev.Device, m, nil)
	}
}

// BuildGraphics implements pipeline.GraphicsBuilder.
func (b *PipelineBuilder) BuildGraphics(layout pipeline.PipelineLayout, t pipeline.Template, rp renderpass.CompatInfo) (vk.Pipeline, error) {
	if rp.RenderPass == nil && rp.Dynamic == nil {
		return nil, fmt.Errorf("render pass compatibility info has neither a render pass nor dynamic rendering set")
	}

	stages, modules, err := b.buildStages(t.Program)
	if err != nil {
		return nil, err
	}
	defer b.destroyModules(modules)

	pd := t.Pipeline
	vertexInput := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   uint32(len(pd.InputBindings)),
		PVertexBindingDescriptions:      pd.InputBindings,
		VertexAttributeDescriptionCount: uint32(len(pd.Attributes)),
		PVertexAttributeDescriptions:    pd.Attributes,
	}
	inputAssembly := pd.InputAssembly
	inputAssembly.SType = vk.StructureTypePipelineInputAssemblyStateCreateInfo
	tessellation := pd.Tessellation
	tessellation.SType = vk.StructureTypePipelineTessellationStateCreateInfo
	rasterization := pd.Rasterization
	rasterization.SType = vk.StructureTypePipelineRasterizationStateCreateInfo
	multisampling := pd.Multisampling
	multisampling.SType = vk.StructureTypePipelineMultisampleStateCreateInfo
	depthStencil := pd.DepthStencil
	depthStencil.SType = vk.StructureTypePipelineDepthStencilStateCreateInfo

	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: uint32(len(pd.Viewports)),
		PViewports:    pd.Viewports,
		ScissorCount:  uint32(len(pd.ScissorRects)),
		PScissors:     pd.ScissorRects,
	}
	if len(pd.Viewports) == 0 {
		viewportState.ViewportCount = 1
	}
	if len(pd.ScissorRects) == 0 {
		viewportState.ScissorCount = 1
	}

	colorBlend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: uint32(len(pd.ColorBlendAttachments)),
		PAttachments:    pd.ColorBlendAttachments,
	}

	var dynamicState *vk.PipelineDynamicStateCreateInfo
	if len(pd.DynamicStates) > 0 {
		dynamicState = &vk.PipelineDynamicStateCreateInfo{
			SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
			DynamicStateCount: uint32(len(pd.DynamicStates)),
			PDynamicStates:    pd.DynamicStates,
		}
	}

	info := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stages)),
		PStages:             stages,
		PVertexInputState:   &vertexInput,
		PInputAssemblyState: &inputAssembly,
		PTessellationState:  &tessellation,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterization,
		PMultisampleState:   &multisampling,
		PDepthStencilState:  &depthStencil,
		PColorBlendState:    &colorBlend,
		PDynamicState:       dynamicState,
		Layout:              layout.VkLayout,
	}

	if rp.RenderPass != nil {
		info.RenderPass = rp.RenderPass.Pass
		info.Subpass = rp.RenderPass.Subpass
	} else {
		rendering := vk.PipelineRenderingCreateInfo{
			SType:                   vk.StructureTypePipelineRenderingCreateInfo,
			ViewMask:                rp.Dynamic.ViewMask,
			ColorAttachmentCount:    uint32(len(rp.Dynamic.ColorAttachmentFormats)),
			PColorAttachmentFormats: rp.Dynamic.ColorAttachmentFormats,
			DepthAttachmentFormat:   rp.Dynamic.DepthAttachmentFormat,
			StencilAttachmentFormat: rp.Dynamic.StencilAttachmentFormat,
		}
		info.PNext = unsafe.Pointer(&rendering)
	}

	pipelines := make([]vk.Pipeline, 1)
	ret := vk.CreateGraphicsPipelines(b.Dev.Device, nil, 1, []vk.GraphicsPipelineCreateInfo{info}, nil, pipelines)
	if err := NewError(ret); err != nil {
		return nil, err
	}
	return pipelines[0], nil
}

// BuildCompute implements pipeline.ComputeBuilder.
func (b *PipelineBuilder) BuildCompute(layout pipeline.PipelineLayout, t pipeline.ComputeTemplate) (vk.Pipeline, error) {
	mod, err := b.createShaderModule(t.Code)
	if err != nil {
		return nil, fmt.Errorf("compute shader: %w", err)
	}
	defer vk.DestroyShaderModule(b.Dev.Device, mod, nil)

	entry := t.EntryPoint
	if entry == "" {
		entry = "main"
	}
	stage := vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  vk.ShaderStageComputeBit,
		Module: mod,
		PName:  entry + "\x00",
	}
	if !t.SpecConstants.Empty() {
		spec := t.SpecConstants.MakeSpecializationInfo()
		stage.PSpecializationInfo = &spec
	}

	info := vk.ComputePipelineCreateInfo{
		SType:  vk.StructureTypeComputePipelineCreateInfo,
		Stage:  stage,
		Layout: layout.VkLayout,
	}

	pipelines := make([]vk.Pipeline, 1)
	ret := vk.CreateComputePipelines(b.Dev.Device, nil, 1, []vk.ComputePipelineCreateInfo{info}, nil, pipelines)
	if err := NewError(ret); err != nil {
		return nil, err
	}
	return pipelines[0], nil
}
