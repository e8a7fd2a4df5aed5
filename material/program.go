// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"cogentcore.org/torch/assets"
	"cogentcore.org/torch/pipeline"
	"cogentcore.org/torch/registry"
	"cogentcore.org/torch/renderpass"
	"cogentcore.org/torch/shader"
)

// MaterialShaderProgram is the realized, registered form of a compiled
// material graph: a pipeline layout and pipeline id the renderer can bind
// directly, plus the texture device indices it was compiled against (for
// diagnostics — the indices themselves are already baked into the
// pipeline's fragment specialization constants).
type MaterialShaderProgram struct {
	Layout           pipeline.LayoutID
	Pipeline         pipeline.PipelineID
	TextureIndices   map[string]uint32
}

// BuildOptions configures MaterialShaderProgram.Build.
type BuildOptions struct {
	// Registry is the process-wide pipeline registry the new program is
	// registered into.
	Registry *pipeline.Registry
	// BasePipeline is an already-registered graphics pipeline whose
	// fixed-function PipelineData (vertex input, rasterization, blend
	// state, ...) the new program's pipeline reuses verbatim (step v: "clone
	// the pipeline-definition data of a chosen base pipeline").
	BasePipeline pipeline.PipelineID
	// Layout is the pipeline layout template the new program's descriptors
	// and push constants are unioned into. In this simplified model a
	// material graph introduces no descriptors of its own beyond what the
	// base layout already declares, so the template is reused unchanged
	// (step i: "union of all stages' required descriptors and push
	// constants" degenerates to the base set here).
	Layout pipeline.LayoutTemplate
	// RenderPass names the render pass compatibility info the new pipeline
	// is registered against.
	RenderPass renderpass.Name
	// Compiler turns GLSL source into SPIR-V (step iii).
	Compiler shader.Compiler
	// Textures resolves each texture reference's loaded device index
	// (step iv).
	Textures *assets.AssetManagerBase
}

// Build compiles graph into a fragment shader module, resolves every
// texture it samples to a device index baked in as a specialization
// constant, and registers the result as a new pipeline cloned from
// opts.BasePipeline's fixed-function state.
func Build(graph *Graph, textures []TextureReference, opts BuildOptions) (MaterialShaderProgram, error) {
	module, err := (ShaderModuleCompiler{}).Compile(graph, textures)
	if err != nil {
		return MaterialShaderProgram{}, err
	}

	// Step iv: resolve each texture to its device index and assign it as
	// that texture's specialization constant value.
	indices := make(map[string]uint32, len(module.Textures))
	var specConsts pipeline.SpecConstants
	for i, tex := range module.Textures {
		handle := assets.GetHandle[registry.TextureData, registry.TextureHandle](opts.Textures, tex.Asset)
		indices[tex.Name] = handle.DeviceIndex
		specConsts.SetUint32(uint32(i), handle.DeviceIndex)
	}

	// Step iii: compile the fragment stage to SPIR-V.
	code, err := opts.Compiler.Compile(module.Code, shader.CompileOptions{})
	if err != nil {
		return MaterialShaderProgram{}, &shader.ShaderCompileError{Err: err}
	}

	// Step v: clone the base pipeline's fixed-function state, graft in the
	// new fragment stage, and register the result.
	base, err := opts.Registry.CloneGraphicsPipeline(opts.BasePipeline)
	if err != nil {
		return MaterialShaderProgram{}, fmt.Errorf("cloning base pipeline: %w", err)
	}

	stages := make(map[vk.ShaderStageFlagBits]pipeline.ShaderStage, len(base.Program.Stages)+1)
	for stage, s := range base.Program.Stages {
		stages[stage] = s
	}
	stages[vk.ShaderStageFragmentBit] = pipeline.ShaderStage{
		Code:          spirvWords(code),
		SpecConstants: specConsts,
	}
	newTemplate := pipeline.Template{
		Program:  pipeline.ProgramData{Stages: stages},
		Pipeline: base.Pipeline,
	}

	layoutID := opts.Registry.RegisterPipelineLayout(opts.Layout)
	pipelineID := opts.Registry.RegisterPipeline(newTemplate, layoutID, opts.RenderPass)

	return MaterialShaderProgram{
		Layout:         layoutID,
		Pipeline:       pipelineID,
		TextureIndices: indices,
	}, nil
}

// spirvWords reinterprets a little-endian SPIR-V byte stream as the
// []uint32 word stream vk.ShaderModuleCreateInfo expects.
func spirvWords(code []byte) []uint32 {
	words := make([]uint32, len(code)/4)
	for i := range words {
		b := code[i*4 : i*4+4]
		words[i] = uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	}
	return words
}
