// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/torch/assets"
	"cogentcore.org/torch/datastorage"
	"cogentcore.org/torch/material"
	"cogentcore.org/torch/pipeline"
	"cogentcore.org/torch/registry"
	"cogentcore.org/torch/renderpass"
	"cogentcore.org/torch/shader"
)

type fakeMaterialCompiler struct{ lastSource string }

func (c *fakeMaterialCompiler) Compile(source string, opts shader.CompileOptions) ([]byte, error) {
	c.lastSource = source
	return []byte{1, 2, 3, 4}, nil
}

// TestBuildBakesTextureDeviceIndexAsSpecConstant covers the M1 seed
// scenario: a material graph sampling a registered texture compiles to a
// fragment shader with no descriptor lookup for it, and the texture's
// specialization constant id resolves to its device index.
func TestBuildBakesTextureDeviceIndexAsSpecConstant(t *testing.T) {
	textureRegistry := registry.NewTextureRegistry()
	assetRegistry := assets.NewAssetRegistry()
	texTraits := assets.TypeTraits[registry.TextureData]{TypeName: "test.Texture"}
	assets.RegisterModule[registry.TextureData, registry.TextureHandle](assetRegistry, texTraits, textureRegistry)

	mgr := assets.NewAssetManager(assetRegistry, assets.NewAssetStorage(datastorage.NewMemoryStorage()))
	texID, err := assets.CreateInMemoryAsset[registry.TextureData, registry.TextureHandle](
		mgr, texTraits, "albedo", registry.TextureData{Width: 2, Height: 2, Pixels: make([]byte, 16)},
	)
	require.NoError(t, err)
	deviceIndex := assets.GetHandle[registry.TextureData, registry.TextureHandle](mgr.AssetManagerBase, texID).DeviceIndex

	g := material.NewGraph()
	uv := g.AddNode(material.Node{
		Outputs: []material.Socket{{Name: "uv", Range: material.TypeRange{UpperBoundScalar: material.ScalarFloat, MinChannels: 2, MaxChannels: 2}}},
		Build:   func([]string) ([]string, error) { return []string{"uv"}, nil },
	})
	ref := material.TextureReference{Name: "t", Asset: texID}
	sample, err := material.MakeTextureSample(g, ref, material.OutputRef{Node: uv, Output: 0})
	require.NoError(t, err)
	g.SetOutput("color", material.OutputRef{Node: sample, Output: 0})

	pipelineRegistry := pipeline.NewRegistry()
	baseLayoutID := pipelineRegistry.RegisterPipelineLayout(pipeline.LayoutTemplate{})
	basePipelineID := pipelineRegistry.RegisterPipeline(
		pipeline.NewTemplate(pipeline.ProgramData{}, pipeline.PipelineData{}),
		baseLayoutID, "main",
	)

	compiler := &fakeMaterialCompiler{}
	program, err := material.Build(g, []material.TextureReference{ref}, material.BuildOptions{
		Registry:     pipelineRegistry,
		BasePipeline: basePipelineID,
		Layout:       pipeline.LayoutTemplate{},
		RenderPass:   renderpass.Name("main"),
		Compiler:     compiler,
		Textures:     mgr.AssetManagerBase,
	})
	require.NoError(t, err)

	assert.Equal(t, deviceIndex, program.TextureIndices["t"])
	assert.NotContains(t, compiler.lastSource, "descriptor")
	assert.True(t, strings.Contains(compiler.lastSource, "SPEC_TEX_T"))

	layout, err := pipelineRegistry.GetPipelineLayout(program.Pipeline)
	require.NoError(t, err)
	assert.Equal(t, program.Layout, layout)
}
