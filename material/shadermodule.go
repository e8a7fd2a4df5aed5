// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"fmt"
	"sort"
	"strings"

	"cogentcore.org/torch/assets"
	"cogentcore.org/torch/registry"
)

// TextureReference names a texture a material graph samples from: a
// graph-local name (used to build the specialization-constant macro the
// compiled shader indexes with) and the texture asset it resolves to.
type TextureReference struct {
	Name  string
	Asset assets.TypedAssetID[registry.TextureData]
}

// MakeTextureSample adds a texture-sample node to graph: a single "uv"
// input (a vec2) and a single output (a vec4 color), whose Build emits a
// call against ref's specialization-constant macro rather than any
// descriptor-indexed lookup — the device index a texture resolves to is
// baked into the shader as a specialization constant at compile time (see
// MaterialShaderProgram.Build step iv), so the compiled fragment code never
// names a descriptor at all.
func MakeTextureSample(g *Graph, ref TextureReference, uv OutputRef) (NodeID, error) {
	macro := textureMacro(ref.Name)
	id := g.AddNode(Node{
		Inputs:  []Socket{{Name: "uv", Range: TypeRange{UpperBoundScalar: ScalarFloat, MinChannels: 2, MaxChannels: 2}}},
		Outputs: []Socket{{Name: "color", Range: TypeRange{UpperBoundScalar: ScalarFloat, MinChannels: 4, MaxChannels: 4}}},
		Build: func(inputs []string) ([]string, error) {
			return []string{fmt.Sprintf("texSample(%s, %s)", macro, inputs[0])}, nil
		},
	})
	if err := g.Connect(id, 0, uv); err != nil {
		return 0, err
	}
	return id, nil
}

// textureMacro returns the specialization-constant macro name a compiled
// shader uses in place of a descriptor lookup for a texture reference
// named name.
func textureMacro(name string) string {
	return "SPEC_TEX_" + strings.ToUpper(name)
}

// ShaderModule is the compiled form of a material graph for a single
// shader stage: GLSL source plus the texture references the source's
// specialization-constant macros need resolved.
type ShaderModule struct {
	Code     string
	Textures []TextureReference
}

// ShaderModuleCompiler turns a material graph's compiled result
// expressions into a complete GLSL fragment shader, assigning each
// referenced texture a deterministic specialization constant id.
type ShaderModuleCompiler struct{}

// Compile traverses graph (via CompileMaterialGraph) and wraps the
// "color" result parameter's expression in a fragment-shader main()
// function, declaring one specialization constant per texture in
// textures, sorted by name for deterministic constant ids.
func (ShaderModuleCompiler) Compile(graph *Graph, textures []TextureReference) (ShaderModule, error) {
	results, err := CompileMaterialGraph(graph)
	if err != nil {
		return ShaderModule{}, err
	}
	color, ok := results["color"]
	if !ok {
		return ShaderModule{}, fmt.Errorf("material graph has no \"color\" result")
	}

	sorted := append([]TextureReference(nil), textures...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	b.WriteString("#version 450\n")
	for i, tex := range sorted {
		fmt.Fprintf(&b, "layout(constant_id = %d) const uint %s = 0;\n", i, textureMacro(tex.Name))
	}
	b.WriteString("layout(location = 0) out vec4 outColor;\n")
	b.WriteString("layout(location = 0) in vec2 uv;\n")
	b.WriteString("void main() {\n")
	fmt.Fprintf(&b, "    outColor = %s;\n", color)
	b.WriteString("}\n")

	return ShaderModule{Code: b.String(), Textures: sorted}, nil
}
