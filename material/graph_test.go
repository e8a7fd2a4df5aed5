// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/torch/material"
)

func vec4Range() material.TypeRange {
	return material.TypeRange{UpperBoundScalar: material.ScalarFloat, MinChannels: 4, MaxChannels: 4}
}

func constantNode(g *material.Graph, expr string) material.NodeID {
	return g.AddNode(material.Node{
		Outputs: []material.Socket{{Name: "value", Range: vec4Range()}},
		Build:   func([]string) ([]string, error) { return []string{expr}, nil },
	})
}

func passthroughNode(g *material.Graph) material.NodeID {
	return g.AddNode(material.Node{
		Inputs:  []material.Socket{{Name: "in", Range: vec4Range()}},
		Outputs: []material.Socket{{Name: "out", Range: vec4Range()}},
		Build:   func(in []string) ([]string, error) { return []string{fmt.Sprintf("(%s)", in[0])}, nil },
	})
}

func TestCompileMaterialGraphEmitsConnectedExpression(t *testing.T) {
	g := material.NewGraph()
	c := constantNode(g, "vec4(1.0)")
	p := passthroughNode(g)
	require.NoError(t, g.Connect(p, 0, material.OutputRef{Node: c, Output: 0}))
	g.SetOutput("color", material.OutputRef{Node: p, Output: 0})

	results, err := material.CompileMaterialGraph(g)
	require.NoError(t, err)
	assert.Equal(t, "(vec4(1.0))", results["color"])
}

func TestCompileMaterialGraphUsesDefaultForUnconnectedResult(t *testing.T) {
	g := material.NewGraph()
	g.SetOutputDefault("color", "vec4(0.0)")

	results, err := material.CompileMaterialGraph(g)
	require.NoError(t, err)
	assert.Equal(t, "vec4(0.0)", results["color"])
}

func TestCompileMaterialGraphFailsOnUnconnectedInputWithoutDefault(t *testing.T) {
	g := material.NewGraph()
	p := passthroughNode(g)
	g.SetOutput("color", material.OutputRef{Node: p, Output: 0})

	_, err := material.CompileMaterialGraph(g)
	assert.Error(t, err)
	var target *material.UnconnectedInputError
	assert.ErrorAs(t, err, &target)
}

func TestCompileMaterialGraphDetectsCycle(t *testing.T) {
	g := material.NewGraph()
	a := passthroughNode(g)
	b := passthroughNode(g)
	require.NoError(t, g.Connect(a, 0, material.OutputRef{Node: b, Output: 0}))
	require.NoError(t, g.Connect(b, 0, material.OutputRef{Node: a, Output: 0}))
	g.SetOutput("color", material.OutputRef{Node: a, Output: 0})

	_, err := material.CompileMaterialGraph(g)
	assert.Error(t, err)
	var target *material.CycleError
	assert.ErrorAs(t, err, &target)
}

func TestConnectRejectsIncompatibleTypes(t *testing.T) {
	g := material.NewGraph()
	scalarOut := g.AddNode(material.Node{
		Outputs: []material.Socket{{Name: "v", Range: material.TypeRange{UpperBoundScalar: material.ScalarFloat, MinChannels: 1, MaxChannels: 1}}},
		Build:   func([]string) ([]string, error) { return []string{"0.0"}, nil },
	})
	p := passthroughNode(g)

	err := g.Connect(p, 0, material.OutputRef{Node: scalarOut, Output: 0})
	assert.Error(t, err)
}
