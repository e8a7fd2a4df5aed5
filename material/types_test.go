// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/torch/material"
)

func TestTypeRangeIntersectNarrows(t *testing.T) {
	vec3OrVec4 := material.TypeRange{UpperBoundScalar: material.ScalarFloat, MinChannels: 3, MaxChannels: 4}
	vec4Only := material.TypeRange{UpperBoundScalar: material.ScalarFloat, MinChannels: 4, MaxChannels: 4}

	got, err := vec3OrVec4.Intersect(vec4Only)
	require.NoError(t, err)
	basic, ok := got.Concrete()
	require.True(t, ok)
	assert.Equal(t, material.BasicType{Scalar: material.ScalarFloat, Channels: 4}, basic)
}

func TestTypeRangeIntersectErrorsWhenDisjoint(t *testing.T) {
	vec2 := material.TypeRange{UpperBoundScalar: material.ScalarFloat, MinChannels: 2, MaxChannels: 2}
	vec4 := material.TypeRange{UpperBoundScalar: material.ScalarFloat, MinChannels: 4, MaxChannels: 4}
	_, err := vec2.Intersect(vec4)
	assert.Error(t, err)
}

func TestBasicTypeStringUsesGlslVectorNaming(t *testing.T) {
	assert.Equal(t, "float", material.BasicType{Scalar: material.ScalarFloat, Channels: 1}.String())
	assert.Equal(t, "vec3", material.BasicType{Scalar: material.ScalarFloat, Channels: 3}.String())
	assert.Equal(t, "ivec2", material.BasicType{Scalar: material.ScalarInt, Channels: 2}.String())
}
