// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/torch/assets"
	"cogentcore.org/torch/registry"
)

func TestRigRegistryBoneLookup(t *testing.T) {
	reg := registry.NewRigRegistry()
	data := registry.RigData{
		Name:  "humanoid",
		Bones: []registry.Bone{{Name: "spine", ParentIndex: -1}, {Name: "arm", ParentIndex: 0}},
	}
	handle, err := reg.Create(assets.NewInMemorySource(data))
	require.NoError(t, err)

	assert.Equal(t, "humanoid", handle.Name())
	assert.Equal(t, 2, handle.BoneCount())

	b, err := handle.BoneByName("arm")
	require.NoError(t, err)
	assert.Equal(t, 0, b.ParentIndex)

	_, err = handle.BoneByName("missing")
	assert.Error(t, err)
}

func TestRigHandleAnimationAtOutOfRange(t *testing.T) {
	reg := registry.NewRigRegistry()
	handle, err := reg.Create(assets.NewInMemorySource(registry.RigData{Name: "empty"}))
	require.NoError(t, err)

	_, err = handle.AnimationAt(0)
	assert.Error(t, err)
}
