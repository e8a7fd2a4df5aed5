// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"cogentcore.org/torch/assets"
	"cogentcore.org/torch/registry"
)

const humanoidRigFixtureYAML = `
name: humanoid
bones:
  - name: root
    parentIndex: -1
  - name: spine
    parentIndex: 0
  - name: head
    parentIndex: 1
`

type boneFixture struct {
	Name        string `yaml:"name"`
	ParentIndex int    `yaml:"parentIndex"`
}

type rigFixture struct {
	Name  string        `yaml:"name"`
	Bones []boneFixture `yaml:"bones"`
}

func loadRigFixture(t *testing.T, doc string) registry.RigData {
	t.Helper()
	var fx rigFixture
	require.NoError(t, yaml.Unmarshal([]byte(doc), &fx))

	data := registry.RigData{Name: fx.Name, Bones: make([]registry.Bone, len(fx.Bones))}
	for i, b := range fx.Bones {
		data.Bones[i] = registry.Bone{Name: b.Name, ParentIndex: b.ParentIndex}
	}
	return data
}

func TestRigRegistryLoadsYAMLFixture(t *testing.T) {
	data := loadRigFixture(t, humanoidRigFixtureYAML)
	require.Len(t, data.Bones, 3)

	reg := registry.NewRigRegistry()
	handle, err := reg.Create(assets.NewInMemorySource(data))
	require.NoError(t, err)

	assert.Equal(t, "humanoid", handle.Name())
	head, err := handle.BoneByName("head")
	require.NoError(t, err)
	assert.Equal(t, 1, head.ParentIndex)
}
