// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package descriptor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vk "github.com/goki/vulkan"

	"cogentcore.org/torch/descriptor"
)

type fakeProvider struct {
	set vk.DescriptorSet
}

func (p fakeProvider) DescriptorSet() vk.DescriptorSet { return p.set }

func TestDefineThenProvideShareTheSameID(t *testing.T) {
	reg := descriptor.NewRegistry()
	layoutID := reg.DefineDescriptor("textures", vk.DescriptorSetLayout(1))
	provideID := reg.ProvideDescriptor("textures", fakeProvider{set: vk.DescriptorSet(2)})

	assert.Equal(t, layoutID, provideID)

	id, ok := reg.GetDescriptorID("textures")
	require.True(t, ok)
	assert.Equal(t, layoutID, id)
}

func TestGetDescriptorLayoutUndefinedErrors(t *testing.T) {
	reg := descriptor.NewRegistry()
	_, err := reg.GetDescriptorLayout("missing")
	assert.Error(t, err)
	var target *descriptor.DescriptorUndefinedError
	assert.ErrorAs(t, err, &target)
}

func TestGetDescriptorUnprovidedErrors(t *testing.T) {
	reg := descriptor.NewRegistry()
	id := reg.DefineDescriptor("lights", vk.DescriptorSetLayout(1))

	_, err := reg.GetDescriptor(id)
	assert.Error(t, err)
	var target *descriptor.DescriptorUnprovidedError
	assert.ErrorAs(t, err, &target)
}

func TestProviderResolvesLiveDescriptorSet(t *testing.T) {
	reg := descriptor.NewRegistry()
	id := reg.ProvideDescriptor("lights", fakeProvider{set: vk.DescriptorSet(42)})

	provider, err := reg.GetDescriptor(id)
	require.NoError(t, err)
	assert.Equal(t, vk.DescriptorSet(42), provider.DescriptorSet())
}

func TestNewRegistryWithStandardOrderFixesIDs(t *testing.T) {
	reg := descriptor.NewRegistryWithStandardOrder()

	transformsID, ok := reg.GetDescriptorID("transforms")
	require.True(t, ok)
	lightsID, ok := reg.GetDescriptorID("lights")
	require.True(t, ok)
	texturesID, ok := reg.GetDescriptorID("textures")
	require.True(t, ok)

	assert.Equal(t, descriptor.ID(0), transformsID)
	assert.Equal(t, descriptor.ID(1), lightsID)
	assert.Equal(t, descriptor.ID(2), texturesID)

	// a later DefineDescriptor for one of the standard names reuses its
	// pre-interned ID rather than minting a new one.
	got := reg.DefineDescriptor("textures", vk.DescriptorSetLayout(9))
	assert.Equal(t, texturesID, got)
}
