// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	vk "github.com/goki/vulkan"

	"cogentcore.org/torch/gpu"
)

func TestSamplerDefaults(t *testing.T) {
	var sm gpu.Sampler
	sm.Defaults()
	assert.Equal(t, gpu.Repeat, sm.UMode)
	assert.Equal(t, gpu.Repeat, sm.VMode)
	assert.Equal(t, gpu.Repeat, sm.WMode)
	assert.Equal(t, gpu.BorderTrans, sm.Border)
}

func TestSamplerModesMapToVulkanConstants(t *testing.T) {
	assert.Equal(t, vk.SamplerAddressModeRepeat, gpu.Repeat.VkMode())
	assert.Equal(t, vk.SamplerAddressModeMirroredRepeat, gpu.MirroredRepeat.VkMode())
	assert.Equal(t, vk.SamplerAddressModeClampToEdge, gpu.ClampToEdge.VkMode())
	assert.Equal(t, vk.SamplerAddressModeClampToBorder, gpu.ClampToBorder.VkMode())
	assert.Equal(t, vk.SamplerAddressModeMirrorClampToEdge, gpu.MirrorClampToEdge.VkMode())
}

func TestBorderColorsMap(t *testing.T) {
	assert.Equal(t, vk.BorderColorIntTransparentBlack, gpu.BorderTrans.VkColor())
	assert.Equal(t, vk.BorderColorIntOpaqueBlack, gpu.BorderBlack.VkColor())
	assert.Equal(t, vk.BorderColorIntOpaqueWhite, gpu.BorderWhite.VkColor())
}

func TestTextureDestroyIsSafeOnZeroValue(t *testing.T) {
	var tx gpu.Texture
	assert.NotPanics(t, func() { tx.Destroy() })
}
