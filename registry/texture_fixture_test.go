// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"

	"cogentcore.org/torch/assets"
	"cogentcore.org/torch/registry"
)

// downsample builds a TextureData fixture by scaling src down to w x h with
// golang.org/x/image/draw, the same resizing package the teacher's wider
// repo (core/image.go) uses for image scaling, rather than a hand-rolled
// nearest-neighbor loop.
func downsample(src image.Image, w, h int) registry.TextureData {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return registry.TextureData{Width: uint32(w), Height: uint32(h), Pixels: dst.Pix}
}

func TestTextureRegistryLoadsDownsampledFixture(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	data := downsample(src, 2, 2)
	require.Equal(t, uint32(2), data.Width)
	require.Len(t, data.Pixels, 2*2*4)

	reg := registry.NewTextureRegistry()
	handle, err := reg.Create(assets.NewInMemorySource(data))
	require.NoError(t, err)

	got, ok := reg.Get(handle.DeviceIndex)
	require.True(t, ok)
	assert.Equal(t, data.Pixels, got.Pixels)
}
