// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	vk "github.com/goki/vulkan"
)

// Image is a device-resident image plus its standard 2D color view. It owns
// no memory allocator, and nothing in this package allocates or binds
// device memory for it.
type Image struct {
	Dev    vk.Device
	Width  uint32
	Height uint32
	Format vk.Format

	VkImage vk.Image
	View    vk.ImageView
}

// Create allocates the image object (not yet backed by memory) described by
// info on dev.
func (im *Image) Create(dev vk.Device, info vk.ImageCreateInfo) error {
	var img vk.Image
	ret := vk.CreateImage(dev, &info, nil, &img)
	if err := NewError(ret); err != nil {
		return err
	}
	im.Dev = dev
	im.VkImage = img
	im.Width = info.Extent.Width
	im.Height = info.Extent.Height
	im.Format = info.Format
	return nil
}

// ConfigStdView creates a standard 2D color image view over the whole
// image, the common case every loaded texture needs.
func (im *Image) ConfigStdView() error {
	var view vk.ImageView
	ret := vk.CreateImageView(im.Dev, &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    im.VkImage,
		ViewType: vk.ImageViewType2d,
		Format:   im.Format,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}, nil, &view)
	if err := NewError(ret); err != nil {
		return err
	}
	im.View = view
	return nil
}

func (im *Image) Destroy() {
	if im.View != vk.NullImageView {
		vk.DestroyImageView(im.Dev, im.View, nil)
		im.View = vk.NullImageView
	}
	if im.VkImage != vk.NullImage {
		vk.DestroyImage(im.Dev, im.VkImage, nil)
		im.VkImage = vk.NullImage
	}
}

// Texture supplies an Image and the Sampler used to read it in a shader.
type Texture struct {
	Image
	Sampler
}

func (tx *Texture) Defaults() {
	tx.Sampler.Defaults()
}

func (tx *Texture) Destroy() {
	tx.Sampler.Destroy(tx.Image.Dev)
	tx.Image.Destroy()
}

// Alloc creates the backing image and, the first time it is called,
// configures the sampler, then builds the standard image view. Safe to
// call again after a reload: the sampler is only (re)configured once.
func (tx *Texture) Alloc(dev vk.Device, info vk.ImageCreateInfo, maxAnisotropy float32) error {
	if err := tx.Image.Create(dev, info); err != nil {
		return err
	}
	if tx.Sampler.VkSampler == vk.NullSampler {
		if err := tx.Sampler.Config(dev, maxAnisotropy); err != nil {
			return err
		}
	}
	return tx.Image.ConfigStdView()
}

// Sampler represents a Vulkan image sampler.
type Sampler struct {
	Name string

	// UMode is the addressing mode for the U (horizontal) axis.
	UMode SamplerModes
	// VMode is the addressing mode for the V (vertical) axis.
	VMode SamplerModes
	// WMode is the addressing mode for the W axis.
	WMode SamplerModes

	// Border is the border color used by Clamp modes.
	Border BorderColors

	VkSampler vk.Sampler
}

func (sm *Sampler) Defaults() {
	sm.UMode = Repeat
	sm.VMode = Repeat
	sm.WMode = Repeat
	sm.Border = BorderTrans
}

// Config (re)configures the sampler on dev. maxAnisotropy should come from
// the physical device's reported limits; this package does not query them
// itself since it never touches the physical device.
func (sm *Sampler) Config(dev vk.Device, maxAnisotropy float32) error {
	sm.Destroy(dev)
	var samp vk.Sampler
	ret := vk.CreateSampler(dev, &vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               vk.FilterLinear,
		MinFilter:               vk.FilterLinear,
		AddressModeU:            sm.UMode.VkMode(),
		AddressModeV:            sm.VMode.VkMode(),
		AddressModeW:            sm.WMode.VkMode(),
		AnisotropyEnable:        vk.True,
		MaxAnisotropy:           maxAnisotropy,
		BorderColor:             sm.Border.VkColor(),
		UnnormalizedCoordinates: vk.False,
		CompareEnable:           vk.False,
		MipmapMode:              vk.SamplerMipmapModeLinear,
	}, nil, &samp)
	if err := NewError(ret); err != nil {
		return err
	}
	sm.VkSampler = samp
	return nil
}

func (sm *Sampler) Destroy(dev vk.Device) {
	if sm.VkSampler != vk.NullSampler {
		vk.DestroySampler(dev, sm.VkSampler, nil)
		sm.VkSampler = vk.NullSampler
	}
}

// SamplerModes are the Vulkan texture addressing modes.
type SamplerModes int32

const (
	// Repeat the texture when going beyond the image dimensions.
	Repeat SamplerModes = iota
	// MirroredRepeat inverts the coordinates to mirror the image when going beyond the dimensions.
	MirroredRepeat
	// ClampToEdge takes the color of the closest edge beyond the image dimensions.
	ClampToEdge
	// ClampToBorder returns a solid color when sampling beyond the dimensions.
	ClampToBorder
	// MirrorClampToEdge is like ClampToEdge but uses the opposite edge.
	MirrorClampToEdge
)

func (sm SamplerModes) VkMode() vk.SamplerAddressMode {
	return vulkanSamplerModes[sm]
}

var vulkanSamplerModes = map[SamplerModes]vk.SamplerAddressMode{
	Repeat:            vk.SamplerAddressModeRepeat,
	MirroredRepeat:    vk.SamplerAddressModeMirroredRepeat,
	ClampToEdge:       vk.SamplerAddressModeClampToEdge,
	ClampToBorder:     vk.SamplerAddressModeClampToBorder,
	MirrorClampToEdge: vk.SamplerAddressModeMirrorClampToEdge,
}

// BorderColors are the Vulkan sampler border colors available for Clamp modes.
type BorderColors int32

const (
	BorderTrans BorderColors = iota
	BorderBlack
	BorderWhite
)

func (bc BorderColors) VkColor() vk.BorderColor {
	return vulkanBorderColors[bc]
}

var vulkanBorderColors = map[BorderColors]vk.BorderColor{
	BorderTrans: vk.BorderColorIntTransparentBlack,
	BorderBlack: vk.BorderColorIntOpaqueBlack,
	BorderWhite: vk.BorderColorIntOpaqueWhite,
}
