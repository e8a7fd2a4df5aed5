// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu is the thin device-resource layer the registry modules build
// on: a constructor-injected logical device, device-resident textures and
// samplers, and a small buffer pool. It does not create a Vulkan instance,
// pick a physical device, or build a swapchain — that bring-up layer is a
// non-goal, same as in the source this package is modeled on.
package gpu

import (
	vk "github.com/goki/vulkan"
)

// Device wraps a logical Vulkan device and the queue registry modules
// submit work to. It is always handed to this package already initialized;
// nothing here calls vk.CreateDevice.
type Device struct {
	// Device is the logical device.
	Device vk.Device

	// QueueIndex is the queue family index Queue was obtained from.
	QueueIndex uint32

	// Queue is the device queue used for resource uploads and commands.
	Queue vk.Queue
}

// Destroy waits for the device to go idle and releases it. Safe to call on
// a zero-value Device.
func (dv *Device) Destroy() {
	if dv.Device == nil {
		return
	}
	vk.DeviceWaitIdle(dv.Device)
	vk.DestroyDevice(dv.Device, nil)
	dv.Device = nil
}

// WaitIdle blocks until all submitted work on this device's queue has
// completed.
func (dv *Device) WaitIdle() {
	if dv.Device == nil {
		return
	}
	vk.DeviceWaitIdle(dv.Device)
}
