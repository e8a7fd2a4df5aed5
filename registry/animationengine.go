// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"fmt"
	"time"

	"cogentcore.org/torch/assets"
)

// NoAnimation is the sentinel meaning "no animation currently playing",
// matching the source's NO_ANIMATION constant.
const NoAnimation uint32 = ^uint32(0)

// AnimationDeviceData is the small per-entity state the skinning shader
// reads: which animation is playing, the two keyframes to blend between,
// and the blend weight.
type AnimationDeviceData struct {
	CurrentAnimation uint32
	Keyframes        [2]uint32
	KeyframeWeight   float32
}

// AnimationEngine steps one entity's currently playing animation forward in
// time and produces the keyframe-blend state its shader needs. One
// AnimationEngine exists per animated entity; it is not itself an
// assets.Module handle.
type AnimationEngine struct {
	rig *RigHandle

	current   *AnimationHandle
	elapsedMs float32
	state     AnimationDeviceData
}

// NewAnimationEngine returns an AnimationEngine driving animations defined
// on rig. A nil rig is valid; PlayAnimationByIndex/ByName will simply fail
// until a handle is set with SetRig.
func NewAnimationEngine(rig *RigHandle) *AnimationEngine {
	return &AnimationEngine{rig: rig, state: AnimationDeviceData{CurrentAnimation: NoAnimation}}
}

// SetRig rebinds the engine to a different rig, stopping any animation
// currently playing.
func (e *AnimationEngine) SetRig(rig *RigHandle) {
	e.rig = rig
	e.current = nil
	e.elapsedMs = 0
	e.state = AnimationDeviceData{CurrentAnimation: NoAnimation}
}

// PlayAnimation starts playing handle from its first frame.
func (e *AnimationEngine) PlayAnimation(handle AnimationHandle) {
	h := handle
	e.current = &h
	e.elapsedMs = 0
	e.updateState()
}

// PlayAnimationByIndex starts playing the rig's animation at index.
func (e *AnimationEngine) PlayAnimationByIndex(index int) error {
	if e.rig == nil {
		return fmt.Errorf("animation engine has no rig bound")
	}
	id, err := e.rig.AnimationAt(index)
	if err != nil {
		return err
	}
	e.PlayAnimation(assets.GetHandle[AnimationData, AnimationHandle](id.Manager(), id))
	return nil
}

// PlayAnimationByName starts playing the rig's animation named name.
func (e *AnimationEngine) PlayAnimationByName(name string) error {
	if e.rig == nil {
		return fmt.Errorf("animation engine has no rig bound")
	}
	for _, id := range e.rig.animations {
		if id.Metadata().Name == name {
			e.PlayAnimation(assets.GetHandle[AnimationData, AnimationHandle](id.Manager(), id))
			return nil
		}
	}
	return fmt.Errorf("rig %q has no animation named %q", e.rig.name, name)
}

// Update advances playback by dt and recomputes the blend state.
func (e *AnimationEngine) Update(dt time.Duration) {
	if e.current == nil {
		return
	}
	e.elapsedMs += float32(dt.Microseconds()) / 1000
	e.updateState()
}

func (e *AnimationEngine) updateState() {
	anim := e.current
	if anim == nil || anim.FrameCount == 0 || anim.FrameTimeMs <= 0 {
		e.state = AnimationDeviceData{CurrentAnimation: NoAnimation}
		return
	}

	frameFloat := e.elapsedMs / anim.FrameTimeMs
	whole := uint32(frameFloat)
	frame0 := whole % anim.FrameCount
	frame1 := (frame0 + 1) % anim.FrameCount
	weight := frameFloat - float32(whole)

	e.state = AnimationDeviceData{
		CurrentAnimation: anim.BufferIndex,
		Keyframes:        [2]uint32{frame0, frame1},
		KeyframeWeight:   weight,
	}
}

// State returns the current blend state for the shader to consume.
func (e *AnimationEngine) State() AnimationDeviceData {
	return e.state
}
