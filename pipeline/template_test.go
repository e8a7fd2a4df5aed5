// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vk "github.com/goki/vulkan"

	"cogentcore.org/torch/pipeline"
)

func TestSpecConstantsAppendOnly(t *testing.T) {
	var s pipeline.SpecConstants
	assert.True(t, s.Empty())

	s.SetUint32(0, 4)
	s.SetFloat32(1, 2.5)
	assert.False(t, s.Empty())
	require.Len(t, s.Entries, 2)
	assert.Equal(t, uint32(0), s.Entries[0].Offset)
	assert.Equal(t, uint32(4), s.Entries[1].Offset)

	info := s.MakeSpecializationInfo()
	assert.Equal(t, uint32(2), info.MapEntryCount)
	assert.Equal(t, uint(8), info.DataSize)
}

func TestNewTemplateSynthesizesDynamicStateWhenEmpty(t *testing.T) {
	tpl := pipeline.NewTemplate(pipeline.ProgramData{}, pipeline.PipelineData{})
	assert.Contains(t, tpl.Pipeline.DynamicStates, vk.DynamicStateViewport)
	assert.Contains(t, tpl.Pipeline.DynamicStates, vk.DynamicStateScissor)
}

func TestNewTemplateLeavesDynamicStateAloneWhenProvided(t *testing.T) {
	tpl := pipeline.NewTemplate(pipeline.ProgramData{}, pipeline.PipelineData{
		Viewports:    []vk.Viewport{{}},
		ScissorRects: []vk.Rect2D{{}},
	})
	assert.Empty(t, tpl.Pipeline.DynamicStates)
}
