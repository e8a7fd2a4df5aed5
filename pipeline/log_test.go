// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vk "github.com/goki/vulkan"

	"cogentcore.org/torch/descriptor"
	"cogentcore.org/torch/pipeline"
	"cogentcore.org/torch/renderpass"
)

func TestSetLoggerRecordsStorageBuild(t *testing.T) {
	reg := pipeline.NewRegistry()
	layoutID := reg.RegisterPipelineLayout(pipeline.LayoutTemplate{})
	gfxID := reg.RegisterPipeline(pipeline.NewTemplate(pipeline.ProgramData{}, pipeline.PipelineData{}), layoutID, "main")

	rpReg := renderpass.NewRegistry()
	rpReg.AddRenderPass("main", vk.RenderPass(1), 0)
	storage := reg.MakeStorage(&fakeLayoutBuilder{}, &fakeGraphicsBuilder{}, &fakeComputeBuilder{}, rpReg, descriptor.NewRegistry())

	var buf bytes.Buffer
	pipeline.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { pipeline.SetLogger(nil) })

	_, err := storage.Get(gfxID)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "built pipeline layout")
	assert.Contains(t, buf.String(), "built pipeline")
}
