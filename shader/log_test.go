// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/torch/pathlet"
	"cogentcore.org/torch/shader"
)

func TestSetLoggerRecordsCacheMiss(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "flat.vert"), []byte("void main(){}"), 0o644))

	var buf bytes.Buffer
	shader.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { shader.SetLogger(nil) })

	loader := shader.NewLoader([]string{srcDir}, outDir, nil, &fakeCompiler{}, shader.CompileOptions{})
	_, err := loader.Load(shader.NewPath(pathlet.MustNew("flat.vert")))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "shader cache miss")
}
