// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cogentcore.org/torch/gpu"
)

func TestMemSizeAlign(t *testing.T) {
	assert.Equal(t, 16, gpu.MemSizeAlign(12, 16))
	assert.Equal(t, 16, gpu.MemSizeAlign(16, 16))
	assert.Equal(t, 32, gpu.MemSizeAlign(17, 16))
	assert.Equal(t, 0, gpu.MemSizeAlign(0, 16))
}

func TestBufferPoolAllocIsMonotonicAndAligned(t *testing.T) {
	pool := gpu.NewBufferPool(16)

	a := pool.Alloc(12)
	b := pool.Alloc(4)
	c := pool.Alloc(1)

	assert.Equal(t, 0, a)
	assert.Equal(t, 16, b)
	assert.Equal(t, 32, c)
	assert.Equal(t, 48, pool.Size())
}

func TestBufferPoolReset(t *testing.T) {
	pool := gpu.NewBufferPool(16)
	pool.Alloc(100)
	assert.NotZero(t, pool.Size())

	pool.Reset()
	assert.Equal(t, 0, pool.Size())

	assert.Equal(t, 0, pool.Alloc(1))
}
