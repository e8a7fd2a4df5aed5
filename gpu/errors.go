// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// Error wraps a non-success vk.Result so it satisfies the error interface.
type Error struct {
	Result vk.Result
}

func (e *Error) Error() string {
	return fmt.Sprintf("vulkan error: %d", e.Result)
}

// NewError returns nil for vk.Success and an *Error otherwise, the way
// every vk.Create*/vk.Allocate* call in this package reports failure.
func NewError(ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	return &Error{Result: ret}
}

// IfPanic panics if err is non-nil. Nothing in this package calls it:
// Image.Create, Sampler.Config and the PipelineBuilder methods return the
// NewError result to their caller instead.
func IfPanic(err error) {
	if err != nil {
		panic(err)
	}
}
