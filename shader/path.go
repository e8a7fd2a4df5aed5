// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shader implements shader source lookup, staleness checking, and
// compilation caching: Path names a shader by its source pathlet, Loader
// resolves a Path to compiled SPIR-V (recompiling only when the source is
// newer than the cached binary), and Database is the on-disk JSON index a
// Loader consults when a shader isn't found on its include paths directly.
package shader

import "cogentcore.org/torch/pathlet"

// Path identifies a shader by the pathlet of its source file, relative to
// whichever include path it was found under.
type Path struct {
	source pathlet.Pathlet
}

// NewPath wraps source as a shader Path.
func NewPath(source pathlet.Pathlet) Path {
	return Path{source: source}
}

// SourcePath returns the shader's source-relative pathlet.
func (p Path) SourcePath() pathlet.Pathlet {
	return p.source
}

// BinaryPath returns the pathlet of the compiled SPIR-V binary
// corresponding to this source: the source path with a ".spv" extension
// appended (e.g. "shader.vert" -> "shader.vert.spv").
func (p Path) BinaryPath() pathlet.Pathlet {
	return p.source.WithExtension("spv")
}

// Equal reports whether two Paths name the same source file.
func (p Path) Equal(other Path) bool {
	return p.source.Equal(other.source)
}

// String returns the shader's source path in its normalized string form.
func (p Path) String() string {
	return p.source.String()
}
