// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package material implements material node graphs and their compilation
// into shader modules: a graph of typed nodes is type-checked and
// traversed depth-first into GLSL-like source, which ShaderModuleCompiler
// and MaterialShaderProgram then turn into a registered pipeline.
package material

import "fmt"

// ScalarKind is a shader scalar type, ranked by implicit promotion order
// (bool < int < uint < float): TypeRange.Intersect narrows toward the
// lower-ranked (more restrictive) of two bounds.
type ScalarKind int

const (
	ScalarBool ScalarKind = iota
	ScalarInt
	ScalarUint
	ScalarFloat
)

func (k ScalarKind) glslName() string {
	switch k {
	case ScalarBool:
		return "bool"
	case ScalarInt:
		return "int"
	case ScalarUint:
		return "uint"
	default:
		return "float"
	}
}

// BasicType is a concrete shader type: a scalar kind plus a channel count
// (1 for a scalar, 2-4 for a vector).
type BasicType struct {
	Scalar   ScalarKind
	Channels int
}

// String returns the GLSL spelling of t, e.g. "float", "vec3", "ivec2".
func (t BasicType) String() string {
	if t.Channels <= 1 {
		return t.Scalar.glslName()
	}
	prefix := ""
	switch t.Scalar {
	case ScalarInt:
		prefix = "i"
	case ScalarUint:
		prefix = "u"
	case ScalarBool:
		prefix = "b"
	}
	return fmt.Sprintf("%svec%d", prefix, t.Channels)
}

// TypeRangeError is returned when two TypeRanges have no compatible
// intersection.
type TypeRangeError struct {
	A, B TypeRange
}

func (e *TypeRangeError) Error() string {
	return fmt.Sprintf("incompatible type constraints %v and %v", e.A, e.B)
}

// TypeRange constrains a socket's eventual BasicType: its scalar kind is
// bounded above by UpperBoundScalar (a socket accepting "up to float" also
// accepts int/uint/bool, since those promote to float), and its channel
// count lies in [MinChannels, MaxChannels].
type TypeRange struct {
	UpperBoundScalar ScalarKind
	MinChannels      int
	MaxChannels      int
}

// Intersect returns the narrowest range compatible with both r and other,
// or a *TypeRangeError if no such range exists.
func (r TypeRange) Intersect(other TypeRange) (TypeRange, error) {
	bound := r.UpperBoundScalar
	if other.UpperBoundScalar < bound {
		bound = other.UpperBoundScalar
	}
	min := r.MinChannels
	if other.MinChannels > min {
		min = other.MinChannels
	}
	max := r.MaxChannels
	if other.MaxChannels < max {
		max = other.MaxChannels
	}
	if min > max {
		return TypeRange{}, &TypeRangeError{A: r, B: other}
	}
	return TypeRange{UpperBoundScalar: bound, MinChannels: min, MaxChannels: max}, nil
}

// Concrete reports whether r has narrowed to exactly one BasicType (its
// channel bounds have converged), returning that type if so.
func (r TypeRange) Concrete() (BasicType, bool) {
	if r.MinChannels != r.MaxChannels {
		return BasicType{}, false
	}
	return BasicType{Scalar: r.UpperBoundScalar, Channels: r.MinChannels}, true
}

// Accepts reports whether concrete type t satisfies range r: t's scalar
// must promote to r's upper bound or be equal to it, and t's channel count
// must lie within r's bounds.
func (r TypeRange) Accepts(t BasicType) bool {
	return t.Scalar <= r.UpperBoundScalar && t.Channels >= r.MinChannels && t.Channels <= r.MaxChannels
}
