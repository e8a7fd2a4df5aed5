// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import "io"

// Serializer converts values of type T to and from a byte stream. Every
// concrete asset type registered with an AssetStorage supplies one via its
// TypeTraits. Encode/Decode return AssetParseError (a result type, not a
// panic) so malformed data on disk never crashes the loading asset manager.
type Serializer[T any] interface {
	Encode(w io.Writer, value T) *AssetParseError
	Decode(r io.Reader) (T, *AssetParseError)
}

// SerializerFuncs adapts a pair of plain functions to the Serializer
// interface, the way the teacher's codebase favors small function-valued
// adapters over one-method interfaces for leaf-level codecs.
type SerializerFuncs[T any] struct {
	EncodeFunc func(w io.Writer, value T) *AssetParseError
	DecodeFunc func(r io.Reader) (T, *AssetParseError)
}

func (s SerializerFuncs[T]) Encode(w io.Writer, value T) *AssetParseError {
	return s.EncodeFunc(w, value)
}

func (s SerializerFuncs[T]) Decode(r io.Reader) (T, *AssetParseError) {
	return s.DecodeFunc(r)
}
