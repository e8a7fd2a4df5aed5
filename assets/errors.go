// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import "fmt"

// InvalidAssetIDError is panicked when an AssetID or TypedAssetID is used
// after the asset it referred to was destroyed (or, for TypedAssetID, was
// never valid to begin with). It is never returned as an error value: using
// an asset id after its asset has been destroyed is a programmer error, not
// a recoverable condition (spec.md §7).
type InvalidAssetIDError struct {
	ID     AssetID
	Reason string
}

func (e *InvalidAssetIDError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid asset id %v", e.ID)
	}
	return fmt.Sprintf("invalid asset id %v: %s", e.ID, e.Reason)
}

// InvalidAssetTypeError is panicked when a Create/Destroy call names a type
// T that disagrees with the asset's stored metadata type.
type InvalidAssetTypeError struct {
	Expected AssetType
	Actual   AssetType
	Context  string
}

func (e *InvalidAssetTypeError) Error() string {
	return fmt.Sprintf("%s: expected asset type %q, got %q", e.Context, e.Expected, e.Actual)
}

// AssetLoadError describes a backing store that cannot produce an asset's
// bytes. AssetSource.Load reports its failures as *AssetParseError; nothing
// in this package returns an AssetLoadError.
type AssetLoadError struct {
	Path   string
	Reason string
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("unable to load asset from %q: %s", e.Path, e.Reason)
}

// ParseErrorCode classifies an AssetParseError.
type ParseErrorCode int

const (
	// SyntaxError means the serializer could not parse the byte stream at
	// all (malformed encoding).
	SyntaxError ParseErrorCode = iota
	// SemanticError means the bytes parsed but describe a different asset
	// type than was requested.
	SemanticError
	// SystemError means the underlying stream could not be read or written.
	SystemError
	// OtherError is any other serializer failure.
	OtherError
)

func (c ParseErrorCode) String() string {
	switch c {
	case SyntaxError:
		return "syntax error"
	case SemanticError:
		return "semantic error"
	case SystemError:
		return "system error"
	default:
		return "other error"
	}
}

// AssetParseError is returned from AssetStorage's Store/Load boundary; it is
// a result-type error, never a panic, per spec.md §7's "convert to result
// types at storage boundaries" redesign note.
type AssetParseError struct {
	Code    ParseErrorCode
	Message string
}

func (e *AssetParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
