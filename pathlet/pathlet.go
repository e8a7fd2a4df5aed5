// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pathlet provides Pathlet, a normalized relative path used as the
// canonical key throughout the asset and pipeline subsystem.
package pathlet

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// InvalidPathletError is returned when a path fails the normalization
// invariants enforced by New.
type InvalidPathletError struct {
	Path   string
	Reason string
}

func (e *InvalidPathletError) Error() string {
	return fmt.Sprintf("invalid pathlet %q: %s", e.Path, e.Reason)
}

// Pathlet is a normalized path fragment relative to some root that is only
// known at the point of use (an asset directory, an include directory, ...).
// Two Pathlets compare equal iff their normalized string forms match.
type Pathlet struct {
	clean string
}

// New constructs a Pathlet from p, rejecting empty paths, paths ending in a
// separator, and paths whose last element is "." (such as "." or "foo/.").
// Any leading root component ("/foo") is stripped.
func New(p string) (Pathlet, error) {
	if p == "" {
		return Pathlet{}, &InvalidPathletError{p, "path must not be empty"}
	}
	if strings.HasSuffix(p, "/") {
		return Pathlet{}, &InvalidPathletError{p, "path must not end in a separator"}
	}

	p = filepath.ToSlash(p)
	if path.Base(p) == "." {
		return Pathlet{}, &InvalidPathletError{p, "path must not name a directory (\".\")"}
	}
	p = strings.TrimPrefix(path.Clean(p), "/")
	if p == "." || p == "" {
		return Pathlet{}, &InvalidPathletError{p, "path must not be empty or \".\""}
	}
	return Pathlet{clean: p}, nil
}

// MustNew is like New but panics on error. Intended for constants and tests.
func MustNew(p string) Pathlet {
	pl, err := New(p)
	if err != nil {
		panic(err)
	}
	return pl
}

// String returns the pathlet in its normalized string form.
func (pl Pathlet) String() string {
	return pl.clean
}

// IsZero reports whether pl is the zero value (never produced by New).
func (pl Pathlet) IsZero() bool {
	return pl.clean == ""
}

// Filename returns the file's name stripped of leading directories.
func (pl Pathlet) Filename() string {
	return path.Base(pl.clean)
}

// Ext returns the outer-most extension, including the leading dot, or "" if
// there is none.
func (pl Pathlet) Ext() string {
	return path.Ext(pl.clean)
}

// ReplaceExtension replaces the outer-most extension with newExt (which may
// or may not carry a leading dot) and returns the resulting Pathlet.
func (pl Pathlet) ReplaceExtension(newExt string) Pathlet {
	newExt = strings.TrimPrefix(newExt, ".")
	base := strings.TrimSuffix(pl.clean, pl.Ext())
	return Pathlet{clean: base + "." + newExt}
}

// WithExtension appends ext (which may or may not carry a leading dot) to the
// pathlet and returns the resulting Pathlet.
func (pl Pathlet) WithExtension(ext string) Pathlet {
	ext = strings.TrimPrefix(ext, ".")
	return Pathlet{clean: pl.clean + "." + ext}
}

// FilesystemPath concatenates parent and pl, returning parent/pl in
// slash-normalized form. The Pathlet only ever occurs on the right-hand
// side of the concatenation.
func (pl Pathlet) FilesystemPath(parent string) string {
	if parent == "" {
		return pl.clean
	}
	return path.Join(parent, pl.clean)
}

// Equal reports whether pl and other have the same normalized form.
func (pl Pathlet) Equal(other Pathlet) bool {
	return pl.clean == other.clean
}
