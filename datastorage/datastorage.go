// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package datastorage provides the abstract key -> byte-stream map that
// AssetStorage is layered over, plus an in-memory and a filesystem
// implementation.
package datastorage

import (
	"io"

	"cogentcore.org/torch/pathlet"
)

// DataStorage is a key -> value stream map. Implementations never panic on
// I/O failure; they report it through the return values below.
type DataStorage interface {
	// Read opens the stream stored at path. It returns false if no value
	// exists at path.
	Read(path pathlet.Pathlet) (io.ReadCloser, bool, error)

	// Write opens a stream to overwrite the value at path. It returns false
	// if the implementation could not open the destination (e.g. permission
	// denied); the caller must not assume any bytes were written.
	Write(path pathlet.Pathlet) (io.WriteCloser, bool, error)

	// Remove deletes the value at path, reporting whether anything existed
	// there to delete.
	Remove(path pathlet.Pathlet) (bool, error)

	// Keys returns every key currently present in the storage, in no
	// particular order.
	Keys() ([]pathlet.Pathlet, error)
}
