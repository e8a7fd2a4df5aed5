// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datastorage

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"cogentcore.org/torch/pathlet"
)

// FilesystemStorage is a DataStorage backed by a root directory on the local
// filesystem. Keys map directly to files relative to root.
type FilesystemStorage struct {
	root string
}

// NewFilesystemStorage returns a FilesystemStorage rooted at root. The
// directory is not required to exist yet; it is created lazily on first
// write.
func NewFilesystemStorage(root string) *FilesystemStorage {
	return &FilesystemStorage{root: root}
}

func (f *FilesystemStorage) abs(path pathlet.Pathlet) string {
	return filepath.Join(f.root, filepath.FromSlash(path.String()))
}

func (f *FilesystemStorage) Read(path pathlet.Pathlet) (io.ReadCloser, bool, error) {
	file, err := os.Open(f.abs(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return file, true, nil
}

func (f *FilesystemStorage) Write(path pathlet.Pathlet) (io.WriteCloser, bool, error) {
	dst := f.abs(path)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, false, nil
	}
	file, err := os.Create(dst)
	if err != nil {
		return nil, false, nil
	}
	return file, true, nil
}

func (f *FilesystemStorage) Remove(path pathlet.Pathlet) (bool, error) {
	err := os.Remove(f.abs(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (f *FilesystemStorage) Keys() ([]pathlet.Pathlet, error) {
	var keys []pathlet.Pathlet
	err := filepath.WalkDir(f.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(f.root, p)
		if err != nil {
			return err
		}
		pl, err := pathlet.New(filepath.ToSlash(rel))
		if err != nil {
			return nil
		}
		keys = append(keys, pl)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// NullStorage is a DataStorage that stores nothing; every read misses,
// every write and remove is a silent success. Useful as a placeholder when
// an AssetManager is constructed purely for in-memory assets.
type NullStorage struct{}

func (NullStorage) Read(pathlet.Pathlet) (io.ReadCloser, bool, error)  { return nil, false, nil }
func (NullStorage) Write(pathlet.Pathlet) (io.WriteCloser, bool, error) {
	return nopWriteCloser{}, true, nil
}
func (NullStorage) Remove(pathlet.Pathlet) (bool, error) { return false, nil }
func (NullStorage) Keys() ([]pathlet.Pathlet, error)     { return nil, nil }

type nopWriteCloser struct{}

func (nopWriteCloser) Write(p []byte) (int, error) { return len(p), nil }
func (nopWriteCloser) Close() error                { return nil }
