// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datastorage

import (
	"bytes"
	"io"
	"sync"

	"cogentcore.org/torch/pathlet"
)

// MemoryStorage is an in-process DataStorage backed by a map. It is safe
// for concurrent use.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

type nopCloserReader struct{ *bytes.Reader }

func (nopCloserReader) Close() error { return nil }

func (m *MemoryStorage) Read(path pathlet.Pathlet) (io.ReadCloser, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.data[path.String()]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return nopCloserReader{bytes.NewReader(cp)}, true, nil
}

type memWriteCloser struct {
	buf     bytes.Buffer
	path    string
	storage *MemoryStorage
}

func (w *memWriteCloser) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *memWriteCloser) Close() error {
	w.storage.mu.Lock()
	defer w.storage.mu.Unlock()
	w.storage.data[w.path] = w.buf.Bytes()
	return nil
}

func (m *MemoryStorage) Write(path pathlet.Pathlet) (io.WriteCloser, bool, error) {
	return &memWriteCloser{path: path.String(), storage: m}, true, nil
}

func (m *MemoryStorage) Remove(path pathlet.Pathlet) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[path.String()]
	delete(m.data, path.String())
	return ok, nil
}

func (m *MemoryStorage) Keys() ([]pathlet.Pathlet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]pathlet.Pathlet, 0, len(m.data))
	for k := range m.data {
		pl, err := pathlet.New(k)
		if err != nil {
			continue
		}
		keys = append(keys, pl)
	}
	return keys, nil
}
