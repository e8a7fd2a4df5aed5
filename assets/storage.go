// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cogentcore.org/torch/datastorage"
	"cogentcore.org/torch/pathlet"
)

// AssetStorage mediates between typed asset values and a backing
// datastorage.DataStorage. For every logical asset path p, two keys exist:
// p.meta and p.data. It has no notion of asset type itself; callers supply
// a TypeTraits[T] at every call, standing in for the C++ source's
// AssetStorage::store<T>/load<T> template methods (Go disallows generic
// methods, so these are free functions parameterized over T instead).
type AssetStorage struct {
	backing datastorage.DataStorage
}

// NewAssetStorage returns an AssetStorage backed by store.
func NewAssetStorage(store datastorage.DataStorage) *AssetStorage {
	return &AssetStorage{backing: store}
}

const (
	metaExt = "meta"
	dataExt = "data"
)

func metaPath(p pathlet.Pathlet) pathlet.Pathlet { return p.WithExtension(metaExt) }
func dataPath(p pathlet.Pathlet) pathlet.Pathlet { return p.WithExtension(dataExt) }

// metaRecord is AssetMetadata's wire form. AssetType and Pathlet carry no
// exported fields of their own, so the storage boundary marshals through
// this plain-string DTO instead of teaching those types to serialize
// themselves.
type metaRecord struct {
	Name string
	Type string
	Path string
}

func encodeMetadata(m AssetMetadata) []byte {
	rec := metaRecord{Name: m.Name, Type: m.Type.Name()}
	if m.Path != nil {
		rec.Path = m.Path.String()
	}
	b, err := json.Marshal(rec)
	if err != nil {
		panic(err)
	}
	return b
}

func decodeMetadata(b []byte) (AssetMetadata, *AssetParseError) {
	var rec metaRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return AssetMetadata{}, &AssetParseError{Code: SyntaxError, Message: err.Error()}
	}
	m := AssetMetadata{Name: rec.Name, Type: NewAssetType(rec.Type)}
	if rec.Path != "" {
		p, err := pathlet.New(rec.Path)
		if err != nil {
			return AssetMetadata{}, &AssetParseError{Code: SyntaxError, Message: err.Error()}
		}
		m.Path = &p
	}
	return m, nil
}

// Store writes path's metadata to path.meta and then value to path.data via
// traits' serializer. Metadata is written first so that a store aborted
// partway through is detectable: a .meta with no matching .data is a
// recognizably incomplete asset, never a silently corrupt one.
func Store[T any](s *AssetStorage, path pathlet.Pathlet, traits TypeTraits[T], value T) *AssetParseError {
	metaW, ok, err := s.backing.Write(metaPath(path))
	if err != nil {
		return &AssetParseError{Code: SystemError, Message: err.Error()}
	}
	if !ok {
		return &AssetParseError{Code: SystemError, Message: "storage backend refused write to " + metaPath(path).String()}
	}
	meta := AssetMetadata{Name: path.Filename(), Type: traits.AssetType(), Path: &path}
	_, writeErr := metaW.Write(encodeMetadata(meta))
	closeErr := metaW.Close()
	if writeErr != nil {
		return &AssetParseError{Code: SystemError, Message: writeErr.Error()}
	}
	if closeErr != nil {
		return &AssetParseError{Code: SystemError, Message: closeErr.Error()}
	}

	dataW, ok, err := s.backing.Write(dataPath(path))
	if err != nil {
		return &AssetParseError{Code: SystemError, Message: err.Error()}
	}
	if !ok {
		return &AssetParseError{Code: SystemError, Message: "storage backend refused write to " + dataPath(path).String()}
	}
	defer dataW.Close()
	return traits.Serializer.Encode(dataW, value)
}

// GetMetadata reads path's metadata, independent of any asset type. It is
// how a caller discovers what type is declared at a path before deciding
// how, or whether, to load it.
func GetMetadata(s *AssetStorage, path pathlet.Pathlet) (AssetMetadata, *AssetParseError) {
	r, ok, err := s.backing.Read(metaPath(path))
	if err != nil {
		return AssetMetadata{}, &AssetParseError{Code: SystemError, Message: err.Error()}
	}
	if !ok {
		return AssetMetadata{}, &AssetParseError{Code: SystemError, Message: "no metadata stored at " + path.String()}
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return AssetMetadata{}, &AssetParseError{Code: SystemError, Message: err.Error()}
	}
	return decodeMetadata(b)
}

// Load reads path's metadata and, only if it declares traits' type,
// decodes the paired data key. A metadata/type mismatch is reported as a
// SemanticError without ever touching path.data.
func Load[T any](s *AssetStorage, path pathlet.Pathlet, traits TypeTraits[T]) (T, *AssetParseError) {
	var zero T
	meta, perr := GetMetadata(s, path)
	if perr != nil {
		return zero, perr
	}
	want := traits.AssetType()
	if !meta.Type.Equal(want) {
		return zero, &AssetParseError{
			Code:    SemanticError,
			Message: fmt.Sprintf("asset %q has type %q, not %q", path, meta.Type, want),
		}
	}

	r, ok, err := s.backing.Read(dataPath(path))
	if err != nil {
		return zero, &AssetParseError{Code: SystemError, Message: err.Error()}
	}
	if !ok {
		return zero, &AssetParseError{Code: SystemError, Message: "no asset data stored at " + path.String()}
	}
	defer r.Close()
	return traits.Serializer.Decode(r)
}

// LoadDeferred returns an AssetSource that loads the asset at path lazily,
// the first time its Load method is called, rather than eagerly.
func LoadDeferred[T any](s *AssetStorage, path pathlet.Pathlet, traits TypeTraits[T]) AssetSource[T] {
	return &StorageSource[T]{storage: s, path: path, traits: traits}
}

// Remove deletes both path.meta and path.data, reporting whether either
// existed.
func (s *AssetStorage) Remove(path pathlet.Pathlet) (bool, error) {
	metaRemoved, err := s.backing.Remove(metaPath(path))
	if err != nil {
		return false, err
	}
	dataRemoved, err := s.backing.Remove(dataPath(path))
	if err != nil {
		return false, err
	}
	return metaRemoved || dataRemoved, nil
}

// Keys returns every unique asset path currently stored, one entry per
// path regardless of whether its data half also exists, by enumerating
// the backing store's keys ending in ".meta" and stripping the suffix —
// the same way the source's iterator does.
func (s *AssetStorage) Keys() ([]pathlet.Pathlet, error) {
	all, err := s.backing.Keys()
	if err != nil {
		return nil, err
	}
	suffix := "." + metaExt
	var out []pathlet.Pathlet
	for _, k := range all {
		if k.Ext() != suffix {
			continue
		}
		p, err := pathlet.New(strings.TrimSuffix(k.String(), suffix))
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
