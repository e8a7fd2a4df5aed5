// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets_test

import (
	"io"

	"cogentcore.org/torch/assets"
)

// fixtureGeometry and fixtureTexture stand in for two distinct concrete
// asset types in tests, the way the spec's Geometry/Texture module pair do
// in the real registries.
type fixtureGeometry struct {
	Value string
}

type fixtureTexture struct {
	Value string
}

type fixtureGeometryHandle struct {
	Value     string
	localID   uint32
	destroyed *bool
}

type fixtureTextureHandle struct {
	Value     string
	localID   uint32
	destroyed *bool
}

func fixtureEncode(w io.Writer, value string) *assets.AssetParseError {
	if _, err := io.WriteString(w, value); err != nil {
		return &assets.AssetParseError{Code: assets.SystemError, Message: err.Error()}
	}
	return nil
}

func fixtureDecode(r io.Reader) (string, *assets.AssetParseError) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", &assets.AssetParseError{Code: assets.SystemError, Message: err.Error()}
	}
	return string(data), nil
}

func geometryTraits() assets.TypeTraits[fixtureGeometry] {
	return assets.TypeTraits[fixtureGeometry]{
		TypeName: "test.Geometry",
		Serializer: assets.SerializerFuncs[fixtureGeometry]{
			EncodeFunc: func(w io.Writer, v fixtureGeometry) *assets.AssetParseError {
				return fixtureEncode(w, v.Value)
			},
			DecodeFunc: func(r io.Reader) (fixtureGeometry, *assets.AssetParseError) {
				s, perr := fixtureDecode(r)
				return fixtureGeometry{Value: s}, perr
			},
		},
	}
}

func textureTraits() assets.TypeTraits[fixtureTexture] {
	return assets.TypeTraits[fixtureTexture]{
		TypeName: "test.Texture",
		Serializer: assets.SerializerFuncs[fixtureTexture]{
			EncodeFunc: func(w io.Writer, v fixtureTexture) *assets.AssetParseError {
				return fixtureEncode(w, v.Value)
			},
			DecodeFunc: func(r io.Reader) (fixtureTexture, *assets.AssetParseError) {
				s, perr := fixtureDecode(r)
				return fixtureTexture{Value: s}, perr
			},
		},
	}
}

// fixtureGeometryModule and fixtureTextureModule are minimal
// assets.Module implementations. Each hands out its own
// module-local counter, distinct from the manager's global AssetID
// counter, so tests can tell the two apart.
type fixtureGeometryModule struct {
	nextLocalID uint32
}

func (m *fixtureGeometryModule) Create(source assets.AssetSource[fixtureGeometry]) (fixtureGeometryHandle, error) {
	v, perr := source.Load()
	if perr != nil {
		return fixtureGeometryHandle{}, perr
	}
	m.nextLocalID++
	return fixtureGeometryHandle{Value: v.Value, localID: m.nextLocalID}, nil
}

func (m *fixtureGeometryModule) Destroy(h fixtureGeometryHandle) {
	if h.destroyed != nil {
		*h.destroyed = true
	}
}

func (m *fixtureGeometryModule) LocalID(h fixtureGeometryHandle) uint32 {
	return h.localID
}

type fixtureTextureModule struct {
	nextLocalID uint32
}

func (m *fixtureTextureModule) Create(source assets.AssetSource[fixtureTexture]) (fixtureTextureHandle, error) {
	v, perr := source.Load()
	if perr != nil {
		return fixtureTextureHandle{}, perr
	}
	m.nextLocalID++
	return fixtureTextureHandle{Value: v.Value, localID: m.nextLocalID}, nil
}

func (m *fixtureTextureModule) Destroy(h fixtureTextureHandle) {
	if h.destroyed != nil {
		*h.destroyed = true
	}
}

func (m *fixtureTextureModule) LocalID(h fixtureTextureHandle) uint32 {
	return h.localID
}

// newFixtureRegistry returns an AssetRegistry with both fixture modules
// registered, ready to back an AssetManager in tests.
func newFixtureRegistry() *assets.AssetRegistry {
	r := assets.NewAssetRegistry()
	assets.RegisterModule[fixtureGeometry, fixtureGeometryHandle](r, geometryTraits(), &fixtureGeometryModule{})
	assets.RegisterModule[fixtureTexture, fixtureTextureHandle](r, textureTraits(), &fixtureTextureModule{})
	return r
}

// recordingGeometryModule records the Value of every handle it destroys, so
// tests can assert that destruction actually reached the device module.
type recordingGeometryModule struct {
	destroyedValues *[]string
	nextLocalID     uint32
}

func (m *recordingGeometryModule) Create(source assets.AssetSource[fixtureGeometry]) (fixtureGeometryHandle, error) {
	v, perr := source.Load()
	if perr != nil {
		return fixtureGeometryHandle{}, perr
	}
	m.nextLocalID++
	return fixtureGeometryHandle{Value: v.Value, localID: m.nextLocalID}, nil
}

func (m *recordingGeometryModule) Destroy(h fixtureGeometryHandle) {
	*m.destroyedValues = append(*m.destroyedValues, h.Value)
}

func (m *recordingGeometryModule) LocalID(h fixtureGeometryHandle) uint32 {
	return h.localID
}
