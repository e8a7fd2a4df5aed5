// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/torch/assets"
	"cogentcore.org/torch/pathlet"
)

// TestCreateAssetAtPathDispatchesWithoutStaticType is the "act on the asset
// at this path without knowing T statically" scenario spec.md §4.2
// describes for TraitStorage: the caller only has a path and a
// TraitStorage, never a compile-time T.
func TestCreateAssetAtPathDispatchesWithoutStaticType(t *testing.T) {
	mgr := newFixtureManager()
	traits := assets.NewTraitStorage()
	assets.RegisterManagerTraits(traits, assets.NewManagerTraits[fixtureGeometry, fixtureGeometryHandle](geometryTraits()))
	assets.RegisterManagerTraits(traits, assets.NewManagerTraits[fixtureTexture, fixtureTextureHandle](textureTraits()))

	path := pathlet.MustNew("meshes/plane.geo")
	require.Nil(t, assets.Store(mgr.Storage(), path, geometryTraits(), fixtureGeometry{Value: "plane"}))

	id, err := assets.CreateAssetAtPath(mgr, traits, path)
	require.NoError(t, err)
	assert.True(t, id.IsValid())
	assert.True(t, mgr.Metadata(id).Type.Equal(geometryTraits().AssetType()))

	// A second dispatch through the same untyped path returns the same
	// asset, exactly like a statically-typed GetOrCreateAsset call would.
	again, err := assets.CreateAssetAtPath(mgr, traits, path)
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestCreateAssetAtPathFailsWithoutRegisteredTraits(t *testing.T) {
	mgr := newFixtureManager()
	traits := assets.NewTraitStorage()
	path := pathlet.MustNew("meshes/plane.geo")
	require.Nil(t, assets.Store(mgr.Storage(), path, geometryTraits(), fixtureGeometry{Value: "plane"}))

	_, err := assets.CreateAssetAtPath(mgr, traits, path)
	assert.Error(t, err)
}

func TestCreateAssetAtPathFailsWithoutStoredMetadata(t *testing.T) {
	mgr := newFixtureManager()
	traits := assets.NewTraitStorage()
	assets.RegisterManagerTraits(traits, assets.NewManagerTraits[fixtureGeometry, fixtureGeometryHandle](geometryTraits()))

	_, err := assets.CreateAssetAtPath(mgr, traits, pathlet.MustNew("nope.geo"))
	assert.Error(t, err)
}

func TestTraitStorageRegisterTwicePanics(t *testing.T) {
	traits := assets.NewTraitStorage()
	mt := assets.NewManagerTraits[fixtureGeometry, fixtureGeometryHandle](geometryTraits())
	assets.RegisterManagerTraits(traits, mt)
	assert.Panics(t, func() {
		assets.RegisterManagerTraits(traits, mt)
	})
}
