// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/torch/assets"
	"cogentcore.org/torch/datastorage"
	"cogentcore.org/torch/pathlet"
)

func newFixtureManager() *assets.AssetManager {
	backing := datastorage.NewMemoryStorage()
	storage := assets.NewAssetStorage(backing)
	registry := newFixtureRegistry()
	return assets.NewAssetManager(registry, storage)
}

func TestGetOrCreateAssetIsIdempotentByPath(t *testing.T) {
	mgr := newFixtureManager()
	path := pathlet.MustNew("meshes/plane.geo")
	require.Nil(t, assets.Store(mgr.Storage(), path, geometryTraits(), fixtureGeometry{Value: "plane"}))

	first, err := assets.GetOrCreateAsset[fixtureGeometry, fixtureGeometryHandle](mgr, geometryTraits(), path)
	require.NoError(t, err)

	second, err := assets.GetOrCreateAsset[fixtureGeometry, fixtureGeometryHandle](mgr, geometryTraits(), path)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, 1, mgr.Count())

	assets.DestroyManagedAsset[fixtureGeometry, fixtureGeometryHandle](mgr, first)
	assert.Equal(t, 0, mgr.Count())

	third, err := assets.GetOrCreateAsset[fixtureGeometry, fixtureGeometryHandle](mgr, geometryTraits(), path)
	require.NoError(t, err)
	assert.False(t, first.Equal(third))
	assert.NotEqual(t, first.AssetID(), third.AssetID())
}

func TestGetOrCreateAssetPanicsOnTypeMismatch(t *testing.T) {
	mgr := newFixtureManager()
	path := pathlet.MustNew("shared.asset")
	require.Nil(t, assets.Store(mgr.Storage(), path, geometryTraits(), fixtureGeometry{Value: "plane"}))

	_, err := assets.GetOrCreateAsset[fixtureGeometry, fixtureGeometryHandle](mgr, geometryTraits(), path)
	require.NoError(t, err)

	assert.Panics(t, func() {
		_, _ = assets.GetOrCreateAsset[fixtureTexture, fixtureTextureHandle](mgr, textureTraits(), path)
	})
}

func TestDestroyAssetTwicePanics(t *testing.T) {
	mgr := newFixtureManager()
	id, err := assets.CreateInMemoryAsset[fixtureGeometry, fixtureGeometryHandle](mgr, geometryTraits(), "inline", fixtureGeometry{Value: "v"})
	require.NoError(t, err)

	assets.DestroyManagedAsset[fixtureGeometry, fixtureGeometryHandle](mgr, id)
	assert.Panics(t, func() {
		assets.DestroyManagedAsset[fixtureGeometry, fixtureGeometryHandle](mgr, id)
	})
}

func TestDestroyAssetReleasesDeviceHandle(t *testing.T) {
	var destroyedValues []string
	registry := assets.NewAssetRegistry()
	assets.RegisterModule[fixtureGeometry, fixtureGeometryHandle](registry, geometryTraits(), &recordingGeometryModule{destroyedValues: &destroyedValues})
	mgr := assets.NewAssetManager(registry, assets.NewAssetStorage(datastorage.NewMemoryStorage()))

	id, err := assets.CreateInMemoryAsset[fixtureGeometry, fixtureGeometryHandle](mgr, geometryTraits(), "inline", fixtureGeometry{Value: "v"})
	require.NoError(t, err)

	assets.DestroyManagedAsset[fixtureGeometry, fixtureGeometryHandle](mgr, id)
	assert.Equal(t, []string{"v"}, destroyedValues)
	assert.False(t, mgr.Exists(id.AssetID()))
}

func TestMetadataReflectsNameAndType(t *testing.T) {
	mgr := newFixtureManager()
	id, err := assets.CreateInMemoryAsset[fixtureGeometry, fixtureGeometryHandle](mgr, geometryTraits(), "plane", fixtureGeometry{Value: "v"})
	require.NoError(t, err)

	meta := mgr.Metadata(id.AssetID())
	assert.Equal(t, "plane", meta.Name)
	assert.True(t, meta.Type.Equal(geometryTraits().AssetType()))
}

// TestLocalIDIsModuleIssuedNotGlobalCounter guards against LocalID silently
// reusing the manager's global AssetID counter instead of the id the
// owning module actually assigned the handle. It creates a texture first
// so the two counters (module-local vs. manager-global) are certain to
// have diverged before the geometry asset under test is created.
func TestLocalIDIsModuleIssuedNotGlobalCounter(t *testing.T) {
	mgr := newFixtureManager()

	_, err := assets.CreateInMemoryAsset[fixtureTexture, fixtureTextureHandle](mgr, textureTraits(), "tex0", fixtureTexture{Value: "t0"})
	require.NoError(t, err)
	_, err = assets.CreateInMemoryAsset[fixtureTexture, fixtureTextureHandle](mgr, textureTraits(), "tex1", fixtureTexture{Value: "t1"})
	require.NoError(t, err)

	id, err := assets.CreateInMemoryAsset[fixtureGeometry, fixtureGeometryHandle](mgr, geometryTraits(), "plane", fixtureGeometry{Value: "v"})
	require.NoError(t, err)

	// The geometry module has only ever issued one local id (this is its
	// first Create), so its local id is 1 regardless of how many other
	// assets the manager's global AssetID counter has already handed out.
	require.True(t, id.LocalID().IsValid())
	assert.Equal(t, uint32(1), id.LocalID().Index())
	assert.NotEqual(t, uint32(id.AssetID()), id.LocalID().Index())
}

// TestGetOrCreateAssetPreservesModuleLocalID checks the "path already
// bound" branch of GetOrCreateAsset surfaces the same module-issued local
// id as the original creation, not a value derived from the manager's
// AssetID.
func TestGetOrCreateAssetPreservesModuleLocalID(t *testing.T) {
	mgr := newFixtureManager()
	path := pathlet.MustNew("meshes/plane.geo")
	require.Nil(t, assets.Store(mgr.Storage(), path, geometryTraits(), fixtureGeometry{Value: "plane"}))

	first, err := assets.GetOrCreateAsset[fixtureGeometry, fixtureGeometryHandle](mgr, geometryTraits(), path)
	require.NoError(t, err)

	second, err := assets.GetOrCreateAsset[fixtureGeometry, fixtureGeometryHandle](mgr, geometryTraits(), path)
	require.NoError(t, err)

	assert.Equal(t, first.LocalID().Index(), second.LocalID().Index())
}
