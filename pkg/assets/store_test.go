// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory game root
// PURPOSE: Test index loading, object lookup and verification

package assets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gamerepo/pkg/assets"
	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/manifest"
	"github.com/arthur-debert/gamerepo/pkg/testutil"
)

func TestLoadIndex(t *testing.T) {
	g := testutil.NewGameRoot(t, testutil.EnvMemoryOnly)
	store := assets.NewStore(g.FS, g.Paths)

	t.Run("missing index is NOT_FOUND", func(t *testing.T) {
		_, err := store.LoadIndex("1.12")
		require.True(t, errors.IsNotFound(err))
		assert.Equal(t, g.Paths.IndexFile("1.12"), errors.GetErrorDetails(err)["path"])
	})

	t.Run("malformed index is PARSE", func(t *testing.T) {
		g.WriteFile(g.Paths.IndexFile("broken"), []byte("{"))
		_, err := store.LoadIndex("broken")
		assert.True(t, errors.IsParse(err))
	})

	t.Run("cached until invalidated", func(t *testing.T) {
		g.WriteIndex("1.12", map[string]string{"a.txt": "hello"}, testutil.IndexOptions{})
		first, err := store.Index("1.12")
		require.NoError(t, err)
		assert.Len(t, first.Objects, 1)

		g.WriteIndex("1.12", map[string]string{"a.txt": "hello", "b.txt": "world"}, testutil.IndexOptions{})
		cached, err := store.Index("1.12")
		require.NoError(t, err)
		assert.Same(t, first, cached)

		store.InvalidateIndexes()
		fresh, err := store.Index("1.12")
		require.NoError(t, err)
		assert.Len(t, fresh.Objects, 2)
	})
}

func TestObjectFile(t *testing.T) {
	g := testutil.NewGameRoot(t, testutil.EnvMemoryOnly)
	objects := g.WriteIndex("1.12", map[string]string{
		"a.txt":    "hello",
		"gone.ogg": "never stored",
	}, testutil.IndexOptions{Skip: []string{"gone.ogg"}})
	store := assets.NewStore(g.FS, g.Paths)

	file, err := store.ObjectFile("1.12", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, g.Paths.ObjectPath(objects["a.txt"].Hash), file)
	assert.Equal(t, store.ObjectPath(assets.Object(objects["a.txt"])), file)

	_, err = store.ObjectFile("1.12", "nope.txt")
	assert.True(t, errors.IsNotFound(err))

	_, err = store.ObjectFile("1.12", "gone.ogg")
	assert.True(t, errors.IsNotFound(err), "absent object needs a download")

	_, err = store.ObjectFile("other", "a.txt")
	assert.True(t, errors.IsNotFound(err))
}

func TestVerify(t *testing.T) {
	g := testutil.NewGameRoot(t, testutil.EnvMemoryOnly)
	store := assets.NewStore(g.FS, g.Paths)
	good := assets.Object(g.WriteObject([]byte("hello")))

	ok, err := store.Verify(good)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, store.Check(good))

	t.Run("size mismatch", func(t *testing.T) {
		wrongSize := good
		wrongSize.Size = 6
		ok, err := store.Verify(wrongSize)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.True(t, errors.IsCorruption(store.Check(wrongSize)))
	})

	t.Run("content mismatch", func(t *testing.T) {
		g.WriteFile(store.ObjectPath(good), []byte("jello"))
		ok, err := store.Verify(good)
		require.NoError(t, err)
		assert.False(t, ok)

		err = store.Check(good)
		require.True(t, errors.IsCorruption(err))
		assert.Equal(t, good.Hash, errors.GetErrorDetails(err)["expectedHash"])
	})

	t.Run("missing object", func(t *testing.T) {
		missing := assets.Object{Hash: hashA, Size: 5}
		_, err := store.Verify(missing)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestLoggingObject(t *testing.T) {
	g := testutil.NewGameRoot(t, testutil.EnvMemoryOnly)
	info := manifest.LoggingInfo{File: manifest.LoggingFileInfo{ID: "client-1.12.xml"}}

	store := assets.NewStore(g.FS, g.Paths)
	_, err := store.LoggingObject(info)
	assert.True(t, errors.IsNotFound(err))

	path := g.WriteLoggingConfig("client-1.12.xml", "<Configuration/>")
	file, err := store.LoggingObject(info)
	require.NoError(t, err)
	assert.Equal(t, path, file)

	_, err = store.LoggingObject(manifest.LoggingInfo{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	t.Run("strict mode verifies recorded hash", func(t *testing.T) {
		strict := assets.NewStore(g.FS, g.Paths, assets.WithStrictVerify(true))
		info.File.SHA1 = hashA
		info.File.Size = 5
		_, err := strict.LoggingObject(info)
		assert.True(t, errors.IsCorruption(err))
	})
}
