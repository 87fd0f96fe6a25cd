package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/manifest"
	"github.com/arthur-debert/gamerepo/pkg/repository"
	"github.com/arthur-debert/gamerepo/pkg/testutil"
)

var linux64 = manifest.Platform{OS: manifest.OSLinux, Arch: "x86_64"}

func TestVersionJarFollowsInheritance(t *testing.T) {
	g := testutil.NewGameRoot(t, testutil.EnvMemoryOnly)
	g.WriteVersion("1.12.2", "")
	g.WriteVersion("1.12.2-forge", "1.12.2")
	g.WriteManifest("custom", &manifest.Manifest{ID: "custom", ParentID: "1.12.2-forge", Jar: "1.12.2-forge"})
	repo := readyRepo(t, g)

	jar, err := repo.VersionJar("1.12.2-forge")
	require.NoError(t, err)
	assert.Equal(t, g.Paths.VersionJar("1.12.2"), jar)

	jar, err = repo.VersionJar("custom")
	require.NoError(t, err)
	assert.Equal(t, g.Paths.VersionJar("1.12.2-forge"), jar)

	_, err = repo.VersionJar("missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestPathAccessors(t *testing.T) {
	g := testutil.NewGameRoot(t, testutil.EnvMemoryOnly)
	g.WriteVersion("1.12.2", "")
	repo := readyRepo(t, g, repository.WithPlatform(linux64))

	assert.Equal(t, g.Paths.VersionRoot("1.12.2"), repo.VersionRoot("1.12.2"))
	assert.Equal(t, g.Paths.RunDirectory("1.12.2"), repo.RunDirectory("1.12.2"))
	assert.Equal(t, g.Paths.NativeDirectory("1.12.2"), repo.NativeDirectory("1.12.2"))
	assert.Equal(t, repo.NativeDirectory("1.12.2"), repo.NativeDirectory("1.12.2"))
	assert.Equal(t, g.Paths.AssetsDir(), repo.AssetDirectory("1.12.2", "1.12"))
	assert.Equal(t, g.Paths.IndexFile("1.12"), repo.IndexFile("1.12.2", "1.12"))

	native, err := manifest.NewLibrary("org.lwjgl.lwjgl:lwjgl-platform:2.9.4")
	require.NoError(t, err)
	native.Natives = map[string]string{manifest.OSLinux: "natives-linux"}
	file, ok := repo.LibraryFile(native)
	assert.True(t, ok)
	assert.Equal(t, g.Path("libraries/org/lwjgl/lwjgl/lwjgl-platform/2.9.4/lwjgl-platform-2.9.4-natives-linux.jar"), file)

	native.Natives = map[string]string{manifest.OSWindows: "natives-windows"}
	_, ok = repo.LibraryFile(native)
	assert.False(t, ok)
}

func TestAssetAccessors(t *testing.T) {
	g := testutil.NewGameRoot(t, testutil.EnvMemoryOnly)
	objects := g.WriteIndex("legacy", map[string]string{"a.txt": "hello"}, testutil.IndexOptions{Virtual: true})
	g.WriteLoggingConfig("client.xml", "<Configuration/>")
	repo := readyRepo(t, g)

	ix, err := repo.AssetIndex("1.6.4", "legacy")
	require.NoError(t, err)
	assert.True(t, ix.Virtual)

	file, err := repo.AssetObject("1.6.4", "legacy", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, g.Paths.ObjectPath(objects["a.txt"].Hash), file)

	dir, err := repo.ActualAssetDirectory(context.Background(), "1.6.4", "legacy")
	require.NoError(t, err)
	assert.Equal(t, g.Paths.VirtualAssetDir("legacy"), dir)

	logFile, err := repo.LoggingObject("1.6.4", "legacy", manifest.LoggingInfo{File: manifest.LoggingFileInfo{ID: "client.xml"}})
	require.NoError(t, err)
	assert.Equal(t, g.Paths.LoggingConfigFile("client.xml"), logFile)
}
