package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gamerepo/pkg/assets"
	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/manifest"
	"github.com/arthur-debert/gamerepo/pkg/repository"
	"github.com/arthur-debert/gamerepo/pkg/testutil"
)

func auditFixture(t *testing.T) *testutil.GameRoot {
	t.Helper()
	g := testutil.NewGameRoot(t, testutil.EnvMemoryOnly)

	patchy, err := manifest.NewLibrary("com.mojang:patchy:1.1")
	require.NoError(t, err)
	asm, err := manifest.NewLibrary("org.ow2.asm:asm-all:5.0.3")
	require.NoError(t, err)
	windowsOnly, err := manifest.NewLibrary("com.mojang:win-helper:1.0")
	require.NoError(t, err)
	windowsOnly.Rules = []manifest.Rule{{Action: manifest.ActionAllow, OS: &manifest.OSRule{Name: manifest.OSWindows}}}

	g.WriteManifest("1.12.2", &manifest.Manifest{
		ID:         "1.12.2",
		AssetIndex: &manifest.AssetIndexInfo{ID: "1.12"},
		Libraries:  []manifest.Library{patchy, asm, windowsOnly},
		Logging: map[string]manifest.LoggingInfo{
			"client": {File: manifest.LoggingFileInfo{ID: "client-1.12.xml"}},
		},
	})
	g.WriteVersion("1.12.2-forge", "1.12.2")
	g.WriteJar("1.12.2")
	g.WriteLibrary(patchy, linux64)
	g.WriteIndex("1.12", map[string]string{
		"a.txt": "present",
		"b.txt": "absent",
	}, testutil.IndexOptions{Skip: []string{"b.txt"}})
	return g
}

func TestAudit(t *testing.T) {
	g := auditFixture(t)
	repo := readyRepo(t, g, repository.WithPlatform(linux64))

	report, err := repo.Audit(context.Background(), "1.12.2-forge")
	require.NoError(t, err)

	assert.False(t, report.OK())
	assert.Equal(t, []string{"1.12.2-forge", "1.12.2"}, report.Chain)
	assert.Equal(t, g.Paths.VersionJar("1.12.2"), report.Jar)
	assert.False(t, report.JarMissing)
	assert.Equal(t, 2, report.Libraries, "windows-only library is not needed")
	assert.Len(t, report.MissingLibraries, 1)
	assert.Contains(t, report.MissingLibraries[0], "asm-all-5.0.3.jar")
	assert.Equal(t, "1.12", report.AssetID)
	assert.False(t, report.IndexMissing)
	assert.Equal(t, 2, report.Objects)
	assert.Equal(t, []string{"b.txt"}, report.MissingObjects)
	assert.True(t, report.LoggingConfigMissing)

	t.Run("complete after files appear", func(t *testing.T) {
		asm, err := manifest.NewLibrary("org.ow2.asm:asm-all:5.0.3")
		require.NoError(t, err)
		g.WriteLibrary(asm, linux64)
		g.WriteObject([]byte("absent"))
		g.WriteLoggingConfig("client-1.12.xml", clientLogConfig)

		report, err := repo.Audit(context.Background(), "1.12.2-forge")
		require.NoError(t, err)
		assert.True(t, report.OK(), "%+v", report)
	})
}

func TestAuditStrict(t *testing.T) {
	g := auditFixture(t)
	g.WriteObject([]byte("absent"))
	store := assets.NewStore(g.FS, g.Paths, assets.WithStrictVerify(true))
	repo := readyRepo(t, g, repository.WithPlatform(linux64), repository.WithAssetStore(store))

	ix, err := store.Index("1.12")
	require.NoError(t, err)
	obj, _ := ix.Object("a.txt")
	g.WriteFile(store.ObjectPath(obj), []byte("PRESENT"))

	report, err := repo.Audit(context.Background(), "1.12.2")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, report.CorruptedObjects)
	assert.Empty(t, report.MissingObjects)
}

func TestAuditMissingIndexAndInvalidLogging(t *testing.T) {
	g := testutil.NewGameRoot(t, testutil.EnvMemoryOnly)
	g.WriteManifest("old", &manifest.Manifest{
		ID:     "old",
		Assets: "legacy",
		Logging: map[string]manifest.LoggingInfo{
			"client": {File: manifest.LoggingFileInfo{ID: "broken.xml"}},
		},
	})
	g.WriteJar("old")
	g.WriteLoggingConfig("broken.xml", "not xml at all <")
	repo := readyRepo(t, g)

	report, err := repo.Audit(context.Background(), "old")
	require.NoError(t, err)
	assert.True(t, report.IndexMissing)
	assert.Error(t, report.LoggingConfigInvalid)
	assert.False(t, report.OK())

	_, err = repo.Audit(context.Background(), "unknown")
	assert.True(t, errors.IsNotFound(err))
}

const clientLogConfig = `<?xml version="1.0" encoding="UTF-8"?>
<Configuration status="WARN">
    <Appenders>
        <Console name="SysOut" target="SYSTEM_OUT"/>
    </Appenders>
    <Loggers>
        <Root level="info">
            <AppenderRef ref="SysOut"/>
        </Root>
    </Loggers>
</Configuration>`
