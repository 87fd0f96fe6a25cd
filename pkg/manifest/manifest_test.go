package manifest_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/manifest"
)

const vanillaManifest = `{
  // hand edited
  "id": "1.12.2",
  "type": "release",
  "mainClass": "net.minecraft.client.main.Main",
  "minecraftArguments": "--username ${auth_player_name}",
  "assets": "1.12",
  "assetIndex": {"id": "1.12", "sha1": "1584b57c1b0e5ea5dd9ed1c2c4d2a79b0dc2e7f1", "size": 170285, "totalSize": 149997340, "url": "https://example.invalid/1.12.json"},
  "libraries": [
    {"name": "com.mojang:patchy:1.1"},
    {"name": "org.lwjgl.lwjgl:lwjgl-platform:2.9.4-nightly-20150209",
     "natives": {"linux": "natives-linux", "windows": "natives-windows-${arch}", "osx": "natives-osx"},
     "extract": {"exclude": ["META-INF/"]}},
  ],
  "logging": {"client": {"argument": "-Dlog4j.configurationFile=${path}", "type": "log4j2-xml",
    "file": {"id": "client-1.12.xml", "sha1": "ef4f57b922df243d0cef096efe808c72db042149", "size": 877}}},
  "downloads": {"client": {"sha1": "0f275bc1547d01fa5f56ba34bdc87d981ee12daf", "size": 10180113}}
}`

func TestParse(t *testing.T) {
	m, err := manifest.Parse([]byte(vanillaManifest))
	require.NoError(t, err)

	assert.Equal(t, "1.12.2", m.ID)
	assert.False(t, m.HasParent())
	assert.Equal(t, "1.12", m.AssetID())
	require.Len(t, m.Libraries, 2)
	assert.Equal(t, "com.mojang", m.Libraries[0].Coordinate.Group)
	assert.Equal(t, "patchy", m.Libraries[0].Coordinate.Artifact)
	assert.True(t, m.Libraries[1].IsNative())

	logging, ok := m.ClientLogging()
	require.True(t, ok)
	assert.Equal(t, "client-1.12.xml", logging.File.ID)
	assert.Equal(t, int64(10180113), m.Downloads["client"].Size)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed json", `{"id": "x"`},
		{"missing id", `{"type": "release"}`},
		{"empty id", `{"id": ""}`},
		{"id wrong type", `{"id": 12}`},
		{"empty parent", `{"id": "forge", "inheritsFrom": ""}`},
		{"self parent", `{"id": "forge", "inheritsFrom": "forge"}`},
		{"bad coordinate", `{"id": "x", "libraries": [{"name": "only:two"}]}`},
		{"library without name", `{"id": "x", "libraries": [{"url": "u"}]}`},
		{"bad rule action", `{"id": "x", "libraries": [{"name": "a:b:c", "rules": [{"action": "maybe"}]}]}`},
		{"asset index without id", `{"id": "x", "assetIndex": {"sha1": "aa"}}`},
		{"not an object", `["id"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := manifest.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, errors.IsParse(err), "want PARSE, got %v", err)
		})
	}
}

func TestReadFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	t.Run("missing file is NOT_FOUND", func(t *testing.T) {
		_, err := manifest.ReadFile(fs, "/versions/x/x.json")
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("malformed file carries path", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/versions/bad/bad.json", []byte("{"), 0644))
		_, err := manifest.ReadFile(fs, "/versions/bad/bad.json")
		require.True(t, errors.IsParse(err))
		assert.Equal(t, "/versions/bad/bad.json", errors.GetErrorDetails(err)["path"])
	})

	t.Run("valid file", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/versions/1.12.2/1.12.2.json", []byte(vanillaManifest), 0644))
		m, err := manifest.ReadFile(fs, "/versions/1.12.2/1.12.2.json")
		require.NoError(t, err)
		assert.Equal(t, "1.12.2", m.ID)
	})
}

func TestClone(t *testing.T) {
	m, err := manifest.Parse([]byte(vanillaManifest))
	require.NoError(t, err)

	c := m.Clone()
	assert.Equal(t, m, c)

	c.Libraries[0].Name = "changed"
	c.AssetIndex.ID = "changed"
	c.Libraries[1].Natives["linux"] = "changed"
	assert.Equal(t, "com.mojang:patchy:1.1", m.Libraries[0].Name)
	assert.Equal(t, "1.12", m.AssetIndex.ID)
	assert.Equal(t, "natives-linux", m.Libraries[1].Natives["linux"])
}

func TestRewriteID(t *testing.T) {
	out, err := manifest.RewriteID([]byte(`{"id": "old", "custom": {"keep": true}}`), "new")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "new", doc["id"])
	assert.Equal(t, map[string]interface{}{"keep": true}, doc["custom"])

	_, err = manifest.RewriteID([]byte(`{`), "new")
	assert.True(t, errors.IsParse(err))
}

func TestRewriteIDKeepsLayout(t *testing.T) {
	doc := `{
  // launcher profile
  "type": "release",
  "zeta": 1, /* unsorted on purpose */
  "id" :  "1.7.10",
  "alpha": {"nested": {"id": "inner"}},
  "mainClass": "net.minecraft.client.main.Main",
}
`
	out, err := manifest.RewriteID([]byte(doc), "1.7.10-renamed")
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(doc, `"1.7.10"`, `"1.7.10-renamed"`, 1), string(out))

	_, err = manifest.RewriteID([]byte(`{"type": "release"}`), "x")
	assert.True(t, errors.IsParse(err))

	_, err = manifest.RewriteID([]byte(`{"id": 7}`), "x")
	assert.True(t, errors.IsParse(err))

	_, err = manifest.RewriteID([]byte(`["id"]`), "x")
	assert.True(t, errors.IsParse(err))
}
