// pkg/testutil/gameroot.go
// DEPENDENCIES: afero, pkg/paths
// PURPOSE: Create isolated game roots populated with versions and assets

package testutil

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/arthur-debert/gamerepo/pkg/filesystem"
	"github.com/arthur-debert/gamerepo/pkg/internal/hashutil"
	"github.com/arthur-debert/gamerepo/pkg/manifest"
	"github.com/arthur-debert/gamerepo/pkg/paths"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// GameRoot is a game directory prepared for one test.
type GameRoot struct {
	Root  string
	FS    afero.Fs
	Paths paths.Paths
	Type  EnvType

	t *testing.T
}

// AssetObject is what WriteIndex records for one asset name.
type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// NewGameRoot creates an empty game root.
func NewGameRoot(t *testing.T, envType EnvType, opts ...paths.Option) *GameRoot {
	t.Helper()

	g := &GameRoot{t: t, Type: envType}
	switch envType {
	case EnvMemoryOnly:
		g.Root = "/virtual/game"
		g.FS = filesystem.NewMemory()
	case EnvIsolated:
		g.Root = filepath.Join(t.TempDir(), "game")
		g.FS = filesystem.NewOS()
	}

	p, err := paths.New(g.Root, opts...)
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	g.Paths = p
	g.Root = p.Root()
	g.mkdir(p.VersionsDir())
	return g
}

func (g *GameRoot) mkdir(dir string) {
	g.t.Helper()
	if err := g.FS.MkdirAll(dir, 0755); err != nil {
		g.t.Fatalf("Failed to create %s: %v", dir, err)
	}
}

// Path joins slash-separated elements below the root.
func (g *GameRoot) Path(rel string) string {
	return filepath.Join(g.Root, filepath.FromSlash(rel))
}

// WriteFile writes data at an absolute path, creating parents.
func (g *GameRoot) WriteFile(path string, data []byte) {
	g.t.Helper()
	g.mkdir(filepath.Dir(path))
	if err := afero.WriteFile(g.FS, path, data, 0644); err != nil {
		g.t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// ReadFile reads an absolute path.
func (g *GameRoot) ReadFile(path string) []byte {
	g.t.Helper()
	data, err := afero.ReadFile(g.FS, path)
	if err != nil {
		g.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return data
}

// Exists reports whether path exists.
func (g *GameRoot) Exists(path string) bool {
	ok, _ := afero.Exists(g.FS, path)
	return ok
}

// WriteManifest writes m as versions/<dir>/<dir>.json.
func (g *GameRoot) WriteManifest(dir string, m *manifest.Manifest) {
	g.t.Helper()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		g.t.Fatalf("Failed to encode manifest %s: %v", dir, err)
	}
	g.WriteFile(g.Paths.VersionManifest(dir), data)
}

// WriteRawManifest writes content verbatim as the manifest of dir.
func (g *GameRoot) WriteRawManifest(dir, content string) {
	g.t.Helper()
	g.WriteFile(g.Paths.VersionManifest(dir), []byte(content))
}

// WriteVersion writes a minimal manifest for id inheriting from parent
// (empty for none) with the given library coordinates.
func (g *GameRoot) WriteVersion(id, parent string, libraries ...string) *manifest.Manifest {
	g.t.Helper()
	m := &manifest.Manifest{ID: id, ParentID: parent, Type: "release"}
	for _, name := range libraries {
		lib, err := manifest.NewLibrary(name)
		if err != nil {
			g.t.Fatalf("Bad library %q: %v", name, err)
		}
		m.Libraries = append(m.Libraries, lib)
	}
	g.WriteManifest(id, m)
	return m
}

// WriteJar writes a placeholder client jar for id.
func (g *GameRoot) WriteJar(id string) string {
	g.t.Helper()
	path := g.Paths.VersionJar(id)
	g.WriteFile(path, []byte("PK jar "+id))
	return path
}

// WriteObject stores data in the object store and returns its record.
func (g *GameRoot) WriteObject(data []byte) AssetObject {
	g.t.Helper()
	obj := AssetObject{Hash: hashutil.SHA1(data), Size: int64(len(data))}
	g.WriteFile(g.Paths.ObjectPath(obj.Hash), data)
	return obj
}

// IndexOptions are the flags of an asset index document.
type IndexOptions struct {
	Virtual        bool
	MapToResources bool
	// Skip lists names whose objects are recorded but not stored.
	Skip []string
}

// WriteIndex stores every asset's content and writes the index for assetID.
func (g *GameRoot) WriteIndex(assetID string, contents map[string]string, opts IndexOptions) map[string]AssetObject {
	g.t.Helper()
	skip := make(map[string]bool, len(opts.Skip))
	for _, name := range opts.Skip {
		skip[name] = true
	}

	objects := make(map[string]AssetObject, len(contents))
	for name, content := range contents {
		if skip[name] {
			objects[name] = AssetObject{Hash: hashutil.SHA1([]byte(content)), Size: int64(len(content))}
			continue
		}
		objects[name] = g.WriteObject([]byte(content))
	}

	doc := map[string]interface{}{"objects": objects}
	if opts.Virtual {
		doc["virtual"] = true
	}
	if opts.MapToResources {
		doc["map_to_resources"] = true
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		g.t.Fatalf("Failed to encode index %s: %v", assetID, err)
	}
	g.WriteFile(g.Paths.IndexFile(assetID), data)
	return objects
}

// WriteLibrary writes a placeholder file where lib lives for platform.
func (g *GameRoot) WriteLibrary(lib manifest.Library, platform manifest.Platform) string {
	g.t.Helper()
	path, ok := g.Paths.LibraryFile(lib, platform)
	if !ok {
		g.t.Fatalf("Library %s does not apply to %+v", lib.Name, platform)
	}
	g.WriteFile(path, []byte("PK "+lib.Name))
	return path
}

// WriteLoggingConfig writes a logging configuration file named fileID.
func (g *GameRoot) WriteLoggingConfig(fileID, content string) string {
	g.t.Helper()
	path := g.Paths.LoggingConfigFile(fileID)
	g.WriteFile(path, []byte(content))
	return path
}
