package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/manifest"
)

// Environment variable names
const (
	// EnvRoot overrides the default game root
	EnvRoot = "GAMEREPO_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Directory and file names of the on-disk layout. Other tools read and
// write the same tree, so none of these are configurable.
const (
	VersionsDirName   = "versions"
	LibrariesDirName  = "libraries"
	AssetsDirName     = "assets"
	IndexesDirName    = "indexes"
	ObjectsDirName    = "objects"
	VirtualDirName    = "virtual"
	LogConfigsDirName = "log_configs"
	ResourcesDirName  = "resources"

	ManifestExt   = ".json"
	JarExt        = ".jar"
	NativesSuffix = "-natives"
)

// RunDirectoryMode selects where a version is launched from.
type RunDirectoryMode string

const (
	// RunShared launches every version from the game root.
	RunShared RunDirectoryMode = "shared"
	// RunIsolated launches each version from its own version root.
	RunIsolated RunDirectoryMode = "isolated"
)

// ParseRunDirectoryMode validates a configured mode.
func ParseRunDirectoryMode(s string) (RunDirectoryMode, error) {
	switch m := RunDirectoryMode(s); m {
	case RunShared, RunIsolated:
		return m, nil
	case "":
		return RunShared, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown run directory mode %q", s).
			WithDetail("allowed", []string{string(RunShared), string(RunIsolated)})
	}
}

// Paths maps identifiers to locations inside one game root.
type Paths interface {
	Root() string

	VersionsDir() string
	VersionRoot(id string) string
	VersionManifest(id string) string
	VersionJar(id string) string
	RunDirectory(id string) string
	NativeDirectory(id string) string

	LibrariesDir() string
	LibraryFile(lib manifest.Library, platform manifest.Platform) (string, bool)

	AssetsDir() string
	IndexesDir() string
	IndexFile(assetID string) string
	ObjectsDir() string
	ObjectPath(hash string) string
	VirtualAssetDir(assetID string) string
	ResourcesDir(id string) string
	LoggingConfigFile(fileID string) string
}

type paths struct {
	root    string
	runMode RunDirectoryMode
}

// Option configures New.
type Option func(*paths)

// WithRunDirectoryMode sets how RunDirectory is computed.
func WithRunDirectoryMode(mode RunDirectoryMode) Option {
	return func(p *paths) {
		p.runMode = mode
	}
}

// New creates a Paths rooted at root. An empty root falls back to
// GAMEREPO_ROOT and then to the platform default.
func New(root string, opts ...Option) (Paths, error) {
	p := &paths{runMode: RunShared}
	for _, opt := range opts {
		opt(p)
	}
	if _, err := ParseRunDirectoryMode(string(p.runMode)); err != nil {
		return nil, err
	}

	if root == "" {
		root = DefaultRoot()
	}
	absRoot, err := filepath.Abs(expandHome(root))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to get absolute path for game root")
	}
	p.root = absRoot
	return p, nil
}

// DefaultRoot returns GAMEREPO_ROOT when set, otherwise the directory the
// official launcher uses on this platform.
func DefaultRoot() string {
	if root := os.Getenv(EnvRoot); root != "" {
		return expandHome(root)
	}
	return platformRoot(runtime.GOOS)
}

func platformRoot(goos string) string {
	switch goos {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, ".minecraft")
		}
		return filepath.Join(xdg.Home, ".minecraft")
	case "darwin":
		return filepath.Join(xdg.Home, "Library", "Application Support", "minecraft")
	default:
		return filepath.Join(xdg.Home, ".minecraft")
	}
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	// ~someone is not ours to expand
	return path
}

func (p *paths) Root() string {
	return p.root
}

func (p *paths) VersionsDir() string {
	return filepath.Join(p.root, VersionsDirName)
}

func (p *paths) VersionRoot(id string) string {
	return filepath.Join(p.VersionsDir(), id)
}

func (p *paths) VersionManifest(id string) string {
	return filepath.Join(p.VersionRoot(id), id+ManifestExt)
}

// VersionJar returns the jar inside id's own directory. When the jar comes
// from an ancestor, the caller passes the ancestor's id.
func (p *paths) VersionJar(id string) string {
	return filepath.Join(p.VersionRoot(id), id+JarExt)
}

func (p *paths) RunDirectory(id string) string {
	if p.runMode == RunIsolated {
		return p.VersionRoot(id)
	}
	return p.root
}

// NativeDirectory is stable for a given id. Launch scripts embed it, so it
// is never a temporary directory.
func (p *paths) NativeDirectory(id string) string {
	return filepath.Join(p.VersionRoot(id), id+NativesSuffix)
}

func (p *paths) LibrariesDir() string {
	return filepath.Join(p.root, LibrariesDirName)
}

// LibraryFile returns where lib lives for platform. It reports false when
// the library's rules exclude the platform or, for native libraries, when
// no natives archive is declared for it.
func (p *paths) LibraryFile(lib manifest.Library, platform manifest.Platform) (string, bool) {
	classifier := ""
	if lib.IsNative() {
		c, ok := lib.NativeClassifier(platform)
		if !ok {
			return "", false
		}
		classifier = c
	} else if !lib.Applies(platform) {
		return "", false
	}
	rel := lib.Coordinate.RelativePath(classifier)
	return filepath.Join(p.LibrariesDir(), filepath.FromSlash(rel)), true
}

func (p *paths) AssetsDir() string {
	return filepath.Join(p.root, AssetsDirName)
}

func (p *paths) IndexesDir() string {
	return filepath.Join(p.AssetsDir(), IndexesDirName)
}

func (p *paths) IndexFile(assetID string) string {
	return filepath.Join(p.IndexesDir(), assetID+ManifestExt)
}

func (p *paths) ObjectsDir() string {
	return filepath.Join(p.AssetsDir(), ObjectsDirName)
}

// ObjectPath returns objects/<hash[0:2]>/<hash>.
func (p *paths) ObjectPath(hash string) string {
	prefix := hash
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return filepath.Join(p.ObjectsDir(), prefix, hash)
}

func (p *paths) VirtualAssetDir(assetID string) string {
	return filepath.Join(p.AssetsDir(), VirtualDirName, assetID)
}

// ResourcesDir is the name-addressed asset mirror that pre-1.6 versions
// read from their run directory.
func (p *paths) ResourcesDir(id string) string {
	return filepath.Join(p.RunDirectory(id), ResourcesDirName)
}

func (p *paths) LoggingConfigFile(fileID string) string {
	return filepath.Join(p.AssetsDir(), LogConfigsDirName, fileID)
}
