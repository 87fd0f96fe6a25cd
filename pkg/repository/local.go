package repository

import (
	"context"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/arthur-debert/gamerepo/pkg/assets"
	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/logging"
	"github.com/arthur-debert/gamerepo/pkg/manifest"
	"github.com/arthur-debert/gamerepo/pkg/paths"
	"github.com/arthur-debert/gamerepo/pkg/resolver"
)

// DefaultScanWorkers bounds how many manifests are loaded concurrently.
const DefaultScanWorkers = 8

// Local is the mutable repository over a game root on a file system.
type Local struct {
	fs       afero.Fs
	paths    paths.Paths
	store    *assets.Store
	platform manifest.Platform
	workers  int
	maxDepth int
	logger   zerolog.Logger

	snap  atomic.Pointer[snapshot]
	state atomic.Int32

	refreshes singleflight.Group
	// writeMu serializes scans and renames. Readers never take it.
	writeMu sync.Mutex
}

var _ Repository = (*Local)(nil)

// Option configures a Local repository.
type Option func(*Local)

// WithScanWorkers bounds concurrent manifest loading. Values below 1 are
// ignored.
func WithScanWorkers(n int) Option {
	return func(r *Local) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithMaxDepth bounds inheritance chains.
func WithMaxDepth(n int) Option {
	return func(r *Local) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithPlatform sets the platform libraries are selected for. It defaults to
// the running platform.
func WithPlatform(p manifest.Platform) Option {
	return func(r *Local) {
		r.platform = p
	}
}

// WithAssetStore supplies a configured asset store.
func WithAssetStore(s *assets.Store) Option {
	return func(r *Local) {
		r.store = s
	}
}

// NewLocal creates a repository over fsys laid out by p. The catalog is
// empty until the first Refresh.
func NewLocal(fsys afero.Fs, p paths.Paths, opts ...Option) *Local {
	r := &Local{
		fs:       fsys,
		paths:    p,
		platform: manifest.CurrentPlatform(),
		workers:  DefaultScanWorkers,
		maxDepth: resolver.DefaultMaxDepth,
		logger:   logging.GetLogger("repository"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.store == nil {
		r.store = assets.NewStore(fsys, p)
	}
	r.snap.Store(emptySnapshot())
	return r
}

// Paths returns the layout the repository reads.
func (r *Local) Paths() paths.Paths {
	return r.paths
}

// Store returns the asset store the repository delegates to.
func (r *Local) Store() *assets.Store {
	return r.store
}

// Platform returns the platform libraries are selected for.
func (r *Local) Platform() manifest.Platform {
	return r.platform
}

func (r *Local) current() *snapshot {
	return r.snap.Load()
}

// State implements Repository.
func (r *Local) State() State {
	return State(r.state.Load())
}

// Refresh scans versions/ and publishes a new catalog. Calls made while a
// scan is running wait for it and receive its result. The scan runs under
// the context of the call that started it.
func (r *Local) Refresh(ctx context.Context) (*ScanResult, error) {
	v, err, shared := r.refreshes.Do("refresh", func() (interface{}, error) {
		return r.refresh(ctx)
	})
	if shared {
		r.logger.Debug().Msg("Joined running refresh")
	}
	if err != nil {
		return nil, err
	}
	return v.(*ScanResult), nil
}

func (r *Local) refresh(ctx context.Context) (*ScanResult, error) {
	done := logging.LogOperationStart(r.logger, "refresh")
	defer done()

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	previous := r.State()
	r.state.Store(int32(Scanning))

	next, err := r.scan(ctx)
	if err != nil {
		r.state.Store(int32(previous))
		return nil, err
	}

	r.snap.Store(next)
	r.store.InvalidateIndexes()
	r.state.Store(int32(Ready))

	r.logger.Info().
		Int("versions", len(next.order)).
		Int("warnings", len(next.warnings)).
		Msg("Version catalog refreshed")
	return &ScanResult{Versions: len(next.order), Warnings: next.warnings}, nil
}

type scanned struct {
	m       *manifest.Manifest
	warning *ScanWarning
}

func (r *Local) scan(ctx context.Context) (*snapshot, error) {
	root := r.paths.VersionsDir()
	entries, err := afero.ReadDir(r.fs, root)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Debug().Str("path", root).Msg("No versions directory, catalog is empty")
			return emptySnapshot(), nil
		}
		return nil, errors.Wrap(err, errors.ErrIO, "cannot read versions directory").
			WithDetail("path", root)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}

	results := make([]scanned, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, dir := range dirs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.loadVersion(dir)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	order := make([]string, 0, len(dirs))
	versions := make(map[string]*manifest.Manifest, len(dirs))
	var warnings []ScanWarning
	for _, res := range results {
		if res.warning != nil {
			warnings = append(warnings, *res.warning)
		}
		if res.m != nil {
			order = append(order, res.m.ID)
			versions[res.m.ID] = res.m
		}
	}
	return newSnapshot(order, versions, warnings), nil
}

// loadVersion reads versions/<dir>/<dir>.json. The directory name is the
// version id; a manifest declaring another id is accepted under the
// directory's name with a warning.
func (r *Local) loadVersion(dir string) scanned {
	path := r.paths.VersionManifest(dir)
	skip := func(err error) scanned {
		r.logger.Warn().
			Err(err).
			Str("version", dir).
			Str("path", path).
			Msg("Failed to load version, skipping")
		return scanned{warning: &ScanWarning{VersionID: dir, Path: path, Err: err, Skipped: true}}
	}

	if err := paths.ValidateVersionID(dir); err != nil {
		return skip(err)
	}
	m, err := manifest.ReadFile(r.fs, path)
	if err != nil {
		return skip(err)
	}

	if m.ID == dir {
		r.logger.Trace().Object("manifest", m).Msg("Loaded version")
		return scanned{m: m}
	}

	declared := m.ID
	m.ID = dir
	if err := m.Validate(); err != nil {
		return skip(err)
	}
	mismatch := errors.Newf(errors.ErrInvalidInput,
		"manifest declares id %q but lives in directory %q", declared, dir).
		WithDetail("declared", declared)
	r.logger.Warn().
		Str("version", dir).
		Str("declared", declared).
		Msg("Manifest id does not match its directory, using the directory name")
	return scanned{m: m, warning: &ScanWarning{VersionID: dir, Path: path, Err: mismatch}}
}

// HasVersion implements Repository.
func (r *Local) HasVersion(id string) bool {
	_, ok := r.current().Manifest(id)
	return ok
}

// Version returns the raw manifest of id, or NOT_FOUND.
func (r *Local) Version(id string) (*manifest.Manifest, error) {
	m, ok := r.current().Manifest(id)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "version %q is not installed", id).
			WithDetail("id", id)
	}
	return m, nil
}

// VersionCount implements Repository.
func (r *Local) VersionCount() int {
	return len(r.current().order)
}

// Versions returns the catalog in scan order. The manifests are shared and
// must not be modified.
func (r *Local) Versions() []*manifest.Manifest {
	return r.current().list()
}

// Warnings returns the warnings of the last completed scan.
func (r *Local) Warnings() []ScanWarning {
	return append([]ScanWarning(nil), r.current().warnings...)
}

// Resolve returns the effective manifest of id. Results are cached until
// the catalog changes; they are shared and must not be modified.
func (r *Local) Resolve(id string) (*resolver.Effective, error) {
	return r.current().resolve(id, resolver.WithMaxDepth(r.maxDepth))
}
