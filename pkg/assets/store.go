package assets

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/singleflight"

	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/filesystem"
	"github.com/arthur-debert/gamerepo/pkg/internal/hashutil"
	"github.com/arthur-debert/gamerepo/pkg/logging"
	"github.com/arthur-debert/gamerepo/pkg/manifest"
	"github.com/arthur-debert/gamerepo/pkg/paths"
)

// DefaultMirrorWorkers bounds concurrent file placement while building a
// mirror.
const DefaultMirrorWorkers = 8

// Store reads asset indexes and objects below one game root. It is safe for
// concurrent use.
type Store struct {
	fs       afero.Fs
	paths    paths.Paths
	strict   bool
	linkMode filesystem.LinkMode
	workers  int
	logger   zerolog.Logger

	mu      sync.RWMutex
	indexes map[string]*Index

	mirrors singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithStrictVerify makes mirror checks compare content hashes instead of
// sizes only, and verifies objects before placing them.
func WithStrictVerify(strict bool) Option {
	return func(s *Store) {
		s.strict = strict
	}
}

// WithLinkMode selects how mirror entries are materialized.
func WithLinkMode(mode filesystem.LinkMode) Option {
	return func(s *Store) {
		if mode != "" {
			s.linkMode = mode
		}
	}
}

// WithMirrorWorkers bounds concurrent placement. Values below 1 are ignored.
func WithMirrorWorkers(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewStore creates a store over fsys laid out by p.
func NewStore(fsys afero.Fs, p paths.Paths, opts ...Option) *Store {
	s := &Store{
		fs:       fsys,
		paths:    p,
		linkMode: filesystem.LinkHard,
		workers:  DefaultMirrorWorkers,
		logger:   logging.GetLogger("assets"),
		indexes:  make(map[string]*Index),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Strict reports whether strict verification is enabled.
func (s *Store) Strict() bool {
	return s.strict
}

// AssetDirectory returns the root of the hash-addressed store.
func (s *Store) AssetDirectory() string {
	return s.paths.AssetsDir()
}

// IndexFile returns where the index of assetID lives.
func (s *Store) IndexFile(assetID string) string {
	return s.paths.IndexFile(assetID)
}

// ObjectPath returns the canonical location of obj.
func (s *Store) ObjectPath(obj Object) string {
	return s.paths.ObjectPath(obj.Hash)
}

// LoadIndex reads and parses the index of assetID from disk and refreshes
// the cached copy.
func (s *Store) LoadIndex(assetID string) (*Index, error) {
	file := s.paths.IndexFile(assetID)
	data, err := afero.ReadFile(s.fs, file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "asset index %q is not present", assetID).
				WithDetail("assetId", assetID).
				WithDetail("path", file)
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot read asset index %q", assetID).
			WithDetail("path", file)
	}

	ix, err := ParseIndex(data)
	if err != nil {
		if repoErr, ok := err.(*errors.RepoError); ok {
			return nil, repoErr.WithDetail("assetId", assetID).WithDetail("path", file)
		}
		return nil, err
	}

	s.mu.Lock()
	s.indexes[assetID] = ix
	s.mu.Unlock()

	s.logger.Debug().
		Str("assetId", assetID).
		Int("objects", len(ix.Objects)).
		Bool("virtual", ix.Virtual).
		Bool("mapToResources", ix.MapToResources).
		Msg("Loaded asset index")
	return ix, nil
}

// Index returns the cached index of assetID, loading it on first use.
func (s *Store) Index(assetID string) (*Index, error) {
	s.mu.RLock()
	ix, ok := s.indexes[assetID]
	s.mu.RUnlock()
	if ok {
		return ix, nil
	}
	return s.LoadIndex(assetID)
}

// InvalidateIndexes drops every cached index.
func (s *Store) InvalidateIndexes() {
	s.mu.Lock()
	s.indexes = make(map[string]*Index)
	s.mu.Unlock()
}

// ObjectFile returns the path of the object backing name in assetID's
// index. It fails with NOT_FOUND when the index, the name or the object
// file is absent. Content is not verified.
func (s *Store) ObjectFile(assetID, name string) (string, error) {
	ix, err := s.Index(assetID)
	if err != nil {
		return "", err
	}
	obj, ok := ix.Object(name)
	if !ok {
		return "", errors.Newf(errors.ErrNotFound, "asset %q is not in index %q", name, assetID).
			WithDetail("assetId", assetID).
			WithDetail("name", name)
	}

	file := s.ObjectPath(obj)
	if err := s.requireFile(file); err != nil {
		return "", err.WithDetail("assetId", assetID).WithDetail("name", name)
	}
	return file, nil
}

func (s *Store) requireFile(file string) *errors.RepoError {
	info, err := s.fs.Stat(file)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(err, errors.ErrNotFound, "file is not present").WithDetail("path", file)
		}
		return errors.Wrap(err, errors.ErrIO, "cannot stat file").WithDetail("path", file)
	}
	if !info.Mode().IsRegular() {
		return errors.New(errors.ErrIO, "not a regular file").WithDetail("path", file)
	}
	return nil
}

// Verify hashes the object's file and compares hash and size with the
// recorded values. A missing file is an error, not a false result.
func (s *Store) Verify(obj Object) (bool, error) {
	return s.verifyFile(s.ObjectPath(obj), obj.Hash, obj.Size)
}

// Check is Verify that reports a mismatch as CORRUPTION.
func (s *Store) Check(obj Object) error {
	return s.checkFile(s.ObjectPath(obj), obj.Hash, obj.Size)
}

func (s *Store) verifyFile(file, hash string, size int64) (bool, error) {
	actual, n, err := hashutil.FileSHA1(s.fs, file)
	if err != nil {
		if os.IsNotExist(err) {
			return false, errors.Wrap(err, errors.ErrNotFound, "file is not present").WithDetail("path", file)
		}
		return false, errors.Wrap(err, errors.ErrIO, "cannot read file").WithDetail("path", file)
	}
	return actual == hash && n == size, nil
}

func (s *Store) checkFile(file, hash string, size int64) error {
	actual, n, err := hashutil.FileSHA1(s.fs, file)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(err, errors.ErrNotFound, "file is not present").WithDetail("path", file)
		}
		return errors.Wrap(err, errors.ErrIO, "cannot read file").WithDetail("path", file)
	}
	if actual != hash || n != size {
		return errors.New(errors.ErrCorruption, "file does not match its recorded hash and size").
			WithDetails(map[string]interface{}{
				"path":         file,
				"expectedHash": hash,
				"actualHash":   actual,
				"expectedSize": size,
				"actualSize":   n,
			})
	}
	return nil
}

// LoggingObject returns the logging configuration file described by info.
// In strict mode the file is verified when info records a hash.
func (s *Store) LoggingObject(info manifest.LoggingInfo) (string, error) {
	if info.File.ID == "" {
		return "", errors.New(errors.ErrInvalidInput, "logging info has no file id")
	}
	file := s.paths.LoggingConfigFile(info.File.ID)
	if err := s.requireFile(file); err != nil {
		return "", err.WithDetail("fileId", info.File.ID)
	}
	if s.strict && info.File.SHA1 != "" {
		if err := s.checkFile(file, info.File.SHA1, info.File.Size); err != nil {
			return "", err
		}
	}
	return file, nil
}
