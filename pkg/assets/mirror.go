package assets

import (
	"context"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/filesystem"
	"github.com/arthur-debert/gamerepo/pkg/logging"
)

// MirrorDirectory returns where the name-addressed mirror for assetID lives
// when launched as versionID, and whether one is needed at all.
func (s *Store) MirrorDirectory(versionID, assetID string) (string, bool, error) {
	ix, err := s.Index(assetID)
	if err != nil {
		return "", false, err
	}
	switch {
	case !ix.NeedsMirror():
		return s.paths.AssetsDir(), false, nil
	case ix.Virtual:
		return s.paths.VirtualAssetDir(assetID), true, nil
	default:
		return s.paths.ResourcesDir(versionID), true, nil
	}
}

// ActualAssetDirectory returns the directory versionID's runtime should read
// assetID's assets from.
//
// For hash-addressed indexes that is the asset directory itself. For
// virtual and map_to_resources indexes a mirror with one file per asset name
// is built lazily: when every name is already present with the recorded
// size the mirror is returned as is. Otherwise each missing or stale entry
// is replaced atomically, so concurrent calls never expose partial files.
// Objects absent from the store are reported together as NOT_FOUND after
// every available entry has been placed.
func (s *Store) ActualAssetDirectory(ctx context.Context, versionID, assetID string) (string, error) {
	dir, needed, err := s.MirrorDirectory(versionID, assetID)
	if err != nil || !needed {
		return dir, err
	}
	ix, err := s.Index(assetID)
	if err != nil {
		return "", err
	}

	// Several asset ids can share one resources directory, so a flight
	// covers one (directory, asset id) pair.
	_, err, _ = s.mirrors.Do(dir+"\x00"+assetID, func() (interface{}, error) {
		return nil, s.reconstruct(ctx, dir, assetID, ix)
	})
	if err != nil {
		return "", err
	}
	return dir, nil
}

func (s *Store) reconstruct(ctx context.Context, dir, assetID string, ix *Index) error {
	logger := s.logger.With().Str("assetId", assetID).Str("dir", dir).Logger()

	complete, err := s.mirrorComplete(ctx, dir, ix)
	if err != nil {
		return err
	}
	if complete {
		logger.Debug().Msg("Asset mirror is up to date")
		return nil
	}

	done := logging.LogOperationStart(logger, "reconstruct asset mirror")
	defer done()

	var (
		mu      sync.Mutex
		missing []string
		placed  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, name := range ix.Names() {
		obj := ix.Objects[name]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			did, err := s.placeEntry(dir, name, obj)
			if errors.IsNotFound(err) {
				mu.Lock()
				missing = append(missing, name)
				mu.Unlock()
				return nil
			}
			if err != nil {
				return err
			}
			if did {
				mu.Lock()
				placed++
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	logger.Info().Int("placed", placed).Int("missing", len(missing)).Msg("Asset mirror reconstructed")
	if len(missing) > 0 {
		return errors.Newf(errors.ErrNotFound, "%d asset objects of %q are not present", len(missing), assetID).
			WithDetail("assetId", assetID).
			WithDetail("missing", missing)
	}
	return nil
}

func (s *Store) placeEntry(dir, name string, obj Object) (bool, error) {
	src := s.ObjectPath(obj)
	dst := filepath.Join(dir, filepath.FromSlash(name))

	if err := s.requireFile(src); err != nil {
		return false, err
	}
	if !s.strict {
		placed, err := filesystem.PlaceFile(s.fs, src, dst, obj.Size, s.linkMode)
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrIO, "cannot place asset %q", name).WithDetail("path", dst)
		}
		return placed, nil
	}

	if ok, err := s.verifyFile(dst, obj.Hash, obj.Size); err == nil && ok {
		return false, nil
	}
	if err := s.Check(obj); err != nil {
		return false, err
	}
	if err := filesystem.ReplaceFile(s.fs, src, dst, s.linkMode); err != nil {
		return false, errors.Wrapf(err, errors.ErrIO, "cannot place asset %q", name).WithDetail("path", dst)
	}
	return true, nil
}

// mirrorComplete reports whether every entry of ix is present in dir with
// the recorded size, or the recorded hash in strict mode.
func (s *Store) mirrorComplete(ctx context.Context, dir string, ix *Index) (bool, error) {
	for name, obj := range ix.Objects {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		dst := filepath.Join(dir, filepath.FromSlash(name))
		info, err := s.fs.Stat(dst)
		if err != nil || !info.Mode().IsRegular() || info.Size() != obj.Size {
			return false, nil
		}
		if s.strict {
			if ok, err := s.verifyFile(dst, obj.Hash, obj.Size); err != nil || !ok {
				return false, nil
			}
		}
	}
	return true, nil
}
