package repository

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/filesystem"
	"github.com/arthur-debert/gamerepo/pkg/manifest"
	"github.com/arthur-debert/gamerepo/pkg/paths"
)

// undoStack collects compensating actions for completed rename steps.
type undoStack []func() error

func (u *undoStack) push(f func() error) {
	*u = append(*u, f)
}

// unwind runs the compensations newest first and returns the first error.
func (u undoStack) unwind() error {
	var first error
	for i := len(u) - 1; i >= 0; i-- {
		if err := u[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// RenameVersion renames version from to to on disk and in the catalog.
//
// The version directory, its manifest, jar and natives directory are
// renamed and the manifest's id is rewritten. If any step fails the
// completed steps are undone in reverse order and IO is returned; the
// catalog is only updated once every step has succeeded. Versions
// inheriting from the old id are not rewritten.
func (r *Local) RenameVersion(ctx context.Context, from, to string) error {
	if err := paths.ValidateVersionID(to); err != nil {
		return err
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	snap := r.current()
	if _, ok := snap.Manifest(from); !ok {
		return errors.Newf(errors.ErrNotFound, "version %q is not installed", from).
			WithDetail("id", from)
	}
	if from == to {
		return nil
	}
	if _, ok := snap.Manifest(to); ok {
		return errors.Newf(errors.ErrAlreadyExists, "version %q already exists", to).
			WithDetail("id", to)
	}
	if exists, _ := afero.Exists(r.fs, r.paths.VersionRoot(to)); exists {
		return errors.Newf(errors.ErrAlreadyExists, "directory for version %q already exists", to).
			WithDetail("path", r.paths.VersionRoot(to))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger := r.logger.With().Str("from", from).Str("to", to).Logger()
	var undo undoStack
	fail := func(err error, step string) error {
		if rbErr := undo.unwind(); rbErr != nil {
			logger.Error().Err(rbErr).Str("step", step).Msg("Rollback of version rename failed")
			return errors.Wrapf(err, errors.ErrIO, "rename failed at %s and could not be rolled back", step).
				WithDetail("rollback", rbErr.Error())
		}
		logger.Warn().Err(err).Str("step", step).Msg("Version rename rolled back")
		return errors.Wrapf(err, errors.ErrIO, "rename failed at %s", step).
			WithDetail("from", from).
			WithDetail("to", to)
	}

	oldRoot, newRoot := r.paths.VersionRoot(from), r.paths.VersionRoot(to)
	if err := r.fs.Rename(oldRoot, newRoot); err != nil {
		return fail(err, "directory")
	}
	undo.push(func() error { return r.fs.Rename(newRoot, oldRoot) })

	// inside the renamed directory, still under the old names
	movedManifest := filepath.Join(newRoot, from+paths.ManifestExt)
	newManifest := r.paths.VersionManifest(to)
	original, err := afero.ReadFile(r.fs, movedManifest)
	if err != nil {
		return fail(err, "manifest read")
	}
	if err := r.moveIfExists(movedManifest, newManifest, &undo); err != nil {
		return fail(err, "manifest")
	}
	if err := r.moveIfExists(filepath.Join(newRoot, from+paths.JarExt), r.paths.VersionJar(to), &undo); err != nil {
		return fail(err, "jar")
	}
	if err := r.moveIfExists(filepath.Join(newRoot, from+paths.NativesSuffix), r.paths.NativeDirectory(to), &undo); err != nil {
		return fail(err, "natives")
	}

	rewritten, err := manifest.RewriteID(original, to)
	if err != nil {
		return fail(err, "manifest rewrite")
	}
	if err := filesystem.WriteFileAtomic(r.fs, newManifest, rewritten, 0644); err != nil {
		return fail(err, "manifest write")
	}
	undo.push(func() error { return filesystem.WriteFileAtomic(r.fs, newManifest, original, 0644) })

	renamed, err := manifest.ReadFile(r.fs, newManifest)
	if err != nil {
		return fail(err, "manifest reload")
	}
	if renamed.ID != to {
		return fail(errors.Newf(errors.ErrCorruption, "rewritten manifest has id %q", renamed.ID), "manifest reload")
	}

	r.snap.Store(snap.withRenamed(from, renamed))

	dependents := r.dependents(from)
	ev := logger.Info()
	if len(dependents) > 0 {
		ev = logger.Warn().Strs("orphaned", dependents)
	}
	ev.Msg("Version renamed")
	return nil
}

// moveIfExists renames src to dst when src exists and records the undo.
func (r *Local) moveIfExists(src, dst string, undo *undoStack) error {
	if _, err := r.fs.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := r.fs.Rename(src, dst); err != nil {
		return err
	}
	undo.push(func() error { return r.fs.Rename(dst, src) })
	return nil
}

// dependents lists catalog versions whose parent is id.
func (r *Local) dependents(id string) []string {
	var out []string
	for _, m := range r.current().list() {
		if m.ParentID == id {
			out = append(out, m.ID)
		}
	}
	return out
}
