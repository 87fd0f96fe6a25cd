package repository

import (
	"context"

	"github.com/arthur-debert/gamerepo/pkg/assets"
	"github.com/arthur-debert/gamerepo/pkg/manifest"
)

// VersionRoot implements Repository.
func (r *Local) VersionRoot(id string) string {
	return r.paths.VersionRoot(id)
}

// RunDirectory implements Repository.
func (r *Local) RunDirectory(id string) string {
	return r.paths.RunDirectory(id)
}

// NativeDirectory implements Repository.
func (r *Local) NativeDirectory(id string) string {
	return r.paths.NativeDirectory(id)
}

// LibraryFile returns where lib lives for the repository's platform.
func (r *Local) LibraryFile(lib manifest.Library) (string, bool) {
	return r.paths.LibraryFile(lib, r.platform)
}

// VersionJar resolves id and returns the jar it runs, which belongs to an
// ancestor when the version declares no jar of its own.
func (r *Local) VersionJar(id string) (string, error) {
	eff, err := r.Resolve(id)
	if err != nil {
		return "", err
	}
	return r.paths.VersionJar(eff.JarID()), nil
}

// AssetDirectory implements Repository. Every version and asset id shares the
// one hash-addressed store.
func (r *Local) AssetDirectory(_, _ string) string {
	return r.store.AssetDirectory()
}

// ActualAssetDirectory implements Repository.
func (r *Local) ActualAssetDirectory(ctx context.Context, versionID, assetID string) (string, error) {
	return r.store.ActualAssetDirectory(ctx, versionID, assetID)
}

// AssetIndex implements Repository.
func (r *Local) AssetIndex(_ string, assetID string) (*assets.Index, error) {
	return r.store.Index(assetID)
}

// IndexFile implements Repository.
func (r *Local) IndexFile(_ string, assetID string) string {
	return r.store.IndexFile(assetID)
}

// AssetObject implements Repository.
func (r *Local) AssetObject(_ string, assetID, name string) (string, error) {
	return r.store.ObjectFile(assetID, name)
}

// LoggingObject implements Repository. Logging configs live beside the asset
// store and are keyed by their own file id.
func (r *Local) LoggingObject(_, _ string, info manifest.LoggingInfo) (string, error) {
	return r.store.LoggingObject(info)
}
