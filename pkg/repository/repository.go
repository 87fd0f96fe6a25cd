package repository

import (
	"context"
	"fmt"

	"github.com/arthur-debert/gamerepo/pkg/assets"
	"github.com/arthur-debert/gamerepo/pkg/manifest"
	"github.com/arthur-debert/gamerepo/pkg/resolver"
)

// Repository is the full operation set over a catalog of versions.
// Implementations that cannot modify their source fail mutating operations
// with UNSUPPORTED rather than omitting them.
type Repository interface {
	// Refresh rescans the source and atomically replaces the catalog. It is
	// long running and must not be called from latency sensitive code.
	Refresh(ctx context.Context) (*ScanResult, error)
	State() State

	HasVersion(id string) bool
	Version(id string) (*manifest.Manifest, error)
	VersionCount() int
	Versions() []*manifest.Manifest
	Warnings() []ScanWarning
	Resolve(id string) (*resolver.Effective, error)

	RenameVersion(ctx context.Context, from, to string) error

	VersionRoot(id string) string
	RunDirectory(id string) string
	NativeDirectory(id string) string
	LibraryFile(lib manifest.Library) (string, bool)
	VersionJar(id string) (string, error)

	AssetDirectory(versionID, assetID string) string
	ActualAssetDirectory(ctx context.Context, versionID, assetID string) (string, error)
	AssetIndex(versionID, assetID string) (*assets.Index, error)
	IndexFile(versionID, assetID string) string
	AssetObject(versionID, assetID, name string) (string, error)
	LoggingObject(versionID, assetID string, info manifest.LoggingInfo) (string, error)

	Audit(ctx context.Context, id string) (*AuditReport, error)
}

// State is the lifecycle of a repository's catalog.
type State int32

const (
	// Uninitialized means no scan has completed; the catalog is empty.
	Uninitialized State = iota
	// Scanning means a scan is running. Queries see the previous catalog.
	Scanning
	// Ready means the catalog reflects the last completed scan.
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Scanning:
		return "scanning"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// ScanWarning records a version directory that could not be loaded cleanly.
type ScanWarning struct {
	VersionID string
	Path      string
	Err       error
	// Skipped is true when the directory is missing from the catalog.
	Skipped bool
}

func (w ScanWarning) String() string {
	return fmt.Sprintf("%s: %v", w.VersionID, w.Err)
}

// ScanResult summarizes a completed refresh.
type ScanResult struct {
	Versions int
	Warnings []ScanWarning
}
