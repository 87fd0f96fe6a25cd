// Package repository is the catalog of installed versions and the single
// entry point for everything that needs to find a version's files.
//
// A Local repository scans versions/ into an immutable snapshot. Readers
// always see a complete snapshot; Refresh builds a new one and publishes it
// with one atomic swap, and concurrent Refresh calls share a single scan.
// A directory whose manifest cannot be loaded is skipped and reported as a
// ScanWarning instead of failing the whole scan.
//
// Path questions are answered by pkg/paths, asset questions by pkg/assets;
// the repository resolves inheritance first where the answer depends on it,
// as VersionJar does.
//
// ReadOnly wraps any Repository and rejects RenameVersion with UNSUPPORTED,
// so callers program against one interface whatever the source.
package repository
