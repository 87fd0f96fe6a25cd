// Package filesystem provides the filesystem used by gamerepo.
//
// All file access goes through afero.Fs so that the repository, the asset
// store and their tests can run against the operating system or an
// in-memory filesystem. The package also holds the small set of write
// primitives the store relies on: atomic whole-file writes and
// create-or-skip placement of content-addressed files under a new name.
package filesystem
