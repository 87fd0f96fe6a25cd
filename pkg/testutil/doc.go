// Package testutil builds game roots for tests.
//
// Key components:
//   - GameRoot: a root directory with a Paths instance and helpers that write
//     manifests, asset indexes, objects, libraries and jars in the on-disk
//     layout
//
// Usage guidelines:
//   - Pure lookups and parsing use EnvMemoryOnly
//   - Anything that renames directories or hard links files uses EnvIsolated,
//     since those operations are only meaningful on a real filesystem
//   - All test data is defined inline, not in external files
package testutil
