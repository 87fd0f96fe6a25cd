// Package assets is the content-addressed asset object store.
//
// An asset index maps logical names such as "minecraft/sounds/random/click.ogg"
// to objects identified by their SHA-1 hash. Objects live once per hash under
// assets/objects, so names with identical content share storage. Versions
// whose runtime expects assets by name get a mirror directory built from the
// objects by ActualAssetDirectory.
//
// The store never downloads anything. A missing index or object is reported
// as NOT_FOUND so the caller can fetch it into the path this package
// reports; a failed verification is reported as CORRUPTION and is never
// repaired here.
package assets
