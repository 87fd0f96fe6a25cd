// Package manifest models a version's declared configuration as read from
// versions/<id>/<id>.json.
//
// A Manifest is the raw, pre-inheritance document: it may name a parent
// through "inheritsFrom" and leave fields such as the asset index to be
// inherited. Manifests are values; once parsed they are never mutated, and
// a re-scan produces new ones.
//
// Parsing is lenient about comments and trailing commas (hand-edited
// manifests are common) but strict about structure: the document is
// validated against an embedded JSON schema before decoding and any
// violation surfaces as a PARSE error.
package manifest
