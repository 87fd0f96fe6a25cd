// Package resolver merges a version manifest with its inheritance chain into
// a self-contained effective manifest.
//
// Manifests are looked up by id through a Lookup, never followed through
// pointers, so a cyclic chain on disk is detected with a visited set instead
// of looping. Resolution either produces a complete result or fails; nothing
// partially merged is ever returned.
package resolver

import (
	"slices"

	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/logging"
	"github.com/arthur-debert/gamerepo/pkg/manifest"
)

// DefaultMaxDepth bounds the number of manifests in a single chain.
const DefaultMaxDepth = 64

// Lookup finds raw manifests by version id.
type Lookup interface {
	Manifest(id string) (*manifest.Manifest, bool)
}

// MapLookup is a Lookup over a plain map.
type MapLookup map[string]*manifest.Manifest

// Manifest implements Lookup.
func (m MapLookup) Manifest(id string) (*manifest.Manifest, bool) {
	v, ok := m[id]
	return v, ok
}

// Effective is the merge of a manifest with all of its ancestors.
type Effective struct {
	// Manifest is the merged result. Its ParentID is always empty.
	Manifest *manifest.Manifest
	// Chain lists the ids that contributed, leaf first.
	Chain []string
	// jar is the nearest explicitly declared jar.
	jar string
}

// ID returns the id of the resolved leaf.
func (e *Effective) ID() string {
	return e.Manifest.ID
}

// Root returns the id of the last manifest in the chain.
func (e *Effective) Root() string {
	return e.Chain[len(e.Chain)-1]
}

// JarID returns the version whose jar this version runs: the nearest
// declared "jar", otherwise the root of the chain.
func (e *Effective) JarID() string {
	if e.jar != "" {
		return e.jar
	}
	return e.Root()
}

type options struct {
	maxDepth int
}

// Option configures Resolve.
type Option func(*options)

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// Resolve walks the parent chain of id and merges it.
//
// It fails with NOT_FOUND when id itself is unknown, MISSING_ANCESTOR when a
// referenced parent is unknown, CYCLIC_INHERITANCE when an id repeats and
// CHAIN_TOO_DEEP when the chain exceeds the maximum depth.
func Resolve(id string, lookup Lookup, opts ...Option) (*Effective, error) {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	chain, err := walk(id, lookup, o.maxDepth)
	if err != nil {
		logger := logging.GetLogger("resolver")
		logger.Debug().
			Str("id", id).
			Err(err).
			Msg("Resolution failed")
		return nil, err
	}
	return merge(chain), nil
}

// walk collects the chain leaf first.
func walk(id string, lookup Lookup, maxDepth int) ([]*manifest.Manifest, error) {
	leaf, ok := lookup.Manifest(id)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "version %q not found", id).
			WithDetail("id", id)
	}

	chain := []*manifest.Manifest{leaf}
	visited := map[string]bool{id: true}
	current := leaf
	for current.HasParent() {
		parentID := current.ParentID
		if visited[parentID] {
			return nil, errors.Newf(errors.ErrCyclicInheritance,
				"version %q inherits from %q which is already in its chain", id, parentID).
				WithDetail("id", id).
				WithDetail("chain", ids(chain))
		}
		if len(chain) >= maxDepth {
			return nil, errors.Newf(errors.ErrChainTooDeep,
				"inheritance chain of %q is longer than %d", id, maxDepth).
				WithDetail("id", id).
				WithDetail("maxDepth", maxDepth)
		}
		parent, ok := lookup.Manifest(parentID)
		if !ok {
			return nil, errors.Newf(errors.ErrMissingAncestor,
				"version %q inherits from %q which is not installed", current.ID, parentID).
				WithDetail("id", id).
				WithDetail("missing", parentID)
		}
		visited[parentID] = true
		chain = append(chain, parent)
		current = parent
	}
	return chain, nil
}

func ids(chain []*manifest.Manifest) []string {
	out := make([]string, len(chain))
	for i, m := range chain {
		out[i] = m.ID
	}
	return out
}

func merge(chain []*manifest.Manifest) *Effective {
	leaf := chain[0]
	if len(chain) == 1 {
		m := leaf.Clone()
		return &Effective{Manifest: m, Chain: []string{leaf.ID}, jar: m.Jar}
	}

	out := &manifest.Manifest{ID: leaf.ID}
	eff := &Effective{Manifest: out, Chain: ids(chain)}

	seen := make(map[string]bool)
	for _, m := range chain {
		firstNonEmpty(&out.Jar, m.Jar)
		firstNonEmpty(&out.Type, m.Type)
		firstNonEmpty(&out.Time, m.Time)
		firstNonEmpty(&out.ReleaseTime, m.ReleaseTime)
		firstNonEmpty(&out.MainClass, m.MainClass)
		firstNonEmpty(&out.MinecraftArguments, m.MinecraftArguments)
		firstNonEmpty(&out.Assets, m.Assets)
		if out.AssetIndex == nil && m.AssetIndex != nil {
			info := *m.AssetIndex
			out.AssetIndex = &info
		}
		if out.Logging == nil && len(m.Logging) > 0 {
			out.Logging = m.Clone().Logging
		}
		if out.Downloads == nil && len(m.Downloads) > 0 {
			out.Downloads = m.Clone().Downloads
		}

		// A level may list the same coordinate twice; only nearer levels
		// shadow it.
		var level []string
		for _, lib := range m.Libraries {
			key := lib.Key()
			if seen[key] {
				continue
			}
			level = append(level, key)
			out.Libraries = append(out.Libraries, lib.Clone())
		}
		for _, key := range level {
			seen[key] = true
		}
	}
	eff.jar = out.Jar

	// Launch arguments accumulate root first.
	for _, m := range slices.Backward(chain) {
		if m.Arguments == nil {
			continue
		}
		if out.Arguments == nil {
			out.Arguments = &manifest.Arguments{}
		}
		out.Arguments.Game = append(out.Arguments.Game, m.Arguments.Game...)
		out.Arguments.JVM = append(out.Arguments.JVM, m.Arguments.JVM...)
	}
	return eff
}

func firstNonEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
