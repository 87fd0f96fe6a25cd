package repository

import (
	"sync"

	"github.com/arthur-debert/gamerepo/pkg/manifest"
	"github.com/arthur-debert/gamerepo/pkg/resolver"
)

// snapshot is an immutable catalog. Only the resolution cache changes
// after publication, and it is keyed to this snapshot so a refresh
// invalidates it by replacement.
type snapshot struct {
	order    []string
	versions map[string]*manifest.Manifest
	warnings []ScanWarning

	mu       sync.Mutex
	resolved map[string]resolved
}

type resolved struct {
	eff *resolver.Effective
	err error
}

func newSnapshot(order []string, versions map[string]*manifest.Manifest, warnings []ScanWarning) *snapshot {
	return &snapshot{
		order:    order,
		versions: versions,
		warnings: warnings,
		resolved: make(map[string]resolved),
	}
}

func emptySnapshot() *snapshot {
	return newSnapshot(nil, map[string]*manifest.Manifest{}, nil)
}

// Manifest implements resolver.Lookup.
func (s *snapshot) Manifest(id string) (*manifest.Manifest, bool) {
	m, ok := s.versions[id]
	return m, ok
}

func (s *snapshot) list() []*manifest.Manifest {
	out := make([]*manifest.Manifest, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.versions[id])
	}
	return out
}

func (s *snapshot) resolve(id string, opts ...resolver.Option) (*resolver.Effective, error) {
	s.mu.Lock()
	r, ok := s.resolved[id]
	s.mu.Unlock()
	if ok {
		return r.eff, r.err
	}

	eff, err := resolver.Resolve(id, s, opts...)
	s.mu.Lock()
	s.resolved[id] = resolved{eff: eff, err: err}
	s.mu.Unlock()
	return eff, err
}

// withRenamed returns a copy of s in which from is replaced by m at the
// same position.
func (s *snapshot) withRenamed(from string, m *manifest.Manifest) *snapshot {
	order := make([]string, len(s.order))
	for i, id := range s.order {
		if id == from {
			id = m.ID
		}
		order[i] = id
	}
	versions := make(map[string]*manifest.Manifest, len(s.versions))
	for id, v := range s.versions {
		if id != from {
			versions[id] = v
		}
	}
	versions[m.ID] = m
	return newSnapshot(order, versions, s.warnings)
}
