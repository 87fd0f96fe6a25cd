package repository

import (
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/arthur-debert/gamerepo/pkg/manifest"
)

// SortVersions returns ms ordered for display: ids that parse as semantic
// versions first, newest first, then the rest lexically.
func SortVersions(ms []*manifest.Manifest) []*manifest.Manifest {
	type keyed struct {
		m *manifest.Manifest
		v *semver.Version
	}
	ks := make([]keyed, len(ms))
	for i, m := range ms {
		ks[i].m = m
		if v, err := semver.NewVersion(m.ID); err == nil {
			ks[i].v = v
		}
	}

	sort.SliceStable(ks, func(i, j int) bool {
		a, b := ks[i], ks[j]
		switch {
		case a.v != nil && b.v != nil:
			if c := a.v.Compare(b.v); c != 0 {
				return c > 0
			}
			return a.m.ID < b.m.ID
		case a.v != nil:
			return true
		case b.v != nil:
			return false
		default:
			return a.m.ID < b.m.ID
		}
	})

	out := make([]*manifest.Manifest, len(ks))
	for i, k := range ks {
		out[i] = k.m
	}
	return out
}
