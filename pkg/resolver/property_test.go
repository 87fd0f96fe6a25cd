// TEST TYPE: Property Test
// DEPENDENCIES: gopter
// PURPOSE: Check resolution identity and library ordering over generated chains

package resolver_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/manifest"
	"github.com/arthur-debert/gamerepo/pkg/resolver"
)

func libraries(artifacts []int) []manifest.Library {
	libs := make([]manifest.Library, 0, len(artifacts))
	for _, a := range artifacts {
		l, err := manifest.NewLibrary(fmt.Sprintf("org.example:lib%d:1.0", a))
		if err != nil {
			panic(err)
		}
		libs = append(libs, l)
	}
	return libs
}

// expectedLibraries is the child-first merge computed independently.
func expectedLibraries(levels ...[]manifest.Library) []string {
	var out []string
	shadowed := map[string]bool{}
	for _, level := range levels {
		var keys []string
		for _, l := range level {
			if shadowed[l.Key()] {
				continue
			}
			out = append(out, l.Name)
			keys = append(keys, l.Key())
		}
		for _, k := range keys {
			shadowed[k] = true
		}
	}
	return out
}

func TestResolveProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	artifacts := gen.SliceOf(gen.IntRange(0, 6))

	properties.Property("resolving a root manifest is the identity", prop.ForAll(
		func(id string, libs []int, assets string) bool {
			m := &manifest.Manifest{ID: id, Assets: assets, Libraries: libraries(libs)}
			eff, err := resolver.Resolve(id, resolver.MapLookup{id: m})
			return err == nil && reflect.DeepEqual(m, eff.Manifest)
		},
		gen.Identifier(),
		artifacts,
		gen.AlphaString(),
	))

	properties.Property("chain libraries are child first without ancestor duplicates", prop.ForAll(
		func(a, b, c []int) bool {
			la, lb, lc := libraries(a), libraries(b), libraries(c)
			lookup := resolver.MapLookup{
				"a": {ID: "a", ParentID: "b", Libraries: la},
				"b": {ID: "b", ParentID: "c", Libraries: lb},
				"c": {ID: "c", Libraries: lc},
			}
			eff, err := resolver.Resolve("a", lookup)
			if err != nil {
				return false
			}
			got := make([]string, 0, len(eff.Manifest.Libraries))
			for _, l := range eff.Manifest.Libraries {
				got = append(got, l.Name)
			}
			want := expectedLibraries(la, lb, lc)
			return len(got) == len(want) && (len(got) == 0 || reflect.DeepEqual(got, want))
		},
		artifacts, artifacts, artifacts,
	))

	properties.Property("cycles always fail without a result", prop.ForAll(
		func(n int) bool {
			lookup := resolver.MapLookup{}
			for i := 0; i < n; i++ {
				id := fmt.Sprintf("v%d", i)
				lookup[id] = &manifest.Manifest{ID: id, ParentID: fmt.Sprintf("v%d", (i+1)%n)}
			}
			eff, err := resolver.Resolve("v0", lookup)
			return eff == nil && errors.IsErrorCode(err, errors.ErrCyclicInheritance)
		},
		gen.IntRange(2, 40),
	))

	properties.TestingRun(t)
}
