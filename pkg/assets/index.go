package assets

import (
	"encoding/json"
	"sort"

	"github.com/rs/zerolog"
	"github.com/tidwall/jsonc"

	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/paths"
)

// Object is one stored asset payload.
type Object struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (o Object) MarshalZerologObject(e *zerolog.Event) {
	e.Str("hash", o.Hash).Int64("size", o.Size)
}

// Index maps asset names to objects for one asset id.
type Index struct {
	Objects map[string]Object `json:"objects"`
	// Virtual asks for a name-addressed mirror under assets/virtual/<id>.
	Virtual bool `json:"virtual,omitempty"`
	// MapToResources asks for a name-addressed mirror in the run
	// directory's resources folder.
	MapToResources bool `json:"map_to_resources,omitempty"`
}

// NeedsMirror reports whether the runtime reads these assets by name.
func (ix *Index) NeedsMirror() bool {
	return ix.Virtual || ix.MapToResources
}

// Object looks up name.
func (ix *Index) Object(name string) (Object, bool) {
	obj, ok := ix.Objects[name]
	return obj, ok
}

// Names returns every asset name in lexical order.
func (ix *Index) Names() []string {
	names := make([]string, 0, len(ix.Objects))
	for name := range ix.Objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TotalSize sums the sizes of all distinct objects.
func (ix *Index) TotalSize() int64 {
	seen := make(map[string]bool, len(ix.Objects))
	var total int64
	for _, obj := range ix.Objects {
		if seen[obj.Hash] {
			continue
		}
		seen[obj.Hash] = true
		total += obj.Size
	}
	return total
}

// ParseIndex decodes an asset index document. Names that would escape the
// mirror directory and malformed hashes are rejected.
func ParseIndex(data []byte) (*Index, error) {
	var ix Index
	if err := json.Unmarshal(jsonc.ToJSON(data), &ix); err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "malformed asset index")
	}
	if ix.Objects == nil {
		ix.Objects = map[string]Object{}
	}
	for name, obj := range ix.Objects {
		if err := paths.ValidateAssetName(name); err != nil {
			return nil, errors.Wrapf(err, errors.ErrParse, "invalid asset name %q", name)
		}
		if err := paths.ValidateHash(obj.Hash); err != nil {
			return nil, errors.Wrapf(err, errors.ErrParse, "invalid hash for asset %q", name)
		}
		if obj.Size < 0 {
			return nil, errors.Newf(errors.ErrParse, "negative size for asset %q", name)
		}
	}
	return &ix, nil
}
