package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"

	"github.com/arthur-debert/gamerepo/pkg/errors"
)

const schemaURL = "https://gamerepo.local/schemas/manifest.schema.json"

//go:embed schema/manifest.schema.json
var schemaDocument []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaDocument)); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
})

// Parse decodes and validates a manifest document.
func Parse(data []byte) (*Manifest, error) {
	stripped := jsonc.ToJSON(data)

	var doc interface{}
	if err := json.Unmarshal(stripped, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "malformed manifest JSON")
	}

	if obj, ok := doc.(map[string]interface{}); ok {
		if parent, present := obj["inheritsFrom"]; present && parent == "" {
			return nil, errors.New(errors.ErrParse, "inheritsFrom is present but empty")
		}
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to compile manifest schema")
	}
	if err := schema.Validate(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "manifest does not match schema")
	}

	var m Manifest
	if err := json.Unmarshal(stripped, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "cannot decode manifest")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadFile reads and parses the manifest at path.
func ReadFile(fsys afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "manifest file does not exist").
				WithDetail("path", path)
		}
		return nil, errors.Wrap(err, errors.ErrIO, "cannot read manifest file").
			WithDetail("path", path)
	}

	m, err := Parse(data)
	if err != nil {
		if repoErr, ok := err.(*errors.RepoError); ok {
			return nil, repoErr.WithDetail("path", path)
		}
		return nil, err
	}
	return m, nil
}

// Validate checks the invariants a manifest must satisfy after construction.
func (m *Manifest) Validate() error {
	if m.ID == "" {
		return errors.New(errors.ErrParse, "manifest has no id")
	}
	if m.ParentID == m.ID {
		return errors.Newf(errors.ErrParse, "manifest %q inherits from itself", m.ID)
	}
	for i, lib := range m.Libraries {
		if lib.Coordinate.Artifact == "" {
			return errors.Newf(errors.ErrParse, "library %d of %q has no coordinate", i, m.ID).
				WithDetail("name", lib.Name)
		}
	}
	return nil
}

// RewriteID returns the manifest document with the value of its top-level id
// replaced. Every other byte, comments and key order included, is kept as is.
func RewriteID(data []byte, id string) ([]byte, error) {
	stripped := jsonc.ToJSON(data)
	if !json.Valid(stripped) {
		return nil, errors.New(errors.ErrParse, "malformed manifest JSON")
	}

	// ToJSON blanks comments in place, so offsets into stripped are offsets
	// into data.
	type span struct{ start, end int64 }
	var spans []span
	dec := json.NewDecoder(bytes.NewReader(stripped))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, errors.New(errors.ErrParse, "manifest is not a JSON object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrParse, "malformed manifest JSON")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrParse, "malformed manifest JSON")
		}
		if tok != "id" {
			continue
		}
		if len(raw) == 0 || raw[0] != '"' {
			return nil, errors.New(errors.ErrParse, "manifest id is not a string")
		}
		end := dec.InputOffset()
		spans = append(spans, span{end - int64(len(raw)), end})
	}
	if len(spans) == 0 {
		return nil, errors.New(errors.ErrParse, "manifest has no id")
	}

	encoded, err := json.Marshal(id)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode id")
	}
	out := make([]byte, 0, len(data)+len(spans)*len(encoded))
	var prev int64
	for _, sp := range spans {
		out = append(out, data[prev:sp.start]...)
		out = append(out, encoded...)
		prev = sp.end
	}
	return append(out, data[prev:]...), nil
}
