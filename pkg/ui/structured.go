package ui

import (
	"encoding/json"
	"io"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/gamerepo/pkg/errors"
)

// encoder is satisfied by the json, yaml and toml encoders.
type encoder interface {
	Encode(v interface{}) error
}

// StructuredRenderer provides machine readable output.
type StructuredRenderer struct {
	format Format
	enc    encoder
}

// NewStructuredRenderer creates a renderer for FormatJSON, FormatYAML or
// FormatTOML.
func NewStructuredRenderer(format Format, w io.Writer) (*StructuredRenderer, error) {
	var enc encoder
	switch format {
	case FormatJSON:
		je := json.NewEncoder(w)
		je.SetIndent("", "  ")
		enc = je
	case FormatYAML:
		enc = yamlEncoder{w: w}
	case FormatTOML:
		enc = toml.NewEncoder(w)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is not a structured format", format)
	}
	return &StructuredRenderer{format: format, enc: enc}, nil
}

// RenderResult encodes result as a single document.
func (r *StructuredRenderer) RenderResult(result interface{}) error {
	return r.enc.Encode(result)
}

// RenderError encodes the error code, message and details.
func (r *StructuredRenderer) RenderError(err error) error {
	obj := errorDocument{
		Code:    string(errors.GetErrorCode(err)),
		Error:   err.Error(),
		Details: errors.GetErrorDetails(err),
	}
	return r.enc.Encode(obj)
}

// RenderMessage encodes a simple message.
func (r *StructuredRenderer) RenderMessage(msg string) error {
	return r.enc.Encode(map[string]string{"message": msg})
}

type errorDocument struct {
	Code    string                 `json:"code" yaml:"code" toml:"code"`
	Error   string                 `json:"error" yaml:"error" toml:"error"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty" toml:"details,omitempty"`
}

// yamlEncoder closes a fresh yaml encoder per document; yaml.v3 only
// flushes on Close.
type yamlEncoder struct {
	w io.Writer
}

func (e yamlEncoder) Encode(v interface{}) error {
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
