// Package ui renders command results as styled terminal output, plain
// text, or JSON, YAML and TOML documents.
//
// Commands build one of the view types (VersionList, VersionDetail,
// LibraryList, PathList, AssetView, AuditView) and hand it to a Renderer.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/gamerepo/pkg/errors"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a view
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		// Buffers and other writers never get escape codes
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return NewTerminalRenderer(output), nil
	case FormatText:
		return NewTextRenderer(output), nil
	case FormatJSON, FormatYAML, FormatTOML:
		return NewStructuredRenderer(format, output)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
