package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gamerepo/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"", FormatAuto},
		{"auto", FormatAuto},
		{"term", FormatTerminal},
		{"terminal", FormatTerminal},
		{"TEXT", FormatText},
		{"plain", FormatText},
		{"json", FormatJSON},
		{"yml", FormatYAML},
		{"yaml", FormatYAML},
		{" toml ", FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestFormatNames(t *testing.T) {
	for _, name := range Formats {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.String())
	}
	assert.True(t, FormatTOML.Structured())
	assert.False(t, FormatText.Structured())
}

func TestNewRenderer(t *testing.T) {
	var buf bytes.Buffer

	r, err := NewRenderer(FormatAuto, &buf)
	require.NoError(t, err)
	assert.IsType(t, &TextRenderer{}, r, "non-file writers get plain text")

	r, err = NewRenderer(FormatTerminal, &buf)
	require.NoError(t, err)
	assert.IsType(t, &TerminalRenderer{}, r)

	r, err = NewRenderer(FormatYAML, &buf)
	require.NoError(t, err)
	assert.IsType(t, &StructuredRenderer{}, r)

	_, err = NewRenderer(Format(42), &buf)
	assert.Error(t, err)
}
