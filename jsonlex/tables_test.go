package jsonlex_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DmitriBogdanov/prototyping-utils/jsonlex"
)

func TestWhitespaceTable(t *testing.T) {
	count := 0
	for b := 0; b < 256; b++ {
		if jsonlex.Whitespace[b] {
			count++
		}
	}
	require.Equal(t, 4, count, "only SPACE, TAB, CR, LF are insignificant whitespace")
	require.True(t, jsonlex.Whitespace[' '])
	require.True(t, jsonlex.Whitespace['\t'])
	require.True(t, jsonlex.Whitespace['\r'])
	require.True(t, jsonlex.Whitespace['\n'])
	require.False(t, jsonlex.Whitespace['\v'])
	require.False(t, jsonlex.Whitespace[0xA0])
}

func TestEscapeTablesAreInverse(t *testing.T) {
	// Every 2-character escape the serializer emits must decode back
	// to the original byte through the parser table.
	for b := 0; b < 256; b++ {
		letter := jsonlex.SerializedEscape[b]
		if letter == 0 || letter == jsonlex.UnicodeEscape {
			continue
		}
		require.Equal(t, byte(b), jsonlex.ParsedEscape[letter],
			"escape letter %q must decode to 0x%02X", letter, b)
	}

	// '/' decodes but is never emitted.
	require.Equal(t, byte('/'), jsonlex.ParsedEscape['/'])
	require.Equal(t, byte(0), jsonlex.SerializedEscape['/'])
}

func TestControlCharsNeedEscaping(t *testing.T) {
	for b := 0; b < 0x20; b++ {
		require.NotEqual(t, byte(0), jsonlex.SerializedEscape[b],
			"control byte 0x%02X must be escaped", b)
	}
	require.Equal(t, byte(0), jsonlex.SerializedEscape[' '])
	require.Equal(t, byte(0), jsonlex.SerializedEscape['a'])
	require.Equal(t, byte(jsonlex.UnicodeEscape), jsonlex.SerializedEscape[0x01])
	require.Equal(t, byte('n'), jsonlex.SerializedEscape['\n'])
}
