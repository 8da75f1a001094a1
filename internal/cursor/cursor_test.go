package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeValidASCII(t *testing.T) {
	runes, offsets, diags := Decode("abc")
	require.Empty(t, diags)
	require.Equal(t, []rune{'a', 'b', 'c'}, runes)
	require.Equal(t, []int{0, 1, 2}, offsets)
}

func TestDecodeMultibyte(t *testing.T) {
	// "é" is 2 bytes (0xC3 0xA9), "x" is 1 byte.
	runes, offsets, diags := Decode("éx")
	require.Empty(t, diags)
	require.Equal(t, []rune{'é', 'x'}, runes)
	require.Equal(t, []int{0, 2}, offsets)
}

func TestDecodeInvalidByteEmitsReplacementAndDiagnostic(t *testing.T) {
	input := "a\xffb"
	runes, offsets, diags := Decode(input)
	require.Equal(t, []rune{'a', 0xFFFD, 'b'}, runes)
	require.Equal(t, []int{0, 1, 2}, offsets)
	require.Len(t, diags, 1)
	require.Equal(t, CodeInvalidUTF8, diags[0].Code)
	require.Equal(t, 1, diags[0].Pos.Offset)
}

func TestDecodeTruncatedSequenceAtEOF(t *testing.T) {
	// 0xE2 0x82 starts a 3-byte sequence but input ends early.
	input := "a\xe2\x82"
	runes, _, diags := Decode(input)
	require.Len(t, diags, 1)
	require.Equal(t, CodeTruncatedUTF8, diags[0].Code)
	require.Equal(t, []rune{'a', 0xFFFD}, runes)
}

func TestDecodeReplacesParseErrorCodepoints(t *testing.T) {
	runes, _, diags := Decode("a\x01b")
	require.Equal(t, []rune{'a', 0xFFFD, 'b'}, runes)
	require.Len(t, diags, 1)
	require.Equal(t, CodeInvalidCodepoint, diags[0].Code)
	require.EqualValues(t, 0x01, diags[0].Codepoint)
}

func TestDecodeKeepsAllowedControlCharacters(t *testing.T) {
	runes, _, diags := Decode("a\tb\nc\rd")
	require.Empty(t, diags)
	require.Equal(t, []rune{'a', '\t', 'b', '\n', 'c', '\r', 'd'}, runes)
}

func TestCursorMarkReset(t *testing.T) {
	runes, offsets, _ := Decode("abcdef")
	c := NewFromRunes(runes, offsets, 0)

	r, ok := c.Advance()
	require.True(t, ok)
	require.Equal(t, 'a', r)

	c.Mark()
	r, _ = c.Advance()
	require.Equal(t, 'b', r)
	r, _ = c.Advance()
	require.Equal(t, 'c', r)

	require.True(t, c.Reset())
	r, _ = c.Advance()
	require.Equal(t, 'b', r, "reset should rewind to the mark")
}

func TestCursorLookaheadMatchCaseInsensitive(t *testing.T) {
	runes, offsets, _ := Decode("DOCTYPE html")
	c := NewFromRunes(runes, offsets, 0)

	require.True(t, c.LookaheadMatch("doctype", false))
	require.False(t, c.LookaheadMatch("xml", false), "mismatched lookahead must not advance")

	r, ok := c.Current()
	require.True(t, ok)
	require.Equal(t, ' ', r)
}

func TestCursorTabStop(t *testing.T) {
	runes, offsets, _ := Decode("a\tb")
	c := NewFromRunes(runes, offsets, 4)

	c.Advance() // 'a' -> column 2
	require.Equal(t, 2, c.Position().Column)
	c.Advance() // '\t' -> next stop of width 4 from column 2 is column 5
	require.Equal(t, 5, c.Position().Column)
}

func TestPositionAt(t *testing.T) {
	input := "ab\ncd\te\r\nf"

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},  // a
		{1, 1, 2},  // b
		{3, 2, 1},  // c after LF
		{5, 2, 3},  // the TAB itself
		{6, 2, 9},  // e: TAB advanced to stop 9 with default width 8
		{9, 3, 1},  // f: CRLF counts as one line break
	}
	for _, tt := range tests {
		pos := PositionAt(input, tt.offset, 0)
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("PositionAt(%d) = %d:%d, want %d:%d", tt.offset, pos.Line, pos.Column, tt.line, tt.column)
		}
		if pos.Offset != tt.offset {
			t.Errorf("PositionAt(%d).Offset = %d", tt.offset, pos.Offset)
		}
	}
}

func TestPositionAtCustomTabStop(t *testing.T) {
	pos := PositionAt("\tx", 1, 4)
	if pos.Line != 1 || pos.Column != 5 {
		t.Errorf("PositionAt = %d:%d, want 1:5", pos.Line, pos.Column)
	}
}
