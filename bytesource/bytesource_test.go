package bytesource_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamlcore/yamlcore/bytesource"
)

func TestStringSourcePeekAdvance(t *testing.T) {
	s := bytesource.NewString([]byte("ab\ncd"))
	b, ok := s.PeekAt(0)
	require.True(t, ok)
	assert.Equal(t, byte('a'), b)

	b, ok = s.PeekAt(1)
	require.True(t, ok)
	assert.Equal(t, byte('b'), b)

	s.Advance(2)
	pos := s.Position()
	assert.Equal(t, 1, pos.Line)
	assert.Equal(t, 3, pos.Column)

	s.Advance(1) // consume the newline
	pos = s.Position()
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 1, pos.Column)

	assert.Equal(t, "cd", s.CurrentLineText())
}

func TestStringSourceCRLFNormalizesToOneLine(t *testing.T) {
	s := bytesource.NewString([]byte("a\r\nb"))
	s.Advance(1) // 'a'
	pos := s.Position()
	assert.Equal(t, 1, pos.Line)
	s.Advance(1) // the CRLF pair, as a single break
	pos = s.Position()
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 1, pos.Column)
	b, ok := s.PeekAt(0)
	require.True(t, ok)
	assert.Equal(t, byte('b'), b)
}

func TestStringSourceEOF(t *testing.T) {
	s := bytesource.NewString([]byte("a"))
	s.Advance(1)
	_, ok := s.PeekAt(0)
	assert.False(t, ok)
}

func TestReaderSourceMatchesStringSource(t *testing.T) {
	text := "line one\nline two\nline three"
	rs := bytesource.NewReader(strings.NewReader(text))
	ss := bytesource.NewString([]byte(text))

	for i := 0; i < len(text); i++ {
		rb, rok := rs.PeekAt(0)
		sb, sok := ss.PeekAt(0)
		require.Equal(t, sok, rok)
		require.Equal(t, sb, rb)
		rs.Advance(1)
		ss.Advance(1)
	}
}

func TestReaderSourceCurrentLineText(t *testing.T) {
	rs := bytesource.NewReader(strings.NewReader("first\nsecond\n"))
	rs.Advance(6) // past "first\n"
	assert.Equal(t, "second", rs.CurrentLineText())
}
