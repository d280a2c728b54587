// Package bytesource provides the uniform byte-level input the lexer
// scans: a peekable, line/column-tracking view over either an in-memory
// buffer or a streaming io.Reader. Both implementations normalize CR,
// LF, and CRLF to a single line advance, and report 1-based line/column
// positions for error reporting (see DESIGN.md on byte- vs rune-based
// columns).
package bytesource

import (
	"bufio"
	"io"

	"github.com/yamlcore/yamlcore/internal/charclass"
	"github.com/yamlcore/yamlcore/token"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// Source is the contract the lexer scans against. PeekAt(0) is
// equivalent to peeking the next unread byte; PeekAt(n) looks n bytes
// further ahead without consuming anything. The second return value is
// false at or past end of input.
type Source interface {
	PeekAt(offset int) (byte, bool)
	Advance(n int)
	Position() token.Position
	CurrentLineText() string
}

// normalize strips a UTF-8 BOM and transcodes UTF-16/UTF-32 input
// (detected by BOM) to UTF-8, per spec §6: the sole supported internal
// encoding is UTF-8, but BOM-prefixed UTF-8/UTF-16LE/UTF-16BE/UTF-32LE/
// UTF-32BE input is accepted. UTF-16LE's BOM (FF FE) is a byte-prefix
// of UTF-32LE's (FF FE 00 00), so the UTF-32LE pattern must be checked
// first.
func normalize(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, err
	}
	switch {
	case len(head) >= 4 && head[0] == 0xFF && head[1] == 0xFE && head[2] == 0x00 && head[3] == 0x00:
		br.Discard(4)
		return transform.NewReader(br, utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewDecoder()), nil
	case len(head) >= 4 && head[0] == 0x00 && head[1] == 0x00 && head[2] == 0xFE && head[3] == 0xFF:
		br.Discard(4)
		return transform.NewReader(br, utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM).NewDecoder()), nil
	case len(head) >= 2 && head[0] == 0xFF && head[1] == 0xFE:
		br.Discard(2)
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()), nil
	case len(head) >= 2 && head[0] == 0xFE && head[1] == 0xFF:
		br.Discard(2)
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()), nil
	case len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF:
		br.Discard(3)
		return br, nil
	default:
		return br, nil
	}
}

// StringSource is a seekable in-memory source: no fill cost, every byte
// is available from construction.
type StringSource struct {
	buf  []byte
	pos  int
	line int
	col  int
}

// NewString builds a Source over an in-memory UTF-8 byte slice. A
// leading BOM (UTF-8 or UTF-16, per the byte pattern) is stripped/
// transcoded ahead of time.
func NewString(b []byte) *StringSource {
	decoded := decodeAll(b)
	return &StringSource{buf: decoded, line: 1, col: 1}
}

func decodeAll(b []byte) []byte {
	r, err := normalize(&trivialReader{b})
	if err != nil {
		return b
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return b
	}
	return out
}

type trivialReader struct{ b []byte }

func (t *trivialReader) Read(p []byte) (int, error) {
	if len(t.b) == 0 {
		return 0, io.EOF
	}
	n := copy(p, t.b)
	t.b = t.b[n:]
	return n, nil
}

func (s *StringSource) PeekAt(offset int) (byte, bool) {
	i := s.pos + offset
	if i < 0 || i >= len(s.buf) {
		return 0, false
	}
	return s.buf[i], true
}

func (s *StringSource) Advance(n int) {
	for i := 0; i < n; i++ {
		if s.pos >= len(s.buf) {
			return
		}
		if charclass.IsBreak(s.buf, s.pos) {
			w := charclass.BreakWidth(s.buf, s.pos)
			s.pos += w
			s.line++
			s.col = 1
			continue
		}
		s.pos++
		s.col++
	}
}

func (s *StringSource) Position() token.Position {
	return token.Position{Index: s.pos, Line: s.line, Column: s.col}
}

func (s *StringSource) CurrentLineText() string {
	start := s.pos
	for start > 0 && s.buf[start-1] != '\n' && s.buf[start-1] != '\r' {
		start--
	}
	end := s.pos
	for end < len(s.buf) && !charclass.IsBreak(s.buf, end) {
		end++
	}
	return string(s.buf[start:end])
}

// ReaderSource streams from an io.Reader, growing an internal buffer
// only as far as lookahead demands.
type ReaderSource struct {
	r      io.Reader // raw source, consumed once by ensure to build reader
	reader io.Reader // normalized (BOM-stripped/UTF-16-transcoded) stream
	buf    []byte    // bytes read so far, never shrunk (needed for CurrentLineText)
	pos    int
	eof    bool
	line   int
	col    int
}

// NewReader builds a streaming Source. BOM detection/UTF-16 transcoding
// happens lazily on the first fill.
func NewReader(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r, line: 1, col: 1}
}

func (s *ReaderSource) ensure(n int) {
	if s.r != nil {
		// Defer normalization until the first read so construction never
		// blocks on I/O.
		norm, err := normalize(s.r)
		s.r = nil
		if err == nil {
			s.reader = norm
		}
	}
	for !s.eof && len(s.buf)-s.pos < n {
		chunk := make([]byte, 4096)
		k, err := s.reader.Read(chunk)
		if k > 0 {
			s.buf = append(s.buf, chunk[:k]...)
		}
		if err != nil {
			s.eof = true
		}
	}
}

func (s *ReaderSource) PeekAt(offset int) (byte, bool) {
	s.ensure(offset + 1)
	i := s.pos + offset
	if i < 0 || i >= len(s.buf) {
		return 0, false
	}
	return s.buf[i], true
}

func (s *ReaderSource) Advance(n int) {
	s.ensure(n + 1)
	for i := 0; i < n; i++ {
		if s.pos >= len(s.buf) {
			return
		}
		if charclass.IsBreak(s.buf, s.pos) {
			w := charclass.BreakWidth(s.buf, s.pos)
			s.pos += w
			s.line++
			s.col = 1
			continue
		}
		s.pos++
		s.col++
	}
}

func (s *ReaderSource) Position() token.Position {
	return token.Position{Index: s.pos, Line: s.line, Column: s.col}
}

func (s *ReaderSource) CurrentLineText() string {
	start := s.pos
	for start > 0 && s.buf[start-1] != '\n' && s.buf[start-1] != '\r' {
		start--
	}
	end := s.pos
	for {
		if end >= len(s.buf) {
			if s.eof {
				break
			}
			s.ensure(end - s.pos + 1)
			if end >= len(s.buf) {
				break
			}
		}
		if charclass.IsBreak(s.buf, end) {
			break
		}
		end++
	}
	return string(s.buf[start:end])
}
