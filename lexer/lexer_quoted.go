package lexer

import (
	"github.com/yamlcore/yamlcore/internal/charclass"
	"github.com/yamlcore/yamlcore/token"
)

// scanQuotedScalar scans a single- or double-quoted scalar, applying
// line folding to unescaped breaks the same way a plain scalar does:
// a single break becomes a space, N>1 consecutive breaks become N-1
// literal breaks.
func (l *Lexer) scanQuotedScalar(start token.Position, double bool) error {
	l.src.Advance(1) // opening quote
	buf := l.resetBuf()

	pendingBreaks := 0
	pendingSpaces := 0
	flushWhitespace := func() {
		if pendingBreaks == 0 {
			for i := 0; i < pendingSpaces; i++ {
				buf = append(buf, ' ')
			}
		} else if pendingBreaks == 1 {
			buf = append(buf, ' ')
		} else {
			for i := 0; i < pendingBreaks-1; i++ {
				buf = append(buf, '\n')
			}
		}
		pendingBreaks = 0
		pendingSpaces = 0
	}

	for {
		b, ok := l.peek()
		if !ok {
			return l.newError(l.pos(), "unterminated quoted scalar")
		}

		if charclass.IsBlank(l.lineOf(), 0) {
			for {
				b, ok := l.peek()
				if !ok || !charclass.IsBlank([]byte{b}, 0) {
					break
				}
				pendingSpaces++
				l.src.Advance(1)
			}
			continue
		}
		if charclass.IsBreak(l.lineOf(), 0) {
			if pendingSpaces > 0 {
				pendingSpaces = 0 // trailing line blanks don't count
			}
			pendingBreaks++
			l.src.Advance(charclass.BreakWidth(l.lineOf(), 0))
			continue
		}

		if !double && b == '\'' {
			if nb, ok := l.peekAt(1); ok && nb == '\'' {
				flushWhitespace()
				buf = append(buf, '\'')
				l.src.Advance(2)
				continue
			}
			flushWhitespace()
			l.src.Advance(1)
			l.buf = buf
			l.Current = token.Token{Kind: token.QuotedScalarToken, Start: start, End: l.pos(), Value: buf, ScalarStyle: token.SingleQuotedScalarStyle}
			return nil
		}
		if double && b == '"' {
			flushWhitespace()
			l.src.Advance(1)
			l.buf = buf
			l.Current = token.Token{Kind: token.QuotedScalarToken, Start: start, End: l.pos(), Value: buf, ScalarStyle: token.DoubleQuotedScalarStyle}
			return nil
		}
		if double && b == '\\' {
			flushWhitespace()
			if _, _, err := l.scanDoubleEscape(&buf); err != nil {
				return err
			}
			continue
		}

		flushWhitespace()
		buf = append(buf, b)
		l.src.Advance(1)
	}
}

// scanDoubleEscape consumes one `\...` escape sequence in a
// double-quoted scalar, appending its decoded bytes to *buf.
// discardsBreak reports whether the escape was a line-continuation
// (`\` immediately followed by a line break), which contributes
// nothing to the value.
func (l *Lexer) scanDoubleEscape(buf *[]byte) (consumed int, discardsBreak bool, err error) {
	start := l.pos()
	l.src.Advance(1) // '\'

	if charclass.IsBreak(l.lineOf(), 0) {
		l.src.Advance(charclass.BreakWidth(l.lineOf(), 0))
		return 0, true, nil
	}

	b, ok := l.peek()
	if !ok {
		return 0, false, l.newError(start, "unterminated escape sequence")
	}

	simple := map[byte]byte{
		'0': 0x00, 'a': 0x07, 'b': 0x08, 't': 0x09, 'n': 0x0A, 'v': 0x0B,
		'f': 0x0C, 'r': 0x0D, 'e': 0x1B, '"': '"', '\'': '\'', '\\': '\\', '/': '/',
	}

	switch b {
	case 'x':
		l.src.Advance(1)
		return l.scanHexEscape(buf, 2)
	case 'u':
		l.src.Advance(1)
		return l.scanHexEscape(buf, 4)
	case 'U':
		l.src.Advance(1)
		return l.scanHexEscape(buf, 8)
	case 'N':
		l.src.Advance(1)
		*buf = append(*buf, 0xC2, 0x85) // U+0085 NEL
		return 2, false, nil
	case '_':
		l.src.Advance(1)
		*buf = append(*buf, 0xC2, 0xA0) // U+00A0 NBSP
		return 2, false, nil
	case 'L':
		l.src.Advance(1)
		*buf = append(*buf, 0xE2, 0x80, 0xA8) // U+2028 LS
		return 3, false, nil
	case 'P':
		l.src.Advance(1)
		*buf = append(*buf, 0xE2, 0x80, 0xA9) // U+2029 PS
		return 3, false, nil
	default:
		if v, ok := simple[b]; ok {
			l.src.Advance(1)
			*buf = append(*buf, v)
			return 1, false, nil
		}
	}
	return 0, false, l.newError(start, "unknown escape sequence '\\%c'", b)
}

func (l *Lexer) scanHexEscape(buf *[]byte, digits int) (int, bool, error) {
	start := l.pos()
	var code rune
	for i := 0; i < digits; i++ {
		b, ok := l.peek()
		if !ok || !charclass.IsHex([]byte{b}, 0) {
			return 0, false, l.newError(start, "expected %d hex digits in escape", digits)
		}
		code = code<<4 | rune(charclass.AsHex([]byte{b}, 0))
		l.src.Advance(1)
	}
	*buf = appendRune(*buf, code)
	return digits, false, nil
}

func appendRune(buf []byte, r rune) []byte {
	if r < 0x80 {
		return append(buf, byte(r))
	}
	if r < 0x800 {
		return append(buf, byte(0xC0|r>>6), byte(0x80|r&0x3F))
	}
	if r < 0x10000 {
		return append(buf, byte(0xE0|r>>12), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
	}
	return append(buf, byte(0xF0|r>>18), byte(0x80|(r>>12)&0x3F), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
}
