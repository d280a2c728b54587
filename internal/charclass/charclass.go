// Package charclass classifies UTF-8 bytes the way the YAML spec's
// character productions require: byte-indexed, not rune-indexed, so
// that scanning never allocates to decode a rune it is only going to
// test and discard.
package charclass

// Width reports the number of bytes in the UTF-8 sequence starting at b.
// It returns 0 for a continuation byte or an invalid leading byte.
func Width(b byte) int {
	switch {
	case b&0x80 == 0x00:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

// IsAlpha reports whether b[i] is alphanumeric, '_' or '-'.
func IsAlpha(b []byte, i int) bool {
	c := b[i]
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_' || c == '-'
}

// IsDigit reports whether b[i] is a decimal digit.
func IsDigit(b []byte, i int) bool {
	return b[i] >= '0' && b[i] <= '9'
}

// AsDigit returns the numeric value of the decimal digit at b[i].
func AsDigit(b []byte, i int) int {
	return int(b[i]) - '0'
}

// IsHex reports whether b[i] is a hex digit.
func IsHex(b []byte, i int) bool {
	c := b[i]
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'F' || c >= 'a' && c <= 'f'
}

// AsHex returns the numeric value of the hex digit at b[i].
func AsHex(b []byte, i int) int {
	c := b[i]
	switch {
	case c >= 'A' && c <= 'F':
		return int(c) - 'A' + 10
	case c >= 'a' && c <= 'f':
		return int(c) - 'a' + 10
	default:
		return int(c) - '0'
	}
}

// IsPrintable reports whether the rune starting at b[i] may appear
// unescaped in a double-quoted or plain scalar.
func IsPrintable(b []byte, i int) bool {
	c := b[i]
	switch {
	case c == 0x09 || c == 0x0A:
		return true
	case c >= 0x20 && c <= 0x7E:
		return true
	case c == 0xC2 && i+1 < len(b) && b[i+1] >= 0xA0:
		return true
	case c > 0xC2 && c < 0xED:
		return true
	case c == 0xED && i+1 < len(b) && b[i+1] < 0xA0:
		return true
	case c == 0xEE:
		return true
	case c == 0xEF && i+2 < len(b) &&
		!(b[i+1] == 0xBB && b[i+2] == 0xBF) &&
		!(b[i+1] == 0xBF && (b[i+2] == 0xBE || b[i+2] == 0xBF)):
		return true
	default:
		return false
	}
}

// IsBOM reports whether b begins with a UTF-8 byte order mark.
func IsBOM(b []byte) bool {
	return len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF
}

// IsSpace reports whether b[i] is an ASCII space.
func IsSpace(b []byte, i int) bool { return b[i] == ' ' }

// IsTab reports whether b[i] is a tab.
func IsTab(b []byte, i int) bool { return b[i] == '\t' }

// IsBlank reports whether b[i] is a space or tab.
func IsBlank(b []byte, i int) bool { return b[i] == ' ' || b[i] == '\t' }

// IsBreak reports whether the rune at b[i] is a line break: LF, CR, NEL,
// LS, or PS.
func IsBreak(b []byte, i int) bool {
	switch {
	case b[i] == '\r' || b[i] == '\n':
		return true
	case b[i] == 0xC2 && i+1 < len(b) && b[i+1] == 0x85:
		return true
	case b[i] == 0xE2 && i+2 < len(b) && b[i+1] == 0x80 && (b[i+2] == 0xA8 || b[i+2] == 0xA9):
		return true
	default:
		return false
	}
}

// BreakWidth returns the byte width of the line break at b[i], assuming
// IsBreak(b, i) is true. CRLF counts as a single two-byte break.
func BreakWidth(b []byte, i int) int {
	switch {
	case b[i] == '\r':
		if i+1 < len(b) && b[i+1] == '\n' {
			return 2
		}
		return 1
	case b[i] == '\n':
		return 1
	case b[i] == 0xC2:
		return 2
	default:
		return 3
	}
}

// IsBlankZ reports whether b[i] is blank, a line break, or past the end
// of the buffer.
func IsBlankZ(b []byte, i int) bool {
	if i >= len(b) {
		return true
	}
	return IsBlank(b, i) || IsBreak(b, i)
}

// IsBreakZ reports whether b[i] is a line break or past the end of the
// buffer.
func IsBreakZ(b []byte, i int) bool {
	if i >= len(b) {
		return true
	}
	return IsBreak(b, i)
}
