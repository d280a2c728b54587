package lexer

import (
	"github.com/yamlcore/yamlcore/internal/charclass"
	"github.com/yamlcore/yamlcore/token"
)

// scanPlainScalar scans an unquoted scalar. It terminates at: a `:`
// indicator (only if followed by whitespace, a line end, or, in flow
// context, a flow indicator), a `#` comment (only if preceded by
// whitespace), a flow indicator in flow context, or a line whose
// indentation drops to or below the enclosing construct's.
//
// Trailing whitespace before a break is never part of the value;
// breaks fold the same way a quoted scalar's unescaped breaks do.
func (l *Lexer) scanPlainScalar(start token.Position) error {
	buf := l.resetBuf()
	pendingBreaks := 0
	pendingSpaces := 0

	// If this scalar is itself the first content on its line (no key or
	// sequence indicator precedes it there), l.lineIndent already holds
	// this scalar's own column rather than the enclosing construct's —
	// fold against the line that came before it instead, or a
	// continuation at the same column would wrongly look under-indented.
	foldIndent := l.lineIndent
	if start.Column-1 == l.lineIndent {
		foldIndent = l.prevLineIndent
	}

	flush := func() {
		switch {
		case pendingBreaks == 0:
			for i := 0; i < pendingSpaces; i++ {
				buf = append(buf, ' ')
			}
		case pendingBreaks == 1:
			buf = append(buf, ' ')
		default:
			for i := 0; i < pendingBreaks-1; i++ {
				buf = append(buf, '\n')
			}
		}
		pendingBreaks, pendingSpaces = 0, 0
	}

	for {
		b, ok := l.peek()
		if !ok {
			break
		}

		if charclass.IsBreak(l.lineOf(), 0) {
			w := charclass.BreakWidth(l.lineOf(), 0)
			l.src.Advance(w)
			pendingSpaces = 0
			pendingBreaks++
			// A plain scalar may continue on a more-indented following
			// line; scanLineStart will be re-entered to find out. We
			// peek ahead here only to decide whether to stop: a line
			// that turns out to be less indented, a document marker, or
			// blank ends the scalar.
			if !l.plainScalarContinues(foldIndent) {
				// cursor is already at the start of the following line
				l.atLineStart = true
				break
			}
			continue
		}
		if charclass.IsBlank(l.lineOf(), 0) {
			pendingSpaces++
			l.src.Advance(1)
			continue
		}
		if b == ':' && l.followedByBlankOrEOF(1) {
			break
		}
		if b == '#' && pendingSpaces > 0 {
			break
		}
		if l.flow && isFlowIndicator(b) {
			break
		}

		flush()
		buf = append(buf, b)
		l.src.Advance(1)
	}

	l.buf = buf
	l.Current = token.Token{Kind: token.PlainScalarToken, Start: start, End: l.pos(), Value: buf, ScalarStyle: token.PlainScalarStyle}
	return nil
}

// plainScalarContinues peeks past leading spaces on the line following
// a break to decide whether the plain scalar continues there: it does
// unless the line is blank, a document marker, a directive, or indented
// no deeper than baseIndent (the indentation of the construct the
// scalar belongs to).
func (l *Lexer) plainScalarContinues(baseIndent int) bool {
	col := 0
	for {
		b, ok := l.peekAt(col)
		if !ok || b != ' ' {
			break
		}
		col++
	}
	b, ok := l.peekAt(col)
	if !ok {
		return false
	}
	w := l.windowAt(col)
	if charclass.IsBreak(w, 0) {
		return false // blank line
	}
	if col == 0 {
		if l.matchesAt(col, "---") || l.matchesAt(col, "...") || b == '%' {
			return false
		}
	}
	if col <= baseIndent {
		return false
	}
	return true
}

func (l *Lexer) matchesAt(offset int, marker string) bool {
	for i := 0; i < len(marker); i++ {
		b, ok := l.peekAt(offset + i)
		if !ok || b != marker[i] {
			return false
		}
	}
	b, ok := l.peekAt(offset + len(marker))
	return !ok || charclass.IsBlankZ([]byte{b}, 0)
}
