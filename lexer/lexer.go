// Package lexer tokenizes YAML source: directives, indentation, plain
// and quoted scalars, block scalars, flow indicators, tags, anchors,
// and aliases. It is context-sensitive — SetFlow toggles whether `,`
// separates items and whether `:`/`?` need trailing whitespace to act
// as indicators — because YAML's grammar itself is.
package lexer

import (
	"fmt"

	"github.com/yamlcore/yamlcore/bytesource"
	"github.com/yamlcore/yamlcore/internal/charclass"
	"github.com/yamlcore/yamlcore/internal/perr"
	"github.com/yamlcore/yamlcore/token"
)

// Error is raised for any illegal byte or malformed construct the lexer
// encounters. It always carries the offending line's full text and a
// 1-based line/column, per spec §7.
type Error struct {
	perr.Base
}

func (e *Error) Error() string { return e.Format() }

func (l *Lexer) newError(pos token.Position, format string, args ...interface{}) error {
	return &Error{perr.Base{
		Line:        pos.Line,
		Column:      pos.Column,
		LineContent: l.src.CurrentLineText(),
		Message:     fmt.Sprintf(format, args...),
	}}
}

// Lexer is the tokenizer. Reuse across tokens: Current and Buffer are
// only valid until the next call to NextToken.
type Lexer struct {
	src bytesource.Source
	buf []byte // shared reusable payload buffer

	flow bool // inside flow collection context

	atLineStart    bool
	lineIndent     int // column of the first non-space char on the current line, -1 before first line scanned
	prevLineIndent int // lineIndent's value before the current line overwrote it
	streamEnded    bool
	afterDocMarker bool // just consumed "---" or "...": next token may be an indentation or direct content

	Current token.Token
}

// New builds a Lexer over src. The caller owns src's lifetime.
func New(src bytesource.Source) *Lexer {
	return &Lexer{src: src, atLineStart: true, lineIndent: token.UnknownIndent, prevLineIndent: token.UnknownIndent}
}

// setLineIndent records col as the current line's indentation, keeping
// the previous line's indentation around in prevLineIndent — the bound
// a plain scalar that starts a fresh line (rather than continuing after
// other content on its own line) needs for deciding how long it folds,
// since by the time that scalar is scanned lineIndent already holds its
// own column rather than its parent construct's.
func (l *Lexer) setLineIndent(col int) {
	l.prevLineIndent = l.lineIndent
	l.lineIndent = col
}

// SetFlow tells the lexer whether subsequent tokens are scanned inside
// flow context: `,` becomes a separator, `:` need not be followed by
// whitespace to act as an indicator outside keys, and `[]{}` terminate
// plain scalars.
func (l *Lexer) SetFlow(flow bool) { l.flow = flow }

// Flow reports the lexer's current flow-context setting.
func (l *Lexer) Flow() bool { return l.flow }

// Buffer returns the payload of the current token. Valid only until the
// next NextToken call.
func (l *Lexer) Buffer() []byte { return l.Current.Value }

func (l *Lexer) resetBuf() []byte {
	l.buf = l.buf[:0]
	return l.buf
}

// CurrentLineText returns the full text of the line the lexer is
// positioned in, for callers (the parser) building their own positioned
// errors in the same style as the lexer's own.
func (l *Lexer) CurrentLineText() string { return l.src.CurrentLineText() }

// LineIndent returns the indentation (the 0-based count of leading
// spaces) of the line the lexer is currently positioned in, or
// UnknownIndent if no line has been scanned yet. The parser uses this
// as the baseline a block scalar's explicit indent indicator is
// relative to.
func (l *Lexer) LineIndent() int { return l.lineIndent }

func (l *Lexer) peek() (byte, bool)        { return l.src.PeekAt(0) }
func (l *Lexer) peekAt(n int) (byte, bool) { return l.src.PeekAt(n) }
func (l *Lexer) pos() token.Position       { return l.src.Position() }

// NextToken advances to the next token, populating Current.
func (l *Lexer) NextToken() error {
	if l.streamEnded {
		l.Current = token.Token{Kind: token.StreamEndToken, Start: l.pos(), End: l.pos()}
		return nil
	}

	for {
		if l.atLineStart {
			produced, err := l.scanLineStart()
			if err != nil {
				return err
			}
			if produced {
				return nil
			}
			continue
		}
		lineEnded, err := l.scanInline()
		if err != nil {
			return err
		}
		if lineEnded {
			l.atLineStart = true
			continue
		}
		return nil
	}
}

// scanLineStart consumes leading whitespace, classifies the line as
// empty, a directives-end/document-end marker, or ordinary content, and
// reports whether it produced a token (done=true) or merely updated
// state and wants scanInline called next.
func (l *Lexer) scanLineStart() (done bool, err error) {
	start := l.pos()
	col := 0
	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		if b == ' ' {
			l.src.Advance(1)
			col++
			continue
		}
		if b == '\t' {
			return false, l.newError(l.pos(), "tabs are not allowed as indentation")
		}
		break
	}

	b, ok := l.peek()
	if !ok {
		l.streamEnded = true
		l.Current = token.Token{Kind: token.StreamEndToken, Start: start, End: l.pos()}
		return true, nil
	}

	if charclass.IsBreak(l.lineOf(), 0) || b == '#' {
		// empty (possibly comment-only) line
		if b == '#' {
			l.skipComment()
		}
		l.consumeBreakIfAny()
		l.Current = token.Token{Kind: token.EmptyLineToken, Start: start, End: l.pos()}
		return true, nil
	}

	if col == 0 && !l.flow {
		if l.matchMarker("---") {
			l.setLineIndent(0)
			l.afterDocMarker = true
			l.Current = token.Token{Kind: token.DirectivesEndToken, Start: start, End: l.pos()}
			l.finishMarkerLine()
			return true, nil
		}
		if l.matchMarker("...") {
			l.setLineIndent(0)
			l.afterDocMarker = true
			l.Current = token.Token{Kind: token.DocumentEndToken, Start: start, End: l.pos()}
			l.finishMarkerLine()
			return true, nil
		}
		if b == '%' {
			return true, l.scanDirectiveInto(start)
		}
	}

	l.setLineIndent(col)
	l.atLineStart = false
	l.Current = token.Token{Kind: token.IndentationToken, Start: start, End: l.pos(), Indent: col}
	return true, nil
}

// lineOf returns a multi-byte window at the cursor suitable for
// charclass.IsBreak/IsBlankZ calls that expect a slice+index pair.
func (l *Lexer) lineOf() []byte { return l.windowAt(0) }

// windowAt returns a multi-byte window starting at offset n from the
// cursor, long enough for charclass's lookahead (CRLF, NEL, LS/PS).
func (l *Lexer) windowAt(n int) []byte {
	var tmp [4]byte
	count := 0
	for count < 4 {
		b, ok := l.peekAt(n + count)
		if !ok {
			break
		}
		tmp[count] = b
		count++
	}
	return tmp[:count]
}

func (l *Lexer) consumeBreakIfAny() {
	w := charclass.BreakWidth(l.lineOf(), 0)
	if w == 0 {
		return
	}
	if !charclass.IsBreak(l.lineOf(), 0) {
		return
	}
	l.src.Advance(w)
}

func (l *Lexer) matchMarker(marker string) bool {
	for i := 0; i < len(marker); i++ {
		b, ok := l.peekAt(i)
		if !ok || b != marker[i] {
			return false
		}
	}
	n := len(marker)
	b, ok := l.peekAt(n)
	if ok && !charclass.IsBlankZ([]byte{b}, 0) {
		return false
	}
	l.src.Advance(n)
	return true
}

// finishMarkerLine runs right after a "---"/"..." marker: if only
// blanks/a comment/a break follow, it consumes them so the next
// NextToken call starts fresh on the following line; if real content
// follows on the same line (e.g. "--- a"), it leaves the cursor in
// place and clears atLineStart so scanInline picks up that content.
func (l *Lexer) finishMarkerLine() {
	l.skipBlanks()
	if b, ok := l.peek(); ok && b == '#' {
		l.skipComment()
	}
	if _, ok := l.peek(); !ok {
		return
	}
	if charclass.IsBreak(l.lineOf(), 0) {
		l.consumeBreakIfAny()
		return
	}
	l.atLineStart = false
}

func (l *Lexer) skipComment() {
	for {
		b, ok := l.peek()
		if !ok || charclass.IsBreak(l.lineOf(), 0) {
			return
		}
		_ = b
		l.src.Advance(1)
	}
}

func (l *Lexer) skipBlanks() {
	for {
		b, ok := l.peek()
		if !ok || b != ' ' {
			return
		}
		l.src.Advance(1)
	}
}

// EndBlockScalar tells the lexer that the parser has consumed a
// block-scalar-header token's content and inline scanning should
// resume on whatever line follows the scalar body. In this
// implementation the header token already contains the fully-scanned
// body (see scanBlockScalarHeader), so EndBlockScalar is a no-op kept
// for interface parity with the spec; it's safe to call unconditionally
// after consuming a BlockScalarHeaderToken.
func (l *Lexer) EndBlockScalar() {}
