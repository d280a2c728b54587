package lexer

import (
	"github.com/yamlcore/yamlcore/internal/charclass"
	"github.com/yamlcore/yamlcore/token"
)

// scanAnchorOrAlias scans `&name` or `*name`.
func (l *Lexer) scanAnchorOrAlias(start token.Position, isAlias bool) error {
	l.src.Advance(1) // '&' or '*'
	buf := l.resetBuf()
	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		if l.flow && isFlowIndicator(b) {
			break
		}
		if charclass.IsBlankZ(l.lineOf(), 0) || b == ':' && l.followedByBlankOrEOF(1) {
			break
		}
		if !charclass.IsAlpha([]byte{b}, 0) {
			return l.newError(l.pos(), "invalid character %q in anchor/alias name", rune(b))
		}
		buf = append(buf, b)
		l.src.Advance(1)
	}
	if len(buf) == 0 {
		return l.newError(start, "anchor/alias name must not be empty")
	}
	kind := token.AnchorToken
	if isAlias {
		kind = token.AliasToken
	}
	l.buf = buf
	l.Current = token.Token{Kind: kind, Start: start, End: l.pos(), Value: buf}
	return nil
}

// scanTag scans `!`, `!suffix`, `!handle!suffix`, or `!<verbatim>`.
// For shorthand forms, Value holds "<handle><suffix>" concatenated and
// ShorthandEnd is the byte offset within Value where the handle ends
// (i.e. where suffix begins). VerbatimTagToken's Value holds just the
// URI, with the surrounding `!<`/`>` stripped.
func (l *Lexer) scanTag(start token.Position) error {
	l.src.Advance(1) // '!'

	if b, ok := l.peek(); ok && b == '<' {
		l.src.Advance(1)
		buf := l.resetBuf()
		for {
			b, ok := l.peek()
			if !ok || b == '>' {
				break
			}
			if charclass.IsBlankZ(l.lineOf(), 0) {
				return l.newError(l.pos(), "unterminated verbatim tag")
			}
			buf = append(buf, b)
			l.src.Advance(1)
		}
		if b, ok := l.peek(); !ok || b != '>' {
			return l.newError(l.pos(), "verbatim tag must end with '>'")
		}
		l.src.Advance(1)
		l.Current = token.Token{Kind: token.VerbatimTagToken, Start: start, End: l.pos(), Value: buf}
		return nil
	}

	// Determine whether this is a named handle (!foo!suffix) by scanning
	// forward for a second '!' before any flow/blank terminator.
	handleLen := -1
	for i := 0; ; i++ {
		b, ok := l.peekAt(i)
		if !ok || charclass.IsBlankZ([]byte{b}, 0) || (l.flow && isFlowIndicator(b)) {
			break
		}
		if b == '!' {
			handleLen = i + 1
			break
		}
		if !charclass.IsAlpha([]byte{b}, 0) {
			break
		}
	}

	var handle string
	if handleLen > 0 {
		hb := make([]byte, handleLen)
		for i := 0; i < handleLen; i++ {
			b, _ := l.peekAt(i)
			hb[i] = b
		}
		handle = "!" + string(hb)
		l.src.Advance(handleLen)
	} else {
		handle = "!"
	}

	buf := []byte(handle)
	shorthandEnd := len(buf)
	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		if l.flow && isFlowIndicator(b) {
			break
		}
		if charclass.IsBlankZ(l.lineOf(), 0) {
			break
		}
		buf = append(buf, b)
		l.src.Advance(1)
	}

	l.Current = token.Token{
		Kind:         token.TagHandleToken,
		Start:        start,
		End:          l.pos(),
		Value:        buf,
		ShorthandEnd: shorthandEnd,
	}
	return nil
}
