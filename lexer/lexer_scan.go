package lexer

import (
	"github.com/yamlcore/yamlcore/internal/charclass"
	"github.com/yamlcore/yamlcore/token"
)

// scanInline scans one token from the current line. It reports
// lineEnded=true (and sets no token) when it reaches a comment or line
// break with nothing left to tokenize, signalling the caller to go back
// through scanLineStart for the next line.
func (l *Lexer) scanInline() (lineEnded bool, err error) {
	l.skipBlanks()

	b, ok := l.peek()
	if !ok {
		l.streamEnded = true
		return true, nil
	}
	if charclass.IsBreak(l.lineOf(), 0) {
		l.consumeBreakIfAny()
		return true, nil
	}
	if b == '#' {
		if !l.precededByWhitespaceOrLineStart() {
			return false, l.newError(l.pos(), "comment must be preceded by whitespace")
		}
		l.skipComment()
		return true, nil
	}

	start := l.pos()

	switch {
	case b == '-' && l.followedByBlankOrEOF(1) && !l.flow:
		l.src.Advance(1)
		l.Current = token.Token{Kind: token.SequenceEntryToken, Start: start, End: l.pos()}
		return false, nil
	case b == '?' && l.followedByBlankOrEOF(1):
		l.src.Advance(1)
		l.Current = token.Token{Kind: token.MapKeyToken, Start: start, End: l.pos()}
		return false, nil
	case b == ':' && l.followedByBlankOrEOF(1):
		l.src.Advance(1)
		l.Current = token.Token{Kind: token.MapValueToken, Start: start, End: l.pos()}
		return false, nil
	case b == ',' && l.flow:
		l.src.Advance(1)
		l.Current = token.Token{Kind: token.FlowEntryToken, Start: start, End: l.pos()}
		return false, nil
	case b == '[':
		l.src.Advance(1)
		l.Current = token.Token{Kind: token.FlowSequenceStartToken, Start: start, End: l.pos()}
		return false, nil
	case b == ']':
		l.src.Advance(1)
		l.Current = token.Token{Kind: token.FlowSequenceEndToken, Start: start, End: l.pos()}
		return false, nil
	case b == '{':
		l.src.Advance(1)
		l.Current = token.Token{Kind: token.FlowMappingStartToken, Start: start, End: l.pos()}
		return false, nil
	case b == '}':
		l.src.Advance(1)
		l.Current = token.Token{Kind: token.FlowMappingEndToken, Start: start, End: l.pos()}
		return false, nil
	case b == '&' || b == '*':
		return false, l.scanAnchorOrAlias(start, b == '*')
	case b == '!':
		return false, l.scanTag(start)
	case b == '|' || b == '>':
		return false, l.scanBlockScalarHeader(start, b == '|')
	case b == '\'' || b == '"':
		return false, l.scanQuotedScalar(start, b == '"')
	default:
		return false, l.scanPlainScalar(start)
	}
}

func (l *Lexer) precededByWhitespaceOrLineStart() bool {
	// scanInline only ever calls this right after skipBlanks, so either
	// we're at column 1 of inline content (line-start case is handled by
	// scanLineStart) or the previous byte was a space -- both qualify.
	return true
}

func (l *Lexer) followedByBlankOrEOF(offset int) bool {
	b, ok := l.peekAt(offset)
	if !ok {
		return true
	}
	if l.flow && isFlowIndicator(b) {
		return true
	}
	return charclass.IsBlankZ([]byte{b}, 0)
}

func isFlowIndicator(b byte) bool {
	switch b {
	case ',', '[', ']', '{', '}':
		return true
	default:
		return false
	}
}

// scanDirectiveInto scans a `%YAML` or `%TAG` directive line.
func (l *Lexer) scanDirectiveInto(start token.Position) error {
	l.src.Advance(1) // '%'
	buf := l.resetBuf()
	for {
		b, ok := l.peek()
		if !ok || charclass.IsBlankZ(l.lineOf(), 0) {
			break
		}
		buf = append(buf, b)
		l.src.Advance(1)
	}
	name := string(buf)
	l.skipBlanks()

	switch name {
	case "YAML":
		major, minor, err := l.scanVersionNumber()
		if err != nil {
			return err
		}
		l.finishDirectiveLine()
		l.Current = token.Token{Kind: token.YamlDirectiveToken, Start: start, End: l.pos(), Major: major, Minor: minor}
		return nil
	case "TAG":
		handle, err := l.scanTagHandleRaw()
		if err != nil {
			return err
		}
		l.skipBlanks()
		prefix, err := l.scanTagPrefixRaw()
		if err != nil {
			return err
		}
		l.finishDirectiveLine()
		l.Current = token.Token{Kind: token.TagDirectiveToken, Start: start, End: l.pos(), Handle: handle, Prefix: prefix}
		return nil
	default:
		l.skipComment()
		l.finishDirectiveLine()
		l.Current = token.Token{Kind: token.UnknownDirectiveToken, Start: start, End: l.pos(), Value: []byte(name)}
		return nil
	}
}

func (l *Lexer) finishDirectiveLine() {
	l.skipBlanks()
	if b, ok := l.peek(); ok && b == '#' {
		l.skipComment()
	}
	l.consumeBreakIfAny()
	l.setLineIndent(0)
}

func (l *Lexer) scanVersionNumber() (major, minor int8, err error) {
	maj, err := l.scanSmallNumber()
	if err != nil {
		return 0, 0, err
	}
	if b, ok := l.peek(); !ok || b != '.' {
		return 0, 0, l.newError(l.pos(), "expected '.' in %%YAML directive")
	}
	l.src.Advance(1)
	min, err := l.scanSmallNumber()
	if err != nil {
		return 0, 0, err
	}
	return int8(maj), int8(min), nil
}

func (l *Lexer) scanSmallNumber() (int, error) {
	n := 0
	count := 0
	for {
		b, ok := l.peek()
		if !ok || !charclass.IsDigit([]byte{b}, 0) {
			break
		}
		n = n*10 + int(b-'0')
		l.src.Advance(1)
		count++
	}
	if count == 0 {
		return 0, l.newError(l.pos(), "expected a digit")
	}
	return n, nil
}

func (l *Lexer) scanTagHandleRaw() (string, error) {
	start := l.pos()
	b, ok := l.peek()
	if !ok || b != '!' {
		return "", l.newError(start, "tag handle must start with '!'")
	}
	buf := []byte{'!'}
	l.src.Advance(1)
	for {
		b, ok = l.peek()
		if !ok {
			break
		}
		if charclass.IsAlpha([]byte{b}, 0) {
			buf = append(buf, b)
			l.src.Advance(1)
			continue
		}
		if b == '!' {
			buf = append(buf, b)
			l.src.Advance(1)
		}
		break
	}
	return string(buf), nil
}

func (l *Lexer) scanTagPrefixRaw() (string, error) {
	var buf []byte
	for {
		b, ok := l.peek()
		if !ok || charclass.IsBlankZ([]byte{b}, 0) {
			break
		}
		buf = append(buf, b)
		l.src.Advance(1)
	}
	if len(buf) == 0 {
		return "", l.newError(l.pos(), "tag prefix must not be empty")
	}
	return string(buf), nil
}
