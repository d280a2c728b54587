package lexer

import (
	"strings"

	"github.com/yamlcore/yamlcore/internal/charclass"
	"github.com/yamlcore/yamlcore/token"
)

// scanBlockScalarHeader parses the chomping/indent indicators after `|`
// or `>`, then immediately reads the scalar's body (see EndBlockScalar's
// doc comment for why header and body are a single token here).
func (l *Lexer) scanBlockScalarHeader(start token.Position, literal bool) error {
	l.src.Advance(1) // consume '|' or '>'

	chomp := token.ClipChomping
	indent := token.UnknownIndent
	haveChomp, haveIndent := false, false

	for i := 0; i < 2; i++ {
		b, ok := l.peek()
		if !ok {
			break
		}
		switch {
		case (b == '+' || b == '-') && !haveChomp:
			if b == '+' {
				chomp = token.KeepChomping
			} else {
				chomp = token.StripChomping
			}
			haveChomp = true
			l.src.Advance(1)
		case b >= '1' && b <= '9' && !haveIndent:
			indent = int(b - '0')
			haveIndent = true
			l.src.Advance(1)
		default:
			i = 2 // break outer loop
		}
	}

	l.skipBlanks()
	if b, ok := l.peek(); ok && b == '#' {
		l.skipComment()
	}
	if b, ok := l.peek(); ok && !charclass.IsBreak(l.lineOf(), 0) {
		return l.newError(l.pos(), "unexpected character %q after block scalar header", rune(b))
	}
	l.consumeBreakIfAny()

	parentIndent := l.lineIndent
	if parentIndent == token.UnknownIndent {
		parentIndent = 0
	}

	var bodyIndent int
	if haveIndent {
		bodyIndent = parentIndent + indent
	} else {
		bodyIndent = l.detectBlockScalarIndent(parentIndent)
	}

	content, err := l.readBlockScalarBody(bodyIndent, literal, chomp)
	if err != nil {
		return err
	}

	style := token.FoldedScalarStyle
	if literal {
		style = token.LiteralScalarStyle
	}
	l.Current = token.Token{
		Kind:         token.BlockScalarHeaderToken,
		Start:        start,
		End:          l.pos(),
		Value:        content,
		Chomp:        chomp,
		Indent:       bodyIndent,
		HasIndicator: haveIndent,
		ScalarStyle:  style,
	}
	// A block scalar always ends a line; the lexer is now positioned at
	// the start of whatever line follows.
	l.atLineStart = true
	return nil
}

// detectBlockScalarIndent scans ahead (without consuming) to find the
// leading-space count of the first non-empty line, returning
// parentIndent if every following line is blank or end of input.
func (l *Lexer) detectBlockScalarIndent(parentIndent int) int {
	offset := 0
	best := parentIndent
	for {
		col := 0
		for {
			b, ok := l.peekAt(offset + col)
			if !ok || b != ' ' {
				break
			}
			col++
		}
		w := l.windowAt(offset + col)
		if len(w) == 0 {
			return best
		}
		if charclass.IsBreak(w, 0) {
			offset += col + charclass.BreakWidth(w, 0)
			continue
		}
		if col > parentIndent {
			return col
		}
		return best
	}
}

func (l *Lexer) readBlockScalarBody(bodyIndent int, literal bool, chomp token.Chomping) ([]byte, error) {
	var out []byte
	pendingBreaks := 0
	started := false
	prevMoreIndented := false

	for {
		col, ok := l.peekLeadingSpaces()
		if !ok {
			break // end of input
		}
		w := l.windowAt(col)
		atBreakOrEOF := len(w) == 0 || charclass.IsBreak(w, 0)
		if atBreakOrEOF {
			l.src.Advance(col)
			if w2 := l.lineOf(); len(w2) > 0 {
				l.src.Advance(charclass.BreakWidth(w2, 0))
				pendingBreaks++
				continue
			}
			break
		}
		if col < bodyIndent {
			break // this line belongs to the next token
		}

		moreIndented := col > bodyIndent
		switch {
		case !started:
			out = append(out, strings.Repeat("\n", pendingBreaks)...)
		case literal:
			out = append(out, strings.Repeat("\n", pendingBreaks)...)
		case moreIndented || prevMoreIndented:
			out = append(out, strings.Repeat("\n", pendingBreaks)...)
		case pendingBreaks == 1:
			out = append(out, ' ')
		default:
			out = append(out, strings.Repeat("\n", pendingBreaks-1)...)
		}

		started = true
		prevMoreIndented = moreIndented
		pendingBreaks = 0
		l.src.Advance(col)

		for {
			b, ok := l.peek()
			if !ok || charclass.IsBreak(l.lineOf(), 0) {
				break
			}
			out = append(out, b)
			l.src.Advance(1)
		}
		if w3 := l.lineOf(); len(w3) > 0 {
			l.src.Advance(charclass.BreakWidth(w3, 0))
			pendingBreaks = 1
		} else {
			break
		}
	}

	switch chomp {
	case token.KeepChomping:
		out = append(out, strings.Repeat("\n", pendingBreaks)...)
	case token.ClipChomping:
		if started && pendingBreaks > 0 {
			out = append(out, '\n')
		}
	case token.StripChomping:
		// nothing
	}
	return out, nil
}

// peekLeadingSpaces counts the run of ' ' bytes starting at the cursor.
// ok is false only when there is nothing left to read at all.
func (l *Lexer) peekLeadingSpaces() (int, bool) {
	if _, ok := l.peek(); !ok {
		return 0, false
	}
	col := 0
	for {
		b, ok := l.peekAt(col)
		if !ok || b != ' ' {
			break
		}
		col++
	}
	return col, true
}
