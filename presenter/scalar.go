package presenter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yamlcore/yamlcore/token"
	"github.com/yamlcore/yamlcore/typehint"
)

// scalarFlags mirrors the teacher's internal/emitter/analyze.go
// analyzeScalar output: a single pass over the content deciding which
// styles remain legal.
type scalarFlags struct {
	multiline           bool
	flowPlainAllowed    bool
	blockPlainAllowed   bool
	singleQuotedAllowed bool
	blockAllowed        bool
	leadingWhitespace   bool
	trailingSpace       bool
	longestLine         int
}

func analyzeScalar(value string) scalarFlags {
	var f scalarFlags
	if value == "" {
		f.blockPlainAllowed = true
		f.singleQuotedAllowed = true
		return f
	}

	f.flowPlainAllowed = true
	f.blockPlainAllowed = true
	f.singleQuotedAllowed = true
	f.blockAllowed = true

	var blockIndicators, flowIndicators, lineBreaks, special, tabs bool
	var leadingSpace, leadingBreak, trailingSpaceFlag, trailingBreak bool
	var breakSpace, spaceBreak bool
	var precededByWhitespace, previousSpace, previousBreak bool

	if len(value) >= 3 && (strings.HasPrefix(value, "---") || strings.HasPrefix(value, "...")) {
		blockIndicators, flowIndicators = true, true
	}

	precededByWhitespace = true
	lineLen := 0
	for i := 0; i < len(value); {
		r, w := utf8.DecodeRuneInString(value[i:])
		followedByWhitespace := i+w >= len(value)
		if i+w < len(value) {
			nr, _ := utf8.DecodeRuneInString(value[i+w:])
			followedByWhitespace = isBlankRune(nr)
		}

		if i == 0 {
			switch r {
			case '#', ',', '[', ']', '{', '}', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
				flowIndicators, blockIndicators = true, true
			case '?', ':':
				flowIndicators = true
				if followedByWhitespace {
					blockIndicators = true
				}
			case '-':
				if followedByWhitespace {
					flowIndicators, blockIndicators = true, true
				}
			}
		} else {
			switch r {
			case ',', '?', '[', ']', '{', '}':
				flowIndicators = true
			case ':':
				flowIndicators = true
				if followedByWhitespace {
					blockIndicators = true
				}
			case '#':
				if precededByWhitespace {
					flowIndicators, blockIndicators = true, true
				}
			}
		}

		if r == '\t' {
			tabs = true
		} else if !isPrintableRune(r) {
			special = true
		}

		switch {
		case r == ' ':
			if i == 0 {
				leadingSpace = true
			}
			if i+w == len(value) {
				trailingSpaceFlag = true
			}
			if previousBreak {
				breakSpace = true
			}
			previousSpace, previousBreak = true, false
			lineLen++
		case r == '\n':
			lineBreaks = true
			if i == 0 {
				leadingBreak = true
			}
			if i+w == len(value) {
				trailingBreak = true
			}
			if previousSpace {
				spaceBreak = true
			}
			previousSpace, previousBreak = false, true
			if lineLen > f.longestLine {
				f.longestLine = lineLen
			}
			lineLen = 0
		default:
			previousSpace, previousBreak = false, false
			lineLen++
		}

		precededByWhitespace = isBlankRune(r) || r == '\n'
		i += w
	}
	if lineLen > f.longestLine {
		f.longestLine = lineLen
	}

	f.multiline = lineBreaks
	f.leadingWhitespace = leadingSpace || leadingBreak
	f.trailingSpace = trailingSpaceFlag

	if leadingSpace || leadingBreak || trailingSpaceFlag || trailingBreak {
		f.flowPlainAllowed, f.blockPlainAllowed = false, false
	}
	if trailingSpaceFlag {
		f.blockAllowed = false
	}
	if breakSpace {
		f.flowPlainAllowed, f.blockPlainAllowed, f.singleQuotedAllowed = false, false, false
	}
	if spaceBreak || tabs || special {
		f.flowPlainAllowed, f.blockPlainAllowed, f.singleQuotedAllowed = false, false, false
	}
	if spaceBreak || special {
		f.blockAllowed = false
	}
	if lineBreaks {
		f.flowPlainAllowed, f.blockPlainAllowed = false, false
	}
	if flowIndicators {
		f.flowPlainAllowed = false
	}
	if blockIndicators {
		f.blockPlainAllowed = false
	}
	return f
}

func isBlankRune(r rune) bool { return r == ' ' || r == '\t' }

func isPrintableRune(r rune) bool {
	switch {
	case r == '\n' || r == '\t':
		return true
	case r >= 0x20 && r <= 0x7e:
		return true
	case r == 0x85 || (r >= 0xa0 && r <= 0xd7ff) || (r >= 0xe000 && r <= 0xfffd):
		return true
	case r >= 0x10000 && r <= 0x10ffff:
		return true
	default:
		return false
	}
}

// chooseScalarStyle picks an output style for a scalar given the
// presenter's overall Style and whether the scalar's type is already
// settled — by an explicit tag, or because the scalar was read plain and
// untagged, so a plain rendering resolves it the same way again (in
// either case plain-style type ambiguity with the core schema doesn't
// matter).
func (p *Presenter) chooseScalarStyle(value string, typeSettled bool, inFlowContext bool) (token.ScalarStyle, error) {
	switch p.opts.Style {
	case JSON:
		k := typehint.Guess(value)
		if k == typehint.Inf || k == typehint.NaN {
			return 0, jsonErr("JSON output cannot represent %s", k)
		}
		return token.DoubleQuotedScalarStyle, nil
	case Canonical:
		return token.DoubleQuotedScalarStyle, nil
	}

	f := analyzeScalar(value)
	plainOK := f.flowPlainAllowed
	if !inFlowContext {
		plainOK = f.blockPlainAllowed
	}
	// A plain scalar that would resolve to something other than a
	// string under the core schema needs quoting unless its type is
	// already settled.
	if plainOK && !typeSettled && typehint.Guess(value) != typehint.Unknown {
		plainOK = false
	}

	switch p.opts.Style {
	case Minimal:
		if plainOK {
			return token.PlainScalarStyle, nil
		}
		if f.singleQuotedAllowed {
			return token.SingleQuotedScalarStyle, nil
		}
		return token.DoubleQuotedScalarStyle, nil

	case BlockOnly:
		if f.blockAllowed && f.multiline && !f.leadingWhitespace {
			return token.LiteralScalarStyle, nil
		}
		if plainOK {
			return token.PlainScalarStyle, nil
		}
		if f.singleQuotedAllowed {
			return token.SingleQuotedScalarStyle, nil
		}
		return token.DoubleQuotedScalarStyle, nil

	default: // Default
		if f.blockAllowed && f.multiline && !inFlowContext {
			if !f.leadingWhitespace && f.longestLine <= p.opts.maxLineLength() {
				return token.LiteralScalarStyle, nil
			}
			return token.FoldedScalarStyle, nil
		}
		if plainOK {
			return token.PlainScalarStyle, nil
		}
		if f.singleQuotedAllowed {
			return token.SingleQuotedScalarStyle, nil
		}
		return token.DoubleQuotedScalarStyle, nil
	}
}

func (p *Presenter) writeScalarContent(style token.ScalarStyle, value string, indentCol int) {
	switch style {
	case token.PlainScalarStyle:
		p.w.str(value)
	case token.SingleQuotedScalarStyle:
		p.w.byte('\'')
		p.w.str(strings.ReplaceAll(value, "'", "''"))
		p.w.byte('\'')
	case token.DoubleQuotedScalarStyle:
		p.writeDoubleQuoted(value)
	case token.LiteralScalarStyle:
		p.writeBlockScalar('|', value, indentCol)
	case token.FoldedScalarStyle:
		p.writeBlockScalar('>', value, indentCol)
	default:
		p.w.str(value)
	}
}

func (p *Presenter) writeDoubleQuoted(value string) {
	p.w.byte('"')
	for _, r := range value {
		if r != '\n' && r != '\t' && r != '\r' && jsonNeedsUnicodeEscape(p.opts.Style, r) {
			p.w.str(fmt.Sprintf(`\u%04X`, r))
			continue
		}
		switch r {
		case '"':
			p.w.str(`\"`)
		case '\\':
			p.w.str(`\\`)
		case '\n':
			p.w.str(`\n`)
		case '\t':
			p.w.str(`\t`)
		case '\r':
			p.w.str(`\r`)
		case 0:
			p.w.str(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				p.w.str(fmt.Sprintf(`\x%02X`, r))
			} else {
				p.w.str(string(r))
			}
		}
	}
	p.w.byte('"')
}

func jsonNeedsUnicodeEscape(s Style, r rune) bool {
	if s != JSON {
		return false
	}
	return r < 0x20 || r == 0x7f
}

// writeBlockScalar writes a literal or folded block scalar body with
// the default Clip chomping: the header carries no chomping indicator,
// so a reparse yields exactly one trailing line break, whatever trailing
// line breaks the value itself had.
func (p *Presenter) writeBlockScalar(indicator byte, value string, indentCol int) {
	p.w.byte(indicator)
	p.w.newline()
	lines := strings.Split(strings.TrimRight(value, "\n"), "\n")
	for _, line := range lines {
		if line != "" {
			p.w.indent(indentCol)
			p.w.str(line)
		}
		p.w.newline()
	}
}
