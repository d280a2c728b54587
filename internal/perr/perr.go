// Package perr implements the positioned-error rendering shared by every
// boundary error type in the module (lexer, parser, presenter, event
// stream, DOM): line, 1-based column, the complete source line, and a
// caret under the offending column.
package perr

import (
	"fmt"
	"strings"
)

// Base is embedded by each package's exported error type.
type Base struct {
	Line        int
	Column      int
	LineContent string
	Message     string
	Cause       error
}

func (b Base) Unwrap() error { return b.Cause }

// Format renders the standard "<message> at line L, column C" text,
// followed by "\n<line>\n<caret>" when LineContent is set and by
// ": <cause>" when Cause is set.
func (b Base) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at line %d, column %d", b.Message, b.Line, b.Column)
	if b.LineContent != "" {
		sb.WriteByte('\n')
		sb.WriteString(b.LineContent)
		sb.WriteByte('\n')
		col := b.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", col-1))
		sb.WriteByte('^')
	}
	if b.Cause != nil {
		fmt.Fprintf(&sb, ": %v", b.Cause)
	}
	return sb.String()
}
