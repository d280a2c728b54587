package presenter

import "github.com/yamlcore/yamlcore/token"

// inlineSpan estimates the column width a container would occupy if
// rendered entirely in flow style, and returns the index of its
// matching End event. Used by Default style to decide, per spec.md
// §4.6, whether a container collapses to flow (estimate <= MaxLineLength)
// or spills to block. The estimate is cheap (punctuation plus raw
// content and tag length; quoting, escapes and anchors are not
// counted), not a byte-exact rendering — good enough for a
// collapse/no-collapse decision.
func inlineSpan(events []token.Event, start int) (length, end int) {
	depth := 0
	first := true
	for i := start; i < len(events); i++ {
		ev := events[i]
		switch ev.Type {
		case token.StartMappingEvent, token.StartSequenceEvent:
			if !first {
				length += 2 // ", "
			}
			length++ // "{" or "["
			depth++
			first = true
			continue
		case token.EndMappingEvent, token.EndSequenceEvent:
			depth--
			length++ // "}" or "]"
			first = false
			if depth == 0 {
				return length, i
			}
			continue
		case token.ScalarEvent:
			if !first {
				length += 2
			}
			length += len(ev.Content)
			if ev.Tag != "" {
				length += len(ev.Tag) + 1
			}
			first = false
		case token.AliasEvent:
			if !first {
				length += 2
			}
			length += 1 + len(ev.Target)
			first = false
		}
	}
	return length, len(events) - 1
}
