package parser

import "github.com/yamlcore/yamlcore/token"

// parseNode reads one complete node — scalar, alias, block or flow
// collection — starting at p.cur, and queues its events. minIndent is
// the least indentation this node's own markers must sit at or past
// (the parent container's column); it is only consulted by callers that
// already know p.cur sits on a fresh line at exactly the right column,
// so parseNode itself doesn't need to re-check it.
//
// keyOnly is set when this call is reading a mapping key rather than a
// value: a bare scalar key is never allowed to open its own nested
// mapping just because a ':' happens to follow it somewhere — that ':'
// belongs to the entry the caller is already assembling.
func (p *Parser) parseNode(minIndent int, keyOnly bool) error {
	if err := p.collectAnchorTag(); err != nil {
		return err
	}
	anchor, tag := p.pendingAnchor, p.pendingTag

	switch p.cur.Kind {
	case token.AliasToken:
		return p.emitAlias(anchor, tag)

	case token.SequenceEntryToken:
		return p.parseBlockSequence(p.col, anchor, tag)

	case token.MapKeyToken:
		return p.parseExplicitBlockMapping(p.col, anchor, tag)

	case token.FlowSequenceStartToken:
		return p.parseFlowSequence(anchor, tag)

	case token.FlowMappingStartToken:
		return p.parseFlowMapping(anchor, tag)

	case token.PlainScalarToken, token.QuotedScalarToken, token.BlockScalarHeaderToken:
		scalarTok := p.cur
		scalarCol := p.col
		if err := p.advance(); err != nil {
			return err
		}
		if !keyOnly && p.cur.Kind == token.MapValueToken {
			return p.parseBlockMapping(scalarCol, scalarTok, anchor, tag)
		}
		return p.emitScalar(scalarTok, anchor, tag)

	default:
		return p.errorf(p.cur.Start, "unexpected token %s where a node was expected", p.cur.Kind)
	}
}

func (p *Parser) emitScalar(tok token.Token, anchor, tag string) error {
	if err := p.registerAnchor(tok.Start, anchor); err != nil {
		return err
	}
	ev := token.Event{
		Type:            token.ScalarEvent,
		Start:           tok.Start,
		End:             tok.End,
		Content:         string(tok.Value),
		Anchor:          anchor,
		Tag:             tag,
		ScalarStyleHint: tok.ScalarStyle,
	}
	switch {
	case tag != "":
		// explicit tag: no inference needed.
	case tok.ScalarStyle == token.PlainScalarStyle || tok.Kind == token.BlockScalarHeaderToken && tok.ScalarStyle == token.LiteralScalarStyle:
		ev.Implicit = true
	default:
		ev.QuotedImplicit = true
	}
	p.emit(ev)
	return nil
}

// emptyScalar synthesizes the implicit-null scalar event YAML allows in
// place of a genuinely empty node: "key:" with nothing after it, "- "
// with nothing indented under it, and the like.
func (p *Parser) emptyScalar(at token.Position, anchor, tag string) error {
	if err := p.registerAnchor(at, anchor); err != nil {
		return err
	}
	p.emit(token.Event{
		Type: token.ScalarEvent, Start: at, End: at,
		Anchor: anchor, Tag: tag, Implicit: tag == "",
	})
	return nil
}

// blockItemStart reports whether, after consuming a "-" or ":"
// indicator, the token now in p.cur begins that item's content inline
// (same line as the indicator) or on a more-indented following line —
// as opposed to signalling an empty item because the next real content
// is back at or above parentCol.
func (p *Parser) blockItemStart(indicatorLine, parentCol int) bool {
	if p.cur.Start.Line == indicatorLine {
		return true
	}
	if p.cur.Kind == token.StreamEndToken || p.cur.Kind == token.DocumentEndToken || p.cur.Kind == token.DirectivesEndToken {
		return false
	}
	return p.col > parentCol
}

func (p *Parser) parseBlockSequence(seqCol int, anchor, tag string) error {
	if err := p.registerAnchor(p.cur.Start, anchor); err != nil {
		return err
	}
	start := p.cur.Start
	p.emit(token.Event{Type: token.StartSequenceEvent, Start: start, Anchor: anchor, Tag: tag, Style: token.BlockCollectionStyle})

	for {
		dashLine := p.cur.Start.Line
		dashPos := p.cur.Start
		if err := p.advance(); err != nil {
			return err
		}
		if p.blockItemStart(dashLine, seqCol) {
			if err := p.parseNode(seqCol+1, false); err != nil {
				return err
			}
		} else {
			if err := p.emptyScalar(dashPos, "", ""); err != nil {
				return err
			}
		}
		if p.cur.Kind == token.SequenceEntryToken && p.col == seqCol {
			continue
		}
		break
	}
	p.emit(token.Event{Type: token.EndSequenceEvent, Start: p.cur.Start})
	return nil
}

// parseBlockMapping parses the rest of a block mapping whose first key
// (already read as keyTok, an implicit scalar key) was what told the
// caller this is a mapping rather than a bare scalar. p.cur is the
// MapValueToken following that key on entry.
func (p *Parser) parseBlockMapping(mapCol int, keyTok token.Token, anchor, tag string) error {
	if err := p.registerAnchor(keyTok.Start, anchor); err != nil {
		return err
	}
	p.emit(token.Event{Type: token.StartMappingEvent, Start: keyTok.Start, Anchor: anchor, Tag: tag, Style: token.BlockCollectionStyle})

	// The first entry's key was already read (as a plain scalar, by the
	// caller, before it knew this would turn out to be a mapping) and its
	// anchor/tag already went onto the mapping event above, not the key.
	if err := p.emitScalar(keyTok, "", ""); err != nil {
		return err
	}
	colonPos := p.cur.Start
	colonLine := colonPos.Line
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.parseMappingValue(mapCol, colonLine, colonPos); err != nil {
		return err
	}

	for p.col == mapCol && startsKeyCandidate(p.cur.Kind) {
		if err := p.parseExplicitMappingEntry(mapCol, "", ""); err != nil {
			return err
		}
	}
	p.emit(token.Event{Type: token.EndMappingEvent, Start: p.cur.Start})
	return nil
}

// parseMappingValue reads the value half of a "key: value" pair given
// that the ':' at colonPos/colonLine has just been consumed.
func (p *Parser) parseMappingValue(mapCol, colonLine int, colonPos token.Position) error {
	if p.blockItemStart(colonLine, mapCol) {
		return p.parseNode(mapCol+1, false)
	}
	return p.emptyScalar(colonPos, "", "")
}

func startsKeyCandidate(k token.Kind) bool {
	switch k {
	case token.PlainScalarToken, token.QuotedScalarToken, token.BlockScalarHeaderToken,
		token.AnchorToken, token.TagHandleToken, token.VerbatimTagToken, token.AliasToken,
		token.FlowSequenceStartToken, token.FlowMappingStartToken, token.MapKeyToken:
		return true
	default:
		return false
	}
}

// parseExplicitBlockMapping handles a mapping whose first entry uses
// "? key" / ": value" explicit-key form.
func (p *Parser) parseExplicitBlockMapping(mapCol int, anchor, tag string) error {
	if err := p.registerAnchor(p.cur.Start, anchor); err != nil {
		return err
	}
	p.emit(token.Event{Type: token.StartMappingEvent, Start: p.cur.Start, Anchor: anchor, Tag: tag, Style: token.BlockCollectionStyle})

	for {
		if err := p.parseExplicitMappingEntry(mapCol, "", ""); err != nil {
			return err
		}
		if p.col != mapCol || !startsKeyCandidate(p.cur.Kind) {
			break
		}
	}
	p.emit(token.Event{Type: token.EndMappingEvent, Start: p.cur.Start})
	return nil
}

// parseExplicitMappingEntry parses one "? key\n: value" (or implicit
// "key: value" reached via a MapKeyToken-led entry) pair and leaves
// p.cur positioned at whatever follows. entryAnchor/entryTag, if set,
// were already collected by the caller for the key node.
func (p *Parser) parseExplicitMappingEntry(mapCol int, entryAnchor, entryTag string) error {
	if p.cur.Kind == token.MapKeyToken {
		qLine := p.cur.Start.Line
		qPos := p.cur.Start
		if err := p.advance(); err != nil {
			return err
		}
		if p.blockItemStart(qLine, mapCol) {
			if err := p.parseNode(mapCol+1, true); err != nil {
				return err
			}
		} else {
			if err := p.emptyScalar(qPos, entryAnchor, entryTag); err != nil {
				return err
			}
		}
	} else {
		// implicit key already positioned at p.cur (scalar/alias/flow);
		// reuse parseNode's own anchor/tag collection, but in key-only
		// mode: the ':' that follows belongs to this entry, not to a
		// nested mapping the key scalar might otherwise seem to open.
		if err := p.parseNode(mapCol, true); err != nil {
			return err
		}
	}

	if p.col == mapCol && p.cur.Kind == token.MapValueToken {
		valPos := p.cur.Start
		valLine := valPos.Line
		if err := p.advance(); err != nil {
			return err
		}
		return p.parseMappingValue(mapCol, valLine, valPos)
	}
	// no ": value" at all: value defaults to an implicit null.
	return p.emptyScalar(p.cur.Start, "", "")
}
