package parser

import "github.com/yamlcore/yamlcore/token"

// parseFlowSequence parses a "[...]" collection. p.cur is the
// FlowSequenceStartToken on entry.
func (p *Parser) parseFlowSequence(anchor, tag string) error {
	if err := p.registerAnchor(p.cur.Start, anchor); err != nil {
		return err
	}
	start := p.cur.Start
	p.emit(token.Event{Type: token.StartSequenceEvent, Start: start, Anchor: anchor, Tag: tag, Style: token.FlowCollectionStyle})
	p.enterFlow()
	if err := p.advance(); err != nil {
		return err
	}
	for p.cur.Kind != token.FlowSequenceEndToken {
		if p.cur.Kind == token.FlowEntryToken {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		if err := p.parseFlowSequenceEntry(); err != nil {
			return err
		}
	}
	p.exitFlow()
	end := p.cur.End
	if err := p.advance(); err != nil {
		return err
	}
	p.emit(token.Event{Type: token.EndSequenceEvent, Start: end})
	return nil
}

// parseFlowSequenceEntry reads one element of a flow sequence: a plain
// node, or — YAML's single-pair-mapping shorthand — a bare "key: value"
// pair, synthesized as its own one-entry mapping.
func (p *Parser) parseFlowSequenceEntry() error {
	if err := p.collectAnchorTag(); err != nil {
		return err
	}
	anchor, tag := p.pendingAnchor, p.pendingTag

	switch p.cur.Kind {
	case token.PlainScalarToken, token.QuotedScalarToken:
		tok := p.cur
		if err := p.advance(); err != nil {
			return err
		}
		if p.cur.Kind == token.MapValueToken {
			return p.parseSinglePairFlowMapping(tok, anchor, tag)
		}
		return p.emitScalar(tok, anchor, tag)
	case token.AliasToken:
		return p.emitAlias(anchor, tag)
	case token.FlowSequenceStartToken:
		return p.parseFlowSequence(anchor, tag)
	case token.FlowMappingStartToken:
		return p.parseFlowMapping(anchor, tag)
	default:
		return p.errorf(p.cur.Start, "unexpected token %s in flow sequence", p.cur.Kind)
	}
}

// parseSinglePairFlowMapping synthesizes the one-entry mapping a bare
// "key: value" flow-sequence element stands for: keyTok was already
// read and p.cur is the MapValueToken that follows it.
func (p *Parser) parseSinglePairFlowMapping(keyTok token.Token, anchor, tag string) error {
	if err := p.registerAnchor(keyTok.Start, anchor); err != nil {
		return err
	}
	p.emit(token.Event{Type: token.StartMappingEvent, Start: keyTok.Start, Anchor: anchor, Tag: tag, Style: token.FlowCollectionStyle})
	if err := p.emitScalar(keyTok, "", ""); err != nil {
		return err
	}
	if err := p.advance(); err != nil { // past ':'
		return err
	}
	if err := p.parseFlowNode(); err != nil {
		return err
	}
	p.emit(token.Event{Type: token.EndMappingEvent, Start: p.cur.Start})
	return nil
}

// parseFlowMapping parses a "{...}" collection. p.cur is the
// FlowMappingStartToken on entry.
func (p *Parser) parseFlowMapping(anchor, tag string) error {
	if err := p.registerAnchor(p.cur.Start, anchor); err != nil {
		return err
	}
	start := p.cur.Start
	p.emit(token.Event{Type: token.StartMappingEvent, Start: start, Anchor: anchor, Tag: tag, Style: token.FlowCollectionStyle})
	p.enterFlow()
	if err := p.advance(); err != nil {
		return err
	}
	for p.cur.Kind != token.FlowMappingEndToken {
		if p.cur.Kind == token.FlowEntryToken {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		if err := p.parseFlowMapEntry(); err != nil {
			return err
		}
	}
	p.exitFlow()
	end := p.cur.End
	if err := p.advance(); err != nil {
		return err
	}
	p.emit(token.Event{Type: token.EndMappingEvent, Start: end})
	return nil
}

// parseFlowMapEntry parses one "key: value", "key" (value defaults to
// null), or "? key : value" entry of an already-open flow mapping.
func (p *Parser) parseFlowMapEntry() error {
	if p.cur.Kind == token.MapKeyToken {
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.parseFlowNode(); err != nil {
			return err
		}
	} else {
		if err := p.collectAnchorTag(); err != nil {
			return err
		}
		anchor, tag := p.pendingAnchor, p.pendingTag
		switch p.cur.Kind {
		case token.PlainScalarToken, token.QuotedScalarToken:
			tok := p.cur
			if err := p.advance(); err != nil {
				return err
			}
			if err := p.emitScalar(tok, anchor, tag); err != nil {
				return err
			}
		case token.AliasToken:
			if err := p.emitAlias(anchor, tag); err != nil {
				return err
			}
		case token.FlowSequenceStartToken:
			if err := p.parseFlowSequence(anchor, tag); err != nil {
				return err
			}
		case token.FlowMappingStartToken:
			if err := p.parseFlowMapping(anchor, tag); err != nil {
				return err
			}
		default:
			return p.errorf(p.cur.Start, "unexpected token %s in flow mapping", p.cur.Kind)
		}
	}

	if p.cur.Kind == token.MapValueToken {
		if err := p.advance(); err != nil {
			return err
		}
		return p.parseFlowNode()
	}
	return p.emptyScalar(p.cur.Start, "", "")
}

// parseFlowNode reads one node in a pure value position inside flow
// context: unlike parseNode/parseFlowSequenceEntry it never checks for a
// trailing ':', since a value position can't itself open a new pair.
func (p *Parser) parseFlowNode() error {
	if err := p.collectAnchorTag(); err != nil {
		return err
	}
	anchor, tag := p.pendingAnchor, p.pendingTag
	switch p.cur.Kind {
	case token.AliasToken:
		return p.emitAlias(anchor, tag)
	case token.FlowSequenceStartToken:
		return p.parseFlowSequence(anchor, tag)
	case token.FlowMappingStartToken:
		return p.parseFlowMapping(anchor, tag)
	case token.PlainScalarToken, token.QuotedScalarToken, token.BlockScalarHeaderToken:
		tok := p.cur
		if err := p.advance(); err != nil {
			return err
		}
		return p.emitScalar(tok, anchor, tag)
	default:
		return p.errorf(p.cur.Start, "unexpected token %s where a flow node was expected", p.cur.Kind)
	}
}

func (p *Parser) registerAnchor(at token.Position, anchor string) error {
	if anchor == "" {
		return nil
	}
	if p.anchors[anchor] {
		return p.errorf(at, "duplicate anchor &%s", anchor)
	}
	p.anchors[anchor] = true
	return nil
}

func (p *Parser) emitAlias(anchor, tag string) error {
	if anchor != "" || tag != "" {
		return p.errorf(p.cur.Start, "an alias may not carry an anchor or tag")
	}
	name := string(p.cur.Value)
	if !p.anchors[name] {
		return p.errorf(p.cur.Start, "alias *%s refers to an undefined anchor", name)
	}
	p.emit(token.Event{Type: token.AliasEvent, Start: p.cur.Start, End: p.cur.End, Target: name})
	return p.advance()
}
