// Package presenter renders an event stream as YAML (or, in JSON
// style, JSON-compatible) text, choosing scalar and container styles
// per spec.md §4.6. It consumes any eventstream.EventStream — one
// produced by the parser, or one replaying a DOM's Serialize output.
package presenter

import (
	"fmt"
	"io"

	"github.com/yamlcore/yamlcore/eventstream"
	"github.com/yamlcore/yamlcore/taglib"
	"github.com/yamlcore/yamlcore/token"
	"github.com/yamlcore/yamlcore/typehint"
)

// Presenter renders events from an EventStream to an io.Writer.
type Presenter struct {
	opts Options
	tags *taglib.Library
	w    *writer
}

// New builds a Presenter writing to out, resolving tags against tags
// (for shorthand compression) per opts.
func New(out io.Writer, tags *taglib.Library, opts Options) *Presenter {
	return &Presenter{
		opts: opts,
		tags: tags,
		w:    newWriter(out, opts.newline()),
	}
}

// Present drains every document from stream and writes it. It returns
// the first error encountered: an OutputError on write failure, or a
// JSONError if Options.Style is JSON and the stream can't be
// represented in JSON.
func (p *Presenter) Present(stream eventstream.EventStream) error {
	for {
		doc, err := p.readDocument(stream)
		if err != nil {
			return err
		}
		if doc == nil {
			return nil
		}
		if err := p.renderDocument(doc); err != nil {
			return err
		}
		if stream.Finished() {
			return nil
		}
	}
}

// readDocument pulls events through the matching EndDocumentEvent,
// returning nil once the stream has nothing left to give.
func (p *Presenter) readDocument(stream eventstream.EventStream) ([]token.Event, error) {
	if stream.Finished() {
		return nil, nil
	}
	var doc []token.Event
	for {
		ev, err := stream.Next()
		if err != nil {
			if len(doc) == 0 {
				return nil, nil
			}
			return nil, err
		}
		doc = append(doc, ev)
		if ev.Type == token.EndDocumentEvent {
			return doc, nil
		}
	}
}

func (p *Presenter) renderDocument(doc []token.Event) error {
	if p.opts.Style == JSON {
		for _, ev := range doc {
			if ev.Type == token.AliasEvent {
				return jsonErr("JSON output cannot represent an alias")
			}
		}
	}
	if p.opts.AnchorStyle == AnchorNone {
		for _, ev := range doc {
			if ev.Type == token.AliasEvent {
				return outputErr(fmt.Errorf("alias *%s has no anchor to resolve: AnchorStyle is None", ev.Target))
			}
		}
	}

	referenced := referencedAnchors(doc)

	start := doc[0]
	if p.opts.OutputVersionMajor != 0 {
		p.w.str(fmt.Sprintf("%%YAML %d.%d", p.opts.OutputVersionMajor, p.opts.OutputVersionMinor))
		p.w.newline()
	}
	for _, td := range start.TagDirectives {
		p.w.str(fmt.Sprintf("%%TAG %s %s", td.Handle, td.Prefix))
		p.w.newline()
	}
	if p.opts.OutputVersionMajor != 0 || len(start.TagDirectives) > 0 || p.opts.Style == Canonical {
		p.w.str("---")
		p.w.newline()
	}

	idx := 1 // skip StartDocumentEvent
	_, err := p.renderNode(doc, idx, 0, referenced, false)
	if err != nil {
		return err
	}
	if p.w.err != nil {
		return outputErr(p.w.err)
	}
	p.w.newline()
	return nil
}

// renderNode writes the node beginning at doc[idx] (a Scalar, Alias,
// StartSequence, or StartMapping event) and returns the index of the
// event immediately following it (the matching End event's successor
// for containers, idx+1 for scalars/aliases). indentCol is the column
// any of this node's own child lines (if it turns out to be a block
// container) should be written at. inFlow reports whether an ancestor
// container is already rendering in flow style, forcing this node flow
// too regardless of its own size.
func (p *Presenter) renderNode(doc []token.Event, idx, indentCol int, referenced map[string]bool, inFlow bool) (int, error) {
	ev := doc[idx]
	switch ev.Type {
	case token.ScalarEvent:
		tag := ev.Tag
		if tag == "" && p.opts.Style == Canonical {
			tag = canonicalScalarTag(ev.Content)
		}
		p.writeAnchorTagPrefix(ev.Anchor, tag, referenced)
		typeSettled := ev.Tag != "" || ev.Implicit && ev.ScalarStyleHint == token.PlainScalarStyle
		style, err := p.chooseScalarStyle(ev.Content, typeSettled, inFlow)
		if err != nil {
			return 0, err
		}
		p.writeScalarContent(style, ev.Content, indentCol)
		return idx + 1, nil

	case token.AliasEvent:
		p.w.byte('*')
		p.w.str(ev.Target)
		return idx + 1, nil

	case token.StartSequenceEvent, token.StartMappingEvent:
		flow := inFlow || p.containerIsFlow(doc, idx)
		tag := ev.Tag
		if tag == "" && p.opts.Style == Canonical {
			if ev.Type == token.StartSequenceEvent {
				tag = taglib.SeqURI
			} else {
				tag = taglib.MapURI
			}
		}
		p.writeAnchorTagPrefix(ev.Anchor, tag, referenced)
		if ev.Type == token.StartSequenceEvent {
			return p.renderSequence(doc, idx, indentCol, referenced, flow)
		}
		return p.renderMapping(doc, idx, indentCol, referenced, flow)

	default:
		return 0, outputErr(fmt.Errorf("presenter: unexpected event %s where a node was expected", ev.Type))
	}
}

// canonicalScalarTag infers the core-schema tag an untagged plain
// scalar would resolve to, for Canonical style's "fully tagged" output.
func canonicalScalarTag(content string) string {
	switch typehint.Guess(content) {
	case typehint.Null:
		return taglib.NullURI
	case typehint.Bool:
		return taglib.BoolURI
	case typehint.Int:
		return taglib.IntURI
	case typehint.Float, typehint.Inf, typehint.NaN:
		return taglib.FloatURI
	default:
		return taglib.StrURI
	}
}

func (p *Presenter) writeAnchorTagPrefix(anchor, tag string, referenced map[string]bool) {
	if name := p.anchorToWrite(anchor, referenced); name != "" {
		p.w.byte('&')
		p.w.str(name)
		p.w.byte(' ')
	}
	p.writeTag(tag)
}

// containerIsFlow decides, for Default style, whether the container
// starting at doc[idx] collapses to flow per spec.md §4.6's column rule,
// with the budget taken from Options.MaxLineLength (60 by default).
// Every other style has a fixed answer independent of content.
func (p *Presenter) containerIsFlow(doc []token.Event, idx int) bool {
	switch p.opts.Style {
	case Minimal, Canonical, JSON:
		return true
	case BlockOnly:
		return false
	default:
		length, _ := inlineSpan(doc, idx)
		return length <= p.opts.maxLineLength()
	}
}

func (p *Presenter) renderSequence(doc []token.Event, idx, indentCol int, referenced map[string]bool, flow bool) (int, error) {
	i := idx + 1
	if flow {
		p.w.byte('[')
		first := true
		for doc[i].Type != token.EndSequenceEvent {
			if !first {
				p.w.str(", ")
			}
			first = false
			var err error
			i, err = p.renderNode(doc, i, indentCol, referenced, true)
			if err != nil {
				return 0, err
			}
		}
		p.w.byte(']')
		return i + 1, nil
	}

	if doc[i].Type == token.EndSequenceEvent {
		p.w.str("[]")
		return i + 1, nil
	}
	childCol := indentCol + p.opts.indentStep()
	for doc[i].Type != token.EndSequenceEvent {
		p.w.newline()
		p.w.indent(indentCol)
		p.w.str("- ")
		var err error
		i, err = p.renderNode(doc, i, childCol, referenced, false)
		if err != nil {
			return 0, err
		}
	}
	return i + 1, nil
}

func (p *Presenter) renderMapping(doc []token.Event, idx, indentCol int, referenced map[string]bool, flow bool) (int, error) {
	i := idx + 1
	if flow {
		p.w.byte('{')
		first := true
		for doc[i].Type != token.EndMappingEvent {
			if !first {
				p.w.str(", ")
			}
			first = false
			if p.opts.Style == JSON && doc[i].Type != token.ScalarEvent {
				return 0, jsonErr("JSON output cannot represent a non-scalar mapping key")
			}
			var err error
			i, err = p.renderNode(doc, i, indentCol, referenced, true)
			if err != nil {
				return 0, err
			}
			p.w.str(": ")
			i, err = p.renderNode(doc, i, indentCol, referenced, true)
			if err != nil {
				return 0, err
			}
		}
		p.w.byte('}')
		return i + 1, nil
	}

	if doc[i].Type == token.EndMappingEvent {
		p.w.str("{}")
		return i + 1, nil
	}
	childCol := indentCol + p.opts.indentStep()
	for doc[i].Type != token.EndMappingEvent {
		p.w.newline()
		p.w.indent(indentCol)
		var err error
		i, err = p.renderNode(doc, i, childCol, referenced, false)
		if err != nil {
			return 0, err
		}
		p.w.str(": ")
		i, err = p.renderNode(doc, i, childCol, referenced, false)
		if err != nil {
			return 0, err
		}
	}
	return i + 1, nil
}
