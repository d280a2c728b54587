// Package parser turns a lexer's token stream into the structural event
// stream: matched start/end container events, scalars, and aliases, with
// anchors and tags resolved along the way. It is a pull engine: when
// its queue of ready events is empty, Next parses the next whole
// document by recursive descent and queues all of its events, then
// hands them out one per call. If parsing fails part-way through a
// document, the events queued before the failure are handed out first
// and the error is returned after them.
package parser

import (
	"fmt"

	"github.com/yamlcore/yamlcore/internal/perr"
	"github.com/yamlcore/yamlcore/lexer"
	"github.com/yamlcore/yamlcore/taglib"
	"github.com/yamlcore/yamlcore/token"
)

// Error is raised for any structural or grammar violation the parser
// detects: duplicate anchors, undefined aliases, a tag handle that was
// never declared, unexpected tokens, and the like.
type Error struct {
	perr.Base
}

func (e *Error) Error() string { return e.Format() }

// Parser is the token-to-event state machine.
type Parser struct {
	lex     *lexer.Lexer
	tags    *taglib.Library
	handles *taglib.HandleTable

	flowDepth int // nesting depth of open flow collections; lexer.SetFlow tracks depth > 0

	anchors map[string]bool // anchor names defined so far in the current document

	cur token.Token // most recent non-indentation, non-empty-line token
	col int         // indentation column of the line cur is on

	pendingAnchor string
	pendingTag    string // resolved URI, set when a tag handle/verbatim tag was just read

	events []token.Event // ready-to-emit queue
	atEOF  bool
	err    error // parse failure, returned once the queued events are drained

	// OnVersionMismatch, if set, is called when a document declares a
	// %YAML version other than 1.2; the parser otherwise proceeds anyway.
	OnVersionMismatch func(major, minor int8)
}

// New builds a Parser reading from lex, resolving tags against tags.
func New(lex *lexer.Lexer, tags *taglib.Library) *Parser {
	return &Parser{
		lex:     lex,
		tags:    tags,
		handles: tags.DefaultHandles(),
		anchors: make(map[string]bool),
	}
}

func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) error {
	return &Error{perr.Base{
		Line:        pos.Line,
		Column:      pos.Column,
		LineContent: p.lex.CurrentLineText(),
		Message:     fmt.Sprintf(format, args...),
	}}
}

// Next returns the next event in the stream, or an error. Once every
// document has been returned, each further call returns an error;
// eventstream.Lazy reports that state through Finished.
func (p *Parser) Next() (token.Event, error) {
	for len(p.events) == 0 {
		if p.err != nil {
			return token.Event{}, p.err
		}
		if p.atEOF {
			return token.Event{}, fmt.Errorf("parser: Next called after stream end")
		}
		if err := p.pump(); err != nil {
			p.err = err
		}
	}
	ev := p.events[0]
	p.events = p.events[1:]
	return ev, nil
}

func (p *Parser) emit(ev token.Event) { p.events = append(p.events, ev) }

// pump advances the token stream until it has queued at least one
// event, or the document stream is exhausted.
func (p *Parser) pump() error {
	if p.cur.Kind == token.NoToken {
		if err := p.advance(); err != nil {
			return err
		}
	}
	if p.cur.Kind == token.StreamEndToken {
		p.atEOF = true
		return nil
	}
	return p.parseDocument()
}

// advance fetches the next semantically significant token (skipping
// indentation/empty-line bookkeeping tokens, but recording the column
// they carry) into p.cur.
func (p *Parser) advance() error {
	for {
		if err := p.lex.NextToken(); err != nil {
			return err
		}
		tok := p.lex.Current
		switch tok.Kind {
		case token.IndentationToken:
			p.col = tok.Indent
			continue
		case token.EmptyLineToken:
			continue
		case token.DirectivesEndToken, token.DocumentEndToken:
			p.col = 0
		}
		p.cur = tok
		return nil
	}
}

// collectAnchorTag consumes any run of anchor/tag tokens immediately
// preceding a node, leaving the resolved values in p.pendingAnchor/
// p.pendingTag for the caller to read off before dispatching on p.cur.
func (p *Parser) collectAnchorTag() error {
	p.pendingAnchor = ""
	p.pendingTag = ""
	for {
		switch p.cur.Kind {
		case token.AnchorToken:
			if p.pendingAnchor != "" {
				return p.errorf(p.cur.Start, "a node may have at most one anchor")
			}
			p.pendingAnchor = string(p.cur.Value)
			if err := p.advance(); err != nil {
				return err
			}
		case token.TagHandleToken:
			if p.pendingTag != "" {
				return p.errorf(p.cur.Start, "a node may have at most one tag")
			}
			handle := string(p.cur.Value[:p.cur.ShorthandEnd])
			suffix := string(p.cur.Value[p.cur.ShorthandEnd:])
			uri, err := p.handles.Expand(handle, suffix)
			if err != nil {
				return p.errorf(p.cur.Start, "%v", err)
			}
			p.pendingTag = uri
			if err := p.advance(); err != nil {
				return err
			}
		case token.VerbatimTagToken:
			if p.pendingTag != "" {
				return p.errorf(p.cur.Start, "a node may have at most one tag")
			}
			p.pendingTag = string(p.cur.Value)
			if err := p.advance(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (p *Parser) enterFlow() {
	p.flowDepth++
	p.lex.SetFlow(true)
}

func (p *Parser) exitFlow() {
	p.flowDepth--
	p.lex.SetFlow(p.flowDepth > 0)
}
