// Package yamlcore wires bytesource, lexer, parser, eventstream,
// presenter, dom and taglib into the convenience entry points a caller
// reaches for first: NewDecoder/NewEncoder, in the teacher's own
// NewDecoder/NewEncoder idiom (see DESIGN.md), rather than forcing every
// caller to assemble the pipeline by hand.
package yamlcore

import (
	"io"

	"github.com/yamlcore/yamlcore/bytesource"
	"github.com/yamlcore/yamlcore/dom"
	"github.com/yamlcore/yamlcore/eventstream"
	"github.com/yamlcore/yamlcore/lexer"
	"github.com/yamlcore/yamlcore/parser"
	"github.com/yamlcore/yamlcore/presenter"
	"github.com/yamlcore/yamlcore/taglib"
	"github.com/yamlcore/yamlcore/token"
)

// Decoder drives a byte source through the lexer and parser and exposes
// the result as a pull-based EventStream, or composes it straight into a
// dom.Node tree.
type Decoder struct {
	stream eventstream.EventStream
}

// NewDecoder builds a Decoder reading from r, tagged against tags. A nil
// tags uses taglib.NewCore(), the core schema.
func NewDecoder(r io.Reader, tags *taglib.Library) *Decoder {
	if tags == nil {
		tags = taglib.NewCore()
	}
	src := bytesource.NewReader(r)
	lex := lexer.New(src)
	p := parser.New(lex, tags)
	return &Decoder{stream: eventstream.NewLazy(p)}
}

// NewDecoderString is NewDecoder for an in-memory source, avoiding the
// io.Reader buffering bytesource.NewReader would otherwise add.
func NewDecoderString(s string, tags *taglib.Library) *Decoder {
	if tags == nil {
		tags = taglib.NewCore()
	}
	src := bytesource.NewString([]byte(s))
	lex := lexer.New(src)
	p := parser.New(lex, tags)
	return &Decoder{stream: eventstream.NewLazy(p)}
}

// Events returns the underlying EventStream for callers that want to
// drive the pull loop themselves instead of composing a tree.
func (d *Decoder) Events() eventstream.EventStream {
	return d.stream
}

// Decode reads one document and composes it into a dom.Node tree.
func (d *Decoder) Decode() (*dom.Node, error) {
	return dom.Compose(d.stream)
}

// Encoder presents an EventStream, or serializes a dom.Node tree, as
// YAML text written to w.
type Encoder struct {
	w    io.Writer
	tags *taglib.Library
	opts presenter.Options
}

// NewEncoder builds an Encoder writing to w under opts. A nil tags uses
// taglib.NewCore().
func NewEncoder(w io.Writer, tags *taglib.Library, opts presenter.Options) *Encoder {
	if tags == nil {
		tags = taglib.NewCore()
	}
	return &Encoder{w: w, tags: tags, opts: opts}
}

// Present writes every document in stream to the encoder's writer.
func (e *Encoder) Present(stream eventstream.EventStream) error {
	return presenter.New(e.w, e.tags, e.opts).Present(stream)
}

// Encode serializes node under serOpts and presents the result.
func (e *Encoder) Encode(node *dom.Node, serOpts dom.SerializeOptions) error {
	events, err := dom.Serialize(node, serOpts)
	if err != nil {
		return err
	}
	return e.Present(eventstream.NewBuffered(events))
}

// Transcode is the common round-trip shortcut: read one document from
// r, compose it, and write it back out to w under opts — a style
// conversion or canonicalization pass with no caller-visible tree.
func Transcode(w io.Writer, r io.Reader, tags *taglib.Library, opts presenter.Options) error {
	dec := NewDecoder(r, tags)
	node, err := dec.Decode()
	if err != nil {
		return err
	}
	return NewEncoder(w, tags, opts).Encode(node, dom.SerializeOptions{})
}

// Event and EventType are re-exported for callers that only need the
// vocabulary and not the full token package import.
type Event = token.Event
type EventType = token.EventType
