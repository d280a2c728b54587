// Package eventstream wraps a parser into the pull-based EventStream
// contract the presenter and DOM layers consume: Next, Peek, Finished.
package eventstream

import "github.com/yamlcore/yamlcore/token"

// EventStream is a one-at-a-time, optionally-one-ahead source of
// structural events. Implementations are not safe for concurrent use.
type EventStream interface {
	// Next consumes and returns the next event.
	Next() (token.Event, error)
	// Peek returns the next event without consuming it; the following
	// Next call returns the same event.
	Peek() (token.Event, error)
	// Finished reports whether the stream has been fully drained.
	Finished() bool
}

// source is anything that can produce one event at a time — the parser,
// in production, or a stub in tests.
type source interface {
	Next() (token.Event, error)
}

// Lazy wraps a source, pulling from it only as Next/Peek demand and
// holding back at most the one event a Peek pulled.
type Lazy struct {
	src    source
	peeked *token.Event
	done   bool
	err    error
}

// NewLazy builds a Lazy EventStream pulling from src.
func NewLazy(src source) *Lazy {
	return &Lazy{src: src}
}

func (l *Lazy) Next() (token.Event, error) {
	if l.peeked != nil {
		ev := *l.peeked
		l.peeked = nil
		if ev.Type == token.EndDocumentEvent {
			// A caller draining a single document is done; leave done
			// unset so a multi-document caller can keep pulling.
		}
		return ev, nil
	}
	if l.done {
		return token.Event{}, l.err
	}
	return l.pull()
}

func (l *Lazy) Peek() (token.Event, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	if l.done {
		return token.Event{}, l.err
	}
	ev, err := l.pull()
	if err != nil {
		return token.Event{}, err
	}
	l.peeked = &ev
	return ev, nil
}

func (l *Lazy) pull() (token.Event, error) {
	ev, err := l.src.Next()
	if err != nil {
		l.done = true
		l.err = wrap(err)
		return token.Event{}, l.err
	}
	return ev, nil
}

// Finished reports whether the stream has been exhausted (the last pull
// returned an error — in practice StreamEnd exhaustion from the
// parser, surfaced as an error by design: see parser.Parser.Next).
func (l *Lazy) Finished() bool { return l.done && l.err != nil }

// Buffered replays a fixed, already-materialized slice of events — the
// DOM's Serialize path builds one of these instead of driving a live
// parser, since the whole tree is already in memory.
type Buffered struct {
	events []token.Event
	pos    int
}

// NewBuffered wraps events for sequential replay.
func NewBuffered(events []token.Event) *Buffered {
	return &Buffered{events: events}
}

func (b *Buffered) Next() (token.Event, error) {
	if b.pos >= len(b.events) {
		return token.Event{}, errExhausted
	}
	ev := b.events[b.pos]
	b.pos++
	return ev, nil
}

func (b *Buffered) Peek() (token.Event, error) {
	if b.pos >= len(b.events) {
		return token.Event{}, errExhausted
	}
	return b.events[b.pos], nil
}

func (b *Buffered) Finished() bool { return b.pos >= len(b.events) }

type exhaustedError struct{}

func (exhaustedError) Error() string { return "eventstream: no more events" }

var errExhausted error = exhaustedError{}
