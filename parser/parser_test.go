package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlcore/yamlcore/bytesource"
	"github.com/yamlcore/yamlcore/lexer"
	"github.com/yamlcore/yamlcore/parser"
	"github.com/yamlcore/yamlcore/taglib"
	"github.com/yamlcore/yamlcore/token"
)

// drain runs p until (and including) the first EndDocumentEvent — every
// fixture in this file is a single document.
func drain(t *testing.T, p *parser.Parser) []token.Event {
	t.Helper()
	var evs []token.Event
	for {
		ev, err := p.Next()
		require.NoError(t, err)
		evs = append(evs, ev)
		if ev.Type == token.EndDocumentEvent {
			return evs
		}
		if len(evs) > 500 {
			t.Fatalf("event stream did not terminate: %+v", evs)
		}
	}
}

func newParser(src string) *parser.Parser {
	lex := lexer.New(bytesource.NewString([]byte(src)))
	return parser.New(lex, taglib.NewCore())
}

func types(evs []token.Event) []token.EventType {
	out := make([]token.EventType, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}

func TestSimpleMapping(t *testing.T) {
	evs := drain(t, newParser("a: 1\nb: 2\n"))
	require.Equal(t, []token.EventType{
		token.StartDocumentEvent,
		token.StartMappingEvent,
		token.ScalarEvent, token.ScalarEvent,
		token.ScalarEvent, token.ScalarEvent,
		token.EndMappingEvent,
		token.EndDocumentEvent,
	}, types(evs))
	require.Equal(t, "a", evs[2].Content)
	require.Equal(t, "1", evs[3].Content)
	require.Equal(t, "b", evs[4].Content)
	require.Equal(t, "2", evs[5].Content)
	require.True(t, evs[2].Implicit)
}

func TestSimpleSequence(t *testing.T) {
	evs := drain(t, newParser("- a\n- b\n"))
	require.Equal(t, []token.EventType{
		token.StartDocumentEvent,
		token.StartSequenceEvent,
		token.ScalarEvent, token.ScalarEvent,
		token.EndSequenceEvent,
		token.EndDocumentEvent,
	}, types(evs))
	require.Equal(t, "a", evs[2].Content)
	require.Equal(t, "b", evs[3].Content)
	require.Equal(t, token.BlockCollectionStyle, evs[1].Style)
}

func TestFlowMapping(t *testing.T) {
	evs := drain(t, newParser("{a: 1, b: 2}\n"))
	require.Equal(t, []token.EventType{
		token.StartDocumentEvent,
		token.StartMappingEvent,
		token.ScalarEvent, token.ScalarEvent,
		token.ScalarEvent, token.ScalarEvent,
		token.EndMappingEvent,
		token.EndDocumentEvent,
	}, types(evs))
	require.Equal(t, token.FlowCollectionStyle, evs[1].Style)
	require.Equal(t, "a", evs[2].Content)
	require.Equal(t, "2", evs[5].Content)
}

func TestAnchorAndAlias(t *testing.T) {
	evs := drain(t, newParser("a: &x 1\nb: *x\n"))
	require.Equal(t, []token.EventType{
		token.StartDocumentEvent,
		token.StartMappingEvent,
		token.ScalarEvent, token.ScalarEvent, // a, 1 (anchored)
		token.ScalarEvent, token.AliasEvent, // b, *x
		token.EndMappingEvent,
		token.EndDocumentEvent,
	}, types(evs))
	require.Equal(t, "x", evs[3].Anchor)
	require.Equal(t, "1", evs[3].Content)
	require.Equal(t, "x", evs[5].Target)
}

func TestLiteralBlockScalarClip(t *testing.T) {
	evs := drain(t, newParser("key: |\n  line1\n  line2\n"))
	require.Equal(t, []token.EventType{
		token.StartDocumentEvent,
		token.StartMappingEvent,
		token.ScalarEvent, token.ScalarEvent,
		token.EndMappingEvent,
		token.EndDocumentEvent,
	}, types(evs))
	require.Equal(t, "line1\nline2\n", evs[3].Content)
	require.Equal(t, token.LiteralScalarStyle, evs[3].ScalarStyleHint)
}

func TestFoldedBlockScalarStrip(t *testing.T) {
	evs := drain(t, newParser("key: >-\n  one\n  two\n\n  three\n"))
	require.Equal(t, "one two\nthree", evs[3].Content)
	require.Equal(t, token.FoldedScalarStyle, evs[3].ScalarStyleHint)
}

func TestUndefinedAliasIsAnError(t *testing.T) {
	p := newParser("a: *missing\n")
	_, err := p.Next() // start-document
	require.NoError(t, err)
	_, err = p.Next() // start-mapping
	require.NoError(t, err)
	_, err = p.Next() // scalar "a"
	require.NoError(t, err)
	_, err = p.Next() // alias *missing
	require.Error(t, err)
}

func TestDuplicateAnchorIsAnError(t *testing.T) {
	evs, err := drainErr(newParser("a: &x 1\nb: &x 2\n"))
	require.Error(t, err)
	_ = evs
}

func drainErr(p *parser.Parser) ([]token.Event, error) {
	var evs []token.Event
	for {
		ev, err := p.Next()
		if err != nil {
			return evs, err
		}
		evs = append(evs, ev)
		if ev.Type == token.EndDocumentEvent {
			return evs, nil
		}
		if len(evs) > 500 {
			return evs, nil
		}
	}
}

func TestNestedBlockStructures(t *testing.T) {
	src := "outer:\n  inner: 1\n  list:\n    - x\n    - y\n"
	evs := drain(t, newParser(src))
	require.Equal(t, []token.EventType{
		token.StartDocumentEvent,
		token.StartMappingEvent, // outer
		token.ScalarEvent,       // outer
		token.StartMappingEvent, // inner map
		token.ScalarEvent, token.ScalarEvent, // inner: 1
		token.ScalarEvent,       // list
		token.StartSequenceEvent,
		token.ScalarEvent, token.ScalarEvent, // x, y
		token.EndSequenceEvent,
		token.EndMappingEvent, // close inner map
		token.EndMappingEvent, // close outer map
		token.EndDocumentEvent,
	}, types(evs))
}

func TestExplicitDocumentMarkers(t *testing.T) {
	evs := drain(t, newParser("---\na: 1\n...\n"))
	require.Equal(t, []token.EventType{
		token.StartDocumentEvent,
		token.StartMappingEvent,
		token.ScalarEvent, token.ScalarEvent,
		token.EndMappingEvent,
		token.EndDocumentEvent,
	}, types(evs))
}
