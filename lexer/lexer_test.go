package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlcore/yamlcore/bytesource"
	"github.com/yamlcore/yamlcore/lexer"
	"github.com/yamlcore/yamlcore/token"
)

// tokenize drains the lexer, toggling flow mode the way a parser would:
// the lexer itself only tracks what SetFlow tells it.
func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	l := lexer.New(bytesource.NewString([]byte(src)))
	depth := 0
	var toks []token.Token
	for {
		err := l.NextToken()
		require.NoError(t, err)
		cur := l.Current
		toks = append(toks, cur)
		switch cur.Kind {
		case token.FlowSequenceStartToken, token.FlowMappingStartToken:
			depth++
			l.SetFlow(true)
		case token.FlowSequenceEndToken, token.FlowMappingEndToken:
			depth--
			l.SetFlow(depth > 0)
		}
		if cur.Kind == token.StreamEndToken {
			return toks
		}
		if len(toks) > 500 {
			t.Fatalf("token stream did not terminate: %+v", toks)
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestSimpleMapping(t *testing.T) {
	toks := tokenize(t, "a: 1\nb: 2\n")
	require.Equal(t, []token.Kind{
		token.IndentationToken, token.PlainScalarToken, token.MapValueToken, token.PlainScalarToken,
		token.IndentationToken, token.PlainScalarToken, token.MapValueToken, token.PlainScalarToken,
		token.StreamEndToken,
	}, kinds(toks))
	require.Equal(t, "a", string(toks[1].Value))
	require.Equal(t, "1", string(toks[3].Value))
	require.Equal(t, "b", string(toks[5].Value))
	require.Equal(t, "2", string(toks[7].Value))
}

func TestSimpleSequence(t *testing.T) {
	toks := tokenize(t, "- a\n- b\n")
	require.Equal(t, []token.Kind{
		token.IndentationToken, token.SequenceEntryToken, token.PlainScalarToken,
		token.IndentationToken, token.SequenceEntryToken, token.PlainScalarToken,
		token.StreamEndToken,
	}, kinds(toks))
}

func TestFlowMapping(t *testing.T) {
	toks := tokenize(t, "{a: 1, b: 2}\n")
	require.Equal(t, []token.Kind{
		token.IndentationToken,
		token.FlowMappingStartToken, token.PlainScalarToken, token.MapValueToken, token.PlainScalarToken,
		token.FlowEntryToken, token.PlainScalarToken, token.MapValueToken, token.PlainScalarToken,
		token.FlowMappingEndToken,
		token.StreamEndToken,
	}, kinds(toks))
}

func TestAnchorAndAlias(t *testing.T) {
	toks := tokenize(t, "a: &x 1\nb: *x\n")
	require.Equal(t, []token.Kind{
		token.IndentationToken, token.PlainScalarToken, token.MapValueToken, token.AnchorToken, token.PlainScalarToken,
		token.IndentationToken, token.PlainScalarToken, token.MapValueToken, token.AliasToken,
		token.StreamEndToken,
	}, kinds(toks))
	require.Equal(t, "x", string(toks[3].Value))
	require.Equal(t, "x", string(toks[8].Value))
}

func TestLiteralBlockScalarClip(t *testing.T) {
	toks := tokenize(t, "key: |\n  line1\n  line2\n")
	require.Equal(t, []token.Kind{
		token.IndentationToken, token.PlainScalarToken, token.MapValueToken, token.BlockScalarHeaderToken,
		token.StreamEndToken,
	}, kinds(toks))
	body := toks[3]
	require.Equal(t, "line1\nline2\n", string(body.Value))
	require.Equal(t, token.ClipChomping, body.Chomp)
}

func TestFoldedBlockScalarStrip(t *testing.T) {
	toks := tokenize(t, "key: >-\n  one\n  two\n\n  three\n")
	require.Equal(t, []token.Kind{
		token.IndentationToken, token.PlainScalarToken, token.MapValueToken, token.BlockScalarHeaderToken,
		token.StreamEndToken,
	}, kinds(toks))
	body := toks[3]
	require.Equal(t, "one two\nthree", string(body.Value))
	require.Equal(t, token.StripChomping, body.Chomp)
}

func TestSingleQuotedEscapedApostrophe(t *testing.T) {
	toks := tokenize(t, "'it''s'\n")
	require.Equal(t, token.QuotedScalarToken, toks[1].Kind)
	require.Equal(t, "it's", string(toks[1].Value))
}

func TestDoubleQuotedEscapes(t *testing.T) {
	toks := tokenize(t, `"a\tbA\n"`+"\n")
	require.Equal(t, token.QuotedScalarToken, toks[1].Kind)
	require.Equal(t, "a\tbA\n", string(toks[1].Value))
}

func TestTagShorthand(t *testing.T) {
	toks := tokenize(t, "!!str foo\n")
	require.Equal(t, token.TagHandleToken, toks[1].Kind)
	require.Equal(t, "!!str", string(toks[1].Value))
	require.Equal(t, 2, toks[1].ShorthandEnd)
}

func TestVerbatimTag(t *testing.T) {
	toks := tokenize(t, "!<tag:yaml.org,2002:str> foo\n")
	require.Equal(t, token.VerbatimTagToken, toks[1].Kind)
	require.Equal(t, "tag:yaml.org,2002:str", string(toks[1].Value))
}

func TestDirectivesEndMarker(t *testing.T) {
	toks := tokenize(t, "---\na: 1\n...\n")
	require.Equal(t, []token.Kind{
		token.DirectivesEndToken,
		token.IndentationToken, token.PlainScalarToken, token.MapValueToken, token.PlainScalarToken,
		token.DocumentEndToken,
		token.StreamEndToken,
	}, kinds(toks))
}

func TestYamlDirective(t *testing.T) {
	toks := tokenize(t, "%YAML 1.2\n---\na\n")
	require.Equal(t, token.YamlDirectiveToken, toks[0].Kind)
	require.Equal(t, int8(1), toks[0].Major)
	require.Equal(t, int8(2), toks[0].Minor)
}

func TestPlainScalarFoldsAcrossLines(t *testing.T) {
	toks := tokenize(t, "a: one\n   two\n")
	require.Equal(t, "one two", string(toks[3].Value))
}

func TestPlainScalarFoldsWhenValueStartsOnItsOwnLine(t *testing.T) {
	toks := tokenize(t, "key:\n  foo\n  bar\n")
	require.Equal(t, []token.Kind{
		token.IndentationToken, token.PlainScalarToken, token.MapValueToken,
		token.IndentationToken, token.PlainScalarToken,
		token.StreamEndToken,
	}, kinds(toks))
	require.Equal(t, "foo bar", string(toks[4].Value))
}

func TestPlainScalarAtDocumentRootFoldsAcrossLines(t *testing.T) {
	toks := tokenize(t, "foo\nbar\n")
	require.Equal(t, []token.Kind{
		token.IndentationToken, token.PlainScalarToken,
		token.StreamEndToken,
	}, kinds(toks))
	require.Equal(t, "foo bar", string(toks[1].Value))
}

func TestPlainScalarOnOwnLineStopsAtLessIndentedSibling(t *testing.T) {
	toks := tokenize(t, "key:\n  foo\nbar: 2\n")
	require.Equal(t, []token.Kind{
		token.IndentationToken, token.PlainScalarToken, token.MapValueToken,
		token.IndentationToken, token.PlainScalarToken,
		token.IndentationToken, token.PlainScalarToken, token.MapValueToken, token.PlainScalarToken,
		token.StreamEndToken,
	}, kinds(toks))
	require.Equal(t, "foo", string(toks[4].Value))
	require.Equal(t, "bar", string(toks[6].Value))
}

func TestTabAsIndentationIsAnError(t *testing.T) {
	l := lexer.New(bytesource.NewString([]byte("\ta: 1\n")))
	err := l.NextToken()
	require.Error(t, err)
}
