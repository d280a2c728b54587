package dom_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/yamlcore/yamlcore/bytesource"
	"github.com/yamlcore/yamlcore/dom"
	"github.com/yamlcore/yamlcore/eventstream"
	"github.com/yamlcore/yamlcore/lexer"
	"github.com/yamlcore/yamlcore/parser"
	"github.com/yamlcore/yamlcore/taglib"
)

func compose(t *testing.T, src string) *dom.Node {
	t.Helper()
	lex := lexer.New(bytesource.NewString([]byte(src)))
	p := parser.New(lex, taglib.NewCore())
	stream := eventstream.NewLazy(p)
	n, err := dom.Compose(stream)
	require.NoError(t, err)
	return n
}

var ignoreTargetCycles = cmpopts.IgnoreFields(dom.Node{}, "Target")

func TestComposeScalar(t *testing.T) {
	n := compose(t, "hello\n")
	require.Equal(t, dom.ScalarNode, n.Kind)
	require.Equal(t, "hello", n.Content)
}

func TestComposeMapping(t *testing.T) {
	n := compose(t, "a: 1\nb: 2\n")
	require.Equal(t, dom.MappingNode, n.Kind)
	require.Len(t, n.Pairs, 2)
	require.Equal(t, "a", n.Pairs[0].Key.Content)
	require.Equal(t, "1", n.Pairs[0].Value.Content)
	require.Equal(t, "b", n.Pairs[1].Key.Content)
	require.Equal(t, "2", n.Pairs[1].Value.Content)
}

func TestComposeSequence(t *testing.T) {
	n := compose(t, "- x\n- y\n- z\n")
	require.Equal(t, dom.SequenceNode, n.Kind)
	require.Len(t, n.Items, 3)
	require.Equal(t, "y", n.Items[1].Content)
}

func TestComposeAliasResolvesToSamePointer(t *testing.T) {
	n := compose(t, "- &x 1\n- *x\n")
	require.Len(t, n.Items, 2)
	require.Equal(t, dom.ScalarNode, n.Items[0].Kind)
	require.Equal(t, dom.AliasNode, n.Items[1].Kind)
	require.Same(t, n.Items[0], n.Items[1].Target)
}

func TestComposeUndefinedAliasErrors(t *testing.T) {
	lex := lexer.New(bytesource.NewString([]byte("- *nope\n")))
	p := parser.New(lex, taglib.NewCore())
	_, err := dom.Compose(eventstream.NewLazy(p))
	require.Error(t, err)
}

func TestMergeKeyFlattensAndExplicitKeyWins(t *testing.T) {
	src := "base: &b\n  a: 1\n  b: 2\nchild:\n  <<: *b\n  b: 99\n"
	n := compose(t, src)
	require.Equal(t, dom.MappingNode, n.Kind)

	var child *dom.Node
	for _, pr := range n.Pairs {
		if pr.Key.Content == "child" {
			child = pr.Value
		}
	}
	require.NotNil(t, child)

	values := map[string]string{}
	for _, pr := range child.Pairs {
		values[pr.Key.Content] = pr.Value.Content
	}
	require.Equal(t, "1", values["a"])
	require.Equal(t, "99", values["b"], "explicit key must win over merged key")
}

func TestMergeFromSequenceOfMappings(t *testing.T) {
	src := "child:\n  <<: [*one, *two]\n  own: x\n---\none: &one\n  p: 1\ntwo: &two\n  q: 2\n"
	// single-document parser: build inline instead, since anchors must be
	// defined before use within one document.
	src = "defs:\n  - &one\n    p: 1\n  - &two\n    q: 2\nchild:\n  <<: [*one, *two]\n  own: x\n"
	n := compose(t, src)

	var child *dom.Node
	for _, pr := range n.Pairs {
		if pr.Key.Content == "child" {
			child = pr.Value
		}
	}
	require.NotNil(t, child)

	keys := map[string]string{}
	for _, pr := range child.Pairs {
		keys[pr.Key.Content] = pr.Value.Content
	}
	require.Equal(t, "1", keys["p"])
	require.Equal(t, "2", keys["q"])
	require.Equal(t, "x", keys["own"])
}

func TestMergeRejectsScalarValue(t *testing.T) {
	src := "child:\n  <<: 5\n  own: x\n"
	lex := lexer.New(bytesource.NewString([]byte(src)))
	p := parser.New(lex, taglib.NewCore())
	_, err := dom.Compose(eventstream.NewLazy(p))
	require.Error(t, err)
}

func TestSerializeRoundTripsScalarTree(t *testing.T) {
	original := compose(t, "a: 1\nb:\n  - x\n  - y\n")
	events, err := dom.Serialize(original, dom.SerializeOptions{})
	require.NoError(t, err)

	reparsed, err := dom.Compose(eventstream.NewBuffered(events))
	require.NoError(t, err)

	diff := cmp.Diff(original, reparsed, ignoreTargetCycles)
	require.Empty(t, diff)
}

func TestSerializeAnchorNoneRejectsSharedPointer(t *testing.T) {
	leaf := &dom.Node{Kind: dom.ScalarNode, Content: "shared"}
	tree := &dom.Node{Kind: dom.SequenceNode, Items: []*dom.Node{leaf, leaf}}

	_, err := dom.Serialize(tree, dom.SerializeOptions{AnchorStyle: dom.AnchorNone})
	require.Error(t, err)
}

func TestSerializeTidyAnchorsOnlySharedNodes(t *testing.T) {
	leaf := &dom.Node{Kind: dom.ScalarNode, Content: "shared"}
	unshared := &dom.Node{Kind: dom.ScalarNode, Content: "solo"}
	tree := &dom.Node{Kind: dom.SequenceNode, Items: []*dom.Node{leaf, leaf, unshared}}

	events, err := dom.Serialize(tree, dom.SerializeOptions{AnchorStyle: dom.AnchorTidy})
	require.NoError(t, err)

	var anchorCount, aliasCount int
	for _, ev := range events {
		if ev.Anchor != "" {
			anchorCount++
		}
		if ev.Type.String() == "alias" {
			aliasCount++
		}
	}
	require.Equal(t, 1, anchorCount)
	require.Equal(t, 1, aliasCount)
}

func TestSerializeAlwaysAnchorsEveryContainer(t *testing.T) {
	tree := &dom.Node{
		Kind: dom.MappingNode,
		Pairs: []dom.Pair{
			{Key: &dom.Node{Kind: dom.ScalarNode, Content: "a"}, Value: &dom.Node{Kind: dom.ScalarNode, Content: "1"}},
		},
	}
	events, err := dom.Serialize(tree, dom.SerializeOptions{AnchorStyle: dom.AnchorAlways})
	require.NoError(t, err)
	require.NotEmpty(t, events[1].Anchor)
}

func TestSerializeUUIDNamerProducesUniqueNames(t *testing.T) {
	leaf := &dom.Node{Kind: dom.ScalarNode, Content: "shared"}
	tree := &dom.Node{Kind: dom.SequenceNode, Items: []*dom.Node{leaf, leaf}}

	events, err := dom.Serialize(tree, dom.SerializeOptions{AnchorStyle: dom.AnchorTidy, AnchorNamer: dom.UUIDNamer{}})
	require.NoError(t, err)

	var names []string
	for _, ev := range events {
		if ev.Anchor != "" {
			names = append(names, ev.Anchor)
		}
	}
	require.Len(t, names, 1)
	require.Contains(t, names[0], "u-")
}
