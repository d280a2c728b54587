package yamlcore_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlcore/yamlcore"
	"github.com/yamlcore/yamlcore/dom"
	"github.com/yamlcore/yamlcore/presenter"
)

func TestDecoderDecodeBuildsTree(t *testing.T) {
	dec := yamlcore.NewDecoderString("a: 1\nb: 2\n", nil)
	node, err := dec.Decode()
	require.NoError(t, err)
	require.Equal(t, dom.MappingNode, node.Kind)
	require.Len(t, node.Pairs, 2)
}

func TestDecoderEventsDrivesPresenter(t *testing.T) {
	dec := yamlcore.NewDecoderString("- 1\n- 2\n", nil)
	var buf bytes.Buffer
	enc := yamlcore.NewEncoder(&buf, nil, presenter.Options{})
	require.NoError(t, enc.Present(dec.Events()))
	require.Contains(t, buf.String(), "1")
	require.Contains(t, buf.String(), "2")
}

func TestTranscodeRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	err := yamlcore.Transcode(&buf, bytes.NewBufferString("foo: bar\n"), nil, presenter.Options{})
	require.NoError(t, err)

	dec := yamlcore.NewDecoderString(buf.String(), nil)
	node, err := dec.Decode()
	require.NoError(t, err)
	require.Equal(t, "foo", node.Pairs[0].Key.Content)
	require.Equal(t, "bar", node.Pairs[0].Value.Content)
}

func TestEncoderEncodeSerializesTree(t *testing.T) {
	tree := &dom.Node{
		Kind: dom.MappingNode,
		Pairs: []dom.Pair{
			{Key: &dom.Node{Kind: dom.ScalarNode, Content: "k"}, Value: &dom.Node{Kind: dom.ScalarNode, Content: "v"}},
		},
	}
	var buf bytes.Buffer
	enc := yamlcore.NewEncoder(&buf, nil, presenter.Options{})
	require.NoError(t, enc.Encode(tree, dom.SerializeOptions{}))
	require.Contains(t, buf.String(), "k: v")
}
