package taglib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamlcore/yamlcore/taglib"
)

func TestNewCorePreregistersNonSpecificTags(t *testing.T) {
	l := taglib.NewCore()
	id, ok := l.URI(taglib.NonSpecific)
	require.True(t, ok)
	assert.Equal(t, "!", id)

	uri, ok := l.URI(taglib.Unresolved)
	require.True(t, ok)
	assert.Equal(t, "?", uri)

	strID := l.Register(taglib.StrURI)
	assert.Equal(t, strID, l.Register(taglib.StrURI))
}

func TestRegisterIsIdempotent(t *testing.T) {
	l := taglib.NewCore()
	a := l.Register("tag:example.com,2024:widget")
	b := l.Register("tag:example.com,2024:widget")
	assert.Equal(t, a, b)

	uri, ok := l.URI(a)
	require.True(t, ok)
	assert.Equal(t, "tag:example.com,2024:widget", uri)
}

func TestMergeURIOnCoreAndExtended(t *testing.T) {
	core := taglib.NewCore()
	ext := taglib.NewExtended()
	_, ok := core.URI(core.Register(taglib.MergeURI))
	require.True(t, ok) // registering on demand still works on a core library

	// and Shorthand compresses it against the secondary prefix:
	handle, suffix, ok := ext.Shorthand(taglib.MergeURI)
	require.True(t, ok)
	assert.Equal(t, "!!", handle)
	assert.Equal(t, "merge", suffix)
}

func TestHandleTableExpand(t *testing.T) {
	l := taglib.NewCore()
	handles := l.DefaultHandles()
	uri, err := handles.Expand("!!", "str")
	require.NoError(t, err)
	assert.Equal(t, taglib.StrURI, uri)

	handles.Declare("!e!", "tag:example.com,2024:")
	uri, err = handles.Expand("!e!", "widget")
	require.NoError(t, err)
	assert.Equal(t, "tag:example.com,2024:widget", uri)

	_, err = handles.Expand("!unknown!", "x")
	assert.Error(t, err)
}

func TestShorthandCompression(t *testing.T) {
	l := taglib.NewCore()
	handle, suffix, ok := l.Shorthand(taglib.StrURI)
	require.True(t, ok)
	assert.Equal(t, "!!", handle)
	assert.Equal(t, "str", suffix)

	handle, suffix, ok = l.Shorthand("!local")
	require.True(t, ok)
	assert.Equal(t, "!", handle)
	assert.Equal(t, "local", suffix)

	_, _, ok = l.Shorthand("tag:example.com,2024:custom")
	assert.False(t, ok)
}

func TestSecondaryPrefixConfigurable(t *testing.T) {
	l := taglib.NewCore()
	l.SetSecondaryPrefix("tag:example.com,2024:")
	assert.Equal(t, "tag:example.com,2024:", l.SecondaryPrefix())
}
