package eventstream_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlcore/yamlcore/eventstream"
	"github.com/yamlcore/yamlcore/token"
)

// fakeSource replays a fixed slice, then returns errDone forever — used
// to exercise Lazy without depending on the parser package.
type fakeSource struct {
	events []token.Event
	pos    int
}

var errDone = errors.New("fake source exhausted")

func (f *fakeSource) Next() (token.Event, error) {
	if f.pos >= len(f.events) {
		return token.Event{}, errDone
	}
	ev := f.events[f.pos]
	f.pos++
	return ev, nil
}

func sample() []token.Event {
	return []token.Event{
		{Type: token.StartDocumentEvent},
		{Type: token.ScalarEvent, Content: "a"},
		{Type: token.EndDocumentEvent},
	}
}

func TestLazyPeekThenNextReturnSameEvent(t *testing.T) {
	l := eventstream.NewLazy(&fakeSource{events: sample()})
	peeked, err := l.Peek()
	require.NoError(t, err)
	require.Equal(t, token.StartDocumentEvent, peeked.Type)

	next, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, peeked, next)

	next2, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, "a", next2.Content)
}

func TestLazyDrainsThenFinishes(t *testing.T) {
	l := eventstream.NewLazy(&fakeSource{events: sample()})
	for i := 0; i < 3; i++ {
		_, err := l.Next()
		require.NoError(t, err)
	}
	require.False(t, l.Finished())
	_, err := l.Next()
	require.Error(t, err)
	require.True(t, l.Finished())
}

func TestLazyPeekWithoutConsumingDoesNotAdvanceTwice(t *testing.T) {
	l := eventstream.NewLazy(&fakeSource{events: sample()})
	_, _ = l.Peek()
	_, _ = l.Peek()
	ev, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.StartDocumentEvent, ev.Type)
}

func TestBufferedReplay(t *testing.T) {
	b := eventstream.NewBuffered(sample())
	require.False(t, b.Finished())

	peeked, err := b.Peek()
	require.NoError(t, err)
	require.Equal(t, token.StartDocumentEvent, peeked.Type)

	for i := 0; i < 3; i++ {
		_, err := b.Next()
		require.NoError(t, err)
	}
	require.True(t, b.Finished())
	_, err = b.Next()
	require.Error(t, err)
}
