package dom

import (
	"github.com/yamlcore/yamlcore/eventstream"
	"github.com/yamlcore/yamlcore/token"
)

// aliasRatioRangeLow/High and the interpolation between them mirror the
// teacher's decode.go allowedAliasRatio guard against alias-expansion
// bombs: a handful of anchors fanning out into millions of composed
// nodes via aliases.
const (
	aliasRatioRangeLow  = 4000
	aliasRatioRangeHigh = 4000000
)

func allowedAliasRatio(composeCount int) float64 {
	switch {
	case composeCount <= aliasRatioRangeLow:
		return 0.99
	case composeCount >= aliasRatioRangeHigh:
		return 0.10
	default:
		span := float64(aliasRatioRangeHigh - aliasRatioRangeLow)
		return 0.99 - 0.89*(float64(composeCount-aliasRatioRangeLow)/span)
	}
}

// composer holds the state one Compose call threads through its
// recursive descent: the anchor table (populated as each anchored node
// is allocated, so a self-referential alias inside that node's own
// children resolves to the same pointer) and the alias-bomb counters.
type composer struct {
	stream  eventstream.EventStream
	anchors map[string]*Node

	composeCount int
	aliasCount   int
}

// Compose reads exactly one document from stream and returns its root
// node. Merge keys (`<<`) are flattened into the owning mapping's pair
// list before Compose returns it, per spec.md §4.7.
func Compose(stream eventstream.EventStream) (*Node, error) {
	c := &composer{stream: stream, anchors: make(map[string]*Node)}

	if _, err := c.expect(token.StartDocumentEvent); err != nil {
		return nil, err
	}
	ev, err := c.stream.Peek()
	if err != nil {
		return nil, wrapErr(err)
	}
	if ev.Type == token.EndDocumentEvent {
		if _, err := c.stream.Next(); err != nil {
			return nil, wrapErr(err)
		}
		return &Node{Kind: ScalarNode, Content: "", Tag: "?"}, nil
	}

	root, err := c.composeNode()
	if err != nil {
		return nil, err
	}
	if _, err := c.expect(token.EndDocumentEvent); err != nil {
		return nil, err
	}
	return root, nil
}

func (c *composer) expect(want token.EventType) (token.Event, error) {
	ev, err := c.stream.Next()
	if err != nil {
		return token.Event{}, wrapErr(err)
	}
	if ev.Type != want {
		return token.Event{}, constructionErr("expected %s, got %s", want, ev.Type)
	}
	return ev, nil
}

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	return constructionErr("%v", err)
}

func (c *composer) checkAliasBudget() error {
	c.composeCount++
	if c.aliasCount > 100 && c.composeCount > 1000 &&
		float64(c.aliasCount)/float64(c.composeCount) > allowedAliasRatio(c.composeCount) {
		return constructionErr("document contains excessive aliasing")
	}
	return nil
}

func (c *composer) composeNode() (*Node, error) {
	if err := c.checkAliasBudget(); err != nil {
		return nil, err
	}
	ev, err := c.stream.Next()
	if err != nil {
		return nil, wrapErr(err)
	}
	switch ev.Type {
	case token.ScalarEvent:
		n := &Node{Kind: ScalarNode, Tag: ev.Tag, Anchor: ev.Anchor, Content: ev.Content}
		c.registerAnchor(n)
		return n, nil

	case token.AliasEvent:
		c.aliasCount++
		target, ok := c.anchors[ev.Target]
		if !ok {
			return nil, constructionErr("alias *%s refers to an undefined anchor", ev.Target)
		}
		return &Node{Kind: AliasNode, Target: target}, nil

	case token.StartSequenceEvent:
		n := &Node{Kind: SequenceNode, Tag: ev.Tag, Anchor: ev.Anchor}
		c.registerAnchor(n)
		for {
			peeked, err := c.stream.Peek()
			if err != nil {
				return nil, wrapErr(err)
			}
			if peeked.Type == token.EndSequenceEvent {
				if _, err := c.stream.Next(); err != nil {
					return nil, wrapErr(err)
				}
				return n, nil
			}
			child, err := c.composeNode()
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, child)
		}

	case token.StartMappingEvent:
		n := &Node{Kind: MappingNode, Tag: ev.Tag, Anchor: ev.Anchor}
		c.registerAnchor(n)
		for {
			peeked, err := c.stream.Peek()
			if err != nil {
				return nil, wrapErr(err)
			}
			if peeked.Type == token.EndMappingEvent {
				if _, err := c.stream.Next(); err != nil {
					return nil, wrapErr(err)
				}
				if err := flattenMerges(n); err != nil {
					return nil, err
				}
				return n, nil
			}
			key, err := c.composeNode()
			if err != nil {
				return nil, err
			}
			val, err := c.composeNode()
			if err != nil {
				return nil, err
			}
			n.Pairs = append(n.Pairs, Pair{Key: key, Value: val})
		}

	default:
		return nil, constructionErr("unexpected event %s where a node was expected", ev.Type)
	}
}

func (c *composer) registerAnchor(n *Node) {
	if n.Anchor != "" {
		c.anchors[n.Anchor] = n
	}
}
