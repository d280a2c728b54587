package dom

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/yamlcore/yamlcore/token"
)

// AnchorStyle controls how Serialize assigns anchor names to nodes it
// re-expands into events, mirroring the presenter's AnchorStyle but
// grounded in real pointer identity rather than an event's carried
// anchor string: the DOM is the one layer that actually knows whether
// two branches of the tree are the same node.
type AnchorStyle int8

const (
	// AnchorNone refuses to serialize a tree containing any shared
	// pointer or Alias node; every node must be written out in full.
	AnchorNone AnchorStyle = iota
	// AnchorTidy anchors only nodes that are referenced more than once
	// (directly aliased, or the same *Node reachable two ways).
	AnchorTidy
	// AnchorAlways anchors every container node, referenced or not.
	AnchorAlways
)

// AnchorNamer mints anchor names for nodes Serialize decides to anchor.
// index is a 1-based ordinal over the anchors assigned during this call,
// stable in tree-walk order.
type AnchorNamer interface {
	Name(n *Node, index int) string
}

// SequentialNamer produces "a1", "a2", ... in assignment order. It is
// the default namer when SerializeOptions.AnchorNamer is nil.
type SequentialNamer struct{}

func (SequentialNamer) Name(_ *Node, index int) string {
	return "a" + strconv.Itoa(index)
}

// UUIDNamer produces anchor names derived from random UUIDs, useful when
// trees from independent sources are merged and sequential names could
// collide.
type UUIDNamer struct{}

func (UUIDNamer) Name(_ *Node, _ int) string {
	return "u-" + uuid.New().String()
}

// SerializeOptions configures Serialize.
type SerializeOptions struct {
	AnchorStyle AnchorStyle
	AnchorNamer AnchorNamer
}

func (o SerializeOptions) namer() AnchorNamer {
	if o.AnchorNamer != nil {
		return o.AnchorNamer
	}
	return SequentialNamer{}
}

// serializer carries the two passes' shared state: reference counts
// discovered while walking the tree, and the anchor names assigned to
// whichever nodes qualify under the chosen AnchorStyle.
type serializer struct {
	opts SerializeOptions

	refCount map[*Node]int
	visited  map[*Node]bool
	anchors  map[*Node]string
	nextIdx  int
}

// Serialize expands node back into a document's worth of events: a
// StartDocumentEvent, the node's structure, and a matching
// EndDocumentEvent. Shared pointers and Alias nodes become anchor/alias
// event pairs according to opts.AnchorStyle.
func Serialize(node *Node, opts SerializeOptions) ([]token.Event, error) {
	s := &serializer{
		opts:     opts,
		refCount: make(map[*Node]int),
		visited:  make(map[*Node]bool),
		anchors:  make(map[*Node]string),
	}
	s.countRefs(node)

	if opts.AnchorStyle == AnchorNone {
		for _, count := range s.refCount {
			if count > 1 {
				return nil, constructionErr("node is referenced more than once but AnchorStyle is AnchorNone")
			}
		}
	}
	s.assignAnchors(node)

	events := []token.Event{{Type: token.StartDocumentEvent}}
	emitted := make(map[*Node]bool)
	out, err := s.emit(node, events, emitted)
	if err != nil {
		return nil, err
	}
	out = append(out, token.Event{Type: token.EndDocumentEvent})
	return out, nil
}

func (s *serializer) countRefs(n *Node) {
	if n.Kind == AliasNode {
		s.refCount[n.Target]++
		if !s.visited[n.Target] {
			s.visited[n.Target] = true
			s.countRefs(n.Target)
		}
		return
	}

	s.refCount[n]++
	if s.visited[n] {
		return
	}
	s.visited[n] = true

	switch n.Kind {
	case SequenceNode:
		for _, item := range n.Items {
			s.countRefs(item)
		}
	case MappingNode:
		for _, pr := range n.Pairs {
			s.countRefs(pr.Key)
			s.countRefs(pr.Value)
		}
	}
}

func (s *serializer) assignAnchors(n *Node) {
	target := n
	if n.Kind == AliasNode {
		target = n.Target
	}
	if _, done := s.anchors[target]; done {
		return
	}

	shouldAnchor := false
	switch s.opts.AnchorStyle {
	case AnchorAlways:
		shouldAnchor = target.Kind != ScalarNode || s.refCount[target] > 1
	case AnchorTidy:
		shouldAnchor = s.refCount[target] > 1
	}
	if shouldAnchor {
		s.nextIdx++
		name := target.Anchor
		if name == "" {
			name = s.opts.namer().Name(target, s.nextIdx)
		}
		s.anchors[target] = name
	}

	if n.Kind == AliasNode {
		return
	}
	switch target.Kind {
	case SequenceNode:
		for _, item := range target.Items {
			s.assignAnchors(item)
		}
	case MappingNode:
		for _, pr := range target.Pairs {
			s.assignAnchors(pr.Key)
			s.assignAnchors(pr.Value)
		}
	}
}

func (s *serializer) emit(n *Node, events []token.Event, emitted map[*Node]bool) ([]token.Event, error) {
	if n.Kind == AliasNode {
		name, ok := s.anchors[n.Target]
		if !ok {
			return nil, constructionErr("alias target has no assigned anchor")
		}
		return append(events, token.Event{Type: token.AliasEvent, Target: name}), nil
	}

	if emitted[n] {
		name, ok := s.anchors[n]
		if !ok {
			return nil, constructionErr("node referenced more than once has no assigned anchor")
		}
		return append(events, token.Event{Type: token.AliasEvent, Target: name}), nil
	}
	emitted[n] = true
	anchor := s.anchors[n]

	switch n.Kind {
	case ScalarNode:
		return append(events, token.Event{Type: token.ScalarEvent, Tag: n.Tag, Anchor: anchor, Content: n.Content}), nil

	case SequenceNode:
		events = append(events, token.Event{Type: token.StartSequenceEvent, Tag: n.Tag, Anchor: anchor})
		var err error
		for _, item := range n.Items {
			events, err = s.emit(item, events, emitted)
			if err != nil {
				return nil, err
			}
		}
		return append(events, token.Event{Type: token.EndSequenceEvent}), nil

	case MappingNode:
		events = append(events, token.Event{Type: token.StartMappingEvent, Tag: n.Tag, Anchor: anchor})
		var err error
		for _, pr := range n.Pairs {
			events, err = s.emit(pr.Key, events, emitted)
			if err != nil {
				return nil, err
			}
			events, err = s.emit(pr.Value, events, emitted)
			if err != nil {
				return nil, err
			}
		}
		return append(events, token.Event{Type: token.EndMappingEvent}), nil

	default:
		return nil, constructionErr("unknown node kind %v", n.Kind)
	}
}
