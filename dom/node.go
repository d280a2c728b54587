// Package dom composes a generic node tree from an event stream and
// serializes one back to events, per spec.md §3/§4.7. Node intentionally
// carries none of the head/line/foot comment fields a full decoder
// would (spec.md's comment-preservation Non-goal); it exists purely as
// a structural go-between for callers that want a tree instead of a
// push/pull event sequence.
package dom

import (
	"fmt"

	"github.com/yamlcore/yamlcore/internal/perr"
)

// Kind is the variant tag of a Node.
type Kind int8

const (
	ScalarNode Kind = iota
	SequenceNode
	MappingNode
	AliasNode
)

func (k Kind) String() string {
	switch k {
	case ScalarNode:
		return "scalar"
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	case AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

// Pair is one key/value entry of a Mapping node. The pair vector
// preserves insertion (and therefore duplicate-key) order; Compose
// never deduplicates keys itself.
type Pair struct {
	Key   *Node
	Value *Node
}

// Node is the DOM's tagged-union tree element: Scalar{Content, Tag},
// Sequence{Items, Tag}, Mapping{Pairs, Tag}, or Alias{Target}. Anchor
// carries the anchor name Compose saw on this node (if any), preserved
// so Serialize's Tidy/Always policies have something to reuse instead
// of inventing a name outright.
type Node struct {
	Kind Kind

	Tag     string
	Anchor  string
	Content string // ScalarNode

	Items []*Node // SequenceNode

	Pairs []Pair // MappingNode

	Target *Node // AliasNode: the node this alias resolves to (weak reference)
}

// ConstructionError is raised by Compose for anything that keeps a
// well-formed event stream from becoming a well-formed tree: excessive
// alias expansion, a merge key (`<<`) pointing at something that isn't
// a mapping or a sequence of mappings, or a stream error surfacing from
// below that isn't itself already a typed error.
type ConstructionError struct {
	perr.Base
}

func (e *ConstructionError) Error() string { return e.Format() }

func constructionErr(format string, args ...interface{}) error {
	return &ConstructionError{perr.Base{Message: fmt.Sprintf(format, args...)}}
}
