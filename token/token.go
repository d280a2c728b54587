// Package token holds the vocabulary shared by the lexer, parser,
// presenter and DOM layers: positions, the lexer's Token type, the
// parser's Event type, and the small enums (scalar style, chomping,
// sequence/mapping style) that travel with them.
package token

import "fmt"

// Position locates a byte in the source. Line and Column are 1-based;
// Index is the 0-based byte offset, preserved alongside Line/Column
// because the lexer's column accounting is itself byte-based rather
// than rune-based (see DESIGN.md).
type Position struct {
	Index  int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// AnchorID is an opaque identifier allocated in encounter order during
// parsing. Zero means "no anchor".
type AnchorID uint32

// Chomping is the trailing-newline policy of a block scalar.
type Chomping int8

const (
	ClipChomping  Chomping = iota // keep a single trailing line break
	StripChomping                 // remove all trailing line breaks
	KeepChomping                  // keep all trailing line breaks
)

func (c Chomping) String() string {
	switch c {
	case ClipChomping:
		return "clip"
	case StripChomping:
		return "strip"
	case KeepChomping:
		return "keep"
	default:
		return "unknown"
	}
}

// UnknownIndent is the sentinel for a block scalar or mapping/sequence
// level whose indentation has not yet been determined.
const UnknownIndent = -1

// ScalarStyle is the lexical form a scalar was (or should be) written in.
type ScalarStyle int8

const (
	AnyScalarStyle ScalarStyle = iota
	PlainScalarStyle
	SingleQuotedScalarStyle
	DoubleQuotedScalarStyle
	LiteralScalarStyle
	FoldedScalarStyle
)

func (s ScalarStyle) String() string {
	switch s {
	case PlainScalarStyle:
		return "plain"
	case SingleQuotedScalarStyle:
		return "single-quoted"
	case DoubleQuotedScalarStyle:
		return "double-quoted"
	case LiteralScalarStyle:
		return "literal"
	case FoldedScalarStyle:
		return "folded"
	default:
		return "any"
	}
}

// CollectionStyle is the container rendering chosen for a sequence or mapping.
type CollectionStyle int8

const (
	AnyCollectionStyle CollectionStyle = iota
	BlockCollectionStyle
	FlowCollectionStyle
)

func (s CollectionStyle) String() string {
	switch s {
	case BlockCollectionStyle:
		return "block"
	case FlowCollectionStyle:
		return "flow"
	default:
		return "any"
	}
}

// Kind enumerates the lexical tokens produced by the lexer.
type Kind int

const (
	NoToken Kind = iota
	StreamEndToken

	YamlDirectiveToken
	TagDirectiveToken
	UnknownDirectiveToken

	IndentationToken
	EmptyLineToken

	DirectivesEndToken // "---"
	DocumentEndToken   // "..."

	PlainScalarToken
	QuotedScalarToken
	BlockScalarHeaderToken

	SequenceEntryToken // "-"
	MapKeyToken        // "?"
	MapValueToken      // ":"

	FlowSequenceStartToken // "["
	FlowSequenceEndToken   // "]"
	FlowMappingStartToken  // "{"
	FlowMappingEndToken    // "}"
	FlowEntryToken         // ","

	AnchorToken
	AliasToken
	TagHandleToken
	VerbatimTagToken
)

func (k Kind) String() string {
	switch k {
	case NoToken:
		return "none"
	case StreamEndToken:
		return "stream-end"
	case YamlDirectiveToken:
		return "%YAML"
	case TagDirectiveToken:
		return "%TAG"
	case UnknownDirectiveToken:
		return "%<unknown>"
	case IndentationToken:
		return "indentation"
	case EmptyLineToken:
		return "empty-line"
	case DirectivesEndToken:
		return "---"
	case DocumentEndToken:
		return "..."
	case PlainScalarToken:
		return "plain-scalar"
	case QuotedScalarToken:
		return "quoted-scalar"
	case BlockScalarHeaderToken:
		return "block-scalar-header"
	case SequenceEntryToken:
		return "-"
	case MapKeyToken:
		return "?"
	case MapValueToken:
		return ":"
	case FlowSequenceStartToken:
		return "["
	case FlowSequenceEndToken:
		return "]"
	case FlowMappingStartToken:
		return "{"
	case FlowMappingEndToken:
		return "}"
	case FlowEntryToken:
		return ","
	case AnchorToken:
		return "anchor"
	case AliasToken:
		return "alias"
	case TagHandleToken:
		return "tag-handle"
	case VerbatimTagToken:
		return "verbatim-tag"
	default:
		return "<unknown token>"
	}
}

// Token is a single lexical unit. Value aliases the lexer's shared
// reusable buffer and is valid only until the next call to NextToken;
// callers that need to retain it must copy.
type Token struct {
	Kind       Kind
	Start, End Position

	Value []byte // scalar/anchor/alias/tag-handle payload

	ScalarStyle ScalarStyle // set for QuotedScalarToken (single vs double)

	// BlockScalarHeaderToken fields.
	Chomp        Chomping
	Indent       int // body indentation, from the indicator or detected from the first content line
	HasIndicator bool // Indent came from an explicit indentation indicator

	// TagHandleToken fields: Value holds the handle followed by the
	// suffix (e.g. "!!str"); ShorthandEnd is the byte offset within Value
	// where the handle ends and the suffix begins.
	ShorthandEnd int

	// Directive fields.
	Major, Minor int8   // YamlDirectiveToken
	Handle       string // TagDirectiveToken
	Prefix       string // TagDirectiveToken
}

// EventType enumerates the structural events the parser emits.
type EventType int8

const (
	NoEvent EventType = iota
	StartDocumentEvent
	EndDocumentEvent
	StartMappingEvent
	EndMappingEvent
	StartSequenceEvent
	EndSequenceEvent
	ScalarEvent
	AliasEvent
)

func (e EventType) String() string {
	switch e {
	case NoEvent:
		return "none"
	case StartDocumentEvent:
		return "start-document"
	case EndDocumentEvent:
		return "end-document"
	case StartMappingEvent:
		return "start-mapping"
	case EndMappingEvent:
		return "end-mapping"
	case StartSequenceEvent:
		return "start-sequence"
	case EndSequenceEvent:
		return "end-sequence"
	case ScalarEvent:
		return "scalar"
	case AliasEvent:
		return "alias"
	default:
		return "<unknown event>"
	}
}

// Event is one element of the parser's/presenter's structural stream.
// Every Start has a matching End in a well-formed stream; scalars carry
// no End; aliases carry neither Tag nor Anchor.
type Event struct {
	Type EventType

	Start, End Position

	Tag    string // resolved tag URI, empty if none/implicit
	Anchor string // anchor name as written; AnchorID is assigned by the parser/DOM layer

	Content string // ScalarEvent payload

	Style CollectionStyle // StartMapping/StartSequence
	ScalarStyleHint ScalarStyle // ScalarEvent: style the node was read in, or should be written in

	Implicit       bool // tag was not explicitly given (plain-implied)
	QuotedImplicit bool // tag may be omitted even though the scalar isn't plain

	Target string // AliasEvent: name of the anchor being referenced

	// VersionDirective/TagDirectives are only set on the StartDocumentEvent
	// that opens a document with explicit directives.
	VersionMajor, VersionMinor int8
	TagDirectives              []TagDirective
}

// TagDirective is a parsed `%TAG` directive: a handle ("!", "!!", or
// "!name!") mapped to a URI prefix.
type TagDirective struct {
	Handle string
	Prefix string
}

// SimpleKey tracks a candidate for becoming an implicit mapping key: a
// scalar, alias, or collection-start token seen where a `:` could still
// follow on the same line.
type SimpleKey struct {
	Possible   bool
	Required   bool
	TokenIndex int
	Mark       Position
}
