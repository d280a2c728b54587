package presenter

import "runtime"

// Style selects the overall rendering strategy.
type Style int8

const (
	// Default chooses block vs. flow per container by inline length and
	// plain vs. quoted per scalar by content, matching conventional
	// hand-written YAML.
	Default Style = iota
	// Minimal emits the shortest legal rendering: plain scalars whenever
	// legal, flow containers throughout.
	Minimal
	// Canonical fully tags every node and uses flow containers
	// throughout; a mapping's pairs are written on one line, separated
	// by ", ", as in every other flow container.
	Canonical
	// JSON emits JSON-compatible output: flow only, double-quoted
	// strings with JSON escaping, no aliases, no inf/nan.
	JSON
	// BlockOnly never uses flow containers, regardless of size.
	BlockOnly
)

// Newlines selects the line-ending written between output lines.
type Newlines int8

const (
	LF Newlines = iota
	CRLF
	PlatformDefault
)

// AnchorStyle selects which anchored nodes actually receive a written
// `&name` marker.
type AnchorStyle int8

const (
	// AnchorNone never writes anchors; an alias anywhere in the stream
	// is then an error, since it could never be resolved on reparse.
	AnchorNone AnchorStyle = iota
	// AnchorTidy writes an anchor only on nodes some later alias in the
	// same document actually references. Requires buffering the
	// document to learn which anchors are referenced before the first
	// anchored node is written.
	AnchorTidy
	// AnchorAlways writes an anchor on every node the source already
	// anchored (the presenter never invents new anchors for previously
	// unanchored nodes — see DESIGN.md).
	AnchorAlways
)

// Options configures a Presenter.
type Options struct {
	Style Style

	// IndentStep is the number of spaces one block-nesting level adds.
	// Zero means the default of 2.
	IndentStep int

	Newlines Newlines

	// OutputVersionMajor/Minor, if OutputVersionMajor is nonzero, emits
	// a leading "%YAML major.minor" directive and "---" marker on every
	// document.
	OutputVersionMajor, OutputVersionMinor int8

	AnchorStyle AnchorStyle

	// MaxLineLength bounds both the flow-collapse decision (containers
	// whose flattened length is within this budget render as flow under
	// Default) and the longest line a multi-line scalar may have to be
	// written literal rather than folded under Default. Double-quoted
	// scalars are never wrapped, in any style. Zero means the default
	// of 60.
	MaxLineLength int
}

func (o Options) indentStep() int {
	if o.IndentStep > 0 {
		return o.IndentStep
	}
	return 2
}

func (o Options) maxLineLength() int {
	if o.MaxLineLength > 0 {
		return o.MaxLineLength
	}
	return 60
}

func (o Options) newline() string {
	switch o.Newlines {
	case CRLF:
		return "\r\n"
	case PlatformDefault:
		if runtime.GOOS == "windows" {
			return "\r\n"
		}
		return "\n"
	default:
		return "\n"
	}
}
